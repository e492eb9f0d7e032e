package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

func floorMod(a, n int64) int64 {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Transform is a pure Pattern-to-Pattern function, used by FirstOf and
// LastOf to describe what happens on the cycles they select.
type Transform func(Pattern) Pattern

// FirstOf applies Transform to Child on the first of every N cycles and
// leaves Child unchanged on the other N-1 (mini-notation-adjacent "every"
// family, picking the lead cycle of the group rather than a fixed offset).
// N may instead be driven dynamically by NPattern, sampled once per cycle
// (falling back to N on cycles with no active onset), per spec.md §4.10.
type FirstOf struct {
	N         int
	NPattern  Pattern
	Transform Transform
	Child     Pattern
}

// NewFirstOf returns a FirstOf pattern, or an error if n is not positive.
func NewFirstOf(n int, transform Transform, child Pattern) (FirstOf, error) {
	if n <= 0 {
		return FirstOf{}, perr.New(perr.InvalidArgument, "pattern.NewFirstOf", "n must be positive")
	}
	return FirstOf{N: n, Transform: transform, Child: child}, nil
}

// NewFirstOfDynamic returns a FirstOf pattern whose N is sampled once per
// cycle from nPattern, falling back to fallback on cycles with no active
// onset.
func NewFirstOfDynamic(nPattern Pattern, fallback int, transform Transform, child Pattern) (FirstOf, error) {
	if nPattern == nil {
		return FirstOf{}, perr.New(perr.InvalidArgument, "pattern.NewFirstOfDynamic", "nPattern must not be nil")
	}
	if fallback <= 0 {
		return FirstOf{}, perr.New(perr.InvalidArgument, "pattern.NewFirstOfDynamic", "fallback must be positive")
	}
	return FirstOf{N: fallback, NPattern: nPattern, Transform: transform, Child: child}, nil
}

func (f FirstOf) nAt(cycle int64, ctx qctx.Context) (int64, error) {
	if f.NPattern == nil {
		return int64(f.N), nil
	}
	sampled, err := rationalAt(f.NPattern, rational.FromInt(cycle), rational.FromInt(int64(f.N)), ctx)
	if err != nil {
		return 0, err
	}
	n := sampled.Floor()
	if n < 1 {
		n = 1
	}
	return n, nil
}

func (f FirstOf) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		n, err := f.nAt(seg.Cycle, ctx)
		if err != nil {
			return nil, err
		}
		active := f.Child
		if floorMod(seg.Cycle, n) == 0 && f.Transform != nil {
			active = f.Transform(f.Child)
		}
		events, err := queryChild(active, seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (f FirstOf) Weight() rational.Rational               { return cycleDurationOr(f.Child, rational.One) }
func (f FirstOf) Steps() rational.Rational                 { return stepsOr(f.Child, rational.One) }
func (f FirstOf) EstimateCycleDuration() rational.Rational { return cycleDurationOr(f.Child, rational.One) }

// LastOf applies Transform to Child on the last of every N cycles and
// leaves Child unchanged on the other N-1. N may instead be driven
// dynamically by NPattern, sampled once per cycle (falling back to N on
// cycles with no active onset), per spec.md §4.10.
type LastOf struct {
	N         int
	NPattern  Pattern
	Transform Transform
	Child     Pattern
}

// NewLastOf returns a LastOf pattern, or an error if n is not positive.
func NewLastOf(n int, transform Transform, child Pattern) (LastOf, error) {
	if n <= 0 {
		return LastOf{}, perr.New(perr.InvalidArgument, "pattern.NewLastOf", "n must be positive")
	}
	return LastOf{N: n, Transform: transform, Child: child}, nil
}

// NewLastOfDynamic returns a LastOf pattern whose N is sampled once per
// cycle from nPattern, falling back to fallback on cycles with no active
// onset.
func NewLastOfDynamic(nPattern Pattern, fallback int, transform Transform, child Pattern) (LastOf, error) {
	if nPattern == nil {
		return LastOf{}, perr.New(perr.InvalidArgument, "pattern.NewLastOfDynamic", "nPattern must not be nil")
	}
	if fallback <= 0 {
		return LastOf{}, perr.New(perr.InvalidArgument, "pattern.NewLastOfDynamic", "fallback must be positive")
	}
	return LastOf{N: fallback, NPattern: nPattern, Transform: transform, Child: child}, nil
}

func (l LastOf) nAt(cycle int64, ctx qctx.Context) (int64, error) {
	if l.NPattern == nil {
		return int64(l.N), nil
	}
	sampled, err := rationalAt(l.NPattern, rational.FromInt(cycle), rational.FromInt(int64(l.N)), ctx)
	if err != nil {
		return 0, err
	}
	n := sampled.Floor()
	if n < 1 {
		n = 1
	}
	return n, nil
}

func (l LastOf) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		n, err := l.nAt(seg.Cycle, ctx)
		if err != nil {
			return nil, err
		}
		active := l.Child
		if floorMod(seg.Cycle, n) == n-1 && l.Transform != nil {
			active = l.Transform(l.Child)
		}
		events, err := queryChild(active, seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (l LastOf) Weight() rational.Rational               { return cycleDurationOr(l.Child, rational.One) }
func (l LastOf) Steps() rational.Rational                 { return stepsOr(l.Child, rational.One) }
func (l LastOf) EstimateCycleDuration() rational.Rational { return cycleDurationOr(l.Child, rational.One) }
