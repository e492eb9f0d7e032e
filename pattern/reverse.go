package pattern

import (
	"sort"

	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// reflect maps t to its mirror image within the cycle [cycle, cycle+1):
// reflect(cycle) = cycle+1 and reflect(cycle+1) = cycle. It is its own
// inverse, which is what lets Reverse use the same function to transform
// both the outgoing query span and the incoming result spans.
func reflect(cycle int64, t rational.Rational) rational.Rational {
	return rational.FromInt(2*cycle + 1).Sub(t)
}

// Reverse plays Child backwards within every cycle (mini-notation "rev").
type Reverse struct {
	Child Pattern
}

func (r Reverse) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		cycle := seg.Cycle
		reflected := timespan.New(reflect(cycle, seg.Span.End), reflect(cycle, seg.Span.Begin))
		events, err := queryChild(r.Child, reflected, ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			whole := timespan.New(reflect(cycle, e.Whole.End), reflect(cycle, e.Whole.Begin))
			part := timespan.New(reflect(cycle, e.Part.End), reflect(cycle, e.Part.Begin))
			ne, err := event.New(whole, part, e.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Part.Begin.Less(out[j].Part.Begin) })
	return out, nil
}

func (r Reverse) Weight() rational.Rational               { return cycleDurationOr(r.Child, rational.One) }
func (r Reverse) Steps() rational.Rational                 { return stepsOr(r.Child, rational.One) }
func (r Reverse) EstimateCycleDuration() rational.Rational { return cycleDurationOr(r.Child, rational.One) }

// reflectGroup generalizes reflect from a single cycle to a group of n
// consecutive cycles starting at base: reflectGroup(base, n, base) =
// base+n and reflectGroup(base, n, base+n) = base, with n == 1 reducing
// to plain reflect.
func reflectGroup(base, n int64, t rational.Rational) rational.Rational {
	return rational.FromInt(2*base + n).Sub(t)
}

// ReverseWithControl samples NPattern once per cycle for a group size n
// (spec.md §4.7) and reverses Child across each block of n consecutive
// cycles as a whole — both the order of the n cycles within the block and
// each cycle's own internal order flip. n <= 1 (including cycles where
// NPattern has no active onset) degrades to plain per-cycle Reverse.
type ReverseWithControl struct {
	NPattern Pattern
	Child    Pattern
}

// NewReverseWithControl returns a ReverseWithControl pattern, or an error
// if nPattern is nil.
func NewReverseWithControl(nPattern Pattern, child Pattern) (ReverseWithControl, error) {
	if nPattern == nil {
		return ReverseWithControl{}, perr.New(perr.InvalidArgument, "pattern.NewReverseWithControl", "nPattern must not be nil")
	}
	return ReverseWithControl{NPattern: nPattern, Child: child}, nil
}

func (r ReverseWithControl) groupSizeAt(cycle int64, ctx qctx.Context) (int64, error) {
	sampled, err := rationalAt(r.NPattern, rational.FromInt(cycle), rational.One, ctx)
	if err != nil {
		return 0, err
	}
	n := sampled.Floor()
	if n < 1 {
		n = 1
	}
	return n, nil
}

func (r ReverseWithControl) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		n, err := r.groupSizeAt(seg.Cycle, ctx)
		if err != nil {
			return nil, err
		}
		base := floorDiv(seg.Cycle, n) * n
		reflected := timespan.New(reflectGroup(base, n, seg.Span.End), reflectGroup(base, n, seg.Span.Begin))
		events, err := queryChild(r.Child, reflected, ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			whole := timespan.New(reflectGroup(base, n, e.Whole.End), reflectGroup(base, n, e.Whole.Begin))
			part := timespan.New(reflectGroup(base, n, e.Part.End), reflectGroup(base, n, e.Part.Begin))
			ne, err := event.New(whole, part, e.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Part.Begin.Less(out[j].Part.Begin) })
	return out, nil
}

func (r ReverseWithControl) Weight() rational.Rational { return cycleDurationOr(r.Child, rational.One) }
func (r ReverseWithControl) Steps() rational.Rational  { return stepsOr(r.Child, rational.One) }
func (r ReverseWithControl) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(r.Child, rational.One)
}
