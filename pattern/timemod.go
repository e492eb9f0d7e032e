package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// Fast compresses Child in time so that Factor cycles of Child occur in
// every one cycle of the result (mini-notation "*factor"). A negative
// Factor is equivalent to reversing Child and then speeding it up by
// |Factor|. Factor may instead be driven dynamically by FactorPattern,
// sampled once per cycle and spliced at cycle boundaries (falling back to
// Factor on cycles with no active onset), per spec.md §4.6; Invert asks
// the sampled value to be treated as a Slow divisor (1/value) rather than
// a Fast factor directly, which is how Slow's own dynamic constructor is
// expressed in terms of Fast.
type Fast struct {
	Factor        rational.Rational
	FactorPattern Pattern
	Invert        bool
	Child         Pattern
}

// NewFast returns a Fast pattern, or an error if factor is zero.
func NewFast(factor rational.Rational, child Pattern) (Fast, error) {
	if factor.IsZero() {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewFast", "factor must be non-zero")
	}
	return Fast{Factor: factor, Child: child}, nil
}

// NewFastDynamic returns a Fast pattern whose speed factor is sampled once
// per cycle from factorPattern, falling back to fallback on cycles with no
// active onset.
func NewFastDynamic(factorPattern Pattern, fallback rational.Rational, child Pattern) (Fast, error) {
	if factorPattern == nil {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewFastDynamic", "factorPattern must not be nil")
	}
	if fallback.IsZero() {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewFastDynamic", "fallback must be non-zero")
	}
	return Fast{Factor: fallback, FactorPattern: factorPattern, Child: child}, nil
}

// NewSlowDynamic returns a Fast pattern whose divisor is sampled once per
// cycle from divisorPattern (values are read in Slow's own 1/n sense, not
// Fast's), falling back to fallback on cycles with no active onset.
func NewSlowDynamic(divisorPattern Pattern, fallback rational.Rational, child Pattern) (Fast, error) {
	if divisorPattern == nil {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewSlowDynamic", "divisorPattern must not be nil")
	}
	if fallback.IsZero() {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewSlowDynamic", "fallback must be non-zero")
	}
	return Fast{Factor: fallback, FactorPattern: divisorPattern, Invert: true, Child: child}, nil
}

func (f Fast) factorAt(cycle int64, ctx qctx.Context) (rational.Rational, error) {
	if f.FactorPattern == nil {
		return f.Factor, nil
	}
	sampled, err := rationalAt(f.FactorPattern, rational.FromInt(cycle), f.Factor, ctx)
	if err != nil {
		return rational.Zero, err
	}
	if !f.Invert {
		return sampled, nil
	}
	if sampled.IsZero() {
		return rational.Zero, perr.New(perr.InvalidArgument, "pattern.Fast", "sampled slow divisor must be non-zero")
	}
	return rational.One.Div(sampled), nil
}

// fastQuery is Fast's Query logic for one constant factor over one span,
// factored out so Fast.Query can apply it once per cycle when the factor
// is sampled dynamically.
func fastQuery(factor rational.Rational, child Pattern, span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if factor.IsZero() || span.IsEmpty() {
		return nil, nil
	}
	if factor.Less(rational.Zero) {
		return fastQuery(factor.Neg(), Reverse{Child: child}, span, ctx)
	}
	scaled := span.Scale(factor)
	events, err := queryChild(child, scaled, ctx)
	if err != nil {
		return nil, err
	}
	inv := rational.One.Div(factor)
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		whole := e.Whole.Scale(inv)
		part := e.Part.Scale(inv)
		ne, err := event.New(whole, part, e.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (f Fast) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	if f.FactorPattern == nil {
		return fastQuery(f.Factor, f.Child, span, ctx)
	}
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		factor, err := f.factorAt(seg.Cycle, ctx)
		if err != nil {
			return nil, err
		}
		events, err := fastQuery(factor, f.Child, seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (f Fast) Weight() rational.Rational { return cycleDurationOr(f.Child, rational.One) }
func (f Fast) Steps() rational.Rational  { return stepsOr(f.Child, rational.One) }
func (f Fast) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(f.Child, rational.One).Div(f.Factor)
}

// Slow stretches Child in time: Child completes one cycle over Factor
// cycles of the result (mini-notation "/factor"). Slow(r, p) is defined
// as Fast(1/r, p).
type Slow struct {
	Factor rational.Rational
	Child  Pattern
}

func (s Slow) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if s.Factor.IsZero() {
		return nil, nil
	}
	return fastQuery(rational.One.Div(s.Factor), s.Child, span, ctx)
}

func (s Slow) Weight() rational.Rational { return cycleDurationOr(s.Child, rational.One) }
func (s Slow) Steps() rational.Rational  { return stepsOr(s.Child, rational.One) }
func (s Slow) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(s.Child, rational.One).Mul(s.Factor)
}

// NewSlow returns the equivalent Fast pattern with factor 1/factor, or an
// error if factor is zero.
func NewSlow(factor rational.Rational, child Pattern) (Fast, error) {
	if factor.IsZero() {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewSlow", "factor must be non-zero")
	}
	return NewFast(rational.One.Div(factor), child)
}

// TimeShift delays (Offset > 0) or advances (Offset < 0) Child by Offset
// cycles. Offset may instead be driven dynamically by OffsetPattern,
// sampled once per cycle and spliced at cycle boundaries (falling back to
// Offset on cycles with no active onset), per spec.md §4.6.
type TimeShift struct {
	Offset        rational.Rational
	OffsetPattern Pattern
	Child         Pattern
}

// NewTimeShift returns a TimeShift pattern.
func NewTimeShift(offset rational.Rational, child Pattern) TimeShift {
	return TimeShift{Offset: offset, Child: child}
}

// NewTimeShiftDynamic returns a TimeShift pattern whose offset is sampled
// once per cycle from offsetPattern, falling back to fallback on cycles
// with no active onset.
func NewTimeShiftDynamic(offsetPattern Pattern, fallback rational.Rational, child Pattern) (TimeShift, error) {
	if offsetPattern == nil {
		return TimeShift{}, perr.New(perr.InvalidArgument, "pattern.NewTimeShiftDynamic", "offsetPattern must not be nil")
	}
	return TimeShift{Offset: fallback, OffsetPattern: offsetPattern, Child: child}, nil
}

func (t TimeShift) offsetAt(cycle int64, ctx qctx.Context) (rational.Rational, error) {
	if t.OffsetPattern == nil {
		return t.Offset, nil
	}
	return rationalAt(t.OffsetPattern, rational.FromInt(cycle), t.Offset, ctx)
}

// timeShiftQuery is TimeShift's Query logic for one constant offset over
// one span.
func timeShiftQuery(offset rational.Rational, child Pattern, span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	shifted := span.Shift(offset.Neg())
	events, err := queryChild(child, shifted, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		whole := e.Whole.Shift(offset)
		part := e.Part.Shift(offset)
		ne, err := event.New(whole, part, e.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (t TimeShift) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	if t.OffsetPattern == nil {
		return timeShiftQuery(t.Offset, t.Child, span, ctx)
	}
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		offset, err := t.offsetAt(seg.Cycle, ctx)
		if err != nil {
			return nil, err
		}
		events, err := timeShiftQuery(offset, t.Child, seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (t TimeShift) Weight() rational.Rational               { return cycleDurationOr(t.Child, rational.One) }
func (t TimeShift) Steps() rational.Rational                 { return stepsOr(t.Child, rational.One) }
func (t TimeShift) EstimateCycleDuration() rational.Rational { return cycleDurationOr(t.Child, rational.One) }
