package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

// ContextModifier queries Child under a context Func has been given a
// chance to rewrite — the mechanism behind seeding an independent random
// stream for a sub-pattern, or threading a host-supplied value down to a
// Continuous leaf several levels below.
type ContextModifier struct {
	Func  func(qctx.Context) qctx.Context
	Child Pattern
}

func (c ContextModifier) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if c.Func != nil {
		ctx = c.Func(ctx)
	}
	return queryChild(c.Child, span, ctx)
}

func (c ContextModifier) Weight() rational.Rational { return cycleDurationOr(c.Child, rational.One) }
func (c ContextModifier) Steps() rational.Rational  { return stepsOr(c.Child, rational.One) }
func (c ContextModifier) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(c.Child, rational.One)
}

// ContextRangeMap binds qctx.ControlMin/ControlMax for the duration of
// querying Child, giving a Continuous leaf further down the tree a range
// to rescale its output into.
type ContextRangeMap struct {
	Min, Max float64
	Child    Pattern
}

func (c ContextRangeMap) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	ctx = qctx.With(ctx, qctx.ControlMin, c.Min)
	ctx = qctx.With(ctx, qctx.ControlMax, c.Max)
	return queryChild(c.Child, span, ctx)
}

func (c ContextRangeMap) Weight() rational.Rational { return cycleDurationOr(c.Child, rational.One) }
func (c ContextRangeMap) Steps() rational.Rational  { return stepsOr(c.Child, rational.One) }
func (c ContextRangeMap) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(c.Child, rational.One)
}

// Continuous is a signal pattern with no inherent step structure: each
// query samples Func once, at the query span's start time, and returns
// that single value spanning the entire queried span verbatim (mirroring
// Static's span handling, since a continuous signal has no cycle
// boundaries of its own).
type Continuous struct {
	Func func(t rational.Rational, ctx qctx.Context) voice.VoiceValue
}

func (c Continuous) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	val := c.Func(span.Begin, ctx)
	data := voice.New().With(ValueKey, val)
	e, err := event.New(span, span, data)
	if err != nil {
		return nil, err
	}
	return []event.Event{e}, nil
}

func (c Continuous) Weight() rational.Rational               { return rational.One }
func (c Continuous) Steps() rational.Rational                 { return rational.One }
func (c Continuous) EstimateCycleDuration() rational.Rational { return rational.One }
