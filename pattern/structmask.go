package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// valueDataAt queries p for the cycle containing at and returns the Data
// of whichever event's Part covers at, if any.
func valueDataAt(p Pattern, at rational.Rational, ctx qctx.Context) (event.Event, bool, error) {
	cycle := timespan.Cycle(at.Floor())
	events, err := queryChild(p, cycle, ctx)
	if err != nil {
		return event.Event{}, false, err
	}
	for _, e := range events {
		if e.Part.Begin.LessEq(at) && at.Less(e.Part.End) {
			return e, true, nil
		}
	}
	return event.Event{}, false, nil
}

// Struct takes its rhythmic structure (which onsets fire, and their
// whole/part timing) from BoolPattern, and its data from whichever Value
// event is active at each firing onset (mini-notation "struct").
// BoolPattern events with a falsy ValueKey are treated as rests.
type Struct struct {
	BoolPattern Pattern
	Value       Pattern
}

func (s Struct) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	boolEvents, err := queryChild(s.BoolPattern, span, ctx)
	if err != nil {
		return nil, err
	}
	var out []event.Event
	for _, be := range boolEvents {
		if !be.HasOnset() || !eventTruthy(be) {
			continue
		}
		ve, found, err := valueDataAt(s.Value, be.Whole.Begin, ctx)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		ne, err := event.New(be.Whole, be.Part, ve.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (s Struct) Weight() rational.Rational               { return cycleDurationOr(s.BoolPattern, rational.One) }
func (s Struct) Steps() rational.Rational                 { return stepsOr(s.BoolPattern, rational.One) }
func (s Struct) EstimateCycleDuration() rational.Rational { return cycleDurationOr(s.BoolPattern, rational.One) }

// Mask clips Value's events down to the spans where BoolPattern is
// truthy, dropping or truncating whatever falls outside (mini-notation
// "mask"). Unlike Struct, Mask never takes its timing wholesale from the
// boolean pattern — it only ever narrows Value's own timing.
type Mask struct {
	Value       Pattern
	BoolPattern Pattern
}

func (m Mask) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	valueEvents, err := queryChild(m.Value, span, ctx)
	if err != nil {
		return nil, err
	}
	if len(valueEvents) == 0 {
		return nil, nil
	}
	boolEvents, err := queryChild(m.BoolPattern, span, ctx)
	if err != nil {
		return nil, err
	}
	var windows []timespan.TimeSpan
	for _, be := range boolEvents {
		if eventTruthy(be) {
			windows = append(windows, be.Part)
		}
	}
	var out []event.Event
	for _, ve := range valueEvents {
		for _, w := range windows {
			clipped, ok := ve.Part.Intersect(w)
			if !ok || clipped.IsEmpty() {
				continue
			}
			ne, err := event.New(ve.Whole, clipped, ve.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	return out, nil
}

func (m Mask) Weight() rational.Rational               { return cycleDurationOr(m.Value, rational.One) }
func (m Mask) Steps() rational.Rational                 { return stepsOr(m.Value, rational.One) }
func (m Mask) EstimateCycleDuration() rational.Rational { return cycleDurationOr(m.Value, rational.One) }
