package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/voice"

	"github.com/cbegin/cyclepattern/timespan"
)

// Labeled renames Child's bare ValueKey entry to Key, which is how
// mini-notation turns an unlabeled literal sequence ("c e g") into a
// named control ("note" $ "c e g") that can be Stacked alongside other
// named controls without collision.
type Labeled struct {
	Key   string
	Child Pattern
}

func (l Labeled) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	events, err := queryChild(l.Child, span, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		v, ok := e.Data[ValueKey]
		if !ok {
			continue
		}
		data := e.Data.Without(ValueKey).With(l.Key, v)
		ne, err := event.New(e.Whole, e.Part, data)
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (l Labeled) Weight() rational.Rational               { return cycleDurationOr(l.Child, rational.One) }
func (l Labeled) Steps() rational.Rational                 { return l.Child.Steps() }
func (l Labeled) EstimateCycleDuration() rational.Rational { return cycleDurationOr(l.Child, rational.One) }

// Combiner merges a Source event's data with the ControlPattern event
// data sampled over its part — the callback behind ".gain(pat)",
// ".pan(pat)", and friends.
type Combiner func(source, control voice.VoiceData) voice.VoiceData

// Control queries Source, then for each of its events queries
// ControlPattern over that event's Part and merges the two via Combiner,
// per spec.md §4.12. An outer event with no overlapping control event
// produces no output (there is nothing to combine against); an outer
// event overlapped by several control events yields one output event per
// overlap, each clipped to the intersection.
type Control struct {
	Source         Pattern
	ControlPattern Pattern
	Combiner       Combiner
}

func (c Control) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	sourceEvents, err := queryChild(c.Source, span, ctx)
	if err != nil {
		return nil, err
	}
	var out []event.Event
	for _, se := range sourceEvents {
		ctlEvents, err := queryChild(c.ControlPattern, se.Part, ctx)
		if err != nil {
			return nil, err
		}
		for _, ce := range ctlEvents {
			clipped, ok := se.Part.Intersect(ce.Part)
			if !ok || clipped.IsEmpty() {
				continue
			}
			data := c.Combiner(se.Data, ce.Data)
			ne, err := event.New(se.Whole, clipped, data)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	return out, nil
}

func (c Control) Weight() rational.Rational               { return cycleDurationOr(c.Source, rational.One) }
func (c Control) Steps() rational.Rational                 { return stepsOr(c.Source, rational.One) }
func (c Control) EstimateCycleDuration() rational.Rational { return cycleDurationOr(c.Source, rational.One) }

// Map applies Func to every event's Data, leaving timing untouched.
type Map struct {
	Func  func(voice.VoiceData) voice.VoiceData
	Child Pattern
}

func (m Map) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	events, err := queryChild(m.Child, span, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		ne, err := event.New(e.Whole, e.Part, m.Func(e.Data))
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (m Map) Weight() rational.Rational               { return cycleDurationOr(m.Child, rational.One) }
func (m Map) Steps() rational.Rational                 { return m.Child.Steps() }
func (m Map) EstimateCycleDuration() rational.Rational { return cycleDurationOr(m.Child, rational.One) }

// Filter keeps only Child's events for which Pred returns true.
type Filter struct {
	Pred  func(voice.VoiceData) bool
	Child Pattern
}

func (f Filter) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	events, err := queryChild(f.Child, span, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if f.Pred(e.Data) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f Filter) Weight() rational.Rational               { return cycleDurationOr(f.Child, rational.One) }
func (f Filter) Steps() rational.Rational                 { return f.Child.Steps() }
func (f Filter) EstimateCycleDuration() rational.Rational { return cycleDurationOr(f.Child, rational.One) }

// Bind queries Child, and for each of its events uses Func to derive an
// inner pattern from that event's Data, which is then queried over the
// outer event's Part. The result's timing comes from the inner pattern
// (Tidal's "inner join" bind semantics): an outer event only shapes which
// window of time its inner pattern is sampled over, not the final
// event's own whole/part.
type Bind struct {
	Func  func(voice.VoiceData) Pattern
	Child Pattern
}

func (b Bind) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	outer, err := queryChild(b.Child, span, ctx)
	if err != nil {
		return nil, err
	}
	var out []event.Event
	for _, oe := range outer {
		inner := b.Func(oe.Data)
		if inner == nil {
			continue
		}
		innerEvents, err := queryChild(inner, oe.Part, ctx)
		if err != nil {
			return nil, err
		}
		for _, ie := range innerEvents {
			clipped, ok := ie.Part.Intersect(oe.Part)
			if !ok || clipped.IsEmpty() {
				continue
			}
			ne, err := event.New(ie.Whole, clipped, ie.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	return out, nil
}

func (b Bind) Weight() rational.Rational               { return cycleDurationOr(b.Child, rational.One) }
func (b Bind) Steps() rational.Rational                 { return b.Child.Steps() }
func (b Bind) EstimateCycleDuration() rational.Rational { return cycleDurationOr(b.Child, rational.One) }
