package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

// Atomic is the simplest non-empty pattern: one event per cycle, carrying
// the same data every time, whole-spanning exactly [n, n+1).
type Atomic struct {
	Data voice.VoiceData
}

// NewAtomic returns an Atomic pattern carrying data.
func NewAtomic(data voice.VoiceData) Atomic { return Atomic{Data: data} }

func (a Atomic) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		whole := timespan.Cycle(seg.Cycle)
		e, err := event.New(whole, seg.Span, a.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (a Atomic) Weight() rational.Rational                 { return rational.One }
func (a Atomic) Steps() rational.Rational                  { return rational.One }
func (a Atomic) EstimateCycleDuration() rational.Rational   { return rational.One }

// Gap is the empty pattern: it produces no events over any span. It
// occupies one step of weight 1 in a Sequence, exactly like a rest in
// mini-notation ("~").
type Gap struct{}

func (Gap) Query(timespan.TimeSpan, qctx.Context) ([]event.Event, error) { return nil, nil }
func (Gap) Weight() rational.Rational                                    { return rational.One }
func (Gap) Steps() rational.Rational                                    { return rational.One }
func (Gap) EstimateCycleDuration() rational.Rational                     { return rational.One }

// Static is a continuous pattern: it produces exactly one event covering
// the entire queried span verbatim, with no cycle-boundary splitting. It
// represents a signal with no inherent step structure (e.g. a bare
// numeric control value before it's been given a Steps() rhythm by
// Struct).
type Static struct {
	Data voice.VoiceData
}

// NewStatic returns a Static pattern carrying data.
func NewStatic(data voice.VoiceData) Static { return Static{Data: data} }

func (s Static) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	e, err := event.New(span, span, s.Data)
	if err != nil {
		return nil, err
	}
	return []event.Event{e}, nil
}

func (s Static) Weight() rational.Rational               { return rational.One }
func (s Static) Steps() rational.Rational                 { return rational.One }
func (s Static) EstimateCycleDuration() rational.Rational { return rational.One }
