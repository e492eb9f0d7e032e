// Package pattern implements the lazy, deterministic query algebra that
// every other piece of this module builds on: a Pattern answers "what
// events fall in this span of cycles" without ever materializing an
// infinite timeline up front.
package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// ValueKey is the VoiceData key every bare (non-control) pattern writes
// its scalar value under — the convention mini-notation literals, boolean
// control patterns (ReverseWithControl, DegradeWithControl, Mask), and
// Continuous curves all share, so that any pattern can be used as a
// control input without a separate "boolean pattern" or "number pattern"
// type.
const ValueKey = "_value"

// eventTruthy reports whether e's ValueKey entry is truthy, treating a
// missing key as falsy.
func eventTruthy(e event.Event) bool {
	v, ok := e.Data[ValueKey]
	if !ok {
		return false
	}
	return v.Truthy()
}

// onsetAt queries control for the cycle containing at, and returns the
// truthiness of whichever onset event is active there, defaulting to
// false when control produces no onset in that cycle.
func onsetAt(control Pattern, at rational.Rational, ctx qctx.Context) (bool, error) {
	cycle := timespan.Cycle(at.Floor())
	events, err := queryChild(control, cycle, ctx)
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if e.HasOnset() && e.Part.Begin.LessEq(at) && at.Less(e.Part.End) {
			return eventTruthy(e), nil
		}
	}
	return false, nil
}

// rationalAt queries control for the cycle containing at and returns the
// numeric ValueKey of whichever onset event covers at, converted exactly
// via rational.FromFloat, defaulting to def (returned verbatim, with no
// float round-trip) when no active control event covers at. This is the
// generic per-cycle numeric sampling every dynamic-parameter combinator
// (Fast, Slow, TimeShift, FirstOf, LastOf, ReverseWithControl) uses to
// read a nested Pattern in place of a fixed constant, per spec.md §4.6's
// "k may be a nested pattern; when dynamic, sample it per cycle."
func rationalAt(control Pattern, at rational.Rational, def rational.Rational, ctx qctx.Context) (rational.Rational, error) {
	cycle := timespan.Cycle(at.Floor())
	events, err := queryChild(control, cycle, ctx)
	if err != nil {
		return rational.Zero, err
	}
	for _, e := range events {
		if e.HasOnset() && e.Part.Begin.LessEq(at) && at.Less(e.Part.End) {
			if v, ok := e.Data[ValueKey]; ok {
				if f, ok := v.AsFloat64(); ok {
					return rational.FromFloat(f, 0), nil
				}
			}
		}
	}
	return def, nil
}

// Pattern is queried for the events it produces over a span of cycles.
// Query must be pure: calling it twice with the same span and context
// must return equal events, and it must not depend on or mutate any state
// outside its arguments. This purity is what lets hosts cache, replay, or
// query spans out of order and out of process.
type Pattern interface {
	// Query returns every event whose Part overlaps span, clipped to span.
	Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error)

	// Weight is this pattern's relative share of a Sequence slot it
	// occupies (1 for most patterns; only meaningful to a parent
	// Sequence, which normalizes weights among siblings).
	Weight() rational.Rational

	// Steps reports how many discrete steps this pattern divides one
	// cycle into, when that's a meaningful question (mini-notation
	// sequences, Euclidean rhythms); patterns with no natural step count
	// (continuous signals) return 1. Fractional
	// (e.g. mini-notation's decimal weights, "a@1.5 b") and weighted-sum
	// step counts are both representable since this is a Rational, not an
	// int.
	Steps() rational.Rational

	// EstimateCycleDuration returns this pattern's best guess at how long
	// one logical cycle lasts in its own time base. Most combinators
	// return 1 (one cycle is one cycle); Fast/Slow rescale it. It is an
	// estimate, not a guarantee: Query is always the source of truth.
	EstimateCycleDuration() rational.Rational
}

// queryChild is a small helper every combinator uses to query a child
// pattern and propagate errors without repeating the same three lines.
func queryChild(p Pattern, span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if span.IsEmpty() {
		return nil, nil
	}
	return p.Query(span, ctx)
}

// cycleDurationOr returns p.EstimateCycleDuration(), defaulting to One if
// p is nil (used by wrapper combinators built around an optional child).
func cycleDurationOr(p Pattern, def rational.Rational) rational.Rational {
	if p == nil {
		return def
	}
	return p.EstimateCycleDuration()
}

// stepsOr returns p.Steps(), defaulting to One if p is nil.
func stepsOr(p Pattern, def rational.Rational) rational.Rational {
	if p == nil {
		return def
	}
	return p.Steps()
}
