// Package event defines Event, the unit of output from a Pattern query: a
// value attached to a whole/part pair of timespans.
package event

import (
	"fmt"

	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

// Event is one value occupying a whole timespan, of which Part is the
// (possibly fragmentary) portion that actually fell inside a query window.
// Whole == Part for an event queried entirely within one cycle; Whole
// strictly contains Part when the query window clipped the event (e.g. a
// slow-moving event queried mid-way through its duration).
type Event struct {
	Whole timespan.TimeSpan
	Part  timespan.TimeSpan
	Data  voice.VoiceData
}

// New constructs an Event, enforcing the invariants that every combinator
// in this module relies on: Part must be contained within Whole (it may be
// zero-width), and Whole must have positive duration. A violation here is always
// an internal bug — never a caller input problem — because by the time an
// Event is constructed, the combinator building it is responsible for
// having already clipped Part to Whole correctly.
func New(whole, part timespan.TimeSpan, data voice.VoiceData) (Event, error) {
	if !whole.Begin.LessEq(whole.End) {
		return Event{}, perr.New(perr.InternalInvariant, "event.New", "whole has negative duration")
	}
	if whole.IsEmpty() {
		return Event{}, perr.New(perr.InternalInvariant, "event.New", "whole must have positive duration")
	}
	if part.Begin.Less(whole.Begin) || part.End.Greater(whole.End) {
		return Event{}, perr.Newf(perr.InternalInvariant, "event.New", "part %s is not contained within whole %s", part, whole)
	}
	if part.Begin.Greater(part.End) {
		return Event{}, perr.New(perr.InternalInvariant, "event.New", "part has negative duration")
	}
	if data == nil {
		data = voice.New()
	}
	return Event{Whole: whole, Part: part, Data: data}, nil
}

// MustNew is New but panics on error, for use at call sites that have
// already validated their inputs (most combinator implementations, which
// compute Whole/Part from their own query arithmetic and therefore control
// the invariant themselves).
func MustNew(whole, part timespan.TimeSpan, data voice.VoiceData) Event {
	e, err := New(whole, part, data)
	if err != nil {
		panic(err)
	}
	return e
}

// HasOnset reports whether the start of Part coincides with the start of
// Whole — i.e. this query fragment includes the event's attack rather than
// only its tail. Combinators that trigger discrete voices (as opposed to
// continuous control signals) only act on fragments with HasOnset true.
func (e Event) HasOnset() bool {
	return e.Whole.Begin.Equal(e.Part.Begin)
}

// WithData returns a copy of e with Data replaced.
func (e Event) WithData(data voice.VoiceData) Event {
	e.Data = data
	return e
}

// WithPart returns a copy of e with Part replaced. Callers must preserve
// the Part-within-Whole invariant themselves; this is an unchecked
// low-level helper used by query-window clipping code that already knows
// the new Part is valid.
func (e Event) WithPart(part timespan.TimeSpan) Event {
	e.Part = part
	return e
}

// String renders e for debugging and CLI display.
func (e Event) String() string {
	if e.Whole == e.Part {
		return fmt.Sprintf("%s %v", e.Part, e.Data)
	}
	return fmt.Sprintf("%s (whole %s) %v", e.Part, e.Whole, e.Data)
}
