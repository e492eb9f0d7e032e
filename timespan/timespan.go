// Package timespan implements the half-open [begin, end) interval algebra
// that every pattern combinator uses to describe its query window and the
// whole/part extent of the events it produces.
package timespan

import (
	"fmt"

	"github.com/cbegin/cyclepattern/rational"
)

// TimeSpan is a half-open interval [Begin, End) on exact rationals.
type TimeSpan struct {
	Begin rational.Rational
	End   rational.Rational
}

// New returns the span [begin, end). It panics if begin > end, mirroring
// the teacher's habit of failing fast on a malformed constructor input.
func New(begin, end rational.Rational) TimeSpan {
	if begin.Greater(end) {
		panic(fmt.Sprintf("timespan: begin %s > end %s", begin, end))
	}
	return TimeSpan{Begin: begin, End: end}
}

// Duration returns End - Begin.
func (s TimeSpan) Duration() rational.Rational { return s.End.Sub(s.Begin) }

// IsEmpty reports whether Begin == End.
func (s TimeSpan) IsEmpty() bool { return s.Begin.Equal(s.End) }

// Intersect returns the overlap of s and o. The second return value is
// false only when a gap separates the spans; spans that merely touch
// (one's End equals the other's Begin) yield true with a zero-width
// result.
func (s TimeSpan) Intersect(o TimeSpan) (TimeSpan, bool) {
	begin := rational.Max(s.Begin, o.Begin)
	end := rational.Min(s.End, o.End)
	if begin.Greater(end) {
		return TimeSpan{}, false
	}
	return TimeSpan{Begin: begin, End: end}, true
}

// CycleSpan pairs a cycle index with the portion of the span that falls
// within that cycle.
type CycleSpan struct {
	Cycle int64
	Span  TimeSpan
}

// SplitCycles cuts s at every integer boundary it crosses, yielding one
// (cycleIndex, subSpan) pair per cycle touched. A zero-width span yields a
// single CycleSpan for the cycle containing it.
func (s TimeSpan) SplitCycles() []CycleSpan {
	if s.IsEmpty() {
		return []CycleSpan{{Cycle: s.Begin.Floor(), Span: s}}
	}
	var out []CycleSpan
	cur := s.Begin
	for cur.Less(s.End) {
		cycle := cur.Floor()
		cycleEnd := rational.FromInt(cycle + 1)
		segEnd := rational.Min(cycleEnd, s.End)
		out = append(out, CycleSpan{Cycle: cycle, Span: TimeSpan{Begin: cur, End: segEnd}})
		cur = segEnd
	}
	return out
}

// WithTime applies f to both endpoints, preserving exactness (f is expected
// to be an affine rational transform — e.g. the time-scaling a Fast/Slow
// combinator applies to its child's query window).
func (s TimeSpan) WithTime(f func(rational.Rational) rational.Rational) TimeSpan {
	return TimeSpan{Begin: f(s.Begin), End: f(s.End)}
}

// Shift returns s translated by off.
func (s TimeSpan) Shift(off rational.Rational) TimeSpan {
	return s.WithTime(func(t rational.Rational) rational.Rational { return t.Add(off) })
}

// Scale returns s scaled by factor around zero (used by Fast/Slow to map a
// query window into a child's own time base).
func (s TimeSpan) Scale(factor rational.Rational) TimeSpan {
	return s.WithTime(func(t rational.Rational) rational.Rational { return t.Mul(factor) })
}

// Cycle returns the whole-cycle span [c, c+1).
func Cycle(c int64) TimeSpan {
	return TimeSpan{Begin: rational.FromInt(c), End: rational.FromInt(c + 1)}
}

// String renders s as "[begin, end)".
func (s TimeSpan) String() string {
	return fmt.Sprintf("[%s, %s)", s.Begin, s.End)
}
