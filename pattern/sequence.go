package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// Sequence lays its children end-to-end within a single cycle, each
// occupying a slot proportional to its own Weight(). This is what
// mini-notation whitespace ("a b c") and the weight suffix ("a@3 b")
// compile to.
type Sequence struct {
	Children []Pattern
}

// NewSequence returns a Sequence over children in order.
func NewSequence(children ...Pattern) Sequence { return Sequence{Children: children} }

func (s Sequence) totalWeight() rational.Rational {
	total := rational.Zero
	for _, c := range s.Children {
		total = total.Add(c.Weight())
	}
	return total
}

func (s Sequence) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	if len(s.Children) == 0 || span.IsEmpty() {
		return nil, nil
	}
	total := s.totalWeight()
	if total.IsZero() {
		return nil, nil
	}
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		cycle := seg.Cycle
		cursor := rational.Zero
		for _, child := range s.Children {
			slotWidth := child.Weight().Div(total)
			absBegin := rational.FromInt(cycle).Add(cursor)
			absEnd := absBegin.Add(slotWidth)
			cursor = cursor.Add(slotWidth)
			if slotWidth.IsZero() {
				continue
			}
			slotSpan := timespan.New(absBegin, absEnd)
			clipped, ok := seg.Span.Intersect(slotSpan)
			if !ok || clipped.IsEmpty() {
				continue
			}
			localSpan := clipped.WithTime(func(t rational.Rational) rational.Rational {
				return rational.FromInt(cycle).Add(t.Sub(absBegin).Div(slotWidth))
			})
			events, err := queryChild(child, localSpan, ctx)
			if err != nil {
				return nil, err
			}
			for _, e := range events {
				mapBack := func(t rational.Rational) rational.Rational {
					return absBegin.Add(t.Sub(rational.FromInt(cycle)).Mul(slotWidth))
				}
				whole := e.Whole.WithTime(mapBack)
				part := e.Part.WithTime(mapBack)
				ne, err := event.New(whole, part, e.Data)
				if err != nil {
					return nil, err
				}
				out = append(out, ne)
			}
		}
	}
	return out, nil
}

func (s Sequence) Weight() rational.Rational { return rational.One }

// Steps is the sum of every child's Weight() — spec.md §4.3's
// "steps = Σ w_i (rational)" — not the sum of their own Steps(): a
// Sequence's structural grid is how many weighted slots it carves the
// cycle into, which is exactly what Weight() reports to a parent
// sequencer, regardless of what subdivision each child's own interior
// declares.
func (s Sequence) Steps() rational.Rational {
	total := s.totalWeight()
	if total.IsZero() {
		return rational.One
	}
	return total
}

func (s Sequence) EstimateCycleDuration() rational.Rational { return rational.One }

// Stack plays every child in full, in parallel, for every queried cycle.
// It is mini-notation's "," (comma) operator.
type Stack struct {
	Children []Pattern
}

// NewStack returns a Stack over children.
func NewStack(children ...Pattern) Stack { return Stack{Children: children} }

func (s Stack) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, child := range s.Children {
		events, err := queryChild(child, span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (s Stack) Weight() rational.Rational { return rational.One }

func (s Stack) Steps() rational.Rational {
	steps := rational.One
	for _, c := range s.Children {
		steps = rational.Lcm(steps, c.Steps())
	}
	return steps
}

func (s Stack) EstimateCycleDuration() rational.Rational {
	if len(s.Children) == 0 {
		return rational.One
	}
	return s.Children[0].EstimateCycleDuration()
}

// ArrangementSection is one entry of an Arrangement: Pattern played for
// Cycles consecutive cycles before control passes to the next section.
type ArrangementSection struct {
	Pattern Pattern
	Cycles  int64
}

// Arrangement places sections end-to-end across multiple cycles and loops
// the whole sequence once it's exhausted. Unlike Sequence, which
// subdivides a single cycle, Arrangement subdivides a timeline of many
// cycles — the structure a host uses to sequence song sections (see
// cmd/cycleplay's --song format).
type Arrangement struct {
	Sections []ArrangementSection
}

// NewArrangement returns an Arrangement over the given sections.
func NewArrangement(sections ...ArrangementSection) Arrangement {
	return Arrangement{Sections: sections}
}

func (a Arrangement) totalCycles() int64 {
	var total int64
	for _, s := range a.Sections {
		total += s.Cycles
	}
	return total
}

// locate returns the section active at cycle c (measured within one loop
// of the arrangement) and the cycle offset of that section's own start.
func (a Arrangement) locate(c int64) (ArrangementSection, int64, bool) {
	total := a.totalCycles()
	if total <= 0 {
		return ArrangementSection{}, 0, false
	}
	localCycle := c % total
	if localCycle < 0 {
		localCycle += total
	}
	var cursor int64
	for _, s := range a.Sections {
		if s.Cycles <= 0 {
			continue
		}
		if localCycle < cursor+s.Cycles {
			return s, c - (localCycle - cursor), true
		}
		cursor += s.Cycles
	}
	return ArrangementSection{}, 0, false
}

func (a Arrangement) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		section, sectionStart, ok := a.locate(seg.Cycle)
		if !ok {
			continue
		}
		// Re-base the section's own pattern so its local cycle 0 aligns
		// with the first cycle it was placed at.
		shift := rational.FromInt(sectionStart)
		localSpan := seg.Span.Shift(shift.Neg())
		events, err := queryChild(section.Pattern, localSpan, ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			whole := e.Whole.Shift(shift)
			part := e.Part.Shift(shift)
			ne, err := event.New(whole, part, e.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	return out, nil
}

func (a Arrangement) Weight() rational.Rational { return rational.One }

func (a Arrangement) Steps() rational.Rational { return rational.One }

func (a Arrangement) EstimateCycleDuration() rational.Rational { return rational.One }
