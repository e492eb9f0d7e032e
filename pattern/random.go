package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/internal/prng"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

func seedFrom(ctx qctx.Context) uint64 {
	return qctx.GetOr(ctx, qctx.RandomSeed, uint64(0))
}

// eventSalt derives a stable per-event salt from the event's own Begin
// time, so that two events at different positions within a cycle draw
// independently even though they share a cycle index.
func eventSalt(begin rational.Rational) uint64 {
	return prng.NodeSalt([]int{int(begin.Num), int(begin.Den)})
}

// degradeNodeSalt tags a Degrade node's per-cycle draw distinctly from
// every other cycle-scoped PRNG consumer (Choice, Randrun). It is the same
// constant for every Degrade node, so two plain Degrades with the same
// seed and Amount drop the same cycles wherever they sit in the tree.
const degradeNodeSalt = 0xD6

// Degrade randomly drops events from Child with constant probability
// Amount (0 keeps everything, 1 drops everything). Exactly one random
// number is drawn per cycle and applied uniformly to every event that
// cycle produces — re-querying the same span always drops the same whole
// cycles (mini-notation "?"), per spec.md §4.9. This is what distinguishes
// plain Degrade from DegradeWithControl, which draws independently per
// event since its probability itself varies within a cycle.
type Degrade struct {
	Amount float64
	Child  Pattern
}

// NewDegrade returns a Degrade pattern, or an error if amount is outside
// [0, 1].
func NewDegrade(amount float64, child Pattern) (Degrade, error) {
	if amount < 0 || amount > 1 {
		return Degrade{}, perr.New(perr.InvalidArgument, "pattern.NewDegrade", "amount must be within [0, 1]")
	}
	return Degrade{Amount: amount, Child: child}, nil
}

func (d Degrade) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	seed := seedFrom(ctx)
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		events, err := queryChild(d.Child, seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		draw := prng.Hash(seed, seg.Cycle, prng.NodeSalt([]int{degradeNodeSalt}))
		if draw < d.Amount {
			continue
		}
		out = append(out, events...)
	}
	return out, nil
}

func (d Degrade) Weight() rational.Rational               { return cycleDurationOr(d.Child, rational.One) }
func (d Degrade) Steps() rational.Rational                 { return stepsOr(d.Child, rational.One) }
func (d Degrade) EstimateCycleDuration() rational.Rational { return cycleDurationOr(d.Child, rational.One) }

// DegradeWithControl drops each event of Child with a probability read
// from Control at that event's onset, instead of a single constant
// (mini-notation's controllable degrade, e.g. driving the drop rate from
// an envelope).
type DegradeWithControl struct {
	Control Pattern
	Child   Pattern
}

func (d DegradeWithControl) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	events, err := queryChild(d.Child, span, ctx)
	if err != nil {
		return nil, err
	}
	seed := seedFrom(ctx)
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		amount, err := controlValueAt(d.Control, e.Whole.Begin, 0, ctx)
		if err != nil {
			return nil, err
		}
		cycle := e.Whole.Begin.Floor()
		draw := prng.Hash(seed, cycle, eventSalt(e.Whole.Begin))
		if draw < amount {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (d DegradeWithControl) Weight() rational.Rational { return cycleDurationOr(d.Child, rational.One) }
func (d DegradeWithControl) Steps() rational.Rational  { return stepsOr(d.Child, rational.One) }
func (d DegradeWithControl) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(d.Child, rational.One)
}

// controlValueAt queries control for the cycle containing at and returns
// the numeric ValueKey of whichever onset event covers at, defaulting to
// def when nothing is active there.
func controlValueAt(control Pattern, at rational.Rational, def float64, ctx qctx.Context) (float64, error) {
	cycle := timespan.Cycle(at.Floor())
	events, err := queryChild(control, cycle, ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range events {
		if e.HasOnset() && e.Part.Begin.LessEq(at) && at.Less(e.Part.End) {
			if v, ok := e.Data[ValueKey]; ok {
				if f, ok := v.AsFloat64(); ok {
					return f, nil
				}
			}
		}
	}
	return def, nil
}

// Choice selects one of Children, uniformly at random, for each cycle
// (mini-notation "|").
type Choice struct {
	Children []Pattern
}

// NewChoice returns a Choice pattern, or an error if no children are given.
func NewChoice(children ...Pattern) (Choice, error) {
	if len(children) == 0 {
		return Choice{}, perr.New(perr.InvalidArgument, "pattern.NewChoice", "at least one child is required")
	}
	return Choice{Children: children}, nil
}

func (c Choice) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	seed := seedFrom(ctx)
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		draw := prng.Hash(seed, seg.Cycle, prng.NodeSalt([]int{0xC0, len(c.Children)}))
		idx := int(draw * float64(len(c.Children)))
		if idx >= len(c.Children) {
			idx = len(c.Children) - 1
		}
		events, err := queryChild(c.Children[idx], seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (c Choice) Weight() rational.Rational { return rational.One }
func (c Choice) Steps() rational.Rational {
	if len(c.Children) == 0 {
		return rational.One
	}
	return c.Children[0].Steps()
}
func (c Choice) EstimateCycleDuration() rational.Rational { return rational.One }

// Randrun produces a pattern of N equal-weight steps per cycle, carrying
// a random permutation of 0..N-1 as each step's ValueKey — a random walk
// through every index exactly once per cycle, reshuffled independently
// each cycle.
type Randrun struct {
	N int
}

// NewRandrun returns a Randrun pattern, or an error if n is not positive.
func NewRandrun(n int) (Randrun, error) {
	if n <= 0 {
		return Randrun{}, perr.New(perr.InvalidArgument, "pattern.NewRandrun", "n must be positive")
	}
	return Randrun{N: n}, nil
}

func (r Randrun) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	seed := seedFrom(ctx)
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		perm := fisherYates(seed, seg.Cycle, r.N)
		children := make([]Pattern, r.N)
		for i, v := range perm {
			children[i] = NewAtomic(voice.New().With(ValueKey, voice.Int(int64(v))))
		}
		events, err := NewSequence(children...).Query(seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (r Randrun) Weight() rational.Rational               { return rational.One }
func (r Randrun) Steps() rational.Rational                { return rational.FromInt(int64(r.N)) }
func (r Randrun) EstimateCycleDuration() rational.Rational { return rational.One }

// fisherYates returns a deterministic random permutation of [0, n) for
// the given seed and cycle.
func fisherYates(seed uint64, cycle int64, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		draw := prng.Hash(seed, cycle, prng.NodeSalt([]int{0xF1, i}))
		j := int(draw * float64(i+1))
		if j > i {
			j = i
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
