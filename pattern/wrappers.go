package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

// Superimpose plays Child unmodified, stacked with Transform(Child) — a
// shorthand for Stack{Child, Transform(Child)} used throughout mini
// notation's function-application sugar.
type Superimpose struct {
	Transform Transform
	Child     Pattern
}

func (s Superimpose) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	layered := s.Child
	if s.Transform != nil {
		layered = s.Transform(s.Child)
	}
	return NewStack(s.Child, layered).Query(span, ctx)
}

func (s Superimpose) Weight() rational.Rational               { return cycleDurationOr(s.Child, rational.One) }
func (s Superimpose) Steps() rational.Rational                 { return stepsOr(s.Child, rational.One) }
func (s Superimpose) EstimateCycleDuration() rational.Rational { return cycleDurationOr(s.Child, rational.One) }

// RepeatCycles holds each cycle of Child for N consecutive output cycles
// before advancing — cycle c of the result queries cycle floor(c/N) of
// Child.
type RepeatCycles struct {
	N     int
	Child Pattern
}

// NewRepeatCycles returns a RepeatCycles pattern, or an error if n is not
// positive.
func NewRepeatCycles(n int, child Pattern) (RepeatCycles, error) {
	if n <= 0 {
		return RepeatCycles{}, perr.New(perr.InvalidArgument, "pattern.NewRepeatCycles", "n must be positive")
	}
	return RepeatCycles{N: n, Child: child}, nil
}

func (r RepeatCycles) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		n := int64(r.N)
		childCycle := floorDiv(seg.Cycle, n)
		shift := rational.FromInt(seg.Cycle - childCycle)
		localSpan := seg.Span.Shift(shift.Neg())
		events, err := queryChild(r.Child, localSpan, ctx)
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

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (r RepeatCycles) Weight() rational.Rational { return cycleDurationOr(r.Child, rational.One) }
func (r RepeatCycles) Steps() rational.Rational  { return stepsOr(r.Child, rational.One) }
func (r RepeatCycles) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(r.Child, rational.One).Mul(rational.FromInt(int64(r.N)))
}

// Take restricts Child to its first N cycles (cycles 0..N-1); queries
// touching any other cycle produce no events there, turning an otherwise
// infinite pattern into a finite one.
type Take struct {
	N     int
	Child Pattern
}

// NewTake returns a Take pattern, or an error if n is not positive.
func NewTake(n int, child Pattern) (Take, error) {
	if n <= 0 {
		return Take{}, perr.New(perr.InvalidArgument, "pattern.NewTake", "n must be positive")
	}
	return Take{N: n, Child: child}, nil
}

func (t Take) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	var out []event.Event
	for _, seg := range span.SplitCycles() {
		if seg.Cycle < 0 || seg.Cycle >= int64(t.N) {
			continue
		}
		events, err := queryChild(t.Child, seg.Span, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (t Take) Weight() rational.Rational               { return cycleDurationOr(t.Child, rational.One) }
func (t Take) Steps() rational.Rational                 { return stepsOr(t.Child, rational.One) }
func (t Take) EstimateCycleDuration() rational.Rational { return cycleDurationOr(t.Child, rational.One) }

// NewPolymeterSteps rescales Child via Fast so it always plays exactly
// Target of its steps per cycle, regardless of how many steps Child's own
// structure has — the mechanism behind mini-notation's polymeter
// step-count override ("<a b c>%4").
func NewPolymeterSteps(target int, child Pattern) (Fast, error) {
	if target <= 0 {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewPolymeterSteps", "target must be positive")
	}
	steps := child.Steps()
	if !steps.Greater(rational.Zero) {
		return Fast{}, perr.New(perr.InvalidArgument, "pattern.NewPolymeterSteps", "child must have positive Steps()")
	}
	factor := rational.FromInt(int64(target)).Div(steps)
	return NewFast(factor, child)
}

// Aligned places one pass of Child — which naturally occupies SrcDur
// cycles — inside a repeating window of TgtDur cycles, biased left/center/
// right within the leftover (TgtDur-SrcDur) gap by Alpha (0 = flush left,
// 1 = flush right, 0.5 = centered). Outside Child's window, Aligned is
// silent.
type Aligned struct {
	SrcDur rational.Rational
	TgtDur rational.Rational
	Alpha  float64
	Child  Pattern
}

// NewAligned returns an Aligned pattern, or an error if srcDur/tgtDur are
// not positive, srcDur exceeds tgtDur, or alpha is outside [0,1].
func NewAligned(srcDur, tgtDur rational.Rational, alpha float64, child Pattern) (Aligned, error) {
	if !srcDur.Greater(rational.Zero) || !tgtDur.Greater(rational.Zero) {
		return Aligned{}, perr.New(perr.InvalidArgument, "pattern.NewAligned", "srcDur and tgtDur must be positive")
	}
	if srcDur.Greater(tgtDur) {
		return Aligned{}, perr.New(perr.InvalidArgument, "pattern.NewAligned", "srcDur must not exceed tgtDur")
	}
	if alpha < 0 || alpha > 1 {
		return Aligned{}, perr.New(perr.InvalidArgument, "pattern.NewAligned", "alpha must be in [0,1]")
	}
	return Aligned{SrcDur: srcDur, TgtDur: tgtDur, Alpha: alpha, Child: child}, nil
}

func (a Aligned) gap() rational.Rational     { return a.TgtDur.Sub(a.SrcDur) }
func (a Aligned) leftGap() rational.Rational { return a.gap().Mul(rational.FromFloat(a.Alpha, 0)) }

// periodSegments splits span at every multiple-of-TgtDur boundary it
// crosses, mirroring timespan.TimeSpan.SplitCycles but with a period of
// TgtDur instead of 1.
func (a Aligned) periodSegments(span timespan.TimeSpan) []timespan.CycleSpan {
	if span.IsEmpty() {
		p := span.Begin.Div(a.TgtDur).Floor()
		return []timespan.CycleSpan{{Cycle: p, Span: span}}
	}
	var out []timespan.CycleSpan
	cur := span.Begin
	for cur.Less(span.End) {
		p := cur.Div(a.TgtDur).Floor()
		periodEnd := a.TgtDur.Mul(rational.FromInt(p + 1))
		segEnd := rational.Min(periodEnd, span.End)
		out = append(out, timespan.CycleSpan{Cycle: p, Span: timespan.TimeSpan{Begin: cur, End: segEnd}})
		cur = segEnd
	}
	return out
}

func (a Aligned) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	leftGap := a.leftGap()
	var out []event.Event
	for _, seg := range a.periodSegments(span) {
		periodStart := a.TgtDur.Mul(rational.FromInt(seg.Cycle))
		windowStart := periodStart.Add(leftGap)
		windowEnd := windowStart.Add(a.SrcDur)
		win := timespan.TimeSpan{Begin: windowStart, End: windowEnd}
		clipped, ok := win.Intersect(seg.Span)
		if !ok {
			continue
		}
		shift := rational.FromInt(seg.Cycle).Mul(a.gap()).Add(leftGap)
		childSpan := clipped.Shift(shift.Neg())
		events, err := queryChild(a.Child, childSpan, ctx)
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

func (a Aligned) Weight() rational.Rational               { return a.TgtDur }
func (a Aligned) Steps() rational.Rational                 { return stepsOr(a.Child, rational.One) }
func (a Aligned) EstimateCycleDuration() rational.Rational { return a.TgtDur }

// Weighted overrides Child's reported Weight() without altering its
// timing or data — used when a Sequence slot needs a weight the child
// pattern itself wouldn't naturally report (mini-notation "@n").
type Weighted struct {
	WeightValue rational.Rational
	Child       Pattern
}

func (w Weighted) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	return queryChild(w.Child, span, ctx)
}

func (w Weighted) Weight() rational.Rational               { return w.WeightValue }
func (w Weighted) Steps() rational.Rational                 { return stepsOr(w.Child, rational.One) }
func (w Weighted) EstimateCycleDuration() rational.Rational { return cycleDurationOr(w.Child, rational.One) }

// StepsOverride overrides Child's reported Steps() without altering its
// timing, weight, or data.
type StepsOverride struct {
	StepsValue rational.Rational
	Child      Pattern
}

func (s StepsOverride) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	return queryChild(s.Child, span, ctx)
}

func (s StepsOverride) Weight() rational.Rational {
	if s.Child == nil {
		return rational.One
	}
	return s.Child.Weight()
}
func (s StepsOverride) Steps() rational.Rational  { return s.StepsValue }
func (s StepsOverride) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(s.Child, rational.One)
}

// PropertyOverride forces every event's Key entry to a constant Value,
// overriding whatever Child itself would have set there (mini-notation's
// "# key value" control composition).
type PropertyOverride struct {
	Key   string
	Value voice.VoiceValue
	Child Pattern
}

func (p PropertyOverride) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	events, err := queryChild(p.Child, span, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		ne, err := event.New(e.Whole, e.Part, e.Data.With(p.Key, p.Value))
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (p PropertyOverride) Weight() rational.Rational { return cycleDurationOr(p.Child, rational.One) }
func (p PropertyOverride) Steps() rational.Rational  { return stepsOr(p.Child, rational.One) }
func (p PropertyOverride) EstimateCycleDuration() rational.Rational {
	return cycleDurationOr(p.Child, rational.One)
}
