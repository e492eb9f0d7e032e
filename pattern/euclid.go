package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// bjorklund distributes k pulses as evenly as possible across n steps
// using Bjorklund's algorithm (the same construction used by Tidal's and
// Strudel's euclidean rhythm implementations): repeatedly pair off
// leftover groups until at most one remainder group is left, then
// concatenate.
func bjorklund(k, n int) []bool {
	out := make([]bool, n)
	if n <= 0 {
		return out
	}
	if k <= 0 {
		return out
	}
	if k >= n {
		for i := range out {
			out[i] = true
		}
		return out
	}
	a := make([][]bool, k)
	for i := range a {
		a[i] = []bool{true}
	}
	b := make([][]bool, n-k)
	for i := range b {
		b[i] = []bool{false}
	}
	for len(b) > 1 {
		m := len(a)
		if len(b) < m {
			m = len(b)
		}
		newA := make([][]bool, m)
		for i := 0; i < m; i++ {
			g := append([]bool{}, a[i]...)
			g = append(g, b[i]...)
			newA[i] = g
		}
		var remainder [][]bool
		if len(a) > m {
			remainder = a[m:]
		} else {
			remainder = b[m:]
		}
		a = newA
		b = remainder
	}
	var flat []bool
	for _, g := range a {
		flat = append(flat, g...)
	}
	for _, g := range b {
		flat = append(flat, g...)
	}
	return flat
}

// rotateJSSlice rotates seq by r using the same semantics as JavaScript's
// Array.prototype.slice(-r) concatenated with slice(0, -r): for 0 < r <
// len(seq) this rotates the last r elements to the front, but unlike a
// modular rotation, |r| >= len(seq) collapses to the identity rather than
// wrapping — slice(-r) with an out-of-range negative index clamps to 0 or
// len(seq) instead of wrapping around. This module pins that exact
// behavior (rather than normalizing r mod len(seq)) because it is the
// behavior mini-notation authors coming from Strudel/Tidal already expect.
func rotateJSSlice(seq []bool, r int) []bool {
	n := len(seq)
	if n == 0 {
		return seq
	}
	idx := -r
	var offset int
	if idx < 0 {
		offset = n + idx
		if offset < 0 {
			offset = 0
		}
	} else {
		offset = idx
		if offset > n {
			offset = n
		}
	}
	out := make([]bool, 0, n)
	out = append(out, seq[offset:]...)
	out = append(out, seq[:offset]...)
	return out
}

// Euclidean structures Child onto a Bjorklund rhythm of Pulses hits over
// Steps divisions of the cycle, optionally rotated by Rotation (mini
// notation "pattern(pulses,steps,rotation)"). Child plays at each true
// step; each false step is silent.
type Euclidean struct {
	Pulses   int
	Steps_   int
	Rotation int
	Child    Pattern
}

// NewEuclidean validates steps and returns an Euclidean pattern. Pulses
// may be negative per spec.md §4.8: a negative pulse count inverts the
// resulting mask (the "off" steps of the positive rhythm become "on").
func NewEuclidean(pulses, steps, rotation int, child Pattern) (Euclidean, error) {
	if steps <= 0 {
		return Euclidean{}, perr.New(perr.InvalidArgument, "pattern.NewEuclidean", "steps must be positive")
	}
	return Euclidean{Pulses: pulses, Steps_: steps, Rotation: rotation, Child: child}, nil
}

func (e Euclidean) bools() []bool {
	invert := e.Pulses < 0
	pulses := e.Pulses
	if invert {
		pulses = -pulses
	}
	bools := bjorklund(pulses, e.Steps_)
	if invert {
		for i, v := range bools {
			bools[i] = !v
		}
	}
	if e.Rotation != 0 {
		bools = rotateJSSlice(bools, e.Rotation)
	}
	return bools
}

func (e Euclidean) sequence() Sequence {
	bools := e.bools()
	children := make([]Pattern, len(bools))
	for i, on := range bools {
		if on {
			children[i] = e.Child
		} else {
			children[i] = Gap{}
		}
	}
	return NewSequence(children...)
}

func (e Euclidean) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	return e.sequence().Query(span, ctx)
}

func (e Euclidean) Weight() rational.Rational               { return rational.One }
func (e Euclidean) Steps() rational.Rational                { return rational.FromInt(int64(e.Steps_)) }
func (e Euclidean) EstimateCycleDuration() rational.Rational { return rational.One }

// EuclideanMorph interpolates between a Euclidean rhythm's Bjorklund pulse
// positions (Alpha 0) and an evenly-spaced k-pulses-across-the-cycle
// rhythm (Alpha 1), linearly blending each pulse's phase position between
// the two — spec.md §8's "euclideanMorph(pulses, steps, alpha)" scenario.
// Child plays at each interpolated pulse, filling the span until the next
// pulse (or the end of the cycle, for the last one).
type EuclideanMorph struct {
	Pulses int
	Steps_ int
	Alpha  float64
	Child  Pattern
}

// NewEuclideanMorph validates its arguments and returns an EuclideanMorph
// pattern.
func NewEuclideanMorph(pulses, steps int, alpha float64, child Pattern) (EuclideanMorph, error) {
	if steps <= 0 {
		return EuclideanMorph{}, perr.New(perr.InvalidArgument, "pattern.NewEuclideanMorph", "steps must be positive")
	}
	if pulses <= 0 || pulses > steps {
		return EuclideanMorph{}, perr.New(perr.InvalidArgument, "pattern.NewEuclideanMorph", "pulses must be within (0, steps]")
	}
	if alpha < 0 || alpha > 1 {
		return EuclideanMorph{}, perr.New(perr.InvalidArgument, "pattern.NewEuclideanMorph", "alpha must be in [0,1]")
	}
	return EuclideanMorph{Pulses: pulses, Steps_: steps, Alpha: alpha, Child: child}, nil
}

// onsets returns this rhythm's k pulse-start positions, in ascending
// order, as fractions of one cycle: Bjorklund's own grid positions at
// Alpha 0, an evenly-spaced k-against-the-cycle rhythm at Alpha 1, and a
// pointwise linear blend of the two in between.
func (e EuclideanMorph) onsets() []rational.Rational {
	bools := bjorklund(e.Pulses, e.Steps_)
	var grid []rational.Rational
	for i, on := range bools {
		if on {
			grid = append(grid, rational.New(int64(i), int64(e.Steps_)))
		}
	}
	k := len(grid)
	if k == 0 {
		return nil
	}
	alpha := rational.FromFloat(e.Alpha, 0)
	oneMinusAlpha := rational.One.Sub(alpha)
	out := make([]rational.Rational, k)
	for i, g := range grid {
		even := rational.New(int64(i), int64(k))
		out[i] = g.Mul(oneMinusAlpha).Add(even.Mul(alpha))
	}
	return out
}

func (e EuclideanMorph) sequence() Sequence {
	positions := e.onsets()
	children := make([]Pattern, 0, len(positions))
	for i, pos := range positions {
		next := rational.One
		if i+1 < len(positions) {
			next = positions[i+1]
		}
		width := next.Sub(pos)
		if !width.Greater(rational.Zero) {
			continue
		}
		children = append(children, Weighted{WeightValue: width, Child: e.Child})
	}
	return NewSequence(children...)
}

func (e EuclideanMorph) Query(span timespan.TimeSpan, ctx qctx.Context) ([]event.Event, error) {
	return e.sequence().Query(span, ctx)
}

func (e EuclideanMorph) Weight() rational.Rational               { return rational.One }
func (e EuclideanMorph) Steps() rational.Rational                { return rational.FromInt(int64(e.Steps_)) }
func (e EuclideanMorph) EstimateCycleDuration() rational.Rational { return rational.One }
