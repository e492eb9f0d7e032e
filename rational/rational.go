// Package rational implements exact fractional time arithmetic.
//
// Every pattern query boundary in this module is expressed in Rational so
// that long-running cycle queries never accumulate floating-point drift.
package rational

import (
	"fmt"
	"math"
	"math/big"
)

// Rational is a canonical reduced fraction Num/Den with Den > 0.
type Rational struct {
	Num int64
	Den int64
}

// Zero, One and OneHalf are convenience constants used throughout the
// combinator catalog.
var (
	Zero    = Rational{0, 1}
	One     = Rational{1, 1}
	OneHalf = Rational{1, 2}
)

// New returns the reduced fraction n/d. It panics on d == 0, matching the
// teacher's own policy of surfacing malformed constructor input immediately
// rather than deferring it to a later, harder-to-diagnose crash.
func New(n, d int64) Rational {
	if d == 0 {
		panic("rational: New called with zero denominator")
	}
	return reduce(n, d)
}

// FromInt returns n/1.
func FromInt(n int64) Rational { return Rational{n, 1} }

// FromFloat returns the best rational approximation of f with a denominator
// bounded by maxDenominator, via the standard continued-fraction method.
// maxDenominator <= 0 defaults to 1_000_000.
func FromFloat(f float64, maxDenominator int64) Rational {
	if maxDenominator <= 0 {
		maxDenominator = 1_000_000
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	neg := f < 0
	if neg {
		f = -f
	}
	// Continued fraction convergents h/k.
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	x := f
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > maxDenominator || k2 <= 0 {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2
		frac := x - float64(a)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
	}
	if k1 == 0 {
		k1 = 1
	}
	n := h1
	if neg {
		n = -n
	}
	return reduce(n, k1)
}

func reduce(n, d int64) Rational {
	if d < 0 {
		n, d = -n, -d
	}
	if n == 0 {
		return Rational{0, 1}
	}
	g := gcd(absInt64(n), d)
	if g != 0 {
		n /= g
		d /= g
	}
	return Rational{n, d}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// overflowsMul reports whether a*b would overflow int64.
func overflowsMul(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	r := a * b
	return r/b != a
}

// bigRat converts r to a math/big.Rat for overflow-safe intermediate work.
func (r Rational) bigRat() *big.Rat { return big.NewRat(r.Num, r.Den) }

func fromBigRat(r *big.Rat) Rational {
	return reduce(r.Num().Int64(), r.Denom().Int64())
}

// Add returns r + o, falling back to arbitrary precision when the naive
// cross-multiplication would overflow int64 — the spec's "i128 numerator
// and rejection-on-overflow" note, adapted to Go's integer widths via
// math/big instead of a nonexistent 128-bit integer type.
func (r Rational) Add(o Rational) Rational {
	if overflowsMul(r.Num, o.Den) || overflowsMul(o.Num, r.Den) || overflowsMul(r.Den, o.Den) {
		return fromBigRat(new(big.Rat).Add(r.bigRat(), o.bigRat()))
	}
	return reduce(r.Num*o.Den+o.Num*r.Den, r.Den*o.Den)
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return r.Add(o.Neg())
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	if overflowsMul(r.Num, o.Num) || overflowsMul(r.Den, o.Den) {
		return fromBigRat(new(big.Rat).Mul(r.bigRat(), o.bigRat()))
	}
	return reduce(r.Num*o.Num, r.Den*o.Den)
}

// Div returns r / o. Division by zero is a domain error surfaced to the
// caller per spec.md §3; callers that cannot tolerate a panic should check
// o.Num != 0 first. We panic here (rather than silently returning Zero)
// because a silent zero would be indistinguishable from a legitimate
// result and would corrupt downstream timing math.
func (r Rational) Div(o Rational) Rational {
	if o.Num == 0 {
		panic("rational: division by zero")
	}
	return r.Mul(Rational{o.Den, o.Num})
}

// Neg returns -r.
func (r Rational) Neg() Rational { return Rational{-r.Num, r.Den} }

// Abs returns |r|.
func (r Rational) Abs() Rational {
	if r.Num < 0 {
		return r.Neg()
	}
	return r
}

// Mod returns the canonical non-negative remainder of r modulo o, matching
// floor-mod semantics (e.g. (-1/4) Mod 1 == 3/4), which is what cycle-index
// wraparound throughout the combinator catalog assumes.
func (r Rational) Mod(o Rational) Rational {
	q := r.Div(o).Floor()
	return r.Sub(o.Mul(FromInt(q)))
}

// Cmp returns -1, 0, or 1 as r is less than, equal to, or greater than o.
func (r Rational) Cmp(o Rational) int {
	lhs := r.Num * o.Den
	rhs := o.Num * r.Den
	if overflowsMul(r.Num, o.Den) || overflowsMul(o.Num, r.Den) {
		return r.bigRat().Cmp(o.bigRat())
	}
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Less, LessEq, Greater, GreaterEq, Equal are Cmp-derived conveniences used
// pervasively across the combinator catalog for span comparisons.
func (r Rational) Less(o Rational) bool      { return r.Cmp(o) < 0 }
func (r Rational) LessEq(o Rational) bool    { return r.Cmp(o) <= 0 }
func (r Rational) Greater(o Rational) bool   { return r.Cmp(o) > 0 }
func (r Rational) GreaterEq(o Rational) bool { return r.Cmp(o) >= 0 }
func (r Rational) Equal(o Rational) bool     { return r.Cmp(o) == 0 }

// Floor returns the greatest integer <= r.
func (r Rational) Floor() int64 {
	q := r.Num / r.Den
	if r.Num%r.Den != 0 && r.Num < 0 {
		q--
	}
	return q
}

// Ceil returns the least integer >= r.
func (r Rational) Ceil() int64 {
	q := r.Num / r.Den
	if r.Num%r.Den != 0 && r.Num > 0 {
		q++
	}
	return q
}

// Float64 converts r to a float64, used only at reporting boundaries
// (the engine computes exactly; floats only appear when printing).
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.Num == 0 }

// IsInteger reports whether r has no fractional part.
func (r Rational) IsInteger() bool { return r.Den == 1 }

// Min returns the smaller of r and o.
func Min(r, o Rational) Rational {
	if r.Less(o) {
		return r
	}
	return o
}

// Max returns the larger of r and o.
func Max(r, o Rational) Rational {
	if r.Greater(o) {
		return r
	}
	return o
}

// Lcm returns the least common multiple of r and o, treated as the
// smallest positive rational multiple of both — used by Stack to combine
// child Steps() values.
func Lcm(r, o Rational) Rational {
	if r.IsZero() {
		return o
	}
	if o.IsZero() {
		return r
	}
	// lcm(a/b, c/d) = lcm(a*d, c*b) / gcd(b, d) expressed over a common
	// denominator, computed by reducing to integers first.
	rn, rd := r.Num, r.Den
	on, od := o.Num, o.Den
	commonDen := rd / gcd(rd, od) * od
	rNumOverCommon := rn * (commonDen / rd)
	oNumOverCommon := on * (commonDen / od)
	g := gcd(absInt64(rNumOverCommon), absInt64(oNumOverCommon))
	var numLcm int64
	if g == 0 {
		numLcm = 0
	} else {
		numLcm = absInt64(rNumOverCommon) / g * absInt64(oNumOverCommon)
	}
	return reduce(numLcm, commonDen)
}

// String renders r as "n/d", or "n" when the denominator is 1.
func (r Rational) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
