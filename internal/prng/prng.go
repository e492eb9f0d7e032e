// Package prng implements the deterministic pseudo-random draws used by
// Degrade, Choice, and Randrun: a pure hash of (seed, cycle, node salt)
// rather than a stateful generator, so that re-querying the same span
// twice — from different goroutines, in any order — always yields the
// same values.
package prng

// Hash returns a value in [0, 1) deterministically derived from seed,
// cycle, and salt. It is built from SplitMix64's mixing step, which is
// cheap, has no known short cycles for this kind of one-shot use, and
// (unlike most off-the-shelf PRNGs) needs no persistent state between
// calls.
func Hash(seed uint64, cycle int64, salt uint64) float64 {
	x := seed
	x ^= uint64(cycle) * 0x9E3779B97F4A7C15
	x ^= salt * 0xBF58476D1CE4E5B9
	x = splitmix64(x)
	// Keep 53 bits, matching float64's mantissa width, for a uniform draw
	// in [0, 1).
	const mantissaBits = 53
	return float64(x>>(64-mantissaBits)) / float64(uint64(1)<<mantissaBits)
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// NodeSalt folds a sequence of ints into a stable salt: different
// sequences give different salts. The callers in package pattern pass
// fixed tags (and, for per-event draws, an event's begin time), not a
// node's path through the pattern tree, so two identical combinators
// draw the same values wherever they sit.
func NodeSalt(path []int) uint64 {
	// FNV-1a over the path, treating each int as its low 32 bits.
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, p := range path {
		b := uint32(p)
		for i := 0; i < 4; i++ {
			h ^= uint64(byte(b >> (8 * i)))
			h *= prime64
		}
	}
	return h
}
