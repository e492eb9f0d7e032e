// Package qctx implements QueryContext, the immutable, typed,
// heterogeneous bag of ambient values threaded through every Pattern
// query: random seed, control ranges, and whatever else a host or
// combinator wants to stash for the duration of one query call.
package qctx

import "sync/atomic"

var keyCounter uint64

// Key identifies one typed slot in a Context. Keys are created with
// NewKey and compare by identity, not by name — two keys created with the
// same name string are still distinct slots, which is what lets
// independently-written combinators use the same human-readable name
// without colliding.
type Key[T any] struct {
	name string
	id   uint64
}

// Name returns the human-readable name a key was created with, for
// debugging and error messages.
func (k Key[T]) Name() string { return k.name }

// NewKey creates a fresh, uniquely-identified key for a value of type T.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name, id: atomic.AddUint64(&keyCounter, 1)}
}

type entry struct {
	key   any
	value any
}

// Context is an immutable association list from Key[T] to T. The zero
// value is a valid empty context. With returns a new Context; it never
// mutates the receiver, so a Context can be safely shared across
// concurrently-running queries.
type Context struct {
	entries []entry
}

// With returns a copy of c with key bound to value, shadowing any
// previous binding for the same key.
func With[T any](c Context, key Key[T], value T) Context {
	out := Context{entries: make([]entry, 0, len(c.entries)+1)}
	for _, e := range c.entries {
		if k, ok := e.key.(Key[T]); ok && k.id == key.id {
			continue
		}
		out.entries = append(out.entries, e)
	}
	out.entries = append(out.entries, entry{key: key, value: value})
	return out
}

// Get looks up key in c. ok is false if no binding exists.
func Get[T any](c Context, key Key[T]) (T, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		if k, ok := e.key.(Key[T]); ok && k.id == key.id {
			return e.value.(T), true
		}
	}
	var zero T
	return zero, false
}

// GetOr looks up key in c, returning def if unset.
func GetOr[T any](c Context, key Key[T], def T) T {
	if v, ok := Get(c, key); ok {
		return v
	}
	return def
}

// Reserved context keys used by the combinator catalog.
var (
	// RandomSeed seeds every deterministic PRNG draw within a query
	// (Degrade, Choice, Randrun, ...). Queries whose context never sets it
	// use seed 0.
	RandomSeed = NewKey[uint64]("random_seed")

	// ControlMin and ControlMax bound ContextRangeMap's output range;
	// ContextModifier callbacks read these to rescale a continuous
	// control signal.
	ControlMin = NewKey[float64]("control_min")
	ControlMax = NewKey[float64]("control_max")
)
