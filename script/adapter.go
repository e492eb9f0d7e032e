// Package script defines the contract boundary between this module and an
// embedding scripting layer (Tidal/Strudel-style ".js"/".tidal" front ends).
// No scripting language is implemented here — Transform, Callable, and
// Evaluator are interfaces an embedder satisfies, the same role
// sequencer.VoiceEngine plays for the teacher's audio backends: this
// package only describes the shape of the contract and the error handling
// at its edges.
package script

import (
	"github.com/google/uuid"

	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/perr"
)

// Transform is a host-supplied pattern transformation that can fail —
// unlike pattern.Transform (a bare func(Pattern) Pattern with no error
// channel, used internally by Superimpose/FirstOf/LastOf), a scripting
// callback runs arbitrary host code and must be able to report failure.
type Transform interface {
	Apply(p pattern.Pattern) (pattern.Pattern, error)
}

// HostFunc adapts a plain function to Transform, the scripting-side
// equivalent of http.HandlerFunc.
type HostFunc func(p pattern.Pattern) (pattern.Pattern, error)

// Apply implements Transform.
func (f HostFunc) Apply(p pattern.Pattern) (pattern.Pattern, error) { return f(p) }

// Callable is a Transform registered with the embedding script layer under
// a stable identity, so the host can look up or evict a callback by handle
// rather than by raw function pointer (function values aren't comparable
// in Go, and a script environment may re-register the same logical
// callback under a new closure on every reload).
type Callable struct {
	ID   uuid.UUID
	Name string
	Fn   Transform
}

// NewCallable wraps fn under a freshly minted handle.
func NewCallable(name string, fn Transform) Callable {
	return Callable{ID: uuid.New(), Name: name, Fn: fn}
}

// Apply implements Transform by delegating to Fn.
func (c Callable) Apply(p pattern.Pattern) (pattern.Pattern, error) {
	if c.Fn == nil {
		return nil, perr.Newf(perr.ScriptError, "script.Callable.Apply", "callable %q (%s) has no function bound", c.Name, c.ID)
	}
	return c.Fn.Apply(p)
}

// AsPatternTransform adapts c to the error-less pattern.Transform signature
// that Superimpose/FirstOf/LastOf/degrade-with-control expect, so a
// registered script callback can sit anywhere in a pattern.Pattern tree. A
// failing Apply doesn't return a zero Pattern silently: it panics via
// pattern.RaiseScriptError, which pattern.QueryCycles and pattern.Describe
// recover at the query boundary and turn back into a normal error return.
func (c Callable) AsPatternTransform() pattern.Transform {
	return func(p pattern.Pattern) pattern.Pattern {
		out, err := c.Apply(p)
		if err != nil {
			pattern.RaiseScriptError("script.Callable.AsPatternTransform", err)
		}
		return out
	}
}

// Evaluator compiles scripting-layer source directly into a queryable
// pattern.Pattern, the entry point an embedder wires up for a top-level
// "run this program" action (analogous to the teacher's
// mml.NewParser(cfg).Parse returning a playable *Score).
type Evaluator interface {
	Eval(src string) (pattern.Pattern, error)
}
