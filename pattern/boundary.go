package pattern

import "github.com/cbegin/cyclepattern/perr"

// scriptPanic is the internal carrier a host-supplied Transform uses to
// surface a callback failure: Transform's signature (func(Pattern)
// Pattern, see cyclepick.go's Transform type) has no error
// channel of its own, so a failing callback panics with this type and
// Recover converts it back into a normal error return at the query
// boundary — the one place that catches it, the same posture the
// teacher's Parser.Parse gives its own internal panics.
type scriptPanic struct{ err error }

// Recover is deferred by any entry point that queries a Pattern tree
// which might contain host-supplied Transforms (the scripting adapter's
// Callable.AsPatternTransform, chiefly). It turns a RaiseScriptError panic back
// into *errp and re-panics anything else untouched.
func Recover(errp *error) {
	if r := recover(); r != nil {
		if sp, ok := r.(scriptPanic); ok {
			*errp = sp.err
			return
		}
		panic(r)
	}
}

// RaiseScriptError panics with err wrapped as a Kind ScriptError, to be
// caught by a deferred Recover. Exported so the script package's
// Callable adapter (which wraps a host callback behind the error-less
// Transform signature) can report a callback failure without silently
// swallowing it.
func RaiseScriptError(op string, err error) {
	panic(scriptPanic{err: perr.Wrap(perr.ScriptError, op, err)})
}
