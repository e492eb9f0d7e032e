package pattern

import "github.com/cbegin/cyclepattern/perr"

// Error, Kind and the Kind constants are re-exported from perr so that
// callers working only with this package never need to import perr
// directly.
type Error = perr.Error
type Kind = perr.Kind

const (
	InvalidArgument   = perr.InvalidArgument
	ParseError        = perr.ParseError
	ScriptError       = perr.ScriptError
	InternalInvariant = perr.InternalInvariant
)
