package mininotation

import (
	"fmt"

	"github.com/cbegin/cyclepattern/perr"
)

// parseErr is a lightweight carrier for a byte offset plus a formatted
// message, used internally before the enclosing Parse call has the full
// source text available to translate it into a line/column pair.
type parseErr struct {
	pos int
	msg string
}

func (e *parseErr) Error() string { return e.msg }

func errAt(pos int, format string, args ...any) error {
	return &parseErr{pos: pos, msg: fmt.Sprintf(format, args...)}
}

// lineCol converts a byte offset into src to a 1-based (line, column) pair.
func lineCol(src string, pos int) (line, col int) {
	line, col = 1, 1
	if pos > len(src) {
		pos = len(src)
	}
	for i := 0; i < pos; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// toPerr converts an internal parseErr into the taxonomy's ParseError,
// including a human-readable line/column alongside the byte offset perr
// already carries.
func toPerr(op, src string, err error) error {
	if err == nil {
		return nil
	}
	pe, ok := err.(*parseErr)
	if !ok {
		return perr.Wrap(perr.ParseError, op, err)
	}
	line, col := lineCol(src, pe.pos)
	return perr.AtPos(op, pe.pos, "line %d, col %d: %s", line, col, pe.msg)
}
