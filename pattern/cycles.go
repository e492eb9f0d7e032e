package pattern

import (
	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
)

// QueryCycles queries p over the cycle-aligned span [from, to), the
// convenience most callers reach for instead of building a TimeSpan by
// hand — grounded in the teacher's own offline-rendering helpers, which
// likewise wrap the general-purpose API with a simpler cycle-count entry
// point for batch use.
func QueryCycles(p Pattern, from, to int64, ctx qctx.Context) (events []event.Event, err error) {
	if to < from {
		return nil, perr.New(perr.InvalidArgument, "pattern.QueryCycles", "to must be >= from")
	}
	defer Recover(&err)
	span := timespan.New(rational.FromInt(from), rational.FromInt(to))
	return p.Query(span, ctx)
}
