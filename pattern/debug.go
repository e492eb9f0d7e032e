package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/qctx"
)

// Describe queries p over [from, to) and renders the resulting events as
// one line each, sorted by onset, for quick inspection in a REPL or CLI.
func Describe(p Pattern, from, to int64, ctx qctx.Context) (desc string, err error) {
	defer Recover(&err)
	events, err := QueryCycles(p, from, to, ctx)
	if err != nil {
		return "", err
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Part.Begin.Equal(events[j].Part.Begin) {
			return events[i].Part.Begin.Less(events[j].Part.Begin)
		}
		return events[i].Part.End.Less(events[j].Part.End)
	})
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "%s\n", formatEvent(e))
	}
	return b.String(), nil
}

func formatEvent(e event.Event) string {
	if e.Whole == e.Part {
		return fmt.Sprintf("%-16s %s", e.Part, formatData(e))
	}
	return fmt.Sprintf("%-16s whole=%-16s %s", e.Part, e.Whole, formatData(e))
}

func formatData(e event.Event) string {
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, e.Data[k].GoString()))
	}
	return strings.Join(parts, " ")
}
