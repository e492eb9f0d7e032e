// Command cycledump parses a mini-notation string, queries it over a
// cycle window, and prints the resulting events — either as an aligned
// table (the default) or, with -tree, as the pattern's approximate
// mini-notation rendering. It is the teacher's cmd/play_mml the way a
// query inspector rather than a player: parse, query, print, exit.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/cbegin/cyclepattern/event"
	"github.com/cbegin/cyclepattern/mininotation"
	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/qctx"
)

func main() {
	var (
		src     = flag.String("pattern", "bd(3,8) [hh hh] sd", "mini-notation source to query")
		control = flag.String("control", "", "if set, rename the bare value onto this control key (e.g. 's', 'note')")
		from    = flag.Int64("from", 0, "first cycle to query (inclusive)")
		to      = flag.Int64("to", 1, "last cycle to query (exclusive)")
		tree    = flag.Bool("tree", false, "print the parsed pattern's approximate mini-notation tree instead of querying it")
	)
	flag.Parse()

	var (
		p   pattern.Pattern
		err error
	)
	if *control != "" {
		p, err = mininotation.ParseControl(*control, *src)
	} else {
		p, err = mininotation.Parse(*src)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("parse error: %v", err))
		os.Exit(1)
	}

	if *tree {
		fmt.Println(pattern.Tree(p))
		return
	}

	events, err := pattern.QueryCycles(p, *from, *to, qctx.Context{})
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("query error: %v", err))
		os.Exit(1)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Part.Begin.Equal(events[j].Part.Begin) {
			return events[i].Part.Begin.Less(events[j].Part.Begin)
		}
		return events[i].Part.End.Less(events[j].Part.End)
	})

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"begin", "end", "whole", "data"})
	for _, e := range events {
		whole := ""
		if e.Whole != e.Part {
			whole = e.Whole.String()
		}
		table.Append([]string{e.Part.Begin.String(), e.Part.End.String(), whole, formatData(e)})
	}
	table.Render()
	fmt.Println(color.GreenString("%d events over cycles [%d, %d)", len(events), *from, *to))
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
