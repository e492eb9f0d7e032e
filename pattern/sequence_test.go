package pattern

import (
	"testing"

	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

func atom(s string) Atomic { return NewAtomic(voice.New().With(ValueKey, voice.String(s))) }

func TestSequenceDividesCycleByEqualWeight(t *testing.T) {
	seq := NewSequence(atom("a"), atom("b"))
	events, err := seq.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Whole.Begin.Equal(r(0, 1)) || !events[0].Whole.End.Equal(r(1, 2)) {
		t.Fatalf("expected first slot [0, 1/2), got %s", events[0].Whole)
	}
	if !events[1].Whole.Begin.Equal(r(1, 2)) || !events[1].Whole.End.Equal(r(1, 1)) {
		t.Fatalf("expected second slot [1/2, 1), got %s", events[1].Whole)
	}
}

func TestSequenceRespectsWeights(t *testing.T) {
	seq := NewSequence(Weighted{WeightValue: r(3, 1), Child: atom("a")}, atom("b"))
	events, err := seq.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Whole.Duration().Equal(r(3, 4)) {
		t.Fatalf("expected weighted slot to take 3/4 of the cycle, got duration %s", events[0].Whole.Duration())
	}
}

func TestSequenceStepsIsSumOfWeightsNotChildSteps(t *testing.T) {
	seq := NewSequence(Weighted{WeightValue: r(3, 1), Child: atom("a")}, atom("b"))
	if !seq.Steps().Equal(r(4, 1)) {
		t.Fatalf("expected steps = 3+1 = 4, got %s", seq.Steps())
	}
}

func TestSequenceStepsAllowsFractionalWeights(t *testing.T) {
	seq := NewSequence(Weighted{WeightValue: r(3, 2), Child: atom("a")}, atom("b"))
	if !seq.Steps().Equal(r(5, 2)) {
		t.Fatalf("expected steps = 3/2+1 = 5/2, got %s", seq.Steps())
	}
}

func TestSequenceAcrossMultipleCycles(t *testing.T) {
	seq := NewSequence(atom("a"), atom("b"))
	events, err := seq.Query(timespan.New(r(0, 1), r(2, 1)), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events across 2 cycles, got %d", len(events))
	}
}

func TestStackPlaysAllChildrenInParallel(t *testing.T) {
	stack := NewStack(atom("bd"), atom("hh"))
	events, err := stack.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Whole != events[1].Whole {
		t.Fatalf("expected both stacked events to share the full-cycle whole")
	}
}

func TestArrangementPlacesSectionsSequentially(t *testing.T) {
	arr := NewArrangement(
		ArrangementSection{Pattern: atom("verse"), Cycles: 2},
		ArrangementSection{Pattern: atom("chorus"), Cycles: 1},
	)
	events, err := arr.Query(timespan.New(r(0, 1), r(3, 1)), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events (one per cycle), got %d", len(events))
	}
	for i := 0; i < 2; i++ {
		if events[i].Data[ValueKey].Str != "verse" {
			t.Fatalf("cycle %d: expected verse section, got %v", i, events[i].Data[ValueKey])
		}
	}
	if events[2].Data[ValueKey].Str != "chorus" {
		t.Fatalf("cycle 2: expected chorus section, got %v", events[2].Data[ValueKey])
	}
}

func TestArrangementLoopsAfterTotalCycles(t *testing.T) {
	arr := NewArrangement(ArrangementSection{Pattern: atom("a"), Cycles: 1})
	events, err := arr.Query(timespan.Cycle(5), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Data[ValueKey].Str != "a" {
		t.Fatalf("expected the single section to loop at cycle 5, got %v", events)
	}
}
