package pattern

import (
	"testing"

	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

func upperTransform(p Pattern) Pattern {
	return Map{Child: p, Func: func(d voice.VoiceData) voice.VoiceData {
		v := d[ValueKey]
		v.Str = v.Str + "!"
		return d.With(ValueKey, v)
	}}
}

func TestFirstOfAppliesOnLeadCycleOnly(t *testing.T) {
	fo, err := NewFirstOf(2, upperTransform, atom("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cycle0, err := fo.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle0[0].Data[ValueKey].Str != "a!" {
		t.Fatalf("expected transform applied on cycle 0, got %v", cycle0[0].Data[ValueKey])
	}
	cycle1, err := fo.Query(timespan.Cycle(1), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle1[0].Data[ValueKey].Str != "a" {
		t.Fatalf("expected untransformed on cycle 1, got %v", cycle1[0].Data[ValueKey])
	}
}

func TestLastOfAppliesOnTrailingCycleOnly(t *testing.T) {
	lo, err := NewLastOf(2, upperTransform, atom("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cycle0, err := lo.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle0[0].Data[ValueKey].Str != "a" {
		t.Fatalf("expected untransformed on cycle 0, got %v", cycle0[0].Data[ValueKey])
	}
	cycle1, err := lo.Query(timespan.Cycle(1), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle1[0].Data[ValueKey].Str != "a!" {
		t.Fatalf("expected transform applied on cycle 1, got %v", cycle1[0].Data[ValueKey])
	}
}

func TestFirstOfRejectsNonPositiveN(t *testing.T) {
	if _, err := NewFirstOf(0, upperTransform, atom("a")); err == nil {
		t.Fatalf("expected error for n=0")
	}
}
