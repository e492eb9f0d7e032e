package pattern

import (
	"testing"

	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

func TestLabeledRenamesValueKey(t *testing.T) {
	l := Labeled{Key: "note", Child: atom("c4")}
	events, err := l.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := events[0].Data[ValueKey]; ok {
		t.Fatalf("expected bare ValueKey to be removed after renaming")
	}
	if events[0].Data["note"].Str != "c4" {
		t.Fatalf("expected note=c4, got %v", events[0].Data["note"])
	}
}

func TestControlMergesSourceWithSampledControlPattern(t *testing.T) {
	source := NewSequence(atom("bd"), atom("sd"))
	gain := NewAtomic(voice.New().With(ValueKey, voice.Number(0.8)))
	combine := func(source, control voice.VoiceData) voice.VoiceData {
		g, _ := control[ValueKey].AsFloat64()
		return source.With("gain", voice.Number(g))
	}
	c := Control{Source: source, ControlPattern: gain, Combiner: combine}
	events, err := c.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for i, want := range []string{"bd", "sd"} {
		if events[i].Data[ValueKey].Str != want {
			t.Fatalf("event %d: expected %q, got %v", i, want, events[i].Data[ValueKey])
		}
		if g, ok := events[i].Data["gain"].AsFloat64(); !ok || g != 0.8 {
			t.Fatalf("event %d: expected gain=0.8, got %v", i, events[i].Data["gain"])
		}
	}
}

func TestControlProducesNothingWhereNoOverlap(t *testing.T) {
	source := atom("bd")
	c := Control{Source: source, ControlPattern: Gap{}, Combiner: func(s, _ voice.VoiceData) voice.VoiceData { return s }}
	events, err := c.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events when the control pattern never overlaps, got %v", events)
	}
}

func TestMapTransformsData(t *testing.T) {
	m := Map{Child: atom("a"), Func: func(d voice.VoiceData) voice.VoiceData {
		return d.With("extra", voice.Bool(true))
	}}
	events, err := m.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !events[0].Data["extra"].Bool {
		t.Fatalf("expected extra=true, got %v", events[0].Data["extra"])
	}
}

func TestFilterDropsNonMatching(t *testing.T) {
	seq := NewSequence(atom("a"), atom("b"))
	f := Filter{Child: seq, Pred: func(d voice.VoiceData) bool { return d[ValueKey].Str == "a" }}
	events, err := f.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Data[ValueKey].Str != "a" {
		t.Fatalf("expected only 'a' to survive, got %v", events)
	}
}

func TestBindSamplesInnerPatternPerOuterEvent(t *testing.T) {
	outer := NewSequence(atom("x"), atom("y"))
	bind := Bind{Child: outer, Func: func(d voice.VoiceData) Pattern {
		return NewAtomic(voice.New().With(ValueKey, voice.String("inner-"+d[ValueKey].Str)))
	}}
	events, err := bind.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Data[ValueKey].Str != "inner-x" || events[1].Data[ValueKey].Str != "inner-y" {
		t.Fatalf("unexpected bind output: %v", events)
	}
}
