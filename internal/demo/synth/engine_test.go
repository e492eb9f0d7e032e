package synth

import (
	"testing"

	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/voice"
)

func TestEngineProcessProducesNonZeroAudioAfterOnset(t *testing.T) {
	p := pattern.NewAtomic(voice.New().With(pattern.ValueKey, voice.String("bd")))
	e := New(8000, p, qctx.Context{}, 1.0, DefaultParams())

	// Render exactly one full cycle (8000 frames at cps=1); the single
	// atomic onset at cycle-relative 0 should trigger a voice that leaves
	// an audible mark somewhere in the buffer.
	dst := make([]float32, 8000*2)
	e.Process(dst)

	nonZero := false
	for _, s := range dst {
		if s != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("expected at least one non-zero sample after an onset")
	}
}

func TestEngineProcessIsSilentWithNoEvents(t *testing.T) {
	p := pattern.Gap{}
	e := New(8000, p, qctx.Context{}, 1.0, DefaultParams())
	dst := make([]float32, 800*2)
	e.Process(dst)
	for i, s := range dst {
		if s != 0 {
			t.Fatalf("expected silence with no onsets, got nonzero sample at %d: %v", i, s)
		}
	}
}

func TestEngineResolvesFrequencyFromNoteControl(t *testing.T) {
	p := pattern.Labeled{Key: "note", Child: pattern.NewAtomic(voice.New().With(pattern.ValueKey, voice.String("a4")))}
	e := New(44100, p, qctx.Context{}, 1.0, DefaultParams())
	dst := make([]float32, 44100*2)
	e.Process(dst)
	if len(e.voices) == 0 {
		t.Fatalf("expected a voice pool")
	}
	found := false
	for _, v := range e.voices {
		if v.freq == 440 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a voice at 440 Hz for note a4")
	}
}
