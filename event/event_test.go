package event

import (
	"testing"

	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/timespan"
	"github.com/cbegin/cyclepattern/voice"
)

func r(n, d int64) rational.Rational { return rational.New(n, d) }

func TestNewValid(t *testing.T) {
	whole := timespan.New(r(0, 1), r(1, 2))
	e, err := New(whole, whole, voice.New().With("note", voice.String("c4")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.HasOnset() {
		t.Fatalf("expected onset when part == whole")
	}
}

func TestNewRejectsPartOutsideWhole(t *testing.T) {
	whole := timespan.New(r(0, 1), r(1, 2))
	part := timespan.New(r(0, 1), r(1, 1))
	_, err := New(whole, part, nil)
	if !perr.Is(err, perr.InternalInvariant) {
		t.Fatalf("expected InternalInvariant, got %v", err)
	}
}

func TestNewRejectsEmptyWhole(t *testing.T) {
	whole := timespan.New(r(1, 2), r(1, 2))
	_, err := New(whole, whole, nil)
	if !perr.Is(err, perr.InternalInvariant) {
		t.Fatalf("expected InternalInvariant for zero-duration whole, got %v", err)
	}
}

func TestHasOnsetFalseWhenClipped(t *testing.T) {
	whole := timespan.New(r(0, 1), r(1, 1))
	part := timespan.New(r(1, 2), r(1, 1))
	e, err := New(whole, part, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.HasOnset() {
		t.Fatalf("expected no onset when part starts after whole")
	}
}

func TestMustNewPanicsOnInvalidInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	whole := timespan.New(r(0, 1), r(1, 2))
	part := timespan.New(r(0, 1), r(1, 1))
	MustNew(whole, part, nil)
}

func TestWithDataAndWithPart(t *testing.T) {
	whole := timespan.New(r(0, 1), r(1, 1))
	e := MustNew(whole, whole, nil)
	e2 := e.WithData(voice.New().With("gain", voice.Number(0.5)))
	if len(e.Data) != 0 {
		t.Fatalf("WithData must not mutate receiver")
	}
	if got, _ := e2.Data["gain"].AsFloat64(); got != 0.5 {
		t.Fatalf("expected gain 0.5, got %v", got)
	}
	clipped := e.WithPart(timespan.New(r(0, 1), r(1, 2)))
	if clipped.Part.End.Float64() != 0.5 {
		t.Fatalf("expected clipped part to end at 0.5")
	}
}

func TestNilDataDefaultsToEmptyMap(t *testing.T) {
	whole := timespan.New(r(0, 1), r(1, 1))
	e := MustNew(whole, whole, nil)
	if e.Data == nil {
		t.Fatalf("expected New to default nil data to an empty map")
	}
}
