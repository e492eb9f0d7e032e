package pattern

import (
	"testing"

	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/timespan"
)

func TestBjorklund38(t *testing.T) {
	got := bjorklund(3, 8)
	want := []bool{true, false, false, true, false, false, true, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bjorklund(3,8) = %v, want %v", got, want)
		}
	}
}

func TestBjorklundAllOrNone(t *testing.T) {
	if got := bjorklund(0, 4); got[0] || got[1] || got[2] || got[3] {
		t.Fatalf("bjorklund(0,4) should be all false, got %v", got)
	}
	got := bjorklund(4, 4)
	for _, v := range got {
		if !v {
			t.Fatalf("bjorklund(4,4) should be all true, got %v", got)
		}
	}
}

func TestRotateJSSliceSmallPositive(t *testing.T) {
	seq := []bool{true, false, false, true}
	got := rotateJSSlice(seq, 1)
	want := []bool{true, true, false, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rotateJSSlice(%v, 1) = %v, want %v", seq, got, want)
		}
	}
}

func TestRotateJSSliceOutOfRangeCollapsesToIdentity(t *testing.T) {
	seq := []bool{true, false, false, true}
	got := rotateJSSlice(seq, 10)
	for i := range seq {
		if got[i] != seq[i] {
			t.Fatalf("rotateJSSlice with out-of-range rotation should collapse to identity, got %v", got)
		}
	}
	gotNeg := rotateJSSlice(seq, -10)
	for i := range seq {
		if gotNeg[i] != seq[i] {
			t.Fatalf("rotateJSSlice with out-of-range negative rotation should collapse to identity, got %v", gotNeg)
		}
	}
}

func TestEuclideanBD38(t *testing.T) {
	e, err := NewEuclidean(3, 8, 0, atom("bd"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := e.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(events))
	}
	wantStarts := []int64{0, 3, 6} // steps 0, 3, 6 of 8 are true per bjorklund(3,8)
	for i, w := range wantStarts {
		wantBegin := r(w, 8)
		if !events[i].Whole.Begin.Equal(wantBegin) {
			t.Fatalf("hit %d: expected onset at %s, got %s", i, wantBegin, events[i].Whole.Begin)
		}
	}
}

func TestEuclideanRejectsNonPositiveSteps(t *testing.T) {
	if _, err := NewEuclidean(3, 0, 0, atom("bd")); err == nil {
		t.Fatalf("expected error for zero steps")
	}
}

func TestEuclideanNegativePulsesInvertsMask(t *testing.T) {
	e, err := NewEuclidean(-3, 8, 0, atom("bd"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := e.Query(timespan.Cycle(0), qctx.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 hits (8 - 3 inverted), got %d", len(events))
	}
	wantStarts := []int64{1, 2, 4, 5, 7}
	for i, w := range wantStarts {
		wantBegin := r(w, 8)
		if !events[i].Whole.Begin.Equal(wantBegin) {
			t.Fatalf("hit %d: expected onset at %s, got %s", i, wantBegin, events[i].Whole.Begin)
		}
	}
}
