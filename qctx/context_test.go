package qctx

import "testing"

func TestWithGetRoundTrip(t *testing.T) {
	k := NewKey[int]("depth")
	c := With(Context{}, k, 3)
	got, ok := Get(c, k)
	if !ok || got != 3 {
		t.Fatalf("expected (3, true), got (%v, %v)", got, ok)
	}
}

func TestGetMissingReturnsZeroValue(t *testing.T) {
	k := NewKey[string]("label")
	_, ok := Get(Context{}, k)
	if ok {
		t.Fatalf("expected missing key to report ok=false")
	}
}

func TestWithShadowsPreviousBinding(t *testing.T) {
	k := NewKey[int]("n")
	c := With(Context{}, k, 1)
	c = With(c, k, 2)
	got, _ := Get(c, k)
	if got != 2 {
		t.Fatalf("expected shadowed value 2, got %d", got)
	}
}

func TestSameNameDistinctKeysDoNotCollide(t *testing.T) {
	a := NewKey[int]("x")
	b := NewKey[int]("x")
	c := With(With(Context{}, a, 1), b, 2)
	va, _ := Get(c, a)
	vb, _ := Get(c, b)
	if va != 1 || vb != 2 {
		t.Fatalf("expected distinct slots despite identical names, got %d %d", va, vb)
	}
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	k := NewKey[int]("n")
	c1 := With(Context{}, k, 1)
	c2 := With(c1, k, 2)
	got1, _ := Get(c1, k)
	got2, _ := Get(c2, k)
	if got1 != 1 || got2 != 2 {
		t.Fatalf("expected c1 unaffected by deriving c2, got %d %d", got1, got2)
	}
}

func TestGetOr(t *testing.T) {
	k := NewKey[int]("n")
	if got := GetOr(Context{}, k, 42); got != 42 {
		t.Fatalf("expected default 42, got %d", got)
	}
	c := With(Context{}, k, 7)
	if got := GetOr(c, k, 42); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestReservedKeysDistinctTypes(t *testing.T) {
	c := With(Context{}, RandomSeed, uint64(99))
	c = With(c, ControlMin, 0.0)
	c = With(c, ControlMax, 1.0)
	seed, _ := Get(c, RandomSeed)
	min, _ := Get(c, ControlMin)
	max, _ := Get(c, ControlMax)
	if seed != 99 || min != 0.0 || max != 1.0 {
		t.Fatalf("unexpected reserved key values: %v %v %v", seed, min, max)
	}
}
