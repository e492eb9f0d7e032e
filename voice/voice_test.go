package voice

import "testing"

func TestEqual(t *testing.T) {
	if !Number(1).Equal(Number(1)) {
		t.Fatalf("expected equal numbers")
	}
	if Number(1).Equal(Int(1)) {
		t.Fatalf("expected number and int to differ in kind")
	}
	if !String("bd").Equal(String("bd")) {
		t.Fatalf("expected equal strings")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    VoiceValue
		want bool
	}{
		{Number(0), false},
		{Number(1), true},
		{String(""), false},
		{String("x"), true},
		{Int(0), false},
		{Int(-1), true},
		{Bool(false), false},
		{Bool(true), true},
		{Null(), false},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestAsFloat64(t *testing.T) {
	if f, ok := Number(2.5).AsFloat64(); !ok || f != 2.5 {
		t.Fatalf("expected 2.5, got %v %v", f, ok)
	}
	if f, ok := String("3.5").AsFloat64(); !ok || f != 3.5 {
		t.Fatalf("expected 3.5, got %v %v", f, ok)
	}
	if _, ok := String("nope").AsFloat64(); ok {
		t.Fatalf("expected non-numeric string to fail")
	}
	if _, ok := Bool(true).AsFloat64(); ok {
		t.Fatalf("expected bool to have no float representation")
	}
}

func TestVoiceDataWithIsImmutable(t *testing.T) {
	d := New().With("note", String("c4"))
	d2 := d.With("gain", Number(0.8))
	if _, ok := d["gain"]; ok {
		t.Fatalf("With must not mutate the receiver")
	}
	if len(d2) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(d2))
	}
}

func TestVoiceDataEqual(t *testing.T) {
	a := New().With("note", String("c4")).With("gain", Number(1))
	b := New().With("gain", Number(1)).With("note", String("c4"))
	if !a.Equal(b) {
		t.Fatalf("expected maps built in different order to be equal")
	}
	c := a.With("gain", Number(0.5))
	if a.Equal(c) {
		t.Fatalf("expected differing gain to break equality")
	}
}

func TestVoiceDataClone(t *testing.T) {
	a := New().With("note", String("c4"))
	b := a.Clone()
	b2 := b.With("gain", Number(1))
	if len(a) != 1 {
		t.Fatalf("clone mutation leaked back into original")
	}
	if len(b2) != 2 || len(b) != 1 {
		t.Fatalf("unexpected clone/with interaction")
	}
}
