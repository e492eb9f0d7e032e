package rational

import "testing"

func TestNewReduces(t *testing.T) {
	r := New(4, 8)
	if r.Num != 1 || r.Den != 2 {
		t.Fatalf("expected 1/2, got %d/%d", r.Num, r.Den)
	}
}

func TestNewNegativeDenominator(t *testing.T) {
	r := New(1, -2)
	if r.Num != -1 || r.Den != 2 {
		t.Fatalf("expected -1/2, got %d/%d", r.Num, r.Den)
	}
}

func TestAddSub(t *testing.T) {
	a := New(1, 3)
	b := New(1, 6)
	sum := a.Add(b)
	if sum.Num != 1 || sum.Den != 2 {
		t.Fatalf("expected 1/2, got %s", sum)
	}
	diff := a.Sub(b)
	if diff.Num != 1 || diff.Den != 6 {
		t.Fatalf("expected 1/6, got %s", diff)
	}
}

func TestMulDiv(t *testing.T) {
	a := New(2, 3)
	b := New(3, 4)
	if got := a.Mul(b); got.Num != 1 || got.Den != 2 {
		t.Fatalf("expected 1/2, got %s", got)
	}
	if got := a.Div(b); got.Num != 8 || got.Den != 9 {
		t.Fatalf("expected 8/9, got %s", got)
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on division by zero")
		}
	}()
	One.Div(Zero)
}

func TestModFloor(t *testing.T) {
	r := New(-1, 4)
	got := r.Mod(One)
	if got.Num != 3 || got.Den != 4 {
		t.Fatalf("expected 3/4, got %s", got)
	}
}

func TestCmp(t *testing.T) {
	if !New(1, 2).Less(New(2, 3)) {
		t.Fatalf("expected 1/2 < 2/3")
	}
	if !New(2, 4).Equal(New(1, 2)) {
		t.Fatalf("expected 2/4 == 1/2")
	}
}

func TestFloorCeil(t *testing.T) {
	if New(7, 2).Floor() != 3 {
		t.Fatalf("expected floor(7/2) == 3")
	}
	if New(-7, 2).Floor() != -4 {
		t.Fatalf("expected floor(-7/2) == -4")
	}
	if New(7, 2).Ceil() != 4 {
		t.Fatalf("expected ceil(7/2) == 4")
	}
}

func TestFromFloat(t *testing.T) {
	r := FromFloat(0.5, 0)
	if r.Num != 1 || r.Den != 2 {
		t.Fatalf("expected 1/2, got %s", r)
	}
	r2 := FromFloat(0.25, 0)
	if r2.Num != 1 || r2.Den != 4 {
		t.Fatalf("expected 1/4, got %s", r2)
	}
}

func TestLcm(t *testing.T) {
	got := Lcm(New(1, 1), New(3, 1))
	if got.Num != 3 || got.Den != 1 {
		t.Fatalf("expected 3, got %s", got)
	}
}

func TestOverflowFallsBackToBigRat(t *testing.T) {
	a := New(1<<62, 1)
	b := New(3, 1)
	got := a.Mul(b)
	if got.Den != 1 {
		t.Fatalf("expected integer result, got %s", got)
	}
}

func TestString(t *testing.T) {
	if New(3, 1).String() != "3" {
		t.Fatalf("expected \"3\"")
	}
	if New(1, 2).String() != "1/2" {
		t.Fatalf("expected \"1/2\"")
	}
}
