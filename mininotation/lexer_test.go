package mininotation

import "testing"

func TestLexerTokenKinds(t *testing.T) {
	lx := newLexer("bd@2 [hh sd]*2(3,8)? <a,b>%4 -3 3.5")
	var kinds []tokenKind
	for {
		tok, err := lx.next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		kinds = append(kinds, tok.kind)
		if tok.kind == tokEOF {
			break
		}
	}
	want := []tokenKind{
		tokIdent, tokAt, tokNumber,
		tokLBracket, tokIdent, tokIdent, tokRBracket,
		tokStar, tokNumber, tokLParen, tokNumber, tokComma, tokNumber, tokRParen, tokQuestion,
		tokLAngle, tokIdent, tokComma, tokIdent, tokRAngle, tokPercent, tokNumber,
		tokNumber, tokNumber,
		tokEOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexerNegativeAndDecimalNumbers(t *testing.T) {
	lx := newLexer("-3 3.5 0")
	tok, err := lx.next()
	if err != nil || tok.kind != tokNumber || !tok.isInt || tok.ival != -3 {
		t.Fatalf("expected integer -3, got %+v err=%v", tok, err)
	}
	tok, err = lx.next()
	if err != nil || tok.kind != tokNumber || tok.isInt || tok.fval != 3.5 {
		t.Fatalf("expected decimal 3.5, got %+v err=%v", tok, err)
	}
	tok, err = lx.next()
	if err != nil || tok.kind != tokNumber || !tok.isInt || tok.ival != 0 {
		t.Fatalf("expected integer 0, got %+v err=%v", tok, err)
	}
}

func TestLexerRejectsUnknownCharacter(t *testing.T) {
	lx := newLexer("bd & sn")
	if _, err := lx.next(); err != nil {
		t.Fatalf("unexpected error before bad char: %v", err)
	}
	if _, err := lx.next(); err == nil {
		t.Fatalf("expected error for '&'")
	}
}
