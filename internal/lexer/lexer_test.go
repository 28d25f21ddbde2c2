package lexer

import (
	"testing"

	"github.com/go-ada/adac/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New("t.adb", src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	toks := lexAll(t, "Begin END procedure")
	want := []token.Kind{token.BEGIN, token.END, token.PROCEDURE, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestIdentifierPreservesCasing(t *testing.T) {
	toks := lexAll(t, "MyVariable")
	if toks[0].Literal != "MyVariable" {
		t.Errorf("Literal = %q, want original casing preserved", toks[0].Literal)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := lexAll(t, "X -- a trailing comment\n:= 1;")
	got := kinds(toks)
	want := []token.Kind{token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIntegerLiteral(t *testing.T) {
	toks := lexAll(t, "123")
	if toks[0].Kind != token.INT || toks[0].Int != 123 {
		t.Errorf("got %+v", toks[0])
	}
}

func TestIntegerLiteralWithUnderscores(t *testing.T) {
	toks := lexAll(t, "1_000_000")
	if toks[0].Kind != token.INT || toks[0].Int != 1000000 {
		t.Errorf("got %+v", toks[0])
	}
}

func TestRealLiteral(t *testing.T) {
	toks := lexAll(t, "3.14")
	if toks[0].Kind != token.REAL || toks[0].Float != 3.14 {
		t.Errorf("got %+v", toks[0])
	}
}

func TestRealLiteralWithExponent(t *testing.T) {
	toks := lexAll(t, "1.0E10")
	if toks[0].Kind != token.REAL || toks[0].Float != 1.0e10 {
		t.Errorf("got %+v", toks[0])
	}
}

func TestIntegerLiteralWithNegativeExponentIsRejected(t *testing.T) {
	l := New("t.adb", "10E-1")
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok.Kind)
	}
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Msg != "integer literal may not have negative exponent" {
		t.Errorf("errors = %v", errs)
	}
}

func TestBasedLiteral(t *testing.T) {
	toks := lexAll(t, "16#FF#")
	if toks[0].Kind != token.BASED || toks[0].Int != 255 {
		t.Errorf("got %+v", toks[0])
	}
}

func TestBasedLiteralWithFraction(t *testing.T) {
	toks := lexAll(t, "2#1.1#E1")
	if toks[0].Kind != token.BASED {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[0].Float != 3.0 {
		t.Errorf("Float = %v, want 3.0 (1.1 base 2 = 1.5, *2^1 = 3.0)", toks[0].Float)
	}
}

func TestBasedLiteralInvalidDigitForBase(t *testing.T) {
	l := New("t.adb", "2#2#")
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok.Kind)
	}
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Msg != "digit 2 invalid in base 2" {
		t.Errorf("errors = %v", errs)
	}
}

func TestCharacterLiteralVsTick(t *testing.T) {
	toks := lexAll(t, "'x' X'First")
	if toks[0].Kind != token.CHAR || toks[0].Literal != "x" {
		t.Errorf("got %+v, want CHAR 'x'", toks[0])
	}
	// X 'First -> IDENT X, TICK, IDENT First
	if toks[1].Kind != token.IDENT || toks[1].Literal != "X" {
		t.Errorf("got %+v, want IDENT X", toks[1])
	}
	if toks[2].Kind != token.TICK {
		t.Errorf("got %+v, want TICK", toks[2])
	}
	if toks[3].Kind != token.IDENT || toks[3].Literal != "First" {
		t.Errorf("got %+v, want IDENT First", toks[3])
	}
}

func TestStringLiteralWithEscapedQuote(t *testing.T) {
	toks := lexAll(t, `"say ""hi"""`)
	if toks[0].Kind != token.STRING || toks[0].Literal != `say "hi"` {
		t.Errorf("got %+v", toks[0])
	}
}

func TestCompoundOperators(t *testing.T) {
	toks := lexAll(t, ":= => .. ** <= >= /= <> | <<")
	want := []token.Kind{
		token.ASSIGN, token.ARROW, token.DOTDOT, token.STARSTAR,
		token.LE, token.GE, token.NE, token.BOX, token.BAR, token.LSHIFT, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRangeDotDotNotConfusedWithReal(t *testing.T) {
	toks := lexAll(t, "1..10")
	want := []token.Kind{token.INT, token.DOTDOT, token.INT, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("t.adb", "X\nY")
	first := l.NextToken()
	second := l.NextToken()
	if first.Pos.Line != 1 || second.Pos.Line != 2 {
		t.Errorf("lines: got %d, %d; want 1, 2", first.Pos.Line, second.Pos.Line)
	}
}
