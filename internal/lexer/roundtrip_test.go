package lexer

import (
	"strings"
	"testing"

	"github.com/go-ada/adac/internal/token"
)

// TestTokenStreamRoundTrip exercises the boundary property that a token
// stream carries enough information to reconstruct a re-lexable program:
// printing each token's canonical text (its literal for identifiers and
// literals, its keyword/operator spelling otherwise) separated by single
// spaces and re-lexing must reproduce the same sequence of kinds.
func TestTokenStreamRoundTrip(t *testing.T) {
	src := `procedure Main is
   X : Integer := 16#FF#;
   Y : constant Float := 3.14E2;
begin
   X := X + 1;
   if X'First <= X then
      null;
   end if;
end Main;`

	toks := lexAll(t, src)

	var sb strings.Builder
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		sb.WriteString(tok.String())
		sb.WriteByte(' ')
	}

	reToks := lexAll(t, sb.String())

	if len(reToks) != len(toks) {
		t.Fatalf("round trip produced %d tokens, want %d\nsource: %s", len(reToks), len(toks), sb.String())
	}
	for i := range toks {
		if reToks[i].Kind != toks[i].Kind {
			t.Errorf("token %d: got %v, want %v", i, reToks[i].Kind, toks[i].Kind)
		}
	}
}

func TestIdentifierCasingSurvivesRoundTrip(t *testing.T) {
	toks := lexAll(t, "Ada_Lovelace")
	if toks[0].Literal != "Ada_Lovelace" {
		t.Errorf("Literal = %q, casing must be preserved for diagnostics", toks[0].Literal)
	}
}
