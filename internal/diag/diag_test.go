package diag

import (
	"strings"
	"testing"

	"github.com/go-ada/adac/internal/token"
)

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	src := "X : Integer := True;"
	d := New(token.Position{Line: 1, Column: 16}, src, "t.adb", "expected Integer, found Boolean")

	out := d.Format(false)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header, source, caret), got %d: %q", len(lines), out)
	}
	caretCol := strings.Index(lines[2], "^")
	gutterWidth := len("    1 | ")
	if caretCol != gutterWidth+15 {
		t.Errorf("caret at column %d, want %d", caretCol, gutterWidth+15)
	}
}

func TestBagHasErrorsOnlyOnErrorSeverity(t *testing.T) {
	var bag Bag
	bag.Add(Warnf(token.Position{Line: 1, Column: 1}, "", "", "unused variable"))
	if bag.HasErrors() {
		t.Error("a bag with only warnings must not report HasErrors")
	}
	bag.Add(New(token.Position{Line: 2, Column: 1}, "", "", "type mismatch"))
	if !bag.HasErrors() {
		t.Error("a bag with an error must report HasErrors")
	}
}
