package symtab

import (
	"testing"

	"github.com/go-ada/adac/internal/types"
)

func TestDeclareAndLookupIsCaseInsensitive(t *testing.T) {
	s := NewScope(nil, "Main")
	s.Declare(&Symbol{Name: "Count", Kind: KindObject, Type: types.IntegerType})

	if s.Lookup("COUNT") == nil {
		t.Error("lookup should be case-insensitive")
	}
	if s.Lookup("count") == nil {
		t.Error("lookup should be case-insensitive")
	}
}

func TestLookupWalksEnclosingScopes(t *testing.T) {
	outer := NewScope(nil, "Outer")
	outer.Declare(&Symbol{Name: "X", Kind: KindObject, Type: types.IntegerType})
	inner := NewScope(outer, "Inner")

	if inner.Lookup("X") == nil {
		t.Error("lookup must search enclosing scopes")
	}
	if inner.LookupLocal("X") != nil {
		t.Error("LookupLocal must not search enclosing scopes")
	}
}

func TestDuplicateNonOverloadableDeclarationFails(t *testing.T) {
	s := NewScope(nil, "Main")
	if !s.Declare(&Symbol{Name: "X", Kind: KindObject}) {
		t.Fatal("first declaration should succeed")
	}
	if s.Declare(&Symbol{Name: "X", Kind: KindObject}) {
		t.Error("redeclaring a non-overloadable name in the same scope should fail")
	}
}

func TestSubprogramOverloadsChain(t *testing.T) {
	s := NewScope(nil, "Main")
	s.Declare(&Symbol{Name: "Put", Kind: KindSubprogram, Type: &types.Type{Kind: types.Procedure}})
	s.Declare(&Symbol{Name: "Put", Kind: KindSubprogram, Type: &types.Type{Kind: types.Procedure}})

	head := s.Lookup("Put")
	overloads := Overloads(head)
	if len(overloads) != 2 {
		t.Errorf("got %d overloads, want 2", len(overloads))
	}
}

func TestAllOrdersNaturally(t *testing.T) {
	s := NewScope(nil, "Main")
	s.Declare(&Symbol{Name: "Item10", Kind: KindObject})
	s.Declare(&Symbol{Name: "Item2", Kind: KindObject})
	s.Declare(&Symbol{Name: "Item1", Kind: KindObject})

	all := s.All()
	if len(all) != 3 || all[0].Name != "Item1" || all[1].Name != "Item2" || all[2].Name != "Item10" {
		t.Errorf("got %v, want natural order Item1, Item2, Item10", all)
	}
}
