package generics

import (
	"testing"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/parser"
	"github.com/go-ada/adac/internal/token"
)

// TestInstantiateCloneDoesNotShareNodesWithTemplate exercises the exact
// swap-generic shape from the end-to-end generic instantiation scenario:
// cloning substitutes the formal type name and produces an independent
// tree whose statements are distinct node values from the template's.
func TestInstantiateCloneDoesNotShareNodesWithTemplate(t *testing.T) {
	src := `generic
  type Item is private;
procedure Swap_Generic(X, Y : in out Item);

procedure Swap_Generic(X, Y : in out Item) is
  Temp : Item;
begin
  Temp := X;
  X := Y;
  Y := Temp;
end Swap_Generic;`
	p := parser.New("t.adb", src)
	unit := p.Parse()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors().Format(false))
	}
	if len(unit.Units) != 2 {
		t.Fatalf("expected decl+body, got %d units", len(unit.Units))
	}

	decl, ok := unit.Units[0].(*ast.SubprogramDecl)
	if !ok {
		t.Fatalf("expected *ast.SubprogramDecl, got %T", unit.Units[0])
	}
	if decl.Generic == nil {
		t.Fatalf("expected the bare generic declaration to carry its formal part")
	}
	body := unit.Units[1]

	store := NewStore()
	store.Record(&Template{Name: "Swap_Generic", Formals: decl.Generic, Decl: body})

	tmpl, ok := store.Lookup("swap_generic")
	if !ok {
		t.Fatalf("expected the body template to be recorded")
	}

	actuals := NewActuals()
	integerMark := &ast.Identifier{Token: token.Token{Kind: token.IDENT, Literal: "Integer"}, Name: "Integer"}
	actuals.Bind("Item", integerMark)

	inst, err := Instantiate(tmpl, "Swap_Int", actuals)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	if inst == tmpl.Decl {
		t.Fatalf("instance must not be the same node as the template")
	}
	instBody, ok := inst.(*ast.SubprogramBody)
	if !ok {
		t.Fatalf("expected *ast.SubprogramBody, got %T", inst)
	}
	if instBody.Spec.Name != "Swap_Int" {
		t.Fatalf("expected the instance to be renamed to Swap_Int, got %q", instBody.Spec.Name)
	}
	if instBody.Spec.Params[0].TypeMark.String() != "Integer" {
		t.Fatalf("expected the formal type Item to be substituted with Integer, got %q",
			instBody.Spec.Params[0].TypeMark.String())
	}

	templateBody := tmpl.Decl.(*ast.SubprogramBody)
	if templateBody.Spec.Params[0].TypeMark.String() != "Item" {
		t.Fatalf("instantiation must not mutate the template: formal type mark changed to %q",
			templateBody.Spec.Params[0].TypeMark.String())
	}
	if &instBody.Statements[0] == &templateBody.Statements[0] {
		t.Fatalf("instance statement slice must not alias the template's")
	}
}

func TestMissingActualIsReported(t *testing.T) {
	p := parser.New("t.adb", `generic
  type Item is private;
procedure Swap_Generic(X, Y : in out Item) is
  Temp : Item;
begin
  Temp := X; X := Y; Y := Temp;
end Swap_Generic;`)
	unit := p.Parse()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors().Format(false))
	}
	body, ok := unit.Units[0].(*ast.SubprogramBody)
	if !ok || body.Generic == nil {
		t.Fatalf("expected a generic subprogram body, got %T", unit.Units[0])
	}

	store := NewStore()
	store.Record(&Template{Name: "Swap_Generic", Formals: body.Generic, Decl: body})
	tmpl, _ := store.Lookup("Swap_Generic")

	if _, err := Instantiate(tmpl, "Swap_Int", NewActuals()); err == nil {
		t.Fatalf("expected an error for a missing formal type actual")
	}
}
