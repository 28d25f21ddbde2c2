package parser

import (
	"testing"

	"github.com/go-ada/adac/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	p := New("t.adb", src)
	unit := p.Parse()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors for:\n%s\n%s", src, p.Errors().Format(false))
	}
	return unit
}

func TestParseWithClauses(t *testing.T) {
	src := `with Ada.Text_IO;
with System;
procedure Main is
begin
  null;
end Main;`
	unit := mustParse(t, src)
	if len(unit.WithClauses) != 2 {
		t.Fatalf("expected 2 with clauses, got %d: %v", len(unit.WithClauses), unit.WithClauses)
	}
	if len(unit.Units) != 1 {
		t.Fatalf("expected 1 library item, got %d", len(unit.Units))
	}
	body, ok := unit.Units[0].(*ast.SubprogramBody)
	if !ok {
		t.Fatalf("expected *ast.SubprogramBody, got %T", unit.Units[0])
	}
	if body.Spec.Name != "Main" {
		t.Fatalf("expected subprogram named Main, got %q", body.Spec.Name)
	}
}

func TestParseSimpleProcedureBody(t *testing.T) {
	src := `procedure Swap(X, Y : in out Integer) is
  Temp : Integer;
begin
  Temp := X;
  X := Y;
  Y := Temp;
end Swap;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	if len(body.Spec.Params) != 1 {
		t.Fatalf("expected one parameter group, got %d", len(body.Spec.Params))
	}
	if body.Spec.Params[0].Mode != ast.ModeInOut {
		t.Fatalf("expected in out mode, got %v", body.Spec.Params[0].Mode)
	}
	if len(body.Declarations) != 1 {
		t.Fatalf("expected one local declaration, got %d", len(body.Declarations))
	}
	if len(body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Statements))
	}
}

// Scenario: a range-constrained derived type, exercising TypeDecl with a
// DerivedTypeDef carrying an explicit range constraint.
func TestParseRangeConstrainedDerivedType(t *testing.T) {
	src := `procedure P is
  type Base_Count is range 0 .. 1000;
  type Small_Count is new Base_Count range 0 .. 10;
  C : Small_Count := 5;
begin
  null;
end P;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	derived, ok := body.Declarations[1].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", body.Declarations[1])
	}
	def, ok := derived.Def.(*ast.DerivedTypeDef)
	if !ok {
		t.Fatalf("expected *ast.DerivedTypeDef, got %T", derived.Def)
	}
	if def.Range == nil {
		t.Fatalf("expected a range constraint on the derived type")
	}
	if def.Range.Low.String() != "0" || def.Range.High.String() != "10" {
		t.Fatalf("unexpected range bounds: %s .. %s", def.Range.Low, def.Range.High)
	}
}

// Scenario: an array aggregate mixing positional elements with an
// `others` choice; whether the elements fit the array's bounds is the
// resolver's concern, not the parser's, which only accepts the syntax.
func TestParseAggregateWithPositionalAndOthers(t *testing.T) {
	src := `procedure P is
  type Vec is array (1 .. 3) of Integer;
  V : Vec := (1, 2, others => 0);
begin
  null;
end P;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	obj, ok := body.Declarations[1].(*ast.ObjectDecl)
	if !ok {
		t.Fatalf("expected *ast.ObjectDecl, got %T", body.Declarations[1])
	}
	agg, ok := obj.Init.(*ast.Aggregate)
	if !ok {
		t.Fatalf("expected *ast.Aggregate, got %T", obj.Init)
	}
	if len(agg.Elements) != 3 {
		t.Fatalf("expected 3 aggregate elements, got %d", len(agg.Elements))
	}
	last := agg.Elements[2]
	if len(last.Choices) != 1 {
		t.Fatalf("expected the 'others' element to carry one choice")
	}
	if _, ok := last.Choices[0].(*ast.OthersChoice); !ok {
		t.Fatalf("expected last choice to be OthersChoice, got %T", last.Choices[0])
	}
}

// Scenario: division producing a runtime check is purely a codegen/resolver
// concern; at the parser level we only need the binary expression shape.
func TestParseDivisionExpression(t *testing.T) {
	src := `procedure P is
  A, B, C : Integer;
begin
  C := A / B;
end P;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	assign := body.Statements[0].(*ast.AssignStmt)
	bin, ok := assign.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", assign.Value)
	}
	if bin.Op != "/" {
		t.Fatalf("expected '/' operator, got %q", bin.Op)
	}
}

// Scenario: a null dereference is an access value selected-component;
// again the parser's job is just to produce the right shape.
func TestParseAccessDereferenceAndNullLiteral(t *testing.T) {
	src := `procedure P is
  type Int_Ptr is access Integer;
  P2 : Int_Ptr := null;
  V : Integer;
begin
  V := P2.all;
end P;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	obj := body.Declarations[1].(*ast.ObjectDecl)
	if _, ok := obj.Init.(*ast.NullLiteral); !ok {
		t.Fatalf("expected *ast.NullLiteral initializer, got %T", obj.Init)
	}
}

func TestParseCaseInsensitiveKeywordsAndIdentifiers(t *testing.T) {
	src := `PROCEDURE main Is
  X : INTEGER;
Begin
  x := 1;
END main;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	if body.Spec.Name != "main" {
		t.Fatalf("expected original casing 'main' preserved, got %q", body.Spec.Name)
	}
	assign := body.Statements[0].(*ast.AssignStmt)
	ident := assign.Target.(*ast.Identifier)
	if ident.Name != "x" {
		t.Fatalf("expected lowercase occurrence 'x' preserved, got %q", ident.Name)
	}
}

// Scenario: a generic subprogram declared and instantiated in the same
// file — the compilation unit is a short sequence of library items, not
// a single one, so Parse must keep reading past the first item.
func TestParseGenericSubprogramAndInstantiationAsSequentialLibraryItems(t *testing.T) {
	src := `generic
  type Item is private;
procedure Swap_Generic(X, Y : in out Item);

procedure Swap_Generic(X, Y : in out Item) is
  Temp : Item;
begin
  Temp := X;
  X := Y;
  Y := Temp;
end Swap_Generic;

procedure Main is
  procedure Swap_Int is new Swap_Generic(Item => Integer);
  A, B : Integer;
begin
  A := 1;
  B := 2;
end Main;`
	unit := mustParse(t, src)
	if len(unit.Units) != 3 {
		t.Fatalf("expected 3 sequential library items, got %d", len(unit.Units))
	}
	decl, ok := unit.Units[0].(*ast.SubprogramDecl)
	if !ok {
		t.Fatalf("expected first item to be *ast.SubprogramDecl, got %T", unit.Units[0])
	}
	if decl.Spec.Name != "Swap_Generic" {
		t.Fatalf("expected generic decl named Swap_Generic, got %q", decl.Spec.Name)
	}
	body, ok := unit.Units[1].(*ast.SubprogramBody)
	if !ok {
		t.Fatalf("expected second item to be *ast.SubprogramBody, got %T", unit.Units[1])
	}
	if body.Generic != nil {
		t.Fatalf("the body following a separate generic decl carries no formal part of its own")
	}
	main, ok := unit.Units[2].(*ast.SubprogramBody)
	if !ok {
		t.Fatalf("expected third item to be *ast.SubprogramBody, got %T", unit.Units[2])
	}
	inst, ok := main.Declarations[0].(*ast.GenericInstantiation)
	if !ok {
		t.Fatalf("expected a generic instantiation as Main's first local decl, got %T", main.Declarations[0])
	}
	if inst.Generic != "Swap_Generic" || inst.Name != "Swap_Int" {
		t.Fatalf("unexpected instantiation shape: %+v", inst)
	}
}

func TestParseGenericFormalPartInline(t *testing.T) {
	src := `generic
  type Item is private;
  with function Less_Than(L, R : Item) return Boolean;
package Sorter is
  procedure Sort(A : in out Item);
end Sorter;`
	unit := mustParse(t, src)
	spec, ok := unit.Units[0].(*ast.PackageSpec)
	if !ok {
		t.Fatalf("expected *ast.PackageSpec, got %T", unit.Units[0])
	}
	if spec.Generic == nil {
		t.Fatalf("expected a generic formal part")
	}
	if len(spec.Generic.Formals) != 2 {
		t.Fatalf("expected 2 generic formals, got %d", len(spec.Generic.Formals))
	}
	if spec.Generic.Formals[0].Kind != ast.FormalType {
		t.Fatalf("expected first formal to be a type formal")
	}
	if spec.Generic.Formals[1].Kind != ast.FormalSubprogram {
		t.Fatalf("expected second formal to be a subprogram formal")
	}
}

func TestParseCaseStatementWithOthers(t *testing.T) {
	src := `procedure P is
  N : Integer := 2;
begin
  case N is
    when 1 =>
      null;
    when 2 | 3 =>
      null;
    when others =>
      null;
  end case;
end P;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	caseStmt, ok := body.Statements[0].(*ast.CaseStmt)
	if !ok {
		t.Fatalf("expected *ast.CaseStmt, got %T", body.Statements[0])
	}
	if len(caseStmt.Alts) != 2 {
		t.Fatalf("expected 2 explicit alternatives, got %d", len(caseStmt.Alts))
	}
	if caseStmt.OthersAlt == nil {
		t.Fatalf("expected an others alternative")
	}
}

func TestParseForLoopOverExplicitRangeAndBareSubtype(t *testing.T) {
	src := `procedure P is
  type Index is range 1 .. 10;
  Total : Integer := 0;
begin
  for I in 1 .. 10 loop
    Total := Total + I;
  end loop;
  for I in Index loop
    Total := Total + 1;
  end loop;
end P;`
	unit := mustParse(t, src)
	body := unit.Units[0].(*ast.SubprogramBody)
	explicit := body.Statements[0].(*ast.LoopStmt)
	if explicit.Range == nil || explicit.RangeType != nil {
		t.Fatalf("expected an explicit range with no RangeType")
	}
	bare := body.Statements[1].(*ast.LoopStmt)
	if bare.Range != nil || bare.RangeType == nil {
		t.Fatalf("expected a bare subtype mark range with no explicit Range")
	}
}
