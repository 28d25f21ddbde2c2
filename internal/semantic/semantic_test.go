package semantic

import (
	"strings"
	"testing"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/parser"
)

func mustResolve(t *testing.T, src string) *Result {
	t.Helper()
	p := parser.New("t.adb", src)
	unit := p.Parse()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors for:\n%s\n%s", src, p.Errors().Format(false))
	}
	return Resolve("t.adb", src, unit)
}

// Scenario: a value assigned into a range-constrained derived type must
// have its assignment wrapped in a range-check marker the emitter later
// lowers to two comparisons.
func TestRangeConstrainedDerivedTypeInsertsRangeCheck(t *testing.T) {
	res := mustResolve(t, `procedure P is
  type Base_Count is range 0 .. 1000;
  type Small_Count is new Base_Count range 0 .. 10;
  C : Small_Count := 5;
begin
  null;
end P;`)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
	body := res.Unit.Units[0].(*ast.SubprogramBody)
	obj := body.Declarations[2].(*ast.ObjectDecl)
	check, ok := obj.Init.(*ast.Check)
	if !ok {
		t.Fatalf("expected the initializer to be wrapped in an ast.Check, got %T", obj.Init)
	}
	if check.Kind != ast.CheckRange {
		t.Fatalf("expected CheckRange, got %v", check.Kind)
	}
	target := res.CheckTypes[check]
	if target == nil || target.Low != 0 || target.High != 10 {
		t.Fatalf("expected the check to carry the 0..10 constraint, got %+v", target)
	}
}

// Scenario: an array aggregate whose positional element count does not
// match its target subtype's index range is a compile-time error.
func TestAggregateSizeMismatchIsCompileTimeError(t *testing.T) {
	res := mustResolve(t, `procedure P is
  type Vec is array (1 .. 3) of Integer;
  V : Vec := (1, 2);
begin
  null;
end P;`)
	if !res.Diags.HasErrors() {
		t.Fatalf("expected a compile-time error for the mismatched aggregate size")
	}
	msg := res.Diags.Format(false)
	if !strings.Contains(msg, "aggregate size") || !strings.Contains(msg, "expected size 3") {
		t.Fatalf("expected a size-mismatch diagnostic, got %q", msg)
	}
}

// An aggregate with `others` never triggers the size-mismatch check,
// since `others` can legally fill any remaining elements.
func TestAggregateWithOthersNeverMismatches(t *testing.T) {
	res := mustResolve(t, `procedure P is
  type Vec is array (1 .. 3) of Integer;
  V : Vec := (1, 2, others => 0);
begin
  null;
end P;`)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
}

// Scenario: division inserts a divide-by-zero check around the divisor.
func TestDivisionInsertsDivideByZeroCheck(t *testing.T) {
	res := mustResolve(t, `procedure P is
  A, B, C : Integer;
begin
  C := A / B;
end P;`)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
	body := res.Unit.Units[0].(*ast.SubprogramBody)
	assign := body.Statements[0].(*ast.AssignStmt)
	// C is itself a constrained Integer, so the whole division is
	// additionally wrapped in a range check; peel that off first.
	value := assign.Value
	if outer, ok := value.(*ast.Check); ok && outer.Kind == ast.CheckRange {
		value = outer.Target
	}
	bin, ok := value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", value)
	}
	check, ok := bin.Right.(*ast.Check)
	if !ok {
		t.Fatalf("expected the divisor to be wrapped in an ast.Check, got %T", bin.Right)
	}
	if check.Kind != ast.CheckDivideByZero {
		t.Fatalf("expected CheckDivideByZero, got %v", check.Kind)
	}
}

// Scenario: dereferencing an access value (`.all`) inserts a not-null
// check around the pointer being dereferenced.
func TestNullDereferenceInsertsNotNullCheck(t *testing.T) {
	res := mustResolve(t, `procedure P is
  type Int_Ptr is access Integer;
  P2 : Int_Ptr := null;
  V : Integer;
begin
  V := P2.all;
end P;`)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
	body := res.Unit.Units[0].(*ast.SubprogramBody)
	assign := body.Statements[0].(*ast.AssignStmt)
	// The assigned-to variable is itself a constrained Integer, so the
	// whole dereference is additionally wrapped in a range check; peel
	// that off to reach the dereference itself.
	value := assign.Value
	if outer, ok := value.(*ast.Check); ok && outer.Kind == ast.CheckRange {
		value = outer.Target
	}
	sel, ok := value.(*ast.SelectedComponent)
	if !ok {
		t.Fatalf("expected *ast.SelectedComponent, got %T", value)
	}
	check, ok := sel.Prefix.(*ast.Check)
	if !ok {
		t.Fatalf("expected the dereferenced pointer to be wrapped in an ast.Check, got %T", sel.Prefix)
	}
	if check.Kind != ast.CheckNotNull {
		t.Fatalf("expected CheckNotNull, got %v", check.Kind)
	}
}

// Scenario: case-insensitive lookup resolves an occurrence written in a
// different case than its declaration to the very same symbol.
func TestCaseInsensitiveLookupResolvesToSameSymbol(t *testing.T) {
	res := mustResolve(t, `PROCEDURE main Is
  X : INTEGER;
Begin
  x := 1;
END main;`)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
	body := res.Unit.Units[0].(*ast.SubprogramBody)
	assign := body.Statements[0].(*ast.AssignStmt)
	ident := assign.Target.(*ast.Identifier)
	if typ := res.ExprTypes[ident]; typ == nil || typ.Name != "Integer" {
		t.Fatalf("expected lowercase 'x' to resolve to the Integer-typed declaration, got %+v", typ)
	}
}

// Boundary behavior: an integer literal used where a real value is
// expected is rejected with a specific message, not a generic
// type-mismatch diagnostic.
func TestIntegerLiteralAssignedToFloatRequiresDecimalPoint(t *testing.T) {
	res := mustResolve(t, `procedure P is
  F : Float := 14;
begin
  null;
end P;`)
	if !res.Diags.HasErrors() {
		t.Fatalf("expected a resolve error for the undotted literal")
	}
	msg := res.Diags.Format(false)
	if !strings.Contains(msg, "real literal requires decimal point") {
		t.Fatalf("expected the decimal-point diagnostic, got %q", msg)
	}
}

// Scenario: a generic subprogram declared and instantiated within the
// same file resolves the instance against its bound actual type, leaving
// the template itself untouched and unresolved.
func TestGenericInstantiationResolvesAgainstBoundActual(t *testing.T) {
	res := mustResolve(t, `generic
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
  Swap_Int(A, B);
end Main;`)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
	main := res.Unit.Units[2].(*ast.SubprogramBody)
	inst := main.Declarations[0].(*ast.GenericInstantiation)
	clone, ok := res.Instances[inst]
	if !ok {
		t.Fatalf("expected the instantiation to record its resolved clone")
	}
	instBody, ok := clone.(*ast.SubprogramBody)
	if !ok {
		t.Fatalf("expected *ast.SubprogramBody, got %T", clone)
	}
	if instBody.Spec.Name != "Swap_Int" {
		t.Fatalf("expected the clone renamed to Swap_Int, got %q", instBody.Spec.Name)
	}
	paramType := res.ExprTypes[instBody.Spec.Params[0].TypeMark]
	if paramType == nil || paramType.Name != "Integer" {
		t.Fatalf("expected the formal type Item bound to Integer, got %+v", paramType)
	}
}
