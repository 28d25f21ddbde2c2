package optimizer

import (
	"testing"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/parser"
	"github.com/go-ada/adac/internal/semantic"
)

func mustResolve(t *testing.T, src string) *semantic.Result {
	t.Helper()
	p := parser.New("t.adb", src)
	unit := p.Parse()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors for:\n%s\n%s", src, p.Errors().Format(false))
	}
	res := semantic.Resolve("t.adb", src, unit)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", res.Diags.Format(false))
	}
	return res
}

func TestConstantFoldReplacesBinaryExprWithLiteral(t *testing.T) {
	res := mustResolve(t, `procedure P is
  A : Integer := 2 + 3;
begin
  null;
end P;`)
	Run(res, DefaultConfig())

	body := res.Unit.Units[0].(*ast.SubprogramBody)
	obj := body.Declarations[0].(*ast.ObjectDecl)
	lit, ok := obj.Init.(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("expected the initializer to fold to a literal, got %T", obj.Init)
	}
	if lit.Value != 5 {
		t.Fatalf("expected 2 + 3 to fold to 5, got %d", lit.Value)
	}
}

func TestConstantFoldLeavesDivisionByZeroUnfolded(t *testing.T) {
	res := mustResolve(t, `procedure P is
  A : Integer := 1 / 0;
begin
  null;
end P;`)
	Run(res, DefaultConfig())

	body := res.Unit.Units[0].(*ast.SubprogramBody)
	obj := body.Declarations[0].(*ast.ObjectDecl)
	if _, ok := obj.Init.(*ast.IntegerLiteral); ok {
		t.Fatalf("expected a zero-divisor expression to survive unfolded for the runtime check to catch, got a literal")
	}
}

func TestWithPassDisablesConstantFold(t *testing.T) {
	res := mustResolve(t, `procedure P is
  A : Integer := 2 + 3;
begin
  null;
end P;`)
	Run(res, DefaultConfig(WithPass(PassConstantFold, false)))

	body := res.Unit.Units[0].(*ast.SubprogramBody)
	obj := body.Declarations[0].(*ast.ObjectDecl)
	if _, ok := obj.Init.(*ast.IntegerLiteral); ok {
		t.Fatalf("expected constant folding disabled via WithPass to leave the binary expression alone")
	}
}

func TestAttributeReductionFoldsFirstAndLastOfConstrainedType(t *testing.T) {
	res := mustResolve(t, `procedure P is
  type Vec is array (1 .. 10) of Integer;
  V : Vec;
  Lo, Hi : Integer;
begin
  Lo := V'First;
  Hi := V'Last;
end P;`)
	Run(res, DefaultConfig())

	body := res.Unit.Units[0].(*ast.SubprogramBody)
	loAssign := body.Statements[0].(*ast.AssignStmt)
	hiAssign := body.Statements[1].(*ast.AssignStmt)

	lo, ok := loAssign.Value.(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("expected V'First to fold to a literal, got %T", loAssign.Value)
	}
	if lo.Value != 1 {
		t.Fatalf("expected V'First to fold to 1, got %d", lo.Value)
	}

	hi, ok := hiAssign.Value.(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("expected V'Last to fold to a literal, got %T", hiAssign.Value)
	}
	if hi.Value != 10 {
		t.Fatalf("expected V'Last to fold to 10, got %d", hi.Value)
	}
}

func TestRedundantCheckElimDropsCheckWithinAlreadyNarrowerType(t *testing.T) {
	res := mustResolve(t, `procedure P is
  type Base_Count is range 0 .. 1000;
  type Small_Count is new Base_Count range 0 .. 10;
  C : Small_Count := 5;
  D : Small_Count := C;
begin
  null;
end P;`)

	body := res.Unit.Units[0].(*ast.SubprogramBody)
	before := body.Declarations[3].(*ast.ObjectDecl)
	if _, ok := before.Init.(*ast.Check); !ok {
		t.Fatalf("expected the second declaration's initializer to start out wrapped in a check, got %T", before.Init)
	}

	Run(res, DefaultConfig())

	after := body.Declarations[3].(*ast.ObjectDecl)
	if _, ok := after.Init.(*ast.Check); ok {
		t.Fatalf("expected a range check against an already-narrower, identically-bounded type to be eliminated, got %T", after.Init)
	}
}
