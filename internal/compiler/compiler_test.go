package compiler

import (
	"strings"
	"testing"

	"github.com/go-ada/adac/internal/codegen"
	"github.com/go-ada/adac/internal/optimizer"
	"github.com/kr/pretty"
)

func TestCompileCleanProgramReturnsIR(t *testing.T) {
	ctx := New("t.adb", `procedure P is
begin
  null;
end P;`, optimizer.DefaultConfig(), codegen.DefaultOptions())

	ir, err := ctx.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v, diagnostics:\n%# v", err, pretty.Formatter(ctx.Diagnostics().All()))
	}
	if !strings.Contains(ir, "define") {
		t.Fatalf("expected emitted IR to contain a function definition, got:\n%s", ir)
	}
}

func TestCompileStopsAtParseErrors(t *testing.T) {
	ctx := New("t.adb", `procedure P is
begin
  this is not ada;
end P;`, optimizer.DefaultConfig(), codegen.DefaultOptions())

	_, err := ctx.Compile()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !ctx.Diagnostics().HasErrors() {
		t.Fatal("expected diagnostics to carry the parse error")
	}
}

func TestCompileStopsAtSemanticErrors(t *testing.T) {
	ctx := New("t.adb", `procedure P is
  A : Integer := Undeclared_Name;
begin
  null;
end P;`, optimizer.DefaultConfig(), codegen.DefaultOptions())

	_, err := ctx.Compile()
	if err == nil {
		t.Fatal("expected a semantic error for an undeclared name")
	}
}

func TestCompileHonorsOptimizerConfig(t *testing.T) {
	withFold := New("t.adb", `procedure P is
  A : Integer := 2 + 3;
begin
  null;
end P;`, optimizer.DefaultConfig(), codegen.DefaultOptions())
	irFolded, err := withFold.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withoutFold := New("t.adb", `procedure P is
  A : Integer := 2 + 3;
begin
  null;
end P;`, optimizer.DefaultConfig(optimizer.WithPass(optimizer.PassConstantFold, false)), codegen.DefaultOptions())
	irUnfolded, err := withoutFold.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if irFolded == irUnfolded {
		t.Fatal("expected disabling constant folding to change the emitted IR")
	}
}
