package ast

import (
	"strconv"
	"testing"

	"github.com/go-ada/adac/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Kind: token.IDENT, Literal: name}, Name: name}
}

func intLit(v int64) *IntegerLiteral {
	return &IntegerLiteral{Token: token.Token{Kind: token.INT, Literal: strconv.FormatInt(v, 10)}, Value: v}
}

func TestBinaryExprString(t *testing.T) {
	expr := &BinaryExpr{Op: "+", Left: ident("X"), Right: intLit(1)}
	if got, want := expr.String(), "(X + 1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUnaryExprString(t *testing.T) {
	expr := &UnaryExpr{Op: "not", Right: ident("Done")}
	if got, want := expr.String(), "(not Done)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRangeExprString(t *testing.T) {
	r := &RangeExpr{Low: intLit(1), High: intLit(10)}
	if got, want := r.String(), "1 .. 10"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAttributeRefString(t *testing.T) {
	attr := &AttributeRef{Prefix: ident("Integer"), Name: "First"}
	if got, want := attr.String(), "Integer'First"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	withArgs := &AttributeRef{Prefix: ident("Character"), Name: "Val", Args: []Expression{intLit(65)}}
	if got, want := withArgs.String(), "Character'Val(65)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSelectedComponentString(t *testing.T) {
	sel := &SelectedComponent{Prefix: ident("Rec"), Name: "Field"}
	if got, want := sel.String(), "Rec.Field"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIndexedComponentString(t *testing.T) {
	idx := &IndexedComponent{Prefix: ident("A"), Args: []Expression{intLit(1), intLit(2)}}
	if got, want := idx.String(), "A(1, 2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAggregateStringPositionalAndOthers(t *testing.T) {
	agg := &Aggregate{Elements: []AggregateChoice{
		{Value: intLit(1)},
		{Choices: []Expression{&OthersChoice{}}, Value: intLit(0)},
	}}
	if got, want := agg.String(), "(1, others => 0)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIfStmtString(t *testing.T) {
	stmt := &IfStmt{
		Cond: &BinaryExpr{Op: ">", Left: ident("X"), Right: intLit(0)},
		Then: []Statement{&NullStmt{}},
	}
	want := "if (X > 0) then\n  null;\nend if;"
	if got := stmt.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLoopStmtForString(t *testing.T) {
	stmt := &LoopStmt{
		Kind:    LoopFor,
		LoopVar: "I",
		Range:   &RangeExpr{Low: intLit(1), High: intLit(10)},
		Body:    []Statement{&NullStmt{}},
	}
	want := "for I in 1 .. 10 loop\n  null;\nend loop;"
	if got := stmt.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestObjectDeclString(t *testing.T) {
	decl := &ObjectDecl{
		Names:      []string{"X"},
		SubtypeInd: &SubtypeIndication{TypeMark: ident("Integer")},
		Init:       intLit(0),
	}
	want := "X : Integer := 0;"
	if got := decl.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSubprogramSpecString(t *testing.T) {
	spec := &SubprogramSpec{
		Name:       "Add",
		IsFunction: true,
		Params: []Param{
			{Names: []string{"X", "Y"}, Mode: ModeIn, TypeMark: ident("Integer")},
		},
		ReturnType: ident("Integer"),
	}
	want := "function Add(X, Y : in Integer) return Integer"
	if got := spec.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGenericInstantiationString(t *testing.T) {
	inst := &GenericInstantiation{
		Name:    "Int_Stack",
		Generic: "Stack",
		Actuals: []Expression{ident("Integer")},
		Kind:    InstantiatesPackage,
	}
	want := "package Int_Stack is new Stack(Integer);"
	if got := inst.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCheckIsTransparentToString(t *testing.T) {
	check := &Check{Kind: CheckRange, Target: ident("X")}
	if got, want := check.String(), "X"; got != want {
		t.Errorf("String() = %q, want %q (Check must not alter source rendering)", got, want)
	}
}
