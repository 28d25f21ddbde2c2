// Package ast defines the abstract syntax tree produced by the parser
// and consumed by the resolver and code generator.
//
// Every node embeds enough of its originating token to report a source
// position; nodes are allocated from an arena.Arena by the parser so the
// whole tree can be freed in one step at the end of a compilation.
package ast

import (
	"bytes"
	"strings"

	"github.com/go-ada/adac/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the position of the node's leading token, for diagnostics.
	Pos() token.Position

	// String renders the node back to (non-canonical, whitespace-normalized)
	// Ada source text, used by debug tooling and golden tests.
	String() string
}

// Expression is any node that yields a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	stmtNode()
}

// Declaration is any node that introduces a name into a scope.
type Declaration interface {
	Node
	declNode()
}

// CompilationUnit is the root node: a context clause (with/use) followed
// by the library items making up the compiled program. This subset has
// no separate compilation: a single source file is a small library of
// one or more top-level packages/subprograms, compiled together in one
// pass so a generic and its instantiator can share a file.
type CompilationUnit struct {
	WithClauses []string // withed unit names, already case-folded
	Units       []Declaration
}

func (c *CompilationUnit) Pos() token.Position {
	if len(c.Units) > 0 {
		return c.Units[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (c *CompilationUnit) String() string {
	var out bytes.Buffer
	for _, w := range c.WithClauses {
		out.WriteString("with ")
		out.WriteString(w)
		out.WriteString(";\n")
	}
	for _, u := range c.Units {
		out.WriteString(u.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a name reference, resolved by the semantic pass to a
// symbol table entry (stored out-of-band, keyed by this node's address).
type Identifier struct {
	Token token.Token
	Name  string // original casing, as written at this occurrence
}

func (i *Identifier) exprNode()          {}
func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (i *Identifier) String() string      { return i.Name }

// IntegerLiteral is a decimal or based integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntegerLiteral) exprNode()          {}
func (l *IntegerLiteral) Pos() token.Position { return l.Token.Pos }
func (l *IntegerLiteral) String() string      { return l.Token.Literal }

// RealLiteral is a decimal or based real literal.
type RealLiteral struct {
	Token token.Token
	Value float64
}

func (l *RealLiteral) exprNode()          {}
func (l *RealLiteral) Pos() token.Position { return l.Token.Pos }
func (l *RealLiteral) String() string      { return l.Token.Literal }

// CharLiteral is a character literal, e.g. 'x'.
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (l *CharLiteral) exprNode()          {}
func (l *CharLiteral) Pos() token.Position { return l.Token.Pos }
func (l *CharLiteral) String() string      { return "'" + string(l.Value) + "'" }

// StringLiteral is a string literal, value already "" -> " unescaped.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) exprNode()          {}
func (l *StringLiteral) Pos() token.Position { return l.Token.Pos }
func (l *StringLiteral) String() string      { return "\"" + strings.ReplaceAll(l.Value, "\"", "\"\"") + "\"" }

// NullLiteral is the literal `null`, used for access values.
type NullLiteral struct{ Token token.Token }

func (l *NullLiteral) exprNode()          {}
func (l *NullLiteral) Pos() token.Position { return l.Token.Pos }
func (l *NullLiteral) String() string      { return "null" }

// BinaryExpr is a binary operator application, including the membership
// tests (in/not in) and short-circuit forms (and then/or else).
type BinaryExpr struct {
	Token token.Token // the operator token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) exprNode()          {}
func (b *BinaryExpr) Pos() token.Position { return b.Token.Pos }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryExpr is a unary operator application: -x, +x, not x, abs x.
type UnaryExpr struct {
	Token token.Token
	Op    string
	Right Expression
}

func (u *UnaryExpr) exprNode()          {}
func (u *UnaryExpr) Pos() token.Position { return u.Token.Pos }
func (u *UnaryExpr) String() string      { return "(" + u.Op + " " + u.Right.String() + ")" }

// RangeExpr is a discrete range "Low .. High", used in constraints,
// for-loop parameter specifications and array aggregates.
type RangeExpr struct {
	Token token.Token // the '..' token
	Low   Expression
	High  Expression
}

func (r *RangeExpr) exprNode()          {}
func (r *RangeExpr) Pos() token.Position { return r.Token.Pos }
func (r *RangeExpr) String() string      { return r.Low.String() + " .. " + r.High.String() }

// AttributeRef is a 'Attribute reference, optionally with arguments:
// T'First, T'Val(N), Obj'Size.
type AttributeRef struct {
	Token  token.Token // the '\'' token
	Prefix Expression
	Name   string // attribute name, case-folded
	Args   []Expression
}

func (a *AttributeRef) exprNode()          {}
func (a *AttributeRef) Pos() token.Position { return a.Token.Pos }
func (a *AttributeRef) String() string {
	s := a.Prefix.String() + "'" + a.Name
	if len(a.Args) > 0 {
		parts := make([]string, len(a.Args))
		for i, arg := range a.Args {
			parts[i] = arg.String()
		}
		s += "(" + strings.Join(parts, ", ") + ")"
	}
	return s
}

// SelectedComponent is a record field selection or a package-qualified
// name: Rec.Field, Pkg.Name.
type SelectedComponent struct {
	Token  token.Token // the '.' token
	Prefix Expression
	Name   string
}

func (s *SelectedComponent) exprNode()          {}
func (s *SelectedComponent) Pos() token.Position { return s.Token.Pos }
func (s *SelectedComponent) String() string      { return s.Prefix.String() + "." + s.Name }

// IndexedComponent is an array index or a subprogram/entry call:
// A(I), A(I, J), F(X).
type IndexedComponent struct {
	Token  token.Token // the '(' token
	Prefix Expression
	Args   []Expression
	Named  []NamedArg // named association arguments, if any
}

// NamedArg is a named parameter association: Name => Expr.
type NamedArg struct {
	Name string
	Expr Expression
}

func (i *IndexedComponent) exprNode()          {}
func (i *IndexedComponent) Pos() token.Position { return i.Token.Pos }
func (i *IndexedComponent) String() string {
	parts := make([]string, 0, len(i.Args)+len(i.Named))
	for _, a := range i.Args {
		parts = append(parts, a.String())
	}
	for _, n := range i.Named {
		parts = append(parts, n.Name+" => "+n.Expr.String())
	}
	return i.Prefix.String() + "(" + strings.Join(parts, ", ") + ")"
}

// QualifiedExpr is a type-qualified expression: T'(Expr).
type QualifiedExpr struct {
	Token     token.Token // the '\'' token
	TypeMark  Expression
	Qualified Expression
}

func (q *QualifiedExpr) exprNode()          {}
func (q *QualifiedExpr) Pos() token.Position { return q.Token.Pos }
func (q *QualifiedExpr) String() string {
	return q.TypeMark.String() + "'(" + q.Qualified.String() + ")"
}

// Allocator is `new T` or `new T'(Expr)`.
type Allocator struct {
	Token    token.Token // the 'new' token
	TypeMark Expression
	Init     Expression // nil unless a qualified initial value was given
}

func (a *Allocator) exprNode()          {}
func (a *Allocator) Pos() token.Position { return a.Token.Pos }
func (a *Allocator) String() string {
	if a.Init != nil {
		return "new " + a.TypeMark.String() + "'(" + a.Init.String() + ")"
	}
	return "new " + a.TypeMark.String()
}

// AggregateChoice is one element of an aggregate: either positional
// (Choices empty) or associated with one or more discrete choices
// (indices, ranges, or `others`).
type AggregateChoice struct {
	Choices []Expression // nil => positional; OthersChoice marks `others`
	Value   Expression
}

// OthersChoice is the sentinel expression used in AggregateChoice.Choices
// to represent the `others` discrete choice.
type OthersChoice struct{ Token token.Token }

func (o *OthersChoice) exprNode()          {}
func (o *OthersChoice) Pos() token.Position { return o.Token.Pos }
func (o *OthersChoice) String() string      { return "others" }

// Aggregate is a record or array aggregate: (1, 2, 3) or (X => 1, Y => 2).
type Aggregate struct {
	Token    token.Token // the '(' token
	Elements []AggregateChoice
}

func (a *Aggregate) exprNode()          {}
func (a *Aggregate) Pos() token.Position { return a.Token.Pos }
func (a *Aggregate) String() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		if len(el.Choices) == 0 {
			parts[i] = el.Value.String()
			continue
		}
		choices := make([]string, len(el.Choices))
		for j, c := range el.Choices {
			choices[j] = c.String()
		}
		parts[i] = strings.Join(choices, " | ") + " => " + el.Value.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Check wraps an expression or statement target with a runtime check the
// resolver determined is necessary (range, index, null-access, divide
// by zero, overflow, discriminant or length check). The code generator
// evaluates Target and then lowers Kind to its own guard sequence on the
// resulting value (overflow and discriminant checks get no guard);
// Check nodes are never produced by the parser, only by semantic
// analysis, and are transparent to String().
type Check struct {
	Kind   CheckKind
	Target Expression
	// Against holds the check-specific operand, e.g. the subtype
	// being range-checked against for CheckRange.
	Against Expression
}

// CheckKind enumerates the runtime checks the resolver may insert.
type CheckKind int

const (
	CheckRange CheckKind = iota
	CheckIndex
	CheckNotNull
	CheckDivideByZero
	CheckOverflow
	CheckDiscriminant
	CheckLength
)

func (c *Check) exprNode()          {}
func (c *Check) Pos() token.Position { return c.Target.Pos() }
func (c *Check) String() string      { return c.Target.String() }
