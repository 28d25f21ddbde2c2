package ast

import (
	"bytes"
	"strings"

	"github.com/go-ada/adac/internal/token"
)

// ObjectDecl is a variable or constant declaration:
// Names : [constant] SubtypeIndication [:= Init];
type ObjectDecl struct {
	Token      token.Token // the first name token
	Names      []string
	Constant   bool
	SubtypeInd *SubtypeIndication
	Init       Expression // nil if no initial value
}

func (d *ObjectDecl) declNode()          {}
func (d *ObjectDecl) Pos() token.Position { return d.Token.Pos }
func (d *ObjectDecl) String() string {
	kw := ""
	if d.Constant {
		kw = "constant "
	}
	s := strings.Join(d.Names, ", ") + " : " + kw + d.SubtypeInd.String()
	if d.Init != nil {
		s += " := " + d.Init.String()
	}
	return s + ";"
}

// NumberDecl is a named number declaration: Name : constant := Expr;
// (a universal, unconstrained numeric constant, per LRM 3.2.2).
type NumberDecl struct {
	Token token.Token
	Names []string
	Value Expression
}

func (d *NumberDecl) declNode()          {}
func (d *NumberDecl) Pos() token.Position { return d.Token.Pos }
func (d *NumberDecl) String() string {
	return strings.Join(d.Names, ", ") + " : constant := " + d.Value.String() + ";"
}

// SubtypeIndication names a type mark with an optional constraint: a
// range constraint on a scalar type, or index/discriminant constraints
// on a composite type.
type SubtypeIndication struct {
	Token      token.Token
	TypeMark   Expression
	Range      *RangeExpr   // scalar range constraint, nil if absent
	IndexConstraints []Expression // array index constraints (ranges), nil if absent
}

func (s *SubtypeIndication) Pos() token.Position { return s.Token.Pos }
func (s *SubtypeIndication) String() string {
	out := s.TypeMark.String()
	if s.Range != nil {
		out += " range " + s.Range.String()
	}
	if len(s.IndexConstraints) > 0 {
		parts := make([]string, len(s.IndexConstraints))
		for i, c := range s.IndexConstraints {
			parts[i] = c.String()
		}
		out += "(" + strings.Join(parts, ", ") + ")"
	}
	return out
}

// TypeDecl is `type Name [(Discriminants)] is TypeDef;`.
type TypeDecl struct {
	Token token.Token
	Name  string
	Def   TypeDef
}

func (d *TypeDecl) declNode()          {}
func (d *TypeDecl) Pos() token.Position { return d.Token.Pos }
func (d *TypeDecl) String() string {
	return "type " + d.Name + " is " + d.Def.String() + ";"
}

// SubtypeDecl is `subtype Name is SubtypeIndication;`.
type SubtypeDecl struct {
	Token      token.Token
	Name       string
	SubtypeInd *SubtypeIndication
}

func (d *SubtypeDecl) declNode()          {}
func (d *SubtypeDecl) Pos() token.Position { return d.Token.Pos }
func (d *SubtypeDecl) String() string {
	return "subtype " + d.Name + " is " + d.SubtypeInd.String() + ";"
}

// ExceptionDecl is `Names : exception;`.
type ExceptionDecl struct {
	Token token.Token
	Names []string
}

func (d *ExceptionDecl) declNode()          {}
func (d *ExceptionDecl) Pos() token.Position { return d.Token.Pos }
func (d *ExceptionDecl) String() string {
	return strings.Join(d.Names, ", ") + " : exception;"
}

// RenamingDecl is `Name : SubtypeMark renames Expr;` (object renaming) or
// the analogous subprogram renaming form.
type RenamingDecl struct {
	Token    token.Token
	Name     string
	TypeMark Expression // nil for subprogram renaming
	Renamed  Expression
}

func (d *RenamingDecl) declNode()          {}
func (d *RenamingDecl) Pos() token.Position { return d.Token.Pos }
func (d *RenamingDecl) String() string {
	if d.TypeMark != nil {
		return d.Name + " : " + d.TypeMark.String() + " renames " + d.Renamed.String() + ";"
	}
	return d.Name + " renames " + d.Renamed.String() + ";"
}

// Param is one entry of a subprogram's formal parameter part.
type Param struct {
	Names      []string
	Mode       ParamMode
	TypeMark   Expression
	Default    Expression // nil if no default
}

// ParamMode is the Ada parameter passing mode.
type ParamMode int

const (
	ModeIn ParamMode = iota
	ModeOut
	ModeInOut
)

func (m ParamMode) String() string {
	switch m {
	case ModeOut:
		return "out"
	case ModeInOut:
		return "in out"
	default:
		return "in"
	}
}

func (p Param) String() string {
	s := strings.Join(p.Names, ", ") + " : " + p.Mode.String() + " " + p.TypeMark.String()
	if p.Default != nil {
		s += " := " + p.Default.String()
	}
	return s
}

// SubprogramSpec is the profile shared by a subprogram declaration,
// subprogram body, and generic subprogram: its name, parameters, and
// (for a function) its return type mark.
type SubprogramSpec struct {
	Token      token.Token
	Name       string
	IsFunction bool
	Params     []Param
	ReturnType Expression // non-nil iff IsFunction
}

func (s *SubprogramSpec) Pos() token.Position { return s.Token.Pos }
func (s *SubprogramSpec) String() string {
	kw := "procedure"
	if s.IsFunction {
		kw = "function"
	}
	out := kw + " " + s.Name
	if len(s.Params) > 0 {
		parts := make([]string, len(s.Params))
		for i, p := range s.Params {
			parts[i] = p.String()
		}
		out += "(" + strings.Join(parts, "; ") + ")"
	}
	if s.IsFunction {
		out += " return " + s.ReturnType.String()
	}
	return out
}

// SubprogramDecl is a bare subprogram specification ending in `;`,
// appearing in a package spec, as a forward declaration, or as a
// generic subprogram's declaration (Generic non-nil).
type SubprogramDecl struct {
	Spec    *SubprogramSpec
	Generic *GenericFormalPart
}

func (d *SubprogramDecl) declNode()          {}
func (d *SubprogramDecl) Pos() token.Position { return d.Spec.Pos() }
func (d *SubprogramDecl) String() string {
	if d.Generic != nil {
		return d.Generic.String() + d.Spec.String() + ";"
	}
	return d.Spec.String() + ";"
}

// SubprogramBody is a full subprogram body: spec, local declarative
// part, statements, and optional exception handlers.
type SubprogramBody struct {
	Spec         *SubprogramSpec
	Declarations []Declaration
	Statements   []Statement
	Handlers     []ExceptionHandler
	Generic      *GenericFormalPart // non-nil when this is a generic subprogram
}

func (d *SubprogramBody) declNode()          {}
func (d *SubprogramBody) Pos() token.Position { return d.Spec.Pos() }
func (d *SubprogramBody) String() string {
	var out bytes.Buffer
	if d.Generic != nil {
		out.WriteString(d.Generic.String())
	}
	out.WriteString(d.Spec.String() + " is\n")
	for _, decl := range d.Declarations {
		out.WriteString("  " + decl.String() + "\n")
	}
	out.WriteString("begin\n")
	for _, st := range d.Statements {
		out.WriteString("  " + st.String() + "\n")
	}
	if len(d.Handlers) > 0 {
		out.WriteString("exception\n")
		for _, h := range d.Handlers {
			out.WriteString("  " + h.String() + "\n")
		}
	}
	out.WriteString("end " + d.Spec.Name + ";")
	return out.String()
}

// PackageSpec is `package Name is Declarations [private Declarations] end;`.
type PackageSpec struct {
	Token        token.Token
	Name         string
	Declarations []Declaration
	Private      []Declaration // nil if no private part
	Generic      *GenericFormalPart
}

func (d *PackageSpec) declNode()          {}
func (d *PackageSpec) Pos() token.Position { return d.Token.Pos }
func (d *PackageSpec) String() string {
	var out bytes.Buffer
	if d.Generic != nil {
		out.WriteString(d.Generic.String())
	}
	out.WriteString("package " + d.Name + " is\n")
	for _, decl := range d.Declarations {
		out.WriteString("  " + decl.String() + "\n")
	}
	if d.Private != nil {
		out.WriteString("private\n")
		for _, decl := range d.Private {
			out.WriteString("  " + decl.String() + "\n")
		}
	}
	out.WriteString("end " + d.Name + ";")
	return out.String()
}

// PackageBody is `package body Name is Declarations begin Statements end;`.
type PackageBody struct {
	Token        token.Token
	Name         string
	Declarations []Declaration
	Statements   []Statement // nil if no begin part
	Handlers     []ExceptionHandler
}

func (d *PackageBody) declNode()          {}
func (d *PackageBody) Pos() token.Position { return d.Token.Pos }
func (d *PackageBody) String() string {
	var out bytes.Buffer
	out.WriteString("package body " + d.Name + " is\n")
	for _, decl := range d.Declarations {
		out.WriteString("  " + decl.String() + "\n")
	}
	if d.Statements != nil {
		out.WriteString("begin\n")
		for _, st := range d.Statements {
			out.WriteString("  " + st.String() + "\n")
		}
	}
	out.WriteString("end " + d.Name + ";")
	return out.String()
}

// GenericInstantiation is `Name is new GenericName(Actuals);`, either a
// package or subprogram instantiation; Kind distinguishes a procedure or
// function instantiation from a package instantiation.
type GenericInstantiation struct {
	Token     token.Token
	Name      string
	Generic   string // name of the generic template being instantiated
	Actuals   []Expression
	NamedArgs []NamedArg
	Kind      InstantiationKind
}

// InstantiationKind distinguishes what a generic instantiation declares.
type InstantiationKind int

const (
	InstantiatesPackage InstantiationKind = iota
	InstantiatesProcedure
	InstantiatesFunction
)

func (d *GenericInstantiation) declNode()          {}
func (d *GenericInstantiation) Pos() token.Position { return d.Token.Pos }
func (d *GenericInstantiation) String() string {
	kw := "package"
	switch d.Kind {
	case InstantiatesProcedure:
		kw = "procedure"
	case InstantiatesFunction:
		kw = "function"
	}
	parts := make([]string, 0, len(d.Actuals)+len(d.NamedArgs))
	for _, a := range d.Actuals {
		parts = append(parts, a.String())
	}
	for _, n := range d.NamedArgs {
		parts = append(parts, n.Name+" => "+n.Expr.String())
	}
	out := kw + " " + d.Name + " is new " + d.Generic
	if len(parts) > 0 {
		out += "(" + strings.Join(parts, ", ") + ")"
	}
	return out + ";"
}

// Pragma is `pragma Name [(Args)];`; most pragmas are advisory, but a
// small set (Suppress, Pack, Import, Convention) affect code generation
// and are interpreted by the resolver.
type Pragma struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (d *Pragma) declNode()          {}
func (d *Pragma) stmtNode()          {}
func (d *Pragma) Pos() token.Position { return d.Token.Pos }
func (d *Pragma) String() string {
	out := "pragma " + d.Name
	if len(d.Args) > 0 {
		parts := make([]string, len(d.Args))
		for i, a := range d.Args {
			parts[i] = a.String()
		}
		out += "(" + strings.Join(parts, ", ") + ")"
	}
	return out + ";"
}
