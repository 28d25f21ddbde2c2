package ast

import (
	"strings"

	"github.com/go-ada/adac/internal/token"
)

// TypeDef is any of the type definitions that can follow `type Name is`.
type TypeDef interface {
	Node
	typeDefNode()
}

// DerivedTypeDef is `new ParentType [range Constraint]`.
type DerivedTypeDef struct {
	Token  token.Token // 'new'
	Parent Expression
	Range  *RangeExpr // nil if unconstrained
}

func (d *DerivedTypeDef) typeDefNode()       {}
func (d *DerivedTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *DerivedTypeDef) String() string {
	s := "new " + d.Parent.String()
	if d.Range != nil {
		s += " range " + d.Range.String()
	}
	return s
}

// RangeTypeDef is `range Low .. High` (a signed integer type definition).
type RangeTypeDef struct {
	Token token.Token // 'range'
	Range *RangeExpr
}

func (d *RangeTypeDef) typeDefNode()       {}
func (d *RangeTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *RangeTypeDef) String() string      { return "range " + d.Range.String() }

// ModularTypeDef is `mod Modulus` (an unsigned, wraparound integer type).
type ModularTypeDef struct {
	Token   token.Token // 'mod'
	Modulus Expression
}

func (d *ModularTypeDef) typeDefNode()       {}
func (d *ModularTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *ModularTypeDef) String() string      { return "mod " + d.Modulus.String() }

// FloatTypeDef is `digits Precision [range Low .. High]`.
type FloatTypeDef struct {
	Token     token.Token // 'digits'
	Precision Expression
	Range     *RangeExpr // nil if unconstrained
}

func (d *FloatTypeDef) typeDefNode()       {}
func (d *FloatTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *FloatTypeDef) String() string {
	s := "digits " + d.Precision.String()
	if d.Range != nil {
		s += " range " + d.Range.String()
	}
	return s
}

// FixedTypeDef is `delta Delta [range Low .. High]`.
type FixedTypeDef struct {
	Token token.Token // 'delta'
	Delta Expression
	Range *RangeExpr
}

func (d *FixedTypeDef) typeDefNode()       {}
func (d *FixedTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *FixedTypeDef) String() string {
	s := "delta " + d.Delta.String()
	if d.Range != nil {
		s += " range " + d.Range.String()
	}
	return s
}

// EnumTypeDef is `(Lit1, Lit2, ...)`, a named enumeration type.
type EnumTypeDef struct {
	Token    token.Token // '('
	Literals []string    // enumeration literal identifiers, in declared order
}

func (d *EnumTypeDef) typeDefNode()       {}
func (d *EnumTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *EnumTypeDef) String() string     { return "(" + strings.Join(d.Literals, ", ") + ")" }

// ArrayTypeDef is `array (IndexRanges) of ComponentType`; Unconstrained
// marks `array (T range <>) of Component`.
type ArrayTypeDef struct {
	Token         token.Token // 'array'
	IndexRanges   []Expression
	Unconstrained bool
	IndexTypes    []Expression // index subtype marks, used only when Unconstrained
	Component     Expression
}

func (d *ArrayTypeDef) typeDefNode()       {}
func (d *ArrayTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *ArrayTypeDef) String() string {
	var idx []string
	if d.Unconstrained {
		for _, t := range d.IndexTypes {
			idx = append(idx, t.String()+" range <>")
		}
	} else {
		for _, r := range d.IndexRanges {
			idx = append(idx, r.String())
		}
	}
	return "array (" + strings.Join(idx, ", ") + ") of " + d.Component.String()
}

// RecordComponent is one component declaration inside a record: Names :
// SubtypeIndication [:= Default].
type RecordComponent struct {
	Names      []string
	SubtypeInd *SubtypeIndication
	Default    Expression
}

// RecordTypeDef is `record Components end record`.
type RecordTypeDef struct {
	Token      token.Token // 'record'
	Components []RecordComponent
}

func (d *RecordTypeDef) typeDefNode()       {}
func (d *RecordTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *RecordTypeDef) String() string {
	var sb strings.Builder
	sb.WriteString("record\n")
	for _, c := range d.Components {
		sb.WriteString("  " + strings.Join(c.Names, ", ") + " : " + c.SubtypeInd.String())
		if c.Default != nil {
			sb.WriteString(" := " + c.Default.String())
		}
		sb.WriteString(";\n")
	}
	sb.WriteString("end record")
	return sb.String()
}

// AccessTypeDef is `access [constant] Designated`.
type AccessTypeDef struct {
	Token      token.Token // 'access'
	Constant   bool
	Designated Expression
}

func (d *AccessTypeDef) typeDefNode()       {}
func (d *AccessTypeDef) Pos() token.Position { return d.Token.Pos }
func (d *AccessTypeDef) String() string {
	if d.Constant {
		return "access constant " + d.Designated.String()
	}
	return "access " + d.Designated.String()
}

// GenericFormalPart is the `generic ... ` prefix of a generic unit,
// listing its formal parameters.
type GenericFormalPart struct {
	Token   token.Token // 'generic'
	Formals []GenericFormal
}

func (g *GenericFormalPart) Pos() token.Position { return g.Token.Pos }
func (g *GenericFormalPart) String() string {
	var sb strings.Builder
	sb.WriteString("generic\n")
	for _, f := range g.Formals {
		sb.WriteString("  " + f.String() + "\n")
	}
	return sb.String()
}

// GenericFormal is one formal generic parameter: a formal object, formal
// type, or formal subprogram.
type GenericFormal struct {
	Kind GenericFormalKind

	// Formal object: Names : [Mode] TypeMark [:= Default].
	Names    []string
	Mode     ParamMode
	TypeMark Expression
	Default  Expression

	// Formal type: Name is FormalTypeDef (e.g. `private`, `(<>)`, `range <>`).
	Name         string
	FormalTypeDef string

	// Formal subprogram: Spec [is Default].
	Spec *SubprogramSpec
}

// GenericFormalKind distinguishes the three formal parameter shapes.
type GenericFormalKind int

const (
	FormalObject GenericFormalKind = iota
	FormalType
	FormalSubprogram
)

func (f GenericFormal) String() string {
	switch f.Kind {
	case FormalType:
		return "type " + f.Name + " is " + f.FormalTypeDef + ";"
	case FormalSubprogram:
		s := "with " + f.Spec.String()
		if f.Default != nil {
			s += " is " + f.Default.String()
		}
		return s + ";"
	default:
		s := strings.Join(f.Names, ", ") + " : " + f.Mode.String() + " " + f.TypeMark.String()
		if f.Default != nil {
			s += " := " + f.Default.String()
		}
		return s + ";"
	}
}
