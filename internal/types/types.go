// Package types implements the compiler's type descriptor model: the
// canonical representation every declared or derived Ada type resolves
// to, used by the resolver for compatibility checks and by the code
// generator for layout and mangling decisions.
package types

import (
	"fmt"
	"strings"
)

// Kind distinguishes the family of a Type.
type Kind int

const (
	Boolean Kind = iota
	Character
	Integer
	UnsignedInteger
	Enumeration
	Derived
	Float
	UniversalFloat
	UniversalInteger
	FixedPoint
	Access
	FatPointer // an unconstrained array descriptor: {data ptr, bounds}
	String     // predefined String, an array of Character indexed by Positive
	Array
	Record
	Task
	Package
	Procedure
	Function
)

func (k Kind) String() string {
	names := [...]string{
		"Boolean", "Character", "Integer", "UnsignedInteger", "Enumeration",
		"Derived", "Float", "UniversalFloat", "UniversalInteger", "FixedPoint",
		"Access", "FatPointer", "String", "Array", "Record", "Task", "Package",
		"Procedure", "Function",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Suppress is a bitset of runtime checks disabled for a type, either by
// a `pragma Suppress` or inherited from an enclosing scope.
type Suppress uint8

const (
	SuppressRange Suppress = 1 << iota
	SuppressIndex
	SuppressOverflow
	SuppressDivideByZero
	SuppressAccessCheck
	SuppressDiscriminant
	SuppressLength
)

func (s Suppress) Has(flag Suppress) bool { return s&flag != 0 }

// Field is one component of a record type.
type Field struct {
	Name   string
	Type   *Type
	Offset int // byte offset within the record layout, set by Freeze
}

// Param describes one formal parameter of a Procedure/Function type.
type Param struct {
	Name string
	Type *Type
	Mode ParamMode
}

// ParamMode mirrors ast.ParamMode without importing the ast package,
// keeping types free of a dependency on the parse tree.
type ParamMode int

const (
	ModeIn ParamMode = iota
	ModeOut
	ModeInOut
)

// EnumLiteral is one value of an enumeration type, in declaration order.
type EnumLiteral struct {
	Name string
	Pos  int // 0-based ordinal position, also Character'Pos for char types
}

// Type is the canonical descriptor for an Ada type or subtype. Distinct
// *Type values represent distinct types; a subtype shares its Base's
// identity for compatibility purposes but may carry its own constraint.
type Type struct {
	Kind Kind
	Name string // declared name, "" for anonymous types

	// Scalar bounds (Integer, UnsignedInteger, Enumeration, Character,
	// Float, FixedPoint, Derived-of-scalar). Constrained is false for an
	// unconstrained base type (e.g. the root Integer or a generic formal
	// discrete type before instantiation).
	Constrained bool
	Low, High   int64   // discrete bounds (Enumeration bounds are ordinal positions)
	LowF, HighF float64 // Float/FixedPoint bounds

	// Enumeration only.
	Literals []EnumLiteral

	// Float only.
	Digits int

	// FixedPoint only.
	Delta float64

	// Derived/subtype only: the immediate parent type.
	Base *Type

	// Access only.
	Designated *Type

	// Array only.
	IndexTypes []*Type // one per dimension
	Element    *Type
	Unconstrained bool // true for `array (Positive range <>) of T`

	// Record/Task only.
	Fields []Field
	Size   int // total layout size in bytes, set by Freeze

	// Package only.
	Members map[string]*Type

	// Procedure/Function only.
	Params []Param
	Result *Type // non-nil for Function

	Suppressed Suppress
	Frozen     bool
}

// Universal types are predefined, singleton, and never frozen: literals
// carry these types until context resolves them to a specific numeric
// type.
var (
	UniversalIntegerType = &Type{Kind: UniversalInteger, Name: "universal_integer"}
	UniversalFloatType   = &Type{Kind: UniversalFloat, Name: "universal_real"}
	BooleanType          = &Type{Kind: Boolean, Name: "Boolean", Constrained: true, Low: 0, High: 1,
		Literals: []EnumLiteral{{Name: "False", Pos: 0}, {Name: "True", Pos: 1}}}
	CharacterType = &Type{Kind: Character, Name: "Character", Constrained: true, Low: 0, High: 255}
	IntegerType   = &Type{Kind: Integer, Name: "Integer", Constrained: true, Low: -(1 << 31), High: (1 << 31) - 1}
	NaturalType   = &Type{Kind: Integer, Name: "Natural", Base: IntegerType, Constrained: true, Low: 0, High: (1 << 31) - 1}
	PositiveType  = &Type{Kind: Integer, Name: "Positive", Base: IntegerType, Constrained: true, Low: 1, High: (1 << 31) - 1}
	FloatType     = &Type{Kind: Float, Name: "Float", Constrained: true, Digits: 6, LowF: -1e38, HighF: 1e38}
	StringType    = &Type{Kind: String, Name: "String", Unconstrained: true}
)

func init() {
	StringType.IndexTypes = []*Type{PositiveType}
	StringType.Element = CharacterType
}

// Root follows Base links to the ultimate ancestor of a derived type or
// subtype; for a type with no Base it returns t itself.
func (t *Type) Root() *Type {
	for t.Base != nil {
		t = t.Base
	}
	return t
}

// IsNumeric reports whether t's root is an integer or real type.
func (t *Type) IsNumeric() bool {
	switch t.Root().Kind {
	case Integer, UnsignedInteger, Float, FixedPoint, UniversalInteger, UniversalFloat:
		return true
	default:
		return false
	}
}

// IsDiscrete reports whether t's root admits enumeration-like ordinal
// operations (Pos, Val, Succ, Pred, 'Range).
func (t *Type) IsDiscrete() bool {
	switch t.Root().Kind {
	case Integer, UnsignedInteger, Boolean, Character, Enumeration, UniversalInteger:
		return true
	default:
		return false
	}
}

// Covers reports whether a value of type other may be used where a is
// expected, per LRM 3.3's notion of matching the same "type" even across
// a chain of subtype constraints. Two types are compatible when they
// share the same root type; universal numeric types are compatible with
// any type of matching numeric class until resolved.
func (a *Type) Covers(other *Type) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	if a.Root() == other.Root() {
		return true
	}
	switch {
	case other.Kind == UniversalInteger:
		return a.Root().Kind == Integer || a.Root().Kind == UnsignedInteger
	case other.Kind == UniversalFloat:
		return a.Root().Kind == Float || a.Root().Kind == FixedPoint
	case a.Kind == UniversalInteger:
		return other.Root().Kind == Integer || other.Root().Kind == UnsignedInteger
	case a.Kind == UniversalFloat:
		return other.Root().Kind == Float || other.Root().Kind == FixedPoint
	}
	return false
}

// InRange reports whether a discrete value v satisfies t's scalar
// constraint. Only meaningful once t.Constrained is true.
func (t *Type) InRange(v int64) bool {
	return v >= t.Low && v <= t.High
}

// InRangeF is the floating/fixed point analogue of InRange.
func (t *Type) InRangeF(v float64) bool {
	return v >= t.LowF && v <= t.HighF
}

// String renders a debug form of the type, used in diagnostics.
func (t *Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	switch t.Kind {
	case Array:
		dims := make([]string, len(t.IndexTypes))
		for i, idx := range t.IndexTypes {
			dims[i] = idx.String()
		}
		return fmt.Sprintf("array (%s) of %s", strings.Join(dims, ", "), t.Element)
	case Access:
		return "access " + t.Designated.String()
	case Procedure:
		return "procedure" + paramList(t.Params)
	case Function:
		return "function" + paramList(t.Params) + " return " + t.Result.String()
	default:
		return t.Kind.String()
	}
}

func paramList(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " : " + p.Type.String()
	}
	return "(" + strings.Join(parts, "; ") + ")"
}
