// Package symtab implements the compiler's lexically scoped symbol
// table. Ada 83 identifiers are case-insensitive, so every lookup key is
// folded before hashing; overloaded subprogram names are stored as a
// chain so the resolver can pick among them once argument types are
// known.
package symtab

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/token"
	"github.com/go-ada/adac/internal/types"
)

// Kind distinguishes what a Symbol names.
type Kind int

const (
	KindObject Kind = iota
	KindConstant
	KindNumber
	KindType
	KindSubtype
	KindException
	KindSubprogram
	KindPackage
	KindEnumLiteral
	KindGenericFormal
	KindLabel
)

// Symbol is one declared name. Overloaded subprograms are chained
// through Next; every other Kind has exactly one Symbol per folded name
// per scope (re-declaration is a resolver error, not a table conflict).
type Symbol struct {
	Name string // original casing of the declaring occurrence
	Kind Kind
	Type *types.Type
	Pos  token.Position

	Next *Symbol // next overload of the same folded name in this scope

	// Members holds a package's or record's own nested scope, set for
	// KindPackage symbols (record field access goes through types.Type
	// directly, not through this table).
	Members *Scope

	// ConstExpr holds the declaring expression for a KindConstant or
	// KindNumber symbol, so the resolver can evaluate references to it in
	// a later static (compile-time) context, e.g. a range bound that
	// names an earlier constant.
	ConstExpr ast.Expression
}

// Scope is one lexical level: a package, subprogram body, block, or the
// library level. Scopes form a tree via Parent so lookups can walk
// outward.
type Scope struct {
	Parent *Scope
	Name   string // enclosing unit name, used for mangling
	table  map[string]*Symbol
}

// NewScope creates a scope nested inside parent. Pass a nil parent for
// the library-level (outermost) scope.
func NewScope(parent *Scope, name string) *Scope {
	return &Scope{Parent: parent, Name: name, table: make(map[string]*Symbol)}
}

// Declare adds sym to s under its folded name. Non-subprogram symbols
// that collide with an existing declaration in the same scope return
// false (the resolver turns this into a "already declared" diagnostic);
// subprograms are always chained as overloads, since only full overload
// resolution can tell whether two profiles actually collide.
func (s *Scope) Declare(sym *Symbol) bool {
	key := token.Fold(sym.Name)
	existing, ok := s.table[key]
	if !ok {
		s.table[key] = sym
		return true
	}
	if sym.Kind != KindSubprogram || existing.Kind != KindSubprogram {
		return false
	}
	sym.Next = existing
	s.table[key] = sym
	return true
}

// Lookup finds the nearest declaration of name, searching s and then
// each enclosing scope in turn. For an overloaded subprogram name it
// returns the head of the overload chain; walk Next to enumerate all
// candidates.
func (s *Scope) Lookup(name string) *Symbol {
	key := token.Fold(name)
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.table[key]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal finds name only within s, without searching enclosing
// scopes; used to detect re-declaration within the same declarative part.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.table[token.Fold(name)]
}

// Overloads returns every subprogram symbol chained under name in the
// nearest enclosing scope that declares it.
func Overloads(sym *Symbol) []*Symbol {
	var out []*Symbol
	for s := sym; s != nil; s = s.Next {
		out = append(out, s)
	}
	return out
}

// All returns every symbol directly declared in s, ordered naturally by
// name (so Item2 sorts before Item10) for stable diagnostic listings and
// for enumerating a package's visible part.
func (s *Scope) All() []*Symbol {
	out := make([]*Symbol, 0, len(s.table))
	for _, sym := range s.table {
		for ov := sym; ov != nil; ov = ov.Next {
			out = append(out, ov)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i].Name, out[j].Name)
	})
	return out
}
