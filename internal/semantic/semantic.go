// Package semantic implements the resolver: it walks the parser's syntax
// tree, binds every name to a symbol, infers and records the type of
// every expression, and rewrites the tree to insert runtime-check
// wrapper nodes (ast.Check) where a constrained assignment, division,
// dereference, or index requires one. The code generator consumes the
// rewritten tree and never re-derives these decisions itself.
package semantic

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/diag"
	"github.com/go-ada/adac/internal/generics"
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/token"
	"github.com/go-ada/adac/internal/types"
)

// Resolver holds the state threaded through one resolution pass.
type Resolver struct {
	bag     *diag.Bag
	file    string
	src     string
	globals *symtab.Scope
	scope   *symtab.Scope
	store   *generics.Store

	// currentReturn is the enclosing function's result type, nil inside a
	// procedure body, used to type-check `return Value;`.
	currentReturn *types.Type

	// exprTypes records the resolved type of every expression node
	// encountered, keyed by the node's address, mirroring the "resolved
	// type (nullable)" slot the data model assigns each syntax node.
	exprTypes map[ast.Expression]*types.Type

	// checkTypes records, for each synthesized ast.Check the resolver
	// inserted, the type the check verifies against (the constrained
	// subtype for CheckRange/CheckIndex); the emitter looks values up
	// here instead of re-deriving them from the tree.
	checkTypes map[*ast.Check]*types.Type

	// instances maps each generic instantiation to the resolved clone of
	// its template, so the emitter can generate the instance's body
	// without re-running instantiation itself.
	instances map[*ast.GenericInstantiation]ast.Declaration

	// suppressed accumulates the checks a `pragma Suppress(Check_Name)`
	// with no named entity has disabled from its point of occurrence to
	// the end of the compilation unit; a pragma naming a specific type
	// instead sets that type's own Suppressed bitset and never touches
	// this one.
	suppressed types.Suppress
}

// Result is everything a caller needs after a successful or partial
// resolution pass.
type Result struct {
	Unit       *ast.CompilationUnit
	Diags      *diag.Bag
	ExprTypes  map[ast.Expression]*types.Type
	CheckTypes map[*ast.Check]*types.Type
	Instances  map[*ast.GenericInstantiation]ast.Declaration
}

// New creates a Resolver reporting diagnostics against file/src.
func New(file, src string) *Resolver {
	r := &Resolver{
		bag:       &diag.Bag{},
		file:      file,
		src:       src,
		store:     generics.NewStore(),
		exprTypes: make(map[ast.Expression]*types.Type),
	}
	r.globals = symtab.NewScope(nil, "")
	r.scope = r.globals
	declarePredefined(r.globals)
	return r
}

// Resolve walks unit, resolving every library item in sequence (later
// items may reference earlier ones, e.g. a generic instantiation
// referring to a template declared earlier in the same file).
func Resolve(file, src string, unit *ast.CompilationUnit) *Result {
	r := New(file, src)
	for _, item := range unit.Units {
		r.resolveLibraryItem(item)
	}
	return &Result{
		Unit: unit, Diags: r.bag,
		ExprTypes: r.exprTypes, CheckTypes: r.checkTypes, Instances: r.instances,
	}
}

func (r *Resolver) errorf(pos token.Position, format string, args ...any) {
	r.bag.Add(diag.New(pos, r.src, r.file, format, args...))
}

func (r *Resolver) pushScope(name string) *symtab.Scope {
	r.scope = symtab.NewScope(r.scope, name)
	return r.scope
}

func (r *Resolver) popScope() {
	r.scope = r.scope.Parent
}

func (r *Resolver) setType(e ast.Expression, t *types.Type) *types.Type {
	r.exprTypes[e] = t
	return t
}

// typeOf returns the type recorded for e, or nil if e was never resolved
// (an internal error elsewhere, never expected once resolution succeeds).
func (r *Resolver) typeOf(e ast.Expression) *types.Type {
	return r.exprTypes[e]
}

func (r *Resolver) resolveLibraryItem(item ast.Declaration) {
	r.resolveDeclaration(item)
}
