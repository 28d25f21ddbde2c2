package semantic

import (
	"strings"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/generics"
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/types"
)

// resolveDeclaration dispatches on the concrete declaration shape,
// declaring a symbol for every name it introduces and resolving any
// expression it carries.
func (r *Resolver) resolveDeclaration(d ast.Declaration) {
	switch n := d.(type) {
	case *ast.ObjectDecl:
		r.resolveObjectDecl(n)
	case *ast.NumberDecl:
		r.resolveNumberDecl(n)
	case *ast.TypeDecl:
		r.resolveTypeDecl(n)
	case *ast.SubtypeDecl:
		r.resolveSubtypeDecl(n)
	case *ast.ExceptionDecl:
		for _, name := range n.Names {
			r.declare(&symtab.Symbol{Name: name, Kind: symtab.KindException, Pos: n.Pos()})
		}
	case *ast.RenamingDecl:
		r.resolveRenamingDecl(n)
	case *ast.SubprogramDecl:
		r.resolveSubprogramDecl(n)
	case *ast.SubprogramBody:
		r.resolveSubprogramBody(n)
	case *ast.PackageSpec:
		r.resolvePackageSpec(n)
	case *ast.PackageBody:
		r.resolvePackageBody(n)
	case *ast.GenericInstantiation:
		r.resolveGenericInstantiation(n)
	case *ast.Pragma:
		// Every pragma but Suppress is advisory to this core. Suppress
		// either disables a check for the remainder of this compilation
		// unit (no entity named) or for one specific type, recorded on
		// r.suppressed or the named type's own Suppressed bitset
		// respectively; checkAssignment/resolveBinaryExpr/
		// resolveIndexedComponent consult both before inserting a check,
		// and the emitter's checks.go consults the type-level bitset
		// again before lowering one it still finds in the tree.
		r.resolvePragma(n)
	default:
		r.errorf(d.Pos(), "internal: unsupported declaration %T", d)
	}
}

// declare adds sym to the current scope, reporting a re-declaration
// error instead of silently shadowing (Ada 83 forbids two non-overload
// declarations of the same name in one declarative part).
func (r *Resolver) declare(sym *symtab.Symbol) {
	if existing := r.scope.LookupLocal(sym.Name); existing != nil && sym.Kind != symtab.KindSubprogram {
		r.errorf(sym.Pos, "%q is already declared at %s", sym.Name, existing.Pos)
		return
	}
	r.scope.Declare(sym)
}

func (r *Resolver) resolveObjectDecl(n *ast.ObjectDecl) {
	t := r.resolveSubtypeIndication(n.SubtypeInd)
	kind := symtab.KindObject
	if n.Constant {
		kind = symtab.KindConstant
	}
	if n.Init != nil {
		r.checkAssignment(&n.Init, t)
	}
	for _, name := range n.Names {
		sym := &symtab.Symbol{Name: name, Kind: kind, Type: t, Pos: n.Pos()}
		if n.Constant {
			sym.ConstExpr = n.Init
		}
		r.declare(sym)
	}
}

// resolveNumberDecl resolves a named number: a universal constant whose
// type is fixed only once it is used in a context requiring a specific
// numeric type (LRM 3.2.2).
func (r *Resolver) resolveNumberDecl(n *ast.NumberDecl) {
	t := types.UniversalIntegerType
	if _, ok := r.staticInt(n.Value); !ok {
		if _, ok := r.staticFloat(n.Value); ok {
			t = types.UniversalFloatType
		} else if vt := r.resolveExpr(n.Value); vt != nil {
			t = vt
		}
	}
	for _, name := range n.Names {
		r.declare(&symtab.Symbol{Name: name, Kind: symtab.KindNumber, Type: t, Pos: n.Pos(), ConstExpr: n.Value})
	}
}

func (r *Resolver) resolveTypeDecl(n *ast.TypeDecl) {
	t := r.resolveTypeDef(n.Name, n.Def)
	r.declare(&symtab.Symbol{Name: n.Name, Kind: symtab.KindType, Type: t, Pos: n.Pos()})
}

func (r *Resolver) resolveSubtypeDecl(n *ast.SubtypeDecl) {
	t := r.resolveSubtypeIndication(n.SubtypeInd)
	r.declare(&symtab.Symbol{Name: n.Name, Kind: symtab.KindSubtype, Type: t, Pos: n.Pos()})
}

func (r *Resolver) resolveRenamingDecl(n *ast.RenamingDecl) {
	if n.TypeMark != nil {
		t := r.resolveTypeMark(n.TypeMark)
		r.resolveExpr(n.Renamed)
		r.declare(&symtab.Symbol{Name: n.Name, Kind: symtab.KindObject, Type: t, Pos: n.Pos()})
		return
	}
	// Subprogram or exception renaming: the new name takes on the
	// renamed entity's own kind and type.
	var kind symtab.Kind
	var t *types.Type
	if ident, ok := n.Renamed.(*ast.Identifier); ok {
		if sym := r.scope.Lookup(ident.Name); sym != nil {
			kind, t = sym.Kind, sym.Type
		} else {
			r.errorf(ident.Pos(), "undeclared identifier %q", ident.Name)
		}
	} else {
		r.resolveExpr(n.Renamed)
	}
	r.declare(&symtab.Symbol{Name: n.Name, Kind: kind, Type: t, Pos: n.Pos()})
}

// subprogramType builds the canonical Procedure/Function type for spec,
// resolving every parameter's and result's type mark in the current
// scope (the declaring scope, never the subprogram's own body scope).
func (r *Resolver) subprogramType(spec *ast.SubprogramSpec) *types.Type {
	t := &types.Type{Kind: types.Procedure, Name: spec.Name}
	if spec.IsFunction {
		t.Kind = types.Function
		t.Result = r.resolveTypeMark(spec.ReturnType)
	}
	for _, p := range spec.Params {
		pt := r.resolveTypeMark(p.TypeMark)
		mode := types.ModeIn
		switch p.Mode {
		case ast.ModeOut:
			mode = types.ModeOut
		case ast.ModeInOut:
			mode = types.ModeInOut
		}
		for _, name := range p.Names {
			t.Params = append(t.Params, types.Param{Name: name, Type: pt, Mode: mode})
		}
	}
	return t
}

// declareParams adds one symbol per parameter name to the current
// (already pushed) scope.
func (r *Resolver) declareParams(spec *ast.SubprogramSpec) {
	for _, p := range spec.Params {
		pt := r.resolveTypeMark(p.TypeMark)
		for _, name := range p.Names {
			r.declare(&symtab.Symbol{Name: name, Kind: symtab.KindObject, Type: pt, Pos: spec.Pos()})
		}
	}
}

func (r *Resolver) resolveSubprogramDecl(n *ast.SubprogramDecl) {
	if n.Generic != nil {
		r.store.Record(&generics.Template{Name: n.Spec.Name, Formals: n.Generic, Decl: n})
		return
	}
	t := r.subprogramType(n.Spec)
	r.declare(&symtab.Symbol{Name: n.Spec.Name, Kind: symtab.KindSubprogram, Type: t, Pos: n.Pos()})
}

// resolveSubprogramBody resolves a full body, or — when it carries its
// own generic formal part, or completes a generic declaration recorded
// earlier under the same name — records it as an uninstantiated template
// instead, replacing that bare declaration. A template's
// formal names (e.g. a formal type `Item`) are never declared anywhere,
// so resolving it before instantiation would only produce spurious
// "undeclared identifier" diagnostics; resolution happens on the cloned
// instance instead, once actuals have replaced every formal reference.
func (r *Resolver) resolveSubprogramBody(n *ast.SubprogramBody) {
	if n.Generic == nil {
		if tmpl, ok := r.store.Lookup(n.Spec.Name); ok {
			if _, isDecl := tmpl.Decl.(*ast.SubprogramDecl); isDecl {
				n.Generic = tmpl.Formals
			}
		}
	}
	if n.Generic != nil {
		r.store.Record(&generics.Template{Name: n.Spec.Name, Formals: n.Generic, Decl: n})
		return
	}
	r.resolveSubprogramBodyCore(n)
}

func (r *Resolver) resolveSubprogramBodyCore(n *ast.SubprogramBody) {
	t := r.subprogramType(n.Spec)
	if existing := r.scope.LookupLocal(n.Spec.Name); existing == nil || existing.Kind != symtab.KindSubprogram {
		r.declare(&symtab.Symbol{Name: n.Spec.Name, Kind: symtab.KindSubprogram, Type: t, Pos: n.Pos()})
	}

	outerReturn := r.currentReturn
	r.currentReturn = t.Result
	r.pushScope(n.Spec.Name)
	r.declareParams(n.Spec)
	for _, decl := range n.Declarations {
		r.resolveDeclaration(decl)
	}
	r.resolveStmts(n.Statements)
	r.resolveHandlers(n.Handlers)
	r.popScope()
	r.currentReturn = outerReturn
}

func (r *Resolver) resolvePackageSpec(n *ast.PackageSpec) {
	if n.Generic != nil {
		r.store.Record(&generics.Template{Name: n.Name, Formals: n.Generic, Decl: n})
		return
	}
	sym := &symtab.Symbol{Name: n.Name, Kind: symtab.KindPackage, Pos: n.Pos()}
	r.declare(sym)
	scope := r.pushScope(n.Name)
	for _, decl := range n.Declarations {
		r.resolveDeclaration(decl)
	}
	for _, decl := range n.Private {
		r.resolveDeclaration(decl)
	}
	r.popScope()
	sym.Members = scope
}

func (r *Resolver) resolvePackageBody(n *ast.PackageBody) {
	r.pushScope(n.Name)
	for _, decl := range n.Declarations {
		r.resolveDeclaration(decl)
	}
	r.resolveStmts(n.Statements)
	r.resolveHandlers(n.Handlers)
	r.popScope()
}

// resolveGenericInstantiation looks up the named template, binds its
// formals to the instantiation's actuals, deep-clones the template with
// the substitution applied, and resolves the fresh clone exactly as if
// it had been written out by hand under the instance's own name.
func (r *Resolver) resolveGenericInstantiation(n *ast.GenericInstantiation) {
	tmpl, ok := r.store.Lookup(n.Generic)
	if !ok {
		r.errorf(n.Pos(), "undeclared generic unit %q", n.Generic)
		return
	}

	formalNames := flattenFormalNames(tmpl.Formals)
	actuals := generics.NewActuals()
	for i, a := range n.Actuals {
		if i >= len(formalNames) {
			r.errorf(a.Pos(), "too many generic actual parameters")
			break
		}
		actuals.Bind(formalNames[i], a)
	}
	for _, na := range n.NamedArgs {
		actuals.Bind(na.Name, na.Expr)
	}

	clone, err := generics.Instantiate(tmpl, n.Name, actuals)
	if err != nil {
		r.errorf(n.Pos(), "%s", err)
		return
	}

	if r.instances == nil {
		r.instances = make(map[*ast.GenericInstantiation]ast.Declaration)
	}
	r.instances[n] = clone
	r.resolveDeclaration(clone)
}

// suppressNames maps a `pragma Suppress` check identifier (LRM 11.7's
// fixed set, plus All_Checks) to the bit it disables.
var suppressNames = map[string]types.Suppress{
	"range_check":        types.SuppressRange,
	"index_check":        types.SuppressIndex,
	"overflow_check":     types.SuppressOverflow,
	"division_check":     types.SuppressDivideByZero,
	"access_check":       types.SuppressAccessCheck,
	"discriminant_check": types.SuppressDiscriminant,
	"length_check":       types.SuppressLength,
	"all_checks": types.SuppressRange | types.SuppressIndex | types.SuppressOverflow |
		types.SuppressDivideByZero | types.SuppressAccessCheck | types.SuppressDiscriminant | types.SuppressLength,
}

// resolvePragma interprets `pragma Suppress(Check_Name[, Entity_Name]);`,
// the one pragma this core gives runtime-check-suppressing effect to.
// With no entity named, the named check is disabled for the remainder
// of this compilation unit (r.suppressed); naming a type instead
// disables it only for that type, recorded on the type's own
// Suppressed bitset. Every other pragma is accepted and ignored.
func (r *Resolver) resolvePragma(n *ast.Pragma) {
	if !strings.EqualFold(n.Name, "Suppress") || len(n.Args) == 0 {
		return
	}
	ident, ok := n.Args[0].(*ast.Identifier)
	if !ok {
		return
	}
	bit, ok := suppressNames[strings.ToLower(ident.Name)]
	if !ok {
		r.errorf(n.Pos(), "unknown check %q named in pragma Suppress", ident.Name)
		return
	}
	if len(n.Args) < 2 {
		r.suppressed |= bit
		return
	}
	target, ok := n.Args[1].(*ast.Identifier)
	if !ok {
		return
	}
	sym := r.scope.Lookup(target.Name)
	if sym == nil || sym.Type == nil {
		r.errorf(n.Pos(), "%q named in pragma Suppress is not a visible type", target.Name)
		return
	}
	sym.Type.Suppressed |= bit
}

// checkSuppressed reports whether bit is disabled either globally (by
// a pragma Suppress with no entity name, seen anywhere earlier in this
// unit) or specifically on t.
func (r *Resolver) checkSuppressed(bit types.Suppress, t *types.Type) bool {
	if r.suppressed.Has(bit) {
		return true
	}
	return t != nil && t.Suppressed.Has(bit)
}

// flattenFormalNames lists a generic formal part's parameter names in
// declaration order, the order positional actuals are matched against.
func flattenFormalNames(formals *ast.GenericFormalPart) []string {
	var names []string
	for _, f := range formals.Formals {
		switch f.Kind {
		case ast.FormalType:
			names = append(names, f.Name)
		case ast.FormalSubprogram:
			names = append(names, f.Spec.Name)
		default:
			names = append(names, f.Names...)
		}
	}
	return names
}
