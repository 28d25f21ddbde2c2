package semantic

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/token"
	"github.com/go-ada/adac/internal/types"
)

// resolveExpr infers and records e's type, recursing into its operands
// and inserting runtime-check wrapper nodes wherever this expression
// shape itself demands one (division, dereference, indexing). Checks
// that depend on the surrounding context instead — an assignment target,
// an aggregate's target subtype — are inserted by the caller via
// checkAssignment, not here.
func (r *Resolver) resolveExpr(e ast.Expression) *types.Type {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.IntegerLiteral:
		return r.setType(e, types.UniversalIntegerType)
	case *ast.RealLiteral:
		return r.setType(e, types.UniversalFloatType)
	case *ast.CharLiteral:
		return r.setType(e, types.CharacterType)
	case *ast.StringLiteral:
		return r.setType(e, types.StringType)
	case *ast.NullLiteral:
		return r.setType(e, nil)
	case *ast.Identifier:
		sym := r.scope.Lookup(n.Name)
		if sym == nil {
			r.errorf(n.Pos(), "undeclared identifier %q", n.Name)
			return nil
		}
		return r.setType(e, sym.Type)
	case *ast.UnaryExpr:
		t := r.resolveExpr(n.Right)
		return r.setType(e, t)
	case *ast.BinaryExpr:
		return r.resolveBinaryExpr(n)
	case *ast.RangeExpr:
		lt := r.resolveExpr(n.Low)
		r.resolveExpr(n.High)
		return r.setType(e, lt)
	case *ast.AttributeRef:
		return r.resolveAttributeRef(n)
	case *ast.SelectedComponent:
		return r.resolveSelectedComponent(n)
	case *ast.IndexedComponent:
		return r.resolveIndexedComponent(n)
	case *ast.QualifiedExpr:
		t := r.resolveTypeMark(n.TypeMark)
		r.resolveExpr(n.Qualified)
		return r.setType(e, t)
	case *ast.Allocator:
		designated := r.resolveTypeMark(n.TypeMark)
		if n.Init != nil {
			r.resolveExpr(n.Init)
		}
		return r.setType(e, &types.Type{Kind: types.Access, Designated: designated})
	case *ast.OthersChoice:
		return nil
	case *ast.Aggregate:
		for i := range n.Elements {
			r.resolveExpr(n.Elements[i].Value)
		}
		return nil
	case *ast.Check:
		return r.resolveExpr(n.Target)
	default:
		r.errorf(e.Pos(), "internal: unsupported expression %T", e)
		return nil
	}
}

var relationalOps = map[string]bool{
	"=": true, "/=": true, "<": true, "<=": true, ">": true, ">=": true,
	"and": true, "or": true, "xor": true, "and then": true, "or else": true,
	"in": true, "not in": true,
}

func (r *Resolver) resolveBinaryExpr(n *ast.BinaryExpr) *types.Type {
	lt := r.resolveExpr(n.Left)

	if n.Op == "/" || n.Op == "mod" || n.Op == "rem" {
		divisorType := r.resolveExpr(n.Right)
		if !r.checkSuppressed(types.SuppressDivideByZero, divisorType) {
			wrap := &ast.Check{Kind: ast.CheckDivideByZero, Target: n.Right}
			r.setType(wrap, divisorType)
			n.Right = wrap
		}
	}
	rt := r.resolveExpr(n.Right)

	if relationalOps[n.Op] {
		return r.setType(n, types.BooleanType)
	}
	return r.setType(n, combineNumeric(lt, rt))
}

// combineNumeric picks the non-universal operand's type as the result of
// a binary arithmetic operation, so a mixed universal/specific-type
// expression resolves to the specific type (LRM 3.2.2, 4.5.5).
func combineNumeric(a, b *types.Type) *types.Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Kind == types.UniversalInteger || a.Kind == types.UniversalFloat {
		return b
	}
	return a
}

func (r *Resolver) resolveAttributeRef(n *ast.AttributeRef) *types.Type {
	var prefixType *types.Type
	if ident, ok := n.Prefix.(*ast.Identifier); ok {
		if sym := r.scope.Lookup(ident.Name); sym != nil && (sym.Kind == symtab.KindType || sym.Kind == symtab.KindSubtype) {
			prefixType = sym.Type
		}
	}
	if prefixType == nil {
		prefixType = r.resolveExpr(n.Prefix)
	}
	for _, a := range n.Args {
		r.resolveExpr(a)
	}

	switch n.Name {
	case "first", "last", "val", "succ", "pred":
		return r.setType(n, prefixType)
	case "length", "size", "pos", "count":
		return r.setType(n, types.IntegerType)
	case "image":
		return r.setType(n, types.StringType)
	case "value":
		return r.setType(n, prefixType)
	case "digits":
		return r.setType(n, types.IntegerType)
	case "delta", "small", "large", "epsilon":
		return r.setType(n, types.FloatType)
	case "callable", "terminated", "constrained",
		"machine_overflows", "machine_rounds":
		return r.setType(n, types.BooleanType)
	case "machine_radix", "machine_emax", "machine_emin", "address":
		return r.setType(n, types.IntegerType)
	default:
		r.errorf(n.Pos(), "unknown attribute %q", n.Name)
		return nil
	}
}

func (r *Resolver) resolveSelectedComponent(n *ast.SelectedComponent) *types.Type {
	if n.Name == "all" {
		prefixType := r.resolveExpr(n.Prefix)
		if prefixType == nil || prefixType.Kind != types.Access {
			r.errorf(n.Pos(), "prefix of 'all' is not an access value")
			return nil
		}
		n.Prefix = r.wrapNotNull(n.Prefix, prefixType)
		return r.setType(n, prefixType.Designated)
	}

	if ident, ok := n.Prefix.(*ast.Identifier); ok {
		if sym := r.scope.Lookup(ident.Name); sym != nil && sym.Kind == symtab.KindPackage {
			r.setType(ident, nil)
			if sym.Members != nil {
				if m := sym.Members.LookupLocal(n.Name); m != nil {
					return r.setType(n, m.Type)
				}
			}
			r.errorf(n.Pos(), "no declaration %q visible in package %q", n.Name, ident.Name)
			return nil
		}
	}

	prefixType := r.resolveExpr(n.Prefix)
	record := prefixType
	if record != nil && record.Kind == types.Access {
		n.Prefix = r.wrapNotNull(n.Prefix, record)
		record = record.Designated
	}
	if record == nil || record.Kind != types.Record {
		r.errorf(n.Pos(), "%q is not a record component", n.Name)
		return nil
	}
	for _, f := range record.Fields {
		if token.Fold(f.Name) == token.Fold(n.Name) {
			return r.setType(n, f.Type)
		}
	}
	r.errorf(n.Pos(), "no component %q in record type %s", n.Name, record)
	return nil
}

func (r *Resolver) resolveIndexedComponent(n *ast.IndexedComponent) *types.Type {
	if ident, ok := n.Prefix.(*ast.Identifier); ok {
		sym := r.scope.Lookup(ident.Name)
		if sym != nil && sym.Kind == symtab.KindSubprogram {
			argTypes := make([]*types.Type, len(n.Args))
			for i := range n.Args {
				argTypes[i] = r.resolveExpr(n.Args[i])
			}
			for i := range n.Named {
				r.resolveExpr(n.Named[i].Expr)
			}
			sym = r.resolveOverload(ident.Pos(), sym, argTypes)
			r.setType(ident, sym.Type)
			if sym.Type != nil {
				return r.setType(n, sym.Type.Result)
			}
			return nil
		}
	}

	prefixType := r.resolveExpr(n.Prefix)
	array := prefixType
	if array != nil && array.Kind == types.Access {
		n.Prefix = r.wrapNotNull(n.Prefix, array)
		array = array.Designated
	}
	if array == nil || array.Kind != types.Array {
		r.errorf(n.Pos(), "cannot index a value of type %s", prefixType)
		return nil
	}
	for i := range n.Args {
		r.resolveExpr(n.Args[i])
		var idxType *types.Type
		if i < len(array.IndexTypes) {
			idxType = array.IndexTypes[i]
		}
		if r.checkSuppressed(types.SuppressIndex, idxType) || r.checkSuppressed(types.SuppressIndex, array) {
			continue
		}
		wrap := &ast.Check{Kind: ast.CheckIndex, Target: n.Args[i]}
		if idxType != nil {
			r.recordCheckType(wrap, idxType)
		}
		n.Args[i] = wrap
	}
	return r.setType(n, array.Element)
}

// wrapNotNull inserts a CheckNotNull marker around e, the access value
// being dereferenced implicitly by a `.field`, `(index)`, or `.all` on
// it, unless accessType's Access_Check has been suppressed.
func (r *Resolver) wrapNotNull(e ast.Expression, accessType *types.Type) ast.Expression {
	if r.checkSuppressed(types.SuppressAccessCheck, accessType) {
		return e
	}
	wrap := &ast.Check{Kind: ast.CheckNotNull, Target: e}
	r.setType(wrap, r.typeOf(e))
	return wrap
}

func (r *Resolver) recordCheckType(c *ast.Check, t *types.Type) {
	if r.checkTypes == nil {
		r.checkTypes = make(map[*ast.Check]*types.Type)
	}
	r.checkTypes[c] = t
	r.setType(c, t)
}

// resolveOverload narrows sym's overload chain to the unique candidate
// whose formal profile matches argTypes under type compatibility,
// reporting a hard ambiguity error when more than one candidate fits.
// When no candidate's parameter types are all compatible, it falls
// back to matching by arity alone, so a genuine type mismatch is
// reported against the actual argument rather than here.
func (r *Resolver) resolveOverload(pos token.Position, sym *symtab.Symbol, argTypes []*types.Type) *symtab.Symbol {
	var matches []*symtab.Symbol
	for _, cand := range symtab.Overloads(sym) {
		if overloadCandidateMatches(cand.Type, argTypes) {
			matches = append(matches, cand)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0]
	case 0:
		for _, cand := range symtab.Overloads(sym) {
			if cand.Type != nil && len(cand.Type.Params) == len(argTypes) {
				return cand
			}
		}
		return sym
	default:
		r.errorf(pos, "ambiguous call to %q: %d overloads match these argument types", sym.Name, len(matches))
		return matches[0]
	}
}

// overloadCandidateMatches reports whether cand's formal profile has
// the same arity as argTypes and every actual's type is compatible
// with its corresponding formal's. An unresolved actual (a prior error
// already reported elsewhere) never by itself rules a candidate out.
func overloadCandidateMatches(cand *types.Type, argTypes []*types.Type) bool {
	if cand == nil || len(cand.Params) != len(argTypes) {
		return false
	}
	for i, p := range cand.Params {
		if argTypes[i] == nil {
			continue
		}
		if p.Type == nil || !p.Type.Covers(argTypes[i]) {
			return false
		}
	}
	return true
}

// checkAssignment resolves the expression at *slot in the context of an
// expected type, inserting a range-check marker when target is a
// constrained scalar subtype, or validating an aggregate's size against
// target's index constraint when target is a constrained array.
func (r *Resolver) checkAssignment(slot *ast.Expression, target *types.Type) {
	if target != nil && target.Kind == types.Array {
		if agg, ok := (*slot).(*ast.Aggregate); ok {
			r.resolveAggregateAgainst(agg, target)
			return
		}
	}

	vt := r.resolveExpr(*slot)
	if target == nil || vt == nil {
		return
	}
	if lit, ok := (*slot).(*ast.IntegerLiteral); ok {
		if root := target.Root().Kind; root == types.Float || root == types.FixedPoint {
			r.errorf(lit.Pos(), "real literal requires decimal point")
			return
		}
	}
	if !target.Covers(vt) {
		r.errorf((*slot).Pos(), "type mismatch: expected %s, found %s", target, vt)
		return
	}
	if target.Constrained && needsRangeCheck(target) && !r.checkSuppressed(types.SuppressRange, target) {
		wrap := &ast.Check{Kind: ast.CheckRange, Target: *slot}
		r.recordCheckType(wrap, target)
		*slot = wrap
	}
}

func needsRangeCheck(t *types.Type) bool {
	if t.IsDiscrete() {
		return true
	}
	switch t.Root().Kind {
	case types.Float, types.FixedPoint:
		return true
	default:
		return false
	}
}

// resolveAggregateAgainst resolves an array aggregate's element values
// and checks a fully positional aggregate's element count against
// target's index constraint; a size mismatch is a compile-time error,
// never a runtime one (LRM 4.3.2).
func (r *Resolver) resolveAggregateAgainst(agg *ast.Aggregate, target *types.Type) {
	hasOthers := false
	for _, el := range agg.Elements {
		r.resolveExpr(el.Value)
		for _, c := range el.Choices {
			if _, ok := c.(*ast.OthersChoice); ok {
				hasOthers = true
			}
		}
	}
	if !hasOthers && !target.Unconstrained && len(target.IndexTypes) > 0 {
		idx := target.IndexTypes[0]
		if idx.Constrained {
			expected := idx.High - idx.Low + 1
			if int64(len(agg.Elements)) != expected {
				r.errorf(agg.Pos(), "aggregate size %d does not match expected size %d for index range %d .. %d",
					len(agg.Elements), expected, idx.Low, idx.High)
			}
		}
	}
	r.setType(agg, target)
}
