package semantic

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/types"
)

// resolveTypeMark resolves a type name, given as a plain identifier, to
// its declared Type, reporting an error and returning nil if the name
// does not denote a type. Any other expression (a dotted name included)
// is reported as not a type mark.
func (r *Resolver) resolveTypeMark(e ast.Expression) *types.Type {
	ident, ok := e.(*ast.Identifier)
	if !ok {
		r.errorf(e.Pos(), "expected a type mark, found %s", e.String())
		return nil
	}
	sym := r.scope.Lookup(ident.Name)
	if sym == nil {
		r.errorf(ident.Pos(), "undeclared identifier %q", ident.Name)
		return nil
	}
	if sym.Kind != symtab.KindType && sym.Kind != symtab.KindSubtype {
		r.errorf(ident.Pos(), "%q is not a type", ident.Name)
		return nil
	}
	r.setType(ident, sym.Type)
	return sym.Type
}

// resolveTypeDef builds a canonical Type for the definition following
// `type Name is`, given the name being declared (used for self-reference
// in access types and for the descriptor's own Name field).
func (r *Resolver) resolveTypeDef(name string, def ast.TypeDef) *types.Type {
	switch d := def.(type) {
	case *ast.DerivedTypeDef:
		parent := r.resolveTypeMark(d.Parent)
		if parent == nil {
			return nil
		}
		t := &types.Type{Kind: types.Derived, Name: name, Base: parent, Constrained: parent.Constrained,
			Low: parent.Low, High: parent.High, LowF: parent.LowF, HighF: parent.HighF, Digits: parent.Digits}
		if d.Range != nil {
			r.applyRangeConstraint(t, d.Range)
		}
		return t
	case *ast.RangeTypeDef:
		t := &types.Type{Kind: types.Integer, Name: name, Constrained: true}
		r.applyRangeConstraint(t, d.Range)
		return t
	case *ast.ModularTypeDef:
		modulus, ok := r.staticInt(d.Modulus)
		if !ok {
			modulus = 1 << 32
		}
		return &types.Type{Kind: types.UnsignedInteger, Name: name, Constrained: true, Low: 0, High: modulus - 1}
	case *ast.FloatTypeDef:
		digits, _ := r.staticInt(d.Precision)
		t := &types.Type{Kind: types.Float, Name: name, Constrained: true, Digits: int(digits), LowF: -1e38, HighF: 1e38}
		if d.Range != nil {
			low, _ := r.staticFloat(d.Range.Low)
			high, _ := r.staticFloat(d.Range.High)
			t.LowF, t.HighF = low, high
		}
		return t
	case *ast.FixedTypeDef:
		delta, _ := r.staticFloat(d.Delta)
		t := &types.Type{Kind: types.FixedPoint, Name: name, Constrained: true, Delta: delta}
		if d.Range != nil {
			low, _ := r.staticFloat(d.Range.Low)
			high, _ := r.staticFloat(d.Range.High)
			t.LowF, t.HighF = low, high
		}
		return t
	case *ast.EnumTypeDef:
		lits := make([]types.EnumLiteral, len(d.Literals))
		for i, l := range d.Literals {
			lits[i] = types.EnumLiteral{Name: l, Pos: i}
		}
		return &types.Type{Kind: types.Enumeration, Name: name, Constrained: true, Low: 0,
			High: int64(len(lits) - 1), Literals: lits}
	case *ast.ArrayTypeDef:
		component := r.resolveTypeMark(d.Component)
		t := &types.Type{Kind: types.Array, Name: name, Element: component}
		if d.Unconstrained {
			t.Unconstrained = true
			for _, idx := range d.IndexTypes {
				t.IndexTypes = append(t.IndexTypes, r.resolveTypeMark(idx))
			}
			return t
		}
		for _, rExpr := range d.IndexRanges {
			switch idx := rExpr.(type) {
			case *ast.RangeExpr:
				low, _ := r.staticInt(idx.Low)
				high, _ := r.staticInt(idx.High)
				t.IndexTypes = append(t.IndexTypes, &types.Type{
					Kind: types.Integer, Constrained: true, Low: low, High: high,
				})
			default:
				// A bare subtype mark used as an index constraint: the
				// array is indexed over that subtype's own range.
				if it := r.resolveTypeMark(rExpr); it != nil {
					t.IndexTypes = append(t.IndexTypes, it)
				}
			}
		}
		return t
	case *ast.RecordTypeDef:
		t := &types.Type{Kind: types.Record, Name: name}
		for _, comp := range d.Components {
			ft := r.resolveSubtypeIndication(comp.SubtypeInd)
			for _, n := range comp.Names {
				t.Fields = append(t.Fields, types.Field{Name: n, Type: ft})
			}
		}
		return t
	case *ast.AccessTypeDef:
		designated := r.resolveTypeMark(d.Designated)
		return &types.Type{Kind: types.Access, Name: name, Designated: designated}
	default:
		r.errorf(def.Pos(), "unsupported type definition")
		return nil
	}
}

// applyRangeConstraint evaluates a static range and records it on t,
// marking t as constrained.
func (r *Resolver) applyRangeConstraint(t *types.Type, rng *ast.RangeExpr) {
	low, lowOK := r.staticInt(rng.Low)
	high, highOK := r.staticInt(rng.High)
	if lowOK && highOK {
		t.Low, t.High = low, high
		t.Constrained = true
	}
}

// resolveSubtypeIndication resolves a type mark together with any
// attached range or index constraint into a (possibly anonymous,
// constrained) Type distinct from the type mark's own descriptor.
func (r *Resolver) resolveSubtypeIndication(si *ast.SubtypeIndication) *types.Type {
	base := r.resolveTypeMark(si.TypeMark)
	if base == nil {
		return nil
	}
	if si.Range == nil && len(si.IndexConstraints) == 0 {
		return base
	}
	t := &types.Type{Kind: base.Kind, Base: base, Element: base.Element, Digits: base.Digits}
	if si.Range != nil {
		t.Constrained = true
		low, _ := r.staticInt(si.Range.Low)
		high, _ := r.staticInt(si.Range.High)
		t.Low, t.High = low, high
	} else {
		t.Low, t.High, t.Constrained = base.Low, base.High, base.Constrained
	}
	if len(si.IndexConstraints) > 0 {
		t.Unconstrained = false
		for _, c := range si.IndexConstraints {
			if rExpr, ok := c.(*ast.RangeExpr); ok {
				low, _ := r.staticInt(rExpr.Low)
				high, _ := r.staticInt(rExpr.High)
				t.IndexTypes = append(t.IndexTypes, &types.Type{Kind: types.Integer, Constrained: true, Low: low, High: high})
			}
		}
	}
	return t
}
