package semantic

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/token"
)

// staticInt evaluates e as a static discrete expression, the way the
// bounds of a range constraint, a modulus, a digits specification, or an
// array index constraint must be. It reports ok=false (without raising
// a diagnostic itself — the caller decides whether that is fatal) when e
// is not something this core can fold at compile time.
func (r *Resolver) staticInt(e ast.Expression) (int64, bool) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return n.Value, true
	case *ast.CharLiteral:
		return int64(n.Value), true
	case *ast.Identifier:
		sym := r.scope.Lookup(n.Name)
		if sym == nil {
			return 0, false
		}
		if sym.Kind == symtab.KindEnumLiteral && sym.Type != nil {
			for _, lit := range sym.Type.Literals {
				if token.Fold(lit.Name) == token.Fold(sym.Name) {
					return int64(lit.Pos), true
				}
			}
		}
		if (sym.Kind == symtab.KindConstant || sym.Kind == symtab.KindNumber) && sym.ConstExpr != nil {
			return r.staticInt(sym.ConstExpr)
		}
		return 0, false
	case *ast.UnaryExpr:
		v, ok := r.staticInt(n.Right)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "abs":
			if v < 0 {
				return -v, true
			}
			return v, true
		}
		return 0, false
	case *ast.BinaryExpr:
		l, lok := r.staticInt(n.Left)
		rv, rok := r.staticInt(n.Right)
		if !lok || !rok {
			return 0, false
		}
		switch n.Op {
		case "+":
			return l + rv, true
		case "-":
			return l - rv, true
		case "*":
			return l * rv, true
		case "/":
			if rv == 0 {
				return 0, false
			}
			return l / rv, true
		case "mod":
			if rv == 0 {
				return 0, false
			}
			m := l % rv
			if m != 0 && (m < 0) != (rv < 0) {
				m += rv
			}
			return m, true
		case "rem":
			if rv == 0 {
				return 0, false
			}
			return l % rv, true
		case "**":
			return intPow(l, rv), true
		}
		return 0, false
	case *ast.AttributeRef:
		return r.staticIntAttribute(n)
	case *ast.QualifiedExpr:
		return r.staticInt(n.Qualified)
	default:
		return 0, false
	}
}

// staticIntAttribute folds the handful of discrete 'Attribute references
// that can appear in a constraint before their prefix type is frozen:
// T'First and T'Last of an already-resolved type mark.
func (r *Resolver) staticIntAttribute(a *ast.AttributeRef) (int64, bool) {
	t := r.resolveTypeMark(a.Prefix)
	if t == nil || !t.Constrained {
		return 0, false
	}
	switch token.Fold(a.Name) {
	case "first":
		return t.Low, true
	case "last":
		return t.High, true
	default:
		return 0, false
	}
}

// intPow computes l**rv for a non-negative exponent, the only kind
// allowed as a static discrete expression; a negative exponent is caught
// later by the general range-check machinery, not here.
func intPow(l, rv int64) int64 {
	if rv < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < rv; i++ {
		result *= l
	}
	return result
}

// staticFloat evaluates e as a static real expression, as required for a
// digits clause's range, a delta clause, or a fixed-point range bound.
func (r *Resolver) staticFloat(e ast.Expression) (float64, bool) {
	switch n := e.(type) {
	case *ast.RealLiteral:
		return n.Value, true
	case *ast.IntegerLiteral:
		return float64(n.Value), true
	case *ast.Identifier:
		sym := r.scope.Lookup(n.Name)
		if sym == nil || sym.ConstExpr == nil {
			return 0, false
		}
		if sym.Kind != symtab.KindConstant && sym.Kind != symtab.KindNumber {
			return 0, false
		}
		return r.staticFloat(sym.ConstExpr)
	case *ast.UnaryExpr:
		v, ok := r.staticFloat(n.Right)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "abs":
			if v < 0 {
				return -v, true
			}
			return v, true
		}
		return 0, false
	case *ast.BinaryExpr:
		l, lok := r.staticFloat(n.Left)
		rv, rok := r.staticFloat(n.Right)
		if !lok || !rok {
			return 0, false
		}
		switch n.Op {
		case "+":
			return l + rv, true
		case "-":
			return l - rv, true
		case "*":
			return l * rv, true
		case "/":
			if rv == 0 {
				return 0, false
			}
			return l / rv, true
		}
		return 0, false
	case *ast.QualifiedExpr:
		return r.staticFloat(n.Qualified)
	default:
		return 0, false
	}
}
