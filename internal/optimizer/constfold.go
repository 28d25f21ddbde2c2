package optimizer

import "github.com/go-ada/adac/internal/ast"

// foldConstants rewrites every BinaryExpr/UnaryExpr whose operands are
// literal, after first folding their own operands, into the equivalent
// literal node. The arithmetic mirrors the resolver's own static
// evaluator (it folds the same operators the same way, since a
// constant that is foldable pre-resolution and one foldable here must
// agree), duplicated rather than shared because the resolver's
// evaluator is unexported and keyed off live symbol-table lookups this
// package, running after resolution, has no further need of — every
// name reference has already been resolved to a type, and any constant
// identifier has already been inlined by the resolver itself wherever
// LRM 3.2.2 requires it.
func foldConstants(unit *ast.CompilationUnit) {
	fn := func(e ast.Expression) ast.Expression {
		switch n := e.(type) {
		case *ast.BinaryExpr:
			if v, ok := foldBinaryLiteral(n); ok {
				return v
			}
		case *ast.UnaryExpr:
			if v, ok := foldUnaryLiteral(n); ok {
				return v
			}
		}
		return e
	}
	walkUnit(unit, fn)
}

func foldBinaryLiteral(n *ast.BinaryExpr) (ast.Expression, bool) {
	if li, ok := n.Left.(*ast.IntegerLiteral); ok {
		if ri, ok := n.Right.(*ast.IntegerLiteral); ok {
			if v, ok := foldIntOp(n.Op, li.Value, ri.Value); ok {
				return &ast.IntegerLiteral{Token: n.Token, Value: v}, true
			}
			return nil, false
		}
	}
	lf, lok := literalFloat(n.Left)
	rf, rok := literalFloat(n.Right)
	if lok && rok {
		if v, ok := foldFloatOp(n.Op, lf, rf); ok {
			return &ast.RealLiteral{Token: n.Token, Value: v}, true
		}
	}
	return nil, false
}

func literalFloat(e ast.Expression) (float64, bool) {
	switch n := e.(type) {
	case *ast.RealLiteral:
		return n.Value, true
	case *ast.IntegerLiteral:
		return float64(n.Value), true
	default:
		return 0, false
	}
}

func foldIntOp(op string, l, r int64) (int64, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case "mod":
		if r == 0 {
			return 0, false
		}
		m := l % r
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return m, true
	case "rem":
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case "**":
		return intPow(l, r), true
	default:
		return 0, false
	}
}

func intPow(l, r int64) int64 {
	if r < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < r; i++ {
		result *= l
	}
	return result
}

func foldFloatOp(op string, l, r float64) (float64, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	default:
		return 0, false
	}
}

func foldUnaryLiteral(n *ast.UnaryExpr) (ast.Expression, bool) {
	if li, ok := n.Right.(*ast.IntegerLiteral); ok {
		switch n.Op {
		case "-":
			return &ast.IntegerLiteral{Token: n.Token, Value: -li.Value}, true
		case "+":
			return &ast.IntegerLiteral{Token: n.Token, Value: li.Value}, true
		case "abs":
			v := li.Value
			if v < 0 {
				v = -v
			}
			return &ast.IntegerLiteral{Token: n.Token, Value: v}, true
		}
	}
	if lr, ok := n.Right.(*ast.RealLiteral); ok {
		switch n.Op {
		case "-":
			return &ast.RealLiteral{Token: n.Token, Value: -lr.Value}, true
		case "+":
			return &ast.RealLiteral{Token: n.Token, Value: lr.Value}, true
		case "abs":
			v := lr.Value
			if v < 0 {
				v = -v
			}
			return &ast.RealLiteral{Token: n.Token, Value: v}, true
		}
	}
	return nil, false
}
