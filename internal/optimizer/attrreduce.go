package optimizer

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/semantic"
)

// reduceAttributes folds a FIRST/LAST/LENGTH/SIZE reference whose
// prefix type the resolver already recorded as fully constrained into
// a literal, and a POS/VAL reference whose sole argument is itself a
// literal into that same literal — exact for every discrete type this
// core resolves, since none carries a representation clause that would
// make a type's ordinal position diverge from its value. This mirrors
// the fold codegen's own emitAttribute already performs at emission
// time for FIRST/LAST/LENGTH; running it here as well lets a later
// PassConstantFold see the literal and fold any expression built
// around it, which emission-time folding alone cannot.
func reduceAttributes(res *semantic.Result) {
	fn := func(e ast.Expression) ast.Expression {
		ref, ok := e.(*ast.AttributeRef)
		if !ok {
			return e
		}
		return foldAttribute(res, ref)
	}
	walkUnit(res.Unit, fn)
}

func foldAttribute(res *semantic.Result, ref *ast.AttributeRef) ast.Expression {
	switch ref.Name {
	case "first", "last", "length", "size":
		prefixType := res.ExprTypes[ref.Prefix]
		if prefixType == nil || !prefixType.Constrained {
			return ref
		}
		switch ref.Name {
		case "first":
			return &ast.IntegerLiteral{Token: ref.Token, Value: prefixType.Low}
		case "last":
			return &ast.IntegerLiteral{Token: ref.Token, Value: prefixType.High}
		case "length":
			return &ast.IntegerLiteral{Token: ref.Token, Value: prefixType.High - prefixType.Low + 1}
		default: // "size"
			// Every discrete type this core emits is carried in a fixed
			// 64-bit register regardless of its declared range, so a
			// constrained prefix's 'Size is always this one constant.
			return &ast.IntegerLiteral{Token: ref.Token, Value: 64}
		}
	case "pos", "val":
		if len(ref.Args) == 1 {
			if lit, ok := ref.Args[0].(*ast.IntegerLiteral); ok {
				return &ast.IntegerLiteral{Token: ref.Token, Value: lit.Value}
			}
		}
	}
	return ref
}
