package optimizer

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/semantic"
)

// elimRedundantChecks drops a CheckRange/CheckIndex/CheckLength node
// whose target's own resolved type is already a constrained subtype
// fully contained in the bounds the check itself verifies: the value
// was already range-checked once, at the point it acquired that
// narrower type, so a second comparison at this use site could never
// fail. Dropping the node never changes observable behavior — the
// emitter simply lowers the bare target in its place — it only spares
// the emitted module a runtime comparison that cannot trigger.
func elimRedundantChecks(res *semantic.Result) {
	fn := func(e ast.Expression) ast.Expression {
		chk, ok := e.(*ast.Check)
		if !ok {
			return e
		}
		if chk.Kind != ast.CheckRange && chk.Kind != ast.CheckIndex && chk.Kind != ast.CheckLength {
			return e
		}
		bounds := res.CheckTypes[chk]
		target := res.ExprTypes[chk.Target]
		if bounds == nil || !bounds.Constrained || target == nil || !target.Constrained {
			return e
		}
		if target.Low >= bounds.Low && target.High <= bounds.High {
			return chk.Target
		}
		return e
	}
	walkUnit(res.Unit, fn)
}
