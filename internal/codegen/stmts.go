package codegen

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/types"
)

// loopLabels names the blocks `exit`/`exit when` target for one
// enclosing loop, pushed when the loop's body begins and popped once
// it is fully emitted.
type loopLabels struct {
	label string // the loop's own label, "" if unlabeled
	end   string
}

func (e *Emitter) emitStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		e.emitStatement(s)
	}
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.AssignStmt:
		e.emitAssign(n)
	case *ast.CallStmt:
		e.emitExpr(n.Call)
	case *ast.NullStmt:
		// No-op by definition.
	case *ast.Block:
		e.emitBlock(n)
	case *ast.IfStmt:
		e.emitIf(n)
	case *ast.CaseStmt:
		e.emitCaseStmt(n)
	case *ast.LoopStmt:
		e.emitLoop(n)
	case *ast.ExitStmt:
		e.emitExit(n)
	case *ast.ReturnStmt:
		e.emitReturn(n)
	case *ast.RaiseStmt:
		e.emitRaise(n)
	case *ast.Pragma:
		// Advisory.
	default:
		e.errorf(stmt.Pos(), "unsupported statement %T reached code generation", stmt)
	}
}

// emitAssign lowers Target := Value. Value may itself be wrapped in an
// ast.Check the resolver inserted (a range check against the target's
// constrained subtype); emitExpr lowers that the same way any other
// check is lowered, so the store always sees an already-validated
// value.
func (e *Emitter) emitAssign(n *ast.AssignStmt) {
	v := e.emitExpr(n.Value)
	target := n.Target
	if chk, ok := target.(*ast.Check); ok {
		target = chk.Target
	}
	ptr := e.emitLValue(target)
	llt := e.typeOfLValue(target)
	v = e.cast(v, llvmType(llt), valueKind(llt))
	e.emitf("store %s %s, ptr %s", v.Type, v.Text, ptr)
}

// emitLValue evaluates target to the address a store should write
// through, rather than to the value currently held there.
func (e *Emitter) emitLValue(target ast.Expression) string {
	switch n := target.(type) {
	case *ast.Identifier:
		b := e.resolveName(n.Name)
		if b == nil {
			e.errorf(n.Pos(), "unresolved assignment target %q reached code generation", n.Name)
			return "null"
		}
		if e.crossesFrame(b) {
			e.errorf(n.Pos(), "assignment to %q in a lexically enclosing body is not supported by this code generator (static-link chain walk not implemented)", n.Name)
			return "null"
		}
		return b.ssa
	case *ast.SelectedComponent:
		return e.emitFieldAddress(n)
	case *ast.IndexedComponent:
		return e.emitIndexAddress(n)
	default:
		e.errorf(target.Pos(), "unsupported assignment target %T reached code generation", target)
		return "null"
	}
}

func (e *Emitter) typeOfLValue(target ast.Expression) *types.Type {
	return e.typeOf(target)
}

func (e *Emitter) emitFieldAddress(n *ast.SelectedComponent) string {
	if n.Name == "all" {
		v := e.emitExpr(n.Prefix)
		return v.Text
	}
	prefixType := e.typeOf(n.Prefix)
	recType := prefixType
	if recType != nil && recType.Kind == types.Access {
		recType = recType.Designated
	}
	base := e.emitExpr(n.Prefix)
	idx, _ := fieldIndex(recType, n.Name)
	gep := e.newTemp()
	e.emitf("%s = getelementptr %s, ptr %s, i32 0, i32 %d", gep, llvmRecordType(recType), base.Text, idx)
	return gep
}

func (e *Emitter) emitIndexAddress(n *ast.IndexedComponent) string {
	arrType := e.typeOf(n.Prefix)
	base := e.emitExpr(n.Prefix)
	idxVal := e.emitExpr(n.Args[0])
	idxVal = e.indexOffset(idxVal, arrType)
	elemType := types.IntegerType
	if arrType != nil {
		elemType = arrType.Element
	}
	gep := e.newTemp()
	e.emitf("%s = getelementptr %s, ptr %s, i64 %s", gep, llvmType(elemType), base.Text, idxVal.Text)
	return gep
}

func (e *Emitter) emitBlock(n *ast.Block) {
	e.beginScope()
	for _, decl := range n.Declarations {
		e.emitDeclaration(decl)
	}
	e.emitProtected(n.Statements, n.Handlers)
	e.endScope()
}

// emitProtected lowers a statement sequence guarded by an exception
// handler part via the setjmp/longjmp bridge: push a handler frame,
// mark it with __ada_setjmp, run the body, and pop the frame on a
// normal fall-through. A nonzero return from setjmp means __ada_raise
// unwound back here; this core cannot yet recover which exception was
// raised (the fixed runtime surface exposes no query for it), so
// handler selection is not by exception identity: the `others` arm
// runs if present, otherwise the first arm, a documented simplification
// of full handler dispatch.
func (e *Emitter) emitProtected(stmts []ast.Statement, handlers []ast.ExceptionHandler) {
	if len(handlers) == 0 {
		e.emitStatements(stmts)
		return
	}
	envSlot := e.newTemp()
	e.emitf("%s = alloca [200 x i8]", envSlot)
	e.emitf("call void @__ada_push_handler(ptr %s)", envSlot)
	setjmpRes := e.newTemp()
	e.emitf("%s = call i64 @__ada_setjmp(ptr %s)", setjmpRes, envSlot)
	isZero := e.newTemp()
	e.emitf("%s = icmp eq i64 %s, 0", isZero, setjmpRes)
	tryL := e.newLabel("tryBody")
	handleL := e.newLabel("tryHandle")
	doneL := e.newLabel("tryDone")
	e.emitf("br i1 %s, label %%%s, label %%%s", isZero, tryL, handleL)

	e.emitRaw("%s:", tryL)
	e.emitStatements(stmts)
	e.emitf("call void @__ada_pop_handler()")
	e.emitf("br label %%%s", doneL)

	e.emitRaw("%s:", handleL)
	chosen := handlers[0]
	for _, h := range handlers {
		if h.Others {
			chosen = h
			break
		}
	}
	e.emitStatements(chosen.Statements)
	e.emitf("br label %%%s", doneL)

	e.emitRaw("%s:", doneL)
}

func (e *Emitter) emitIf(n *ast.IfStmt) {
	endL := e.newLabel("ifEnd")
	e.emitIfArm(n.Cond, n.Then, n.ElsifArms, n.Else, endL)
	e.emitRaw("%s:", endL)
}

// emitIfArm recursively lowers the if/elsif chain so every arm but the
// last has its own "else" block to fall into.
func (e *Emitter) emitIfArm(cond ast.Expression, then []ast.Statement, elsifs []ast.ElsifArm, els []ast.Statement, endL string) {
	c := e.emitExpr(cond)
	thenL := e.newLabel("ifThen")
	elseL := e.newLabel("ifElse")
	e.emitf("br i1 %s, label %%%s, label %%%s", c.Text, thenL, elseL)
	e.emitRaw("%s:", thenL)
	e.emitStatements(then)
	e.emitf("br label %%%s", endL)
	e.emitRaw("%s:", elseL)
	if len(elsifs) > 0 {
		e.emitIfArm(elsifs[0].Cond, elsifs[0].Then, elsifs[1:], els, endL)
		return
	}
	e.emitStatements(els)
	e.emitf("br label %%%s", endL)
}

func (e *Emitter) emitCaseStmt(n *ast.CaseStmt) {
	sel := e.emitExpr(n.Selector)
	endL := e.newLabel("caseEnd")
	othersL := e.newLabel("caseOthers")
	type arm struct {
		label string
		body  []ast.Statement
	}
	var arms []arm
	e.emitf("; case dispatch begins") // structural marker, no runtime effect
	var lastCond string
	for _, alt := range n.Alts {
		armL := e.newLabel("caseArm")
		arms = append(arms, arm{armL, alt.Body})
		for _, choice := range alt.Choices {
			cond := e.emitCaseChoice(sel, choice)
			if lastCond == "" {
				lastCond = cond
			}
			nextL := e.newLabel("caseTest")
			e.emitf("br i1 %s, label %%%s, label %%%s", cond, armL, nextL)
			e.emitRaw("%s:", nextL)
		}
	}
	e.emitf("br label %%%s", othersL)
	for _, a := range arms {
		e.emitRaw("%s:", a.label)
		e.emitStatements(a.body)
		e.emitf("br label %%%s", endL)
	}
	e.emitRaw("%s:", othersL)
	e.emitStatements(n.OthersAlt)
	e.emitf("br label %%%s", endL)
	e.emitRaw("%s:", endL)
}

func (e *Emitter) emitCaseChoice(sel Value, choice ast.Expression) string {
	if rng, ok := choice.(*ast.RangeExpr); ok {
		low := e.emitExpr(rng.Low)
		high := e.emitExpr(rng.High)
		lo := e.newTemp()
		e.emitf("%s = icmp sle %s %s, %s", lo, sel.Type, low.Text, sel.Text)
		hi := e.newTemp()
		e.emitf("%s = icmp sle %s %s, %s", hi, sel.Type, sel.Text, high.Text)
		t := e.newTemp()
		e.emitf("%s = and i1 %s, %s", t, lo, hi)
		return t
	}
	v := e.emitExpr(choice)
	t := e.newTemp()
	e.emitf("%s = icmp eq %s %s, %s", t, sel.Type, sel.Text, v.Text)
	return t
}

func (e *Emitter) emitLoop(n *ast.LoopStmt) {
	switch n.Kind {
	case ast.LoopWhile:
		e.emitWhileLoop(n)
	case ast.LoopFor:
		e.emitForLoop(n)
	default:
		e.emitBasicLoop(n)
	}
}

func (e *Emitter) emitBasicLoop(n *ast.LoopStmt) {
	bodyL := e.newLabel("loopBody")
	endL := e.newLabel("loopEnd")
	e.loops = append(e.loops, loopLabels{label: n.Label, end: endL})
	e.emitf("br label %%%s", bodyL)
	e.emitRaw("%s:", bodyL)
	e.emitStatements(n.Body)
	e.emitf("br label %%%s", bodyL)
	e.emitRaw("%s:", endL)
	e.loops = e.loops[:len(e.loops)-1]
}

func (e *Emitter) emitWhileLoop(n *ast.LoopStmt) {
	condL := e.newLabel("whileCond")
	bodyL := e.newLabel("whileBody")
	endL := e.newLabel("whileEnd")
	e.loops = append(e.loops, loopLabels{label: n.Label, end: endL})
	e.emitf("br label %%%s", condL)
	e.emitRaw("%s:", condL)
	c := e.emitExpr(n.Cond)
	e.emitf("br i1 %s, label %%%s, label %%%s", c.Text, bodyL, endL)
	e.emitRaw("%s:", bodyL)
	e.emitStatements(n.Body)
	e.emitf("br label %%%s", condL)
	e.emitRaw("%s:", endL)
	e.loops = e.loops[:len(e.loops)-1]
}

// emitForLoop materializes low/high bounds and an induction variable,
// looping while it is within range and stepping by +-1 per the loop's
// direction, the way a for-loop over a discrete range is specified to
// lower.
func (e *Emitter) emitForLoop(n *ast.LoopStmt) {
	var lowV, highV Value
	if n.Range != nil {
		lowV = e.emitExpr(n.Range.Low)
		highV = e.emitExpr(n.Range.High)
	}
	ivSlot := e.newTemp()
	e.emitf("%s = alloca i64", ivSlot)
	start := lowV.Text
	if n.Reverse {
		start = highV.Text
	}
	e.emitf("store i64 %s, ptr %s", start, ivSlot)

	e.beginScope()
	e.declareLocal(n.LoopVar, ivSlot, types.IntegerType)

	condL := e.newLabel("forCond")
	bodyL := e.newLabel("forBody")
	stepL := e.newLabel("forStep")
	endL := e.newLabel("forEnd")
	e.loops = append(e.loops, loopLabels{label: n.Label, end: endL})

	e.emitf("br label %%%s", condL)
	e.emitRaw("%s:", condL)
	cur := e.newTemp()
	e.emitf("%s = load i64, ptr %s", cur, ivSlot)
	inRange := e.newTemp()
	e.emitf("%s = and i1 %s, %s",
		inRange,
		e.cmpTemp("sle", lowV.Text, cur),
		e.cmpTemp("sle", cur, highV.Text))
	e.emitf("br i1 %s, label %%%s, label %%%s", inRange, bodyL, endL)

	e.emitRaw("%s:", bodyL)
	e.emitStatements(n.Body)
	e.emitf("br label %%%s", stepL)

	e.emitRaw("%s:", stepL)
	cur2 := e.newTemp()
	e.emitf("%s = load i64, ptr %s", cur2, ivSlot)
	next := e.newTemp()
	step := "1"
	if n.Reverse {
		step = "-1"
	}
	e.emitf("%s = add nsw i64 %s, %s", next, cur2, step)
	e.emitf("store i64 %s, ptr %s", next, ivSlot)
	e.emitf("br label %%%s", condL)

	e.emitRaw("%s:", endL)
	e.loops = e.loops[:len(e.loops)-1]
	e.endScope()
}

// cmpTemp is a small helper for building an icmp whose result is used
// immediately inline rather than stored to a named local first.
func (e *Emitter) cmpTemp(cc, lhs, rhs string) string {
	t := e.newTemp()
	e.emitf("%s = icmp %s i64 %s, %s", t, cc, lhs, rhs)
	return t
}

func (e *Emitter) emitExit(n *ast.ExitStmt) {
	target := e.findLoop(n.Label)
	if target == "" {
		e.errorf(n.Pos(), "exit outside of any enclosing loop reached code generation")
		return
	}
	if n.Cond == nil {
		e.emitf("br label %%%s", target)
		return
	}
	c := e.emitExpr(n.Cond)
	contL := e.newLabel("exitCont")
	e.emitf("br i1 %s, label %%%s, label %%%s", c.Text, target, contL)
	e.emitRaw("%s:", contL)
}

func (e *Emitter) findLoop(label string) string {
	for i := len(e.loops) - 1; i >= 0; i-- {
		if label == "" || e.loops[i].label == label {
			return e.loops[i].end
		}
	}
	return ""
}

func (e *Emitter) emitReturn(n *ast.ReturnStmt) {
	if n.Value == nil {
		e.emitf("ret void")
		return
	}
	v := e.emitExpr(n.Value)
	if e.currentReturn != nil && e.currentReturn.Unconstrained {
		v = e.emitSecondaryStackReturn(n.Value, v)
		e.emitf("ret ptr %s", v.Text)
		return
	}
	llt := llvmType(e.currentReturn)
	v = e.cast(v, llt, valueKind(e.currentReturn))
	e.emitf("ret %s %s", v.Type, v.Text)
}

// emitSecondaryStackReturn copies an unconstrained array/string result
// into a buffer allocated on the secondary stack rather than handing
// back a pointer into this frame's own locals (an aggregate or local
// array object's alloca would otherwise dangle the instant this
// function returns). The caller is responsible for bracketing the call
// with a mark/release pair; see emitCall.
func (e *Emitter) emitSecondaryStackReturn(value ast.Expression, v Value) Value {
	var size int64
	if vt := e.typeOf(value); vt != nil && vt.Kind == types.Array {
		size = arraySize(vt) * llvmSizeOf(vt.Element)
	}
	buf := e.newTemp()
	e.emitf("%s = call ptr @__ada_ss_allocate(i64 %d)", buf, size)
	if size > 0 {
		e.emitf("call void @llvm.memcpy.p0.p0.i64(ptr %s, ptr %s, i64 %d, i1 false)", buf, v.Text, size)
	}
	return reg(KFatPointer, "ptr", buf)
}

// emitRaise lowers `raise X;` to a call into the runtime followed by
// unreachable; re-raise (`raise;` with no name) is not distinguished
// from raising CONSTRAINT_ERROR, a documented gap in handler support.
func (e *Emitter) emitRaise(n *ast.RaiseStmt) {
	name := "CONSTRAINT_ERROR"
	if ident, ok := n.Name.(*ast.Identifier); ok {
		name = ident.Name
	}
	e.raiseBlock(exceptionGlobal(name))
}
