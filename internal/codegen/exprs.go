package codegen

import (
	"fmt"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/types"
)

// emitExpr lowers expr to a Value, dispatching on its concrete shape
// the way the resolver's own resolveExpr does, so the two walks visit
// the tree in the same shape.
func (e *Emitter) emitExpr(expr ast.Expression) Value {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		t := e.typeOf(n)
		return intConst(n.Value, llvmType(t))
	case *ast.RealLiteral:
		t := e.typeOf(n)
		return floatConst(n.Value, llvmType(t))
	case *ast.CharLiteral:
		return intConst(int64(n.Value), "i8")
	case *ast.StringLiteral:
		g := e.internString(n.Value)
		return reg(KPointer, "ptr", g)
	case *ast.NullLiteral:
		return Value{Kind: KPointer, Type: "ptr", Text: "null"}
	case *ast.Identifier:
		return e.emitIdentifier(n)
	case *ast.BinaryExpr:
		return e.emitBinary(n)
	case *ast.UnaryExpr:
		return e.emitUnary(n)
	case *ast.SelectedComponent:
		return e.emitSelectedComponent(n)
	case *ast.IndexedComponent:
		return e.emitIndexedComponent(n)
	case *ast.AttributeRef:
		return e.emitAttribute(n)
	case *ast.QualifiedExpr:
		return e.emitExpr(n.Qualified)
	case *ast.Aggregate:
		return e.emitAggregate(n)
	case *ast.Allocator:
		return e.emitAllocator(n)
	case *ast.Check:
		return e.emitCheck(n)
	default:
		e.errorf(expr.Pos(), "unsupported expression %T reached code generation", expr)
		return intConst(0, "i64")
	}
}

func (e *Emitter) emitIdentifier(n *ast.Identifier) Value {
	b := e.resolveName(n.Name)
	if b == nil {
		e.errorf(n.Pos(), "unresolved identifier %q reached code generation", n.Name)
		return intConst(0, "i64")
	}
	switch b.kind {
	case bindSubprogram, bindPackage:
		return reg(KPointer, "ptr", b.ssa)
	case bindException:
		return reg(KPointer, "ptr", b.ssa)
	default:
		if e.crossesFrame(b) {
			e.errorf(n.Pos(), "reference to %q in a lexically enclosing body is not supported by this code generator (static-link chain walk not implemented)", n.Name)
			return intConst(0, "i64")
		}
		llt := llvmType(b.typ)
		t := e.newTemp()
		e.emitf("%s = load %s, ptr %s", t, llt, b.ssa)
		return reg(valueKind(b.typ), llt, t)
	}
}

// crossesFrame reports whether b names a local declared in a lexically
// enclosing body rather than the one currently being emitted. Reading
// or writing such a binding would need to walk the static-link chain
// recorded in e.frames to reach the owning frame's alloca; that hop is
// not implemented, so callers must diagnose this case rather than emit
// a load/store against an SSA name that does not exist in the current
// function.
func (e *Emitter) crossesFrame(b *binding) bool {
	if b.kind != bindLocal {
		return false
	}
	f := e.currentFrame()
	return f != nil && b.depth != f.depth
}

func (e *Emitter) emitBinary(n *ast.BinaryExpr) Value {
	switch n.Op {
	case "and then", "or else":
		return e.emitShortCircuit(n)
	}
	lt := e.typeOf(n)
	l := e.emitExpr(n.Left)
	r := e.emitExpr(n.Right)
	kind := valueKind(lt)
	if kind == KInteger && (l.Kind == KFloat || r.Kind == KFloat) {
		kind = KFloat
	}
	llt := llvmType(lt)

	switch n.Op {
	case "+", "-", "*", "/", "mod", "rem":
		return e.emitArith(n, l, r, kind, llt)
	case "**":
		return e.emitPower(l, r, kind, llt)
	case "=", "/=", "<", "<=", ">", ">=":
		return e.emitCompare(n.Op, l, r, kind)
	case "and", "or", "xor":
		return e.emitLogical(n.Op, l, r)
	case "in", "not in":
		return e.emitMembership(n, l)
	default:
		e.errorf(n.Pos(), "unsupported binary operator %q reached code generation", n.Op)
		return intConst(0, llt)
	}
}

func (e *Emitter) emitArith(n *ast.BinaryExpr, l, r Value, kind Kind, llt string) Value {
	t := e.newTemp()
	if kind == KFloat {
		op := map[string]string{"+": "fadd", "-": "fsub", "*": "fmul", "/": "fdiv"}[n.Op]
		if op == "" {
			e.errorf(n.Pos(), "operator %q not supported on real operands", n.Op)
			op = "fadd"
		}
		e.emitf("%s = %s %s %s, %s", t, op, llt, l.Text, r.Text)
		return reg(KFloat, llt, t)
	}
	op := map[string]string{"+": "add", "-": "sub", "*": "mul", "/": "sdiv", "mod": "srem", "rem": "srem"}[n.Op]
	e.emitf("%s = %s nsw %s %s, %s", t, op, llt, l.Text, r.Text)
	return reg(KInteger, llt, t)
}

func (e *Emitter) emitPower(l, r Value, kind Kind, llt string) Value {
	t := e.newTemp()
	if kind == KFloat {
		e.emitf("%s = call double @llvm.pow.f64(double %s, double %s)", t, l.Text, r.Text)
		return reg(KFloat, llt, t)
	}
	e.emitf("%s = call i64 @__ada_powi(i64 %s, i64 %s)", t, l.Text, r.Text)
	return reg(KInteger, llt, t)
}

func (e *Emitter) emitCompare(op string, l, r Value, kind Kind) Value {
	t := e.newTemp()
	if kind == KFloat {
		cc := map[string]string{"=": "oeq", "/=": "one", "<": "olt", "<=": "ole", ">": "ogt", ">=": "oge"}[op]
		e.emitf("%s = fcmp %s %s %s, %s", t, cc, l.Type, l.Text, r.Text)
	} else {
		cc := map[string]string{"=": "eq", "/=": "ne", "<": "slt", "<=": "sle", ">": "sgt", ">=": "sge"}[op]
		e.emitf("%s = icmp %s %s %s, %s", t, cc, l.Type, l.Text, r.Text)
	}
	return reg(KInteger, "i1", t)
}

func (e *Emitter) emitLogical(op string, l, r Value) Value {
	t := e.newTemp()
	llop := map[string]string{"and": "and", "or": "or", "xor": "xor"}[op]
	e.emitf("%s = %s i1 %s, %s", t, llop, l.Text, r.Text)
	return reg(KInteger, "i1", t)
}

// emitShortCircuit lowers `and then`/`or else` to a branch that only
// evaluates the right operand when the left one doesn't already decide
// the result.
func (e *Emitter) emitShortCircuit(n *ast.BinaryExpr) Value {
	l := e.emitExpr(n.Left)
	rhsLabel := e.newLabel("scRhs")
	doneLabel := e.newLabel("scDone")
	shortResult := "0"
	if n.Op == "or else" {
		shortResult = "1"
	}
	resultSlot := e.newTemp()
	e.emitf("%s = alloca i1", resultSlot)
	e.emitf("store i1 %s, ptr %s", shortResult, resultSlot)
	if n.Op == "and then" {
		e.emitf("br i1 %s, label %%%s, label %%%s", l.Text, rhsLabel, doneLabel)
	} else {
		e.emitf("br i1 %s, label %%%s, label %%%s", l.Text, doneLabel, rhsLabel)
	}
	e.emitRaw("%s:", rhsLabel)
	r := e.emitExpr(n.Right)
	e.emitf("store i1 %s, ptr %s", r.Text, resultSlot)
	e.emitf("br label %%%s", doneLabel)
	e.emitRaw("%s:", doneLabel)
	t := e.newTemp()
	e.emitf("%s = load i1, ptr %s", t, resultSlot)
	return reg(KInteger, "i1", t)
}

func (e *Emitter) emitMembership(n *ast.BinaryExpr, v Value) Value {
	rng, ok := n.Right.(*ast.RangeExpr)
	if !ok {
		e.errorf(n.Pos(), "membership test against a non-range is not supported")
		return intConst(1, "i1")
	}
	low := e.emitExpr(rng.Low)
	high := e.emitExpr(rng.High)
	lo := e.newTemp()
	e.emitf("%s = icmp sle %s %s, %s", lo, v.Type, low.Text, v.Text)
	hi := e.newTemp()
	e.emitf("%s = icmp sle %s %s, %s", hi, v.Type, v.Text, high.Text)
	t := e.newTemp()
	e.emitf("%s = and i1 %s, %s", t, lo, hi)
	if n.Op == "not in" {
		nt := e.newTemp()
		e.emitf("%s = xor i1 %s, 1", nt, t)
		return reg(KInteger, "i1", nt)
	}
	return reg(KInteger, "i1", t)
}

func (e *Emitter) emitUnary(n *ast.UnaryExpr) Value {
	v := e.emitExpr(n.Right)
	t := e.newTemp()
	switch n.Op {
	case "-":
		if v.Kind == KFloat {
			e.emitf("%s = fneg %s %s", t, v.Type, v.Text)
		} else {
			e.emitf("%s = sub nsw %s 0, %s", t, v.Type, v.Text)
		}
		return reg(v.Kind, v.Type, t)
	case "+":
		return v
	case "not":
		e.emitf("%s = xor %s %s, -1", t, v.Type, v.Text)
		return reg(v.Kind, v.Type, t)
	case "abs":
		neg := e.newTemp()
		if v.Kind == KFloat {
			e.emitf("%s = call double @llvm.fabs.f64(double %s)", t, v.Text)
			return reg(KFloat, v.Type, t)
		}
		e.emitf("%s = sub nsw %s 0, %s", neg, v.Type, v.Text)
		cond := e.newTemp()
		e.emitf("%s = icmp slt %s %s, 0", cond, v.Type, v.Text)
		e.emitf("%s = select i1 %s, %s %s, %s %s", t, cond, v.Type, neg, v.Type, v.Text)
		return reg(KInteger, v.Type, t)
	default:
		e.errorf(n.Pos(), "unsupported unary operator %q reached code generation", n.Op)
		return v
	}
}

// emitSelectedComponent lowers a record field access or a `.all`
// access-value dereference; a package-qualified name never reaches
// here as an expression (it is resolved directly to the member's own
// binding by the time codegen runs an identifier lookup on it).
func (e *Emitter) emitSelectedComponent(n *ast.SelectedComponent) Value {
	if n.Name == "all" {
		ptr := e.emitExpr(n.Prefix)
		designated := e.typeOf(n)
		llt := llvmType(designated)
		t := e.newTemp()
		e.emitf("%s = load %s, ptr %s", t, llt, ptr.Text)
		return reg(valueKind(designated), llt, t)
	}
	prefixType := e.typeOf(n.Prefix)
	recType := prefixType
	if recType != nil && recType.Kind == types.Access {
		recType = recType.Designated
	}
	// Through an access value the prefix IS the pointer to dereference;
	// through a direct record value it is already an address, since
	// records are always addressed, never passed by value.
	base := e.emitExpr(n.Prefix)
	basePtr := base.Text
	idx, fieldType := fieldIndex(recType, n.Name)
	gep := e.newTemp()
	e.emitf("%s = getelementptr %s, ptr %s, i32 0, i32 %d", gep, llvmRecordType(recType), basePtr, idx)
	llt := llvmType(fieldType)
	t := e.newTemp()
	e.emitf("%s = load %s, ptr %s", t, llt, gep)
	return reg(valueKind(fieldType), llt, t)
}

func fieldIndex(rec *types.Type, name string) (int, *types.Type) {
	if rec == nil {
		return 0, types.IntegerType
	}
	for i, f := range rec.Fields {
		if f.Name == name {
			return i, f.Type
		}
	}
	return 0, types.IntegerType
}

// emitIndexedComponent lowers either a subprogram call or an array
// index, disambiguated by what the prefix's recorded type is.
func (e *Emitter) emitIndexedComponent(n *ast.IndexedComponent) Value {
	prefixType := e.typeOf(n.Prefix)
	if prefixType != nil && (prefixType.Kind == types.Procedure || prefixType.Kind == types.Function) {
		return e.emitCall(n, prefixType)
	}
	return e.emitIndex(n, prefixType)
}

func (e *Emitter) emitCall(n *ast.IndexedComponent, fnType *types.Type) Value {
	ident, ok := n.Prefix.(*ast.Identifier)
	if !ok {
		e.errorf(n.Pos(), "indirect subprogram calls are not supported")
		return intConst(0, "i64")
	}
	b := e.resolveName(ident.Name)
	if b == nil {
		e.errorf(n.Pos(), "call to undeclared subprogram %q", ident.Name)
		return intConst(0, "i64")
	}
	argVals := make([]string, 0, len(n.Args))
	for i, a := range n.Args {
		v := e.emitExpr(a)
		pt := types.IntegerType
		if i < len(fnType.Params) {
			pt = fnType.Params[i].Type
		}
		v = e.cast(v, llvmType(pt), valueKind(pt))
		argVals = append(argVals, fmt.Sprintf("%s %s", v.Type, v.Text))
	}
	args := ""
	for i, a := range argVals {
		if i > 0 {
			args += ", "
		}
		args += a
	}
	if fnType.Kind == types.Function {
		llt := llvmType(fnType.Result)
		ssResult := fnType.Result != nil && fnType.Result.Unconstrained
		var mark string
		if ssResult {
			mark = e.newTemp()
			e.emitf("%s = call i64 @__ada_ss_mark()", mark)
		}
		t := e.newTemp()
		e.emitf("%s = call %s %s(%s)", t, llt, b.ssa, args)
		if ssResult {
			// The mark/release bracket is scoped to this one call; the
			// release follows the call immediately, so a result retained
			// past this call is not guaranteed to survive, a documented limitation of this
			// core's secondary-stack support (see DESIGN.md).
			e.emitf("call void @__ada_ss_release(i64 %s)", mark)
		}
		return reg(valueKind(fnType.Result), llt, t)
	}
	e.emitf("call void %s(%s)", b.ssa, args)
	return Value{}
}

func (e *Emitter) emitIndex(n *ast.IndexedComponent, arrType *types.Type) Value {
	base := e.emitExpr(n.Prefix)
	if len(n.Args) == 0 {
		return base
	}
	idxVal := e.emitExpr(n.Args[0])
	idxVal = e.indexOffset(idxVal, arrType)
	elemType := types.IntegerType
	if arrType != nil {
		elemType = arrType.Element
	}
	llt := llvmType(elemType)
	gep := e.newTemp()
	e.emitf("%s = getelementptr %s, ptr %s, i64 %s", gep, llt, base.Text, idxVal.Text)
	t := e.newTemp()
	e.emitf("%s = load %s, ptr %s", t, llt, gep)
	return reg(valueKind(elemType), llt, t)
}

// indexLow returns the lower bound of arrType's first index dimension,
// the base every array getelementptr offset is taken relative to. A
// type with no recorded, constrained index dimension indexes from 0.
func indexLow(arrType *types.Type) int64 {
	if arrType == nil || len(arrType.IndexTypes) == 0 {
		return 0
	}
	idx := arrType.IndexTypes[0]
	if idx == nil || !idx.Constrained {
		return 0
	}
	return idx.Low
}

// indexOffset rewrites a user-facing index value into the zero-based
// offset a getelementptr needs, subtracting the index subtype's own
// lower bound (e.g. `V(1)` into `array (1 .. 10) of Integer` addresses
// element 0, not element 1).
func (e *Emitter) indexOffset(idxVal Value, arrType *types.Type) Value {
	low := indexLow(arrType)
	if low == 0 {
		return idxVal
	}
	off := e.newTemp()
	e.emitf("%s = sub %s %s, %d", off, idxVal.Type, idxVal.Text, low)
	return reg(idxVal.Kind, idxVal.Type, off)
}

// emitAttribute lowers the handful of scalar and array attributes this
// core supports; FIRST/LAST/LENGTH fold to a literal whenever the
// prefix's type is statically constrained, matching the emitter's
// constant-folding note for attribute references. IMAGE and VALUE
// always call into the runtime.
func (e *Emitter) emitAttribute(n *ast.AttributeRef) Value {
	prefixType := e.typeOf(n.Prefix)
	switch n.Name {
	case "first":
		if prefixType != nil && prefixType.Constrained {
			return intConst(prefixType.Low, llvmType(prefixType))
		}
	case "last":
		if prefixType != nil && prefixType.Constrained {
			return intConst(prefixType.High, llvmType(prefixType))
		}
	case "length":
		if prefixType != nil && prefixType.Constrained {
			return intConst(prefixType.High-prefixType.Low+1, "i64")
		}
	case "pos":
		return e.emitExpr(n.Args[0])
	case "val":
		return e.emitExpr(n.Args[0])
	case "image":
		v := e.emitExpr(n.Prefix)
		t := e.newTemp()
		e.emitf("%s = call ptr @__ada_image_int(i64 %s)", t, v.Text)
		return reg(KPointer, "ptr", t)
	case "value":
		v := e.emitExpr(n.Args[0])
		t := e.newTemp()
		e.emitf("%s = call i64 @__ada_value_int(ptr %s)", t, v.Text)
		return reg(KInteger, "i64", t)
	}
	e.errorf(n.Pos(), "attribute %q is not statically resolvable here", n.Name)
	return intConst(0, "i64")
}

// emitAggregate supports only a fully positional aggregate targeting a
// fixed-size array of a scalar component, materialized into a freshly
// allocated temporary; record aggregates and `others` choices are not
// lowered (a documented simplification — aggregates are otherwise
// fully checked for shape at resolve time regardless).
func (e *Emitter) emitAggregate(n *ast.Aggregate) Value {
	t := e.typeOf(n)
	if t == nil || t.Kind != types.Array {
		e.errorf(n.Pos(), "only array aggregates are lowered by this core")
		return intConst(0, "i64")
	}
	llt := llvmArrayType(t)
	slot := e.newTemp()
	e.emitf("%s = alloca %s", slot, llt)
	elemLL := llvmType(t.Element)
	for i, el := range n.Elements {
		if len(el.Choices) > 0 {
			continue
		}
		v := e.emitExpr(el.Value)
		gep := e.newTemp()
		e.emitf("%s = getelementptr %s, ptr %s, i64 0, i64 %d", gep, llt, slot, i)
		e.emitf("store %s %s, ptr %s", elemLL, v.Text, gep)
	}
	return reg(KPointer, "ptr", slot)
}

func (e *Emitter) emitAllocator(n *ast.Allocator) Value {
	t := e.typeOf(n)
	designated := types.IntegerType
	if t != nil && t.Kind == types.Access {
		designated = t.Designated
	}
	llt := llvmType(designated)
	size := e.newTemp()
	e.emitf("%s = call ptr @malloc(i64 ptrtoint (ptr getelementptr (%s, ptr null, i32 1) to i64))", size, llt)
	if n.Init != nil {
		v := e.emitExpr(n.Init)
		e.emitf("store %s %s, ptr %s", llt, v.Text, size)
	}
	return reg(KPointer, "ptr", size)
}

// cast converts v to targetLLType/targetKind where the two differ, the
// small set of representation changes a resolved, already type-checked
// tree can still require (e.g. a universal integer literal feeding a
// Float-typed slot).
func (e *Emitter) cast(v Value, targetLLType string, targetKind Kind) Value {
	if v.Type == targetLLType && v.Kind == targetKind {
		return v
	}
	if v.Kind == KInteger && targetKind == KFloat {
		t := e.newTemp()
		e.emitf("%s = sitofp %s %s to %s", t, v.Type, v.Text, targetLLType)
		return reg(KFloat, targetLLType, t)
	}
	if v.Kind == KFloat && targetKind == KInteger {
		t := e.newTemp()
		e.emitf("%s = fptosi %s %s to %s", t, v.Type, v.Text, targetLLType)
		return reg(KInteger, targetLLType, t)
	}
	if targetKind == KFatPointer {
		// Fat pointers are represented as a bare data pointer in this
		// core (see DESIGN.md); a value already carrying a pointer needs
		// no conversion beyond the Kind relabel.
		return reg(KFatPointer, targetLLType, v.Text)
	}
	return Value{Kind: targetKind, Type: targetLLType, Text: v.Text}
}
