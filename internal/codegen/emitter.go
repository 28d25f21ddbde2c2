// Package codegen walks a resolved syntax tree and emits textual LLVM
// IR, the final stage of the pipeline: lexer and parser build the tree,
// the resolver annotates it with types and runtime-check markers, and
// this package turns the annotated tree into a module a real LLVM
// toolchain can assemble and optimize further.
package codegen

import (
	"bytes"
	"fmt"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/diag"
	"github.com/go-ada/adac/internal/semantic"
	"github.com/go-ada/adac/internal/token"
	"github.com/go-ada/adac/internal/types"
)

// Options configures code generation that the resolved tree itself
// cannot determine: the CLI's chosen target width and diagnostic
// rendering, never the Ada semantics of the program being compiled.
type Options struct {
	IntWidth int // target integer width in bits; 64 unless overridden
	Color    bool
}

// DefaultOptions matches the textual IR conventions: 64-bit default
// integer width.
func DefaultOptions() Options {
	return Options{IntWidth: 64}
}

// local is one declared name visible in the function body currently
// being emitted, mirroring the shape of a bytecode compiler's local
// slot table but keyed by SSA alloca name instead of a stack offset.
type local struct {
	name  string
	depth int
	ssa   string
	typ   *types.Type
}

// Emitter threads per-module state across one Emit call. It is built
// fresh for every compilation; nothing here is retained afterward.
type Emitter struct {
	res  *semantic.Result
	opts Options
	bag  *diag.Bag

	file string
	src  string

	preamble bytes.Buffer // runtime decls, exception globals, string constants
	body     bytes.Buffer // the function currently being emitted
	funcs    bytes.Buffer // finished function bodies, appended as each completes

	tempCounter   int
	labelCounter  int
	stringCounter int

	locals     []local
	scopeDepth int
	env        *env

	frames []*frame
	path   []string // enclosing scope names, outermost first, for mangling

	loops []loopLabels // enclosing loops, innermost last, for `exit`

	// currentReturn is the result type of the function body currently
	// being emitted, nil inside a procedure, used to lower `return Value;`.
	currentReturn *types.Type

	strings map[string]string // literal text -> global constant name

	runtimeDeclared bool
}

// New creates an Emitter for res using opts, reporting any internal
// (should-never-happen) errors against file/src the way the resolver
// reports its own diagnostics.
func New(file, src string, res *semantic.Result, opts Options) *Emitter {
	return &Emitter{
		res:     res,
		opts:    opts,
		bag:     &diag.Bag{},
		file:    file,
		src:     src,
		env:     newEnv(nil),
		strings: make(map[string]string),
	}
}

// Emit walks res.Unit, emitting the module preamble followed by one
// function per subprogram body, and returns the full textual IR
// together with any internal diagnostics raised along the way (the
// caller should treat a non-empty bag as an internal compiler error,
// not a program error, since the tree has already been resolved).
func Emit(file, src string, res *semantic.Result, opts Options) (string, *diag.Bag) {
	e := New(file, src, res, opts)
	e.writeRuntimeDecls()
	for _, item := range res.Unit.Units {
		e.emitLibraryItem(item)
	}
	var out bytes.Buffer
	out.Write(e.preamble.Bytes())
	out.Write(e.funcs.Bytes())
	return out.String(), e.bag
}

func (e *Emitter) errorf(pos token.Position, format string, args ...any) {
	e.bag.Add(diag.New(pos, e.src, e.file, "internal: "+format, args...))
}

// emitf writes one already-indented instruction line, with a trailing
// newline, to the function body currently being built.
func (e *Emitter) emitf(format string, args ...any) {
	fmt.Fprintf(&e.body, "  "+format+"\n", args...)
}

// emitRaw writes a line with no added indentation, for labels.
func (e *Emitter) emitRaw(format string, args ...any) {
	fmt.Fprintf(&e.body, format+"\n", args...)
}

func (e *Emitter) newTemp() string {
	e.tempCounter++
	return fmt.Sprintf("%%t%d", e.tempCounter)
}

func (e *Emitter) newLabel(tag string) string {
	e.labelCounter++
	return fmt.Sprintf("L%s%d", tag, e.labelCounter)
}

// beginScope/endScope/declareLocal/resolveLocal mirror a bytecode
// compiler's local-slot bookkeeping, generalized from a stack slot to
// an alloca's SSA name.
func (e *Emitter) beginScope() {
	e.scopeDepth++
	e.env = newEnv(e.env)
}

func (e *Emitter) endScope() {
	for len(e.locals) > 0 && e.locals[len(e.locals)-1].depth == e.scopeDepth {
		e.locals = e.locals[:len(e.locals)-1]
	}
	if e.scopeDepth > 0 {
		e.scopeDepth--
	}
	if e.env.parent != nil {
		e.env = e.env.parent
	}
}

func (e *Emitter) declareLocal(name, ssa string, t *types.Type) {
	e.locals = append(e.locals, local{name: name, depth: e.scopeDepth, ssa: ssa, typ: t})
	frameDepth := 0
	if f := e.currentFrame(); f != nil {
		frameDepth = f.depth
	}
	e.env.declare(name, &binding{kind: bindLocal, ssa: ssa, typ: t, depth: frameDepth})
}

func (e *Emitter) declareGlobal(name, ssa string, t *types.Type, kind bindKind) {
	e.env.declare(name, &binding{kind: kind, ssa: ssa, typ: t})
}

func (e *Emitter) resolveName(name string) *binding {
	return e.env.lookup(name)
}

func (e *Emitter) pushPath(name string) {
	e.path = append(e.path, name)
}

func (e *Emitter) popPath() {
	e.path = e.path[:len(e.path)-1]
}

// mangled builds the global symbol for name declared in the current
// scope path, disambiguating overloads by arity.
func (e *Emitter) mangled(name string, arity int) string {
	return mangleArity(e.path, name, arity)
}

// internString returns the global name of a deduplicated string
// constant holding s, declaring it in the preamble on first use.
func (e *Emitter) internString(s string) string {
	if name, ok := e.strings[s]; ok {
		return name
	}
	e.stringCounter++
	name := fmt.Sprintf("@.str.%d", e.stringCounter)
	e.strings[s] = name
	n := len(s) + 1
	fmt.Fprintf(&e.preamble, "%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"\n", name, n, escapeIRString(s))
	return name
}

func escapeIRString(s string) string {
	var out bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' || b < 0x20 || b > 0x7e {
			fmt.Fprintf(&out, "\\%02X", b)
			continue
		}
		out.WriteByte(b)
	}
	return out.String()
}

// writeRuntimeDecls emits the fixed block of runtime-function
// declarations and predefined exception globals every module begins
// with, per the required runtime symbols every emitted module relies
// on for secondary-stack management, exception raising, and checks.
func (e *Emitter) writeRuntimeDecls() {
	if e.runtimeDeclared {
		return
	}
	e.runtimeDeclared = true
	decls := []string{
		"declare void @__ada_ss_init()",
		"declare ptr @__ada_ss_allocate(i64)",
		"declare i64 @__ada_ss_mark()",
		"declare void @__ada_ss_release(i64)",
		"declare ptr @malloc(i64)",
		"declare void @free(ptr)",
		"declare void @llvm.memcpy.p0.p0.i64(ptr nocapture writeonly, ptr nocapture readonly, i64, i1 immarg)",
		"declare void @__ada_raise(ptr) noreturn",
		"declare void @__ada_push_handler(ptr)",
		"declare void @__ada_pop_handler()",
		"declare i64 @__ada_setjmp(ptr)",
		"declare void @__ada_check_range(i64, i64, i64)",
		"declare i64 @__ada_powi(i64, i64)",
		"declare ptr @__ada_image_int(i64)",
		"declare ptr @__ada_image_enum(i64, i64, i64)",
		"declare i64 @__ada_value_int(ptr)",
	}
	for _, d := range decls {
		e.preamble.WriteString(d)
		e.preamble.WriteString("\n")
	}
	for _, name := range []string{"CONSTRAINT_ERROR", "PROGRAM_ERROR", "STORAGE_ERROR", "NUMERIC_ERROR", "TASKING_ERROR"} {
		fmt.Fprintf(&e.preamble, "@.ex.%s = linkonce_odr global i8 0\n", name)
	}
	e.preamble.WriteString("\n")
}

// exceptionGlobal maps an Ada exception name to its predefined global,
// folding NUMERIC_ERROR onto CONSTRAINT_ERROR per the Ada 83 synonym.
func exceptionGlobal(name string) string {
	switch name {
	case "Constraint_Error", "CONSTRAINT_ERROR":
		return "@.ex.CONSTRAINT_ERROR"
	case "Program_Error", "PROGRAM_ERROR":
		return "@.ex.PROGRAM_ERROR"
	case "Storage_Error", "STORAGE_ERROR":
		return "@.ex.STORAGE_ERROR"
	case "Numeric_Error", "NUMERIC_ERROR":
		return "@.ex.CONSTRAINT_ERROR"
	case "Tasking_Error", "TASKING_ERROR":
		return "@.ex.TASKING_ERROR"
	default:
		return "@.ex." + name
	}
}

// raiseBlock emits a call to __ada_raise for exGlobal followed by
// unreachable, the fixed two-instruction tail every inserted check's
// failure branch ends with.
func (e *Emitter) raiseBlock(exGlobal string) {
	e.emitf("call void @__ada_raise(ptr %s)", exGlobal)
	e.emitf("unreachable")
}

// typeOf is a thin wrapper over the resolver's recorded expression
// type, giving codegen files one place to extend with a fallback.
func (e *Emitter) typeOf(expr ast.Expression) *types.Type {
	return e.res.ExprTypes[expr]
}
