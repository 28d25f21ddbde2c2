package codegen

import (
	"github.com/go-ada/adac/internal/token"
	"github.com/go-ada/adac/internal/types"
)

// bindKind distinguishes what an env entry names, mirroring the subset
// of symtab.Kind the emitter needs to decide how to reference a name.
type bindKind int

const (
	bindLocal bindKind = iota
	bindGlobal
	bindSubprogram
	bindPackage
	bindException
)

// binding is the emitter's own record of a declared name: where to find
// it (an alloca pointer, a global symbol, or a mangled function name)
// and its resolved type, rebuilt from the AST during code generation
// rather than threaded from the resolver's (by-then-discarded) scope
// tree.
type binding struct {
	kind  bindKind
	ssa   string // "%x" alloca pointer, "@g" global, or a mangled function name
	typ   *types.Type
	pkg   *env // package's own nested environment, for KindPackage-like bindings
	depth int  // frame depth this local's alloca lives in; meaningless for non-bindLocal kinds
}

// env is a lexical scope in the emitter's parallel symbol table, built
// by walking declarations in the same order the resolver originally
// did, but recording mangled names instead of diagnosing.
type env struct {
	parent *env
	vars   map[string]*binding
}

func newEnv(parent *env) *env {
	return &env{parent: parent, vars: make(map[string]*binding)}
}

func (e *env) declare(name string, b *binding) {
	e.vars[token.Fold(name)] = b
}

func (e *env) lookup(name string) *binding {
	key := token.Fold(name)
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[key]; ok {
			return b
		}
	}
	return nil
}
