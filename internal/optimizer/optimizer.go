// Package optimizer rewrites a resolved syntax tree in place before it
// reaches code generation, folding statically-known constant
// subexpressions and attribute references into literal nodes and
// dropping runtime checks the resolver's own type information already
// proves unnecessary. Every pass is independently toggleable, grounded
// on the bytecode compiler's OptimizationPass/defaultOptimizeConfig
// toggle design: a Config records one enabled bit per named pass,
// DefaultConfig builds the all-on default, and WithPass flips one bit
// on top of it.
package optimizer

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/semantic"
)

// Pass names one independently toggleable rewrite.
type Pass string

const (
	PassConstantFold       Pass = "constant-fold"
	PassAttributeReduction Pass = "attribute-reduction"
	PassRedundantCheckElim Pass = "redundant-check-elim"
)

// Option toggles optimizer behavior.
type Option func(*Config)

// Config records which passes run for one compilation.
type Config struct {
	enabled map[Pass]bool
}

func defaultConfig() Config {
	return Config{
		enabled: map[Pass]bool{
			PassConstantFold:       true,
			PassAttributeReduction: true,
			PassRedundantCheckElim: true,
		},
	}
}

// DefaultConfig returns the all-passes-enabled configuration with opts
// applied on top, mirroring defaultOptimizeConfig followed by applying
// each OptimizeOption in turn.
func DefaultConfig(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPass enables or disables one named pass.
func WithPass(pass Pass, enabled bool) Option {
	return func(cfg *Config) {
		if cfg.enabled == nil {
			cfg.enabled = make(map[Pass]bool)
		}
		cfg.enabled[pass] = enabled
	}
}

func (cfg Config) isEnabled(pass Pass) bool {
	if cfg.enabled == nil {
		return true
	}
	enabled, ok := cfg.enabled[pass]
	if !ok {
		return true
	}
	return enabled
}

// Run rewrites res.Unit in place according to cfg. Constant folding
// runs both before and after attribute reduction: the first pass
// exposes literal arguments an attribute reference might depend on (a
// 'Pos or 'Val argument folded to a literal lets that reference reduce
// to the literal), and since attribute reduction can itself produce
// a fresh literal (V'First becoming, say, 1), a second folding pass
// catches any surrounding expression built around that result (V'First
// + 1) that the first pass ran too early to see. Redundant check
// elimination runs last, once the tree carries the tightest literal
// information the first two passes could extract.
func Run(res *semantic.Result, cfg Config) {
	if cfg.isEnabled(PassConstantFold) {
		foldConstants(res.Unit)
	}
	if cfg.isEnabled(PassAttributeReduction) {
		reduceAttributes(res)
		if cfg.isEnabled(PassConstantFold) {
			foldConstants(res.Unit)
		}
	}
	if cfg.isEnabled(PassRedundantCheckElim) {
		elimRedundantChecks(res)
	}
}

// walkUnit applies fn to every expression reachable from unit's library
// items, rewriting the tree in place.
func walkUnit(unit *ast.CompilationUnit, fn func(ast.Expression) ast.Expression) {
	for _, item := range unit.Units {
		walkDeclaration(item, fn)
	}
}
