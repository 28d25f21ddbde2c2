// Package compiler wires the lexer, parser, resolver, optimizer, and
// code generator into the single reusable pipeline every entry point
// needs, promoted out of the shape the CLI's own compile command used
// to inline directly: read source, run each phase in turn, stop at the
// first phase that reports errors.
package compiler

import (
	"fmt"

	"github.com/go-ada/adac/internal/codegen"
	"github.com/go-ada/adac/internal/diag"
	"github.com/go-ada/adac/internal/optimizer"
	"github.com/go-ada/adac/internal/parser"
	"github.com/go-ada/adac/internal/semantic"
)

// Context holds everything one compilation needs: the source text
// under a given file name, and the options governing the optimizer and
// code generator stages. A Context is cheap to build and is not
// reused across compilations.
type Context struct {
	File string
	Src  string

	Optimizer optimizer.Config
	Codegen   codegen.Options

	bag *diag.Bag
}

// New builds a Context for compiling src under file, with the given
// optimizer and code generation options.
func New(file, src string, optCfg optimizer.Config, codegenOpts codegen.Options) *Context {
	return &Context{
		File:      file,
		Src:       src,
		Optimizer: optCfg,
		Codegen:   codegenOpts,
		bag:       &diag.Bag{},
	}
}

// Diagnostics returns the diagnostics of the last phase the most recent
// Compile call ran: the phase that failed, or the code generator after
// a clean compilation.
func (c *Context) Diagnostics() *diag.Bag {
	return c.bag
}

// Compile runs the full pipeline: parse, resolve, optimize, emit. It
// stops at the first phase reporting an error and returns that
// phase's diagnostics via Diagnostics, leaving ir empty. A clean
// compilation returns the module's full textual LLVM IR.
func (c *Context) Compile() (ir string, err error) {
	c.bag = &diag.Bag{}

	p := parser.New(c.File, c.Src)
	unit := p.Parse()
	c.bag = p.Errors()
	if c.bag.HasErrors() {
		return "", fmt.Errorf("parsing failed")
	}

	res := semantic.Resolve(c.File, c.Src, unit)
	c.bag = res.Diags
	if c.bag.HasErrors() {
		return "", fmt.Errorf("semantic analysis failed")
	}

	optimizer.Run(res, c.Optimizer)

	ir, bag := codegen.Emit(c.File, c.Src, res, c.Codegen)
	c.bag = bag
	if c.bag.HasErrors() {
		return "", fmt.Errorf("code generation failed")
	}

	return ir, nil
}
