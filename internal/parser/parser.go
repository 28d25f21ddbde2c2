// Package parser implements a recursive-descent, precedence-climbing
// parser for the Ada 83 subset this compiler accepts. It consumes a
// lexer.Lexer token stream and produces an *ast.CompilationUnit.
//
// Key patterns:
//   - TokenCursor-style one-token lookahead (cur/peek), mirroring the
//     cursor the lexer itself uses internally.
//   - Errors are accumulated in a diag.Bag rather than returned
//     immediately, so the parser can recover at the next statement or
//     declaration boundary and keep reporting further problems.
//   - Expression parsing is precedence-climbing over the six Ada
//     operator levels (LRM 4.5): logical, relational, binary adding,
//     unary adding, multiplying, highest-precedence (**, abs, not).
package parser

import (
	"github.com/go-ada/adac/internal/arena"
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/diag"
	"github.com/go-ada/adac/internal/lexer"
	"github.com/go-ada/adac/internal/token"
)

// Precedence levels, lowest to highest (LRM 4.5).
const (
	_ int = iota
	lowest
	logical    // and, or, xor, and then, or else
	relational // = /= < <= > >= in, not in
	adding     // + - & (binary)
	unarySign  // + - (unary)
	multiplying
	highest // ** abs not
)

var binaryPrecedence = map[string]int{
	"and": logical, "or": logical, "xor": logical,
	"=": relational, "/=": relational, "<": relational, "<=": relational,
	">": relational, ">=": relational, "in": relational,
	"+": adding, "-": adding, "&": adding,
	"*": multiplying, "/": multiplying, "mod": multiplying, "rem": multiplying,
	"**": highest,
}

// Parser holds the state for one parse of a single compilation unit.
type Parser struct {
	lex   *lexer.Lexer
	arena *arena.Arena[ast.Identifier]
	bag   *diag.Bag
	file  string
	src   string

	cur  token.Token
	peek token.Token
}

// New creates a Parser over src, reporting diagnostics against file.
func New(file, src string) *Parser {
	p := &Parser{
		lex:   lexer.New(file, src),
		arena: &arena.Arena[ast.Identifier]{},
		bag:   &diag.Bag{},
		file:  file,
		src:   src,
	}
	p.advance()
	p.advance()
	return p
}

// Errors returns the diagnostic bag accumulated while parsing.
func (p *Parser) Errors() *diag.Bag { return p.bag }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.bag.Add(diag.New(pos, p.src, p.file, format, args...))
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind) token.Token {
	if !p.curIs(k) {
		p.errorf(p.cur.Pos, "expected %s, found %s", k, p.cur)
		return p.cur
	}
	t := p.cur
	p.advance()
	return t
}

// expectIdentName consumes an identifier and returns its text, used for
// names that are not wrapped in an *ast.Identifier (e.g. the declared
// name of a subprogram, package or type, or a with-clause unit name).
func (p *Parser) expectIdentName() string {
	t := p.expect(token.IDENT)
	return t.Literal
}

// skipTo advances until cur is one of the given kinds or EOF, used for
// panic-mode recovery after a malformed declaration or statement.
func (p *Parser) skipTo(kinds ...token.Kind) {
	for !p.curIs(token.EOF) {
		for _, k := range kinds {
			if p.curIs(k) {
				return
			}
		}
		p.advance()
	}
}

// Parse parses one compilation: a context clause followed by the library
// items making up the source file. Most files hold exactly one library
// item, but a generic and a subprogram that instantiates it are allowed
// to share a file, so Parse keeps reading library items until EOF.
func (p *Parser) Parse() *ast.CompilationUnit {
	unit := &ast.CompilationUnit{}
	for p.curIs(token.WITH) {
		p.advance()
		name := p.expectIdentName()
		for p.curIs(token.DOT) {
			p.advance()
			name += "." + p.expectIdentName()
		}
		unit.WithClauses = append(unit.WithClauses, token.Fold(name))
		p.expect(token.SEMICOLON)
		// `use` clauses may follow a `with`; parsed but not retained
		// beyond prefix-free name resolution, since this subset resolves
		// every name through explicit with-scoping only.
		if p.curIs(token.USE) {
			p.advance()
			for !p.curIs(token.SEMICOLON) && !p.curIs(token.EOF) {
				p.advance()
			}
			p.expect(token.SEMICOLON)
		}
	}

	for !p.curIs(token.EOF) {
		before := p.cur
		item := p.parseLibraryItem()
		if item != nil {
			unit.Units = append(unit.Units, item)
		}
		if p.cur == before {
			p.advance()
		}
	}
	return unit
}

// parseLibraryItem parses one library item: a subprogram declaration or
// body, a package spec, or a package body, optionally preceded by a
// generic formal part.
func (p *Parser) parseLibraryItem() ast.Declaration {
	var generic *ast.GenericFormalPart
	if p.curIs(token.GENERIC) {
		generic = p.parseGenericFormalPart()
	}

	switch {
	case p.curIs(token.PACKAGE):
		return p.parsePackage(generic)
	case p.curIs(token.PROCEDURE) || p.curIs(token.FUNCTION):
		return p.parseSubprogramDeclOrBody(generic)
	default:
		p.errorf(p.cur.Pos, "expected a package or subprogram, found %s", p.cur)
		return nil
	}
}

func (p *Parser) parseGenericFormalPart() *ast.GenericFormalPart {
	tok := p.cur
	p.expect(token.GENERIC)
	g := &ast.GenericFormalPart{Token: tok}
	for p.curIs(token.TYPE) || p.curIs(token.WITH) || p.curIs(token.IDENT) {
		g.Formals = append(g.Formals, p.parseGenericFormal())
	}
	return g
}

func (p *Parser) parseGenericFormal() ast.GenericFormal {
	switch {
	case p.curIs(token.TYPE):
		p.advance()
		name := p.expectIdentName()
		p.expect(token.IS)
		def := p.parseFormalTypeDef()
		p.expect(token.SEMICOLON)
		return ast.GenericFormal{Kind: ast.FormalType, Name: name, FormalTypeDef: def}
	case p.curIs(token.WITH):
		p.advance()
		spec := p.parseSubprogramSpec()
		var def ast.Expression
		if p.curIs(token.IS) {
			p.advance()
			def = p.parseExpression(lowest)
		}
		p.expect(token.SEMICOLON)
		return ast.GenericFormal{Kind: FormalSubprogramAdapter(), Spec: spec, Default: def}
	default:
		names := p.parseIdentList()
		p.expect(token.COLON)
		mode := p.parseMode()
		typeMark := p.parseExpression(highest)
		var def ast.Expression
		if p.curIs(token.ASSIGN) {
			p.advance()
			def = p.parseExpression(lowest)
		}
		p.expect(token.SEMICOLON)
		return ast.GenericFormal{Kind: ast.FormalObject, Names: names, Mode: mode, TypeMark: typeMark, Default: def}
	}
}

// FormalSubprogramAdapter exists only to keep parseGenericFormal's case
// arm symmetrical with ast.FormalType/ast.FormalObject.
func FormalSubprogramAdapter() ast.GenericFormalKind { return ast.FormalSubprogram }

// parseFormalTypeDef parses a (limited) formal type definition: `private`,
// `(<>)` (discrete), `range <>` (signed integer), `digits <>` (float).
func (p *Parser) parseFormalTypeDef() string {
	switch {
	case p.curIs(token.PRIVATE):
		p.advance()
		return "private"
	case p.curIs(token.LPAREN):
		p.advance()
		p.expect(token.BOX)
		p.expect(token.RPAREN)
		return "(<>)"
	case p.curIs(token.RANGE):
		p.advance()
		p.expect(token.BOX)
		return "range <>"
	case p.curIs(token.DIGITS):
		p.advance()
		p.expect(token.BOX)
		return "digits <>"
	default:
		p.errorf(p.cur.Pos, "expected a formal type definition, found %s", p.cur)
		return ""
	}
}

func (p *Parser) parseIdentList() []string {
	names := []string{p.expectIdentName()}
	for p.curIs(token.COMMA) {
		p.advance()
		names = append(names, p.expectIdentName())
	}
	return names
}

func (p *Parser) parseMode() ast.ParamMode {
	switch {
	case p.curIs(token.OUT):
		p.advance()
		return ast.ModeOut
	case p.curIs(token.IN):
		p.advance()
		if p.curIs(token.OUT) {
			p.advance()
			return ast.ModeInOut
		}
		return ast.ModeIn
	default:
		return ast.ModeIn
	}
}

func (p *Parser) pos() token.Position { return p.cur.Pos }
