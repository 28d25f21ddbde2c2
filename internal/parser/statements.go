package parser

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/token"
)

var stmtTerminators = []token.Kind{token.END, token.ELSE, token.ELSIF, token.WHEN, token.EXCEPTION, token.EOF}

// parseStatementsAndHandlers parses a sequence of statements followed by
// an optional `exception when ... => ...` handler part, stopping at
// `end` (the caller consumes `end` itself).
func (p *Parser) parseStatementsAndHandlers() ([]ast.Statement, []ast.ExceptionHandler) {
	stmts := p.parseStatements()
	var handlers []ast.ExceptionHandler
	if p.curIs(token.EXCEPTION) {
		p.advance()
		for p.curIs(token.WHEN) {
			handlers = append(handlers, p.parseExceptionHandler())
		}
	}
	return stmts, handlers
}

func (p *Parser) parseStatements() []ast.Statement {
	var stmts []ast.Statement
	for !p.atAny(stmtTerminators...) {
		before := p.cur
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.cur == before {
			p.advance()
		}
	}
	return stmts
}

func (p *Parser) parseExceptionHandler() ast.ExceptionHandler {
	tok := p.cur
	p.advance() // 'when'
	h := ast.ExceptionHandler{Token: tok}
	if p.curIs(token.OTHERS) {
		h.Others = true
		p.advance()
	} else {
		for {
			h.Names = append(h.Names, p.parseExpression(lowest))
			if p.curIs(token.BAR) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.ARROW)
	h.Statements = p.parseStatements()
	return h
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.NULL:
		tok := p.cur
		p.advance()
		p.expect(token.SEMICOLON)
		return &ast.NullStmt{Token: tok}
	case token.IF:
		return p.parseIfStmt()
	case token.CASE:
		return p.parseCaseStmt()
	case token.WHILE:
		return p.parseWhileLoop("")
	case token.FOR:
		return p.parseForLoop("")
	case token.LOOP:
		return p.parseBasicLoop("")
	case token.DECLARE:
		return p.parseDeclareBlock()
	case token.BEGIN:
		return p.parseBareBlock()
	case token.EXIT:
		return p.parseExitStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.RAISE:
		return p.parseRaiseStmt()
	case token.PRAGMA:
		return p.parsePragma().(ast.Statement)
	case token.LSHIFT:
		return p.parseLabeledStmt()
	case token.IDENT:
		return p.parseAssignOrCall()
	default:
		p.errorf(p.cur.Pos, "unexpected token %s in statement", p.cur)
		p.skipTo(token.SEMICOLON, token.END)
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
		return nil
	}
}

// parseLabeledStmt handles `<<Label>> loop ... end loop;`-style labeled
// loops, the only statement form Ada 83 allows a label on in this subset.
func (p *Parser) parseLabeledStmt() ast.Statement {
	p.advance() // '<<'
	label := p.expectIdentName()
	p.expect(token.RSHIFT)
	switch p.cur.Kind {
	case token.WHILE:
		return p.parseWhileLoop(label)
	case token.FOR:
		return p.parseForLoop(label)
	case token.LOOP:
		return p.parseBasicLoop(label)
	default:
		p.errorf(p.cur.Pos, "expected a loop after label %s", label)
		return p.parseStatement()
	}
}

func (p *Parser) parseAssignOrCall() ast.Statement {
	tok := p.cur
	target := p.parsePostfix(p.parsePrimary())
	if p.curIs(token.ASSIGN) {
		p.advance()
		value := p.parseExpression(lowest)
		p.expect(token.SEMICOLON)
		return &ast.AssignStmt{Token: tok, Target: target, Value: value}
	}
	p.expect(token.SEMICOLON)
	return &ast.CallStmt{Token: tok, Call: target}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.cur
	p.advance() // 'if'
	stmt := &ast.IfStmt{Token: tok}
	stmt.Cond = p.parseExpression(lowest)
	p.expect(token.THEN)
	stmt.Then = p.parseStatements()
	for p.curIs(token.ELSIF) {
		p.advance()
		cond := p.parseExpression(lowest)
		p.expect(token.THEN)
		stmt.ElsifArms = append(stmt.ElsifArms, ast.ElsifArm{Cond: cond, Then: p.parseStatements()})
	}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseStatements()
	}
	p.expect(token.END)
	p.expect(token.IF)
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseCaseStmt() ast.Statement {
	tok := p.cur
	p.advance() // 'case'
	stmt := &ast.CaseStmt{Token: tok}
	stmt.Selector = p.parseExpression(lowest)
	p.expect(token.IS)
	for p.curIs(token.WHEN) {
		p.advance()
		if p.curIs(token.OTHERS) {
			p.advance()
			p.expect(token.ARROW)
			stmt.OthersAlt = p.parseStatements()
			continue
		}
		var choices []ast.Expression
		for {
			choices = append(choices, p.parseChoice())
			if p.curIs(token.BAR) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.ARROW)
		stmt.Alts = append(stmt.Alts, ast.CaseAlt{Choices: choices, Body: p.parseStatements()})
	}
	p.expect(token.END)
	p.expect(token.CASE)
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseWhileLoop(label string) ast.Statement {
	tok := p.cur
	p.advance() // 'while'
	cond := p.parseExpression(lowest)
	p.expect(token.LOOP)
	body := p.parseStatements()
	p.expect(token.END)
	p.expect(token.LOOP)
	p.expect(token.SEMICOLON)
	return &ast.LoopStmt{Token: tok, Kind: ast.LoopWhile, Label: label, Cond: cond, Body: body}
}

func (p *Parser) parseForLoop(label string) ast.Statement {
	tok := p.cur
	p.advance() // 'for'
	loopVar := p.expectIdentName()
	p.expect(token.IN)
	rev := false
	if p.curIs(token.REVERSE) {
		rev = true
		p.advance()
	}
	rng, rangeType := p.parseDiscreteRange()
	p.expect(token.LOOP)
	body := p.parseStatements()
	p.expect(token.END)
	p.expect(token.LOOP)
	p.expect(token.SEMICOLON)
	return &ast.LoopStmt{
		Token: tok, Kind: ast.LoopFor, Label: label, LoopVar: loopVar, Reverse: rev,
		Range: rng, RangeType: rangeType, Body: body,
	}
}

// parseDiscreteRange parses either an explicit Low..High range or a bare
// subtype mark standing for its own 'Range (e.g. `for I in Index loop`),
// returning exactly one of (range, nil) or (nil, typeMark).
func (p *Parser) parseDiscreteRange() (*ast.RangeExpr, ast.Expression) {
	start := p.parseExpression(lowest + 1)
	if p.curIs(token.DOTDOT) {
		tok := p.cur
		p.advance()
		high := p.parseExpression(lowest + 1)
		return &ast.RangeExpr{Token: tok, Low: start, High: high}, nil
	}
	return nil, start
}

func (p *Parser) parseBasicLoop(label string) ast.Statement {
	tok := p.cur
	p.advance() // 'loop'
	body := p.parseStatements()
	p.expect(token.END)
	p.expect(token.LOOP)
	p.expect(token.SEMICOLON)
	return &ast.LoopStmt{Token: tok, Kind: ast.LoopBasic, Label: label, Body: body}
}

func (p *Parser) parseDeclareBlock() ast.Statement {
	tok := p.cur
	p.advance() // 'declare'
	b := &ast.Block{Token: tok}
	b.Declarations = p.parseDeclarativePart(token.BEGIN)
	p.expect(token.BEGIN)
	b.Statements, b.Handlers = p.parseStatementsAndHandlers()
	p.expect(token.END)
	p.expect(token.SEMICOLON)
	return b
}

func (p *Parser) parseBareBlock() ast.Statement {
	tok := p.cur
	p.advance() // 'begin'
	b := &ast.Block{Token: tok}
	b.Statements, b.Handlers = p.parseStatementsAndHandlers()
	p.expect(token.END)
	p.expect(token.SEMICOLON)
	return b
}

func (p *Parser) parseExitStmt() ast.Statement {
	tok := p.cur
	p.advance() // 'exit'
	s := &ast.ExitStmt{Token: tok}
	if p.curIs(token.IDENT) {
		s.Label = p.expectIdentName()
	}
	if p.curIs(token.WHEN) {
		p.advance()
		s.Cond = p.parseExpression(lowest)
	}
	p.expect(token.SEMICOLON)
	return s
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.cur
	p.advance() // 'return'
	s := &ast.ReturnStmt{Token: tok}
	if !p.curIs(token.SEMICOLON) {
		s.Value = p.parseExpression(lowest)
	}
	p.expect(token.SEMICOLON)
	return s
}

func (p *Parser) parseRaiseStmt() ast.Statement {
	tok := p.cur
	p.advance() // 'raise'
	s := &ast.RaiseStmt{Token: tok}
	if !p.curIs(token.SEMICOLON) {
		s.Name = p.parseExpression(lowest)
	}
	p.expect(token.SEMICOLON)
	return s
}
