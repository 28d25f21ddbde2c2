package parser

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/token"
)

// parseExpression implements precedence climbing: it parses one operand
// via parseUnary, then repeatedly folds in infix operators whose
// precedence is at least minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		op, prec, ok := p.peekBinaryOp()
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.cur
		p.advance() // consume operator (possibly two tokens for "not in"/"and then"/"or else")
		if op == "not in" || op == "and then" || op == "or else" {
			p.advance()
		}

		nextMinPrec := prec + 1
		if op == "**" {
			nextMinPrec = prec // ** is right-associative
		}
		right := p.parseExpression(nextMinPrec)
		left = &ast.BinaryExpr{Token: opTok, Op: op, Left: left, Right: right}
	}
}

// peekBinaryOp inspects p.cur to decide whether it starts a binary
// operator, consulting p.peek for the two-keyword forms `and then`,
// `or else`, and `not in`. It consumes nothing; parseExpression consumes
// the operator's one or two tokens once it accepts the operator.
func (p *Parser) peekBinaryOp() (string, int, bool) {
	switch p.cur.Kind {
	case token.AND:
		if p.peekIs(token.THEN) {
			return "and then", logical, true
		}
		return "and", logical, true
	case token.OR:
		if p.peekIs(token.ELSE) {
			return "or else", logical, true
		}
		return "or", logical, true
	case token.XOR:
		return "xor", logical, true
	case token.EQ:
		return "=", relational, true
	case token.NE:
		return "/=", relational, true
	case token.LT:
		return "<", relational, true
	case token.LE:
		return "<=", relational, true
	case token.GT:
		return ">", relational, true
	case token.GE:
		return ">=", relational, true
	case token.IN:
		return "in", relational, true
	case token.NOT:
		if p.peekIs(token.IN) {
			return "not in", relational, true
		}
		return "", 0, false
	case token.PLUS:
		return "+", adding, true
	case token.MINUS:
		return "-", adding, true
	case token.AMPERSAND:
		return "&", adding, true
	case token.STAR:
		return "*", multiplying, true
	case token.SLASH:
		return "/", multiplying, true
	case token.MOD:
		return "mod", multiplying, true
	case token.REM:
		return "rem", multiplying, true
	case token.STARSTAR:
		return "**", highest, true
	default:
		return "", 0, false
	}
}

// parseUnary handles the unary forms (+ - not abs) and defers to
// parsePrimary for everything else, then loops in postfix forms
// (selection, indexing, attributes, qualification).
func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Kind {
	case token.PLUS, token.MINUS:
		tok := p.cur
		op := tok.Literal
		p.advance()
		return &ast.UnaryExpr{Token: tok, Op: op, Right: p.parseExpression(unarySign)}
	case token.NOT:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpr{Token: tok, Op: "not", Right: p.parseExpression(highest)}
	case token.ABS:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpr{Token: tok, Op: "abs", Right: p.parseExpression(highest)}
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

// parsePostfix folds in the left-recursive postfix forms: selection
// (.Name), call/indexing ((Args)), and attributes ('Attr).
func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Kind {
		case token.DOT:
			tok := p.cur
			p.advance()
			var name string
			if p.curIs(token.ALL) {
				// P.all is an explicit access-value dereference, not a
				// field named "all" (which Ada's reserved words forbid).
				name = "all"
				p.advance()
			} else {
				name = p.expectIdentName()
			}
			expr = &ast.SelectedComponent{Token: tok, Prefix: expr, Name: name}
		case token.LPAREN:
			expr = p.parseCallOrIndex(expr)
		case token.TICK:
			expr = p.parseAttributeOrQualified(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallOrIndex(prefix ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // '('
	var args []ast.Expression
	var named []ast.NamedArg
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.IDENT) && p.peekIs(token.ARROW) {
			name := p.expectIdentName()
			p.advance() // '=>'
			named = append(named, ast.NamedArg{Name: name, Expr: p.parseExpression(lowest)})
		} else {
			args = append(args, p.parseExpression(lowest))
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return &ast.IndexedComponent{Token: tok, Prefix: prefix, Args: args, Named: named}
}

// parseAttributeOrQualified handles both T'Attr(Args) and T'(Expr), the
// latter a qualified expression.
func (p *Parser) parseAttributeOrQualified(prefix ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // '\''
	if p.curIs(token.LPAREN) {
		p.advance()
		inner := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return &ast.QualifiedExpr{Token: tok, TypeMark: prefix, Qualified: inner}
	}
	name := p.expectIdentName()
	attr := &ast.AttributeRef{Token: tok, Prefix: prefix, Name: name}
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			attr.Args = append(attr.Args, p.parseExpression(lowest))
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	return attr
}

// parsePrimary parses a single operand: a literal, identifier, allocator,
// or parenthesized expression/aggregate.
func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Kind {
	case token.IDENT:
		name := p.cur.Literal
		tok := p.cur
		p.advance()
		return p.arena.NewValue(ast.Identifier{Token: tok, Name: name})
	case token.INT, token.BASED:
		tok := p.cur
		p.advance()
		return &ast.IntegerLiteral{Token: tok, Value: tok.Int}
	case token.REAL:
		tok := p.cur
		p.advance()
		return &ast.RealLiteral{Token: tok, Value: tok.Float}
	case token.CHAR:
		tok := p.cur
		p.advance()
		return &ast.CharLiteral{Token: tok, Value: rune(tok.Int)}
	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.NULL:
		tok := p.cur
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.NEW:
		return p.parseAllocator()
	case token.LPAREN:
		return p.parseParenOrAggregate()
	default:
		p.errorf(p.cur.Pos, "unexpected token %s in expression", p.cur)
		tok := p.cur
		p.advance()
		return &ast.NullLiteral{Token: tok}
	}
}

func (p *Parser) parseAllocator() ast.Expression {
	tok := p.cur
	p.advance() // 'new'
	typeMark := p.parsePrimary()
	typeMark = p.parsePostfixNoCall(typeMark)
	var init ast.Expression
	if p.curIs(token.TICK) {
		p.advance()
		p.expect(token.LPAREN)
		init = p.parseExpression(lowest)
		p.expect(token.RPAREN)
	}
	return &ast.Allocator{Token: tok, TypeMark: typeMark, Init: init}
}

// parsePostfixNoCall allows dotted type names (Pkg.T) after `new` without
// consuming a following '(' as a call, since that '(' belongs to the
// allocator's qualification, not an index.
func (p *Parser) parsePostfixNoCall(expr ast.Expression) ast.Expression {
	for p.curIs(token.DOT) {
		tok := p.cur
		p.advance()
		name := p.expectIdentName()
		expr = &ast.SelectedComponent{Token: tok, Prefix: expr, Name: name}
	}
	return expr
}

// parseParenOrAggregate disambiguates a parenthesized expression from an
// aggregate by parsing the first element and looking at what follows
// it: a lone expression closed by ')' is a parenthesized expression,
// while a "=>" association or a following ',' makes an aggregate.
func (p *Parser) parseParenOrAggregate() ast.Expression {
	tok := p.cur
	p.advance() // '('

	first := p.parseChoiceOrExpr()

	if p.curIs(token.RPAREN) {
		p.advance()
		if assoc, ok := first.(aggregateAssoc); ok {
			return &ast.Aggregate{Token: tok, Elements: []ast.AggregateChoice{assoc.choice()}}
		}
		return first.(ast.Expression)
	}

	elements := []ast.AggregateChoice{elementOf(first)}
	for p.curIs(token.COMMA) {
		p.advance()
		elements = append(elements, elementOf(p.parseChoiceOrExpr()))
	}
	p.expect(token.RPAREN)
	return &ast.Aggregate{Token: tok, Elements: elements}
}

// choiceOrExprResult is either a plain ast.Expression (positional
// element or a single parenthesized expression) or an aggregateAssoc
// (a choice list already associated with `=>`).
type choiceOrExprResult interface{}

type aggregateAssoc struct {
	choices []ast.Expression
	value   ast.Expression
}

func (a aggregateAssoc) choice() ast.AggregateChoice {
	return ast.AggregateChoice{Choices: a.choices, Value: a.value}
}

func elementOf(r choiceOrExprResult) ast.AggregateChoice {
	if assoc, ok := r.(aggregateAssoc); ok {
		return assoc.choice()
	}
	return ast.AggregateChoice{Value: r.(ast.Expression)}
}

// parseChoiceOrExpr parses one aggregate element, which may be a bare
// expression or a "Choice [| Choice ...] => Expr" association; `others`
// is recognized as a discrete choice here.
func (p *Parser) parseChoiceOrExpr() choiceOrExprResult {
	var choices []ast.Expression
	for {
		choices = append(choices, p.parseChoice())
		if p.curIs(token.BAR) {
			p.advance()
			continue
		}
		break
	}
	if p.curIs(token.ARROW) {
		p.advance()
		value := p.parseExpression(lowest)
		return aggregateAssoc{choices: choices, value: value}
	}
	if len(choices) != 1 {
		p.errorf(p.cur.Pos, "expected '=>' after choice list")
	}
	return choices[0]
}

func (p *Parser) parseChoice() ast.Expression {
	if p.curIs(token.OTHERS) {
		tok := p.cur
		p.advance()
		return &ast.OthersChoice{Token: tok}
	}
	expr := p.parseExpression(lowest)
	if p.curIs(token.DOTDOT) {
		tok := p.cur
		p.advance()
		high := p.parseExpression(lowest)
		return &ast.RangeExpr{Token: tok, Low: expr, High: high}
	}
	return expr
}
