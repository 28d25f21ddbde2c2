package parser

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/token"
)

// parseTypeDef parses the definition following `type Name is`.
func (p *Parser) parseTypeDef() ast.TypeDef {
	switch p.cur.Kind {
	case token.NEW:
		return p.parseDerivedTypeDef()
	case token.RANGE:
		tok := p.cur
		p.advance()
		return &ast.RangeTypeDef{Token: tok, Range: p.parseRangeExpr()}
	case token.MOD:
		tok := p.cur
		p.advance()
		return &ast.ModularTypeDef{Token: tok, Modulus: p.parseExpression(lowest)}
	case token.DIGITS:
		return p.parseFloatTypeDef()
	case token.DELTA:
		return p.parseFixedTypeDef()
	case token.LPAREN:
		return p.parseEnumTypeDef()
	case token.ARRAY:
		return p.parseArrayTypeDef()
	case token.RECORD:
		return p.parseRecordTypeDef()
	case token.ACCESS:
		return p.parseAccessTypeDef()
	default:
		p.errorf(p.cur.Pos, "expected a type definition, found %s", p.cur)
		return nil
	}
}

func (p *Parser) parseDerivedTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // 'new'
	parent := p.parseTypeMark()
	d := &ast.DerivedTypeDef{Token: tok, Parent: parent}
	if p.curIs(token.RANGE) {
		p.advance()
		d.Range = p.parseRangeExpr()
	}
	return d
}

func (p *Parser) parseFloatTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // 'digits'
	prec := p.parseExpression(lowest)
	d := &ast.FloatTypeDef{Token: tok, Precision: prec}
	if p.curIs(token.RANGE) {
		p.advance()
		d.Range = p.parseRangeExpr()
	}
	return d
}

func (p *Parser) parseFixedTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // 'delta'
	delta := p.parseExpression(lowest)
	d := &ast.FixedTypeDef{Token: tok, Delta: delta}
	if p.curIs(token.RANGE) {
		p.advance()
		d.Range = p.parseRangeExpr()
	}
	return d
}

func (p *Parser) parseEnumTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // '('
	d := &ast.EnumTypeDef{Token: tok}
	for {
		switch p.cur.Kind {
		case token.IDENT:
			d.Literals = append(d.Literals, p.expectIdentName())
		case token.CHAR:
			d.Literals = append(d.Literals, "'"+string(rune(p.cur.Int))+"'")
			p.advance()
		default:
			p.errorf(p.cur.Pos, "expected an enumeration literal, found %s", p.cur)
			p.advance()
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return d
}

func (p *Parser) parseArrayTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // 'array'
	p.expect(token.LPAREN)
	d := &ast.ArrayTypeDef{Token: tok}
	for {
		typeMark := p.parseExpression(lowest + 1)
		if p.curIs(token.RANGE) {
			p.advance()
			p.expect(token.BOX)
			d.Unconstrained = true
			d.IndexTypes = append(d.IndexTypes, typeMark)
		} else if p.curIs(token.DOTDOT) {
			dotdot := p.cur
			p.advance()
			high := p.parseExpression(lowest + 1)
			d.IndexRanges = append(d.IndexRanges, &ast.RangeExpr{Token: dotdot, Low: typeMark, High: high})
		} else {
			// A bare subtype mark used as an index constraint, e.g.
			// array (Day) of Integer, equivalent to Day'Range.
			d.IndexRanges = append(d.IndexRanges, typeMark)
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.OF)
	d.Component = p.parseTypeMark()
	return d
}

func (p *Parser) parseRecordTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // 'record'
	d := &ast.RecordTypeDef{Token: tok}
	for !p.curIs(token.END) && !p.curIs(token.EOF) {
		names := p.parseIdentList()
		p.expect(token.COLON)
		si := p.parseSubtypeIndication()
		var def ast.Expression
		if p.curIs(token.ASSIGN) {
			p.advance()
			def = p.parseExpression(lowest)
		}
		p.expect(token.SEMICOLON)
		d.Components = append(d.Components, ast.RecordComponent{Names: names, SubtypeInd: si, Default: def})
	}
	p.expect(token.END)
	p.expect(token.RECORD)
	return d
}

func (p *Parser) parseAccessTypeDef() ast.TypeDef {
	tok := p.cur
	p.advance() // 'access'
	d := &ast.AccessTypeDef{Token: tok}
	if p.curIs(token.CONSTANT) {
		d.Constant = true
		p.advance()
	}
	d.Designated = p.parseTypeMark()
	return d
}
