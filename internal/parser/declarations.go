package parser

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/token"
)

// parseDeclarativePart parses zero or more declarations until one of the
// given terminator kinds (typically BEGIN or END) is reached.
func (p *Parser) parseDeclarativePart(terminators ...token.Kind) []ast.Declaration {
	var decls []ast.Declaration
	for !p.atAny(terminators...) && !p.curIs(token.EOF) {
		before := p.cur
		d := p.parseDeclaration()
		if d != nil {
			decls = append(decls, d)
		}
		if p.cur == before {
			// No progress was made (a malformed declaration); skip the
			// offending token so the parser cannot loop forever.
			p.advance()
		}
	}
	return decls
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.curIs(k) {
			return true
		}
	}
	return false
}

func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.cur.Kind {
	case token.TYPE:
		return p.parseTypeDecl()
	case token.SUBTYPE:
		return p.parseSubtypeDecl()
	case token.PRAGMA:
		return p.parsePragma()
	case token.PACKAGE:
		p.advance()
		if p.curIs(token.BODY) {
			p.advance()
			return p.parsePackageBody()
		}
		return p.parsePackageSpecAfterKeyword(nil)
	case token.PROCEDURE, token.FUNCTION:
		return p.parseSubprogramDeclOrBody(nil)
	case token.GENERIC:
		generic := p.parseGenericFormalPart()
		switch p.cur.Kind {
		case token.PACKAGE:
			p.advance()
			return p.parsePackageSpecAfterKeyword(generic)
		case token.PROCEDURE, token.FUNCTION:
			return p.parseSubprogramDeclOrBody(generic)
		default:
			p.errorf(p.cur.Pos, "expected package or subprogram after generic formal part")
			return nil
		}
	case token.IDENT:
		return p.parseIdentStartingDecl()
	default:
		p.errorf(p.cur.Pos, "unexpected token %s in declarative part", p.cur)
		p.skipTo(token.SEMICOLON)
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
		return nil
	}
}

// parseIdentStartingDecl handles the declaration forms that begin with an
// identifier list: object/number/exception declarations, renamings, and
// generic instantiations (Name : ... or Name is new Generic(...)).
func (p *Parser) parseIdentStartingDecl() ast.Declaration {
	tok := p.cur
	names := p.parseIdentList()

	switch {
	case p.curIs(token.COLON):
		p.advance()
		return p.parseObjectOrNumberOrRenaming(tok, names)
	case p.curIs(token.IS) && len(names) == 1:
		// Name is new Generic(...); — covered by generic instantiation
		// when the following keyword confirms it.
		p.advance()
		return p.parseGenericInstantiationTail(tok, names[0])
	default:
		p.errorf(p.cur.Pos, "expected ':' after identifier list, found %s", p.cur)
		p.skipTo(token.SEMICOLON)
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
		return nil
	}
}

func (p *Parser) parseObjectOrNumberOrRenaming(tok token.Token, names []string) ast.Declaration {
	if p.curIs(token.EXCEPTION) {
		p.advance()
		p.expect(token.SEMICOLON)
		return &ast.ExceptionDecl{Token: tok, Names: names}
	}

	constant := false
	if p.curIs(token.CONSTANT) {
		constant = true
		p.advance()
		if p.curIs(token.ASSIGN) {
			p.advance()
			value := p.parseExpression(lowest)
			p.expect(token.SEMICOLON)
			return &ast.NumberDecl{Token: tok, Names: names, Value: value}
		}
	}

	subtypeInd := p.parseSubtypeIndication()

	if p.curIs(token.RENAMES) {
		p.advance()
		renamed := p.parseExpression(lowest)
		p.expect(token.SEMICOLON)
		return &ast.RenamingDecl{Token: tok, Name: names[0], TypeMark: subtypeInd.TypeMark, Renamed: renamed}
	}

	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression(lowest)
	}
	p.expect(token.SEMICOLON)
	return &ast.ObjectDecl{Token: tok, Names: names, Constant: constant, SubtypeInd: subtypeInd, Init: init}
}

func (p *Parser) parseGenericInstantiationTail(tok token.Token, name string) ast.Declaration {
	p.expect(token.NEW)
	generic := p.expectIdentName()
	var actuals []ast.Expression
	var named []ast.NamedArg
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			if p.curIs(token.IDENT) && p.peekIs(token.ARROW) {
				n := p.expectIdentName()
				p.advance()
				named = append(named, ast.NamedArg{Name: n, Expr: p.parseExpression(lowest)})
			} else {
				actuals = append(actuals, p.parseExpression(lowest))
			}
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	p.expect(token.SEMICOLON)
	return &ast.GenericInstantiation{
		Token: tok, Name: name, Generic: generic, Actuals: actuals, NamedArgs: named,
		Kind: ast.InstantiatesPackage,
	}
}

func (p *Parser) parseSubtypeIndication() *ast.SubtypeIndication {
	tok := p.cur
	typeMark := p.parseTypeMark()
	si := &ast.SubtypeIndication{Token: tok, TypeMark: typeMark}
	if p.curIs(token.RANGE) {
		p.advance()
		si.Range = p.parseRangeExpr()
	} else if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			si.IndexConstraints = append(si.IndexConstraints, p.parseChoice())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	return si
}

// parseTypeMark parses a (possibly dotted) type name, without consuming
// any following range/index constraint.
func (p *Parser) parseTypeMark() ast.Expression {
	tok := p.cur
	name := p.expectIdentName()
	var expr ast.Expression = p.arena.NewValue(ast.Identifier{Token: tok, Name: name})
	for p.curIs(token.DOT) {
		dotTok := p.cur
		p.advance()
		field := p.expectIdentName()
		expr = &ast.SelectedComponent{Token: dotTok, Prefix: expr, Name: field}
	}
	return expr
}

func (p *Parser) parseRangeExpr() *ast.RangeExpr {
	low := p.parseExpression(lowest + 1)
	tok := p.expect(token.DOTDOT)
	high := p.parseExpression(lowest + 1)
	return &ast.RangeExpr{Token: tok, Low: low, High: high}
}

func (p *Parser) parseTypeDecl() ast.Declaration {
	tok := p.cur
	p.advance() // 'type'
	name := p.expectIdentName()
	p.expect(token.IS)
	def := p.parseTypeDef()
	p.expect(token.SEMICOLON)
	return &ast.TypeDecl{Token: tok, Name: name, Def: def}
}

func (p *Parser) parseSubtypeDecl() ast.Declaration {
	tok := p.cur
	p.advance() // 'subtype'
	name := p.expectIdentName()
	p.expect(token.IS)
	si := p.parseSubtypeIndication()
	p.expect(token.SEMICOLON)
	return &ast.SubtypeDecl{Token: tok, Name: name, SubtypeInd: si}
}

func (p *Parser) parsePragma() ast.Declaration {
	tok := p.cur
	p.advance() // 'pragma'
	name := p.expectIdentName()
	var args []ast.Expression
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			args = append(args, p.parseExpression(lowest))
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	p.expect(token.SEMICOLON)
	return &ast.Pragma{Token: tok, Name: name, Args: args}
}

func (p *Parser) parseSubprogramSpec() *ast.SubprogramSpec {
	tok := p.cur
	isFunc := p.curIs(token.FUNCTION)
	p.advance() // 'procedure' or 'function'
	name := p.expectIdentName()
	spec := &ast.SubprogramSpec{Token: tok, Name: name, IsFunction: isFunc}
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			spec.Params = append(spec.Params, p.parseParam())
			if p.curIs(token.SEMICOLON) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	if isFunc {
		p.expect(token.RETURN)
		spec.ReturnType = p.parseTypeMark()
	}
	return spec
}

func (p *Parser) parseParam() ast.Param {
	names := p.parseIdentList()
	p.expect(token.COLON)
	mode := p.parseMode()
	typeMark := p.parseTypeMark()
	var def ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		def = p.parseExpression(lowest)
	}
	return ast.Param{Names: names, Mode: mode, TypeMark: typeMark, Default: def}
}

// parseSubprogramDeclOrBody parses a subprogram starting at 'procedure'
// or 'function': either a bare declaration (ending in ';') or a full
// body (continuing with local declarations, 'begin', statements, 'end').
func (p *Parser) parseSubprogramDeclOrBody(generic *ast.GenericFormalPart) ast.Declaration {
	spec := p.parseSubprogramSpec()
	if p.curIs(token.SEMICOLON) {
		p.advance()
		return &ast.SubprogramDecl{Spec: spec, Generic: generic}
	}
	if p.curIs(token.IS) {
		p.advance()
		if p.curIs(token.NEW) {
			// a subprogram instantiation: procedure Name(...) is new Generic [(Actuals)];
			p.advance()
			genName := p.expectIdentName()
			kind := ast.InstantiatesProcedure
			if spec.IsFunction {
				kind = ast.InstantiatesFunction
			}
			inst := &ast.GenericInstantiation{Token: spec.Token, Name: spec.Name, Generic: genName, Kind: kind}
			if p.curIs(token.LPAREN) {
				p.advance()
				for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
					if p.curIs(token.IDENT) && p.peekIs(token.ARROW) {
						n := p.expectIdentName()
						p.advance()
						inst.NamedArgs = append(inst.NamedArgs, ast.NamedArg{Name: n, Expr: p.parseExpression(lowest)})
					} else {
						inst.Actuals = append(inst.Actuals, p.parseExpression(lowest))
					}
					if p.curIs(token.COMMA) {
						p.advance()
						continue
					}
					break
				}
				p.expect(token.RPAREN)
			}
			p.expect(token.SEMICOLON)
			return inst
		}
		body := &ast.SubprogramBody{Spec: spec, Generic: generic}
		body.Declarations = p.parseDeclarativePart(token.BEGIN)
		p.expect(token.BEGIN)
		body.Statements, body.Handlers = p.parseStatementsAndHandlers()
		p.expect(token.END)
		if p.curIs(token.IDENT) {
			p.advance()
		}
		p.expect(token.SEMICOLON)
		return body
	}
	p.errorf(p.cur.Pos, "expected ';' or 'is' after subprogram specification, found %s", p.cur)
	return &ast.SubprogramDecl{Spec: spec, Generic: generic}
}

func (p *Parser) parsePackage(generic *ast.GenericFormalPart) ast.Declaration {
	p.advance() // 'package'
	if p.curIs(token.BODY) {
		p.advance()
		return p.parsePackageBody()
	}
	return p.parsePackageSpecAfterKeyword(generic)
}

func (p *Parser) parsePackageSpecAfterKeyword(generic *ast.GenericFormalPart) ast.Declaration {
	tok := p.cur
	name := p.expectIdentName()
	p.expect(token.IS)
	spec := &ast.PackageSpec{Token: tok, Name: name, Generic: generic}
	spec.Declarations = p.parseDeclarativePart(token.PRIVATE, token.END)
	if p.curIs(token.PRIVATE) {
		p.advance()
		spec.Private = p.parseDeclarativePart(token.END)
	}
	p.expect(token.END)
	if p.curIs(token.IDENT) {
		p.advance()
	}
	p.expect(token.SEMICOLON)
	return spec
}

func (p *Parser) parsePackageBody() ast.Declaration {
	tok := p.cur
	name := p.expectIdentName()
	p.expect(token.IS)
	body := &ast.PackageBody{Token: tok, Name: name}
	body.Declarations = p.parseDeclarativePart(token.BEGIN, token.END)
	if p.curIs(token.BEGIN) {
		p.advance()
		body.Statements, body.Handlers = p.parseStatementsAndHandlers()
	}
	p.expect(token.END)
	if p.curIs(token.IDENT) {
		p.advance()
	}
	p.expect(token.SEMICOLON)
	return body
}
