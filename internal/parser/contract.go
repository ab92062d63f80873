package parser

import (
	"micaup/internal/ast"
	"micaup/internal/diag"
	"micaup/internal/source"
	"micaup/internal/token"
)

func (p *Parser) parseTopLevel(f *ast.File) {
	for !p.atEOF() {
		switch p.cur().Kind {
		case token.KwAbstract, token.KwContract, token.KwInterface:
			if decl := p.parseContract(); decl != nil {
				f.Contracts = append(f.Contracts, decl)
			}
		default:
			p.report(diag.SynUnexpectedTopLevel, p.cur().Span,
				"expected contract or interface declaration")
			p.advance()
			p.syncTo(token.KwAbstract, token.KwContract, token.KwInterface)
		}
	}
}

func (p *Parser) parseContract() *ast.ContractDecl {
	decl := &ast.ContractDecl{}
	start := p.cur().Span.Start

	if p.at(token.KwAbstract) {
		tok := p.advance()
		decl.Abstract = true
		decl.AbstractSpan = tok.Span
	}

	switch p.cur().Kind {
	case token.KwContract:
		decl.Kind = ast.KindContract
	case token.KwInterface:
		decl.Kind = ast.KindInterface
	default:
		p.report(diag.SynUnexpectedToken, p.cur().Span,
			"expected 'contract' or 'interface'")
		p.syncTo(token.KwContract, token.KwInterface)
		if p.atEOF() {
			return nil
		}
		if p.at(token.KwInterface) {
			decl.Kind = ast.KindInterface
		}
	}
	decl.KeywordSpan = p.advance().Span

	nameTok, ok := p.expect(token.Ident, diag.SynExpectContractName, "expected contract name")
	if ok {
		decl.Name = nameTok.Text
		decl.NameSpan = nameTok.Span
	}

	if p.at(token.KwIs) {
		p.advance()
		for {
			parentTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parent contract name")
			if !ok {
				break
			}
			decl.Parents = append(decl.Parents, &ast.Ident{Name: parentTok.Text, Span: parentTok.Span})
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	lbrace, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' to open contract body")
	if !ok {
		p.syncTo(token.LBrace, token.KwAbstract, token.KwContract, token.KwInterface)
		if !p.at(token.LBrace) {
			decl.Span = source.Span{File: p.file.ID, Start: start, End: p.cur().Span.Start}
			return decl
		}
		lbrace = p.advance()
	}
	bodyStart := lbrace.Span.Start

	for !p.atEOF() && !p.at(token.RBrace) {
		if member := p.parseMember(); member != nil {
			decl.Members = append(decl.Members, member)
		}
	}

	end := p.cur().Span.End
	if rbrace, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close contract body"); ok {
		end = rbrace.Span.End
	}
	decl.BodySpan = source.Span{File: p.file.ID, Start: bodyStart, End: end}
	decl.Span = source.Span{File: p.file.ID, Start: start, End: end}
	return decl
}

func (p *Parser) parseMember() ast.Member {
	switch p.cur().Kind {
	case token.KwFunction:
		return p.parseFunction()
	case token.Ident:
		return p.parseField()
	default:
		p.report(diag.SynUnexpectedToken, p.cur().Span,
			"expected function or state variable declaration")
		p.advance()
		p.syncTo(token.KwFunction, token.Ident, token.RBrace)
		return nil
	}
}

func (p *Parser) parseField() ast.Member {
	start := p.cur().Span.Start
	typ := p.parseType()
	if typ == nil {
		p.syncTo(token.Semicolon, token.RBrace)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return nil
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectMemberName, "expected state variable name")
	if !ok {
		p.syncTo(token.Semicolon, token.RBrace)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return nil
	}

	end := p.cur().Span.End
	if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after state variable"); ok {
		end = semi.Span.End
	}
	return &ast.FieldDecl{
		Type:     typ,
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Span:     source.Span{File: p.file.ID, Start: start, End: end},
	}
}

func (p *Parser) parseFunction() ast.Member {
	fn := &ast.FunctionDecl{}
	kwTok := p.advance() // 'function'
	fn.KeywordSpan = kwTok.Span
	start := kwTok.Span.Start

	nameTok, ok := p.expect(token.Ident, diag.SynExpectMemberName, "expected function name")
	if ok {
		fn.Name = nameTok.Text
		fn.NameSpan = nameTok.Span
	}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); ok {
		p.parseParams(fn)
	}

	// модификаторы в любом порядке: видимость, virtual, override
	modifiers := true
	for modifiers {
		cur := p.cur()
		switch {
		case cur.Kind.IsVisibility():
			fn.Visibility = visibilityFor(cur.Kind)
			fn.VisibilitySpan = cur.Span
			p.advance()
		case cur.Kind == token.KwVirtual:
			fn.Virtual = true
			fn.VirtualSpan = cur.Span
			p.advance()
		case cur.Kind == token.KwOverride:
			fn.Override = true
			fn.OverrideSpan = cur.Span
			p.advance()
		default:
			modifiers = false
		}
	}

	if p.at(token.KwReturns) {
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'returns'"); ok {
			for !p.at(token.RParen) && !p.atEOF() {
				typ := p.parseType()
				if typ == nil {
					break
				}
				fn.Returns = append(fn.Returns, typ)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after return types")
		}
	}

	headerEnd := p.prevEnd()
	end := headerEnd

	switch p.cur().Kind {
	case token.Semicolon:
		semi := p.advance()
		end = semi.Span.End
		headerEnd = semi.Span.End
	case token.LBrace:
		fn.HasBody = true
		fn.Body, end = p.parseBlock()
	default:
		p.report(diag.SynExpectSemicolon, p.cur().Span,
			"expected ';' or function body")
		p.syncTo(token.Semicolon, token.LBrace, token.RBrace)
		switch p.cur().Kind {
		case token.Semicolon:
			end = p.advance().Span.End
		case token.LBrace:
			fn.HasBody = true
			fn.Body, end = p.parseBlock()
		}
	}

	fn.HeaderSpan = source.Span{File: p.file.ID, Start: start, End: headerEnd}
	fn.Span = source.Span{File: p.file.ID, Start: start, End: end}
	return fn
}

func (p *Parser) parseParams(fn *ast.FunctionDecl) {
	for !p.at(token.RParen) && !p.atEOF() {
		paramStart := p.cur().Span.Start
		typ := p.parseType()
		if typ == nil {
			p.syncTo(token.Comma, token.RParen)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		param := &ast.Param{Type: typ}
		if p.at(token.Ident) {
			nameTok := p.advance()
			param.Name = nameTok.Text
			param.NameSpan = nameTok.Span
		}
		param.Span = source.Span{File: p.file.ID, Start: paramStart, End: p.prevEnd()}
		fn.Params = append(fn.Params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after parameters")
}

// parseType разбирает имя типа с необязательным массивным суффиксом.
// Возвращает nil, если текущий токен не начинает тип.
func (p *Parser) parseType() ast.TypeExpr {
	if !p.at(token.Ident) {
		p.report(diag.SynExpectType, p.cur().Span, "expected type")
		return nil
	}
	nameTok := p.advance()
	var typ ast.TypeExpr = &ast.NamedType{Name: nameTok.Text, Span: nameTok.Span}

	for p.at(token.LBracket) {
		lb := p.advance()
		arr := &ast.ArrayType{Elem: typ}
		if p.at(token.IntLit) {
			arr.Fixed = true
			arr.Len = p.advance().Text
		}
		end := p.cur().Span.End
		if rb, ok := p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' in array type"); ok {
			end = rb.Span.End
		}
		arr.Span = source.Span{File: p.file.ID, Start: lb.Span.Start, End: end}.Cover(nameTok.Span)
		typ = arr
	}
	return typ
}

// prevEnd returns the end offset of the last consumed token.
func (p *Parser) prevEnd() uint32 {
	if p.pos == 0 {
		return p.cur().Span.Start
	}
	return p.toks[p.pos-1].Span.End
}

func visibilityFor(kind token.Kind) ast.Visibility {
	switch kind {
	case token.KwPublic:
		return ast.VisibilityPublic
	case token.KwPrivate:
		return ast.VisibilityPrivate
	case token.KwInternal:
		return ast.VisibilityInternal
	case token.KwExternal:
		return ast.VisibilityExternal
	default:
		return ast.VisibilityNone
	}
}
