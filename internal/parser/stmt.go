package parser

import (
	"micaup/internal/ast"
	"micaup/internal/diag"
	"micaup/internal/source"
	"micaup/internal/token"
)

// parseBlock разбирает `{ stmt* }` и возвращает statements вместе с
// конечным смещением закрывающей скобки.
func (p *Parser) parseBlock() ([]ast.Stmt, uint32) {
	lbrace := p.advance() // '{'
	var stmts []ast.Stmt

	for !p.atEOF() && !p.at(token.RBrace) {
		if stmt := p.parseStmt(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	end := lbrace.Span.End
	if rbrace, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close function body"); ok {
		end = rbrace.Span.End
	} else {
		end = p.prevEnd()
	}
	return stmts, end
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.at(token.KwReturn):
		return p.parseReturn()
	case p.startsLocalDecl():
		return p.parseLocalDecl()
	default:
		return p.parseSimpleStmt()
	}
}

// startsLocalDecl различает объявление локальной переменной и выражение
// в начале statement. Объявление начинается с типа, за которым следует имя:
//
//	Ident Ident            uint x ...
//	Ident [ ] Ident        uint[] xs ...
//	Ident [ IntLit ] Ident uint[3] xs ...
//
// Всё остальное (например `xs[0] = ...`) — выражение.
func (p *Parser) startsLocalDecl() bool {
	if !p.at(token.Ident) {
		return false
	}
	if p.peek(1).Kind == token.Ident {
		return true
	}
	if p.peek(1).Kind != token.LBracket {
		return false
	}
	switch p.peek(2).Kind {
	case token.RBracket:
		return p.peek(3).Kind == token.Ident
	case token.IntLit:
		return p.peek(3).Kind == token.RBracket && p.peek(4).Kind == token.Ident
	}
	return false
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.advance() // 'return'
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		stmt.X = p.parseExpr()
	}
	end := p.prevEnd()
	if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return"); ok {
		end = semi.Span.End
	} else {
		p.syncStmt()
	}
	stmt.Span = source.Span{File: p.file.ID, Start: kw.Span.Start, End: end}
	return stmt
}

func (p *Parser) parseLocalDecl() ast.Stmt {
	start := p.cur().Span.Start
	typ := p.parseType()
	if typ == nil {
		p.syncStmt()
		return nil
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	if !ok {
		p.syncStmt()
		return nil
	}

	decl := &ast.LocalDecl{
		Type:     typ,
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
	}
	if p.at(token.Assign) {
		p.advance()
		decl.Value = p.parseExpr()
	}

	end := p.prevEnd()
	if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); ok {
		end = semi.Span.End
	} else {
		p.syncStmt()
	}
	decl.Span = source.Span{File: p.file.ID, Start: start, End: end}
	return decl
}

// parseSimpleStmt разбирает выражение с необязательным присваиванием.
// Span присваивания включает завершающую точку с запятой.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	start := p.cur().Span.Start
	lhs := p.parseExpr()
	if lhs == nil {
		p.report(diag.SynUnexpectedToken, p.cur().Span, "expected statement")
		p.advance()
		p.syncStmt()
		return nil
	}

	if p.at(token.Assign) {
		p.advance()
		rhs := p.parseExpr()
		end := p.prevEnd()
		if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment"); ok {
			end = semi.Span.End
		} else {
			p.syncStmt()
		}
		return &ast.AssignStmt{
			LHS:  lhs,
			RHS:  rhs,
			Span: source.Span{File: p.file.ID, Start: start, End: end},
		}
	}

	end := p.prevEnd()
	if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); ok {
		end = semi.Span.End
	} else {
		p.syncStmt()
	}
	return &ast.ExprStmt{
		X:    lhs,
		Span: source.Span{File: p.file.ID, Start: start, End: end},
	}
}

// syncStmt пропускает токены до границы statement и съедает точку с запятой.
func (p *Parser) syncStmt() {
	p.syncTo(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
