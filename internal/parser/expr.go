package parser

import (
	"micaup/internal/ast"
	"micaup/internal/diag"
	"micaup/internal/source"
	"micaup/internal/token"
)

// parseExpr разбирает постфиксное выражение: первичный операнд плюс
// цепочка суффиксов `.name`, `[index]`, `(args)`.
func (p *Parser) parseExpr() ast.Expr {
	x := p.parsePrimary()
	if x == nil {
		return nil
	}

	for {
		switch p.cur().Kind {
		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			if !ok {
				return x
			}
			x = &ast.MemberExpr{
				X:        x,
				Name:     nameTok.Text,
				NameSpan: nameTok.Span,
				Span:     exprSpan(x).Cover(nameTok.Span),
			}
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			end := p.cur().Span.End
			if rb, ok := p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' after index"); ok {
				end = rb.Span.End
			}
			span := exprSpan(x)
			span.End = end
			x = &ast.IndexExpr{X: x, Index: idx, Span: span}
		case token.LParen:
			p.advance()
			call := &ast.CallExpr{Fun: x}
			for !p.at(token.RParen) && !p.atEOF() {
				arg := p.parseExpr()
				if arg == nil {
					break
				}
				call.Args = append(call.Args, arg)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			end := p.cur().Span.End
			if rp, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after arguments"); ok {
				end = rp.Span.End
			}
			span := exprSpan(x)
			span.End = end
			call.Span = span
			x = call
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur().Kind {
	case token.Ident:
		tok := p.advance()
		return &ast.Ident{Name: tok.Text, Span: tok.Span}
	case token.IntLit:
		tok := p.advance()
		return &ast.IntLit{Value: tok.Text, Span: tok.Span}
	case token.StringLit:
		tok := p.advance()
		return &ast.StringLit{Value: tok.Text, Span: tok.Span}
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen, diag.SynExpectRParen, "expected ')'")
		return x
	default:
		return nil
	}
}

func exprSpan(x ast.Expr) source.Span {
	switch e := x.(type) {
	case *ast.Ident:
		return e.Span
	case *ast.MemberExpr:
		return e.Span
	case *ast.IndexExpr:
		return e.Span
	case *ast.CallExpr:
		return e.Span
	case *ast.IntLit:
		return e.Span
	case *ast.StringLit:
		return e.Span
	}
	return source.Span{}
}
