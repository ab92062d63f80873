package lexer

import (
	"micaup/internal/diag"
	"micaup/internal/token"
)

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	// цифры, прилипшие к иденту ("1abc") — лексическая ошибка
	if !lx.cursor.EOF() && isIdentStartByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
	}
	return token.Token{
		Kind: token.IntLit,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '"' {
			lx.cursor.Bump()
			return token.Token{
				Kind: token.StringLit,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.TextFrom(start),
			}
		}
		if ch == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()
	lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case '=':
		kind = token.Assign
	case '.':
		kind = token.Dot
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
	}
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	}
}
