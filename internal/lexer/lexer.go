package lexer

import (
	"micaup/internal/diag"
	"micaup/internal/source"
	"micaup/internal/token"
)

// Lexer produces Mica tokens from one source file.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
	look     *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
		look:     nil,
	}
}

// File returns the file the lexer reads from.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// skipTrivia съедает пробелы и комментарии (// до конца строки, /* ... */).
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/':
			next, ok := lx.cursor.PeekAt(1)
			if !ok {
				return
			}
			switch next {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
			case '*':
				start := lx.cursor.Off
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed := false
				for !lx.cursor.EOF() {
					if lx.cursor.Peek() == '*' {
						if n, ok := lx.cursor.PeekAt(1); ok && n == '/' {
							lx.cursor.Bump()
							lx.cursor.Bump()
							closed = true
							break
						}
					}
					lx.cursor.Bump()
				}
				if !closed {
					diag.ReportError(lx.reporter, diag.LexUnterminatedComment,
						lx.cursor.SpanFrom(start), "unterminated block comment")
				}
			default:
				return
			}
		default:
			return
		}
	}
}
