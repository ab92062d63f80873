package parser

import (
	"micaup/internal/ast"
	"micaup/internal/diag"
	"micaup/internal/lexer"
	"micaup/internal/source"
	"micaup/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	// ErrorCount is the number of syntax errors reported during the parse.
	// A non-zero count means the tree is structurally unreliable.
	ErrorCount uint
}

// Parser — состояние парсера на один файл.
// Токены буферизуются целиком: грамматике нужен lookahead > 1
// (различение типов и выражений в начале statement).
type Parser struct {
	toks []token.Token
	pos  int
	file *source.File
	opts Options
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		file: lx.File(),
		opts: opts,
	}
	for {
		tok := lx.Next()
		p.toks = append(p.toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	f := &ast.File{
		FileID: p.file.ID,
		Path:   p.file.Path,
		Span:   source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))},
	}
	p.parseTopLevel(f)

	return Result{File: f, ErrorCount: p.opts.CurrentErrors}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

// peek возвращает токен на расстоянии n от текущего (peek(0) == cur()).
func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[idx]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if !p.atEOF() {
		p.pos++
	}
	return tok
}

// expect съедает токен требуемого вида или сообщает об ошибке, не сдвигаясь.
func (p *Parser) expect(kind token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.report(code, p.cur().Span, msg)
	return p.cur(), false
}

func (p *Parser) report(code diag.Code, span source.Span, msg string) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	diag.ReportError(p.opts.Reporter, code, span, msg)
}

// syncTo пропускает токены до одного из указанных видов (или EOF).
// Сам стоп-токен не съедается.
func (p *Parser) syncTo(kinds ...token.Kind) {
	for !p.atEOF() {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.advance()
	}
}
