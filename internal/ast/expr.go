package ast

import (
	"micaup/internal/source"
)

// Expr is an expression node.
type Expr interface {
	isExpr()
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Span source.Span
}

func (*Ident) isExpr() {}

// MemberExpr is `x.name`.
type MemberExpr struct {
	X        Expr
	Name     string
	NameSpan source.Span
	Span     source.Span
}

func (*MemberExpr) isExpr() {}

// IndexExpr is `x[index]`.
type IndexExpr struct {
	X     Expr
	Index Expr
	Span  source.Span
}

func (*IndexExpr) isExpr() {}

// CallExpr is `fun(args...)`.
type CallExpr struct {
	Fun  Expr
	Args []Expr
	Span source.Span
}

func (*CallExpr) isExpr() {}

// IntLit is an integer literal.
type IntLit struct {
	Value string
	Span  source.Span
}

func (*IntLit) isExpr() {}

// StringLit is a string literal including quotes.
type StringLit struct {
	Value string
	Span  source.Span
}

func (*StringLit) isExpr() {}
