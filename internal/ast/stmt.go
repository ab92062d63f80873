package ast

import (
	"micaup/internal/source"
)

// Stmt is a statement inside a function body.
type Stmt interface {
	isStmt()
}

// LocalDecl declares a local variable, optionally with an initializer.
type LocalDecl struct {
	Type     TypeExpr
	Name     string
	NameSpan source.Span
	Value    Expr // может быть nil
	Span     source.Span
}

func (*LocalDecl) isStmt() {}

// AssignStmt is `lhs = rhs;`. Span covers the whole statement including
// the terminating semicolon.
type AssignStmt struct {
	LHS  Expr
	RHS  Expr
	Span source.Span
}

func (*AssignStmt) isStmt() {}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	X    Expr
	Span source.Span
}

func (*ExprStmt) isStmt() {}

// ReturnStmt is `return;` or `return expr;`.
type ReturnStmt struct {
	X    Expr // может быть nil
	Span source.Span
}

func (*ReturnStmt) isStmt() {}
