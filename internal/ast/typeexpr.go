package ast

import (
	"micaup/internal/source"
)

// TypeExpr is a type annotation in source.
type TypeExpr interface {
	isType()
	// TypeString returns the canonical spelling used for signature
	// comparison in the semantic layer.
	TypeString() string
}

// NamedType is a plain type name (uint, bool, address, or a contract name).
type NamedType struct {
	Name string
	Span source.Span
}

func (*NamedType) isType() {}

func (t *NamedType) TypeString() string { return t.Name }

// ArrayType is T[] (resizable) or T[N] (fixed length).
type ArrayType struct {
	Elem  TypeExpr
	Fixed bool
	Len   string // текст литерала длины, только для Fixed
	Span  source.Span
}

func (*ArrayType) isType() {}

func (t *ArrayType) TypeString() string {
	if t.Fixed {
		return t.Elem.TypeString() + "[" + t.Len + "]"
	}
	return t.Elem.TypeString() + "[]"
}
