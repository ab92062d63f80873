package ast

import (
	"micaup/internal/source"
)

// ContractKind distinguishes contract and interface declarations.
type ContractKind uint8

const (
	KindContract ContractKind = iota
	KindInterface
)

func (k ContractKind) String() string {
	if k == KindInterface {
		return "interface"
	}
	return "contract"
}

// ContractDecl is a contract or interface declaration.
// KeywordSpan covers the 'contract'/'interface' introducer keyword; Span
// covers the whole declaration including the 'abstract' modifier if present.
type ContractDecl struct {
	Kind         ContractKind
	Abstract     bool
	AbstractSpan source.Span // пустой, если модификатора нет
	KeywordSpan  source.Span
	Name         string
	NameSpan     source.Span
	Parents      []*Ident
	Members      []Member
	BodySpan     source.Span
	Span         source.Span
}

// IsInterface reports whether the declaration is an interface.
func (c *ContractDecl) IsInterface() bool { return c.Kind == KindInterface }

// Functions returns the function members in declaration order.
func (c *ContractDecl) Functions() []*FunctionDecl {
	out := make([]*FunctionDecl, 0, len(c.Members))
	for _, m := range c.Members {
		if fn, ok := m.(*FunctionDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}

// Member is a contract body item.
type Member interface {
	isMember()
}

// Visibility of a function member.
type Visibility uint8

const (
	VisibilityNone Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityInternal
	VisibilityExternal
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	case VisibilityInternal:
		return "internal"
	case VisibilityExternal:
		return "external"
	default:
		return ""
	}
}

// FunctionDecl is a function member. HasBody=false means the function is
// only declared (unimplemented). HeaderSpan covers the signature from the
// 'function' keyword up to (not including) the body, or through the
// terminating ';' for bodiless declarations.
type FunctionDecl struct {
	Name           string
	NameSpan       source.Span
	KeywordSpan    source.Span // 'function'
	Params         []*Param
	Returns        []TypeExpr
	Visibility     Visibility
	VisibilitySpan source.Span
	Virtual        bool
	VirtualSpan    source.Span
	Override       bool
	OverrideSpan   source.Span
	HasBody        bool
	Body           []Stmt
	HeaderSpan     source.Span
	Span           source.Span
}

func (*FunctionDecl) isMember() {}

// FieldDecl is a state variable member.
type FieldDecl struct {
	Type     TypeExpr
	Name     string
	NameSpan source.Span
	Span     source.Span
}

func (*FieldDecl) isMember() {}

// Param is one function parameter.
type Param struct {
	Type     TypeExpr
	Name     string // может быть пустым (безымянный параметр)
	NameSpan source.Span
	Span     source.Span
}
