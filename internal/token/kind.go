package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwContract represents the 'contract' keyword.
	KwContract // contract
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwAbstract represents the 'abstract' keyword.
	KwAbstract // abstract
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwReturns represents the 'returns' keyword.
	KwReturns // returns
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwOverride represents the 'override' keyword.
	KwOverride // override
	// KwVirtual represents the 'virtual' keyword.
	KwVirtual // virtual
	// KwPublic represents the 'public' visibility keyword.
	KwPublic // public
	// KwPrivate represents the 'private' visibility keyword.
	KwPrivate // private
	// KwInternal represents the 'internal' visibility keyword.
	KwInternal // internal
	// KwExternal represents the 'external' visibility keyword.
	KwExternal // external

	// IntLit represents the integer literal token.
	IntLit
	// StringLit represents the string literal token.
	StringLit

	// Assign represents '='.
	Assign // =
	// Dot represents '.'.
	Dot // .
	// Comma represents ','.
	Comma // ,
	// Semicolon represents ';'.
	Semicolon // ;
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case KwContract:
		return "contract"
	case KwInterface:
		return "interface"
	case KwAbstract:
		return "abstract"
	case KwIs:
		return "is"
	case KwFunction:
		return "function"
	case KwReturns:
		return "returns"
	case KwReturn:
		return "return"
	case KwOverride:
		return "override"
	case KwVirtual:
		return "virtual"
	case KwPublic:
		return "public"
	case KwPrivate:
		return "private"
	case KwInternal:
		return "internal"
	case KwExternal:
		return "external"
	case IntLit:
		return "IntLit"
	case StringLit:
		return "StringLit"
	case Assign:
		return "="
	case Dot:
		return "."
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	default:
		return "Unknown"
	}
}

// IsVisibility reports whether the kind is one of the visibility keywords.
func (k Kind) IsVisibility() bool {
	switch k {
	case KwPublic, KwPrivate, KwInternal, KwExternal:
		return true
	default:
		return false
	}
}
