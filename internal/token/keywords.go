package token

var keywords = map[string]Kind{
	"contract":  KwContract,
	"interface": KwInterface,
	"abstract":  KwAbstract,
	"is":        KwIs,
	"function":  KwFunction,
	"returns":   KwReturns,
	"return":    KwReturn,
	"override":  KwOverride,
	"virtual":   KwVirtual,
	"public":    KwPublic,
	"private":   KwPrivate,
	"internal":  KwInternal,
	"external":  KwExternal,
}

// LookupKeyword returns the keyword kind for the given lexeme, if any.
// Сравнение чувствительно к регистру: "Contract" — обычный Ident.
func LookupKeyword(lexeme string) (Kind, bool) {
	kind, ok := keywords[lexeme]
	return kind, ok
}
