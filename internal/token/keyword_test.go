package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"contract":  KwContract,
		"interface": KwInterface,
		"abstract":  KwAbstract,
		"is":        KwIs,
		"function":  KwFunction,
		"returns":   KwReturns,
		"override":  KwOverride,
		"virtual":   KwVirtual,
		"public":    KwPublic,
		"external":  KwExternal,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"Contract", "ABSTRACT", "Override", // регистр важен
		"uint", "int", "bool", "address", "string", // имена типов — Ident
		"length", "identifier",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKindIsVisibility(t *testing.T) {
	for _, k := range []Kind{KwPublic, KwPrivate, KwInternal, KwExternal} {
		if !k.IsVisibility() {
			t.Fatalf("%v.IsVisibility() = false", k)
		}
	}
	if KwVirtual.IsVisibility() {
		t.Fatal("KwVirtual.IsVisibility() = true")
	}
}
