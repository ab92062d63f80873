// Package token defines lexical token kinds for the Mica language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Built-in type names (uint, int, bool, address, string) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
package token
