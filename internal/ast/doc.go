// Package ast defines the syntax tree for Mica source files.
//
// The node set is closed: contracts, members, statements, and expressions
// are sealed interfaces over a fixed list of variants, so consumers can
// type-switch exhaustively instead of relying on dynamic visitor dispatch.
// Every node carries the byte span of the text it was parsed from; spans
// are only valid against the exact file snapshot the tree was built from
// and must not be consulted after that text changes.
package ast
