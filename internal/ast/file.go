package ast

import (
	"micaup/internal/source"
)

// File is the root node for one parsed source unit.
type File struct {
	FileID    source.FileID
	Path      string
	Contracts []*ContractDecl
	Span      source.Span
}
