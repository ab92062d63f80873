package sema

import (
	"strings"

	"micaup/internal/ast"
)

// ContractSym is a resolved contract or interface declaration.
type ContractSym struct {
	Decl *ast.ContractDecl
	File *ast.File // юнит, в котором контракт объявлен

	// Parents содержит разрешённых прямых предков в порядке объявления.
	// Неизвестные имена пропускаются (о них уже есть диагностика).
	Parents []*ContractSym

	// Ancestors — все транзитивные предки, ближайшие первыми, без дубликатов.
	Ancestors []*ContractSym
}

// IsInterface reports whether the symbol is an interface declaration.
func (c *ContractSym) IsInterface() bool {
	return c.Decl.Kind == ast.KindInterface
}

// FunctionRef ties a function declaration to the contract that declares it.
type FunctionRef struct {
	Contract *ContractSym
	Fn       *ast.FunctionDecl
}

// Signature возвращает каноническую сигнатуру функции: имя плюс
// канонические написания типов параметров. Возвращаемые типы в
// сигнатуру не входят.
func Signature(fn *ast.FunctionDecl) string {
	var sb strings.Builder
	sb.WriteString(fn.Name)
	sb.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		if p.Type != nil {
			sb.WriteString(p.Type.TypeString())
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// LengthAssign is an assignment statement whose left side is the length
// member of a resizable array.
type LengthAssign struct {
	Contract *ContractSym
	Fn       *ast.FunctionDecl
	Stmt     *ast.AssignStmt
}
