package sema

import (
	"fmt"

	"micaup/internal/ast"
	"micaup/internal/diag"
)

// checkArrayLengths walks every function body of sym and flags assignments
// whose left side is the length member of a resizable array. Fixed-size
// arrays have a constant length and are left alone.
func (in *Info) checkArrayLengths(sym *ContractSym, reporter diag.Reporter) {
	fields := make(map[string]ast.TypeExpr)
	for _, anc := range reverseSyms(sym.Ancestors) {
		collectFields(anc.Decl, fields)
	}
	collectFields(sym.Decl, fields)

	for _, fn := range sym.Decl.Functions() {
		if !fn.HasBody {
			continue
		}
		env := newScope(fields)
		for _, p := range fn.Params {
			if p.Name != "" {
				env.vars[p.Name] = p.Type
			}
		}
		for _, stmt := range fn.Body {
			in.checkStmt(sym, fn, stmt, env, reporter)
		}
	}
}

type scope struct {
	vars map[string]ast.TypeExpr
}

func newScope(fields map[string]ast.TypeExpr) *scope {
	vars := make(map[string]ast.TypeExpr, len(fields))
	for name, typ := range fields {
		vars[name] = typ
	}
	return &scope{vars: vars}
}

func collectFields(decl *ast.ContractDecl, out map[string]ast.TypeExpr) {
	for _, m := range decl.Members {
		if field, ok := m.(*ast.FieldDecl); ok {
			out[field.Name] = field.Type
		}
	}
}

func reverseSyms(syms []*ContractSym) []*ContractSym {
	out := make([]*ContractSym, len(syms))
	for i, s := range syms {
		out[len(syms)-1-i] = s
	}
	return out
}

func (in *Info) checkStmt(sym *ContractSym, fn *ast.FunctionDecl, stmt ast.Stmt, env *scope, reporter diag.Reporter) {
	switch s := stmt.(type) {
	case *ast.LocalDecl:
		env.vars[s.Name] = s.Type
	case *ast.AssignStmt:
		member, ok := s.LHS.(*ast.MemberExpr)
		if !ok || member.Name != "length" {
			return
		}
		arr, ok := env.typeOf(member.X).(*ast.ArrayType)
		if !ok || arr.Fixed {
			return
		}
		in.lengthAssigns = append(in.lengthAssigns, LengthAssign{
			Contract: sym, Fn: fn, Stmt: s,
		})
		diag.ReportError(reporter, diag.SemaLengthAssign, s.Span,
			fmt.Sprintf("assignment to the length of a resizable array in function %q", fn.Name))
	}
}

// typeOf resolves the static type of an lvalue expression, or nil when the
// expression is not typeable in this scope.
func (s *scope) typeOf(x ast.Expr) ast.TypeExpr {
	switch e := x.(type) {
	case *ast.Ident:
		return s.vars[e.Name]
	case *ast.IndexExpr:
		if arr, ok := s.typeOf(e.X).(*ast.ArrayType); ok {
			return arr.Elem
		}
	}
	return nil
}
