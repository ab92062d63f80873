package sema

import (
	"fmt"

	"micaup/internal/ast"
	"micaup/internal/diag"
)

// Info holds the results of analyzing one set of units. It is valid only
// for the exact trees it was computed from.
type Info struct {
	// Contracts индексирует символы по имени. При дубликатах имён
	// побеждает первое объявление.
	Contracts map[string]*ContractSym

	// Syms перечисляет символы в порядке объявления по юнитам.
	Syms []*ContractSym

	overrides      map[*ast.FunctionDecl][]FunctionRef
	unimplemented  map[*ContractSym][]FunctionRef
	virtualFlagged map[*ast.FunctionDecl]bool
	lengthAssigns  []LengthAssign
}

// Overrides returns the ancestor functions the given declaration overrides:
// same name, same parameter types, declared in a transitive ancestor.
// The order follows the ancestor linearization, nearest first.
func (in *Info) Overrides(fn *ast.FunctionDecl) []FunctionRef {
	return in.overrides[fn]
}

// Unimplemented returns the bodiless functions a contract inherits or
// declares without providing an implementation anywhere in its hierarchy.
func (in *Info) Unimplemented(sym *ContractSym) []FunctionRef {
	return in.unimplemented[sym]
}

// LengthAssigns returns every assignment to a resizable array length,
// in unit order.
func (in *Info) LengthAssigns() []LengthAssign {
	return in.lengthAssigns
}

// Analyze resolves and checks the given units as one program. Findings go
// to the reporter; the returned Info is always usable.
func Analyze(files []*ast.File, reporter diag.Reporter) *Info {
	in := &Info{
		Contracts:     make(map[string]*ContractSym),
		overrides:     make(map[*ast.FunctionDecl][]FunctionRef),
		unimplemented: make(map[*ContractSym][]FunctionRef),
	}

	// 1: собрать символы по всем юнитам
	for _, f := range files {
		for _, decl := range f.Contracts {
			sym := &ContractSym{Decl: decl, File: f}
			in.Syms = append(in.Syms, sym)
			if decl.Name == "" {
				continue
			}
			if _, exists := in.Contracts[decl.Name]; !exists {
				in.Contracts[decl.Name] = sym
			}
		}
	}

	// 2: разрешить прямых предков
	for _, sym := range in.Syms {
		for _, parent := range sym.Decl.Parents {
			resolved, ok := in.Contracts[parent.Name]
			if !ok {
				diag.ReportError(reporter, diag.SemaUnknownParent, parent.Span,
					fmt.Sprintf("unknown parent contract %q", parent.Name))
				continue
			}
			sym.Parents = append(sym.Parents, resolved)
		}
	}

	// 3: линеаризовать предков, поймать циклы
	for _, sym := range in.Syms {
		in.linearize(sym, reporter)
	}

	// 4: проверки по каждому контракту
	for _, sym := range in.Syms {
		in.checkDuplicates(sym, reporter)
		in.checkOverrides(sym, reporter)
		in.checkAbstract(sym, reporter)
	}

	// 5: типизация тел - присваивания в length
	for _, sym := range in.Syms {
		in.checkArrayLengths(sym, reporter)
	}

	return in
}

// linearize fills sym.Ancestors depth-first, nearest parents first,
// deduplicated. A cycle is reported once at the contract that closes it.
func (in *Info) linearize(sym *ContractSym, reporter diag.Reporter) {
	seen := map[*ContractSym]bool{sym: true}
	var walk func(s *ContractSym)
	walk = func(s *ContractSym) {
		for _, p := range s.Parents {
			if p == sym {
				diag.ReportError(reporter, diag.SemaInheritanceCycle, sym.Decl.NameSpan,
					fmt.Sprintf("inheritance cycle through contract %q", sym.Decl.Name))
				continue
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			sym.Ancestors = append(sym.Ancestors, p)
			walk(p)
		}
	}
	walk(sym)
}

func (in *Info) checkDuplicates(sym *ContractSym, reporter diag.Reporter) {
	seen := make(map[string]bool)
	for _, fn := range sym.Decl.Functions() {
		sig := Signature(fn)
		if seen[sig] {
			diag.ReportError(reporter, diag.SemaDuplicateMember, fn.NameSpan,
				fmt.Sprintf("duplicate function %s in contract %q", sig, sym.Decl.Name))
			continue
		}
		seen[sig] = true
	}
}
