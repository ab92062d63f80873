package sema

import (
	"fmt"

	"micaup/internal/ast"
	"micaup/internal/diag"
)

// checkOverrides computes the override relation for every function of sym
// and reports the migration findings: overriding functions missing the
// override marker and overridden ancestor functions missing virtual.
// Interface members are implicitly virtual and are never flagged.
func (in *Info) checkOverrides(sym *ContractSym, reporter diag.Reporter) {
	for _, fn := range sym.Decl.Functions() {
		if fn.Visibility == ast.VisibilityPrivate {
			continue
		}
		sig := Signature(fn)

		var refs []FunctionRef
		for _, anc := range sym.Ancestors {
			for _, super := range anc.Decl.Functions() {
				if super.Visibility == ast.VisibilityPrivate {
					continue
				}
				if Signature(super) == sig {
					refs = append(refs, FunctionRef{Contract: anc, Fn: super})
				}
			}
		}
		if len(refs) == 0 {
			continue
		}
		in.overrides[fn] = refs

		if !fn.Override {
			d := diag.NewError(diag.SemaOverrideMissing, fn.NameSpan,
				fmt.Sprintf("function %q overrides an inherited function but is not marked override", fn.Name))
			for _, ref := range refs {
				d = d.WithNote(ref.Fn.NameSpan,
					fmt.Sprintf("overridden function declared in %q", ref.Contract.Decl.Name))
			}
			report(reporter, d)
		}
		for _, ref := range refs {
			if ref.Fn.Virtual || ref.Contract.IsInterface() {
				continue
			}
			if in.virtualFlagged == nil {
				in.virtualFlagged = make(map[*ast.FunctionDecl]bool)
			}
			if in.virtualFlagged[ref.Fn] {
				continue
			}
			in.virtualFlagged[ref.Fn] = true
			diag.ReportError(reporter, diag.SemaVirtualMissing, ref.Fn.NameSpan,
				fmt.Sprintf("function %q is overridden in %q but is not marked virtual",
					ref.Fn.Name, sym.Decl.Name))
		}
	}
}

// checkAbstract flags a concrete contract that leaves declared functions
// without an implementation anywhere in its hierarchy.
func (in *Info) checkAbstract(sym *ContractSym, reporter diag.Reporter) {
	if sym.IsInterface() || sym.Decl.Abstract {
		return
	}

	implemented := make(map[string]bool)
	missing := make(map[string]FunctionRef)
	var order []string

	consider := func(owner *ContractSym, fn *ast.FunctionDecl) {
		sig := Signature(fn)
		if fn.HasBody {
			implemented[sig] = true
			return
		}
		if _, seen := missing[sig]; !seen {
			missing[sig] = FunctionRef{Contract: owner, Fn: fn}
			order = append(order, sig)
		}
	}
	for _, fn := range sym.Decl.Functions() {
		consider(sym, fn)
	}
	for _, anc := range sym.Ancestors {
		for _, fn := range anc.Decl.Functions() {
			consider(anc, fn)
		}
	}

	var refs []FunctionRef
	for _, sig := range order {
		if !implemented[sig] {
			refs = append(refs, missing[sig])
		}
	}
	if len(refs) == 0 {
		return
	}
	in.unimplemented[sym] = refs

	d := diag.NewError(diag.SemaAbstractRequired, sym.Decl.NameSpan,
		fmt.Sprintf("contract %q has unimplemented functions and must be marked abstract", sym.Decl.Name))
	for _, ref := range refs {
		d = d.WithNote(ref.Fn.NameSpan,
			fmt.Sprintf("missing implementation of %s", Signature(ref.Fn)))
	}
	report(reporter, d)
}

func report(r diag.Reporter, d diag.Diagnostic) {
	if r == nil {
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
}
