package upgrade

import (
	"fmt"

	"micaup/internal/ast"
	"micaup/internal/frontend"
)

// OverridingFunction adds the override marker to functions that redefine
// an inherited function, and the virtual marker to the overridden ancestor
// functions. The markers change dispatch declarations, so both edits are
// unsafe. Virtual markers are placed in the unit that declares the
// ancestor, which may differ from the overriding unit.
type OverridingFunction struct{}

func (OverridingFunction) Name() string { return "overriding-function" }

func (r OverridingFunction) Analyze(sess *frontend.Session) []Change {
	if sess.Info == nil {
		return nil
	}
	var changes []Change
	virtualDone := make(map[*ast.FunctionDecl]bool)

	for _, sym := range sess.Info.Syms {
		file := sess.FileSet.Get(sym.File.FileID)
		if file == nil {
			continue
		}
		for _, fn := range sym.Decl.Functions() {
			refs := sess.Info.Overrides(fn)
			if len(refs) == 0 {
				continue
			}

			if !fn.Override {
				span, text := placeAfterHeaderKeyword(file, fn, "override")
				changes = append(changes, Change{
					Level:       Unsafe,
					Rule:        r.Name(),
					Unit:        sym.File.Path,
					Span:        span,
					Replacement: text,
					Desc: fmt.Sprintf("mark function %q in contract %q override",
						fn.Name, sym.Decl.Name),
				})
			}

			for _, ref := range refs {
				if ref.Fn.Virtual || ref.Contract.IsInterface() || virtualDone[ref.Fn] {
					continue
				}
				virtualDone[ref.Fn] = true
				ancFile := sess.FileSet.Get(ref.Contract.File.FileID)
				if ancFile == nil {
					continue
				}
				span, text := placeAfterHeaderKeyword(ancFile, ref.Fn, "virtual")
				changes = append(changes, Change{
					Level:       Unsafe,
					Rule:        r.Name(),
					Unit:        ref.Contract.File.Path,
					Span:        span,
					Replacement: text,
					Desc: fmt.Sprintf("mark function %q in contract %q virtual",
						ref.Fn.Name, ref.Contract.Decl.Name),
				})
			}
		}
	}
	return changes
}
