package upgrade

import (
	"fmt"

	"micaup/internal/frontend"
	"micaup/internal/source"
)

// AbstractContract marks contracts that leave inherited or own functions
// unimplemented as abstract. Adding the modifier is a pure declaration
// change, so the rule is safe.
type AbstractContract struct{}

func (AbstractContract) Name() string { return "abstract-contract" }

func (r AbstractContract) Analyze(sess *frontend.Session) []Change {
	if sess.Info == nil {
		return nil
	}
	var changes []Change
	for _, sym := range sess.Info.Syms {
		if sym.IsInterface() || sym.Decl.Abstract {
			continue
		}
		if len(sess.Info.Unimplemented(sym)) == 0 {
			continue
		}
		at := sym.Decl.KeywordSpan.Start
		changes = append(changes, Change{
			Level:       Safe,
			Rule:        r.Name(),
			Unit:        sym.File.Path,
			Span:        source.Span{File: sym.File.FileID, Start: at, End: at},
			Replacement: "abstract ",
			Desc:        fmt.Sprintf("mark contract %q abstract", sym.Decl.Name),
		})
	}
	return changes
}
