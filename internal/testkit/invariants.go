package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"micaup/internal/ast"
	"micaup/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) file.Span is non-empty and within file content bounds
// 2) every contract span is non-empty and fully contained in file.Span
// 3) every member span is fully contained in its contract span
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}

	// 1) file span sanity
	if f.FileID != sf.ID {
		return fmt.Errorf("tree points to different file id: got=%d want=%d", f.FileID, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, c := range f.Contracts {
		sp := c.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty contract span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("contract span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("contract span %v is outside file span %v", sp, f.Span)
		}

		for _, m := range c.Members {
			var msp source.Span
			switch member := m.(type) {
			case *ast.FunctionDecl:
				msp = member.Span
			case *ast.FieldDecl:
				msp = member.Span
			default:
				return fmt.Errorf("unknown member type %T", m)
			}
			if msp.End <= msp.Start {
				return fmt.Errorf("empty member span: %v", msp)
			}
			if msp.Start < sp.Start || msp.End > sp.End {
				return fmt.Errorf("member span %v is outside contract span %v", msp, sp)
			}
		}
	}
	return nil
}
