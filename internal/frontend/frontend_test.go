package frontend

import (
	"testing"

	"micaup/internal/diag"
)

func TestCompileClean(t *testing.T) {
	sess := New().Compile([]Unit{
		{Path: "a.mica", Text: []byte(`contract A { function f() public virtual {} }`)},
		{Path: "b.mica", Text: []byte(`contract B is A { function f() public override {} }`)},
	})
	if sess.State != StateAnalyzed {
		t.Fatalf("State = %v, want analyzed", sess.State)
	}
	if sess.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", sess.Bag.Items())
	}
	if sess.Info == nil {
		t.Fatal("Info = nil")
	}
	if f := sess.File("b.mica"); f == nil || len(f.Contracts) != 1 {
		t.Errorf("File(b.mica) = %v", f)
	}
}

func TestCompileParseFailure(t *testing.T) {
	sess := New().Compile([]Unit{
		{Path: "a.mica", Text: []byte(`contract A {`)},
		{Path: "b.mica", Text: []byte(`contract B {}`)},
	})
	if sess.State != StateParseFailed {
		t.Fatalf("State = %v, want parse-failed", sess.State)
	}
	if sess.Info != nil {
		t.Error("Info must be nil after a parse failure")
	}
	if !sess.Bag.HasErrors() {
		t.Error("no syntax errors recorded")
	}
}

func TestCompileSemanticFindings(t *testing.T) {
	sess := New().Compile([]Unit{
		{Path: "a.mica", Text: []byte(`
contract Base {
	function f() public {}
}
contract Child is Base {
	function f() public {}
}`)},
	})
	if sess.State != StateAnalyzed {
		t.Fatalf("State = %v", sess.State)
	}
	var found bool
	for _, d := range sess.Bag.Items() {
		if d.Code == diag.SemaOverrideMissing {
			found = true
		}
	}
	if !found {
		t.Errorf("SemaOverrideMissing not reported: %v", sess.Bag.Items())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	c := New()
	first := c.Compile([]Unit{{Path: "a.mica", Text: []byte(`contract A {}`)}})
	second := c.Compile([]Unit{{Path: "a.mica", Text: []byte(`contract A { uint x; }`)}})
	if first.FileSet == second.FileSet {
		t.Fatal("sessions share a FileSet")
	}
	firstFile, _ := first.FileSet.GetByPath("a.mica")
	secondFile, _ := second.FileSet.GetByPath("a.mica")
	if firstFile.Hash == secondFile.Hash {
		t.Error("snapshots with different text share a hash")
	}
}
