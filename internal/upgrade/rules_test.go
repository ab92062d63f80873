package upgrade

import (
	"strings"
	"testing"

	"micaup/internal/frontend"
)

func compileUnits(t *testing.T, units ...frontend.Unit) *frontend.Session {
	t.Helper()
	sess := frontend.New().Compile(units)
	if sess.State != frontend.StateAnalyzed {
		t.Fatalf("compile failed: %v", sess.Bag.Items())
	}
	return sess
}

func TestAbstractContractRule(t *testing.T) {
	sess := compileUnits(t, frontend.Unit{Path: "token.mica", Text: []byte(`
contract Token {
	function transfer(address to, uint amount) public returns (bool);
}`)})
	changes := AbstractContract{}.Analyze(sess)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	c := changes[0]
	if c.Level != Safe {
		t.Errorf("Level = %v, want Safe", c.Level)
	}
	if c.Unit != "token.mica" {
		t.Errorf("Unit = %q", c.Unit)
	}
	out, err := c.Apply([]byte(sess.FileSet.Get(sess.Files[0].FileID).Content))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "abstract contract Token") {
		t.Errorf("patched = %q", out)
	}
}

func TestAbstractContractRuleSkipsAbstractAndInterface(t *testing.T) {
	sess := compileUnits(t, frontend.Unit{Path: "u.mica", Text: []byte(`
abstract contract A {
	function f() public;
}
interface I {
	function g() external;
}`)})
	changes := AbstractContract{}.Analyze(sess)
	if len(changes) != 0 {
		t.Errorf("changes = %v, want none", changes)
	}
}

func TestOverridingFunctionRule(t *testing.T) {
	sess := compileUnits(t,
		frontend.Unit{Path: "base.mica", Text: []byte(`contract Base {
	function ping() public {
	}
}`)},
		frontend.Unit{Path: "child.mica", Text: []byte(`contract Child is Base {
	function ping() public {
	}
}`)})
	changes := OverridingFunction{}.Analyze(sess)
	if len(changes) != 2 {
		t.Fatalf("changes = %d, want override + virtual", len(changes))
	}

	override, virtual := changes[0], changes[1]
	if override.Unit != "child.mica" || !strings.Contains(override.Replacement, "override") {
		t.Errorf("first change = %+v, want override in child.mica", override)
	}
	// virtual ставится в юните предка
	if virtual.Unit != "base.mica" || !strings.Contains(virtual.Replacement, "virtual") {
		t.Errorf("second change = %+v, want virtual in base.mica", virtual)
	}
	for _, c := range changes {
		if c.Level != Unsafe {
			t.Errorf("change %q level = %v, want Unsafe", c.Desc, c.Level)
		}
	}
}

func TestOverridingFunctionRuleInterfaceParent(t *testing.T) {
	sess := compileUnits(t, frontend.Unit{Path: "u.mica", Text: []byte(`
interface IShape {
	function area() external returns (uint);
}
abstract contract Shape is IShape {
	function area() external returns (uint) {
		return 0;
	}
}`)})
	changes := OverridingFunction{}.Analyze(sess)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want only the override marker", len(changes))
	}
	if !strings.Contains(changes[0].Replacement, "override") {
		t.Errorf("change = %+v", changes[0])
	}
}

func TestArrayLengthRule(t *testing.T) {
	src := `contract C {
	uint[] data;
	function clear() public {
		data.length = 0;
	}
}`
	sess := compileUnits(t, frontend.Unit{Path: "u.mica", Text: []byte(src)})
	changes := ArrayLength{}.Analyze(sess)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	c := changes[0]
	if c.Level != Unsafe || c.Replacement != "" {
		t.Errorf("change = %+v, want unsafe deletion", c)
	}
	out, err := c.Apply([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "data.length") {
		t.Errorf("statement not removed: %q", out)
	}
	// строка statement удаляется целиком, без пустой строки на её месте
	if strings.Contains(string(out), "{\n\n") || strings.Contains(string(out), "\t\t\n") {
		t.Errorf("deletion left a blank line: %q", out)
	}
}

func TestRulesProposeNothingOnCleanSource(t *testing.T) {
	sess := compileUnits(t, frontend.Unit{Path: "u.mica", Text: []byte(`
abstract contract Base {
	function f() public virtual {
	}
}
contract Impl is Base {
	function f() public override {
	}
}`)})
	changes, failures := DefaultSuite().Analyze(sess)
	if len(failures) != 0 {
		t.Fatalf("failures = %v", failures)
	}
	if len(changes) != 0 {
		t.Errorf("changes = %+v, want none", changes)
	}
}
