package parser

import (
	"testing"

	"micaup/internal/ast"
	"micaup/internal/diag"
	"micaup/internal/lexer"
	"micaup/internal/source"
	"micaup/internal/testkit"
)

func parseSrc(t *testing.T, src string) (*ast.File, *source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mica", []byte(src))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(id), diag.BagReporter{Bag: bag})
	res := ParseFile(lx, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
	if res.File == nil {
		t.Fatalf("ParseFile returned nil file")
	}
	if res.ErrorCount == 0 {
		if err := testkit.CheckSpanInvariants(res.File, fs.Get(id)); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return res.File, fs, bag
}

func TestParseContractHeader(t *testing.T) {
	src := `abstract contract Token is Base, IERC {
	uint total;
}`
	f, fs, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(f.Contracts) != 1 {
		t.Fatalf("contracts = %d, want 1", len(f.Contracts))
	}
	c := f.Contracts[0]
	if !c.Abstract {
		t.Error("Abstract = false, want true")
	}
	if got := fs.Snippet(c.AbstractSpan); got != "abstract" {
		t.Errorf("AbstractSpan snippet = %q, want %q", got, "abstract")
	}
	if c.Name != "Token" {
		t.Errorf("Name = %q, want Token", c.Name)
	}
	if c.Kind != ast.KindContract {
		t.Errorf("Kind = %v, want KindContract", c.Kind)
	}
	if len(c.Parents) != 2 || c.Parents[0].Name != "Base" || c.Parents[1].Name != "IERC" {
		t.Errorf("Parents = %v", c.Parents)
	}
	if got := fs.Snippet(c.KeywordSpan); got != "contract" {
		t.Errorf("KeywordSpan snippet = %q", got)
	}
	if len(c.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(c.Members))
	}
	field, ok := c.Members[0].(*ast.FieldDecl)
	if !ok {
		t.Fatalf("member is %T, want *ast.FieldDecl", c.Members[0])
	}
	if field.Name != "total" {
		t.Errorf("field name = %q", field.Name)
	}
}

func TestParseInterface(t *testing.T) {
	src := `interface IShape {
	function area() external returns (uint);
}`
	f, fs, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	c := f.Contracts[0]
	if c.Kind != ast.KindInterface {
		t.Fatalf("Kind = %v, want KindInterface", c.Kind)
	}
	fn, ok := c.Members[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("member is %T", c.Members[0])
	}
	if fn.HasBody {
		t.Error("HasBody = true for interface function")
	}
	if fn.Visibility != ast.VisibilityExternal {
		t.Errorf("Visibility = %v", fn.Visibility)
	}
	if len(fn.Returns) != 1 || fn.Returns[0].TypeString() != "uint" {
		t.Errorf("Returns = %v", fn.Returns)
	}
	// заголовок включает ';' у функции без тела
	if got := fs.Snippet(fn.HeaderSpan); got != "function area() external returns (uint);" {
		t.Errorf("HeaderSpan snippet = %q", got)
	}
}

func TestParseFunctionModifierOrder(t *testing.T) {
	srcs := []string{
		`contract C { function f() public virtual override {} }`,
		`contract C { function f() virtual public override {} }`,
		`contract C { function f() override virtual public {} }`,
	}
	for _, src := range srcs {
		f, _, bag := parseSrc(t, src)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected errors: %v", src, bag.Items())
		}
		fn := f.Contracts[0].Members[0].(*ast.FunctionDecl)
		if !fn.Virtual || !fn.Override || fn.Visibility != ast.VisibilityPublic {
			t.Errorf("%q: modifiers not parsed: virtual=%v override=%v vis=%v",
				src, fn.Virtual, fn.Override, fn.Visibility)
		}
	}
}

func TestParseFunctionHeaderSpan(t *testing.T) {
	src := `contract C {
	function pay(address to, uint amount) public returns (bool) {
		return true;
	}
}`
	f, fs, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := f.Contracts[0].Members[0].(*ast.FunctionDecl)
	want := "function pay(address to, uint amount) public returns (bool)"
	if got := fs.Snippet(fn.HeaderSpan); got != want {
		t.Errorf("HeaderSpan snippet = %q, want %q", got, want)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d", len(fn.Params))
	}
	if fn.Params[0].Type.TypeString() != "address" || fn.Params[0].Name != "to" {
		t.Errorf("param[0] = %v %q", fn.Params[0].Type.TypeString(), fn.Params[0].Name)
	}
}

func TestParseArrayTypes(t *testing.T) {
	src := `contract C {
	uint[] xs;
	uint[4] ys;
}`
	f, _, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	xs := f.Contracts[0].Members[0].(*ast.FieldDecl)
	arr, ok := xs.Type.(*ast.ArrayType)
	if !ok || arr.Fixed {
		t.Fatalf("xs type = %T fixed=%v", xs.Type, arr != nil && arr.Fixed)
	}
	if arr.TypeString() != "uint[]" {
		t.Errorf("TypeString = %q", arr.TypeString())
	}
	ys := f.Contracts[0].Members[1].(*ast.FieldDecl)
	fixed := ys.Type.(*ast.ArrayType)
	if !fixed.Fixed || fixed.Len != "4" {
		t.Errorf("ys fixed=%v len=%q", fixed.Fixed, fixed.Len)
	}
	if fixed.TypeString() != "uint[4]" {
		t.Errorf("TypeString = %q", fixed.TypeString())
	}
}

func TestParseStatements(t *testing.T) {
	src := `contract C {
	uint[] data;
	function f() public {
		uint n = 3;
		data.length = n;
		data[0] = 1;
		push(n);
		return;
	}
}`
	f, fs, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := f.Contracts[0].Members[1].(*ast.FunctionDecl)
	if len(fn.Body) != 5 {
		t.Fatalf("body statements = %d, want 5", len(fn.Body))
	}

	decl, ok := fn.Body[0].(*ast.LocalDecl)
	if !ok {
		t.Fatalf("stmt[0] is %T", fn.Body[0])
	}
	if decl.Name != "n" || decl.Value == nil {
		t.Errorf("decl = %q value=%v", decl.Name, decl.Value)
	}

	assign, ok := fn.Body[1].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("stmt[1] is %T", fn.Body[1])
	}
	member, ok := assign.LHS.(*ast.MemberExpr)
	if !ok || member.Name != "length" {
		t.Fatalf("assign LHS = %#v", assign.LHS)
	}
	// span присваивания захватывает точку с запятой
	if got := fs.Snippet(assign.Span); got != "data.length = n;" {
		t.Errorf("assign span snippet = %q", got)
	}

	idxAssign := fn.Body[2].(*ast.AssignStmt)
	if _, ok := idxAssign.LHS.(*ast.IndexExpr); !ok {
		t.Errorf("stmt[2] LHS = %T", idxAssign.LHS)
	}

	call, ok := fn.Body[3].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("stmt[3] is %T", fn.Body[3])
	}
	if _, ok := call.X.(*ast.CallExpr); !ok {
		t.Errorf("stmt[3] expr = %T", call.X)
	}

	if _, ok := fn.Body[4].(*ast.ReturnStmt); !ok {
		t.Errorf("stmt[4] is %T", fn.Body[4])
	}
}

func TestParseLocalDeclArray(t *testing.T) {
	src := `contract C {
	function f() public {
		uint[] tmp;
		uint[2] pair;
	}
}`
	f, _, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := f.Contracts[0].Members[0].(*ast.FunctionDecl)
	if len(fn.Body) != 2 {
		t.Fatalf("body = %d stmts", len(fn.Body))
	}
	for i, stmt := range fn.Body {
		if _, ok := stmt.(*ast.LocalDecl); !ok {
			t.Errorf("stmt[%d] is %T, want *ast.LocalDecl", i, stmt)
		}
	}
}

func TestParseErrorRecovery(t *testing.T) {
	src := `contract C {
	uint x
	function ok() public {}
}
contract D {}`
	f, _, bag := parseSrc(t, src)
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error for the missing semicolon")
	}
	if len(f.Contracts) != 2 {
		t.Fatalf("contracts = %d, want 2 after recovery", len(f.Contracts))
	}
	// парсер должен восстановиться и увидеть function ok
	var foundOk bool
	for _, m := range f.Contracts[0].Members {
		if fn, ok := m.(*ast.FunctionDecl); ok && fn.Name == "ok" {
			foundOk = true
		}
	}
	if !foundOk {
		t.Error("function ok not recovered")
	}
}

func TestParseErrorCountPropagates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.mica", []byte("contract {"))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(id), diag.BagReporter{Bag: bag})
	res := ParseFile(lx, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
	if res.ErrorCount == 0 {
		t.Error("ErrorCount = 0, want > 0")
	}
}
