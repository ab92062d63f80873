package frontend

import (
	"micaup/internal/ast"
	"micaup/internal/diag"
	"micaup/internal/lexer"
	"micaup/internal/parser"
	"micaup/internal/sema"
	"micaup/internal/source"
)

// Unit is one source unit presented to the front end: a path used for
// reporting plus the exact text to compile.
type Unit struct {
	Path string
	Text []byte
}

// State classifies the outcome of one compilation.
type State uint8

const (
	// StateAnalyzed means every unit parsed; semantic findings (if any)
	// are in the session bag and the trees are reliable.
	StateAnalyzed State = iota
	// StateParseFailed means at least one unit has syntax errors; the
	// trees must not be used for rewriting.
	StateParseFailed
)

func (s State) String() string {
	if s == StateParseFailed {
		return "parse-failed"
	}
	return "analyzed"
}

// Session is the result of compiling one snapshot of units. Spans in the
// trees and diagnostics are valid only against this session's FileSet;
// a session is discarded after each rewrite.
type Session struct {
	FileSet *source.FileSet
	Files   []*ast.File
	Info    *sema.Info // nil, если State == StateParseFailed
	Bag     *diag.Bag
	State   State
}

// File returns the tree for a unit path, if the unit compiled in this session.
func (s *Session) File(path string) *ast.File {
	for _, f := range s.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// Oracle compiles unit snapshots. The upgrade driver depends on this
// interface only, so tests can substitute scripted compilations.
type Oracle interface {
	Compile(units []Unit) *Session
}

// Compiler is the production Oracle backed by the Mica front end.
type Compiler struct {
	// MaxDiagnostics ограничивает диагностики на одну компиляцию.
	MaxDiagnostics int
}

func New() *Compiler {
	return &Compiler{MaxDiagnostics: 200}
}

// Compile lexes, parses, and analyzes the units as one program. Parsing
// always runs for every unit; semantic analysis runs only when all units
// parsed cleanly.
func (c *Compiler) Compile(units []Unit) *Session {
	maxDiags := c.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 200
	}

	sess := &Session{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(maxDiags),
	}
	reporter := diag.BagReporter{Bag: sess.Bag}

	var parseErrors uint
	for _, unit := range units {
		id := sess.FileSet.Add(unit.Path, unit.Text, 0)
		lx := lexer.New(sess.FileSet.Get(id), reporter)
		res := parser.ParseFile(lx, parser.Options{
			MaxErrors: uint(maxDiags),
			Reporter:  reporter,
		})
		parseErrors += res.ErrorCount
		sess.Files = append(sess.Files, res.File)
	}

	if parseErrors > 0 {
		sess.State = StateParseFailed
		sess.Bag.Sort()
		return sess
	}

	sess.Info = sema.Analyze(sess.Files, reporter)
	sess.State = StateAnalyzed
	sess.Bag.Sort()
	sess.Bag.Dedup()
	return sess
}
