package upgrade

import (
	"context"
	"crypto/sha256"
	"fmt"

	"micaup/internal/frontend"
)

// Phase is the driver's position in one migration cycle.
type Phase uint8

const (
	PhaseCompiling Phase = iota
	PhaseBlocked
	PhaseReporting
	PhasePatching
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCompiling:
		return "compiling"
	case PhaseBlocked:
		return "blocked"
	case PhaseReporting:
		return "reporting"
	case PhasePatching:
		return "patching"
	default:
		return "done"
	}
}

// Event notifies an observer of driver progress.
type Event struct {
	Phase  Phase
	Cycle  int     // номер итерации, с 1
	Change *Change // применённая правка, только для PhasePatching
	Errors int     // количество ошибок в сессии
}

// Outcome classifies how a run ended.
type Outcome uint8

const (
	// OutcomeConverged means no accepted change remained to apply.
	OutcomeConverged Outcome = iota
	// OutcomeBlocked means a snapshot failed to parse; nothing was patched
	// in that cycle and the run stopped.
	OutcomeBlocked
	// OutcomeCycle means patching revisited an earlier text state.
	OutcomeCycle
	// OutcomeBudget means the cycle limit was reached first.
	OutcomeBudget
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverged:
		return "converged"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeCycle:
		return "cycle"
	default:
		return "budget"
	}
}

// Result of one driver run. Pending holds the changes proposed by the
// final session that the acceptance gates rejected; with both gates off
// this is the full report of what the tool would do.
type Result struct {
	Outcome      Outcome
	Cycles       int
	Applied      []Change
	Pending      []Change
	RuleFailures []error
	Final        *frontend.Session
}

// Options configures one driver run.
type Options struct {
	AcceptSafe   bool
	AcceptUnsafe bool
	// MaxCycles bounds recompilations. 0 means the default of 1000.
	MaxCycles int
	// Progress, if set, receives an event per phase transition.
	Progress func(Event)
}

// Driver owns the unit snapshots and drives compile-patch cycles until no
// accepted change remains. Exactly one change is applied per compilation,
// so every span is used against the precise snapshot it was computed from.
type Driver struct {
	oracle   frontend.Oracle
	suite    *Suite
	opts     Options
	units    []frontend.Unit
	original map[string][]byte
}

func NewDriver(oracle frontend.Oracle, suite *Suite, units []frontend.Unit, opts Options) *Driver {
	d := &Driver{
		oracle:   oracle,
		suite:    suite,
		opts:     opts,
		units:    make([]frontend.Unit, len(units)),
		original: make(map[string][]byte, len(units)),
	}
	copy(d.units, units)
	for _, u := range units {
		d.original[u.Path] = u.Text
	}
	return d
}

// Units returns the current snapshots, patched or not.
func (d *Driver) Units() []frontend.Unit {
	return d.units
}

// Modified returns the paths whose text differs from the initial snapshot,
// in unit order.
func (d *Driver) Modified() []string {
	var out []string
	for _, u := range d.units {
		if string(u.Text) != string(d.original[u.Path]) {
			out = append(out, u.Path)
		}
	}
	return out
}

// Original returns the initial snapshot of a unit.
func (d *Driver) Original(path string) ([]byte, bool) {
	text, ok := d.original[path]
	return text, ok
}

// Run executes compile-patch cycles until convergence, a parse failure, a
// revisited text state, or the cycle budget. An error is returned only for
// internal failures such as a change that does not fit its snapshot.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	maxCycles := d.opts.MaxCycles
	if maxCycles <= 0 {
		maxCycles = 1000
	}

	res := &Result{}
	seen := map[[32]byte]bool{d.stateHash(): true}

	for cycle := 1; ; cycle++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Cycles = cycle
		d.emit(Event{Phase: PhaseCompiling, Cycle: cycle})

		sess := d.oracle.Compile(d.units)
		res.Final = sess

		if sess.State == frontend.StateParseFailed {
			res.Outcome = OutcomeBlocked
			d.emit(Event{Phase: PhaseBlocked, Cycle: cycle, Errors: sess.Bag.ErrorCount()})
			return res, nil
		}

		changes, failures := d.suite.Analyze(sess)
		res.RuleFailures = append(res.RuleFailures, failures...)

		next, pending := selectChange(changes, d.units, d.opts.AcceptSafe, d.opts.AcceptUnsafe)
		if next == nil {
			res.Outcome = OutcomeConverged
			res.Pending = pending
			d.emit(Event{Phase: PhaseReporting, Cycle: cycle, Errors: sess.Bag.ErrorCount()})
			d.emit(Event{Phase: PhaseDone, Cycle: cycle})
			return res, nil
		}

		if err := d.patch(*next); err != nil {
			return res, err
		}
		res.Applied = append(res.Applied, *next)
		d.emit(Event{Phase: PhasePatching, Cycle: cycle, Change: next})

		state := d.stateHash()
		if seen[state] {
			res.Outcome = OutcomeCycle
			d.emit(Event{Phase: PhaseDone, Cycle: cycle})
			return res, nil
		}
		seen[state] = true

		if cycle >= maxCycles {
			res.Outcome = OutcomeBudget
			d.emit(Event{Phase: PhaseDone, Cycle: cycle})
			return res, nil
		}
	}
}

// selectChange picks the change applied this cycle: units are visited in
// load order, and the first unit with a gate-passing change wins. Within a
// unit, suite order (rule registration, then encounter order) decides.
// When nothing passes the gates, the full proposal list is returned as
// pending instead.
func selectChange(changes []Change, units []frontend.Unit, acceptSafe, acceptUnsafe bool) (*Change, []Change) {
	for _, u := range units {
		for i := range changes {
			c := changes[i]
			if c.Unit == u.Path && c.Accepted(acceptSafe, acceptUnsafe) {
				return &c, nil
			}
		}
	}
	return nil, changes
}

func (d *Driver) patch(c Change) error {
	for i := range d.units {
		if d.units[i].Path != c.Unit {
			continue
		}
		patched, err := c.Apply(d.units[i].Text)
		if err != nil {
			return err
		}
		d.units[i].Text = patched
		return nil
	}
	return fmt.Errorf("change %s targets unknown unit %q", c.Rule, c.Unit)
}

func (d *Driver) stateHash() [32]byte {
	h := sha256.New()
	for _, u := range d.units {
		h.Write([]byte(u.Path))
		h.Write([]byte{0})
		h.Write(u.Text)
		h.Write([]byte{0})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (d *Driver) emit(ev Event) {
	if d.opts.Progress != nil {
		d.opts.Progress(ev)
	}
}
