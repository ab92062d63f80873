package upgrade

import (
	"micaup/internal/frontend"
)

// Rule inspects one analyzed session and proposes changes. A rule must be
// pure: no mutation of the session, no I/O, results derived only from the
// trees, annotations, and unit text of the session it was given.
type Rule interface {
	Name() string
	// Analyze returns the changes the rule proposes for this snapshot.
	// Spans refer to the session's unit text.
	Analyze(sess *frontend.Session) []Change
}
