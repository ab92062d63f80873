package upgrade

import (
	"fmt"

	"micaup/internal/frontend"
)

// Suite is an ordered set of rules. Registration order is significant:
// the driver prefers changes from earlier rules when several propose one.
type Suite struct {
	rules []Rule
}

// NewSuite builds a suite over the given rules, in order.
func NewSuite(rules ...Rule) *Suite {
	return &Suite{rules: rules}
}

// DefaultSuite returns the standard migration rules in their canonical
// order: safe structural fixes first, then the unsafe rewrites.
func DefaultSuite() *Suite {
	return NewSuite(
		AbstractContract{},
		OverridingFunction{},
		ArrayLength{},
	)
}

// Rules returns the registered rules in order.
func (s *Suite) Rules() []Rule {
	return s.rules
}

// Analyze runs every rule against the session and concatenates their
// changes in registration order. A panicking rule contributes nothing:
// its partial results are discarded and the failure is returned alongside
// the changes from the rules that completed.
func (s *Suite) Analyze(sess *frontend.Session) ([]Change, []error) {
	var all []Change
	var failures []error
	for _, rule := range s.rules {
		changes, err := runRule(rule, sess)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		all = append(all, changes...)
	}
	return all, failures
}

func runRule(rule Rule, sess *frontend.Session) (changes []Change, err error) {
	defer func() {
		if r := recover(); r != nil {
			changes = nil
			err = fmt.Errorf("rule %s panicked: %v", rule.Name(), r)
		}
	}()
	return rule.Analyze(sess), nil
}
