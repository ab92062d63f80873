package upgrade

import (
	"strings"
	"testing"

	"micaup/internal/frontend"
	"micaup/internal/source"
)

type panickyRule struct{}

func (panickyRule) Name() string { return "panicky" }

func (panickyRule) Analyze(*frontend.Session) []Change {
	panic("rule bug")
}

type constRule struct{ name string }

func (r constRule) Name() string { return r.name }

func (r constRule) Analyze(*frontend.Session) []Change {
	return []Change{{Rule: r.name, Unit: "u.mica", Span: source.Span{}, Replacement: ""}}
}

func TestSuitePanicIsRecovered(t *testing.T) {
	sess := compileOne(t, `contract C {}`)
	suite := NewSuite(constRule{name: "first"}, panickyRule{}, constRule{name: "last"})

	changes, failures := suite.Analyze(sess)
	if len(failures) != 1 {
		t.Fatalf("failures = %v, want 1", failures)
	}
	if !strings.Contains(failures[0].Error(), "panicky") {
		t.Errorf("failure = %v", failures[0])
	}
	// остальные правила дают результат, порядок регистрации сохраняется
	if len(changes) != 2 || changes[0].Rule != "first" || changes[1].Rule != "last" {
		t.Errorf("changes = %+v", changes)
	}
}

func TestSuiteOrderIsRegistrationOrder(t *testing.T) {
	sess := compileOne(t, `contract C {}`)
	suite := NewSuite(constRule{name: "a"}, constRule{name: "b"}, constRule{name: "c"})
	changes, _ := suite.Analyze(sess)
	var names []string
	for _, c := range changes {
		names = append(names, c.Rule)
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("order = %v", names)
	}
}
