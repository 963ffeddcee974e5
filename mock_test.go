package depcontainer_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezachrisen/depcontainer"
)

// -------------------------------------------------- MOCK FIELD
// mockField is used for testing.
// It records the calls made to it in a shared log, so that tests can
// check which children were called and in what order.
type mockField struct {
	name string
	log  *[]string

	// returned from every method when set
	err error

	// if set, Fill returns a callback that logs "<name>:saved"
	deferred bool

	// if set, the callback returns this error
	callbackErr error
}

func newMockField(name string, log *[]string) *mockField {
	return &mockField{name: name, log: log}
}

func (m *mockField) record(s string) {
	if m.log != nil {
		*m.log = append(*m.log, m.name+":"+s)
	}
}

func (m *mockField) ResolveForDisplay(r depcontainer.Resource) error {
	m.record("display")
	return m.err
}

func (m *mockField) Resolve(r depcontainer.Resource, attribute string) error {
	m.record("resolve(" + attribute + ")")
	return m.err
}

func (m *mockField) Fill(req depcontainer.Request, model any) (depcontainer.Callback, error) {
	m.record("fill")
	if m.err != nil {
		return nil, m.err
	}
	if !m.deferred {
		return nil, nil
	}
	return func() error {
		m.record("saved")
		return m.callbackErr
	}, nil
}

func (m *mockField) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"attribute":%q}`, m.name)), nil
}

// -------------------------------------------------- MOCK EVALUATOR
// mockEvaluator only knows two expressions: `true` and `false`. Any other
// expression fails to compile. Evaluate records the values it was given.
type mockEvaluator struct {
	compiled int
	values   []any
}

func (m *mockEvaluator) Compile(expr string) (any, error) {
	m.compiled++
	switch strings.TrimSpace(expr) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, errors.New("mock evaluator cannot compile " + expr)
}

func (m *mockEvaluator) Evaluate(program any, value any) (bool, error) {
	m.values = append(m.values, value)
	b, ok := program.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected program %T", program)
	}
	return b, nil
}

// user is a plain struct resource used to exercise the object (non-map)
// display rules.
type user struct {
	Name     string
	Status   string
	RoleID   int
	RoleType string
	Tags     []string
	Score    float64
	Parent   *int
}
