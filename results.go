package depcontainer

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode is the data source a Result was evaluated against.
type Mode int

const (
	// ModeDisplay evaluates against a stored resource.
	ModeDisplay Mode = iota
	// ModeFill evaluates against submitted request data.
	ModeFill
)

func (m Mode) String() string {
	switch m {
	case ModeDisplay:
		return "display"
	case ModeFill:
		return "fill"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Result of evaluating a container's rules once.
type Result struct {
	Mode Mode

	// One entry per rule, in rule order.
	Rules []RuleResult

	// Number of rules satisfied.
	SatisfiedCount int

	// Whether every rule is satisfied. False when there are no rules.
	Pass bool
}

// RuleResult is the outcome of one rule in one evaluation.
type RuleResult struct {
	// The rule evaluated
	Rule Rule

	// The value read for the rule's property; nil if absent.
	Value any

	// Whether the property was present.
	Present bool

	Satisfied bool

	// Whether the rule was satisfied by the discriminator fallback rather
	// than by the value.
	Discriminated bool

	// Set when an Expression rule could not be compiled or evaluated.
	Err error
}

func newResult(m Mode, n int) *Result {
	return &Result{
		Mode:  m,
		Rules: make([]RuleResult, 0, n),
	}
}

func (r *Result) add(rr RuleResult) {
	r.Rules = append(r.Rules, rr)
	if rr.Satisfied {
		r.SatisfiedCount++
	}
	r.Pass = r.SatisfiedCount == len(r.Rules)
}

// Satisfied returns the satisfaction of each rule, in rule order.
func (r *Result) Satisfied() []bool {
	s := make([]bool, len(r.Rules))
	for i := range r.Rules {
		s[i] = r.Rules[i].Satisfied
	}
	return s
}

// String produces a table of the rules evaluated and their outcome.
func (r *Result) String() string {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("\nDEPENDENCY RESULT (%s): %s\n", r.Mode, boolString(r.Pass)))
	tw.AppendHeader(table.Row{"#", "Rule", "Value", "Satisfied", "Via\nType", "Error"})
	for i, rr := range r.Rules {
		value := "(absent)"
		if rr.Present {
			value = formatOperand(rr.Value)
		}
		errText := ""
		if rr.Err != nil {
			errText = rr.Err.Error()
		}
		tw.AppendRow(table.Row{
			i + 1,
			rr.Rule.String(),
			value,
			boolString(rr.Satisfied),
			trueFalse(rr.Discriminated),
			errText,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 6, WidthMax: 40},
	})
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func boolString(b bool) string {
	switch b {
	case true:
		return "PASS"
	default:
		return "FAIL"
	}
}

func trueFalse(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
