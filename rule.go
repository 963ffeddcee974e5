package depcontainer

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the condition a Rule checks against the value of the
// referenced property. A rule has exactly one kind.
type Kind int

const (
	// Equals is satisfied when the value loosely equals Rule.Value.
	Equals Kind = iota
	// NotEquals is satisfied when the value does not loosely equal Rule.Value.
	NotEquals
	// Empty is satisfied when the value is empty (see IsEmpty).
	Empty
	// NotEmpty is satisfied when the value is not empty.
	NotEmpty
	// NullOrZero is satisfied when the value is nil, integer 0 or "0".
	// When gating a fill, the empty string is accepted as well.
	NullOrZero
	// In is satisfied when the value loosely equals one of Rule.Values.
	In
	// NotIn is satisfied when the value loosely equals none of Rule.Values.
	NotIn
	// Expression is satisfied when Rule.Expr evaluates to true with the
	// value bound to the variable "value".
	Expression
)

// kindKeys are the keys used for each kind in serialized metadata and in
// definition files.
var kindKeys = map[Kind]string{
	Equals:     "value",
	NotEquals:  "not",
	Empty:      "empty",
	NotEmpty:   "notEmpty",
	NullOrZero: "nullOrZero",
	In:         "in",
	NotIn:      "notin",
	Expression: "expr",
}

// Key returns the metadata key of the kind, for example "notin" for NotIn.
func (k Kind) Key() string {
	return kindKeys[k]
}

func (k Kind) String() string {
	switch k {
	case Equals:
		return "equals"
	case NotEquals:
		return "notEquals"
	case Empty:
		return "empty"
	case NotEmpty:
		return "notEmpty"
	case NullOrZero:
		return "nullOrZero"
	case In:
		return "in"
	case NotIn:
		return "notIn"
	case Expression:
		return "expr"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindForKey returns the kind whose metadata key is key.
func KindForKey(key string) (Kind, bool) {
	for k, v := range kindKeys {
		if v == key {
			return k, true
		}
	}
	return 0, false
}

// A Rule is a single dependency: a condition on the value of another field.
type Rule struct {
	// The referenced field.
	Field string

	// The attribute read from the resource or request. Defaults to Field.
	Property string

	// The condition checked.
	Kind Kind

	// The operand of Equals and NotEquals rules.
	Value any

	// The operand of In and NotIn rules.
	Values []any

	// The expression of Expression rules.
	Expr string

	// Compiled form of Expr, set by the container's Evaluator.
	Program any
}

// ParseField splits a field identifier into the field and the property it
// reads. "a.b" yields ("a", "b"); "a" yields ("a", "a"). Only the first two
// segments are used.
func ParseField(id string) (field, property string) {
	parts := strings.Split(id, ".")
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], parts[1]
}

// NewRule returns a rule of the kind for the field identifier id.
// The operand depends on the kind: the value for Equals and NotEquals, the
// set of values for In and NotIn, the expression string for Expression.
// Other kinds ignore the operand.
func NewRule(id string, kind Kind, operand ...any) Rule {
	f, p := ParseField(id)
	r := Rule{
		Field:    f,
		Property: p,
		Kind:     kind,
	}
	switch kind {
	case Equals, NotEquals:
		if len(operand) > 0 {
			r.Value = operand[0]
		}
	case In, NotIn:
		r.Values = append([]any{}, operand...)
	case Expression:
		if len(operand) > 0 {
			r.Expr = fmt.Sprint(operand[0])
		}
	}
	return r
}

// Operand returns the comparison value of the rule, or nil for kinds
// without one.
func (r Rule) Operand() any {
	switch r.Kind {
	case Equals, NotEquals:
		return r.Value
	case In, NotIn:
		return r.Values
	case Expression:
		return r.Expr
	}
	return nil
}

// String returns the rule as a short condition, such as
// `country.code in ["DE", "AT"]`.
func (r Rule) String() string {
	name := r.Field
	if r.Property != r.Field {
		name = r.Field + "." + r.Property
	}

	switch r.Kind {
	case Equals:
		return name + " == " + formatOperand(r.Value)
	case NotEquals:
		return name + " != " + formatOperand(r.Value)
	case Empty:
		return name + " is empty"
	case NotEmpty:
		return name + " is not empty"
	case NullOrZero:
		return name + " is null or zero"
	case In:
		return name + " in " + formatOperand(r.Values)
	case NotIn:
		return name + " not in " + formatOperand(r.Values)
	case Expression:
		return name + ": " + r.Expr
	}
	return name + " " + r.Kind.String()
}

func formatOperand(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case []any:
		s := make([]string, len(x))
		for i := range x {
			s[i] = formatOperand(x[i])
		}
		return "[" + strings.Join(s, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}
