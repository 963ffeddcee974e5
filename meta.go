package depcontainer

import "encoding/json"

// dependency is the serialized form of a rule: the field and property, one
// key naming the condition, and whether the rule held on the latest
// display.
type dependency struct {
	Field      string  `json:"field"`
	Property   string  `json:"property"`
	Value      *any    `json:"value,omitempty"`
	Not        *any    `json:"not,omitempty"`
	Empty      bool    `json:"empty,omitempty"`
	NotEmpty   bool    `json:"notEmpty,omitempty"`
	NullOrZero bool    `json:"nullOrZero,omitempty"`
	In         *[]any  `json:"in,omitempty"`
	NotIn      *[]any  `json:"notin,omitempty"`
	Expr       *string `json:"expr,omitempty"`
	Satisfied  bool    `json:"satisfied"`
}

type containerJSON struct {
	Component    string       `json:"component"`
	Attribute    string       `json:"attribute"`
	ShowOnIndex  bool         `json:"showOnIndex"`
	Fields       []Field      `json:"fields"`
	Dependencies []dependency `json:"dependencies"`
}

func newDependency(r Rule, satisfied bool) dependency {
	d := dependency{
		Field:     r.Field,
		Property:  r.Property,
		Satisfied: satisfied,
	}
	switch r.Kind {
	case Equals:
		v := r.Value
		d.Value = &v
	case NotEquals:
		v := r.Value
		d.Not = &v
	case Empty:
		d.Empty = true
	case NotEmpty:
		d.NotEmpty = true
	case NullOrZero:
		d.NullOrZero = true
	case In:
		v := nonNil(r.Values)
		d.In = &v
	case NotIn:
		v := nonNil(r.Values)
		d.NotIn = &v
	case Expression:
		e := r.Expr
		d.Expr = &e
	}
	return d
}

func nonNil(v []any) []any {
	if v == nil {
		return []any{}
	}
	return v
}

// MarshalJSON produces the metadata the presentation layer needs: the child
// fields and the dependencies, each carrying its outcome on the latest
// ResolveForDisplay. Containers are never shown on index views.
func (c *Container) MarshalJSON() ([]byte, error) {
	out := containerJSON{
		Component:    Component,
		Attribute:    c.Attribute,
		Fields:       c.fields,
		Dependencies: make([]dependency, len(c.rules)),
	}
	if out.Fields == nil {
		out.Fields = []Field{}
	}
	for i, r := range c.rules {
		satisfied := false
		if c.displayed != nil && i < len(c.displayed.Rules) {
			satisfied = c.displayed.Rules[i].Satisfied
		}
		out.Dependencies[i] = newDependency(r, satisfied)
	}
	return json.Marshal(out)
}
