// Package definition builds dependency containers from YAML definition
// files.
//
// A file lists containers, each with its attribute, its child fields and its
// dependencies. A child field is either a field name or, for nested
// containers, another container definition:
//
//	containers:
//	  - attribute: company
//	    fields:
//	      - company_name
//	      - attribute: vat
//	        fields: [vat_id]
//	        dependencies:
//	          - field: country.code
//	            notin: [US]
//	    dependencies:
//	      - field: type
//	        value: business
//	      - field: age
//	        expr: "int(value) >= 18"
//
// Each dependency has a field and exactly one of the condition keys value,
// not, empty, notEmpty, nullOrZero, in, notin and expr. The flag conditions
// (empty, notEmpty, nullOrZero) must be true; in and notin take a list; expr
// takes an expression string.
package definition

import (
	"fmt"

	"github.com/ezachrisen/depcontainer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the top level of a definition file.
type File struct {
	Containers []Definition `yaml:"containers"`
}

// Definition describes one container.
type Definition struct {
	Attribute    string       `yaml:"attribute"`
	Fields       []FieldDef   `yaml:"fields"`
	Dependencies []Dependency `yaml:"dependencies"`
}

// FieldDef is a child field: either a field name or a nested container.
type FieldDef struct {
	Name      string
	Container *Definition
}

func (f *FieldDef) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Decode(&f.Name)
	case yaml.MappingNode:
		f.Container = &Definition{}
		return n.Decode(f.Container)
	}
	return errors.Errorf("line %d: a field must be a name or a container", n.Line)
}

// Dependency is one rule of a container.
type Dependency struct {
	// Field identifier, possibly with a property ("country.code").
	Field   string
	Kind    depcontainer.Kind
	Operand any

	line int
}

func (d *Dependency) UnmarshalYAML(n *yaml.Node) error {
	var raw map[string]any
	if err := n.Decode(&raw); err != nil {
		return err
	}
	d.line = n.Line

	field, ok := raw["field"].(string)
	if !ok || field == "" {
		return errors.Errorf("line %d: dependency requires a field", n.Line)
	}
	d.Field = field
	delete(raw, "field")

	if len(raw) != 1 {
		return errors.Errorf("line %d: dependency on %s must have exactly one condition, found %d", n.Line, field, len(raw))
	}

	for key, v := range raw {
		kind, ok := depcontainer.KindForKey(key)
		if !ok {
			return errors.Errorf("line %d: unknown condition %q on %s", n.Line, key, field)
		}
		d.Kind = kind
		d.Operand = v
	}

	switch d.Kind {
	case depcontainer.Empty, depcontainer.NotEmpty, depcontainer.NullOrZero:
		if b, ok := d.Operand.(bool); !ok || !b {
			return errors.Errorf("line %d: condition %s on %s must be true", n.Line, d.Kind.Key(), field)
		}
		d.Operand = nil
	case depcontainer.In, depcontainer.NotIn:
		if d.Operand == nil {
			d.Operand = []any{}
		}
		if _, ok := d.Operand.([]any); !ok {
			return errors.Errorf("line %d: condition %s on %s must be a list", n.Line, d.Kind.Key(), field)
		}
	case depcontainer.Expression:
		if _, ok := d.Operand.(string); !ok {
			return errors.Errorf("line %d: condition expr on %s must be a string", n.Line, field)
		}
	}
	return nil
}

// Rule returns the dependency as a container rule.
func (d Dependency) Rule() depcontainer.Rule {
	switch d.Kind {
	case depcontainer.In, depcontainer.NotIn:
		values, _ := d.Operand.([]any)
		return depcontainer.NewRule(d.Field, d.Kind, values...)
	case depcontainer.Empty, depcontainer.NotEmpty, depcontainer.NullOrZero:
		return depcontainer.NewRule(d.Field, d.Kind)
	}
	return depcontainer.NewRule(d.Field, d.Kind, d.Operand)
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s (line %d)", d.Rule(), d.line)
}
