package depcontainer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/markbates/inflect"
)

// This file contains the adapter that lets a Go struct act as a Resource,
// Request or model.

// Struct reads and writes the exported fields of a Go struct by attribute
// name. A field's attribute name is taken from its `attr` tag, or else is the
// snake_case form of the field name, so RoleType is found as "role_type".
// The Go field name is accepted as well.
type Struct struct {
	v reflect.Value
}

// NewStruct wraps v, which should be a struct or a pointer to one. Writes
// through Set require a pointer.
func NewStruct(v any) Struct {
	return Struct{v: reflect.ValueOf(v)}
}

func (s Struct) Get(attribute string) (any, bool) {
	f, ok := s.field(attribute)
	if !ok {
		return nil, false
	}
	return f.Interface(), true
}

// Set assigns value to the field with the attribute name, converting it to
// the field's type when Go allows the conversion.
func (s Struct) Set(attribute string, value any) error {
	f, ok := s.field(attribute)
	if !ok {
		return fmt.Errorf("no field for attribute %q", attribute)
	}
	if !f.CanSet() {
		return fmt.Errorf("field for attribute %q cannot be set; pass a pointer to NewStruct", attribute)
	}
	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().ConvertibleTo(f.Type()) {
		return fmt.Errorf("attribute %q: cannot assign %T to %s", attribute, value, f.Type())
	}
	f.Set(rv.Convert(f.Type()))
	return nil
}

func (s Struct) field(attribute string) (reflect.Value, bool) {
	v := reflect.Indirect(s.v)
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return findField(v, attribute)
}

// findField searches v and its embedded structs for the attribute.
func findField(v reflect.Value, attribute string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			ev := reflect.Indirect(v.Field(i))
			if ev.Kind() == reflect.Struct {
				if f, ok := findField(ev, attribute); ok {
					return f, true
				}
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if sf.Name == attribute || attributeName(sf) == attribute {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func attributeName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("attr"); ok {
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return inflect.Underscore(sf.Name)
}
