// Package fields provides a plain attribute field for use as a
// dependency container's child.
package fields

import (
	"encoding/json"
	"fmt"

	"github.com/ezachrisen/depcontainer"
)

// An Attribute field shows and fills a single attribute.
type Attribute struct {
	// The resource attribute and the request key.
	Name string

	// Presentation component. Default "text-field".
	Component string

	// The value resolved by the latest ResolveForDisplay or Resolve.
	Value any

	// AfterSave, when set, is returned from Fill as deferred work run once
	// the model has been saved.
	AfterSave func(model any) error
}

// NewAttribute returns a text field for the attribute.
func NewAttribute(name string) *Attribute {
	return &Attribute{Name: name, Component: "text-field"}
}

func (a *Attribute) ResolveForDisplay(r depcontainer.Resource) error {
	return a.Resolve(r, "")
}

func (a *Attribute) Resolve(r depcontainer.Resource, attribute string) error {
	if attribute == "" {
		attribute = a.Name
	}
	a.Value = nil
	if r == nil {
		return nil
	}
	if v, ok := r.Get(attribute); ok {
		a.Value = v
	}
	return nil
}

// Fill copies the submitted value to the model, which must be a
// depcontainer.Setter or a map[string]any. Keys absent from the request are
// left alone.
func (a *Attribute) Fill(req depcontainer.Request, model any) (depcontainer.Callback, error) {
	v, ok := req.Get(a.Name)
	if !ok {
		return nil, nil
	}

	switch m := model.(type) {
	case depcontainer.Setter:
		if err := m.Set(a.Name, v); err != nil {
			return nil, fmt.Errorf("filling %s: %w", a.Name, err)
		}
	case map[string]any:
		m[a.Name] = v
	default:
		return nil, fmt.Errorf("filling %s: unsupported model type %T", a.Name, model)
	}

	if a.AfterSave == nil {
		return nil, nil
	}
	return func() error {
		return a.AfterSave(model)
	}, nil
}

func (a *Attribute) MarshalJSON() ([]byte, error) {
	component := a.Component
	if component == "" {
		component = "text-field"
	}
	return json.Marshal(struct {
		Component string `json:"component"`
		Attribute string `json:"attribute"`
		Value     any    `json:"value"`
	}{component, a.Name, a.Value})
}
