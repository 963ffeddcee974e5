package depcontainer

import (
	"net/url"
	"strings"
)

// A Resource is a stored record whose attributes can be read by name.
// Get returns false when the attribute does not exist.
type Resource interface {
	Get(attribute string) (any, bool)
}

// A Request holds submitted form data, looked up by key.
type Request interface {
	Get(key string) (any, bool)
}

// MapResource is implemented by resources that hold plain keyed data rather
// than a model. Equals rules against such a resource match only attributes
// that are present and not nil, and never consult a discriminator.
type MapResource interface {
	Resource
	IsMap() bool
}

// Setter is implemented by models that child fields can write to.
type Setter interface {
	Set(key string, value any) error
}

// Data is plain keyed data. It can be used as a Resource, a Request or a
// model.
type Data map[string]any

func (d Data) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// IsMap always returns true.
func (d Data) IsMap() bool { return true }

func (d Data) Set(key string, value any) error {
	d[key] = value
	return nil
}

func isMapResource(r Resource) bool {
	m, ok := r.(MapResource)
	return ok && m.IsMap()
}

// Form adapts decoded form values to a Request. A key with a single value
// yields a string; a key with several values yields a []any of strings.
// Values submitted as "key[]" are found under "key".
type Form url.Values

func (f Form) Get(key string) (any, bool) {
	vs, ok := f[key]
	if !ok && !strings.HasSuffix(key, "[]") {
		vs, ok = f[key+"[]"]
		if ok {
			return list(vs), true
		}
	}
	if !ok {
		return nil, false
	}
	if len(vs) == 1 {
		return vs[0], true
	}
	return list(vs), true
}

func list(vs []string) []any {
	l := make([]any, len(vs))
	for i := range vs {
		l[i] = vs[i]
	}
	return l
}
