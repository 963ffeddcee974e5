package depcontainer

// A Field is a form field the host renders and fills. A Container is itself
// a Field, so containers can be nested.
type Field interface {
	// ResolveForDisplay prepares the field's value from the resource for
	// read-only display.
	ResolveForDisplay(r Resource) error

	// Resolve prepares the field's value from the resource for editing.
	// An empty attribute means the field's own attribute.
	Resolve(r Resource, attribute string) error

	// Fill writes the field's submitted value into the model. Work that
	// must wait until the model is saved is returned as a callback, which
	// may be nil.
	Fill(req Request, model any) (Callback, error)
}

// Callback is deferred work returned by Fill.
type Callback func() error

// ResolveForDisplay resolves the child fields and evaluates the rules
// against the resource. The outcome is kept for MarshalJSON.
func (c *Container) ResolveForDisplay(r Resource) error {
	res, err := c.EvaluateForDisplay(r)
	if err != nil {
		return err
	}
	c.displayed = res
	return nil
}

// Resolve forwards to every child field.
func (c *Container) Resolve(r Resource, attribute string) error {
	for _, f := range c.fields {
		if err := f.Resolve(r, attribute); err != nil {
			return err
		}
	}
	return nil
}

// FillInto fills every child field into the model, in order, and returns
// a callback running the children's deferred work in the same order. The
// attribute is that of the container; children fill their own attributes.
//
// FillInto does not check the rules; see Fill.
func (c *Container) FillInto(req Request, model any, attribute string) (Callback, error) {
	var callbacks []Callback
	for _, f := range c.fields {
		cb, err := f.Fill(req, model)
		if err != nil {
			return nil, err
		}
		if cb != nil {
			callbacks = append(callbacks, cb)
		}
	}

	return func() error {
		for _, cb := range callbacks {
			if err := cb(); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

// Fill fills the child fields when the rules hold for the submitted data,
// and does nothing otherwise.
func (c *Container) Fill(req Request, model any) (Callback, error) {
	if !c.AreDependenciesSatisfied(req) {
		return nil, nil
	}
	return c.FillInto(req, model, c.Attribute)
}

// Available returns the fields that take part in a submission: containers
// whose rules hold for the request are replaced by their (available)
// children, containers whose rules do not hold are dropped, and other
// fields are kept.
func Available(req Request, fields ...Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		c, ok := f.(*Container)
		if !ok {
			out = append(out, f)
			continue
		}
		if c.AreDependenciesSatisfied(req) {
			out = append(out, Available(req, c.fields...)...)
		}
	}
	return out
}
