package definition

import (
	"io"
	"os"
	"strings"

	"github.com/ezachrisen/depcontainer"
	"github.com/ezachrisen/depcontainer/fields"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FieldFactory returns the child field for a field name in a definition.
type FieldFactory func(name string) (depcontainer.Field, error)

// Options used when building containers from definitions.
type Options struct {
	// Creates child fields. Default: fields.NewAttribute
	FieldFactory FieldFactory

	// Applied to every container, nested ones included.
	ContainerOptions []depcontainer.Option
}

type Option func(o *Options)

// WithFieldFactory sets the function that creates child fields.
func WithFieldFactory(f FieldFactory) Option {
	return func(o *Options) {
		o.FieldFactory = f
	}
}

// WithContainerOptions passes options, such as an evaluator for expression
// rules, to every container built.
func WithContainerOptions(opts ...depcontainer.Option) Option {
	return func(o *Options) {
		o.ContainerOptions = append(o.ContainerOptions, opts...)
	}
}

// LoadFile reads a definition file and builds its containers.
func LoadFile(path string, opts ...Option) ([]*depcontainer.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read definitions")
	}
	cs, err := Parse(data, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return cs, nil
}

// Load reads definitions from r and builds the containers.
func Load(r io.Reader, opts ...Option) ([]*depcontainer.Container, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read definitions")
	}
	return Parse(data, opts...)
}

// Parse builds the containers described by a YAML document. Every
// container is compiled, so expression rules are checked here.
func Parse(data []byte, opts ...Option) ([]*depcontainer.Container, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshal yaml")
	}
	return Build(f, opts...)
}

// Build creates the containers of a parsed file.
func Build(f File, opts ...Option) ([]*depcontainer.Container, error) {
	o := Options{
		FieldFactory: func(name string) (depcontainer.Field, error) {
			return fields.NewAttribute(name), nil
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]*depcontainer.Container, 0, len(f.Containers))
	for i, d := range f.Containers {
		c, err := build(d, o)
		if err != nil {
			return nil, errors.Wrapf(err, "container %d", i)
		}
		out = append(out, c)
	}
	return out, nil
}

func build(d Definition, o Options) (*depcontainer.Container, error) {
	if strings.TrimSpace(d.Attribute) == "" {
		return nil, errors.New("attribute is required")
	}

	children := make([]depcontainer.Field, 0, len(d.Fields))
	for i, fd := range d.Fields {
		if fd.Container != nil {
			nested, err := build(*fd.Container, o)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: field %d", d.Attribute, i)
			}
			children = append(children, nested)
			continue
		}
		if fd.Name == "" {
			return nil, errors.Errorf("%s: field %d has no name", d.Attribute, i)
		}
		field, err := o.FieldFactory(fd.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: field %s", d.Attribute, fd.Name)
		}
		children = append(children, field)
	}

	c := depcontainer.New(children, d.Attribute, o.ContainerOptions...)
	for _, dep := range d.Dependencies {
		c.Add(dep.Rule())
	}
	if err := c.Compile(); err != nil {
		return nil, errors.Wrapf(err, "%s", d.Attribute)
	}
	return c, nil
}
