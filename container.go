package depcontainer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Component is the name of the presentation component that renders a
// container.
const Component = "dependency-container"

var (
	// ErrInvalidRule is returned by Compile for rules that cannot be evaluated.
	ErrInvalidRule = errors.New("invalid dependency rule")

	// ErrNoEvaluator is returned when an Expression rule is used on a
	// container without an Evaluator.
	ErrNoEvaluator = errors.New("no evaluator for expression rule")
)

// A Container bundles child fields and shows or fills them only when its
// dependency rules hold.
//
// Rules are added with the DependsOn methods at definition time; each
// returns the container so calls can be chained:
//
//	c := depcontainer.New(fields, "company").
//		DependsOn("type", "business").
//		DependsOnNotEmpty("vat_id")
//
// A container does not lock. Build it, then evaluate it from one goroutine
// per request.
type Container struct {
	// The attribute the container is registered under in the host.
	Attribute string

	fields []Field
	rules  []Rule
	opts   Options

	// result of the latest ResolveForDisplay, serialized by MarshalJSON
	displayed *Result
}

// Options used by the container during evaluation.
type Options struct {
	// Consulted by Equals rules on display when the attribute does not match.
	// Nil disables the fallback.
	Discriminator Discriminator

	// Evaluates Expression rules.
	Evaluator Evaluator
}

type Option func(o *Options)

// Given an array of Option functions, apply their effect on the Options
// struct.
func applyOptions(o *Options, opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithDiscriminator sets the strategy used to match polymorphic relation
// types. Pass nil to disable it.
// Default: MorphType{}
func WithDiscriminator(d Discriminator) Option {
	return func(o *Options) {
		o.Discriminator = d
	}
}

// WithEvaluator sets the evaluator for Expression rules.
// Default: none
func WithEvaluator(e Evaluator) Option {
	return func(o *Options) {
		o.Evaluator = e
	}
}

// New returns a container of the fields registered under attribute, with
// no dependency rules.
func New(fields []Field, attribute string, opts ...Option) *Container {
	c := Container{
		Attribute: attribute,
		fields:    append([]Field{}, fields...),
		opts: Options{
			Discriminator: MorphType{},
		},
	}
	applyOptions(&c.opts, opts...)
	return &c
}

// DependsOn requires the field to loosely equal value.
func (c *Container) DependsOn(field string, value any) *Container {
	return c.Add(NewRule(field, Equals, value))
}

// DependsOnNot requires the field not to loosely equal value.
func (c *Container) DependsOnNot(field string, value any) *Container {
	return c.Add(NewRule(field, NotEquals, value))
}

// DependsOnEmpty requires the field to be empty.
func (c *Container) DependsOnEmpty(field string) *Container {
	return c.Add(NewRule(field, Empty))
}

// DependsOnNotEmpty requires the field not to be empty.
func (c *Container) DependsOnNotEmpty(field string) *Container {
	return c.Add(NewRule(field, NotEmpty))
}

// DependsOnNullOrZero requires the field to be null or zero.
func (c *Container) DependsOnNullOrZero(field string) *Container {
	return c.Add(NewRule(field, NullOrZero))
}

// DependsOnIn requires the field to loosely equal one of values.
func (c *Container) DependsOnIn(field string, values ...any) *Container {
	return c.Add(NewRule(field, In, values...))
}

// DependsOnNotIn requires the field to loosely equal none of values.
func (c *Container) DependsOnNotIn(field string, values ...any) *Container {
	return c.Add(NewRule(field, NotIn, values...))
}

// DependsOnExpr requires expr to evaluate to true with the field's value
// bound to "value". The container needs an Evaluator.
func (c *Container) DependsOnExpr(field string, expr string) *Container {
	return c.Add(NewRule(field, Expression, expr))
}

// Add appends the rule.
func (c *Container) Add(r Rule) *Container {
	c.rules = append(c.rules, r)
	return c
}

// Rules returns a copy of the container's rules in the order they were added.
func (c *Container) Rules() []Rule {
	return append([]Rule{}, c.rules...)
}

// Fields returns the container's child fields.
func (c *Container) Fields() []Field {
	return append([]Field{}, c.fields...)
}

// Options returns the options the container evaluates with.
func (c *Container) Options() Options {
	return c.opts
}

// Compile checks the rules and compiles the expressions of Expression rules
// with the container's Evaluator. Uncompiled expressions are compiled on
// each evaluation instead.
func (c *Container) Compile() error {
	for i := range c.rules {
		r := &c.rules[i]
		if strings.TrimSpace(r.Field) == "" || strings.TrimSpace(r.Property) == "" {
			return fmt.Errorf("rule %d: %w: missing field", i, ErrInvalidRule)
		}
		if _, ok := kindKeys[r.Kind]; !ok {
			return fmt.Errorf("rule %d (%s): %w: unknown kind %v", i, r.Field, ErrInvalidRule, r.Kind)
		}
		if r.Kind != Expression {
			continue
		}
		if strings.TrimSpace(r.Expr) == "" {
			return fmt.Errorf("rule %d (%s): %w: missing expression", i, r.Field, ErrInvalidRule)
		}
		if c.opts.Evaluator == nil {
			return fmt.Errorf("rule %d (%s): %w", i, r.Field, ErrNoEvaluator)
		}
		prg, err := c.opts.Evaluator.Compile(r.Expr)
		if err != nil {
			return fmt.Errorf("compiling rule %d (%s): %w", i, r.Field, err)
		}
		r.Program = prg
	}
	return nil
}

// String returns a table of the container's rules.
func (c *Container) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nDEPENDENCIES: " + c.Attribute + "\n")
	tw.AppendHeader(table.Row{"#", "Field", "Property", "Kind", "Operand"})
	for i, r := range c.rules {
		tw.AppendRow(table.Row{i + 1, r.Field, r.Property, r.Kind, formatOperand(r.Operand())})
	}
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}
