package cel

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// ValueKey is the variable an expression reads the property value from.
const ValueKey = "value"

// ErrNotBoolean is returned for expressions that do not produce a boolean.
var ErrNotBoolean = errors.New("expression does not produce a boolean")

// Evaluator compiles and evaluates the expressions of dependency rules with
// CEL. Compiled programs are cached by expression, so one Evaluator can
// serve many containers.
type Evaluator struct {
	envOpts []celgo.EnvOption

	once   sync.Once
	env    *celgo.Env
	envErr error

	programs sync.Map
}

// Option configures an Evaluator.
type Option func(e *Evaluator)

// EnvOptions adds options, such as custom functions, to the CEL environment.
func EnvOptions(opts ...celgo.EnvOption) Option {
	return func(e *Evaluator) {
		e.envOpts = append(e.envOpts, opts...)
	}
}

// NewEvaluator returns an Evaluator whose environment declares "value" as a
// dynamic variable and provides the CEL string extensions and the empty()
// and loose_equals() functions.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) environment() (*celgo.Env, error) {
	e.once.Do(func() {
		opts := []celgo.EnvOption{
			celgo.Variable(ValueKey, celgo.DynType),
			ext.Strings(),
		}
		opts = append(opts, looseFunctions()...)
		opts = append(opts, e.envOpts...)
		e.env, e.envErr = celgo.NewEnv(opts...)
	})
	return e.env, e.envErr
}

// Compile parses and checks the expression and returns a cel.Program.
func (e *Evaluator) Compile(expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("expression required")
	}
	if cached, ok := e.programs.Load(expr); ok {
		return cached.(celgo.Program), nil
	}

	env, err := e.environment()
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compiling %q: %w", expr, iss.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(celgo.BoolType) && !out.IsExactType(celgo.DynType) {
		return nil, fmt.Errorf("%w: %q produces %s", ErrNotBoolean, expr, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("generating program for %q: %w", expr, err)
	}
	e.programs.Store(expr, prg)
	return prg, nil
}

// Evaluate runs a program returned by Compile with value bound to "value".
func (e *Evaluator) Evaluate(program any, value any) (bool, error) {
	prg, ok := program.(celgo.Program)
	if !ok {
		return false, fmt.Errorf("compiled program has type %T, expected cel.Program", program)
	}

	out, _, err := prg.Eval(map[string]any{ValueKey: value})
	if err != nil {
		return false, err
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBoolean, out.Value())
	}
	return b, nil
}
