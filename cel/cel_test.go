package cel_test

import (
	"errors"
	"testing"

	"github.com/ezachrisen/depcontainer"
	"github.com/ezachrisen/depcontainer/cel"
	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/matryer/is"
)

func TestEvaluate(t *testing.T) {

	cases := map[string]struct {
		expr  string
		value any
		want  bool
	}{
		"string equality":        {expr: `value == "active"`, value: "active", want: true},
		"string inequality":      {expr: `value == "active"`, value: "inactive", want: false},
		"int conversion":         {expr: `int(value) >= 18`, value: "21", want: true},
		"int conversion, under":  {expr: `int(value) >= 18`, value: "17", want: false},
		"native int":             {expr: `value > 3`, value: 5, want: true},
		"list membership":        {expr: `"x" in value`, value: []any{"x", "y"}, want: true},
		"string extension":       {expr: `value.lowerAscii() == "admin"`, value: "ADMIN", want: true},
		"null":                   {expr: `value == null`, value: nil, want: true},
		"empty on blank":         {expr: `empty(value)`, value: "", want: true},
		"empty on zero string":   {expr: `empty(value)`, value: "0", want: true},
		"empty on value":         {expr: `empty(value)`, value: "x", want: false},
		"empty on empty list":    {expr: `empty(value)`, value: []any{}, want: true},
		"loose equals number":    {expr: `loose_equals(value, 1)`, value: "01", want: true},
		"loose equals string":    {expr: `loose_equals(value, "b")`, value: "a", want: false},
		"loose equals on a list": {expr: `loose_equals(value, [1, "2"])`, value: []any{"1", 2}, want: true},
	}

	e := cel.NewEvaluator()
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			prg, err := e.Compile(c.expr)
			is.NoErr(err)
			got, err := e.Evaluate(prg, c.value)
			is.NoErr(err)
			is.Equal(got, c.want)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	is := is.New(t)
	e := cel.NewEvaluator()

	_, err := e.Compile("")
	is.True(err != nil)

	_, err = e.Compile(`value ==`)
	is.True(err != nil)

	_, err = e.Compile(`"text"`)
	is.True(errors.Is(err, cel.ErrNotBoolean))

	_, err = e.Compile(`unknown_var > 1`)
	is.True(err != nil)
}

func TestCompileCachesPrograms(t *testing.T) {
	is := is.New(t)
	e := cel.NewEvaluator()

	a, err := e.Compile(`value == 1`)
	is.NoErr(err)
	b, err := e.Compile(` value == 1 `)
	is.NoErr(err)
	is.Equal(a, b)
}

func TestEvaluateErrors(t *testing.T) {
	is := is.New(t)
	e := cel.NewEvaluator()

	_, err := e.Evaluate("not a program", 1)
	is.True(err != nil)

	prg, err := e.Compile(`int(value) > 1`)
	is.NoErr(err)
	_, err = e.Evaluate(prg, "abc")
	is.True(err != nil) // "abc" cannot be converted to int
}

func TestCustomFunction(t *testing.T) {
	is := is.New(t)

	isAdmin := celgo.Function("is_admin",
		celgo.Overload("is_admin_string",
			[]*celgo.Type{celgo.StringType},
			celgo.BoolType,
			celgo.UnaryBinding(func(v ref.Val) ref.Val {
				return types.Bool(v.Value().(string) == "admin")
			})))

	e := cel.NewEvaluator(cel.EnvOptions(isAdmin))
	prg, err := e.Compile(`is_admin(string(value))`)
	is.NoErr(err)
	ok, err := e.Evaluate(prg, "admin")
	is.NoErr(err)
	is.True(ok)
}

func TestContainerWithExpressions(t *testing.T) {
	is := is.New(t)

	c := depcontainer.New(nil, "adult", depcontainer.WithEvaluator(cel.NewEvaluator())).
		DependsOnExpr("age", `int(value) >= 18`).
		DependsOn("country", "DE")
	is.NoErr(c.Compile())

	is.True(c.AreDependenciesSatisfied(depcontainer.Data{"age": "30", "country": "DE"}))
	is.True(!c.AreDependenciesSatisfied(depcontainer.Data{"age": "12", "country": "DE"}))

	// a value that cannot be converted leaves the rule unsatisfied
	res := c.EvaluateRequest(depcontainer.Data{"age": "old", "country": "DE"})
	is.True(!res.Pass)
	is.True(res.Rules[0].Err != nil)

	disp, err := c.EvaluateForDisplay(depcontainer.Data{"age": 40, "country": "DE"})
	is.NoErr(err)
	is.Equal(disp.Satisfied(), []bool{true, true})
}

func TestContainerCompileError(t *testing.T) {
	is := is.New(t)

	c := depcontainer.New(nil, "x", depcontainer.WithEvaluator(cel.NewEvaluator())).
		DependsOnExpr("age", `value +`)
	is.True(c.Compile() != nil)
}
