package depcontainer_test

import (
	"testing"

	"github.com/ezachrisen/depcontainer"
	"github.com/matryer/is"
)

func TestParseField(t *testing.T) {

	cases := []struct {
		id              string
		field, property string
	}{
		{"status", "status", "status"},
		{"country.code", "country", "code"},
		{"a.b.c", "a", "b"},
		{"", "", ""},
	}

	for _, c := range cases {
		f, p := depcontainer.ParseField(c.id)
		if f != c.field || p != c.property {
			t.Errorf("ParseField(%q) = (%q, %q), wanted (%q, %q)", c.id, f, p, c.field, c.property)
		}
	}
}

func TestNewRule(t *testing.T) {
	is := is.New(t)

	r := depcontainer.NewRule("country.code", depcontainer.In, "DE", "AT")
	is.Equal(r.Field, "country")
	is.Equal(r.Property, "code")
	is.Equal(r.Kind, depcontainer.In)
	is.Equal(r.Values, []any{"DE", "AT"})
	is.Equal(r.Value, nil)

	r = depcontainer.NewRule("status", depcontainer.Equals, "active")
	is.Equal(r.Value, "active")
	is.Equal(r.Operand(), "active")

	r = depcontainer.NewRule("status", depcontainer.NotIn)
	is.Equal(r.Values, []any{}) // no operands still yields an empty set
	is.Equal(r.Operand(), []any{})

	r = depcontainer.NewRule("age", depcontainer.Expression, "value > 3")
	is.Equal(r.Expr, "value > 3")
	is.Equal(r.Operand(), "value > 3")

	r = depcontainer.NewRule("vat", depcontainer.NotEmpty, "ignored")
	is.Equal(r.Operand(), nil)
}

func TestKindKeys(t *testing.T) {
	is := is.New(t)

	cases := map[depcontainer.Kind]struct {
		key, name string
	}{
		depcontainer.Equals:     {"value", "equals"},
		depcontainer.NotEquals:  {"not", "notEquals"},
		depcontainer.Empty:      {"empty", "empty"},
		depcontainer.NotEmpty:   {"notEmpty", "notEmpty"},
		depcontainer.NullOrZero: {"nullOrZero", "nullOrZero"},
		depcontainer.In:         {"in", "in"},
		depcontainer.NotIn:      {"notin", "notIn"},
		depcontainer.Expression: {"expr", "expr"},
	}

	for k, c := range cases {
		is.Equal(k.Key(), c.key)
		is.Equal(k.String(), c.name)
		got, ok := depcontainer.KindForKey(c.key)
		is.True(ok)
		is.Equal(got, k)
	}

	_, ok := depcontainer.KindForKey("notEquals")
	is.True(!ok)
	is.Equal(depcontainer.Kind(42).String(), "Kind(42)")
}

func TestRuleString(t *testing.T) {

	cases := []struct {
		rule depcontainer.Rule
		want string
	}{
		{depcontainer.NewRule("status", depcontainer.Equals, "active"), `status == "active"`},
		{depcontainer.NewRule("role_id", depcontainer.NotEquals, 2), `role_id != 2`},
		{depcontainer.NewRule("parent", depcontainer.Equals, nil), `parent == null`},
		{depcontainer.NewRule("vat", depcontainer.Empty), `vat is empty`},
		{depcontainer.NewRule("vat", depcontainer.NotEmpty), `vat is not empty`},
		{depcontainer.NewRule("parent_id", depcontainer.NullOrZero), `parent_id is null or zero`},
		{depcontainer.NewRule("country.code", depcontainer.In, "DE", "AT"), `country.code in ["DE", "AT"]`},
		{depcontainer.NewRule("type", depcontainer.NotIn, 1, "b"), `type not in [1, "b"]`},
		{depcontainer.NewRule("age", depcontainer.Expression, "value >= 18"), `age: value >= 18`},
	}

	for _, c := range cases {
		if got := c.rule.String(); got != c.want {
			t.Errorf("got %s, wanted %s", got, c.want)
		}
	}
}
