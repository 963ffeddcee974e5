package depcontainer

import "testing"

func TestIsNullOrZero(t *testing.T) {

	cases := map[string]struct {
		v                  any
		display, fillGated bool
	}{
		"nil":         {nil, true, true},
		"zero":        {0, true, true},
		"int64 zero":  {int64(0), true, true},
		"uint zero":   {uint(0), true, true},
		"zero string": {"0", true, true},
		"blank":       {"", false, true},
		"float zero":  {0.0, false, false},
		"false":       {false, false, false},
		"double zero": {"00", false, false},
		"one":         {1, false, false},
	}

	for name, c := range cases {
		if got := isNullOrZero(c.v, false); got != c.display {
			t.Errorf("case %s: display: got %t, wanted %t", name, got, c.display)
		}
		if got := isNullOrZero(c.v, true); got != c.fillGated {
			t.Errorf("case %s: fill: got %t, wanted %t", name, got, c.fillGated)
		}
	}
}

func TestNumberString(t *testing.T) {
	cases := map[string]struct {
		n    number
		want string
	}{
		"int":      {number{i: 42, isInt: true}, "42"},
		"whole":    {number{f: 3}, "3"},
		"fraction": {number{f: 1.25}, "1.25"},
	}
	for name, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("case %s: got %q, wanted %q", name, got, c.want)
		}
	}
}
