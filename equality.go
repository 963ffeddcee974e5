package depcontainer

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// LooseEquals reports whether a and b are equal after the coercions form
// data needs, where "1", 1 and 1.0 all describe the same value.
//
//   - nil equals only nil; nil and "" are not equal.
//   - A bool compared to anything compares truthiness (see IsEmpty).
//   - Numbers compare numerically. A numeric string compares numerically
//     with a number or with another numeric string ("0" == 0, "1" == "01").
//   - A number compared to a non-numeric string compares the number's
//     decimal text with the string.
//   - Slices and arrays compare element by element; maps compare key by
//     key. Elements are compared loosely.
//   - Anything else is compared with reflect.DeepEqual.
func LooseEquals(a, b any) bool {
	a, b = indirect(a), indirect(b)

	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if x, ok := a.(bool); ok {
		return x == !IsEmpty(b)
	}
	if y, ok := b.(bool); ok {
		return y == !IsEmpty(a)
	}

	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	sa, aStr := a.(string)
	sb, bStr := b.(string)

	switch {
	case aNum && bNum:
		return na.equal(nb)
	case aStr && bStr:
		if na, ok := numericString(sa); ok {
			if nb, ok := numericString(sb); ok {
				return na.equal(nb)
			}
		}
		return sa == sb
	case aNum && bStr:
		if nb, ok := numericString(sb); ok {
			return na.equal(nb)
		}
		return na.String() == sb
	case aStr && bNum:
		if na, ok := numericString(sa); ok {
			return na.equal(nb)
		}
		return sa == nb.String()
	case aStr || bStr || aNum || bNum:
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isList(va) && isList(vb) {
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !LooseEquals(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	if va.Kind() == reflect.Map && vb.Kind() == reflect.Map {
		if va.Len() != vb.Len() {
			return false
		}
		bm := make(map[string]any, vb.Len())
		it := vb.MapRange()
		for it.Next() {
			bm[fmt.Sprint(it.Key().Interface())] = it.Value().Interface()
		}
		it = va.MapRange()
		for it.Next() {
			other, ok := bm[fmt.Sprint(it.Key().Interface())]
			if !ok || !LooseEquals(it.Value().Interface(), other) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// IsEmpty reports whether v is empty in the form-data sense: nil, false,
// numeric zero, "", "0", an empty slice, array or map, or a nil pointer.
func IsEmpty(v any) bool {
	v = indirect(v)
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == "" || x == "0"
	}
	if n, ok := toNumber(v); ok {
		return n.isZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// isNullOrZero reports whether v is exactly nil, an integer zero or "0".
// Fill gating passes withBlank to accept "" as well.
func isNullOrZero(v any, withBlank bool) bool {
	v = indirect(v)
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == "0" || (withBlank && x == "")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	}
	return false
}

// containsLoose reports whether any member of set loosely equals v.
func containsLoose(set []any, v any) bool {
	for _, m := range set {
		if LooseEquals(v, m) {
			return true
		}
	}
	return false
}

// indirect dereferences pointers and unwraps named string and bool types;
// a nil pointer becomes nil.
func indirect(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return rv.Interface()
}

func isList(v reflect.Value) bool {
	k := v.Kind()
	return (k == reflect.Slice || k == reflect.Array) && v.Type().Elem().Kind() != reflect.Uint8
}

// number holds an integer exactly, or a float.
type number struct {
	i     int64
	f     float64
	isInt bool
}

func (n number) float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func (n number) equal(o number) bool {
	if n.isInt && o.isInt {
		return n.i == o.i
	}
	return n.float() == o.float()
}

func (n number) isZero() bool {
	if n.isInt {
		return n.i == 0
	}
	return n.f == 0
}

func (n number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	if n.f == math.Trunc(n.f) && math.Abs(n.f) < 1e15 {
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func toNumber(v any) (number, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{i: rv.Int(), isInt: true}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return number{f: float64(u)}, true
		}
		return number{i: int64(u), isInt: true}, true
	case reflect.Float32, reflect.Float64:
		return number{f: rv.Float()}, true
	}
	return number{}, false
}

// numericString parses s as a number, allowing surrounding whitespace.
func numericString(s string) (number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return number{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return number{i: i, isInt: true}, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return number{}, false
	}
	return number{f: f}, true
}
