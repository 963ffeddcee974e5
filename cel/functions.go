package cel

import (
	"fmt"

	"github.com/ezachrisen/depcontainer"
	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// looseFunctions declares functions that apply the container's comparison
// rules inside expressions:
//
//	empty(value)            depcontainer.IsEmpty
//	loose_equals(a, b)      depcontainer.LooseEquals
func looseFunctions() []celgo.EnvOption {
	return []celgo.EnvOption{
		celgo.Function("empty",
			celgo.Overload("empty_dyn",
				[]*celgo.Type{celgo.DynType},
				celgo.BoolType,
				celgo.UnaryBinding(func(v ref.Val) ref.Val {
					return types.Bool(depcontainer.IsEmpty(native(v)))
				}))),
		celgo.Function("loose_equals",
			celgo.Overload("loose_equals_dyn_dyn",
				[]*celgo.Type{celgo.DynType, celgo.DynType},
				celgo.BoolType,
				celgo.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
					return types.Bool(depcontainer.LooseEquals(native(lhs), native(rhs)))
				}))),
	}
}

// native converts a CEL value to a plain Go value: null to nil, lists to
// []any and maps to map[string]any.
func native(v ref.Val) any {
	if _, ok := v.(types.Null); ok {
		return nil
	}
	switch x := v.(type) {
	case traits.Mapper:
		out := map[string]any{}
		it := x.Iterator()
		for it.HasNext() == types.True {
			k := it.Next()
			val, _ := x.Find(k)
			out[fmt.Sprint(native(k))] = native(val)
		}
		return out
	case traits.Lister:
		var out []any
		it := x.Iterator()
		for it.HasNext() == types.True {
			out = append(out, native(it.Next()))
		}
		if out == nil {
			out = []any{}
		}
		return out
	}
	return v.Value()
}
