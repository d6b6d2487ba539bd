package starexpr

import (
	"fmt"
	"reflect"

	carbon "github.com/grindlemire/go-carbon"
	"go.starlark.net/starlark"
)

// toStarlark converts a scope binding.
func toStarlark(v carbon.Value) starlark.Value {
	switch v.Kind() {
	case carbon.KindBool:
		return starlark.Bool(v.AsBool())
	case carbon.KindInt:
		return starlark.MakeInt64(v.AsInt())
	case carbon.KindFloat:
		return starlark.Float(v.AsFloat())
	case carbon.KindString:
		return starlark.String(v.AsString())
	case carbon.KindSize:
		return sizeValue{v.AsSize()}
	case carbon.KindTransform:
		return transformValue{v.AsTransform()}
	case carbon.KindColor:
		return colorValue{v.AsColor()}
	case carbon.KindList:
		list := v.AsList()
		elems := make([]starlark.Value, len(list))
		for i, e := range list {
			elems[i] = toStarlark(e)
		}
		return starlark.NewList(elems)
	case carbon.KindAny:
		return toStarlarkAny(v.AsAny())
	default:
		return starlark.None
	}
}

// toStarlarkAny converts an arbitrary Go value, such as a decoded YAML
// datum. Structs become dicts of their exported fields.
func toStarlarkAny(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case carbon.Value:
		return toStarlark(v)
	case carbon.Size:
		return sizeValue{v}
	case carbon.Transform:
		return transformValue{v}
	case carbon.Color:
		return colorValue{v}
	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)
	case float64:
		return starlark.Float(v)
	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toStarlarkAny(e)
		}
		return starlark.NewList(elems)
	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toStarlarkAny(val))
		}
		return d
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Bool:
		return starlark.Bool(value.Bool())
	case reflect.String:
		return starlark.String(value.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())
	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())
	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range value.Len() {
			elems[i] = toStarlarkAny(value.Index(i).Interface())
		}
		return starlark.NewList(elems)
	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkAny(iter.Key().Interface()),
				toStarlarkAny(iter.Value().Interface()),
			)
		}
		return d
	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(value.NumField())
		for i := range value.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(starlark.String(field.Name), toStarlarkAny(value.Field(i).Interface()))
		}
		return d
	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkAny(elem.Interface())
	}
	return starlark.String(fmt.Sprint(v))
}

// fromStarlark converts an expression result.
func fromStarlark(v starlark.Value) (carbon.Value, error) {
	switch v := v.(type) {
	case starlark.Bool:
		return carbon.Bool(bool(v)), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return carbon.Value{}, fmt.Errorf("integer %s overflows int64", v)
		}
		return carbon.Int(i), nil
	case starlark.Float:
		return carbon.Float(float64(v)), nil
	case starlark.String:
		return carbon.String(string(v)), nil
	case sizeValue:
		return carbon.SizeValue(v.v), nil
	case transformValue:
		return carbon.TransformValue(v.v), nil
	case colorValue:
		return carbon.ColorValue(v.v), nil
	case starlark.Indexable:
		out := make([]carbon.Value, v.Len())
		for i := range v.Len() {
			e, err := fromStarlark(v.Index(i))
			if err != nil {
				return carbon.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = e
		}
		return carbon.List(out...), nil
	case *starlark.Dict:
		m := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			k, ok := starlark.AsString(item[0])
			if !ok {
				return carbon.Value{}, fmt.Errorf("dict key %s is not a string", item[0])
			}
			e, err := fromStarlark(item[1])
			if err != nil {
				return carbon.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = e.Interface()
		}
		return carbon.Any(m), nil
	default:
		return carbon.Value{}, fmt.Errorf("unsupported result type %s", v.Type())
	}
}

// coerce widens v to kind where the conversion is lossless or obvious:
// numbers become pixel sizes or floats. Other mismatches are errors.
func coerce(v carbon.Value, kind carbon.ValueKind) (carbon.Value, error) {
	if kind == carbon.KindInvalid || v.Kind() == kind {
		return v, nil
	}
	switch {
	case kind == carbon.KindFloat && v.Kind() == carbon.KindInt:
		return carbon.Float(float64(v.AsInt())), nil
	case kind == carbon.KindSize && (v.Kind() == carbon.KindInt || v.Kind() == carbon.KindFloat):
		return carbon.SizeValue(carbon.Px(v.AsFloat())), nil
	case kind == carbon.KindAny:
		return carbon.Any(v.Interface()), nil
	}
	return carbon.Value{}, fmt.Errorf("result is %s, want %s", v.Kind(), kind)
}
