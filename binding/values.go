package binding

import (
	"math"
	"reflect"
)

// List is the runtime view of an argument whose declared type is a List. Plain Go
// slices and arrays are accepted as well.
type List interface {
	Len() int
	At(i int) any
}

// Values is a List backed by a slice; nil elements are null slots.
type Values []any

func (v Values) Len() int     { return len(v) }
func (v Values) At(i int) any { return v[i] }

// isNull reports whether v is nil or a nil pointer, slice, map, func, chan or
// interface.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return nullable(rv.Kind()) && rv.IsNil()
}

func nullable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func int64Of(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case *int64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case *int:
		if x == nil {
			return 0, false
		}
		return int64(*x), true
	case *int32:
		if x == nil {
			return 0, false
		}
		return int64(*x), true
	case nil:
		return 0, false
	}
	return int64Value(reflect.ValueOf(v))
}

func int64Value(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return 0, false
		}
		return int64Value(rv.Elem())
	default:
		return 0, false
	}
}

func float64Of(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case *float64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case *float32:
		if x == nil {
			return 0, false
		}
		return float64(*x), true
	case nil:
		return 0, false
	}
	return float64Value(reflect.ValueOf(v))
}

func float64Value(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return 0, false
		}
		return float64Value(rv.Elem())
	default:
		return 0, false
	}
}

func boolOf(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case *bool:
		if x == nil {
			return false, false
		}
		return *x, true
	case nil:
		return false, false
	}
	return boolValue(reflect.ValueOf(v))
}

func boolValue(rv reflect.Value) (bool, bool) {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false, false
		}
		return boolValue(rv.Elem())
	default:
		return false, false
	}
}

func stringOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case nil:
		return "", false
	}
	return stringValue(reflect.ValueOf(v))
}

func stringValue(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return stringValue(rv.Elem())
	default:
		return "", false
	}
}
