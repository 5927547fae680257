package typegraph

import (
	"reflect"
	"sync"
)

// goClasses maps Go types without a scalar meaning to their class descriptor so that
// the same Go type always yields the same *Class. Go types are never unloaded, so these
// entries live for the whole process.
var goClasses sync.Map // map[reflect.Type]*Class

var anyType = reflect.TypeFor[any]()

// FromReflect describes a Go static type.
//
// Scalars map onto the attribute kinds: int, int64 and uint32 are long, narrower
// integers are int, float32 is float and float64 is double. Pointers to scalars map
// onto the boxed classes, slices and arrays map onto arrays, and every other type is an
// opaque class named after the Go type. uint, uint64 and uintptr are opaque as well,
// since their values do not all fit a long.
func FromReflect(t reflect.Type) Type {
	if t == nil {
		return Object
	}
	if c := scalarClass(t.Kind()); c != nil {
		return c
	}
	switch t.Kind() {
	case reflect.Pointer:
		if c := scalarClass(t.Elem().Kind()); c != nil {
			return Box(c)
		}
		return FromReflect(t.Elem())
	case reflect.Slice, reflect.Array:
		return ArrayOf(FromReflect(t.Elem()))
	}
	return ClassFor(t)
}

// ClassFor returns the class descriptor standing for a Go type, typically a receiver
// type used as the declaring class of traced methods.
func ClassFor(t reflect.Type) *Class {
	if t == nil || t == anyType {
		return Object
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if c, ok := goClasses.Load(t); ok {
		return c.(*Class)
	}
	var opts []ClassOption
	if t.Kind() == reflect.Interface {
		opts = append(opts, AsInterface())
	}
	c, _ := goClasses.LoadOrStore(t, NewClass(t.String(), opts...))
	return c.(*Class)
}

func scalarClass(k reflect.Kind) *Class {
	switch k {
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int64, reflect.Uint32:
		return Long
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return Int
	case reflect.Float32:
		return Float
	case reflect.Float64:
		return Double
	default:
		return nil
	}
}
