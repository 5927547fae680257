package binding

import (
	"fmt"

	"github.com/navikt/otel-argbind/typegraph"
)

// Binding writes one argument into a sink under the attribute key it was compiled for.
// Bindings are stateless and safe for concurrent use. A Binding never sees a null
// argument: Set.Apply skips those.
type Binding func(sink Sink, arg any)

// Form is how an argument reaches the sink.
type Form uint8

const (
	FormScalar Form = iota
	FormArray
	FormList
)

// ValueKind is the attribute value type of a binding, or of its elements.
type ValueKind uint8

const (
	// ValueText renders values with fmt.Sprint.
	ValueText ValueKind = iota
	ValueString
	ValueInt64
	ValueFloat64
	ValueBool
)

// Shape is the dispatch decision for a declared parameter type.
type Shape struct {
	Form Form
	Kind ValueKind
	// Widened is set when 32-bit numbers are converted to their 64-bit attribute type.
	Widened bool
}

func (s Shape) String() string {
	var kind string
	switch s.Kind {
	case ValueString:
		kind = "string"
	case ValueInt64:
		kind = "long"
	case ValueFloat64:
		kind = "double"
	case ValueBool:
		kind = "boolean"
	default:
		kind = "opaque"
	}
	switch s.Form {
	case FormArray:
		return kind + "[]"
	case FormList:
		return "list<" + kind + ">"
	default:
		return kind
	}
}

// ShapeOf decides how arguments of the declared type are bound: exact scalar types
// first, then arrays, then anything that is a List, then opaque text.
func ShapeOf(declared typegraph.Type) Shape {
	if kind, widened, ok := scalarKind(declared); ok {
		return Shape{Form: FormScalar, Kind: kind, Widened: widened}
	}
	if arr, ok := declared.(*typegraph.Array); ok {
		kind, widened, _ := scalarKind(arr.Elem())
		return Shape{Form: FormArray, Kind: kind, Widened: widened}
	}
	if list, ok := typegraph.FindAncestorOf(declared, typegraph.List); ok {
		kind, widened, _ := scalarKind(list.Arg(0))
		return Shape{Form: FormList, Kind: kind, Widened: widened}
	}
	return Shape{Form: FormScalar, Kind: ValueText}
}

// scalarKind maps String and the primitive and boxed scalar classes to their
// attribute kind. Attributes have no 32-bit numbers, so int and float are widened.
func scalarKind(t typegraph.Type) (kind ValueKind, widened, ok bool) {
	c, isClass := t.(*typegraph.Class)
	if !isClass {
		return ValueText, false, false
	}
	if c == typegraph.String {
		return ValueString, false, true
	}
	switch c.Kind() {
	case typegraph.KindLong:
		return ValueInt64, false, true
	case typegraph.KindInt:
		return ValueInt64, true, true
	case typegraph.KindDouble:
		return ValueFloat64, false, true
	case typegraph.KindFloat:
		return ValueFloat64, true, true
	case typegraph.KindBoolean:
		return ValueBool, false, true
	default:
		return ValueText, false, false
	}
}

// Compile returns the binding writing arguments of the declared type under name.
func Compile(name string, declared typegraph.Type) Binding {
	return Build(name, ShapeOf(declared))
}

// Build returns the binding for an already computed shape.
func Build(name string, shape Shape) Binding {
	switch shape.Form {
	case FormArray, FormList:
		return sequenceBinding(name, shape.Kind)
	default:
		return scalarBinding(name, shape.Kind)
	}
}

func scalarBinding(key string, kind ValueKind) Binding {
	switch kind {
	case ValueString:
		return func(sink Sink, arg any) {
			if v, ok := stringOf(arg); ok {
				sink.PutString(key, v)
			}
		}
	case ValueInt64:
		return func(sink Sink, arg any) {
			if v, ok := int64Of(arg); ok {
				sink.PutInt64(key, v)
			}
		}
	case ValueFloat64:
		return func(sink Sink, arg any) {
			if v, ok := float64Of(arg); ok {
				sink.PutFloat64(key, v)
			}
		}
	case ValueBool:
		return func(sink Sink, arg any) {
			if v, ok := boolOf(arg); ok {
				sink.PutBool(key, v)
			}
		}
	default:
		return func(sink Sink, arg any) {
			sink.PutString(key, fmt.Sprint(arg))
		}
	}
}

// sequenceBinding serves arrays and lists alike: both arrive as Go slices, arrays or
// List values and are exposed through a lazy view.
func sequenceBinding(key string, kind ValueKind) Binding {
	switch kind {
	case ValueString:
		return func(sink Sink, arg any) {
			if s, ok := stringSeq(arg); ok {
				sink.PutStrings(key, s)
			}
		}
	case ValueInt64:
		return func(sink Sink, arg any) {
			if s, ok := int64Seq(arg); ok {
				sink.PutInt64s(key, s)
			}
		}
	case ValueFloat64:
		return func(sink Sink, arg any) {
			if s, ok := float64Seq(arg); ok {
				sink.PutFloat64s(key, s)
			}
		}
	case ValueBool:
		return func(sink Sink, arg any) {
			if s, ok := boolSeq(arg); ok {
				sink.PutBools(key, s)
			}
		}
	default:
		return func(sink Sink, arg any) {
			if s, ok := textSeq(arg); ok {
				sink.PutStrings(key, s)
			}
		}
	}
}
