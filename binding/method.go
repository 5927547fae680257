package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/navikt/otel-argbind/typegraph"
)

// ErrNotFunc is returned by MethodOf for values that are not functions.
var ErrNotFunc = errors.New("binding: value is not a func")

// Parameter is one declared parameter of a traced method.
type Parameter struct {
	// Name is the source name, empty when unknown.
	Name string
	Type typegraph.Type
	// Attribute is the attribute key requested by the method author. Annotated marks
	// parameters that asked to be captured even without an explicit key.
	Attribute string
	Annotated bool
}

// Method describes a traced method: its declaring class and ordered parameters.
// Fields must not change once the method is in use; its signature is computed on first
// use and kept.
type Method struct {
	Declaring *typegraph.Class
	Name      string
	Params    []Parameter

	signature atomic.Pointer[string]
}

// Signature identifies the method within its declaring class, e.g. "lookup(String,int[])".
func (m *Method) Signature() string {
	if sig := m.signature.Load(); sig != nil {
		return *sig
	}
	sig := m.buildSignature()
	m.signature.CompareAndSwap(nil, &sig)
	return sig
}

func (m *Method) buildSignature() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		if p.Type == nil {
			sb.WriteByte('?')
			continue
		}
		sb.WriteString(p.Type.TypeName())
	}
	sb.WriteByte(')')
	return sb.String()
}

// FullName returns "Class.method", or the bare method name without a declaring class.
func (m *Method) FullName() string {
	if m.Declaring == nil {
		return m.Name
	}
	return m.Declaring.Name() + "." + m.Name
}

func (m *Method) String() string {
	if m.Declaring == nil {
		return m.Signature()
	}
	return m.Declaring.Name() + "." + m.Signature()
}

// MethodOf describes a Go function as a traced method of declaring. Parameter types are
// taken from the function signature; names are taken positionally from paramNames.
// A variadic final parameter is described as an array.
func MethodOf(declaring *typegraph.Class, name string, fn any, paramNames ...string) (*Method, error) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	m := &Method{
		Declaring: declaring,
		Name:      name,
		Params:    make([]Parameter, ft.NumIn()),
	}
	for i := range m.Params {
		m.Params[i].Type = typegraph.FromReflect(ft.In(i))
		if i < len(paramNames) {
			m.Params[i].Name = paramNames[i]
		}
	}
	return m, nil
}
