// Package typegraph describes static types the way a traced method declares them and
// resolves generic type arguments across superclass and interface chains.
//
// Go has no runtime inheritance graph to reflect on, so types are described up front
// with Class, Parameterized, Variable and Array descriptors. Descriptors are immutable
// once built and safe for concurrent use.
package typegraph

import (
	"strings"
)

// Type is a static type descriptor: *Class, *Parameterized, *Variable or *Array.
type Type interface {
	// TypeName returns a stable, human-readable rendering of the type.
	TypeName() string
	isType()
}

// Kind classifies a class by the attribute value shape it can carry.
type Kind uint8

const (
	KindReference Kind = iota
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBoolean
)

// Class is a raw, possibly generic, class or interface.
type Class struct {
	name       string
	kind       Kind
	boxed      bool
	iface      bool
	params     []*Variable
	super      Type
	interfaces []Type
}

// ClassOption configures a Class under construction.
type ClassOption func(*Class)

// WithParams declares the class type parameters, in order. The variables are bound to
// the class being built.
func WithParams(params ...*Variable) ClassOption {
	return func(c *Class) {
		for _, p := range params {
			p.decl = c
		}
		c.params = append(c.params, params...)
	}
}

// Extends sets the generic superclass.
func Extends(super Type) ClassOption {
	return func(c *Class) { c.super = super }
}

// Implements appends generic interfaces, in declaration order.
func Implements(interfaces ...Type) ClassOption {
	return func(c *Class) { c.interfaces = append(c.interfaces, interfaces...) }
}

// AsInterface marks the class as an interface.
func AsInterface() ClassOption {
	return func(c *Class) { c.iface = true }
}

// NewClass creates a reference class. Classes without an explicit superclass extend
// Object, interfaces extend nothing.
func NewClass(name string, opts ...ClassOption) *Class {
	c := &Class{name: name}
	for _, opt := range opts {
		opt(c)
	}
	if c.super == nil && !c.iface {
		c.super = Object
	}
	return c
}

func newScalar(name string, kind Kind, boxed bool) *Class {
	c := &Class{name: name, kind: kind, boxed: boxed}
	if boxed {
		c.super = Object
	}
	return c
}

func (c *Class) TypeName() string { return c.name }

func (*Class) isType() {}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Kind returns the value kind carried by the class.
func (c *Class) Kind() Kind { return c.kind }

// Primitive reports whether the class is a non-nullable scalar.
func (c *Class) Primitive() bool { return c.kind != KindReference && !c.boxed }

// Boxed reports whether the class is a nullable wrapper of a scalar.
func (c *Class) Boxed() bool { return c.boxed }

// Interface reports whether the class is an interface.
func (c *Class) Interface() bool { return c.iface }

// Params returns the declared type parameters.
func (c *Class) Params() []*Variable { return c.params }

// Super returns the generic superclass, nil for Object, interfaces and primitives.
func (c *Class) Super() Type { return c.super }

// Interfaces returns the direct generic interfaces in declaration order.
func (c *Class) Interfaces() []Type { return c.interfaces }

// Parameterized is a generic class with actual type arguments, e.g. List<String>.
type Parameterized struct {
	raw  *Class
	args []Type
}

// Of parameterizes raw with args.
func Of(raw *Class, args ...Type) *Parameterized {
	return &Parameterized{raw: raw, args: args}
}

func (p *Parameterized) TypeName() string {
	names := make([]string, len(p.args))
	for i, a := range p.args {
		names[i] = a.TypeName()
	}
	return p.raw.name + "<" + strings.Join(names, ", ") + ">"
}

func (*Parameterized) isType() {}

// Raw returns the parameterized class.
func (p *Parameterized) Raw() *Class { return p.raw }

// Args returns the actual type arguments.
func (p *Parameterized) Args() []Type { return p.args }

// Variable is a type variable introduced by a generic class or method.
type Variable struct {
	decl   any // *Class or method name
	name   string
	bounds []Type
}

// Param creates a type variable. The declaring site is filled in by WithParams, or can
// be set explicitly with MethodParam for method-level variables.
func Param(name string, bounds ...Type) *Variable {
	return &Variable{name: name, bounds: bounds}
}

// MethodParam creates a type variable declared by a generic method.
func MethodParam(method, name string, bounds ...Type) *Variable {
	return &Variable{decl: method, name: name, bounds: bounds}
}

func (v *Variable) TypeName() string { return v.name }

func (*Variable) isType() {}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Declaration returns the name of the class or method that introduced the variable.
func (v *Variable) Declaration() string {
	switch d := v.decl.(type) {
	case *Class:
		return d.name
	case string:
		return d
	default:
		return ""
	}
}

// Bounds returns the declared upper bounds.
func (v *Variable) Bounds() []Type { return v.bounds }

// WithBounds returns a copy of v with different bounds and the same declaring site.
func (v *Variable) WithBounds(bounds ...Type) *Variable {
	return &Variable{decl: v.decl, name: v.name, bounds: bounds}
}

// Equal reports whether v and o denote the same variable. Bounds are not compared:
// a partially specialized copy of a variable is still the same variable.
func (v *Variable) Equal(o *Variable) bool {
	if v == o {
		return true
	}
	if v == nil || o == nil {
		return false
	}
	return v.decl == o.decl && v.name == o.name
}

// Array is an array type such as int[], String[] or T[].
type Array struct {
	elem  Type
	class *Class
}

// ArrayOf creates an array of elem.
func ArrayOf(elem Type) *Array {
	a := &Array{elem: elem}
	if concrete(elem) {
		a.class = &Class{name: elem.TypeName() + "[]", super: Object}
	}
	return a
}

func (a *Array) TypeName() string { return a.elem.TypeName() + "[]" }

func (*Array) isType() {}

// Elem returns the element type.
func (a *Array) Elem() Type { return a.elem }

// Generic reports whether the element type still mentions a type variable or a
// parameterized type, e.g. T[] or List<String>[].
func (a *Array) Generic() bool { return a.class == nil }

func concrete(t Type) bool {
	switch t := t.(type) {
	case *Class:
		return true
	case *Array:
		return !t.Generic()
	default:
		return false
	}
}
