package typegraph

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a type that is neither a class nor a
// parameterized class is given to Resolve.
var ErrUnsupportedType = errors.New("typegraph: type is neither a class nor a parameterized type")

// Resolved is a raw class together with the actual arguments substituted for its type
// parameters. Args is empty for raw classes and arrays; an argument may still be a
// Variable when the hierarchy does not pin it down.
type Resolved struct {
	Raw  *Class
	Args []Type
}

// Arg returns the i-th actual type argument, or nil.
func (r Resolved) Arg(i int) Type {
	if i < 0 || i >= len(r.Args) {
		return nil
	}
	return r.Args[i]
}

func (r Resolved) String() string {
	if r.Raw == nil {
		return "<nil>"
	}
	if len(r.Args) == 0 {
		return r.Raw.name
	}
	return Of(r.Raw, r.Args...).TypeName()
}

// Resolve turns a class, a parameterized class or a concrete array into a Resolved.
func Resolve(t Type) (Resolved, error) {
	switch t := t.(type) {
	case *Class:
		return Resolved{Raw: t}, nil
	case *Parameterized:
		return Resolved{Raw: t.raw, Args: t.args}, nil
	case *Array:
		if !t.Generic() {
			return Resolved{Raw: t.class}, nil
		}
	}
	name := "<nil>"
	if t != nil {
		name = t.TypeName()
	}
	return Resolved{}, fmt.Errorf("%w: %s", ErrUnsupportedType, name)
}

// FindAncestor walks the hierarchy of r depth-first and returns the first node whose raw
// class is target, with type arguments expressed in terms of r's arguments.
//
// For an interface target the direct interfaces of each node are searched before its
// superclass.
func FindAncestor(r Resolved, target *Class) (Resolved, bool) {
	if r.Raw == nil || target == nil {
		return Resolved{}, false
	}
	if r.Raw == target {
		return r, true
	}
	if target.iface {
		for _, it := range r.Raw.interfaces {
			next, ok := descend(r, it)
			if !ok {
				continue
			}
			if found, ok := FindAncestor(next, target); ok {
				return found, true
			}
		}
	}
	if r.Raw.super == nil {
		return Resolved{}, false
	}
	next, ok := descend(r, r.Raw.super)
	if !ok {
		return Resolved{}, false
	}
	return FindAncestor(next, target)
}

// FindAncestorOf resolves t and searches for target. Types Resolve rejects are
// reported as not found.
func FindAncestorOf(t Type, target *Class) (Resolved, bool) {
	r, err := Resolve(t)
	if err != nil {
		return Resolved{}, false
	}
	return FindAncestor(r, target)
}

// descend resolves the supertype declared by node's raw class, replacing the class's own
// type variables with node's actual arguments.
func descend(node Resolved, declared Type) (Resolved, bool) {
	switch d := declared.(type) {
	case *Class:
		return Resolved{Raw: d}, true
	case *Parameterized:
		args := make([]Type, len(d.args))
		for i, a := range d.args {
			args[i] = substitute(node, a)
		}
		return Resolved{Raw: d.raw, Args: args}, true
	default:
		return Resolved{}, false
	}
}

// substitute replaces the variables of node's raw class found in t. Variables of other
// declarations, and variables with no actual argument available, are kept as is.
func substitute(node Resolved, t Type) Type {
	switch t := t.(type) {
	case *Variable:
		i := indexOf(node.Raw.params, t)
		if i < 0 || i >= len(node.Args) {
			return t
		}
		return node.Args[i]
	case *Parameterized:
		args := make([]Type, len(t.args))
		changed := false
		for i, a := range t.args {
			args[i] = substitute(node, a)
			changed = changed || args[i] != a
		}
		if !changed {
			return t
		}
		return Of(t.raw, args...)
	case *Array:
		elem := substitute(node, t.elem)
		if elem == t.elem {
			return t
		}
		return ArrayOf(elem)
	default:
		return t
	}
}

func indexOf(params []*Variable, v *Variable) int {
	for i, p := range params {
		if p.Equal(v) {
			return i
		}
	}
	return -1
}
