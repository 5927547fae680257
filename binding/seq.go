package binding

import (
	"fmt"
	"reflect"
)

// Seq is a read-only view over a homogeneous attribute array. At reports ok == false
// for a null slot.
type Seq[T any] interface {
	Len() int
	At(i int) (v T, ok bool)
}

// Collect copies s into a slice, writing the zero value for null slots.
func Collect[T any](s Seq[T]) []T {
	if s == nil {
		return nil
	}
	out := make([]T, s.Len())
	for i := range out {
		out[i], _ = s.At(i)
	}
	return out
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type float interface {
	~float32 | ~float64
}

type sliceSeq[T any] []T

func (s sliceSeq[T]) Len() int            { return len(s) }
func (s sliceSeq[T]) At(i int) (T, bool) { return s[i], true }

type ptrSeq[T any] []*T

func (s ptrSeq[T]) Len() int { return len(s) }

func (s ptrSeq[T]) At(i int) (T, bool) {
	if s[i] == nil {
		var zero T
		return zero, false
	}
	return *s[i], true
}

// intSeq widens integer elements to int64.
type intSeq[S integer] []S

func (s intSeq[S]) Len() int                { return len(s) }
func (s intSeq[S]) At(i int) (int64, bool) { return int64(s[i]), true }

type intPtrSeq[S integer] []*S

func (s intPtrSeq[S]) Len() int { return len(s) }

func (s intPtrSeq[S]) At(i int) (int64, bool) {
	if s[i] == nil {
		return 0, false
	}
	return int64(*s[i]), true
}

// floatSeq widens float elements to float64.
type floatSeq[S float] []S

func (s floatSeq[S]) Len() int                  { return len(s) }
func (s floatSeq[S]) At(i int) (float64, bool) { return float64(s[i]), true }

type floatPtrSeq[S float] []*S

func (s floatPtrSeq[S]) Len() int { return len(s) }

func (s floatPtrSeq[S]) At(i int) (float64, bool) {
	if s[i] == nil {
		return 0, false
	}
	return float64(*s[i]), true
}

// valueSeq reads any slice or array through reflection.
type valueSeq[T any] struct {
	v   reflect.Value
	get func(reflect.Value) (T, bool)
}

func (s valueSeq[T]) Len() int            { return s.v.Len() }
func (s valueSeq[T]) At(i int) (T, bool) { return s.get(s.v.Index(i)) }

// listSeq reads a List, converting each element on access.
type listSeq[T any] struct {
	l   List
	get func(any) (T, bool)
}

func (s listSeq[T]) Len() int            { return s.l.Len() }
func (s listSeq[T]) At(i int) (T, bool) { return s.get(s.l.At(i)) }

func int64Seq(v any) (Seq[int64], bool) {
	switch s := v.(type) {
	case []int64:
		return sliceSeq[int64](s), true
	case []int:
		return intSeq[int](s), true
	case []int32:
		return intSeq[int32](s), true
	case []int16:
		return intSeq[int16](s), true
	case []int8:
		return intSeq[int8](s), true
	case []uint8:
		return intSeq[uint8](s), true
	case []*int64:
		return ptrSeq[int64](s), true
	case []*int:
		return intPtrSeq[int](s), true
	case []*int32:
		return intPtrSeq[int32](s), true
	case List:
		return listSeq[int64]{l: s, get: int64Of}, true
	}
	return reflectSeq(v, int64Value)
}

func float64Seq(v any) (Seq[float64], bool) {
	switch s := v.(type) {
	case []float64:
		return sliceSeq[float64](s), true
	case []float32:
		return floatSeq[float32](s), true
	case []*float64:
		return ptrSeq[float64](s), true
	case []*float32:
		return floatPtrSeq[float32](s), true
	case List:
		return listSeq[float64]{l: s, get: float64Of}, true
	}
	return reflectSeq(v, float64Value)
}

func boolSeq(v any) (Seq[bool], bool) {
	switch s := v.(type) {
	case []bool:
		return sliceSeq[bool](s), true
	case []*bool:
		return ptrSeq[bool](s), true
	case List:
		return listSeq[bool]{l: s, get: boolOf}, true
	}
	return reflectSeq(v, boolValue)
}

func stringSeq(v any) (Seq[string], bool) {
	switch s := v.(type) {
	case []string:
		return sliceSeq[string](s), true
	case []*string:
		return ptrSeq[string](s), true
	case List:
		return listSeq[string]{l: s, get: stringOf}, true
	}
	return reflectSeq(v, stringValue)
}

// textSeq renders every element with fmt.Sprint.
func textSeq(v any) (Seq[string], bool) {
	switch s := v.(type) {
	case []string:
		return sliceSeq[string](s), true
	case List:
		return listSeq[string]{l: s, get: textOf}, true
	}
	return reflectSeq(v, textValue)
}

func reflectSeq[T any](v any, get func(reflect.Value) (T, bool)) (Seq[T], bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return valueSeq[T]{v: rv, get: get}, true
	default:
		return nil, false
	}
}

func textOf(v any) (string, bool) {
	if isNull(v) {
		return "", false
	}
	return fmt.Sprint(v), true
}

func textValue(rv reflect.Value) (string, bool) {
	if nullable(rv.Kind()) && rv.IsNil() {
		return "", false
	}
	return fmt.Sprint(rv.Interface()), true
}
