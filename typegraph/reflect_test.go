package typegraph

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userID string

type account struct{}

func TestFromReflect(t *testing.T) {
	tests := []struct {
		goType reflect.Type
		want   string
	}{
		{goType: reflect.TypeFor[string](), want: "String"},
		{goType: reflect.TypeFor[userID](), want: "String"},
		{goType: reflect.TypeFor[bool](), want: "boolean"},
		{goType: reflect.TypeFor[int](), want: "long"},
		{goType: reflect.TypeFor[int64](), want: "long"},
		{goType: reflect.TypeFor[uint32](), want: "long"},
		{goType: reflect.TypeFor[uint64](), want: "uint64"},
		{goType: reflect.TypeFor[uint](), want: "uint"},
		{goType: reflect.TypeFor[*uint64](), want: "uint64"},
		{goType: reflect.TypeFor[[]uintptr](), want: "uintptr[]"},
		{goType: reflect.TypeFor[int32](), want: "int"},
		{goType: reflect.TypeFor[uint8](), want: "int"},
		{goType: reflect.TypeFor[float32](), want: "float"},
		{goType: reflect.TypeFor[float64](), want: "double"},
		{goType: reflect.TypeFor[*int32](), want: "Integer"},
		{goType: reflect.TypeFor[*float64](), want: "Double"},
		{goType: reflect.TypeFor[[]int32](), want: "int[]"},
		{goType: reflect.TypeFor[[3]string](), want: "String[]"},
		{goType: reflect.TypeFor[[]*bool](), want: "Boolean[]"},
		{goType: reflect.TypeFor[any](), want: "Object"},
		{goType: reflect.TypeFor[account](), want: "typegraph.account"},
		{goType: reflect.TypeFor[*account](), want: "typegraph.account"},
		{goType: reflect.TypeFor[fmt.Stringer](), want: "fmt.Stringer"},
	}
	for _, tt := range tests {
		t.Run(tt.goType.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FromReflect(tt.goType).TypeName())
		})
	}
}

func TestClassFor_StableIdentity(t *testing.T) {
	a := ClassFor(reflect.TypeFor[account]())
	b := ClassFor(reflect.TypeFor[*account]())

	assert.Same(t, a, b)
	assert.False(t, a.Interface())
	assert.Same(t, Object, a.Super())

	stringer := ClassFor(reflect.TypeFor[fmt.Stringer]())
	require.True(t, stringer.Interface())
	assert.Nil(t, stringer.Super())
}
