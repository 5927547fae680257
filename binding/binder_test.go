package binding_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/binding/bindingtest"
	tg "github.com/navikt/otel-argbind/typegraph"
)

var userService = tg.NewClass("UserService")

func fixedNames(names ...string) binding.NamingStrategy {
	return binding.NamingFunc(func(*binding.Method, []binding.Parameter) []string {
		return names
	})
}

func opMethod() *binding.Method {
	return &binding.Method{
		Declaring: userService,
		Name:      "op",
		Params: []binding.Parameter{
			{Name: "user", Type: tg.String},
			{Name: "ids", Type: tg.ArrayOf(tg.Int)},
		},
	}
}

func TestBind_EndToEnd(t *testing.T) {
	binder := binding.NewBinder(fixedNames("user.name", "user.ids"))
	set := binder.Bind(opMethod())
	rec := &bindingtest.Recorder{}

	set.Apply(rec, []any{"alice", []int32{1, 2}})

	assert.False(t, set.IsEmpty())
	assert.Equal(t, []bindingtest.Put{
		{Key: "user.name", Value: "alice"},
		{Key: "user.ids", Value: []any{int64(1), int64(2)}},
	}, rec.Puts())
}

func TestBind_NameCountMismatchBindsNothing(t *testing.T) {
	m := opMethod()
	m.Params = append(m.Params, binding.Parameter{Name: "flag", Type: tg.Boolean})
	binder := binding.NewBinder(fixedNames("user.name", "user.ids"))

	set := binder.Bind(m)
	rec := &bindingtest.Recorder{}
	set.Apply(rec, []any{"alice", []int32{1}, true})

	assert.True(t, set.IsEmpty())
	assert.Same(t, binding.Empty(), set)
	assert.Empty(t, rec.Puts())
}

func TestBind_AbsentNamesBindNothing(t *testing.T) {
	set := binding.NewBinder(fixedNames()).Bind(opMethod())
	assert.Same(t, binding.Empty(), set)

	set = binding.NewBinder(nil).Bind(opMethod())
	assert.Same(t, binding.Empty(), set)

	set = binding.NewBinder(fixedNames("x")).Bind(&binding.Method{Name: "noArgs"})
	assert.Same(t, binding.Empty(), set)
}

func TestBind_SkipsUnnamedParameters(t *testing.T) {
	m := &binding.Method{
		Declaring: userService,
		Name:      "update",
		Params: []binding.Parameter{
			{Type: tg.String},
			{Type: tg.Long},
			{Type: tg.Boolean},
		},
	}
	set := binding.NewBinder(fixedNames("", "user.id", "user.active")).Bind(m)
	rec := &bindingtest.Recorder{}

	set.Apply(rec, []any{"ignored", int64(3), true})

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []int{1, 2}, set.Indices())
	assert.Equal(t, []bindingtest.Put{
		{Key: "user.id", Value: int64(3)},
		{Key: "user.active", Value: true},
	}, rec.Puts())
}

func TestBind_AllNamesEmptyYieldsEmptySet(t *testing.T) {
	set := binding.NewBinder(fixedNames("", "")).Bind(opMethod())

	assert.Same(t, binding.Empty(), set)
}

func TestBind_CompileHook(t *testing.T) {
	var shapes []string
	binder := binding.NewBinder(fixedNames("user.name", "user.ids"),
		binding.WithCompileHook(func(s binding.Shape) { shapes = append(shapes, s.String()) }))

	binder.Bind(opMethod())

	assert.Equal(t, []string{"string", "long[]"}, shapes)
}

func TestSetApply_ToleratesShortAndNullArguments(t *testing.T) {
	set := binding.NewBinder(fixedNames("user.name", "user.ids")).Bind(opMethod())

	tests := []struct {
		name string
		args []any
		want []bindingtest.Put
	}{
		{name: "nil args", args: nil},
		{name: "short args", args: []any{"bob"}, want: []bindingtest.Put{{Key: "user.name", Value: "bob"}}},
		{name: "nil argument", args: []any{nil, []int32{4}}, want: []bindingtest.Put{{Key: "user.ids", Value: []any{int64(4)}}}},
		{name: "nil slice argument", args: []any{"carl", []int32(nil)}, want: []bindingtest.Put{{Key: "user.name", Value: "carl"}}},
		{name: "nil pointer argument", args: []any{(*string)(nil), []int32{}}, want: []bindingtest.Put{{Key: "user.ids", Value: []any{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &bindingtest.Recorder{}

			assert.NotPanics(t, func() { set.Apply(rec, tt.args) })

			assert.Equal(t, tt.want, rec.Puts())
		})
	}
}

func TestSetApply_NilAndEmptySets(t *testing.T) {
	rec := &bindingtest.Recorder{}
	var nilSet *binding.Set

	nilSet.Apply(rec, []any{"x"})
	binding.Empty().Apply(rec, []any{"x"})

	assert.True(t, nilSet.IsEmpty())
	assert.Zero(t, nilSet.Len())
	assert.Nil(t, binding.Empty().Indices())
	assert.Empty(t, rec.Puts())
}

func TestSetApply_Concurrent(t *testing.T) {
	set := binding.NewBinder(fixedNames("user.name", "user.ids")).Bind(opMethod())

	var wg sync.WaitGroup
	results := make([][]bindingtest.Put, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := &bindingtest.Recorder{}
			set.Apply(rec, []any{"alice", []int32{int32(i)}})
			results[i] = rec.Puts()
		}(i)
	}
	wg.Wait()

	for i, puts := range results {
		require.Len(t, puts, 2)
		assert.Equal(t, []any{int64(i)}, puts[1].Value)
	}
}

func TestMethodOf(t *testing.T) {
	lookup := func(user string, ids []int32, limit *int64, opts ...bool) error { return nil }

	m, err := binding.MethodOf(userService, "lookup", lookup, "user", "ids")
	require.NoError(t, err)

	assert.Equal(t, "lookup(String,int[],Long,boolean[])", m.Signature())
	assert.Equal(t, "UserService.lookup", m.FullName())
	assert.Equal(t, "UserService.lookup(String,int[],Long,boolean[])", m.String())
	assert.Equal(t, "user", m.Params[0].Name)
	assert.Equal(t, "ids", m.Params[1].Name)
	assert.Empty(t, m.Params[2].Name)

	set := binding.NewBinder(fixedNames("user", "ids", "limit", "opts")).Bind(m)
	rec := &bindingtest.Recorder{}
	set.Apply(rec, []any{"eve", []int32{7}, ptr(int64(10)), []bool{true}})
	assert.Equal(t, []bindingtest.Put{
		{Key: "user", Value: "eve"},
		{Key: "ids", Value: []any{int64(7)}},
		{Key: "limit", Value: int64(10)},
		{Key: "opts", Value: []any{true}},
	}, rec.Puts())
}

func TestMethodOf_RejectsNonFunc(t *testing.T) {
	_, err := binding.MethodOf(userService, "x", 42)
	assert.ErrorIs(t, err, binding.ErrNotFunc)

	_, err = binding.MethodOf(userService, "x", nil)
	assert.ErrorIs(t, err, binding.ErrNotFunc)
}

func TestMethod_NamesWithoutDeclaringClass(t *testing.T) {
	m := &binding.Method{Name: "free", Params: []binding.Parameter{{Type: tg.Long}, {}}}

	assert.Equal(t, "free", m.FullName())
	assert.Equal(t, "free(long,?)", m.String())
}

func TestMethod_SignatureComputedOnce(t *testing.T) {
	m := &binding.Method{Declaring: userService, Name: "op", Params: []binding.Parameter{
		{Name: "user", Type: tg.String},
		{Name: "ids", Type: tg.ArrayOf(tg.Int)},
		{Name: "tags", Type: tg.ListOf(tg.String)},
	}}

	first := m.Signature()
	assert.Equal(t, "op(String,int[],List<String>)", first)

	allocs := testing.AllocsPerRun(100, func() {
		_ = m.Signature()
	})
	assert.Zero(t, allocs)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, m.Signature())
		}()
	}
	wg.Wait()
}
