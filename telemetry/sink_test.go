package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"

	"github.com/navikt/otel-argbind/binding"
	tg "github.com/navikt/otel-argbind/typegraph"
)

func TestAttributeSink(t *testing.T) {
	m := &binding.Method{
		Declaring: tg.NewClass("Orders"),
		Name:      "place",
		Params: []binding.Parameter{
			{Name: "count", Type: tg.Int},
			{Name: "price", Type: tg.DoubleBox},
			{Name: "rush", Type: tg.Boolean},
			{Name: "weights", Type: tg.ArrayOf(tg.FloatBox)},
			{Name: "flags", Type: tg.ListOf(tg.BooleanBox)},
		},
	}
	one := float32(1.5)
	set := binding.NewBinder(binding.NamingFunc(func(_ *binding.Method, ps []binding.Parameter) []string {
		names := make([]string, len(ps))
		for i, p := range ps {
			names[i] = p.Name
		}
		return names
	})).Bind(m)

	sink := NewAttributeSink(set.Len())
	set.Apply(sink, []any{3, 9.99, true, []*float32{&one, nil}, binding.Values{true, nil}})

	assert.Equal(t, []attribute.KeyValue{
		attribute.Int64("count", 3),
		attribute.Float64("price", 9.99),
		attribute.Bool("rush", true),
		attribute.Float64Slice("weights", []float64{1.5, 0}),
		attribute.BoolSlice("flags", []bool{true, false}),
	}, sink.Attributes())
}
