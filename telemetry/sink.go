package telemetry

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/navikt/otel-argbind/binding"
)

// AttributeSink collects bound arguments as OTel attributes. OTel slices cannot hold
// nulls, so null slots of a sequence are written as the zero value.
type AttributeSink struct {
	attrs []attribute.KeyValue
}

// NewAttributeSink creates a sink with room for n attributes.
func NewAttributeSink(n int) *AttributeSink {
	return &AttributeSink{attrs: make([]attribute.KeyValue, 0, n)}
}

// Attributes returns the collected attributes in write order.
func (s *AttributeSink) Attributes() []attribute.KeyValue { return s.attrs }

func (s *AttributeSink) PutString(key, value string) {
	s.attrs = append(s.attrs, attribute.String(key, value))
}

func (s *AttributeSink) PutInt64(key string, value int64) {
	s.attrs = append(s.attrs, attribute.Int64(key, value))
}

func (s *AttributeSink) PutFloat64(key string, value float64) {
	s.attrs = append(s.attrs, attribute.Float64(key, value))
}

func (s *AttributeSink) PutBool(key string, value bool) {
	s.attrs = append(s.attrs, attribute.Bool(key, value))
}

func (s *AttributeSink) PutStrings(key string, values binding.Seq[string]) {
	s.attrs = append(s.attrs, attribute.StringSlice(key, binding.Collect(values)))
}

func (s *AttributeSink) PutInt64s(key string, values binding.Seq[int64]) {
	s.attrs = append(s.attrs, attribute.Int64Slice(key, binding.Collect(values)))
}

func (s *AttributeSink) PutFloat64s(key string, values binding.Seq[float64]) {
	s.attrs = append(s.attrs, attribute.Float64Slice(key, binding.Collect(values)))
}

func (s *AttributeSink) PutBools(key string, values binding.Seq[bool]) {
	s.attrs = append(s.attrs, attribute.BoolSlice(key, binding.Collect(values)))
}

var _ binding.Sink = (*AttributeSink)(nil)
