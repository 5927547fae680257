// Package bindingtest provides a recording binding.Sink for tests.
package bindingtest

import (
	"sync"

	"github.com/navikt/otel-argbind/binding"
)

// Put is one recorded sink call. Sequence values are copied into []any with nil for
// null slots.
type Put struct {
	Key   string
	Value any
}

// Recorder records every Put call in order. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	puts []Put
}

var _ binding.Sink = (*Recorder)(nil)

func (r *Recorder) record(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puts = append(r.puts, Put{Key: key, Value: value})
}

// Puts returns a copy of the recorded calls.
func (r *Recorder) Puts() []Put {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Put(nil), r.puts...)
}

// Value returns the last value recorded under key.
func (r *Recorder) Value(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.puts) - 1; i >= 0; i-- {
		if r.puts[i].Key == key {
			return r.puts[i].Value, true
		}
	}
	return nil, false
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puts = nil
}

func (r *Recorder) PutString(key, value string)          { r.record(key, value) }
func (r *Recorder) PutInt64(key string, value int64)     { r.record(key, value) }
func (r *Recorder) PutFloat64(key string, value float64) { r.record(key, value) }
func (r *Recorder) PutBool(key string, value bool)       { r.record(key, value) }

func (r *Recorder) PutStrings(key string, values binding.Seq[string]) {
	r.record(key, materialize(values))
}

func (r *Recorder) PutInt64s(key string, values binding.Seq[int64]) {
	r.record(key, materialize(values))
}

func (r *Recorder) PutFloat64s(key string, values binding.Seq[float64]) {
	r.record(key, materialize(values))
}

func (r *Recorder) PutBools(key string, values binding.Seq[bool]) {
	r.record(key, materialize(values))
}

func materialize[T any](s binding.Seq[T]) []any {
	out := make([]any, s.Len())
	for i := range out {
		if v, ok := s.At(i); ok {
			out[i] = v
		}
	}
	return out
}
