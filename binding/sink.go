// Package binding compiles traced method parameters into bindings that copy call
// arguments into telemetry attributes.
//
// A Binding is derived once per parameter from its declared type, never from the
// runtime value, and bindings of one method are composed into an immutable Set that is
// replayed against the argument list of every call.
package binding

// Sink is the write-only destination of bindings, typically a span attribute builder.
// Sequence values are views over the call arguments and are only valid for the
// duration of the Put call.
type Sink interface {
	PutString(key, value string)
	PutInt64(key string, value int64)
	PutFloat64(key string, value float64)
	PutBool(key string, value bool)
	PutStrings(key string, values Seq[string])
	PutInt64s(key string, values Seq[int64])
	PutFloat64s(key string, values Seq[float64])
	PutBools(key string, values Seq[bool])
}
