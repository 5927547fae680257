package binding

import (
	"log/slog"
)

// NamingStrategy decides which parameters of a method become attributes and under
// which key. It returns one name per parameter, an empty name for parameters that are
// never bound, or nil when nothing of the method should be bound.
type NamingStrategy interface {
	AttributeNames(m *Method, params []Parameter) []string
}

// NamingFunc adapts a function to NamingStrategy.
type NamingFunc func(m *Method, params []Parameter) []string

func (f NamingFunc) AttributeNames(m *Method, params []Parameter) []string {
	return f(m, params)
}

// Binder derives the binding set of a method from its declared parameter types.
type Binder struct {
	naming   NamingStrategy
	logger   *slog.Logger
	compiled func(Shape)
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithLogger sets the logger used for naming mismatches.
func WithLogger(logger *slog.Logger) BinderOption {
	return func(b *Binder) { b.logger = logger }
}

// WithCompileHook registers a function called with the shape of every compiled binding.
func WithCompileHook(hook func(Shape)) BinderOption {
	return func(b *Binder) { b.compiled = hook }
}

// NewBinder creates a Binder using naming for attribute keys.
func NewBinder(naming NamingStrategy, opts ...BinderOption) *Binder {
	b := &Binder{naming: naming, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind compiles the bindings of m. A naming result that is absent or does not have one
// entry per parameter yields the empty set.
func (b *Binder) Bind(m *Method) *Set {
	if m == nil || len(m.Params) == 0 || b.naming == nil {
		return Empty()
	}
	names := b.naming.AttributeNames(m, m.Params)
	if names == nil {
		return Empty()
	}
	if len(names) != len(m.Params) {
		b.logger.Debug("Attribute names do not match parameters, binding nothing",
			slog.String("method", m.String()),
			slog.Int("names", len(names)),
			slog.Int("params", len(m.Params)),
		)
		return Empty()
	}

	var sb builder
	for i, name := range names {
		if name == "" {
			continue
		}
		shape := ShapeOf(m.Params[i].Type)
		if b.compiled != nil {
			b.compiled(shape)
		}
		sb.add(i, Build(name, shape))
	}
	return sb.build()
}
