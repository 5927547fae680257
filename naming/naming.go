// Package naming provides the naming strategies deciding which traced method
// parameters become span attributes.
package naming

import (
	"github.com/navikt/otel-argbind/binding"
)

// Annotated names parameters after their requested attribute key. A parameter marked
// as annotated without a key uses its source name. It returns nil when no parameter of
// the method asked to be captured.
func Annotated() binding.NamingStrategy {
	return binding.NamingFunc(func(_ *binding.Method, params []binding.Parameter) []string {
		var names []string
		for i, p := range params {
			name := p.Attribute
			if name == "" && p.Annotated {
				name = p.Name
			}
			if name == "" {
				continue
			}
			if names == nil {
				names = make([]string, len(params))
			}
			names[i] = name
		}
		return names
	})
}

// ParameterNames uses the source parameter names as attribute keys.
func ParameterNames() binding.NamingStrategy {
	return binding.NamingFunc(func(_ *binding.Method, params []binding.Parameter) []string {
		names := make([]string, len(params))
		found := false
		for i, p := range params {
			names[i] = p.Name
			found = found || p.Name != ""
		}
		if !found {
			return nil
		}
		return names
	})
}

// Prefixed prepends prefix to every non-empty name produced by inner.
func Prefixed(prefix string, inner binding.NamingStrategy) binding.NamingStrategy {
	if prefix == "" {
		return inner
	}
	return binding.NamingFunc(func(m *binding.Method, params []binding.Parameter) []string {
		names := inner.AttributeNames(m, params)
		if names == nil {
			return nil
		}
		out := make([]string, len(names))
		for i, n := range names {
			if n != "" {
				out[i] = prefix + n
			}
		}
		return out
	})
}

// First returns the first non-nil result of strategies.
func First(strategies ...binding.NamingStrategy) binding.NamingStrategy {
	return binding.NamingFunc(func(m *binding.Method, params []binding.Parameter) []string {
		for _, s := range strategies {
			if s == nil {
				continue
			}
			if names := s.AttributeNames(m, params); names != nil {
				return names
			}
		}
		return nil
	})
}
