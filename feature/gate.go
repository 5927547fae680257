package feature

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/Unleash/unleash-go-sdk/v5"
	unleashcontext "github.com/Unleash/unleash-go-sdk/v5/context"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/env"
)

// DefaultPrefix is the toggle name prefix used when none is configured.
const DefaultPrefix = "argbind"

// Gate decides per call whether the arguments of a traced method are captured.
type Gate interface {
	Enabled(ctx context.Context, m *binding.Method) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(ctx context.Context, m *binding.Method) bool

func (f GateFunc) Enabled(ctx context.Context, m *binding.Method) bool { return f(ctx, m) }

// AlwaysOn captures every method.
var AlwaysOn Gate = GateFunc(func(context.Context, *binding.Method) bool { return true })

// Toggles is the part of the Unleash client used by UnleashGate.
type Toggles interface {
	IsEnabled(feature string, options ...unleash.FeatureOption) bool
}

// UnleashGate checks the toggle "<prefix>.<Class>.<method>". Missing toggles, invalid
// toggle names and a missing client all leave capture enabled.
type UnleashGate struct {
	toggles Toggles
	prefix  string
}

// NewUnleashGate creates a gate backed by toggles. An empty prefix uses DefaultPrefix.
func NewUnleashGate(toggles Toggles, prefix string) *UnleashGate {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &UnleashGate{toggles: toggles, prefix: prefix}
}

// ToggleName returns the toggle controlling m.
func (g *UnleashGate) ToggleName(m *binding.Method) string {
	return g.prefix + "." + m.FullName()
}

func (g *UnleashGate) Enabled(_ context.Context, m *binding.Method) bool {
	if g == nil || g.toggles == nil {
		return true
	}
	name := g.ToggleName(m)
	if !IsValidName(name) {
		return true
	}
	unleashCtx := unleashcontext.Context{
		Environment: env.UnleashServerAPIEnv,
		AppName:     env.NaisAppName,
		Properties: map[string]string{
			"method": m.String(),
		},
	}
	return g.toggles.IsEnabled(name, unleash.WithContext(unleashCtx), unleash.WithFallback(true))
}

// ClientGate is an UnleashGate whose client becomes available later. Until the client
// is available every method is captured; from then on one UnleashGate is reused.
type ClientGate struct {
	prefix string
	client func() (Toggles, bool)
	gate   atomic.Pointer[UnleashGate]
}

// NewClientGate creates a gate that asks client for the Unleash client until it is
// available.
func NewClientGate(prefix string, client func() (Toggles, bool)) *ClientGate {
	return &ClientGate{prefix: prefix, client: client}
}

func (g *ClientGate) Enabled(ctx context.Context, m *binding.Method) bool {
	if gate := g.gate.Load(); gate != nil {
		return gate.Enabled(ctx, m)
	}
	toggles, ok := g.client()
	if !ok {
		return true
	}
	g.gate.CompareAndSwap(nil, NewUnleashGate(toggles, g.prefix))
	return g.gate.Load().Enabled(ctx, m)
}

// IsValidName validates the feature name according to Unleash rules:
// - Must be URL-friendly (encodeURIComponent(name) === name)
// - Cannot be "." or ".."
// - Must be between 1 and 100 characters
func IsValidName(name string) bool {
	if len(name) < 1 || len(name) > 100 {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	// Check if URL-friendly: encoded version should equal the original
	encoded := url.PathEscape(name)
	return encoded == name
}
