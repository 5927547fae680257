package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/otel-argbind/env"
)

func TestUnconfigured(t *testing.T) {
	if env.UnleashServerAPIURL != "" {
		t.Skip("UNLEASH_SERVER_API_URL is set")
	}

	assert.False(t, Configured())
	assert.True(t, Ready(), "an unconfigured client never blocks readiness")

	require.NoError(t, Initialize())
	_, ok := Get()
	assert.False(t, ok)

	Close()
	assert.True(t, Ready())
}
