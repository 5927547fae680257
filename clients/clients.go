package clients

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/Unleash/unleash-go-sdk/v5"

	"github.com/navikt/otel-argbind/env"
	"github.com/navikt/otel-argbind/logging"
	"github.com/navikt/otel-argbind/metrics"
)

var (
	// url is the Unleash server API url.
	url    = env.UnleashServerAPIURL + "/api"
	client *unleash.Client
	mu     sync.RWMutex
	ready  atomic.Bool
)

// Configured returns true if an Unleash server is configured.
func Configured() bool {
	return env.UnleashServerAPIURL != ""
}

// Ready returns true once the Unleash client has fetched its toggles, or when no
// Unleash server is configured.
func Ready() bool {
	return !Configured() || ready.Load()
}

// Initialize creates the Unleash client and waits until it is ready.
// This should be called once at startup.
func Initialize() error {
	if !Configured() {
		slog.Info("Unleash disabled: UNLEASH_SERVER_API_URL not set")
		return nil
	}

	appName := env.NaisAppName
	if appName == "" {
		appName = env.DefaultServiceName
	}

	slog.Info("Initializing Unleash client for "+appName,
		slog.String("url", url),
		slog.String("environment", env.UnleashServerAPIEnv),
		slog.Bool("has_api_key", env.UnleashServerAPIToken != ""),
	)

	c, err := unleash.NewClient(
		unleash.WithListener(logging.NewSlogListener(appName, metrics.RecordToggleEvaluation)),
		unleash.WithAppName(appName),
		unleash.WithUrl(url),
		unleash.WithCustomHeaders(http.Header{"Authorization": {env.UnleashServerAPIToken}}),
	)
	if err != nil {
		return fmt.Errorf("failed to create Unleash client for %s: %w", appName, err)
	}

	c.WaitForReady()

	mu.Lock()
	client = c
	mu.Unlock()
	ready.Store(true)

	slog.Info("Unleash client ready for "+appName,
		slog.String("app_name", appName),
	)
	return nil
}

// Get returns the Unleash client.
// Returns nil and false if it has not been initialized.
func Get() (*unleash.Client, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return client, client != nil
}

// Close closes the Unleash client.
// This should be called during graceful shutdown.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return
	}
	slog.Info("Closing Unleash client")
	client.Close()
	client = nil
	ready.Store(false)
}
