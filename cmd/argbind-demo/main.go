package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/navikt/otel-argbind/clients"
	"github.com/navikt/otel-argbind/config"
	"github.com/navikt/otel-argbind/demo"
	"github.com/navikt/otel-argbind/env"
	"github.com/navikt/otel-argbind/feature"
	"github.com/navikt/otel-argbind/logging"
	"github.com/navikt/otel-argbind/telemetry"
)

var okBytes = []byte("OK")

func init() {
	logging.Initialize()
}

func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write(okBytes)
}

func readinessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")

	if !clients.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(okBytes)
}

// unleashToggles returns the Unleash client once it is ready.
func unleashToggles() (feature.Toggles, bool) {
	c, ok := clients.Get()
	if !ok {
		return nil, false
	}
	return c, true
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(env.ArgbindConfig)
	if err != nil {
		slog.Error("Failed to load configuration: "+err.Error(),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	otelInstance, err := telemetry.Initialize(ctx, telemetry.ConfigFromEnv())
	if err != nil {
		slog.Error("Failed to initialize OpenTelemetry: "+err.Error(),
			slog.String("error", err.Error()),
		)
		// Continue without telemetry rather than failing
	}

	instrumenter, err := telemetry.NewInstrumenter(otelInstance != nil, cfg.Naming(),
		telemetry.WithGate(feature.NewClientGate(cfg.TogglePrefix, unleashToggles)),
	)
	if err != nil {
		slog.Error("Failed to create instrumenter: "+err.Error(),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	users := demo.NewUserService(instrumenter, map[int]string{
		1: "Ada Lovelace",
		2: "Grace Hopper",
		3: "Barbara Liskov",
	})

	mux := http.NewServeMux()

	mux.HandleFunc("/isAlive", livenessHandler)
	mux.HandleFunc("/isReady", readinessHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle(demo.PathPrefix, demo.Handler(users))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	port := env.Port
	if port == "" {
		port = env.DefaultPort
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: logging.Middleware(mux),
	}

	// Serve health checks while the Unleash client is starting
	go func() {
		slog.Info("Starting server",
			slog.String("port", port),
			slog.Bool("otel_enabled", otelInstance != nil),
			slog.Bool("unleash_enabled", clients.Configured()),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed",
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}()

	if err := clients.Initialize(); err != nil {
		slog.Error("Failed to initialize Unleash client",
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalChannel
		slog.Info("Received shutdown signal, shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error",
				slog.String("error", err.Error()),
			)
		}

		clients.Close()

		if err := otelInstance.Shutdown(shutdownCtx); err != nil {
			slog.Error("OpenTelemetry shutdown error",
				slog.String("error", err.Error()),
			)
		}

		cancel()
	}()

	<-ctx.Done()

	slog.Info("Server shutdown complete",
		slog.Int("cached_methods", instrumenter.Cache().Len()),
	)
}
