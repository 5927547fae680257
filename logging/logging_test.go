package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelDebug,
		"verbose": slog.LevelDebug,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewHandler_RenamesMessageKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("hello", slog.String("k", "v"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "v", line["k"])
	assert.NotContains(t, line, "msg")
}

func TestWithTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelDebug))

	assert.Same(t, logger, WithTrace(context.Background(), logger))

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3},
		SpanID:  trace.SpanID{4, 5, 6},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	WithTrace(ctx, logger).Info("traced")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, spanCtx.TraceID().String(), line["trace_id"])
	assert.Equal(t, spanCtx.SpanID().String(), line["span_id"])
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(NewHandler(&buf, slog.LevelDebug)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/isAlive", nil))
	assert.Zero(t, buf.Len(), "health checks are not logged")

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/lookup", nil))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Request completed", line["message"])
	assert.Equal(t, "/users/lookup", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
}

func TestSlogListener(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(NewHandler(&buf, slog.LevelDebug)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	counts := map[string]bool{}
	listener := NewSlogListener("argbind-demo", func(toggle string, enabled bool) {
		counts[toggle] = enabled
	})

	listener.OnCount("argbind.UserService.lookup", false)
	assert.Equal(t, map[string]bool{"argbind.UserService.lookup": false}, counts)
	assert.Zero(t, buf.Len(), "evaluations are counted, not logged")

	listener.OnWarning(errors.New("stale toggles"))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Unleash warning", line["message"])
	assert.Equal(t, "argbind-demo", line["app_name"])
	assert.Equal(t, "stale toggles", line["warning"])

	NewSlogListener("quiet", nil).OnCount("any", true)
}
