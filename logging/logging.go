package logging

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/navikt/otel-argbind/env"
)

// Initialize sets up the default JSON logger on stdout, at the level named by LOG_LEVEL
func Initialize() *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, ParseLevel(env.LogLevel)))
	slog.SetDefault(logger)
	return logger
}

// NewHandler returns the JSON handler used by Initialize, writing to w
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				a.Key = "message"
			}
			return a
		},
	})
}

// ParseLevel maps debug, info, warn and error to a level. Anything else is debug.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// FromContext returns a logger with trace_id and span_id attributes if available in the context.
// Use this when logging from traced calls to correlate logs with traces.
func FromContext(ctx context.Context) *slog.Logger {
	return WithTrace(ctx, slog.Default())
}

// WithTrace returns logger with the trace_id and span_id of ctx, or logger itself.
func WithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)

	if !spanCtx.HasTraceID() && !spanCtx.HasSpanID() {
		return logger
	}

	var attrs []any
	if spanCtx.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		attrs = append(attrs, slog.String("span_id", spanCtx.SpanID().String()))
	}

	return logger.With(attrs...)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// shouldSkipLogging returns true for health check endpoints that should not be logged
func shouldSkipLogging(path string) bool {
	return path == "/isAlive" || path == "/isReady" || path == "/metrics"
}

// Middleware returns an HTTP middleware that logs each request with timing information
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		FromContext(r.Context()).Info("Request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.statusCode),
			slog.Int64("duration", time.Since(start).Milliseconds()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
	})
}
