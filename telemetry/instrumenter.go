package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/navikt/otel-argbind/bindcache"
	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/feature"
	"github.com/navikt/otel-argbind/logging"
	"github.com/navikt/otel-argbind/metrics"
)

const (
	instrumentationName = "github.com/navikt/otel-argbind/telemetry"
)

// Instrumenter traces calls of described methods and copies their arguments into span
// attributes.
type Instrumenter struct {
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram

	binder  *binding.Binder
	cache   *bindcache.Cache
	gate    feature.Gate
	logger  *slog.Logger
	enabled bool

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures an Instrumenter.
type Option func(*Instrumenter)

// WithGate sets the gate deciding whether arguments are captured. Spans are created
// regardless.
func WithGate(gate feature.Gate) Option {
	return func(i *Instrumenter) { i.gate = gate }
}

// WithLogger sets the logger. It defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Instrumenter) { i.logger = logger }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(i *Instrumenter) { i.tracerProvider = tp }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(i *Instrumenter) { i.meterProvider = mp }
}

// NewInstrumenter creates an instrumenter naming attributes with naming. Cached bindings
// depend on the naming strategy, so every instrumenter owns its cache. A disabled
// instrumenter runs calls without spans or metrics.
func NewInstrumenter(enabled bool, naming binding.NamingStrategy, opts ...Option) (*Instrumenter, error) {
	i := &Instrumenter{
		enabled: enabled,
		gate:    feature.AlwaysOn,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.cache = bindcache.New()
	i.binder = binding.NewBinder(naming,
		binding.WithLogger(i.logger),
		binding.WithCompileHook(func(s binding.Shape) {
			metrics.RecordBindingCompiled(s.String())
		}),
	)

	if !enabled {
		i.tracer = noop.NewTracerProvider().Tracer(instrumentationName)
		return i, nil
	}

	if i.tracerProvider == nil {
		i.tracerProvider = otel.GetTracerProvider()
	}
	if i.meterProvider == nil {
		i.meterProvider = otel.GetMeterProvider()
	}
	i.tracer = i.tracerProvider.Tracer(instrumentationName)
	meter := i.meterProvider.Meter(instrumentationName)

	var err error

	i.calls, err = meter.Int64Counter(
		"argbind.method.calls",
		metric.WithDescription("Total number of traced method calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	i.duration, err = meter.Float64Histogram(
		"argbind.method.duration",
		metric.WithDescription("Traced method duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return i, nil
}

// Enabled reports whether calls are traced.
func (i *Instrumenter) Enabled() bool { return i.enabled }

// Cache returns the binding cache of this instrumenter.
func (i *Instrumenter) Cache() *bindcache.Cache { return i.cache }

// Bindings returns the cached binding set of m, compiling it on first use.
func (i *Instrumenter) Bindings(m *binding.Method) *binding.Set {
	return i.cache.Bindings(m, i.binder)
}

// Start opens a span for a call of m and records the bound arguments on it. The caller
// ends the span.
func (i *Instrumenter) Start(ctx context.Context, m *binding.Method, args []any) (context.Context, trace.Span) {
	name := m.FullName()
	ctx, span := i.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(CodeFunctionName(name)),
	)
	if !span.IsRecording() || !i.gate.Enabled(ctx, m) {
		return ctx, span
	}

	set := i.Bindings(m)
	if set.IsEmpty() {
		return ctx, span
	}
	sink := NewAttributeSink(set.Len())
	set.Apply(sink, args)
	span.SetAttributes(sink.Attributes()...)
	return ctx, span
}

// Call runs fn inside a span for m. A returned error marks the span as failed and is
// returned unchanged.
func (i *Instrumenter) Call(ctx context.Context, m *binding.Method, args []any, fn func(context.Context) error) error {
	if !i.enabled {
		return fn(ctx)
	}

	start := time.Now()
	ctx, span := i.Start(ctx, m, args)
	defer span.End()

	err := fn(ctx)

	attrs := []attribute.KeyValue{CodeFunctionName(m.FullName())}
	if err != nil {
		errType := ErrorType(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(errType)
		attrs = append(attrs, errType)

		logging.WithTrace(ctx, i.logger).Debug("Traced call failed",
			slog.String("method", m.String()),
			slog.String("error", err.Error()),
		)
	}

	i.calls.Add(ctx, 1, metric.WithAttributes(attrs...))
	i.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))

	return err
}
