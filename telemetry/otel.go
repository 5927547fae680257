package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"

	"github.com/navikt/otel-argbind/env"
)

// Config holds the OpenTelemetry configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Namespace      string
	InstanceID     string
	Environment    string
	OTLPEndpoint   string
}

// ConfigFromEnv creates a Config from environment variables
func ConfigFromEnv() Config {
	serviceName := firstNonEmpty(env.OtelServiceName, env.NaisAppName, env.DefaultServiceName)
	serviceVersion := firstNonEmpty(env.OtelServiceVersion, env.AppVersion, "unknown")
	environment := firstNonEmpty(env.NaisClusterName, env.UnleashServerAPIEnv, "development")

	return Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Namespace:      env.NaisNamespace,
		InstanceID:     env.NaisPodName,
		Environment:    environment,
		OTLPEndpoint:   env.OtelExporterOTLPEndpoint,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Enabled reports whether an exporter endpoint is configured.
func (c Config) Enabled() bool { return c.OTLPEndpoint != "" }

func (c Config) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		ServiceName(c.ServiceName),
		ServiceVersion(c.ServiceVersion),
		DeploymentEnvironment(c.Environment),
	}
	if c.Namespace != "" {
		attrs = append(attrs, ServiceNamespace(c.Namespace))
	}
	if c.InstanceID != "" {
		attrs = append(attrs, ServiceInstanceID(c.InstanceID))
	}
	return attrs
}

// Telemetry holds the OpenTelemetry providers
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// Shutdown flushes and stops the providers. A nil Telemetry is a no-op.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
			slog.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
			slog.Error("Failed to shutdown meter provider", slog.String("error", err.Error()))
		}
	}
	return errors.Join(errs...)
}

// Initialize sets up tracing and metrics exported over OTLP/gRPC and installs them as
// the global providers. It returns nil when no endpoint is configured.
func Initialize(ctx context.Context, cfg Config) (*Telemetry, error) {
	logger := slog.Default()

	if !cfg.Enabled() {
		logger.Info("OpenTelemetry disabled: OTEL_EXPORTER_OTLP_ENDPOINT not set")
		return nil, nil
	}

	logger.Info("Initializing OpenTelemetry",
		slog.String("service_name", cfg.ServiceName),
		slog.String("service_version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.String("otlp_endpoint", cfg.OTLPEndpoint),
	)

	res, err := resource.New(ctx,
		resource.WithSchemaURL(SchemaURL),
		resource.WithAttributes(cfg.attributes()...),
	)
	if err != nil {
		return nil, err
	}

	userAgent := grpc.WithUserAgent(cfg.ServiceName + "/" + cfg.ServiceVersion)
	telemetry := &Telemetry{}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithDialOption(userAgent),
	)
	if err != nil {
		return nil, err
	}

	telemetry.TracerProvider = trace.NewTracerProvider(
		trace.WithBatcher(traceExporter,
			trace.WithBatchTimeout(5*time.Second),
		),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.AlwaysSample())),
	)
	otel.SetTracerProvider(telemetry.TracerProvider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithDialOption(userAgent),
	)
	if err != nil {
		return telemetry, err
	}

	telemetry.MeterProvider = metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter,
			metric.WithInterval(30*time.Second),
		)),
	)
	otel.SetMeterProvider(telemetry.MeterProvider)

	logger.Info("OpenTelemetry initialized successfully")

	return telemetry, nil
}
