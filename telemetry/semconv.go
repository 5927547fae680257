// Package telemetry wires binding sets into OpenTelemetry spans and metrics.
//
// This file centralizes the semconv version so every attribute produced here shares
// one schema. Update the import path when upgrading the OTel SDK.
package telemetry

// resource.New is used instead of merging with resource.Default, so the SDK's own
// semconv version cannot conflict with this one.
import semconv "go.opentelemetry.io/otel/semconv/v1.38.0"

// SchemaURL for resource creation
const SchemaURL = semconv.SchemaURL

// Resource attributes
var (
	ServiceName           = semconv.ServiceName
	ServiceVersion        = semconv.ServiceVersion
	ServiceNamespace      = semconv.ServiceNamespace
	ServiceInstanceID     = semconv.ServiceInstanceID
	DeploymentEnvironment = semconv.DeploymentEnvironmentName
)

// Span and metric attributes
var (
	CodeFunctionName    = semconv.CodeFunctionName
	CodeFunctionNameKey = semconv.CodeFunctionNameKey
	ErrorType           = semconv.ErrorType
	ErrorTypeKey        = semconv.ErrorTypeKey
)
