package env

import "os"

// NAIS environment variables
var NaisAppName = os.Getenv("NAIS_APP_NAME")
var NaisClusterName = os.Getenv("NAIS_CLUSTER_NAME")
var NaisNamespace = os.Getenv("NAIS_NAMESPACE")
var NaisPodName = os.Getenv("NAIS_POD_NAME")
var AppVersion = os.Getenv("APP_VERSION")

// Unleash environment variables
var UnleashServerAPIURL = os.Getenv("UNLEASH_SERVER_API_URL")
var UnleashServerAPIToken = os.Getenv("UNLEASH_SERVER_API_TOKEN")
var UnleashServerAPIEnv = os.Getenv("UNLEASH_SERVER_API_ENV")

// OpenTelemetry environment variables
var OtelServiceName = os.Getenv("OTEL_SERVICE_NAME")
var OtelServiceVersion = os.Getenv("OTEL_SERVICE_VERSION")
var OtelExporterOTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

// Argument binding environment variables
var ArgbindConfig = os.Getenv("ARGBIND_CONFIG")

// Logging environment variables
var LogLevel = os.Getenv("LOG_LEVEL")

// Server environment variables
var Port = os.Getenv("PORT")

const DefaultServiceName = "otel-argbind"
const DefaultPort = "8080"
