package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/navikt/otel-argbind/env"
)

var (
	defaultLabels = prometheus.Labels{
		"app":       env.NaisAppName,
		"version":   env.AppVersion,
		"namespace": env.NaisNamespace,
		"pod_name":  env.NaisPodName,
	}

	// Create a wrapped registry with default labels
	registry = prometheus.WrapRegistererWith(defaultLabels, prometheus.DefaultRegisterer)

	factory = promauto.With(registry)

	// CacheLookups counts binding cache lookups by result (hit or miss)
	CacheLookups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argbind_cache_lookups_total",
			Help: "Total number of binding cache lookups, by result",
		},
		[]string{"result"},
	)

	// CacheEvictions counts dropped per-class cache groups
	CacheEvictions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argbind_cache_evictions_total",
			Help: "Total number of per-class binding groups dropped from the cache",
		},
		[]string{"reason"},
	)

	// CacheGroups tracks the number of declaring classes with cached bindings
	CacheGroups = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "argbind_cache_groups",
			Help: "Number of declaring classes currently holding cached bindings",
		},
	)

	// BindingsCompiled counts compiled parameter bindings by value shape
	BindingsCompiled = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argbind_bindings_compiled_total",
			Help: "Total number of compiled parameter bindings, by value shape",
		},
		[]string{"shape"},
	)

	// ToggleEvaluations counts Unleash toggle evaluations reported by the client
	ToggleEvaluations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argbind_toggle_evaluations_total",
			Help: "Total number of argument capture toggle evaluations, by result",
		},
		[]string{"toggle", "enabled"},
	)
)

// Lookups run on every traced call, so their children are resolved once.
var (
	cacheHits   = CacheLookups.WithLabelValues("hit")
	cacheMisses = CacheLookups.WithLabelValues("miss")
)

// RecordCacheLookup records a binding cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		cacheHits.Inc()
		return
	}
	cacheMisses.Inc()
}

// RecordCacheEviction records a dropped class group
func RecordCacheEviction(reason string) {
	CacheEvictions.WithLabelValues(reason).Inc()
	CacheGroups.Dec()
}

// RecordCacheGroupAdded records a new class group
func RecordCacheGroupAdded() {
	CacheGroups.Inc()
}

// RecordBindingCompiled records one compiled binding
func RecordBindingCompiled(shape string) {
	BindingsCompiled.WithLabelValues(shape).Inc()
}

// RecordToggleEvaluation records one toggle evaluation
func RecordToggleEvaluation(toggle string, enabled bool) {
	ToggleEvaluations.WithLabelValues(toggle, strconv.FormatBool(enabled)).Inc()
}
