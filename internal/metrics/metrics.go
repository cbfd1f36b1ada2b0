// Package metrics provides the centralized Prometheus metrics registry for
// the projection engine and its data providers.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProjectionsComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sharp_props",
		Name:      "projections_computed_total",
		Help:      "Total number of projections computed",
	})
	DecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharp_props",
		Name:      "decisions_total",
		Help:      "Total number of betting decisions, labeled by recommended side",
	}, []string{"side"})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharp_props",
		Name:      "provider_requests_total",
		Help:      "Total number of upstream provider requests, labeled by provider and outcome",
	}, []string{"provider", "outcome"})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharp_props",
		Name:      "cache_hits_total",
		Help:      "Total number of provider cache hits, labeled by provider",
	}, []string{"provider"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharp_props",
		Name:      "cache_misses_total",
		Help:      "Total number of provider cache misses, labeled by provider",
	}, []string{"provider"})
)

// Gauge metrics
var (
	ConfiguredBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sharp_props",
		Name:      "configured_bankroll",
		Help:      "Configured bankroll in currency units",
	})
	LastEdge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sharp_props",
		Name:      "last_edge",
		Help:      "Edge of the most recent decision",
	})
)

// Histogram metrics
var (
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sharp_props",
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of upstream provider requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sharp_props",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of Monte Carlo simulation runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ProjectionsComputedTotal)
		registry.MustRegister(DecisionsTotal)
		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)

		// Register gauge metrics
		registry.MustRegister(ConfiguredBankroll)
		registry.MustRegister(LastEdge)

		// Register histogram metrics
		registry.MustRegister(ProviderRequestDuration)
		registry.MustRegister(SimulationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// TimeSimulation starts a timer against the simulation duration histogram.
func TimeSimulation() *prometheus.Timer {
	return prometheus.NewTimer(SimulationDuration)
}

// RecordProviderRequest records an upstream provider request outcome.
func RecordProviderRequest(provider, outcome string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(provider, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordCacheHit records a provider cache hit.
func RecordCacheHit(provider string) {
	CacheHitsTotal.WithLabelValues(provider).Inc()
}

// RecordCacheMiss records a provider cache miss.
func RecordCacheMiss(provider string) {
	CacheMissesTotal.WithLabelValues(provider).Inc()
}

// UpdateBankroll updates the configured bankroll gauge.
func UpdateBankroll(amount float64) {
	ConfiguredBankroll.Set(amount)
}

// UpdateLastEdge updates the last decision edge gauge.
func UpdateLastEdge(edge float64) {
	LastEdge.Set(edge)
}
