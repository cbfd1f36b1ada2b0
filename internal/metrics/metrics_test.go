package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitRegistry(t *testing.T) {
	registry := InitRegistry()
	assert.NotNil(t, registry)

	// Second call returns the same registry
	registry2 := InitRegistry()
	assert.Equal(t, registry, registry2)
}

func TestGetRegistry(t *testing.T) {
	registry := GetRegistry()
	assert.NotNil(t, registry)
	assert.Equal(t, InitRegistry(), registry)
}

func TestHandler(t *testing.T) {
	handler := Handler()
	assert.NotNil(t, handler)
}

func TestRecordHelpers(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordProviderRequest("nba_stats", "success", 0.123)
		RecordProviderRequest("nba_stats", "error", 1.9)
		RecordCacheHit("player_logs")
		RecordCacheMiss("player_logs")
		UpdateBankroll(1000.0)
		UpdateLastEdge(0.0962)
	})
}

func TestCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		ProjectionsComputedTotal.Inc()
		DecisionsTotal.WithLabelValues("OVER").Inc()
		DecisionsTotal.WithLabelValues("NONE").Inc()
	})
}

func TestTimeSimulation(t *testing.T) {
	InitRegistry()

	timer := TimeSimulation()
	assert.NotNil(t, timer)
	assert.NotPanics(t, func() {
		timer.ObserveDuration()
	})
}
