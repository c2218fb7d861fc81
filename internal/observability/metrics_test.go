package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsAggregatePerRoute(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/v1/reports", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/v1/reports", "GET", 404, 30*time.Millisecond)
	m.RecordRequest("/api/v1/reports", "POST", 500, 5*time.Millisecond)
	m.RecordError("/api/v1/reports", "GET", "NOT_FOUND")

	routes, errorCodes := m.Snapshot()

	get := routes["GET /api/v1/reports"]
	assert.Equal(t, int64(2), get.Requests)
	assert.Equal(t, int64(1), get.ClientErrors)
	assert.Equal(t, int64(0), get.ServerErrors)
	assert.Equal(t, int64(20), get.AvgLatencyMS)

	post := routes["POST /api/v1/reports"]
	assert.Equal(t, int64(1), post.ServerErrors)

	assert.Equal(t, int64(1), errorCodes["GET /api/v1/reports NOT_FOUND"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/health/live", "GET", 200, time.Millisecond)
	m.RecordError("/health/live", "GET", "INTERNAL_ERROR")
	routes, errorCodes := m.Snapshot()
	assert.Nil(t, routes)
	assert.Nil(t, errorCodes)
}
