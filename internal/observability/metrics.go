package observability

import (
	"sync"
	"time"
)

// RouteStats is the exported aggregate for one route.
type RouteStats struct {
	Requests     int64 `json:"requests"`
	ClientErrors int64 `json:"client_errors"`
	ServerErrors int64 `json:"server_errors"`
	AvgLatencyMS int64 `json:"avg_latency_ms"`
}

type routeCounters struct {
	requests      int64
	clientErrors  int64
	serverErrors  int64
	totalDuration time.Duration
}

// Metrics keeps in-process per-route counters. Counters reset on restart;
// the operational stats endpoint reads them through Snapshot.
type Metrics struct {
	mu         sync.Mutex
	routes     map[string]*routeCounters
	errorCodes map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		routes:     make(map[string]*routeCounters),
		errorCodes: make(map[string]int64),
	}
}

// RecordRequest accounts one completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := method + " " + path
	counters := m.routes[key]
	if counters == nil {
		counters = &routeCounters{}
		m.routes[key] = counters
	}
	counters.requests++
	counters.totalDuration += duration
	switch {
	case status >= 500:
		counters.serverErrors++
	case status >= 400:
		counters.clientErrors++
	}
}

// RecordError counts a request that ended in a mapped domain error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCodes[method+" "+path+" "+code]++
}

// Snapshot copies the counters for reporting.
func (m *Metrics) Snapshot() (map[string]RouteStats, map[string]int64) {
	if m == nil {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make(map[string]RouteStats, len(m.routes))
	for key, counters := range m.routes {
		stats := RouteStats{
			Requests:     counters.requests,
			ClientErrors: counters.clientErrors,
			ServerErrors: counters.serverErrors,
		}
		if counters.requests > 0 {
			stats.AvgLatencyMS = counters.totalDuration.Milliseconds() / counters.requests
		}
		routes[key] = stats
	}
	errorCodes := make(map[string]int64, len(m.errorCodes))
	for key, count := range m.errorCodes {
		errorCodes[key] = count
	}
	return routes, errorCodes
}
