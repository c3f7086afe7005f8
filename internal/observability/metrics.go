package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory counters for requests, failures and issued tokens.
type Metrics struct {
	mu            sync.RWMutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	totalRequests int64
	totalErrors   int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalRequests++
}

// RecordError increments counters for a failed request by error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
	m.totalErrors++
}

// Totals reports the served and failed request counts.
func (m *Metrics) Totals() (requests, errors int64) {
	if m == nil {
		return 0, 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalRequests, m.totalErrors
}
