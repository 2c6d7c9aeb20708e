package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedFailures       int64
	ItemsParsed        int64
	DuplicatesFiltered int64
	RequestsServed     int64
	CacheHits          int64

	// Timings
	LastAggregationTime time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFailures++
}

func (m *Metrics) AddItemsParsed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsParsed += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) IncrementRequestsServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsServed++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) RecordAggregation(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAggregationTime = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":            m.FeedsFetched,
		"feed_failures":            m.FeedFailures,
		"items_parsed":             m.ItemsParsed,
		"duplicates_filtered":      m.DuplicatesFiltered,
		"requests_served":          m.RequestsServed,
		"cache_hits":               m.CacheHits,
		"last_aggregation_time_ms": m.LastAggregationTime.Milliseconds(),
		"last_run_time":            m.LastRunTime.Format(time.RFC3339),
		"last_error_time":          m.LastErrorTime.Format(time.RFC3339),
		"last_error":               m.LastError,
		"is_healthy":               m.IsHealthy,
	}
}
