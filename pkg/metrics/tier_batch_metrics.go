// Package metrics tracks in-process batch run statistics.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// BatchMetrics records durations and counts for bulk tier runs. It keeps a
// sliding window of recent run durations for percentile reporting.
type BatchMetrics struct {
	mu         sync.RWMutex
	samples    []int64 // durations in milliseconds
	maxSamples int

	totalRuns     int64
	totalProducts int64
	totalErrors   int64
	lastRunAt     time.Time
}

// NewBatchMetrics creates a recorder keeping the last windowSize run samples.
func NewBatchMetrics(windowSize int) *BatchMetrics {
	if windowSize <= 0 {
		windowSize = 100
	}
	return &BatchMetrics{
		samples:    make([]int64, 0, windowSize),
		maxSamples: windowSize,
	}
}

// RecordRun records one completed bulk run.
func (m *BatchMetrics) RecordRun(d time.Duration, products, errors int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) >= m.maxSamples {
		m.samples = m.samples[1:]
	}
	m.samples = append(m.samples, d.Milliseconds())

	m.totalRuns++
	m.totalProducts += int64(products)
	m.totalErrors += int64(errors)
	m.lastRunAt = time.Now().UTC()
}

// BatchStats is a snapshot of recorded run statistics.
type BatchStats struct {
	TotalRuns     int64     `json:"total_runs"`
	TotalProducts int64     `json:"total_products"`
	TotalErrors   int64     `json:"total_errors"`
	LastRunAt     time.Time `json:"last_run_at,omitempty"`
	P50Ms         int64     `json:"p50_ms"`
	P95Ms         int64     `json:"p95_ms"`
	MaxMs         int64     `json:"max_ms"`
}

// Stats returns a snapshot including duration percentiles.
func (m *BatchMetrics) Stats() BatchStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := BatchStats{
		TotalRuns:     m.totalRuns,
		TotalProducts: m.totalProducts,
		TotalErrors:   m.totalErrors,
		LastRunAt:     m.lastRunAt,
	}

	if len(m.samples) == 0 {
		return stats
	}

	sorted := make([]int64, len(m.samples))
	copy(sorted, m.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	stats.P50Ms = sorted[len(sorted)/2]
	stats.P95Ms = sorted[(len(sorted)*95)/100]
	stats.MaxMs = sorted[len(sorted)-1]
	return stats
}
