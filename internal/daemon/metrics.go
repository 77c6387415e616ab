package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	BoardFetches         atomic.Int64
	ReordersCommitted    atomic.Int64
	Conflicts            atomic.Int64
	ValidationRejections atomic.Int64
	Failures             atomic.Int64
	StartTime            time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncBoardFetches increments the board fetch counter
func (m *Metrics) IncBoardFetches() {
	m.BoardFetches.Add(1)
}

// IncReordersCommitted increments the committed reorder counter
func (m *Metrics) IncReordersCommitted() {
	m.ReordersCommitted.Add(1)
}

// IncConflicts increments the conflict counter
func (m *Metrics) IncConflicts() {
	m.Conflicts.Add(1)
}

// IncValidationRejections increments the validation rejection counter
func (m *Metrics) IncValidationRejections() {
	m.ValidationRejections.Add(1)
}

// IncFailures increments the internal failure counter
func (m *Metrics) IncFailures() {
	m.Failures.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	BoardFetches         int64     `json:"board_fetches"`
	ReordersCommitted    int64     `json:"reorders_committed"`
	Conflicts            int64     `json:"conflicts"`
	ValidationRejections int64     `json:"validation_rejections"`
	Failures             int64     `json:"failures"`
	StartTime            time.Time `json:"start_time"`
	Uptime               string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		BoardFetches:         m.BoardFetches.Load(),
		ReordersCommitted:    m.ReordersCommitted.Load(),
		Conflicts:            m.Conflicts.Load(),
		ValidationRejections: m.ValidationRejections.Load(),
		Failures:             m.Failures.Load(),
		StartTime:            m.StartTime,
		Uptime:               time.Since(m.StartTime).Round(time.Second).String(),
	}
}
