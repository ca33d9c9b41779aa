package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts engine operations served by the application.
type Metrics struct {
	requests atomic.Uint64
	totalNs  atomic.Int64
	maxNs    atomic.Int64

	swaps   atomic.Uint64
	noops   atomic.Uint64
	errors  atomic.Uint64
	reloads atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRequest records one engine operation and its latency.
func (m *Metrics) RecordRequest(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.requests.Add(1)
	m.totalNs.Add(ns)

	for {
		cur := m.maxNs.Load()
		if ns <= cur || m.maxNs.CompareAndSwap(cur, ns) {
			break
		}
	}
}

// RecordSwap records a swap that changed the text.
func (m *Metrics) RecordSwap() {
	m.swaps.Add(1)
}

// RecordNoop records a swap that hit a group boundary.
func (m *Metrics) RecordNoop() {
	m.noops.Add(1)
}

// RecordError records a failed operation.
func (m *Metrics) RecordError() {
	m.errors.Add(1)
}

// RecordReload records a configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	requests := m.requests.Load()

	var avg int64
	if requests > 0 {
		avg = m.totalNs.Load() / int64(requests)
	}

	return MetricsSnapshot{
		Uptime:   time.Since(m.startTime),
		Requests: requests,
		AvgNs:    avg,
		MaxNs:    m.maxNs.Load(),
		Swaps:    m.swaps.Load(),
		Noops:    m.noops.Load(),
		Errors:   m.errors.Load(),
		Reloads:  m.reloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime   time.Duration
	Requests uint64
	AvgNs    int64
	MaxNs    int64
	Swaps    uint64
	Noops    uint64
	Errors   uint64
	Reloads  uint64
}

// ErrorRate returns the percentage of failed requests.
func (s MetricsSnapshot) ErrorRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Requests) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
