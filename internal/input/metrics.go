package input

import (
	"sync/atomic"
	"time"
)

// Metrics tracks key processing counts and latency.
// Counters are atomic so they can be read from outside the event loop.
type Metrics struct {
	keys        atomic.Uint64
	handled     atomic.Uint64
	pending     atomic.Uint64
	declined    atomic.Uint64
	unmatched   atomic.Uint64
	commandLine atomic.Uint64
	hookConsume atomic.Uint64
	retries     atomic.Uint64

	totalLatency atomic.Int64
	peakLatency  atomic.Int64

	startTime time.Time
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Keys             uint64
	Handled          uint64
	Pending          uint64
	Declined         uint64
	Unmatched        uint64
	CommandLine      uint64
	HookConsumptions uint64
	Retries          uint64
	AverageLatency   time.Duration
	PeakLatency      time.Duration
	Uptime           time.Duration
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records one processed key.
func (m *Metrics) RecordKey(out Outcome, latency time.Duration) {
	m.keys.Add(1)
	switch out.Status {
	case Handled:
		m.handled.Add(1)
	case Pending:
		m.pending.Add(1)
	case Declined:
		m.declined.Add(1)
	case Unmatched:
		m.unmatched.Add(1)
	case CommandLine:
		m.commandLine.Add(1)
	}

	ns := latency.Nanoseconds()
	m.totalLatency.Add(ns)
	for {
		current := m.peakLatency.Load()
		if ns <= current || m.peakLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

// RecordHookConsumption records a key consumed by a hook.
func (m *Metrics) RecordHookConsumption() {
	m.hookConsume.Add(1)
}

// RecordRetry records a trailing key retried as a fresh sequence.
func (m *Metrics) RecordRetry() {
	m.retries.Add(1)
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Keys:             m.keys.Load(),
		Handled:          m.handled.Load(),
		Pending:          m.pending.Load(),
		Declined:         m.declined.Load(),
		Unmatched:        m.unmatched.Load(),
		CommandLine:      m.commandLine.Load(),
		HookConsumptions: m.hookConsume.Load(),
		Retries:          m.retries.Load(),
		PeakLatency:      time.Duration(m.peakLatency.Load()),
		Uptime:           time.Since(m.startTime),
	}
	if s.Keys > 0 {
		s.AverageLatency = time.Duration(m.totalLatency.Load() / int64(s.Keys))
	}
	return s
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.keys.Store(0)
	m.handled.Store(0)
	m.pending.Store(0)
	m.declined.Store(0)
	m.unmatched.Store(0)
	m.commandLine.Store(0)
	m.hookConsume.Store(0)
	m.retries.Store(0)
	m.totalLatency.Store(0)
	m.peakLatency.Store(0)
	m.startTime = time.Now()
}
