package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics across all clients.
type Metrics struct {
	mu sync.Mutex

	actions map[string]*ActionMetrics

	totalDispatches uint64
	totalFailures   uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	FailureCount  uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// AverageDuration returns the average duration of the action.
func (am ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}

// FailureRate returns the failure rate as a percentage.
func (am ActionMetrics) FailureRate() float64 {
	if am.DispatchCount == 0 {
		return 0
	}
	return float64(am.FailureCount) / float64(am.DispatchCount) * 100
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalFailures   uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	ActionCount     int
	Timestamp       time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actions: make(map[string]*ActionMetrics),
	}
}

// RecordDispatch records one dispatched action.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	if failed {
		m.totalFailures++
	}

	am := m.actions[name]
	if am == nil {
		am = &ActionMetrics{Name: name}
		m.actions[name] = am
	}
	am.DispatchCount++
	am.TotalDuration += duration
	am.LastDispatch = time.Now()
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
	if failed {
		am.FailureCount++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// ActionStats returns a copy of the metrics for one action.
func (m *Metrics) ActionStats(name string) (ActionMetrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am, ok := m.actions[name]
	if !ok {
		return ActionMetrics{}, false
	}
	return *am, true
}

// TopActions returns the n most dispatched actions, most frequent first.
// Ties are broken by name.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, *am)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Name < out[j].Name
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Snapshot returns a snapshot of the global counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalFailures:   m.totalFailures,
		TotalPanics:     m.totalPanics,
		ActionCount:     len(m.actions),
		Timestamp:       time.Now(),
	}
	if m.totalDispatches > 0 {
		snap.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return snap
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalFailures = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
