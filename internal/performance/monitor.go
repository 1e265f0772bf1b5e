// Package performance aggregates pipeline run statistics so long-running
// workers can report their throughput.
package performance

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Metrics is a snapshot of the runs recorded so far.
type Metrics struct {
	TotalRuns    int64
	TotalEvents  int64
	TotalElapsed time.Duration
	GPURuns      int64
	CPURuns      int64
	AvgElapsed   time.Duration
	MinElapsed   time.Duration
	MaxElapsed   time.Duration
	LastElapsed  time.Duration
	LastEvents   int
	LastDevice   string
	LastFinished time.Time
}

// Monitor accumulates per-video pipeline timings. Safe for concurrent use.
type Monitor struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	metrics Metrics
}

// NewMonitor creates a Monitor with a no-op logger.
func NewMonitor() *Monitor {
	return NewMonitorWithLogger(zap.NewNop())
}

// NewMonitorWithLogger creates a Monitor that can log throughput summaries.
func NewMonitorWithLogger(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{logger: logger}
}

// Record folds one completed pipeline run into the aggregate. Any device
// other than cuda counts as a CPU run.
func (m *Monitor) Record(device string, events int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics.TotalRuns++
	m.metrics.TotalEvents += int64(events)
	m.metrics.TotalElapsed += elapsed
	m.metrics.LastElapsed = elapsed
	m.metrics.LastEvents = events
	m.metrics.LastDevice = device
	m.metrics.LastFinished = time.Now()

	if device == "cuda" {
		m.metrics.GPURuns++
	} else {
		m.metrics.CPURuns++
	}

	if m.metrics.MinElapsed == 0 || elapsed < m.metrics.MinElapsed {
		m.metrics.MinElapsed = elapsed
	}
	if elapsed > m.metrics.MaxElapsed {
		m.metrics.MaxElapsed = elapsed
	}
	m.metrics.AvgElapsed = time.Duration(int64(m.metrics.TotalElapsed) / m.metrics.TotalRuns)
}

// Metrics returns a copy of the current aggregate.
func (m *Monitor) Metrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metrics
}

// LogSummary logs the aggregate so far. Does nothing before the first run.
func (m *Monitor) LogSummary() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.metrics.TotalRuns == 0 {
		return
	}

	m.logger.Info("pipeline throughput",
		zap.Int64("total_runs", m.metrics.TotalRuns),
		zap.Int64("total_events", m.metrics.TotalEvents),
		zap.Int64("gpu_runs", m.metrics.GPURuns),
		zap.Int64("cpu_runs", m.metrics.CPURuns),
		zap.Duration("avg_elapsed", m.metrics.AvgElapsed),
		zap.Duration("min_elapsed", m.metrics.MinElapsed),
		zap.Duration("max_elapsed", m.metrics.MaxElapsed),
		zap.Duration("last_elapsed", m.metrics.LastElapsed))
}

// Reset clears all accumulated metrics.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = Metrics{}
}
