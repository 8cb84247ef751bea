package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the mutation protocol and the
// transaction log. HTTP-level metrics live in the router middleware.
type Metrics struct {
	// Mutation metrics
	MutationsCommitted *prometheus.CounterVec
	MutationConflicts  *prometheus.CounterVec
	MutationsExhausted *prometheus.CounterVec
	MutationDuration   *prometheus.HistogramVec

	// Transaction log metrics
	LogEntriesWritten prometheus.Counter
	LogWriteFailures  prometheus.Counter

	// State metrics
	SnapshotHits   prometheus.Counter
	SnapshotMisses prometheus.Counter
	EntryCount     prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		MutationsCommitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_mutations_committed_total",
				Help: "Total number of committed state mutations by operation",
			},
			[]string{"operation"},
		),
		MutationConflicts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_mutation_conflicts_total",
				Help: "Total number of conditional write conflicts by operation",
			},
			[]string{"operation"},
		),
		MutationsExhausted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_mutations_exhausted_total",
				Help: "Total number of mutations abandoned after the retry budget",
			},
			[]string{"operation"},
		),
		MutationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "expenses_mutation_duration_seconds",
				Help:    "Duration of state mutations including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		LogEntriesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expenses_log_entries_written_total",
			Help: "Total number of transaction log entries written",
		}),
		LogWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expenses_log_write_failures_total",
			Help: "Total number of transaction log writes that failed after a committed mutation",
		}),

		SnapshotHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expenses_snapshot_hits_total",
			Help: "Total number of mutations that started from a session snapshot",
		}),
		SnapshotMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expenses_snapshot_misses_total",
			Help: "Total number of snapshot lookups that missed",
		}),
		EntryCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "expenses_entry_count",
			Help: "Current number of tracked entries in the live record",
		}),
	}
}

// MutationCommitted implements usecase.MutationMetrics.
func (m *Metrics) MutationCommitted(operation string) {
	m.MutationsCommitted.WithLabelValues(operation).Inc()
}

// MutationConflict implements usecase.MutationMetrics.
func (m *Metrics) MutationConflict(operation string) {
	m.MutationConflicts.WithLabelValues(operation).Inc()
}

// MutationExhausted implements usecase.MutationMetrics.
func (m *Metrics) MutationExhausted(operation string) {
	m.MutationsExhausted.WithLabelValues(operation).Inc()
}

// ObserveMutationDuration implements usecase.MutationMetrics.
func (m *Metrics) ObserveMutationDuration(operation string, seconds float64) {
	m.MutationDuration.WithLabelValues(operation).Observe(seconds)
}

// LogEntryWritten implements usecase.MutationMetrics.
func (m *Metrics) LogEntryWritten() {
	m.LogEntriesWritten.Inc()
}

// LogWriteFailed implements usecase.MutationMetrics.
func (m *Metrics) LogWriteFailed() {
	m.LogWriteFailures.Inc()
}

// SnapshotHit implements usecase.MutationMetrics.
func (m *Metrics) SnapshotHit() {
	m.SnapshotHits.Inc()
}

// SnapshotMiss implements usecase.MutationMetrics.
func (m *Metrics) SnapshotMiss() {
	m.SnapshotMisses.Inc()
}
