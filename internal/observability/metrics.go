package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// ReconcileRowsScanned counts rows examined by each reconciliation pass.
	ReconcileRowsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hikaye_reconcile_rows_scanned_total",
		Help: "Total number of rows examined by reconciliation passes",
	}, []string{"pass"})

	// ReconcileRowsRepaired counts rows corrected by each reconciliation pass.
	ReconcileRowsRepaired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hikaye_reconcile_rows_repaired_total",
		Help: "Total number of rows corrected by reconciliation passes",
	}, []string{"pass"})

	// ReconcileRowErrors counts rows skipped by a pass because of a row-level error.
	ReconcileRowErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hikaye_reconcile_row_errors_total",
		Help: "Total number of rows skipped by reconciliation passes due to errors",
	}, []string{"pass"})

	// MediaResolutions counts media reference resolutions by outcome.
	MediaResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hikaye_media_resolutions_total",
		Help: "Total number of media reference resolutions by outcome",
	}, []string{"outcome"})

	// SchemaColumnsAdded counts columns added by schema evolution.
	SchemaColumnsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hikaye_schema_columns_added_total",
		Help: "Total number of columns added by schema evolution",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hikaye_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hikaye_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// Media resolution outcome labels.
const (
	ResolutionCanonical = "canonical"
	ResolutionRepaired  = "repaired"
	ResolutionAbsent    = "absent"
	ResolutionFallback  = "fallback"
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
