package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts pipeline runs by outcome.
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mgnrega_pipeline_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"status"}, // success, fetch_error, empty
	)

	// RecordsFetched counts raw records returned by the upstream API.
	RecordsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mgnrega_records_fetched_total",
			Help: "Total raw records fetched from the upstream API",
		},
	)

	// RowsUpserted counts fact rows written or updated.
	RowsUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mgnrega_fact_rows_upserted_total",
			Help: "Total fact rows written or updated",
		},
	)

	// RowFailures counts fact rows that failed even the per-row fallback.
	RowFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mgnrega_fact_row_failures_total",
			Help: "Total fact rows that failed to write",
		},
	)

	// FetchErrors counts upstream fetch failures by type.
	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mgnrega_fetch_errors_total",
			Help: "Total upstream fetch failures",
		},
		[]string{"type"}, // network, status, decode
	)

	// RunDuration observes wall-clock duration of full pipeline runs.
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mgnrega_pipeline_run_duration_seconds",
			Help:    "Duration of pipeline runs",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// RawCacheFailures counts audit-cache writes that failed.
	RawCacheFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mgnrega_raw_cache_failures_total",
			Help: "Total raw API cache writes that failed",
		},
	)
)
