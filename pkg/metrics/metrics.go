// Package metrics provides Prometheus metrics for the ingestion and aggregation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sentiscope"

var (
	// ItemsIngested counts stored items by subreddit and type
	ItemsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_ingested_total",
			Help:      "Total number of scored items stored",
		},
		[]string{"subreddit", "type"},
	)

	// ScoringFailures counts scorer calls that fell back to neutral
	ScoringFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_failures_total",
			Help:      "Total number of failed sentiment scoring calls",
		},
	)

	// AggregatesComputed counts daily aggregate computations by outcome
	AggregatesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregates_computed_total",
			Help:      "Total number of daily aggregate computations",
		},
		[]string{"status"},
	)

	// IngestRuns counts poll and backfill runs per subreddit
	IngestRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Total number of ingestion runs",
		},
		[]string{"kind", "subreddit", "status"},
	)

	// RecomputeDuration measures recompute job duration
	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recompute_duration_seconds",
			Help:      "Duration of recompute runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// CacheLookups counts range cache lookups by result
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_cache_lookups_total",
			Help:      "Total number of range cache lookups",
		},
		[]string{"result"},
	)
)

// RecordAggregate records one daily aggregate computation
func RecordAggregate(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AggregatesComputed.WithLabelValues(status).Inc()
}

// RecordIngest records one ingestion run for a subreddit
func RecordIngest(kind, subreddit string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	IngestRuns.WithLabelValues(kind, subreddit, status).Inc()
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(result).Inc()
}
