// Package metrics holds the prometheus collectors shared across the
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report serving metrics
var (
	// ReportRequestsTotal tracks report requests by report name and status.
	ReportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_requests_total",
			Help: "Total report requests by report and status",
		},
		[]string{"report", "status"},
	)

	// QueryDuration tracks SQL query latency per report in seconds.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_query_duration_seconds",
			Help:    "Report SQL query duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"report"},
	)
)

// Report cache metrics
var (
	// CacheHits counts report cache hits by report.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_hits_total",
			Help: "Report cache hits by report",
		},
		[]string{"report"},
	)

	// CacheMisses counts report cache misses by report.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_misses_total",
			Help: "Report cache misses by report",
		},
		[]string{"report"},
	)
)

// Redis operation metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation and status.
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisConnectionErrors counts failed Redis connection attempts.
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// RedisOpDuration tracks Redis operation latency in seconds.
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Circuit breaker metrics
var (
	// CircuitBreakerState reports the current breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)

	// CircuitBreakerStateChanges counts breaker transitions by new state.
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)
