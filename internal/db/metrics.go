package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subgraph_validator_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"db", "operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subgraph_validator_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"db", "operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subgraph_validator_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"db", "operation"},
	)
)

// ObserveQuery records a query and its duration, and counts it as an error when err is set.
func ObserveQuery(db, operation string, start time.Time, err error) {
	dbQueries.WithLabelValues(db, operation).Inc()
	dbQueryTime.WithLabelValues(db, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		dbErrors.WithLabelValues(db, operation).Inc()
	}
}
