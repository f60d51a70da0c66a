package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultAccepted   = "accepted"
	ResultRejected   = "rejected"
	ResultLoadFailed = "load_failed"
)

var (
	// Validation metrics
	ManifestsValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subgraph_validator_manifests_validated_total",
			Help: "Total number of manifests validated by result",
		},
		[]string{"result"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subgraph_validator_validation_failures_total",
			Help: "Total number of rejected manifests by violated rule",
		},
		[]string{"kind"},
	)

	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "subgraph_validator_validation_duration_seconds",
			Help:    "Time taken to load and validate a manifest",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), //nolint:mnd
		},
	)

	ManifestsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subgraph_validator_manifests_registered_total",
			Help: "Total number of manifests newly stored in the registry",
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subgraph_validator_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subgraph_validator_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "subgraph_validator_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func ValidationAcceptedInc() {
	ManifestsValidated.WithLabelValues(ResultAccepted).Inc()
}

func ValidationRejectedInc(kind string) {
	ManifestsValidated.WithLabelValues(ResultRejected).Inc()
	ValidationFailures.WithLabelValues(kind).Inc()
}

func LoadFailedInc() {
	ManifestsValidated.WithLabelValues(ResultLoadFailed).Inc()
}

func ValidationDurationLog(duration time.Duration) {
	ValidationDuration.Observe(duration.Seconds())
}

func ManifestsRegisteredInc() {
	ManifestsRegistered.Inc()
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
