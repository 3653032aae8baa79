package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "licensegate"

var (
	// HTTP metrics for the admin server
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// Gate checks
	gateChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_checks_total",
			Help:      "Total number of license gate checks by outcome",
		},
		[]string{"outcome", "reason"},
	)

	gateCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gate_check_duration_seconds",
			Help:      "Duration of the remote license verification call",
			Buckets:   prometheus.DefBuckets,
		},
	)

	flagWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flag_writes_total",
			Help:      "Total writes of the persisted license flag",
		},
		[]string{"result"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "License violation notifications by result",
		},
		[]string{"result"},
	)

	registry *prometheus.Registry
)

// Init initializes the metrics registry and returns the handler.
// If goMetrics is true, Go runtime metrics are included.
func Init(goMetrics bool) http.Handler {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		gateChecksTotal,
		gateCheckDuration,
		flagWritesTotal,
		notificationsTotal,
	)

	if goMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	})
}

func recordHTTPRequest(method, path, statusCode string) {
	httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
}

func recordHTTPDuration(method, path, statusCode string, duration float64) {
	httpRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
}

// RecordGateCheck records the outcome of one gate check.
func RecordGateCheck(outcome, reason string) {
	gateChecksTotal.WithLabelValues(outcome, reason).Inc()
}

// RecordRemoteCall records how long the verification request took.
func RecordRemoteCall(duration time.Duration) {
	gateCheckDuration.Observe(duration.Seconds())
}

// RecordFlagWrite records a write of the persisted flag.
func RecordFlagWrite(success bool) {
	flagWritesTotal.WithLabelValues(result(success)).Inc()
}

// RecordNotification records a notification outcome: "sent", "failed",
// "unauthorized", "timeout" or "skipped".
func RecordNotification(result string) {
	notificationsTotal.WithLabelValues(result).Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
