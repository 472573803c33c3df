// Package metrics exposes Prometheus collectors for the HTTP layer and the
// transactional executor.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "habitrack",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "habitrack",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "habitrack",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	txTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "habitrack",
			Subsystem: "tx",
			Name:      "total",
			Help:      "Transactions run by the mutation executor, by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	txDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "habitrack",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time from session acquisition to release.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)
)

// Transaction outcomes.
const (
	OutcomeCommit     = "commit"
	OutcomeRollback   = "rollback"
	OutcomeAcquireErr = "acquire_error"
	OutcomeBeginErr   = "begin_error"
	OutcomeCommitErr  = "commit_error"
	OutcomePanic      = "panic"
)

const unmatchedRouteName = "unmatched"

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		txTotal,
		txDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted bumps the in-flight gauge and returns the func that undoes it.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveHTTP records one completed request. route is the router pattern
// (e.g. "/users/{id}"), not the raw path, to keep label cardinality bounded.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = unmatchedRouteName
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveTx records one executor run.
func ObserveTx(operation, outcome string, d time.Duration) {
	txTotal.WithLabelValues(operation, outcome).Inc()
	txDuration.WithLabelValues(operation).Observe(d.Seconds())
}
