// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	oracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opportunitymatch_oracle_calls_total",
			Help: "Total number of oracle calls",
		},
		[]string{"task", "status"}, // status: success/failure
	)

	oracleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opportunitymatch_oracle_duration_seconds",
			Help:    "Time spent waiting for the oracle, retries included",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"task"},
	)

	matchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opportunitymatch_match_requests_total",
			Help: "Total number of matching requests",
		},
		[]string{"status"},
	)

	matchRecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opportunitymatch_match_record_failures_total",
			Help: "Match results that could not be recorded",
		},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opportunitymatch_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opportunitymatch_events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"type", "status"},
	)
)

func status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func ObserveOracleCall(task string, err error, d time.Duration) {
	oracleCalls.WithLabelValues(task, status(err)).Inc()
	oracleDuration.WithLabelValues(task).Observe(d.Seconds())
}

func ObserveMatchRequest(err error) {
	matchRequests.WithLabelValues(status(err)).Inc()
}

func AddMatchRecordFailures(n int) {
	if n > 0 {
		matchRecordFailures.Add(float64(n))
	}
}

func ObserveHTTP(method, route, code string, d time.Duration) {
	httpDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

func ObserveEvent(eventType string, err error) {
	eventsPublished.WithLabelValues(eventType, status(err)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
