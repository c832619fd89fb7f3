// Package metrics provides Prometheus metrics for HTTP serving and for the
// evaluation engine:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//   - evaluations_total: evaluation outcomes by task type and status
//   - findings_total: clinical findings by kind and severity
//   - evaluation_duration_seconds: engine latency by task type
//
// All metrics register with the Prometheus default registry at package init.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (active client IPs)",
		},
	)

	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluations_total",
			Help: "Evaluation task outcomes",
		},
		[]string{"task_type", "status"},
	)

	FindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findings_total",
			Help: "Clinical findings produced by reviews",
		},
		[]string{"kind", "severity"},
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evaluation_duration_seconds",
			Help:    "Evaluation engine latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 2},
		},
		[]string{"task_type"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(FindingsTotal)
	prometheus.MustRegister(EvaluationDuration)
}

// RecordEvaluation tracks one completed evaluation task.
func RecordEvaluation(taskType, status string, duration time.Duration) {
	EvaluationsTotal.WithLabelValues(taskType, status).Inc()
	EvaluationDuration.WithLabelValues(taskType).Observe(duration.Seconds())
}

// RecordFinding tracks one clinical finding.
func RecordFinding(kind, severity string) {
	FindingsTotal.WithLabelValues(kind, severity).Inc()
}
