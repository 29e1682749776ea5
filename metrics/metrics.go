// Package metrics provides Prometheus metrics for the CE assist API.
// HTTP traffic:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// Domain activity:
//   - navigation_actions_total: Counter with action and applied labels
//   - calculator_runs_total: Counter with calculator and status labels
//   - sessions_active / sessions_evicted_total: session store size and sweeps
//   - catalog_records: Gauge per catalog table
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import (
	"strconv"

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
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	NavigationActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_actions_total",
			Help: "Navigation actions received, by whether they applied",
		},
		[]string{"action", "applied"},
	)

	CalculatorRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_runs_total",
			Help: "Calculator runs by result status",
		},
		[]string{"calculator", "status"},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Navigation sessions currently held in memory",
		},
	)

	SessionsEvictedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_evicted_total",
			Help: "Sessions evicted for inactivity",
		},
	)

	CatalogRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Records loaded per catalog table",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(NavigationActionsTotal)
	prometheus.MustRegister(CalculatorRunsTotal)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(SessionsEvictedTotal)
	prometheus.MustRegister(CatalogRecords)
}

// RecordNavigation counts one navigation action
func RecordNavigation(action string, applied bool) {
	NavigationActionsTotal.WithLabelValues(action, strconv.FormatBool(applied)).Inc()
}

// RecordCalculatorRun counts one calculator run
func RecordCalculatorRun(calculator, status string) {
	CalculatorRunsTotal.WithLabelValues(calculator, status).Inc()
}
