// Package metrics holds the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "produce_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "produce_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "produce_upstream_requests_total",
		Help: "Calls to the remote trading API by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "produce_upstream_request_duration_seconds",
		Help:    "Remote trading API latency by endpoint",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	ReportsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "produce_reports_rendered_total",
		Help: "Reports rendered or exported by kind and format",
	}, []string{"kind", "format"})

	ReportLines = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "produce_report_lines",
		Help:    "Transaction lines per rendered report",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	NumericCoercions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "produce_numeric_coercions_total",
		Help: "Missing or malformed numeric fields coerced to zero",
	}, []string{"field"})

	RowCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "produce_row_cache_total",
		Help: "Report row cache lookups by result",
	}, []string{"result"})

	PrintJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "produce_print_jobs_total",
		Help: "Thermal print jobs by outcome",
	}, []string{"outcome"})
)
