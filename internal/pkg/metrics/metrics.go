// Package metrics provides Prometheus metrics for the tool server.
// Scrape these at /metrics when serving over HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCallsTotal counts tool invocations by tool name and outcome.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimax_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minimax_tool_call_duration_seconds",
			Help:    "Tool invocation latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)

	// UpstreamRequestDuration tracks MiniMax API latency per endpoint.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minimax_upstream_request_duration_seconds",
			Help:    "MiniMax API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimax_upstream_errors_total",
			Help: "Total number of failed MiniMax API requests by error kind",
		},
		[]string{"endpoint", "kind"},
	)

	// ImageResolutionsTotal counts resolved image references by source and format.
	ImageResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimax_image_resolutions_total",
			Help: "Total number of image references resolved to data URLs",
		},
		[]string{"source", "format"},
	)
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordToolCall records the outcome and latency of a tool call.
func RecordToolCall(tool string, isError bool, seconds float64) {
	status := StatusSuccess
	if isError {
		status = StatusError
	}
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(seconds)
}
