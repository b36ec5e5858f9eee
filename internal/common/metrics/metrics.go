// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Total number of chat turns by outcome",
		},
		[]string{"outcome"},
	)

	CompletionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_calls_total",
			Help: "Total number of completion service calls by caller and outcome",
		},
		[]string{"caller", "outcome"},
	)

	CompletionCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "completion_call_duration_seconds",
			Help: "Duration of completion service calls in seconds",
		},
		[]string{"caller"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "repository_query_duration_seconds",
			Help: "Duration of repository queries in seconds",
		},
		[]string{"entity"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)
