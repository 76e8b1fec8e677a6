// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of utterances answered, by route",
		},
		[]string{"route"},
	)

	ChatRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_failed_total",
			Help: "Total number of utterances that surfaced an error",
		},
		[]string{"error_code"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_request_duration_seconds",
			Help: "Duration of routing one utterance in seconds",
		},
		[]string{"route"},
	)

	ClassifierPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_predictions_total",
			Help: "Total number of classifier predictions, by predicted tag",
		},
		[]string{"tag"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of open chat sessions",
		},
	)
)
