// Package metrics defines the Prometheus instruments exported on /metrics.
// Counters are registered on the default registry at init time so that any
// package can record without wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maeve",
		Name:      "commands_total",
		Help:      "Slash command invocations by command name and outcome.",
	}, []string{"command", "status"})

	componentActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maeve",
		Name:      "component_actions_total",
		Help:      "Button actions on interactive responses by outcome.",
	}, []string{"outcome"})

	tmdbRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maeve",
		Name:      "tmdb_requests_total",
		Help:      "Outbound TMDB API calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maeve",
		Name:      "command_duration_seconds",
		Help:      "End-to-end slash command handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})
)

// Command records one slash command invocation. status is "ok" or "error".
func Command(name, status string) {
	commandsTotal.WithLabelValues(name, status).Inc()
}

// CommandDuration records end-to-end handling latency for one invocation.
func CommandDuration(name string, seconds float64) {
	commandDuration.WithLabelValues(name).Observe(seconds)
}

// ComponentAction records one button action. outcome is "accepted",
// "rejected" (non-owner), or "expired".
func ComponentAction(outcome string) {
	componentActionsTotal.WithLabelValues(outcome).Inc()
}

// TMDBRequest records one metadata API call.
func TMDBRequest(endpoint, outcome string) {
	tmdbRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
