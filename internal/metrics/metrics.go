// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics はボットとストアの主要カウンター群
type Metrics struct {
	SubmissionsTotal  prometheus.Counter
	ThrottledTotal    prometheus.Counter
	TransitionsTotal  *prometheus.CounterVec
	StoreErrorsTotal  *prometheus.CounterVec
	UpdatesTotal      *prometheus.CounterVec
	UnknownCommands   prometheus.Counter
	ForbiddenAttempts prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lessons_submissions_total",
			Help: "Number of lessons accepted for storage.",
		}),
		ThrottledTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lessons_throttled_total",
			Help: "Number of submissions rejected by flood control.",
		}),
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lessons_status_transitions_total",
			Help: "Number of moderator status transitions by target status.",
		}, []string{"status"}),
		StoreErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lessons_store_errors_total",
			Help: "Number of datastore failures by operation.",
		}, []string{"operation"}),
		UpdatesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Number of inbound updates by kind.",
		}, []string{"kind"}),
		UnknownCommands: factory.NewCounter(prometheus.CounterOpts{
			Name: "bot_unknown_commands_total",
			Help: "Number of unrecognized commands or callbacks.",
		}),
		ForbiddenAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "bot_forbidden_attempts_total",
			Help: "Number of moderation attempts by non-moderators.",
		}),
	}
}
