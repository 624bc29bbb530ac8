package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitpulse_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "habitpulse_request_duration_seconds",
			Help: "Request duration in seconds",
		},
		[]string{"method", "path"},
	)

	CompletionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "habitpulse_completions_total",
			Help: "Habit completions recorded through the engine",
		},
	)

	StreakRecomputations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "habitpulse_streak_recomputations_total",
			Help: "Streak recomputations triggered by completion writes",
		},
	)

	RemindersDispatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "habitpulse_reminders_dispatched_total",
			Help: "Reminder notifications dispatched by the worker",
		},
	)
)

func Init() {
	prometheus.MustRegister(ReqCount, ReqDuration, CompletionsTotal, StreakRecomputations, RemindersDispatched)
}
