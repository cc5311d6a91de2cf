package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_reconciled_total",
			Help: "Leads written to the row store, by action",
		},
		[]string{"action"},
	)

	leadScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lead_score",
			Help:    "Qualification score of captured leads",
			Buckets: []float64{0, 20, 30, 45, 60, 80, 100, 140},
		},
	)

	sideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_side_effect_failures_total",
			Help: "Best-effort steps (mirroring, notifications) that failed",
		},
		[]string{"effect"},
	)

	waitlistSignups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waitlist_signups_total",
			Help: "Emails added to the waitlist",
		},
	)
)

func RecordReconcile(action string, score int) {
	leadsReconciled.WithLabelValues(action).Inc()
	leadScore.Observe(float64(score))
}

func RecordSideEffectFailure(effect string) {
	sideEffectFailures.WithLabelValues(effect).Inc()
}

func RecordWaitlistSignup() {
	waitlistSignups.Inc()
}
