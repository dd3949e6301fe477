package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Purchase attempts by origin and terminal state.
	PurchaseAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_attempts_total",
			Help: "Total number of purchase attempts by origin and terminal state",
		},
		[]string{"origin", "state"},
	)

	// Restore attempts by origin and reconciled verdict.
	RestoreAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restore_attempts_total",
			Help: "Total number of restore attempts by origin and reconciliation verdict",
		},
		[]string{"origin", "accepted"},
	)

	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(PurchaseAttempts, RestoreAttempts, RepositoryCalls, RepositoryDuration)
}
