package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	statementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jpql_statement_duration_seconds",
			Help:    "Duration of executed jpql statements",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)
)

// MustRegister will register all metrics on the given registry.
func MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(statementDuration)
}

func observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	statementDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}
