package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	sourceCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transit",
			Subsystem: "resolver",
			Name:      "source_calls_total",
			Help:      "Calls made to registered collaborators, by role, source and outcome kind.",
		},
		[]string{"role", "source", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "transit",
			Subsystem: "resolver",
			Name:      "operation_duration_seconds",
			Help:      "Duration of resolver operations.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	reconciledStops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transit",
			Subsystem: "reconcile",
			Name:      "stops_total",
			Help:      "Stops processed by batch reconciliation, by result.",
		},
		[]string{"result"},
	)
)

// ObserveSourceCall counts one collaborator call.
func ObserveSourceCall(role, source, outcome string) {
	sourceCalls.WithLabelValues(role, source, outcome).Inc()
}

// ObserveOperation records the duration of a resolver operation.
func ObserveOperation(operation, outcome string, started time.Time) {
	operationDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
}

// ObserveReconciled counts one stop processed by reconciliation.
func ObserveReconciled(result string) {
	reconciledStops.WithLabelValues(result).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
