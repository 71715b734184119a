package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackboard_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// EntityOperations counts store operations by entity kind and outcome.
	EntityOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackboard_entity_operations_total",
			Help: "Total number of entity create/update/delete operations",
		},
		[]string{"kind", "operation", "result"},
	)

	// MembershipChecks counts workspace membership checks by outcome
	// (allowed|denied|error).
	MembershipChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackboard_membership_checks_total",
			Help: "Total number of workspace membership checks",
		},
		[]string{"outcome"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stackboard_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
