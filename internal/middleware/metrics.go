package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_social_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReconciliationFailures counts secondary-effect failures that left two
	// aggregates inconsistent (comment counter, appreciation post, cascade
	// delete, mention emission). Each is also logged with aggregate ids.
	ReconciliationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_social_reconciliation_failures_total",
		Help: "Total number of secondary-effect failures requiring manual reconciliation",
	}, []string{"operation"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
