package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AIRequests counts completion-provider calls by feature and outcome (ok|error).
	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkling", Name: "ai_requests_total", Help: "Number of AI operations by feature and outcome."},
		[]string{"feature", "outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkling", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkling", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AIRequests)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
