// Package metrics exposes the pipeline's operational counters via
// Prometheus. The /metrics endpoint is exempt from rate limiting by
// default so scrapes never consume a client's budget.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsAdmitted counts requests that passed admission control.
	RequestsAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gate_requests_admitted_total",
		Help: "Requests admitted by the rate limiter.",
	})

	// RateLimitRejections counts requests rejected with 429.
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gate_rate_limit_rejections_total",
		Help: "Requests rejected by the rate limiter.",
	})

	// TokensIssued counts bearer tokens issued by the login endpoint.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gate_tokens_issued_total",
		Help: "Bearer tokens issued.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
