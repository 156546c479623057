package middleware

import (
	"net/http"
	"strconv"

	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/platform/logger"
	"github.com/phrazzld/gate-api/internal/platform/metrics"
	"github.com/phrazzld/gate-api/internal/ratelimit"
)

// retryAfterSeconds is the wait the rejection payload advertises; it
// matches the one-minute window the sustained rate is expressed in.
const retryAfterSeconds = 60

// RateLimit enforces per-client admission control. Exempt paths
// (health, readiness, metrics probes) bypass the limiter entirely; all
// other requests spend one token from the caller's bucket. A rejected
// request short-circuits with 429 before any downstream handler runs.
type RateLimit struct {
	limiter *ratelimit.Limiter
	exempt  map[string]struct{}
}

// NewRateLimit creates the middleware around an existing limiter.
func NewRateLimit(limiter *ratelimit.Limiter, exemptPaths []string) *RateLimit {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}
	return &RateLimit{limiter: limiter, exempt: exempt}
}

// Handler wraps next with the admission check.
func (m *RateLimit) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		identity := ratelimit.ClientIdentity(r)
		outcome := m.limiter.Admit(identity)

		limit := m.limiter.Limit()
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(outcome.Remaining))

		if !outcome.Allowed {
			metrics.RateLimitRejections.Inc()
			logger.FromContext(r.Context()).Warn("rate limit exceeded",
				"client", identity,
				"path", r.URL.Path,
				"limit", limit)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			shared.RespondWithJSON(w, r, http.StatusTooManyRequests, shared.ErrorResponse{
				Error:         "rate_limit_exceeded",
				Message:       "Rate limit of " + strconv.Itoa(limit) + " requests per minute exceeded",
				RetryAfter:    retryAfterSeconds,
				CorrelationID: shared.GetCorrelationID(r.Context()),
			})
			return
		}

		metrics.RequestsAdmitted.Inc()
		next.ServeHTTP(w, r)
	})
}
