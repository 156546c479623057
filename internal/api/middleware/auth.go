package middleware

import (
	"net/http"
	"strings"

	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/platform/logger"
	"github.com/phrazzld/gate-api/internal/service/auth"
)

// unauthorizedMessage is the single message every authentication
// failure returns. Bad signature, expired token, malformed subject, and
// unknown principal must be indistinguishable from outside.
const unauthorizedMessage = "Invalid or missing credentials"

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	guard *auth.Guard
}

// NewAuthMiddleware creates a new AuthMiddleware with the given guard.
func NewAuthMiddleware(guard *auth.Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// Authenticate validates the Authorization header, resolves the
// principal, and stores it in the request context. Requests with a
// missing, malformed, invalid, or expired credential are rejected with
// 401 before any handler runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"unauthorized", unauthorizedMessage)
			return
		}

		principal, err := m.guard.Authenticate(r.Context(), token)
		if err != nil {
			// The cause stays in the logs; the response is identical
			// for every failure mode.
			logger.FromContext(r.Context()).Debug("authentication rejected",
				"error", err,
				"path", r.URL.Path)
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"unauthorized", unauthorizedMessage)
			return
		}

		ctx := shared.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Absence or any other shape reports false.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
