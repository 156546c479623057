package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/platform/logger"
	"github.com/phrazzld/gate-api/internal/redact"
)

// Recover is the outermost stage: it converts a panic escaping the rest
// of the chain into a 500 response. The panic value and stack trace go
// to the log; the response detail depends on the environment:
// development responses include the redacted panic message, production
// responses a fixed generic message.
//
// Placed outside Correlation so that stage can observe the failure and
// re-raise it before the response is written here.
func Recover(env string) func(http.Handler) http.Handler {
	development := env == "development"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				detail := fmt.Sprintf("%v", p)
				logger.FromContext(r.Context()).Error("unhandled fault",
					"panic", redact.String(detail),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()))

				message := "An unexpected error occurred"
				if development {
					message = redact.String(detail)
				}
				// The correlation stage runs inside this one, so its
				// context is gone by the time the panic lands here;
				// the header it already stamped still has the id.
				shared.RespondWithJSON(w, r, http.StatusInternalServerError, shared.ErrorResponse{
					Error:         "internal_error",
					Message:       message,
					CorrelationID: w.Header().Get(CorrelationHeader),
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
