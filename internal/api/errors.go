package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/gate-api/internal/service/auth"
)

// Error kinds used in response envelopes.
const (
	KindUnauthorized  = "unauthorized"
	KindForbidden     = "forbidden"
	KindRateLimited   = "rate_limit_exceeded"
	KindInternalError = "internal_error"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based
// on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// All authentication failure causes collapse to one status.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMalformedSubject),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrUnknownPrincipal):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for
// the error. Authentication failures deliberately share one message so
// the cause cannot be probed from outside.
func GetSafeErrorMessage(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized:
		return "Invalid or missing credentials"
	case http.StatusForbidden:
		return "You do not have access to this resource"
	default:
		return "An unexpected error occurred"
	}
}

// ErrorKind returns the machine-readable error kind for the error.
func ErrorKind(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	default:
		return KindInternalError
	}
}
