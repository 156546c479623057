// Package shared holds the request-scoped context helpers and response
// envelope used across handlers and middleware.
package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/domain"
)

// ContextKey is the key type for request-scoped context values.
type ContextKey string

const (
	// PrincipalContextKey is the context key for the authenticated principal.
	PrincipalContextKey ContextKey = "principal"

	// CorrelationIDKey is the key for the correlation ID in the request context.
	CorrelationIDKey ContextKey = "correlationID"
)

// WithCorrelationID stores a correlation ID in the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// GetCorrelationID retrieves the correlation ID from the context.
// If no correlation ID exists, it returns an empty string.
func GetCorrelationID(ctx context.Context) string {
	id, ok := ctx.Value(CorrelationIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// NewCorrelationID generates a fresh correlation ID for a request that
// arrived without one.
func NewCorrelationID() string {
	return uuid.NewString()
}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, p)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns the principal and a boolean indicating if it was found.
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(PrincipalContextKey).(*domain.Principal)
	return p, ok
}
