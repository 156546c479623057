package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/domain"
	"github.com/phrazzld/gate-api/internal/platform/logger"
	"github.com/phrazzld/gate-api/internal/store"
)

// Guard authenticates bearer tokens and enforces per-resource
// ownership. It is the only authorization rule in the service: a
// principal may touch a resource iff it owns it.
type Guard struct {
	authority  TokenAuthority
	principals store.PrincipalStore
}

// NewGuard creates a Guard with the given token authority and
// principal lookup collaborator.
func NewGuard(authority TokenAuthority, principals store.PrincipalStore) *Guard {
	return &Guard{
		authority:  authority,
		principals: principals,
	}
}

// Authenticate verifies the token and resolves the principal it names.
// A bad token and a verified token for a principal that no longer
// exists surface as different sentinel errors for diagnostics, but the
// API layer maps both to one identical unauthorized response so the
// failure cause cannot be enumerated from outside.
func (g *Guard) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := g.authority.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	principal, err := g.principals.GetByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, store.ErrPrincipalNotFound) {
			logger.FromContext(ctx).Debug("verified token names unknown principal",
				"principal_id", claims.PrincipalID)
			return nil, ErrUnknownPrincipal
		}
		return nil, err
	}

	return principal, nil
}

// Authorize fails with ErrForbidden unless principal owns the
// resource. Pure equality check; no roles, no scopes, no retries.
func (g *Guard) Authorize(principal *domain.Principal, resourceOwnerID uuid.UUID) error {
	if principal == nil || principal.ID != resourceOwnerID {
		return ErrForbidden
	}
	return nil
}
