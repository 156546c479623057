package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenAuthority defines operations for issuing and verifying the
// stateless bearer tokens the pipeline authenticates with.
type TokenAuthority interface {
	// IssueToken creates a signed, time-bound bearer token for the
	// given principal. Returns the encoded token string or an error if
	// signing fails.
	IssueToken(ctx context.Context, principalID uuid.UUID) (string, error)

	// VerifyToken checks signature and expiry and returns the claims
	// embedded in the token. Fails with ErrExpiredToken,
	// ErrInvalidToken, or ErrMalformedSubject; callers must treat the
	// three identically toward the outside world.
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// Claims is the verified content of a bearer token.
type Claims struct {
	// PrincipalID is the identity the token was issued for.
	PrincipalID uuid.UUID

	// Standard registered claims, kept for diagnostics.
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
