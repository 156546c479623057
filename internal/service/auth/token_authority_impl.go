package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/config"
	"github.com/phrazzld/gate-api/internal/platform/logger"
)

// hmacTokenAuthority implements TokenAuthority using HMAC-SHA256 signing.
type hmacTokenAuthority struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // injectable for testing
}

var _ TokenAuthority = (*hmacTokenAuthority)(nil)

// NewTokenAuthority creates a TokenAuthority from the auth configuration.
// The signing algorithm is fixed to HS256; any other configured value is
// rejected here rather than silently ignored.
func NewTokenAuthority(cfg config.AuthConfig) (TokenAuthority, error) {
	if len(cfg.SigningSecret) < 32 {
		return nil, fmt.Errorf("signing secret must be at least 32 characters")
	}
	if cfg.SigningAlgorithm != jwt.SigningMethodHS256.Name {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.SigningAlgorithm)
	}

	return &hmacTokenAuthority{
		signingKey: []byte(cfg.SigningSecret),
		lifetime:   time.Duration(cfg.TokenLifetimeHours) * time.Hour,
		timeFunc:   time.Now,
	}, nil
}

// IssueToken creates a signed bearer token with the principal id as
// subject, issued now and expiring after the configured lifetime.
func (a *hmacTokenAuthority) IssueToken(ctx context.Context, principalID uuid.UUID) (string, error) {
	log := logger.FromContext(ctx)
	now := a.timeFunc()

	claims := jwt.RegisteredClaims{
		Subject:   principalID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		log.Error("failed to sign bearer token",
			"error", err,
			"principal_id", principalID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signed, nil
}

// VerifyToken checks signature and expiry against the injected clock
// and parses the subject back into a principal id. Verification is
// pure: the same token, secret, and clock reading always yield the
// same result. Clock skew is not compensated.
func (a *hmacTokenAuthority) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := a.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token verification failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token verification failed: malformed token", "error", err)
			return nil, ErrInvalidToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token verification failed: invalid signature", "error", err)
			return nil, ErrInvalidToken
		default:
			log.Debug("token verification failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		log.Debug("token verification failed: invalid claims")
		return nil, ErrInvalidToken
	}

	principalID, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Debug("token verification failed: malformed subject",
			"subject", claims.Subject)
		return nil, ErrMalformedSubject
	}

	verified := &Claims{
		PrincipalID: principalID,
		Subject:     claims.Subject,
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time
	}
	return verified, nil
}
