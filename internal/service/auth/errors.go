package auth

import "errors"

// Common authentication and authorization errors.
//
// The token failure causes (invalid signature, expiry, malformed
// subject) and the unknown-principal case are distinguishable here for
// diagnostics, but the API layer maps all of them to one identical
// unauthorized response so a caller cannot probe which check failed.
var (
	// ErrInvalidToken indicates the token format is invalid or the signature doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMalformedSubject indicates the token verified but its subject
	// claim is not a principal identifier.
	ErrMalformedSubject = errors.New("token subject is not a valid principal id")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrUnknownPrincipal indicates a verified token referenced a
	// principal that no longer exists.
	ErrUnknownPrincipal = errors.New("principal does not exist")

	// ErrForbidden indicates an authenticated principal attempted to
	// access a resource it does not own.
	ErrForbidden = errors.New("principal does not own this resource")
)
