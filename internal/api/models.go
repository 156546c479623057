package api

import "github.com/google/uuid"

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	PrincipalID uuid.UUID `json:"principal_id"`
	Token       string    `json:"token"`
}

// PrincipalResponse is the public view of a principal.
type PrincipalResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
