// Package store defines the persistence interfaces the pipeline
// consumes. Implementations live under internal/platform; the core
// never talks to a database directly.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/domain"
)

var (
	// ErrPrincipalNotFound is returned when a requested principal does
	// not exist in the store.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrDuplicateEmail is returned when creating a principal whose
	// email address is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
)

// PrincipalStore defines the lookup collaborator the access guard and
// login handler depend on.
type PrincipalStore interface {
	// GetByID retrieves a principal by its unique ID.
	// Returns ErrPrincipalNotFound if the principal does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)

	// GetByEmail retrieves a principal by email address.
	// Returns ErrPrincipalNotFound if the principal does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
}
