// Package domain holds the entities the pipeline resolves and guards.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an authenticated identity. The pipeline only ever needs
// its identifier (for the ownership check) and its password hash (for
// the login handler); everything else about a user lives outside this
// service.
type Principal struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // never expose the hash
	CreatedAt      time.Time `json:"created_at"`
}
