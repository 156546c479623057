package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/domain"
	"github.com/phrazzld/gate-api/internal/store"
)

// PrincipalStore implements store.PrincipalStore using a PostgreSQL
// database as the storage backend.
type PrincipalStore struct {
	db *sql.DB
}

// NewPrincipalStore creates a new PostgreSQL implementation of the
// PrincipalStore interface. It accepts a database connection that
// should be initialized and managed by the caller.
func NewPrincipalStore(db *sql.DB) *PrincipalStore {
	return &PrincipalStore{db: db}
}

// Ensure PrincipalStore implements store.PrincipalStore
var _ store.PrincipalStore = (*PrincipalStore)(nil)

// GetByID retrieves a principal by its unique ID.
func (s *PrincipalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	var p domain.Principal
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, created_at
		   FROM principals WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email, &p.HashedPassword, &p.CreatedAt)
	if err != nil {
		return nil, MapError(err)
	}
	return &p, nil
}

// GetByEmail retrieves a principal by email address.
func (s *PrincipalStore) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	var p domain.Principal
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, created_at
		   FROM principals WHERE email = $1`, email,
	).Scan(&p.ID, &p.Email, &p.HashedPassword, &p.CreatedAt)
	if err != nil {
		return nil, MapError(err)
	}
	return &p, nil
}

// Create inserts a new principal. Returns store.ErrDuplicateEmail when
// the email is already registered.
func (s *PrincipalStore) Create(ctx context.Context, p *domain.Principal) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO principals (id, email, hashed_password, created_at)
		 VALUES ($1, $2, $3, $4)`,
		p.ID, p.Email, p.HashedPassword, p.CreatedAt,
	)
	return MapError(err)
}
