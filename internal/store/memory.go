package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/domain"
)

// MemoryPrincipalStore is an in-memory PrincipalStore used in tests and
// when the server runs without a database URL.
type MemoryPrincipalStore struct {
	mu         sync.RWMutex
	principals map[uuid.UUID]*domain.Principal
}

var _ PrincipalStore = (*MemoryPrincipalStore)(nil)

// NewMemoryPrincipalStore creates an empty in-memory store.
func NewMemoryPrincipalStore() *MemoryPrincipalStore {
	return &MemoryPrincipalStore{
		principals: make(map[uuid.UUID]*domain.Principal),
	}
}

// Put inserts or replaces a principal.
func (s *MemoryPrincipalStore) Put(p *domain.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[p.ID] = p
}

// GetByID implements PrincipalStore.
func (s *MemoryPrincipalStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.principals[id]
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	copied := *p
	return &copied, nil
}

// GetByEmail implements PrincipalStore.
func (s *MemoryPrincipalStore) GetByEmail(_ context.Context, email string) (*domain.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.principals {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrPrincipalNotFound
}
