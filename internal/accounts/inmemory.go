package accounts

import (
	"context"
	"sync"

	"github.com/SidddhantJain/QuietQuill/internal/common"
)

// InMemoryRepository is a map-backed Repository used in tests and anywhere a
// database file is unwanted.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]*Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, byName: make(map[string]*Account)}
}

func (r *InMemoryRepository) Create(_ context.Context, a *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[a.Username]; ok {
		return common.ErrAlreadyExists
	}
	a.ID = r.nextID
	r.nextID++
	cp := *a
	r.byName[a.Username] = &cp
	return nil
}

func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byName[username]
	if !ok {
		return nil, common.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryRepository) UpdateCredentials(_ context.Context, username, passwordHash, salt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byName[username]
	if !ok {
		return common.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	a.Salt = salt
	return nil
}
