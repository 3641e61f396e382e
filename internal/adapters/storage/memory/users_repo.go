package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"cattle-scoring/internal/domain/users"
)

var (
	ErrNotFound = errors.New("not found")
)

type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID: make(map[string]users.User),
	}
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, ErrNotFound
}
