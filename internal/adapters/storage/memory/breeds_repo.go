package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cattle-scoring/internal/domain/breeds"
)

type BreedRepo struct {
	mu   sync.RWMutex
	byID map[string]breeds.Breed
}

func NewBreedRepo() *BreedRepo {
	return &BreedRepo{
		byID: make(map[string]breeds.Breed),
	}
}

func (r *BreedRepo) Create(ctx context.Context, b breeds.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("breed id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("breed already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *BreedRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return breeds.Breed{}, ErrNotFound
	}
	return b, nil
}

func (r *BreedRepo) GetByName(ctx context.Context, name string) (breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.byID {
		if b.Name == name {
			return b, nil
		}
	}
	return breeds.Breed{}, ErrNotFound
}

func (r *BreedRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breeds.Breed, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *BreedRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
