package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cattle-scoring/internal/domain/alerts"
)

type AlertRepo struct {
	mu   sync.RWMutex
	byID map[string]alerts.Alert
}

func NewAlertRepo() *AlertRepo {
	return &AlertRepo{
		byID: make(map[string]alerts.Alert),
	}
}

func (r *AlertRepo) Create(ctx context.Context, a alerts.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("alert id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("alert already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (alerts.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return alerts.Alert{}, ErrNotFound
	}
	return a, nil
}

func (r *AlertRepo) ListByAnimal(ctx context.Context, animalID string) ([]alerts.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]alerts.Alert, 0)
	for _, a := range r.byID {
		if a.AnimalID == animalID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.IsRead = true
	r.byID[id] = a
	return nil
}

// DeleteByAnimal borra las alertas del ejemplar (cascada).
func (r *AlertRepo) DeleteByAnimal(animalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.byID {
		if a.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
}
