package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cattle-scoring/internal/domain/sensors"
)

type SensorRepo struct {
	mu   sync.RWMutex
	byID map[string]sensors.Reading
}

func NewSensorRepo() *SensorRepo {
	return &SensorRepo{
		byID: make(map[string]sensors.Reading),
	}
}

func (r *SensorRepo) Append(ctx context.Context, rd sensors.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rd.ID) == "" {
		return errors.New("reading id required")
	}
	if _, exists := r.byID[rd.ID]; exists {
		return errors.New("reading already exists")
	}
	r.byID[rd.ID] = rd
	return nil
}

func (r *SensorRepo) ListSince(ctx context.Context, animalID string, from time.Time) ([]sensors.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sensors.Reading, 0)
	for _, rd := range r.byID {
		if rd.AnimalID != animalID {
			continue
		}
		if rd.Timestamp.Before(from) {
			continue
		}
		out = append(out, rd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// DeleteByAnimal borra las lecturas del ejemplar (cascada).
func (r *SensorRepo) DeleteByAnimal(animalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rd := range r.byID {
		if rd.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
}
