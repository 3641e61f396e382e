package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cattle-scoring/internal/domain/animals"
)

type AnimalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal

	// Callbacks que espejan el ON DELETE CASCADE de Postgres: al borrar un
	// ejemplar se arrastran sus calificaciones, lecturas y alertas.
	onDelete []func(animalID string)
}

func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{
		byID: make(map[string]animals.Animal),
	}
}

// OnDelete registra callbacks de cascada para el borrado de ejemplares.
func (r *AnimalRepo) OnDelete(fns ...func(animalID string)) {
	r.onDelete = append(r.onDelete, fns...)
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *AnimalRepo) GetByTag(ctx context.Context, tag string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.Tag == tag {
			return a, nil
		}
	}
	return animals.Animal{}, ErrNotFound
}

func (r *AnimalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AnimalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.byID, id)
	fns := r.onDelete
	r.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
	return nil
}

func (r *AnimalRepo) ExistsByBreed(ctx context.Context, breedID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.BreedID == breedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *AnimalRepo) AverageScoreByBreed(ctx context.Context) ([]animals.BreedAverage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, a := range r.byID {
		if a.ScoreTotal == nil {
			continue
		}
		sums[a.BreedID] += *a.ScoreTotal
		counts[a.BreedID]++
	}

	out := make([]animals.BreedAverage, 0, len(sums))
	for breedID, sum := range sums {
		out = append(out, animals.BreedAverage{
			BreedID: breedID,
			Average: sum / float64(counts[breedID]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BreedID < out[j].BreedID })
	return out, nil
}

func (r *AnimalRepo) RecentlyScored(ctx context.Context, limit int) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.LastScoreDate != nil {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastScoreDate.After(*out[j].LastScoreDate) })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// applyScore escribe el resumen denormalizado del ejemplar. Lo invoca el
// repo de calificaciones dentro de SaveBatch.
func (r *AnimalRepo) applyScore(animalID string, score float64, scoredOn time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[animalID]
	if !ok {
		return ErrNotFound
	}
	a.ScoreTotal = &score
	a.LastScoreDate = &scoredOn
	a.UpdatedAt = time.Now()
	r.byID[animalID] = a
	return nil
}
