package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cattle-scoring/internal/domain/scoring"
)

type gradeKey struct {
	animalID         string
	characteristicID string
	scoredOn         string // YYYY-MM-DD
}

type GradeRepo struct {
	mu    sync.RWMutex
	byKey map[gradeKey]scoring.Grade

	animals *AnimalRepo
}

// NewGradeRepo recibe el repo de ejemplares para poder aplicar el resumen
// de score dentro del mismo SaveBatch (equivalente in-memory de la
// transacción de Postgres).
func NewGradeRepo(animalsRepo *AnimalRepo) *GradeRepo {
	return &GradeRepo{
		byKey:   make(map[gradeKey]scoring.Grade),
		animals: animalsRepo,
	}
}

func (r *GradeRepo) SaveBatch(ctx context.Context, animalID string, grades []scoring.Grade, finalScore float64, scoredOn time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Primero el resumen del ejemplar: si ya no existe, no se escribe
	// ningún grade. Un Delete concurrente queda serializado contra este
	// lock (su cascada DeleteByAnimal lo toma) y barre lo escrito acá.
	if err := r.animals.applyScore(animalID, finalScore, scoredOn); err != nil {
		return err
	}

	for _, g := range grades {
		key := gradeKey{
			animalID:         g.AnimalID,
			characteristicID: g.CharacteristicID,
			scoredOn:         g.ScoredOn.Format("2006-01-02"),
		}
		if prev, exists := r.byKey[key]; exists {
			// Upsert: conserva la identidad y el created_at de la fila original.
			g.ID = prev.ID
			g.CreatedAt = prev.CreatedAt
		}
		r.byKey[key] = g
	}
	return nil
}

func (r *GradeRepo) ListByAnimal(ctx context.Context, animalID string) ([]scoring.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Grade, 0)
	for _, g := range r.byKey {
		if g.AnimalID == animalID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScoredOn.Equal(out[j].ScoredOn) {
			return out[i].ScoredOn.After(out[j].ScoredOn)
		}
		return out[i].CharacteristicID < out[j].CharacteristicID
	})
	return out, nil
}

// DeleteByAnimal borra las calificaciones del ejemplar (cascada).
func (r *GradeRepo) DeleteByAnimal(animalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.byKey {
		if key.animalID == animalID {
			delete(r.byKey, key)
		}
	}
}
