package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/templates"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrAnimalNotFound         = errors.New("animal not found")
	ErrCharacteristicNotFound = errors.New("characteristic not found")
)

type Service struct {
	repo      Repository
	animals   *animals.Service
	templates *templates.Service
	now       func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service, templatesSvc *templates.Service) *Service {
	return &Service{
		repo:      repo,
		animals:   animalsSvc,
		templates: templatesSvc,
		now:       time.Now,
	}
}

// ScoreItem es un par (característica, puntuación obtenida) del lote.
type ScoreItem struct {
	CharacteristicID string
	Score            float64
}

// Submit califica un ejemplar con un lote de puntuaciones y recalcula su
// score agregado 0-100.
//
// Cada característica aporta su fracción de logro (obtenido/ideal)
// multiplicada por la ponderación de su categoría; el denominador es la
// suma de las ponderaciones enviadas, no el total de la plantilla: un lote
// parcial reescala el máximo alcanzable en vez de castigar lo omitido.
//
// La operación es todo-o-nada: cualquier característica desconocida aborta
// el lote sin escribir nada, y la persistencia (upsert de Grades + update
// del ejemplar) ocurre en una única transacción del repositorio.
// Reenviar el mismo lote el mismo día es idempotente: sobreescribe las
// mismas filas y produce el mismo score.
func (s *Service) Submit(ctx context.Context, animalID, evaluatorID string, items []ScoreItem) (float64, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return 0, ErrAnimalNotFound
	}

	animal, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return 0, ErrAnimalNotFound
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var weightedSum, weightDenom float64
	grades := make([]Grade, 0, len(items))

	for _, item := range items {
		ch, cat, err := s.templates.CharacteristicWithCategory(ctx, item.CharacteristicID)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrCharacteristicNotFound, item.CharacteristicID)
		}
		// La creación rechaza ideales no positivos; si una fila vieja
		// quedó mal configurada, se rechaza acá en vez de dividir por cero.
		if ch.IdealScore <= 0 {
			return 0, fmt.Errorf("%w: characteristic %s has non-positive ideal score", ErrInvalidInput, ch.ID)
		}

		weightedSum += item.Score / float64(ch.IdealScore) * float64(cat.Weight)
		weightDenom += float64(cat.Weight)

		grades = append(grades, Grade{
			ID:               uuid.NewString(),
			AnimalID:         animal.ID,
			CharacteristicID: ch.ID,
			Score:            item.Score,
			ScoredOn:         today,
			EvaluatorID:      evaluatorID,
			CreatedAt:        now,
		})
	}

	finalScore := 0.0
	if weightDenom > 0 {
		finalScore = weightedSum / weightDenom * 100
	}

	if err := s.repo.SaveBatch(ctx, animal.ID, grades, finalScore, today); err != nil {
		return 0, err
	}
	return finalScore, nil
}

// ListByAnimal devuelve el historial de calificaciones del ejemplar.
func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Grade, error) {
	if _, err := s.animals.GetByID(ctx, strings.TrimSpace(animalID)); err != nil {
		return nil, ErrAnimalNotFound
	}
	return s.repo.ListByAnimal(ctx, strings.TrimSpace(animalID))
}
