package sensors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cattle-scoring/internal/domain/animals"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrAnimalNotFound = errors.New("animal not found")
)

// DefaultWindow es la ventana de lectura por defecto (últimas 24 horas).
const DefaultWindow = 24 * time.Hour

// MaxWindow acota la ventana consultable a una semana.
const MaxWindow = 7 * 24 * time.Hour

type Service struct {
	repo    Repository
	animals *animals.Service
	now     func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		now:     time.Now,
	}
}

type AppendInput struct {
	Timestamp   *time.Time // nil = ahora
	Temperature *float64
	Activity    *float64
}

// Append registra una lectura. No hay más validación que la existencia del
// ejemplar y la corrección de tipos: el log de sensores es un append puro.
func (s *Service) Append(ctx context.Context, animalID string, in AppendInput) (Reading, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return Reading{}, ErrAnimalNotFound
	}

	ts := s.now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}

	rd := Reading{
		ID:          uuid.NewString(),
		AnimalID:    animalID,
		Timestamp:   ts,
		Temperature: in.Temperature,
		Activity:    in.Activity,
	}

	if err := s.repo.Append(ctx, rd); err != nil {
		return Reading{}, err
	}
	return rd, nil
}

// Window devuelve las lecturas de la ventana móvil indicada (por defecto
// 24h), ascendentes por tiempo. Una lectura de hace 25h queda fuera; una
// de hace 23h entra.
func (s *Service) Window(ctx context.Context, animalID string, window time.Duration) ([]Reading, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return nil, ErrAnimalNotFound
	}

	if window <= 0 {
		window = DefaultWindow
	}
	if window > MaxWindow {
		window = MaxWindow
	}

	return s.repo.ListSince(ctx, animalID, s.now().Add(-window))
}
