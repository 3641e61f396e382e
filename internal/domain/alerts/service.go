package alerts

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

type CreateInput struct {
	Type    Type
	Message string
}

// Create registra una alerta generada externamente. Este sistema no
// detecta nada: el productor de la alerta decide tipo y mensaje.
func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (Alert, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return Alert{}, ErrAnimalNotFound
	}
	if !in.Type.Valid() {
		return Alert{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Message) == "" {
		return Alert{}, ErrInvalidInput
	}

	a := Alert{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Type:      in.Type,
		Message:   strings.TrimSpace(in.Message),
		Timestamp: s.now(),
		IsRead:    false,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Alert{}, err
	}
	return a, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Alert, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return nil, ErrAnimalNotFound
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

// MarkRead marca la alerta como leída (única mutación permitida).
func (s *Service) MarkRead(ctx context.Context, id string) (Alert, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Alert{}, ErrInvalidInput
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return Alert{}, err
	}
	return s.repo.GetByID(ctx, id)
}
