package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cattle-scoring/internal/domain/breeds"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateTag = errors.New("tag already registered")
	ErrUnknownBreed = errors.New("unknown breed")
)

type Service struct {
	repo   Repository
	breeds *breeds.Service
	now    func() time.Time
}

func NewService(repo Repository, breedsSvc *breeds.Service) *Service {
	return &Service{
		repo:   repo,
		breeds: breedsSvc,
		now:    time.Now,
	}
}

type CreateInput struct {
	Tag       string
	Name      string
	BreedID   string
	BirthDate time.Time
	Weight    *float64
	Height    *float64
	PhotoURL  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	tag := strings.TrimSpace(in.Tag)
	if tag == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.BirthDate.IsZero() {
		return Animal{}, ErrInvalidInput
	}

	if _, err := s.breeds.GetByID(ctx, strings.TrimSpace(in.BreedID)); err != nil {
		return Animal{}, ErrUnknownBreed
	}

	if _, err := s.repo.GetByTag(ctx, tag); err == nil {
		return Animal{}, ErrDuplicateTag
	}

	now := s.now()
	a := Animal{
		ID:        uuid.NewString(),
		Tag:       tag,
		Name:      strings.TrimSpace(in.Name),
		BreedID:   strings.TrimSpace(in.BreedID),
		BirthDate: in.BirthDate,
		Weight:    in.Weight,
		Height:    in.Height,
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByTag(ctx context.Context, tag string) (Animal, error) {
	return s.repo.GetByTag(ctx, strings.TrimSpace(tag))
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// ExistsByBreed expone si la raza tiene ejemplares. Lo usa el handler de
// razas para bloquear el borrado (interfaz local allá, para evitar ciclos).
func (s *Service) ExistsByBreed(ctx context.Context, breedID string) (bool, error) {
	return s.repo.ExistsByBreed(ctx, breedID)
}

func (s *Service) AverageScoreByBreed(ctx context.Context) ([]BreedAverage, error) {
	return s.repo.AverageScoreByBreed(ctx)
}

func (s *Service) RecentlyScored(ctx context.Context, limit int) ([]Animal, error) {
	return s.repo.RecentlyScored(ctx, limit)
}
