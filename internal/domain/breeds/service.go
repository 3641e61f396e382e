package breeds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateName = errors.New("breed name already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	WeightMin   *float64
	WeightMax   *float64
	IdealHeight *float64
	CoatColors  []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breed, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Breed{}, ErrInvalidInput
	}
	if in.WeightMin != nil && in.WeightMax != nil && *in.WeightMin > *in.WeightMax {
		return Breed{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Breed{}, ErrDuplicateName
	}

	colors := make([]string, 0, len(in.CoatColors))
	for _, c := range in.CoatColors {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}

	b := Breed{
		ID:          uuid.NewString(),
		Name:        name,
		WeightMin:   in.WeightMin,
		WeightMax:   in.WeightMax,
		IdealHeight: in.IdealHeight,
		CoatColors:  colors,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Breed, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Breed, error) {
	return s.repo.GetByName(ctx, strings.TrimSpace(name))
}

func (s *Service) List(ctx context.Context) ([]Breed, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
