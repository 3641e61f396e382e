package templates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type CreateCategoryInput struct {
	BreedID    string
	Name       string
	Weight     int
	IdealTotal int
}

func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (Category, error) {
	if strings.TrimSpace(in.BreedID) == "" {
		return Category{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Category{}, ErrInvalidInput
	}
	if in.Weight < 1 || in.Weight > 100 {
		return Category{}, ErrInvalidInput
	}
	if in.IdealTotal < 0 {
		return Category{}, ErrInvalidInput
	}

	c := Category{
		ID:         uuid.NewString(),
		BreedID:    strings.TrimSpace(in.BreedID),
		Name:       strings.TrimSpace(in.Name),
		Weight:     in.Weight,
		IdealTotal: in.IdealTotal,
		CreatedAt:  s.now(),
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

type CreateCharacteristicInput struct {
	CategoryID string
	Name       string
	IdealScore int
	RangeMin   float64
	RangeMax   float64
}

func (s *Service) CreateCharacteristic(ctx context.Context, in CreateCharacteristicInput) (Characteristic, error) {
	if strings.TrimSpace(in.CategoryID) == "" {
		return Characteristic{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Characteristic{}, ErrInvalidInput
	}
	// Un puntaje ideal no positivo haría dividir por cero al calificar.
	// Se rechaza acá, en la escritura de la plantilla.
	if in.IdealScore <= 0 {
		return Characteristic{}, ErrInvalidInput
	}
	if in.RangeMin > in.RangeMax {
		return Characteristic{}, ErrInvalidInput
	}

	// La categoría debe existir: la característica nace ligada a ella.
	if _, err := s.repo.GetCategory(ctx, strings.TrimSpace(in.CategoryID)); err != nil {
		return Characteristic{}, err
	}

	ch := Characteristic{
		ID:         uuid.NewString(),
		CategoryID: strings.TrimSpace(in.CategoryID),
		Name:       strings.TrimSpace(in.Name),
		IdealScore: in.IdealScore,
		RangeMin:   in.RangeMin,
		RangeMax:   in.RangeMax,
	}

	if err := s.repo.CreateCharacteristic(ctx, ch); err != nil {
		return Characteristic{}, err
	}
	return ch, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// CharacteristicWithCategory resuelve una característica junto con su
// categoría (la ponderación vive en la categoría). Es la consulta que usa
// el motor de calificación.
func (s *Service) CharacteristicWithCategory(ctx context.Context, characteristicID string) (Characteristic, Category, error) {
	ch, err := s.repo.GetCharacteristic(ctx, strings.TrimSpace(characteristicID))
	if err != nil {
		return Characteristic{}, Category{}, err
	}
	cat, err := s.repo.GetCategory(ctx, ch.CategoryID)
	if err != nil {
		return Characteristic{}, Category{}, err
	}
	return ch, cat, nil
}

// CategoryWithCharacteristics agrupa una categoría con sus características.
type CategoryWithCharacteristics struct {
	Category        Category
	Characteristics []Characteristic
}

// TemplateForBreed devuelve la plantilla completa de una raza: sus
// categorías con las características anidadas.
func (s *Service) TemplateForBreed(ctx context.Context, breedID string) ([]CategoryWithCharacteristics, error) {
	cats, err := s.repo.ListCategoriesByBreed(ctx, strings.TrimSpace(breedID))
	if err != nil {
		return nil, err
	}

	out := make([]CategoryWithCharacteristics, 0, len(cats))
	for _, cat := range cats {
		chars, err := s.repo.ListCharacteristicsByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryWithCharacteristics{
			Category:        cat,
			Characteristics: chars,
		})
	}
	return out, nil
}

// ReplaceForBreed borra la plantilla actual de la raza y carga la nueva.
// Lo usa la herramienta de siembra.
func (s *Service) ReplaceForBreed(ctx context.Context, breedID string, categories []CreateCategoryInput, characteristics map[string][]CreateCharacteristicInput) error {
	breedID = strings.TrimSpace(breedID)
	if breedID == "" {
		return ErrInvalidInput
	}

	if err := s.repo.DeleteByBreed(ctx, breedID); err != nil {
		return err
	}

	for _, catIn := range categories {
		catIn.BreedID = breedID
		cat, err := s.CreateCategory(ctx, catIn)
		if err != nil {
			return err
		}
		for _, chIn := range characteristics[catIn.Name] {
			chIn.CategoryID = cat.ID
			if _, err := s.CreateCharacteristic(ctx, chIn); err != nil {
				return err
			}
		}
	}
	return nil
}
