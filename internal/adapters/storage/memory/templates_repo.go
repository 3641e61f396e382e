package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cattle-scoring/internal/domain/templates"
)

type TemplateRepo struct {
	mu              sync.RWMutex
	categories      map[string]templates.Category
	characteristics map[string]templates.Characteristic
}

func NewTemplateRepo() *TemplateRepo {
	return &TemplateRepo{
		categories:      make(map[string]templates.Category),
		characteristics: make(map[string]templates.Characteristic),
	}
}

func (r *TemplateRepo) CreateCategory(ctx context.Context, c templates.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("category id required")
	}
	if _, exists := r.categories[c.ID]; exists {
		return errors.New("category already exists")
	}
	r.categories[c.ID] = c
	return nil
}

func (r *TemplateRepo) GetCategory(ctx context.Context, id string) (templates.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return templates.Category{}, ErrNotFound
	}
	return c, nil
}

func (r *TemplateRepo) ListCategoriesByBreed(ctx context.Context, breedID string) ([]templates.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]templates.Category, 0)
	for _, c := range r.categories {
		if c.BreedID == breedID {
			out = append(out, c)
		}
	}

	// Ponderación descendente, nombre como desempate (orden estable de plantilla).
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *TemplateRepo) CreateCharacteristic(ctx context.Context, ch templates.Characteristic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ch.ID) == "" {
		return errors.New("characteristic id required")
	}
	if _, exists := r.characteristics[ch.ID]; exists {
		return errors.New("characteristic already exists")
	}
	if _, ok := r.categories[ch.CategoryID]; !ok {
		return ErrNotFound
	}
	r.characteristics[ch.ID] = ch
	return nil
}

func (r *TemplateRepo) GetCharacteristic(ctx context.Context, id string) (templates.Characteristic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.characteristics[id]
	if !ok {
		return templates.Characteristic{}, ErrNotFound
	}
	return ch, nil
}

func (r *TemplateRepo) ListCharacteristicsByCategory(ctx context.Context, categoryID string) ([]templates.Characteristic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]templates.Characteristic, 0)
	for _, ch := range r.characteristics {
		if ch.CategoryID == categoryID {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TemplateRepo) DeleteByBreed(ctx context.Context, breedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.categories {
		if c.BreedID != breedID {
			continue
		}
		for chID, ch := range r.characteristics {
			if ch.CategoryID == id {
				delete(r.characteristics, chID)
			}
		}
		delete(r.categories, id)
	}
	return nil
}
