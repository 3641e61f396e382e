package breeds

import "context"

type Repository interface {
	Create(ctx context.Context, b Breed) error
	GetByID(ctx context.Context, id string) (Breed, error)
	GetByName(ctx context.Context, name string) (Breed, error)
	List(ctx context.Context) ([]Breed, error)
	Delete(ctx context.Context, id string) error
}
