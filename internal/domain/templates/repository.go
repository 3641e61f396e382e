package templates

import "context"

type Repository interface {
	CreateCategory(ctx context.Context, c Category) error
	GetCategory(ctx context.Context, id string) (Category, error)
	ListCategoriesByBreed(ctx context.Context, breedID string) ([]Category, error)

	CreateCharacteristic(ctx context.Context, ch Characteristic) error
	GetCharacteristic(ctx context.Context, id string) (Characteristic, error)
	ListCharacteristicsByCategory(ctx context.Context, categoryID string) ([]Characteristic, error)

	// DeleteByBreed elimina las categorías de la raza y sus características.
	// Lo usa la resiembra de plantillas.
	DeleteByBreed(ctx context.Context, breedID string) error
}
