package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByTag(ctx context.Context, tag string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)

	// Delete elimina el ejemplar y arrastra sus calificaciones, lecturas
	// de sensores y alertas.
	Delete(ctx context.Context, id string) error

	ExistsByBreed(ctx context.Context, breedID string) (bool, error)

	// Consultas del dashboard.
	AverageScoreByBreed(ctx context.Context) ([]BreedAverage, error)
	RecentlyScored(ctx context.Context, limit int) ([]Animal, error)
}
