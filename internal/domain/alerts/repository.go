package alerts

import "context"

type Repository interface {
	Create(ctx context.Context, a Alert) error
	GetByID(ctx context.Context, id string) (Alert, error)

	// ListByAnimal devuelve las alertas del ejemplar, más recientes primero.
	ListByAnimal(ctx context.Context, animalID string) ([]Alert, error)

	MarkRead(ctx context.Context, id string) error
}
