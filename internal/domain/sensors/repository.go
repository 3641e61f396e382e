package sensors

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, rd Reading) error

	// ListSince devuelve las lecturas del ejemplar con timestamp >= from,
	// ascendentes por tiempo.
	ListSince(ctx context.Context, animalID string, from time.Time) ([]Reading, error)
}
