package scoring

import (
	"context"
	"time"
)

type Repository interface {
	// SaveBatch persiste el lote completo en una sola transacción:
	// upsert de cada Grade por (animal, característica, fecha) y
	// actualización de score_total/last_score_date del ejemplar.
	// Todo o nada: si algo falla no queda ningún efecto parcial.
	SaveBatch(ctx context.Context, animalID string, grades []Grade, finalScore float64, scoredOn time.Time) error

	// ListByAnimal devuelve el historial de calificaciones, más recientes
	// primero.
	ListByAnimal(ctx context.Context, animalID string) ([]Grade, error)
}
