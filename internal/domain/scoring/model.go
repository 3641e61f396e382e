package scoring

import "time"

// Grade es una calificación individual: un evaluador, un ejemplar, una
// característica, una fecha. Existe a lo sumo una por
// (ejemplar, característica, fecha); reenviar el mismo día sobreescribe
// puntaje y evaluador sin duplicar la fila.
type Grade struct {
	ID               string
	AnimalID         string
	CharacteristicID string

	Score float64 // puntuación obtenida

	// ScoredOn es la fecha calendario (local del servidor) del envío,
	// truncada a medianoche. No la elige el cliente.
	ScoredOn time.Time

	EvaluatorID string
	CreatedAt   time.Time
}
