package animals

import "time"

// Animal es un ejemplar individual del hato, identificado por el arete/RFID.
type Animal struct {
	ID      string
	Tag     string // ID del arete o RFID, único
	Name    string // opcional
	BreedID string

	BirthDate time.Time

	// Estado físico actual, opcional.
	Weight *float64
	Height *float64

	PhotoURL string

	// Resumen denormalizado de calificación. Lo muta exclusivamente el
	// motor de calificación (recalculado en cada envío de puntajes).
	// Es una vista materializada: si la plantilla cambia después, los
	// valores históricos no se recalculan.
	ScoreTotal    *float64
	LastScoreDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BreedAverage es el promedio de ScoreTotal de los ejemplares calificados
// de una raza.
type BreedAverage struct {
	BreedID string
	Average float64
}
