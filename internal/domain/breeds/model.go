package breeds

import "time"

// Breed es la raza de referencia: rangos físicos ideales y colores de capa
// aceptados. Sobre cada raza se define una plantilla de calificación
// (ver internal/domain/templates).
type Breed struct {
	ID   string
	Name string // único, ej: "BROWN SWISS"

	// Rangos ideales opcionales (nil = no definido).
	WeightMin   *float64
	WeightMax   *float64
	IdealHeight *float64

	// Colores de capa aceptados.
	CoatColors []string

	CreatedAt time.Time
}
