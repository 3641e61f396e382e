package templates

import "time"

// Category es un grupo ponderado de características dentro de la plantilla
// de calificación de una raza. La convención (no forzada por el sistema) es
// que las ponderaciones de una raza sumen 100.
type Category struct {
	ID      string
	BreedID string // obligatorio: la categoría nace ligada a su raza
	Name    string
	Weight  int // porcentaje del total, ej: 40 para 40%

	// Suma ideal de puntajes de la categoría. Hoy no participa en la
	// agregación; se conserva como dato de la plantilla.
	IdealTotal int

	CreatedAt time.Time
}

// Characteristic es un rasgo calificable individual.
type Characteristic struct {
	ID         string
	CategoryID string
	Name       string

	// IdealScore es el puntaje máximo alcanzable del rasgo. Siempre > 0:
	// se valida al crear para que la agregación nunca divida por cero.
	IdealScore int

	// Rango aceptado, solo como guía de captura/visualización.
	RangeMin float64
	RangeMax float64
}
