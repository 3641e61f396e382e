package sensors

import "time"

// Reading es una lectura puntual de sensores de un ejemplar.
// Solo se agrega, nunca se edita.
type Reading struct {
	ID       string
	AnimalID string

	Timestamp time.Time

	Temperature *float64 // °C
	Activity    *float64 // nivel de actividad o pasos
}
