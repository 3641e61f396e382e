package alerts

import "time"

// Type clasifica la alerta. La taxonomía viene del dominio ganadero;
// la detección ocurre fuera de este sistema, acá solo se registra.
type Type string

const (
	TypeFever      Type = "FIEBRE"      // fiebre alta
	TypeEstrus     Type = "CELO"        // posible celo
	TypeInactivity Type = "INACTIVIDAD" // inactividad anormal
)

// Valid reporta si el tipo pertenece a la taxonomía declarada.
func (t Type) Valid() bool {
	switch t {
	case TypeFever, TypeEstrus, TypeInactivity:
		return true
	}
	return false
}

// Alert es un aviso registrado para un ejemplar. Solo muta su flag de
// leído; el resto es append-only.
type Alert struct {
	ID       string
	AnimalID string

	Type    Type
	Message string

	Timestamp time.Time
	IsRead    bool
}
