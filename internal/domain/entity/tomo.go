package entity

import (
	"fmt"
	"time"
)

// Comentarios que registran las operaciones sobre tomos.
const (
	ComentarioTomoHabilitado   = "Tomo habilitado"
	ComentarioTomoInhabilitado = "Tomo inhabilitado"
)

// Tomo volumen físico de un crédito.
type Tomo struct {
	ID                string
	Numero            int
	Vigente           bool
	FechaModificacion time.Time
	Comentario        string
	CreditoID         string
	CreditoNumero     string
	CajaID            *string
	UsuarioID         *string
	Ubicacion         Ubicacion // vacía si el tomo no está en una caja
}

// Referencia devuelve "CREDITO-NUMERO", el código impreso en la etiqueta.
func (t *Tomo) Referencia() string {
	return fmt.Sprintf("%s-%d", t.CreditoNumero, t.Numero)
}

// EnCaja indica si el tomo está ingresado en una caja.
func (t *Tomo) EnCaja() bool { return t.CajaID != nil }
