package entity

import "time"

// Estados de un correo en el outbox.
const (
	CorreoPendiente  = "pendiente"
	CorreoProcesando = "procesando"
	CorreoEnviado    = "enviado"
	CorreoFallido    = "fallido"
)

// Correo mensaje pendiente de envío, persistido junto con la operación que lo origina.
type Correo struct {
	ID            string
	Asunto        string
	Remitente     string
	Destinatarios []string
	HTML          string
	Estado        string
	Intentos      int
	UltimoError   string
	CreatedAt     time.Time
	EnviadoAt     *time.Time
}
