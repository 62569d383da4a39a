package notificacion

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// Mensaje contenido de un correo antes de renderizarlo.
type Mensaje struct {
	Asunto     string
	Titulo     string
	Texto      string
	Tomos      []LineaTomo
	Comentario string // se muestra preformateado
	Enlace     string
}

// LineaTomo fila de la tabla de tomos del correo.
type LineaTomo struct {
	Referencia string
	Ubicacion  string
}

// Renderer convierte un Mensaje en HTML.
type Renderer interface {
	Render(m Mensaje) (string, error)
}

// Sender entrega un correo al servidor SMTP.
type Sender interface {
	Send(ctx context.Context, c *entity.Correo) error
}
