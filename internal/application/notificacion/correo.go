package notificacion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// Composer arma correos listos para encolar en el outbox.
type Composer struct {
	renderer  Renderer
	remitente string
}

// NewComposer construye el compositor con el remitente configurado (MAIL_FROM).
func NewComposer(renderer Renderer, remitente string) *Composer {
	return &Composer{renderer: renderer, remitente: remitente}
}

// Componer renderiza el mensaje y devuelve el correo pendiente. Los destinatarios vacíos o repetidos se descartan.
func (c *Composer) Componer(m Mensaje, destinatarios ...string) (*entity.Correo, error) {
	dest := limpiar(destinatarios)
	if len(dest) == 0 {
		return nil, nil
	}
	html, err := c.renderer.Render(m)
	if err != nil {
		return nil, fmt.Errorf("render correo: %w", err)
	}
	return &entity.Correo{
		ID:            uuid.New().String(),
		Asunto:        m.Asunto,
		Remitente:     c.remitente,
		Destinatarios: dest,
		HTML:          html,
		Estado:        entity.CorreoPendiente,
	}, nil
}

func limpiar(direcciones []string) []string {
	vistos := make(map[string]bool, len(direcciones))
	out := make([]string, 0, len(direcciones))
	for _, d := range direcciones {
		d = strings.TrimSpace(d)
		if d == "" || vistos[strings.ToLower(d)] {
			continue
		}
		vistos[strings.ToLower(d)] = true
		out = append(out, d)
	}
	return out
}
