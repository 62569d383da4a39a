// Package mail renderiza y envía los correos del outbox.
package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
)

//go:embed templates/*.html
var templates embed.FS

var _ notificacion.Renderer = (*Renderer)(nil)

// Renderer arma el HTML de los correos con la plantilla embebida.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer compila la plantilla; falla solo si la plantilla embebida es inválida.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templates, "templates/correo.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parse plantilla: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render ejecuta la plantilla con el mensaje.
func (r *Renderer) Render(m notificacion.Mensaje) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "correo.html", m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
