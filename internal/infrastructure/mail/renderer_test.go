package mail_test

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/mail"
)

func render(t *testing.T, m notificacion.Mensaje) []byte {
	t.Helper()
	r, err := mail.NewRenderer()
	require.NoError(t, err)
	html, err := r.Render(m)
	require.NoError(t, err)
	return []byte(html)
}

func TestRender_Traslado(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "traslado", render(t, notificacion.Mensaje{
		Asunto: "Traslado de Expedientes",
		Titulo: "Traslado de Expedientes",
		Texto:  "Se trasladaron 2 tomo(s) a la bodega B01.",
		Tomos: []notificacion.LineaTomo{
			{Referencia: "1001 / 1", Ubicacion: "A-01-01-0001"},
			{Referencia: "1001 / 2", Ubicacion: "A-01-01-0002"},
		},
		Comentario: "Traslado a B01\n<urgente>",
	}))
}

func TestRender_Egreso(t *testing.T) {
	sol := &entity.Solicitante{Codigo: 15, Nombre: "JUAN LOPEZ", Extension: "2201", Correo: "jlopez@banco.gt", Gerencia: "CREDITOS"}
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "egreso", render(t, notificacion.Mensaje{
		Asunto:     "Egreso por solicitud",
		Titulo:     "Egreso por Solicitud",
		Texto:      "Se han entregado, los siguientes tomos:",
		Tomos:      []notificacion.LineaTomo{{Referencia: "2002 / 1", Ubicacion: "B-03-02-0010"}},
		Comentario: archivo.ComentarioEgreso(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), sol, "Revisión anual"),
	}))
}

func TestRender_Reset(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "reset", render(t, notificacion.Mensaje{
		Asunto: "Restablecer contraseña",
		Titulo: "Restablecer contraseña",
		Texto:  "Use el enlace para definir una nueva contraseña.",
		Enlace: "https://erp.local/reset?token=abc",
	}))
}
