package notificacion_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

type renderer struct{ err error }

func (r renderer) Render(m notificacion.Mensaje) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<h1>" + m.Titulo + "</h1>", nil
}

func TestComponer_LimpiaDestinatarios(t *testing.T) {
	c := notificacion.NewComposer(renderer{}, "erp@banco.gt")

	correo, err := c.Componer(notificacion.Mensaje{Asunto: "Traslado", Titulo: "Traslado de tomos"},
		" ana@banco.gt", "", "ANA@banco.gt", "luis@banco.gt")
	require.NoError(t, err)
	require.NotNil(t, correo)
	assert.Equal(t, []string{"ana@banco.gt", "luis@banco.gt"}, correo.Destinatarios)
	assert.Equal(t, "Traslado", correo.Asunto)
	assert.Equal(t, "erp@banco.gt", correo.Remitente)
	assert.Equal(t, "<h1>Traslado de tomos</h1>", correo.HTML)
	assert.Equal(t, entity.CorreoPendiente, correo.Estado)
	assert.NotEmpty(t, correo.ID)
}

func TestComponer_SinDestinatarios(t *testing.T) {
	c := notificacion.NewComposer(renderer{err: errors.New("no debe renderizar")}, "erp@banco.gt")

	correo, err := c.Componer(notificacion.Mensaje{Asunto: "Egreso"}, "", "  ")
	assert.NoError(t, err)
	assert.Nil(t, correo)
}

func TestComponer_ErrorDeRender(t *testing.T) {
	c := notificacion.NewComposer(renderer{err: errors.New("plantilla rota")}, "erp@banco.gt")

	_, err := c.Componer(notificacion.Mensaje{Asunto: "Egreso"}, "ana@banco.gt")
	assert.ErrorContains(t, err, "plantilla rota")
}
