package pdf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/pdf"
)

func TestLabelGenerator_Generate(t *testing.T) {
	g := pdf.NewLabelGenerator()
	out, err := g.Generate("Crédito 1001", []expedientes.Etiqueta{
		{Codigo: "T-1001-1", Titulo: "1001 / 1", Detalle: "A-01-01-0001"},
		{Codigo: "T-1001-2", Titulo: "1001 / 2", Detalle: "Sin ubicación"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLabelGenerator_SinEtiquetas(t *testing.T) {
	_, err := pdf.NewLabelGenerator().Generate("vacío", nil)
	require.Error(t, err)
}
