package archivo_test

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

func TestComentarioTraslado(t *testing.T) {
	assert.Equal(t, "Traslado a B02\ncaja dañada", archivo.ComentarioTraslado("B02", "caja dañada"))
}

func TestComentarioEgreso(t *testing.T) {
	sol := &entity.Solicitante{
		Codigo:    15,
		Nombre:    "JUAN LOPEZ",
		Extension: "2201",
		Correo:    "jlopez@banco.gt",
		Gerencia:  "CREDITOS",
	}
	got := archivo.ComentarioEgreso(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), sol, "Revisión anual")
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "comentario_egreso", []byte(got))
}
