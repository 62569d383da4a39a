package archivo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

func tomo(numero int, vigente bool) *entity.Tomo {
	return &entity.Tomo{ID: "t" + string(rune('0'+numero)), Numero: numero, Vigente: vigente, CreditoNumero: "100"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregar: primero, rehabilitar el menor inhabilitado o crear max+1.
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanificarAgregar_SinTomos(t *testing.T) {
	plan := archivo.PlanificarAgregar(nil)
	assert.Equal(t, archivo.CrearPrimero, plan.Accion)
	assert.Equal(t, 1, plan.Numero)
}

func TestPlanificarAgregar_RehabilitaMenorInhabilitado(t *testing.T) {
	tomos := []*entity.Tomo{tomo(1, true), tomo(4, false), tomo(2, false), tomo(3, true)}
	plan := archivo.PlanificarAgregar(tomos)
	assert.Equal(t, archivo.Rehabilitar, plan.Accion)
	assert.Equal(t, 2, plan.Numero)
	require.NotNil(t, plan.Tomo)
	assert.Same(t, tomos[2], plan.Tomo)
}

func TestPlanificarAgregar_TodosVigentes(t *testing.T) {
	plan := archivo.PlanificarAgregar([]*entity.Tomo{tomo(1, true), tomo(3, true), tomo(2, true)})
	assert.Equal(t, archivo.CrearSiguiente, plan.Accion)
	assert.Equal(t, 4, plan.Numero)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remover: el mayor vigente, salvo que esté en una caja.
// ──────────────────────────────────────────────────────────────────────────────

func TestSeleccionarRemover_MayorVigente(t *testing.T) {
	tomos := []*entity.Tomo{tomo(1, true), tomo(3, false), tomo(2, true)}
	sel, err := archivo.SeleccionarRemover("100", tomos)
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Numero)
}

func TestSeleccionarRemover_SinVigentes(t *testing.T) {
	_, err := archivo.SeleccionarRemover("100", []*entity.Tomo{tomo(1, false)})
	require.ErrorIs(t, err, domain.ErrSinTomos)
	assert.Equal(t, "No hay tomos para deshabilitar en el crédito 100", domain.Message(err))

	_, err = archivo.SeleccionarRemover("100", nil)
	assert.ErrorIs(t, err, domain.ErrSinTomos)
}

func TestSeleccionarRemover_TomoEnCaja(t *testing.T) {
	caja := "caja-1"
	t2 := tomo(2, true)
	t2.CajaID = &caja
	_, err := archivo.SeleccionarRemover("100", []*entity.Tomo{tomo(1, true), t2})
	assert.ErrorIs(t, err, domain.ErrTomoEnCaja)
}

func TestComentarioEgreso_Literal(t *testing.T) {
	s := &entity.Solicitante{Codigo: 77, Nombre: "ANA PEREZ", Extension: "1203", Correo: "ana@banco.gt", Gerencia: "CREDITOS"}
	got := archivo.ComentarioEgreso(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), s, "urgente")
	want := "Fecha: \t\t05-03-2024\n" +
		"Codigo: \t77\n" +
		"Nombre: \tANA PEREZ\n" +
		"Extension: \t1203\n" +
		"Correo: \tana@banco.gt\n" +
		"Gerencia: \tCREDITOS\n" +
		"Comentario: \turgente"
	assert.Equal(t, want, got)
}

func TestComentarioTraslado_Literal(t *testing.T) {
	assert.Equal(t, "Traslado a NOR\nrevisión", archivo.ComentarioTraslado("NOR", "revisión"))
}
