package archivo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

func secuencia() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestPlanificarEstructura_BodegaVacia(t *testing.T) {
	d := archivo.Dimensiones{Estantes: 2, Niveles: 3, Posiciones: 4, Cajas: 5}
	plan, err := archivo.PlanificarEstructura("b1", nil, d, secuencia())
	require.NoError(t, err)

	assert.Len(t, plan.Estantes, 2)
	assert.Len(t, plan.Niveles, 2*3)
	assert.Len(t, plan.Posiciones, 2*3*4)
	assert.Len(t, plan.Cajas, 2*3*4*5)
	assert.Equal(t, "A", plan.Estantes[0].Codigo)
	assert.Equal(t, "B", plan.Estantes[1].Codigo)
	assert.Equal(t, plan.Estantes[0].ID, plan.Niveles[0].EstanteID)
}

func TestPlanificarEstructura_Idempotente(t *testing.T) {
	d := archivo.Dimensiones{Estantes: 1, Niveles: 2, Posiciones: 2, Cajas: 2}
	plan, err := archivo.PlanificarEstructura("b1", nil, d, secuencia())
	require.NoError(t, err)

	arbol := armarArbol(plan)
	segundo, err := archivo.PlanificarEstructura("b1", arbol, d, secuencia())
	require.NoError(t, err)
	assert.True(t, segundo.Vacio())
}

func TestPlanificarEstructura_CompletaFaltantes(t *testing.T) {
	actual := []*entity.Estante{{
		ID: "e1", Codigo: "A", Vigente: true,
		Niveles: []*entity.Nivel{{ID: "n1", EstanteID: "e1", Numero: 1, Vigente: true}},
	}}
	d := archivo.Dimensiones{Estantes: 1, Niveles: 2, Posiciones: 1, Cajas: 1}
	plan, err := archivo.PlanificarEstructura("b1", actual, d, secuencia())
	require.NoError(t, err)

	assert.Empty(t, plan.Estantes)
	require.Len(t, plan.Niveles, 1)
	assert.Equal(t, 2, plan.Niveles[0].Numero)
	assert.Len(t, plan.Posiciones, 2, "una por cada nivel vigente")
	assert.Len(t, plan.Cajas, 2)
}

func TestPlanificarEstructura_RespetaInhabilitados(t *testing.T) {
	actual := []*entity.Estante{
		{ID: "e1", Codigo: "A", Vigente: false},
		{ID: "e2", Codigo: "B", Vigente: true, Niveles: []*entity.Nivel{
			{ID: "n1", EstanteID: "e2", Numero: 1, Vigente: false},
		}},
	}
	d := archivo.Dimensiones{Estantes: 2, Niveles: 1, Posiciones: 1, Cajas: 1}
	plan, err := archivo.PlanificarEstructura("b1", actual, d, secuencia())
	require.NoError(t, err)

	assert.Empty(t, plan.Estantes, "A y B ya existen")
	assert.Empty(t, plan.Niveles, "A está inhabilitado y B ya tiene el nivel 1")
	assert.Empty(t, plan.Posiciones, "el nivel 1 de B está inhabilitado")
	assert.Empty(t, plan.Cajas)
}

func TestPlanificarEstructura_DimensionesInvalidas(t *testing.T) {
	_, err := archivo.PlanificarEstructura("b1", nil, archivo.Dimensiones{Estantes: 1, Niveles: 0, Posiciones: 1, Cajas: 1}, secuencia())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = archivo.PlanificarEstructura("b1", nil, archivo.Dimensiones{Estantes: 703, Niveles: 1, Posiciones: 1, Cajas: 1}, secuencia())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaxColumnas(t *testing.T) {
	plan, err := archivo.PlanificarEstructura("b1", nil, archivo.Dimensiones{Estantes: 2, Niveles: 2, Posiciones: 3, Cajas: 1}, secuencia())
	require.NoError(t, err)
	assert.Equal(t, 3, archivo.MaxColumnas(armarArbol(plan)))
}

// armarArbol convierte el plan plano en el árbol que devolvería el repositorio.
func armarArbol(plan *archivo.PlanEstructura) []*entity.Estante {
	niveles := map[string]*entity.Nivel{}
	posiciones := map[string]*entity.Posicion{}
	estantes := map[string]*entity.Estante{}
	for _, e := range plan.Estantes {
		estantes[e.ID] = e
	}
	for _, n := range plan.Niveles {
		niveles[n.ID] = n
		estantes[n.EstanteID].Niveles = append(estantes[n.EstanteID].Niveles, n)
	}
	for _, p := range plan.Posiciones {
		posiciones[p.ID] = p
		niveles[p.NivelID].Posiciones = append(niveles[p.NivelID].Posiciones, p)
	}
	for _, c := range plan.Cajas {
		posiciones[c.PosicionID].Cajas = append(posiciones[c.PosicionID].Cajas, c)
	}
	return plan.Estantes
}
