package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// estructuraFake guarda el árbol en memoria; las inserciones se enganchan a su padre.
type estructuraFake struct {
	repository.EstructuraRepository
	estantes   []*entity.Estante
	niveles    map[string]*entity.Nivel
	posiciones map[string]*entity.Posicion
	bloqueos   int
}

func newEstructuraFake() *estructuraFake {
	return &estructuraFake{niveles: map[string]*entity.Nivel{}, posiciones: map[string]*entity.Posicion{}}
}

func (r *estructuraFake) LockBodega(context.Context, string) error {
	r.bloqueos++
	return nil
}

func (r *estructuraFake) Arbol(context.Context, string) ([]*entity.Estante, error) {
	return r.estantes, nil
}

func (r *estructuraFake) InsertEstantes(_ context.Context, rows []*entity.Estante) (int64, error) {
	for _, e := range rows {
		for _, x := range r.estantes {
			if x.Codigo == e.Codigo {
				return 0, nil
			}
		}
	}
	r.estantes = append(r.estantes, rows...)
	return int64(len(rows)), nil
}

func (r *estructuraFake) InsertNiveles(_ context.Context, rows []*entity.Nivel) (int64, error) {
	for _, n := range rows {
		for _, e := range r.estantes {
			if e.ID == n.EstanteID {
				e.Niveles = append(e.Niveles, n)
			}
		}
		r.niveles[n.ID] = n
	}
	return int64(len(rows)), nil
}

func (r *estructuraFake) InsertPosiciones(_ context.Context, rows []*entity.Posicion) (int64, error) {
	for _, p := range rows {
		n := r.niveles[p.NivelID]
		n.Posiciones = append(n.Posiciones, p)
		r.posiciones[p.ID] = p
	}
	return int64(len(rows)), nil
}

func (r *estructuraFake) InsertCajas(_ context.Context, rows []*entity.Caja) (int64, error) {
	for _, c := range rows {
		p := r.posiciones[c.PosicionID]
		p.Cajas = append(p.Cajas, c)
	}
	return int64(len(rows)), nil
}

func (r *estructuraFake) GetEstante(_ context.Context, id string) (*entity.Estante, *entity.Ubicacion, error) {
	for _, e := range r.estantes {
		if e.ID == id {
			return e, &entity.Ubicacion{BodegaCodigo: "BOD", EstanteCodigo: e.Codigo}, nil
		}
	}
	return nil, nil, nil
}

func (r *estructuraFake) UpdateEstante(context.Context, *entity.Estante) error { return nil }

type estructuraTx struct{ repo *estructuraFake }

func (t estructuraTx) RunEstructura(_ context.Context, fn func(repository.EstructuraRepository) error) error {
	return fn(t.repo)
}

type bodegaFake struct {
	repository.BodegaRepository
	bodegas     map[string]*entity.Bodega
	personalErr error
}

// GetByID devuelve una copia, como una lectura real.
func (r *bodegaFake) GetByID(_ context.Context, id string) (*entity.Bodega, error) {
	b := r.bodegas[id]
	if b == nil {
		return nil, nil
	}
	c := *b
	return &c, nil
}

const bodegaID = "55555555-5555-5555-5555-555555555555"

func estructuraUC() (*usecase.EstructuraUseCase, *estructuraFake) {
	repo := newEstructuraFake()
	bodegas := &bodegaFake{bodegas: map[string]*entity.Bodega{
		bodegaID: {ID: bodegaID, Codigo: "BOD", Nombre: "CENTRAL", Vigente: true},
	}}
	return usecase.NewEstructuraUseCase(estructuraTx{repo}, repo, bodegas, nil, logger.Nop()), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Generar
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerar_CreaArbolCompleto(t *testing.T) {
	uc, repo := estructuraUC()

	out, err := uc.Generar(context.Background(), bodegaID, dto.GenerarEstructuraRequest{Estantes: 2, Niveles: 3, Posiciones: 2, Cajas: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Estantes)
	assert.Equal(t, int64(6), out.Niveles)
	assert.Equal(t, int64(12), out.Posiciones)
	assert.Equal(t, int64(48), out.Cajas)
	assert.Equal(t, 1, repo.bloqueos)
	assert.Equal(t, "A", repo.estantes[0].Codigo)
	assert.Equal(t, "B", repo.estantes[1].Codigo)
}

// Repetir la generación no crea nada; ampliar solo crea la diferencia.
func TestGenerar_Idempotente(t *testing.T) {
	uc, _ := estructuraUC()
	ctx := context.Background()
	in := dto.GenerarEstructuraRequest{Estantes: 1, Niveles: 2, Posiciones: 2, Cajas: 2}

	_, err := uc.Generar(ctx, bodegaID, in)
	require.NoError(t, err)

	out, err := uc.Generar(ctx, bodegaID, in)
	require.NoError(t, err)
	assert.Equal(t, dto.GenerarEstructuraResponse{}, *out)

	in.Cajas = 3
	out, err = uc.Generar(ctx, bodegaID, in)
	require.NoError(t, err)
	assert.Zero(t, out.Estantes)
	assert.Zero(t, out.Niveles)
	assert.Equal(t, int64(4), out.Cajas)
}

func TestGenerar_RespetaInhabilitados(t *testing.T) {
	uc, repo := estructuraUC()
	repo.estantes = []*entity.Estante{{ID: "e-a", BodegaID: bodegaID, Codigo: "A", Vigente: false}}

	out, err := uc.Generar(context.Background(), bodegaID, dto.GenerarEstructuraRequest{Estantes: 2, Niveles: 1, Posiciones: 1, Cajas: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Estantes)
	assert.Equal(t, int64(1), out.Niveles, "solo bajo el estante B")
	assert.Empty(t, repo.estantes[0].Niveles)
}

func TestGenerar_Validaciones(t *testing.T) {
	uc, repo := estructuraUC()
	ctx := context.Background()

	_, err := uc.Generar(ctx, bodegaID, dto.GenerarEstructuraRequest{Estantes: 1, Niveles: 0, Posiciones: 1, Cajas: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generar(ctx, "66666666-6666-6666-6666-666666666666", dto.GenerarEstructuraRequest{Estantes: 1, Niveles: 1, Posiciones: 1, Cajas: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, repo.bloqueos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estantes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateEstante(t *testing.T) {
	uc, _ := estructuraUC()
	ctx := context.Background()

	out, err := uc.CreateEstante(ctx, dto.EstanteRequest{BodegaID: bodegaID, Codigo: " ab "})
	require.NoError(t, err)
	assert.Equal(t, "AB", out.Codigo)
	assert.Equal(t, "BOD-AB", out.Display)
	assert.True(t, out.Vigente)

	_, err = uc.CreateEstante(ctx, dto.EstanteRequest{BodegaID: bodegaID, Codigo: "ab"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateEstante_CodigoInvalido(t *testing.T) {
	uc, _ := estructuraUC()
	for _, codigo := range []string{"", "A1", "ABC"} {
		_, err := uc.CreateEstante(context.Background(), dto.EstanteRequest{BodegaID: bodegaID, Codigo: codigo})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, codigo)
	}
}

func TestToggleEstante(t *testing.T) {
	uc, repo := estructuraUC()
	repo.estantes = []*entity.Estante{{ID: "e-a", BodegaID: bodegaID, Codigo: "A", Vigente: true}}

	out, err := uc.ToggleEstante(context.Background(), "e-a")
	require.NoError(t, err)
	assert.False(t, out.Vigente)

	_, err = uc.ToggleEstante(context.Background(), "e-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
