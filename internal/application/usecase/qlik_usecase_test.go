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
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type streamRepo struct {
	repository.StreamRepository
	streams map[string]*entity.Stream
}

func (r *streamRepo) GetByID(_ context.Context, id string) (*entity.Stream, error) {
	return r.streams[id], nil
}

type modeloRepo struct {
	repository.ModeloRepository
	modelos map[string]*entity.Modelo
}

func (r *modeloRepo) Create(_ context.Context, m *entity.Modelo) error {
	r.modelos[m.ID] = m
	return nil
}

func (r *modeloRepo) GetByID(_ context.Context, id string) (*entity.Modelo, error) {
	return r.modelos[id], nil
}

func (r *modeloRepo) ExistsInStream(_ context.Context, streamID, nombre string) (bool, error) {
	for _, m := range r.modelos {
		if m.StreamID == streamID && m.Nombre == nombre {
			return true, nil
		}
	}
	return false, nil
}

type tipoDatoRepo struct {
	repository.TipoDatoRepository
	tipos map[string]*entity.TipoDato
}

func (r *tipoDatoRepo) GetByID(_ context.Context, id string) (*entity.TipoDato, error) {
	return r.tipos[id], nil
}

type origenRepo struct {
	repository.OrigenDatoRepository
	origenes map[string]*entity.OrigenDato
	usos     []*entity.OrigenDatoModelo
}

func (r *origenRepo) Create(_ context.Context, o *entity.OrigenDato) error {
	r.origenes[o.ID] = o
	return nil
}

func (r *origenRepo) GetByID(_ context.Context, id string) (*entity.OrigenDato, error) {
	return r.origenes[id], nil
}

func (r *origenRepo) Exists(_ context.Context, nombre, tipoDatoID string) (bool, error) {
	for _, o := range r.origenes {
		if o.Nombre == nombre && o.TipoDatoID == tipoDatoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *origenRepo) ExistsUso(_ context.Context, modeloID, origenID string) (bool, error) {
	for _, u := range r.usos {
		if u.ModeloID == modeloID && u.OrigenDatoID == origenID {
			return true, nil
		}
	}
	return false, nil
}

func (r *origenRepo) CreateUso(_ context.Context, u *entity.OrigenDatoModelo) error {
	r.usos = append(r.usos, u)
	return nil
}

const (
	streamVentas  = "aaaaaaaa-0000-0000-0000-000000000001"
	tipoTabla     = "aaaaaaaa-0000-0000-0000-000000000002"
	tipoQVD       = "aaaaaaaa-0000-0000-0000-000000000003"
	tipoInactivo  = "aaaaaaaa-0000-0000-0000-000000000004"
	qlikAppID     = "bbbbbbbb-0000-0000-0000-000000000001"
	proxyQlik     = "https://qlik.banco.gt/"
	origenCartera = "cccccccc-0000-0000-0000-000000000001"
)

type qlikFixture struct {
	uc       *usecase.QlikUseCase
	modelos  *modeloRepo
	origenes *origenRepo
}

func nuevoQlik() qlikFixture {
	streams := &streamRepo{streams: map[string]*entity.Stream{
		streamVentas: {ID: streamVentas, Nombre: "Ventas", QlikID: "s-1"},
	}}
	tipos := &tipoDatoRepo{tipos: map[string]*entity.TipoDato{
		tipoTabla:    {ID: tipoTabla, Nombre: "Tabla", Vigente: true},
		tipoQVD:      {ID: tipoQVD, Nombre: "QVD", Vigente: true, OrigenModelo: true},
		tipoInactivo: {ID: tipoInactivo, Nombre: "Vista", Vigente: false},
	}}
	modelos := &modeloRepo{modelos: map[string]*entity.Modelo{}}
	origenes := &origenRepo{origenes: map[string]*entity.OrigenDato{
		origenCartera: {ID: origenCartera, Nombre: "CARTERA", Vigente: true, TipoDatoID: tipoTabla, TipoDatoNombre: "Tabla"},
	}}
	return qlikFixture{
		uc:       usecase.NewQlikUseCase(streams, modelos, tipos, origenes, &permisoRepo{}, proxyQlik),
		modelos:  modelos,
		origenes: origenes,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Modelos
// ──────────────────────────────────────────────────────────────────────────────

func TestAgregarModelo(t *testing.T) {
	f := nuevoQlik()
	ctx := context.Background()
	in := dto.ModeloRequest{Nombre: " Colocaciones ", Descripcion: "Tablero diario", QlikID: qlikAppID}

	out, err := f.uc.AgregarModelo(ctx, streamVentas, in)
	require.NoError(t, err)
	assert.Equal(t, "Colocaciones", out.Nombre)
	assert.Equal(t, "Ventas", out.StreamNombre)
	assert.Equal(t, proxyQlik+"sense/app/"+qlikAppID, out.ExternalURL)

	_, err = f.uc.AgregarModelo(ctx, streamVentas, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.modelos.modelos, 1)
}

func TestCreateModelo_SinStream(t *testing.T) {
	f := nuevoQlik()
	ctx := context.Background()

	_, err := f.uc.CreateModelo(ctx, dto.ModeloRequest{Nombre: "X", QlikID: qlikAppID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateModelo(ctx, dto.ModeloRequest{Nombre: "X", QlikID: qlikAppID, StreamID: "aaaaaaaa-0000-0000-0000-00000000ffff"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orígenes de datos
// ──────────────────────────────────────────────────────────────────────────────

func TestUsaOrigen_NoRepite(t *testing.T) {
	f := nuevoQlik()
	ctx := context.Background()
	m, err := f.uc.AgregarModelo(ctx, streamVentas, dto.ModeloRequest{Nombre: "Cartera", QlikID: qlikAppID})
	require.NoError(t, err)

	uso, err := f.uc.UsaOrigen(ctx, m.ID, dto.UsaOrigenRequest{OrigenDatoID: origenCartera})
	require.NoError(t, err)
	assert.Equal(t, "CARTERA", uso.OrigenDatoNombre)

	_, err = f.uc.UsaOrigen(ctx, m.ID, dto.UsaOrigenRequest{OrigenDatoID: origenCartera})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, domain.Message(err), `"CARTERA"`)
}

// Solo los tipos con OrigenModelo admiten orígenes generados por un modelo, y al revés.
func TestTipoDeOrigen(t *testing.T) {
	f := nuevoQlik()
	ctx := context.Background()
	m, err := f.uc.AgregarModelo(ctx, streamVentas, dto.ModeloRequest{Nombre: "Cartera", QlikID: qlikAppID})
	require.NoError(t, err)

	generado, err := f.uc.GeneraOrigen(ctx, m.ID, dto.GeneraOrigenRequest{Nombre: "cartera.qvd", TipoDatoID: tipoQVD})
	require.NoError(t, err)
	require.NotNil(t, generado.ModeloID)
	assert.Equal(t, m.ID, *generado.ModeloID)

	_, err = f.uc.GeneraOrigen(ctx, m.ID, dto.GeneraOrigenRequest{Nombre: "otra", TipoDatoID: tipoTabla})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateOrigen(ctx, dto.OrigenDatoRequest{Nombre: "suelto.qvd", TipoDatoID: tipoQVD})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateOrigen(ctx, dto.OrigenDatoRequest{Nombre: "VISTA", TipoDatoID: tipoInactivo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrigen_Duplicado(t *testing.T) {
	f := nuevoQlik()
	ctx := context.Background()
	inactivo := false

	out, err := f.uc.CreateOrigen(ctx, dto.OrigenDatoRequest{Nombre: "CLIENTES", TipoDatoID: tipoTabla, Vigente: &inactivo})
	require.NoError(t, err)
	assert.False(t, out.Vigente)
	assert.Nil(t, out.ModeloID)

	_, err = f.uc.CreateOrigen(ctx, dto.OrigenDatoRequest{Nombre: "CARTERA", TipoDatoID: tipoTabla})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.origenes.origenes, 2)
}
