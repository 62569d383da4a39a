package expedientes_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type tomoRepo struct {
	repository.TomoRepository
	tomos     map[string]*entity.Tomo
	liberados []string
	liberarCm string
}

func (r *tomoRepo) Create(_ context.Context, t *entity.Tomo) error {
	r.tomos[t.ID] = t
	return nil
}

func (r *tomoRepo) Update(_ context.Context, t *entity.Tomo) error {
	r.tomos[t.ID] = t
	return nil
}

func (r *tomoRepo) GetByID(_ context.Context, id string) (*entity.Tomo, error) {
	return r.tomos[id], nil
}

func (r *tomoRepo) GetByReferencia(_ context.Context, credito string, numero int) (*entity.Tomo, error) {
	for _, t := range r.tomos {
		if t.CreditoNumero == credito && t.Numero == numero {
			return t, nil
		}
	}
	return nil, nil
}

func (r *tomoRepo) ListByCreditoForUpdate(_ context.Context, creditoID string) ([]*entity.Tomo, error) {
	var out []*entity.Tomo
	for _, t := range r.tomos {
		if t.CreditoID == creditoID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *tomoRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Tomo, error) {
	out := make([]*entity.Tomo, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.tomos[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *tomoRepo) Liberar(_ context.Context, ids []string, comentario, _ string) (int64, error) {
	r.liberados = append(r.liberados, ids...)
	r.liberarCm = comentario
	return int64(len(ids)), nil
}

type creditoRepo struct {
	repository.CreditoRepository
	creditos map[string]*entity.Credito
}

func (r *creditoRepo) GetByID(_ context.Context, id string) (*entity.Credito, error) {
	return r.creditos[id], nil
}

type estructuraRepo struct {
	repository.EstructuraRepository
	caja *entity.Caja
}

func (r *estructuraRepo) FindCaja(_ context.Context, bodega, estante string, nivel, posicion, caja int) (*entity.Caja, error) {
	u := r.caja.Ubicacion
	if u.BodegaCodigo == bodega && u.EstanteCodigo == estante && u.Nivel == nivel && u.Posicion == posicion && u.Caja == caja {
		return r.caja, nil
	}
	return nil, nil
}

type bodegaRepo struct {
	repository.BodegaRepository
	bodegas map[string]*entity.Bodega
}

func (r *bodegaRepo) GetByID(_ context.Context, id string) (*entity.Bodega, error) {
	return r.bodegas[id], nil
}

type solicitanteRepo struct {
	repository.SolicitanteRepository
	s *entity.Solicitante
}

func (r *solicitanteRepo) GetByID(_ context.Context, id string) (*entity.Solicitante, error) {
	if r.s != nil && r.s.ID == id {
		return r.s, nil
	}
	return nil, nil
}

type motivoRepo struct {
	repository.MotivoRepository
	m *entity.Motivo
}

func (r *motivoRepo) GetByID(_ context.Context, id string) (*entity.Motivo, error) {
	if r.m != nil && r.m.ID == id {
		return r.m, nil
	}
	return nil, nil
}

type usuarioRepo struct {
	repository.UsuarioRepository
	u *entity.Usuario
}

func (r *usuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	if r.u != nil && r.u.ID == id {
		return r.u, nil
	}
	return nil, nil
}

type correoRepo struct {
	repository.CorreoRepository
	encolados []*entity.Correo
}

func (r *correoRepo) Enqueue(_ context.Context, c *entity.Correo) error {
	r.encolados = append(r.encolados, c)
	return nil
}

type pickList struct {
	items     map[string]map[string]bool
	removeErr error
}

func (p *pickList) Add(_ context.Context, userID, tomoID string) (bool, error) {
	if p.items[userID] == nil {
		p.items[userID] = map[string]bool{}
	}
	if p.items[userID][tomoID] {
		return false, nil
	}
	p.items[userID][tomoID] = true
	return true, nil
}

func (p *pickList) Remove(_ context.Context, userID string, tomoIDs ...string) error {
	if p.removeErr != nil {
		return p.removeErr
	}
	for _, id := range tomoIDs {
		delete(p.items[userID], id)
	}
	return nil
}

func (p *pickList) Members(_ context.Context, userID string) ([]string, error) {
	var out []string
	for id := range p.items[userID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

type tx struct {
	tomos    *tomoRepo
	creditos *creditoRepo
	correos  *correoRepo
	// durante corre dentro de la transacción, para simular trabajo concurrente.
	durante func()
}

func (t *tx) RunTomos(_ context.Context, fn func(repository.TomoRepository, repository.CreditoRepository, repository.CorreoRepository) error) error {
	if t.durante != nil {
		t.durante()
	}
	return fn(t.tomos, t.creditos, t.correos)
}

type renderer struct{}

func (renderer) Render(m notificacion.Mensaje) (string, error) {
	return "<h1>" + m.Titulo + "</h1><p>" + m.Texto + "</p>", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	usuario   = "u-1"
	creditoID = "c-1"
	bodegaID  = "b-1"
	cajaID    = "caja-1"
)

type escenario struct {
	uc       *expedientes.TomoUseCase
	tomos    *tomoRepo
	correos  *correoRepo
	lista    *pickList
	tx       *tx
	bodegas  *bodegaRepo
	caja     *entity.Caja
	sol      *entity.Solicitante
	mot      *entity.Motivo
	creditos *creditoRepo
}

func nuevoEscenario() *escenario {
	tomos := &tomoRepo{tomos: map[string]*entity.Tomo{}}
	creditos := &creditoRepo{creditos: map[string]*entity.Credito{
		creditoID: {ID: creditoID, Numero: "1001"},
	}}
	correos := &correoRepo{}
	encargado := &entity.Usuario{ID: "u-2", Email: "encargado@banco.com"}
	bodegas := &bodegaRepo{bodegas: map[string]*entity.Bodega{}}
	bodegas.bodegas[bodegaID] = &entity.Bodega{ID: bodegaID, Codigo: "BOD", Vigente: true, Personal: []string{usuario}}
	bodegas.bodegas["b-2"] = &entity.Bodega{ID: "b-2", Codigo: "SUR", Nombre: "BODEGA ZONA SUR", Vigente: true, CorreoTraslado: true,
		EncargadoID: &encargado.ID, Encargado: encargado}
	caja := &entity.Caja{ID: cajaID, Numero: 3, Vigente: true, Ubicacion: entity.Ubicacion{
		BodegaID: bodegaID, BodegaCodigo: "BOD", EstanteCodigo: "A", Nivel: 1, Posicion: 2, Caja: 3,
	}}
	sol := &entity.Solicitante{ID: "s-1", Codigo: 77, Nombre: "JUAN LOPEZ", Area: entity.AreaExpedientes,
		Correo: "juan@banco.com", Vigente: true}
	mot := &entity.Motivo{ID: "m-1", Nombre: "REVISION", Area: entity.AreaExpedientes, Vigente: true}
	lista := &pickList{items: map[string]map[string]bool{}}
	runner := &tx{tomos: tomos, creditos: creditos, correos: correos}

	uc := expedientes.NewTomoUseCase(expedientes.Deps{
		TxRunner:        runner,
		TomoRepo:        tomos,
		CreditoRepo:     creditos,
		EstructuraRepo:  &estructuraRepo{caja: caja},
		BodegaRepo:      bodegas,
		SolicitanteRepo: &solicitanteRepo{s: sol},
		MotivoRepo:      &motivoRepo{m: mot},
		UserRepo:        &usuarioRepo{u: &entity.Usuario{ID: usuario, Email: "archivo@banco.com"}},
		PickList:        lista,
		Composer:        notificacion.NewComposer(renderer{}, "expedientes@banco.com"),
		Log:             logger.Nop(),
	})
	return &escenario{uc: uc, tomos: tomos, correos: correos, lista: lista, tx: runner, bodegas: bodegas,
		caja: caja, sol: sol, mot: mot, creditos: creditos}
}

func (e *escenario) tomo(id string, numero int, vigente bool) *entity.Tomo {
	t := &entity.Tomo{ID: id, Numero: numero, Vigente: vigente, CreditoID: creditoID, CreditoNumero: "1001"}
	e.tomos.tomos[id] = t
	return t
}

// ──────────────────────────────────────────────────────────────────────────────
// Habilitar e inhabilitar
// ──────────────────────────────────────────────────────────────────────────────

func TestAgregarTomo_CreaPrimero(t *testing.T) {
	e := nuevoEscenario()

	out, err := e.uc.AgregarTomo(context.Background(), creditoID, usuario)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Numero)
	assert.Equal(t, "1001-1", out.Referencia)
	assert.Equal(t, entity.ComentarioTomoHabilitado, out.Comentario)
	assert.Len(t, e.tomos.tomos, 1)
}

func TestAgregarTomo_RehabilitaElMenorInactivo(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.tomo("t2", 2, false)
	e.tomo("t3", 3, false)

	out, err := e.uc.AgregarTomo(context.Background(), creditoID, usuario)
	require.NoError(t, err)
	assert.Equal(t, "t2", out.ID)
	assert.True(t, e.tomos.tomos["t2"].Vigente)
	assert.False(t, e.tomos.tomos["t3"].Vigente)
	assert.Len(t, e.tomos.tomos, 3)
}

func TestAgregarTomo_CreditoInexistente(t *testing.T) {
	e := nuevoEscenario()
	_, err := e.uc.AgregarTomo(context.Background(), "no-existe", usuario)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoverTomo_InhabilitaElMayor(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.tomo("t2", 2, true)

	out, err := e.uc.RemoverTomo(context.Background(), creditoID, usuario)
	require.NoError(t, err)
	assert.Equal(t, "t2", out.ID)
	assert.False(t, e.tomos.tomos["t2"].Vigente)
	assert.Equal(t, entity.ComentarioTomoInhabilitado, e.tomos.tomos["t2"].Comentario)
}

func TestRemoverTomo_EnCaja(t *testing.T) {
	e := nuevoEscenario()
	tm := e.tomo("t1", 1, true)
	id := cajaID
	tm.CajaID = &id

	_, err := e.uc.RemoverTomo(context.Background(), creditoID, usuario)
	assert.ErrorIs(t, err, domain.ErrTomoEnCaja)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingreso en caja
// ──────────────────────────────────────────────────────────────────────────────

func TestIngresarTomo(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)

	out, err := e.uc.IngresarTomo(context.Background(), usuario, dto.IngresoTomoRequest{
		Tomo: "1001 - 1", Caja: "bod-a-01-02-03", Comentario: "ingreso",
	})
	require.NoError(t, err)
	require.NotNil(t, out.CajaID)
	assert.Equal(t, cajaID, *out.CajaID)
	assert.Equal(t, "BOD-A-01-02-03", out.Ubicacion)
	assert.Equal(t, "ingreso", e.tomos.tomos["t1"].Comentario)
}

func TestIngresarTomo_Validaciones(t *testing.T) {
	casos := []struct {
		nombre   string
		preparar func(e *escenario)
		req      dto.IngresoTomoRequest
		want     error
	}{
		{
			nombre: "referencia ilegible",
			req:    dto.IngresoTomoRequest{Tomo: "1001", Caja: "BOD-A-01-02-03"},
			want:   domain.ErrNotFound,
		},
		{
			nombre: "caja inexistente",
			req:    dto.IngresoTomoRequest{Tomo: "1001-1", Caja: "BOD-A-01-02-09"},
			want:   domain.ErrNotFound,
		},
		{
			nombre:   "usuario fuera del personal",
			preparar: func(e *escenario) { e.bodegas.bodegas[bodegaID].Personal = nil },
			req:      dto.IngresoTomoRequest{Tomo: "1001-1", Caja: "BOD-A-01-02-03"},
			want:     domain.ErrSinPermisoBodega,
		},
		{
			nombre:   "caja inactiva",
			preparar: func(e *escenario) { e.caja.Vigente = false },
			req:      dto.IngresoTomoRequest{Tomo: "1001-1", Caja: "BOD-A-01-02-03"},
			want:     domain.ErrCajaInactiva,
		},
		{
			nombre:   "bodega inactiva",
			preparar: func(e *escenario) { e.bodegas.bodegas[bodegaID].Vigente = false },
			req:      dto.IngresoTomoRequest{Tomo: "1001-1", Caja: "BOD-A-01-02-03"},
			want:     domain.ErrBodegaInactiva,
		},
		{
			nombre: "tomo ya asignado",
			preparar: func(e *escenario) {
				otra := "caja-9"
				e.tomos.tomos["t1"].CajaID = &otra
			},
			req:  dto.IngresoTomoRequest{Tomo: "1001-1", Caja: "BOD-A-01-02-03"},
			want: domain.ErrTomoAsignado,
		},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			e := nuevoEscenario()
			e.tomo("t1", 1, true)
			if tc.preparar != nil {
				tc.preparar(e)
			}
			_, err := e.uc.IngresarTomo(context.Background(), usuario, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// El rechazo indica la caja completa donde ya está el tomo.
func TestIngresarTomo_MensajeTomoAsignado(t *testing.T) {
	e := nuevoEscenario()
	tomo := e.tomo("t1", 1, true)
	otra := "caja-9"
	tomo.CajaID = &otra
	tomo.Ubicacion = entity.Ubicacion{BodegaCodigo: "SUR", EstanteCodigo: "B", Nivel: 2, Posicion: 1, Caja: 4}

	_, err := e.uc.IngresarTomo(context.Background(), usuario, dto.IngresoTomoRequest{Tomo: "1001-1", Caja: "BOD-A-01-02-03"})
	assert.ErrorIs(t, err, domain.ErrTomoAsignado)
	assert.Equal(t, "El tomo se encuentra asignado a: SUR-B-02-01-04", domain.Message(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lista de extracción
// ──────────────────────────────────────────────────────────────────────────────

func TestAgregarALista(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	ctx := context.Background()

	require.NoError(t, e.uc.AgregarALista(ctx, usuario, dto.AgregarExtraccionRequest{TomoID: "t1", Referencia: "1001-1"}))

	err := e.uc.AgregarALista(ctx, usuario, dto.AgregarExtraccionRequest{TomoID: "t1", Referencia: "1001-1"})
	assert.ErrorIs(t, err, domain.ErrTomoEnLista)

	err = e.uc.AgregarALista(ctx, usuario, dto.AgregarExtraccionRequest{TomoID: "otro", Referencia: "1001-1"})
	assert.ErrorIs(t, err, domain.ErrTomoNoCorresponde)

	err = e.uc.AgregarALista(ctx, usuario, dto.AgregarExtraccionRequest{TomoID: "t1", Referencia: "1001-X"})
	assert.ErrorIs(t, err, domain.ErrReferenciaInvalida)

	lista, err := e.uc.Lista(ctx, usuario)
	require.NoError(t, err)
	require.Len(t, lista.Items, 1)
	assert.Equal(t, "1001-1", lista.Items[0].Referencia)
}

func TestTrasladar_EncolaCorreoYVaciaLista(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.tomo("t2", 2, true)
	e.lista.items[usuario] = map[string]bool{"t1": true, "t2": true}

	out, err := e.uc.Trasladar(context.Background(), usuario, dto.TrasladoRequest{BodegaID: "b-2", Comentario: "urgente"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Tomos)
	assert.Equal(t, "2 tomos egresados por traslado", out.Message)
	assert.ElementsMatch(t, []string{"t1", "t2"}, e.tomos.liberados)
	assert.Equal(t, archivo.ComentarioTraslado("BODEGA ZONA SUR", "urgente"), e.tomos.liberarCm, "el destino se nombra por su nombre, no por su código")

	require.Len(t, e.correos.encolados, 1)
	assert.Equal(t, []string{"encargado@banco.com"}, e.correos.encolados[0].Destinatarios)
	assert.Equal(t, "Traslado de Expedientes", e.correos.encolados[0].Asunto)
	assert.Contains(t, e.correos.encolados[0].HTML, "a BODEGA ZONA SUR,")
	assert.Empty(t, e.lista.items[usuario])
}

// Sin CorreoTraslado en el destino no se encola nada.
func TestTrasladar_SinCorreo(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.lista.items[usuario] = map[string]bool{"t1": true}

	out, err := e.uc.Trasladar(context.Background(), usuario, dto.TrasladoRequest{BodegaID: bodegaID})
	require.NoError(t, err)
	assert.Equal(t, "1 tomo egresados por traslado", out.Message)
	assert.Empty(t, e.correos.encolados)
}

func TestTrasladar_ListaVacia(t *testing.T) {
	e := nuevoEscenario()
	_, err := e.uc.Trasladar(context.Background(), usuario, dto.TrasladoRequest{BodegaID: "b-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si no se pueden quitar los tomos de la lista el movimiento ya quedó hecho.
func TestTrasladar_FallaAlQuitarDeLista(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.lista.items[usuario] = map[string]bool{"t1": true}
	e.lista.removeErr = errors.New("redis caído")

	out, err := e.uc.Trasladar(context.Background(), usuario, dto.TrasladoRequest{BodegaID: bodegaID})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Tomos)
}

// Un tomo agregado mientras corre el traslado sigue en la lista.
func TestTrasladar_ConservaTomosAgregadosDurante(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.tomo("t2", 2, true)
	e.lista.items[usuario] = map[string]bool{"t1": true}
	e.tx.durante = func() { e.lista.items[usuario]["t2"] = true }

	out, err := e.uc.Trasladar(context.Background(), usuario, dto.TrasladoRequest{BodegaID: bodegaID})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Tomos)
	assert.Equal(t, []string{"t1"}, e.tomos.liberados)
	assert.Equal(t, map[string]bool{"t2": true}, e.lista.items[usuario])
}

func TestEgresar(t *testing.T) {
	e := nuevoEscenario()
	e.tomo("t1", 1, true)
	e.lista.items[usuario] = map[string]bool{"t1": true}

	out, err := e.uc.Egresar(context.Background(), usuario, dto.EgresoRequest{
		SolicitanteID: "s-1", MotivoID: "m-1", Comentario: "auditoría",
	})
	require.NoError(t, err)
	assert.Equal(t, "1 tomo egresados por solicitud", out.Message)
	assert.Contains(t, e.tomos.liberarCm, "Nombre: \tJUAN LOPEZ")
	assert.Contains(t, e.tomos.liberarCm, "Comentario: \tauditoría")

	require.Len(t, e.correos.encolados, 1)
	assert.Equal(t, []string{"archivo@banco.com", "juan@banco.com"}, e.correos.encolados[0].Destinatarios)
}

func TestEgresar_SolicitanteDeOtraArea(t *testing.T) {
	e := nuevoEscenario()
	e.sol.Area = "FHA"
	_, err := e.uc.Egresar(context.Background(), usuario, dto.EgresoRequest{SolicitanteID: "s-1", MotivoID: "m-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Solicitante no válido para expedientes", domain.Message(err))
}

func TestEgresar_MotivoInactivo(t *testing.T) {
	e := nuevoEscenario()
	e.mot.Vigente = false
	_, err := e.uc.Egresar(context.Background(), usuario, dto.EgresoRequest{SolicitanteID: "s-1", MotivoID: "m-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
