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

type tipoLicenciaRepo struct {
	repository.TipoLicenciaRepository
	tipos map[string]*entity.TipoLicencia
}

func (r *tipoLicenciaRepo) GetByID(_ context.Context, id string) (*entity.TipoLicencia, error) {
	return r.tipos[id], nil
}

func (r *tipoLicenciaRepo) Update(_ context.Context, t *entity.TipoLicencia) error {
	r.tipos[t.ID] = t
	return nil
}

// licenciaRepo suma las asignadas del tipo al crear, como el conteo de la consulta real.
type licenciaRepo struct {
	repository.LicenciaRepository
	tipos     *tipoLicenciaRepo
	licencias map[string]*entity.Licencia
}

func (r *licenciaRepo) Create(_ context.Context, l *entity.Licencia) error {
	r.licencias[l.ID] = l
	r.tipos.tipos[l.TipoLicenciaID].Asignadas++
	return nil
}

func (r *licenciaRepo) Update(_ context.Context, l *entity.Licencia) error {
	r.licencias[l.ID] = l
	return nil
}

func (r *licenciaRepo) GetByID(_ context.Context, id string) (*entity.Licencia, error) {
	return r.licencias[id], nil
}

type permisoRepo struct {
	repository.PermisoRepository
	objetos  map[string]bool
	permisos map[string]*entity.Permiso
}

func (r *permisoRepo) ObjetoExiste(_ context.Context, tipo, id string) (bool, error) {
	return r.objetos[tipo+"/"+id], nil
}

func (r *permisoRepo) Create(_ context.Context, p *entity.Permiso) error {
	r.permisos[p.ID] = p
	return nil
}

func (r *permisoRepo) GetByID(_ context.Context, id string) (*entity.Permiso, error) {
	p := r.permisos[id]
	if p != nil {
		p.ObjetoNombre = "VENTAS"
	}
	return p, nil
}

type licenciaTx struct {
	tipos     *tipoLicenciaRepo
	licencias *licenciaRepo
	llamadas  int
}

func (t *licenciaTx) RunLicencias(_ context.Context, fn func(repository.TipoLicenciaRepository, repository.LicenciaRepository) error) error {
	t.llamadas++
	return fn(t.tipos, t.licencias)
}

const (
	tipoPro   = "11111111-1111-1111-1111-111111111111"
	tipoBasic = "22222222-2222-2222-2222-222222222222"
)

func licenciasUC() (*usecase.LicenciaUseCase, *licenciaTx, *permisoRepo) {
	tipos := &tipoLicenciaRepo{tipos: map[string]*entity.TipoLicencia{
		tipoPro:   {ID: tipoPro, Descripcion: "PROFESSIONAL", Cantidad: 1},
		tipoBasic: {ID: tipoBasic, Descripcion: "ANALYZER", Cantidad: 5},
	}}
	licencias := &licenciaRepo{tipos: tipos, licencias: map[string]*entity.Licencia{}}
	permisos := &permisoRepo{objetos: map[string]bool{}, permisos: map[string]*entity.Permiso{}}
	tx := &licenciaTx{tipos: tipos, licencias: licencias}
	return usecase.NewLicenciaUseCase(tx, tipos, licencias, permisos), tx, permisos
}

func licenciaReq(tipo string) dto.LicenciaRequest {
	return dto.LicenciaRequest{Codigo: 4521, TipoUsuario: entity.TipoUsuarioBDR, Nombre: "maría gómez", TipoLicenciaID: tipo}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cupo por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLicencia_RespetaCupo(t *testing.T) {
	uc, tx, _ := licenciasUC()
	ctx := context.Background()

	out, err := uc.CreateLicencia(ctx, licenciaReq(tipoPro))
	require.NoError(t, err)
	assert.Equal(t, "MARÍA GÓMEZ", out.Nombre)
	assert.Equal(t, "PROFESSIONAL", out.TipoLicenciaDsc)
	assert.Equal(t, "gfbanrural/usr004521", out.UsuarioAD)
	assert.Equal(t, 1, tx.llamadas)

	_, err = uc.CreateLicencia(ctx, licenciaReq(tipoPro))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "No hay licencias disponibles", domain.Message(err))
}

func TestCreateLicencia_TipoUsuarioInvalido(t *testing.T) {
	uc, tx, _ := licenciasUC()
	in := licenciaReq(tipoPro)
	in.TipoUsuario = "XXX"

	_, err := uc.CreateLicencia(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, tx.llamadas, "no debe abrir transacción")
}

func TestCreateLicencia_TipoInexistente(t *testing.T) {
	uc, _, _ := licenciasUC()
	_, err := uc.CreateLicencia(context.Background(), licenciaReq("33333333-3333-3333-3333-333333333333"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Cambiar al tipo sin cupo se rechaza; mantener el tipo no consume cupo.
func TestUpdateLicencia_CambioDeTipo(t *testing.T) {
	uc, _, _ := licenciasUC()
	ctx := context.Background()

	_, err := uc.CreateLicencia(ctx, licenciaReq(tipoPro))
	require.NoError(t, err)
	basica, err := uc.CreateLicencia(ctx, licenciaReq(tipoBasic))
	require.NoError(t, err)

	_, err = uc.UpdateLicencia(ctx, basica.ID, licenciaReq(tipoPro))
	assert.ErrorIs(t, err, domain.ErrConflict)

	in := licenciaReq(tipoBasic)
	in.Gerencia = "riesgos"
	out, err := uc.UpdateLicencia(ctx, basica.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "RIESGOS", out.Gerencia)
	assert.Equal(t, "ANALYZER", out.TipoLicenciaDsc)
}

func TestUpdateTipo_NoBajaDeAsignadas(t *testing.T) {
	uc, _, _ := licenciasUC()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.CreateLicencia(ctx, licenciaReq(tipoBasic))
		require.NoError(t, err)
	}

	_, err := uc.UpdateTipo(ctx, tipoBasic, dto.TipoLicenciaRequest{Descripcion: "analyzer", Cantidad: 2})
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err := uc.UpdateTipo(ctx, tipoBasic, dto.TipoLicenciaRequest{Descripcion: "analyzer", Cantidad: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Disponibles)
	assert.Equal(t, 3, out.Asignadas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePermiso(t *testing.T) {
	uc, _, permisos := licenciasUC()
	ctx := context.Background()
	lic, err := uc.CreateLicencia(ctx, licenciaReq(tipoBasic))
	require.NoError(t, err)

	stream := "44444444-4444-4444-4444-444444444444"
	_, err = uc.CreatePermiso(ctx, dto.PermisoRequest{LicenciaID: lic.ID, TipoObjeto: entity.ObjetoStream, ObjetoID: stream})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el objeto aún no existe")

	permisos.objetos[entity.ObjetoStream+"/"+stream] = true
	out, err := uc.CreatePermiso(ctx, dto.PermisoRequest{LicenciaID: lic.ID, TipoObjeto: entity.ObjetoStream, ObjetoID: stream})
	require.NoError(t, err)
	assert.Equal(t, "VENTAS", out.ObjetoNombre)
	assert.Len(t, permisos.permisos, 1)
}

func TestCreatePermiso_TipoObjetoInvalido(t *testing.T) {
	uc, _, _ := licenciasUC()
	_, err := uc.CreatePermiso(context.Background(), dto.PermisoRequest{LicenciaID: "x", TipoObjeto: "Hoja", ObjetoID: "y"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestObjetos_TipoInvalido(t *testing.T) {
	uc, _, _ := licenciasUC()
	_, err := uc.Objetos(context.Background(), "Hoja")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
