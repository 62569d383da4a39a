package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// QlikUseCase catálogo de streams, modelos, tipos de dato y orígenes de datos.
type QlikUseCase struct {
	streamRepo  repository.StreamRepository
	modeloRepo  repository.ModeloRepository
	tipoRepo    repository.TipoDatoRepository
	origenRepo  repository.OrigenDatoRepository
	permisoRepo repository.PermisoRepository
	proxy       string
}

// NewQlikUseCase construye el caso de uso; proxy es la URL base del hub de Qlik Sense.
func NewQlikUseCase(
	streamRepo repository.StreamRepository,
	modeloRepo repository.ModeloRepository,
	tipoRepo repository.TipoDatoRepository,
	origenRepo repository.OrigenDatoRepository,
	permisoRepo repository.PermisoRepository,
	proxy string,
) *QlikUseCase {
	return &QlikUseCase{
		streamRepo:  streamRepo,
		modeloRepo:  modeloRepo,
		tipoRepo:    tipoRepo,
		origenRepo:  origenRepo,
		permisoRepo: permisoRepo,
		proxy:       proxy,
	}
}

// ─── Streams ─────────────────────────────────────────────────────────────────

func (uc *QlikUseCase) ListStreams(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.StreamResponse], error) {
	f := filtro(page)
	list, total, err := uc.streamRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.StreamResponse]{Items: mapList(list, uc.toStreamResponse), Page: pagina(f, total)}, nil
}

// GetStream devuelve el stream con sus modelos y permisos.
func (uc *QlikUseCase) GetStream(ctx context.Context, id string) (*dto.StreamDetalleResponse, error) {
	s, err := uc.streamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	modelos, err := uc.modeloRepo.ListByStream(ctx, id)
	if err != nil {
		return nil, err
	}
	permisos, err := uc.permisoRepo.ListByObjeto(ctx, entity.ObjetoStream, id)
	if err != nil {
		return nil, err
	}
	return &dto.StreamDetalleResponse{
		StreamResponse: uc.toStreamResponse(s),
		Modelos:        mapList(modelos, uc.toModeloResponse),
		Permisos:       mapList(permisos, toPermisoResponse),
	}, nil
}

func (uc *QlikUseCase) CreateStream(ctx context.Context, in dto.StreamRequest) (*dto.StreamResponse, error) {
	s := &entity.Stream{ID: uuid.New().String(), Nombre: strings.TrimSpace(in.Nombre), QlikID: in.QlikID}
	if err := uc.streamRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	r := uc.toStreamResponse(s)
	return &r, nil
}

func (uc *QlikUseCase) UpdateStream(ctx context.Context, id string, in dto.StreamRequest) (*dto.StreamResponse, error) {
	s, err := uc.streamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Nombre = strings.TrimSpace(in.Nombre)
	s.QlikID = in.QlikID
	if err := uc.streamRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	r := uc.toStreamResponse(s)
	return &r, nil
}

// DeleteStream elimina el stream, sus modelos y los permisos de ambos.
func (uc *QlikUseCase) DeleteStream(ctx context.Context, id string) error {
	return uc.streamRepo.Delete(ctx, id)
}

// AgregarModelo registra un modelo dentro del stream; el nombre no se repite en el stream.
func (uc *QlikUseCase) AgregarModelo(ctx context.Context, streamID string, in dto.ModeloRequest) (*dto.ModeloResponse, error) {
	in.StreamID = streamID
	return uc.CreateModelo(ctx, in)
}

// ─── Modelos ─────────────────────────────────────────────────────────────────

func (uc *QlikUseCase) ListModelos(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.ModeloResponse], error) {
	f := filtro(page)
	list, total, err := uc.modeloRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.ModeloResponse]{Items: mapList(list, uc.toModeloResponse), Page: pagina(f, total)}, nil
}

// GetModelo devuelve el modelo con los orígenes que usa, los que genera y sus permisos.
func (uc *QlikUseCase) GetModelo(ctx context.Context, id string) (*dto.ModeloDetalleResponse, error) {
	m, err := uc.modeloRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	usa, err := uc.origenRepo.ListUsosByModelo(ctx, id)
	if err != nil {
		return nil, err
	}
	genera, err := uc.origenRepo.ListGeneradosPor(ctx, id)
	if err != nil {
		return nil, err
	}
	permisos, err := uc.permisoRepo.ListByObjeto(ctx, entity.ObjetoModelo, id)
	if err != nil {
		return nil, err
	}
	return &dto.ModeloDetalleResponse{
		ModeloResponse: uc.toModeloResponse(m),
		Usa:            mapList(usa, toUsoOrigenResponse),
		Genera:         mapList(genera, toOrigenDatoResponse),
		Permisos:       mapList(permisos, toPermisoResponse),
	}, nil
}

func (uc *QlikUseCase) CreateModelo(ctx context.Context, in dto.ModeloRequest) (*dto.ModeloResponse, error) {
	if in.StreamID == "" {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "El stream es obligatorio")
	}
	s, err := uc.streamRepo.GetByID(ctx, in.StreamID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	nombre := strings.TrimSpace(in.Nombre)
	existe, err := uc.modeloRepo.ExistsInStream(ctx, s.ID, nombre)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.NewBusinessError(domain.ErrDuplicate, "Ya esta registrado el modelo")
	}
	m := &entity.Modelo{
		ID:           uuid.New().String(),
		Nombre:       nombre,
		Descripcion:  strings.TrimSpace(in.Descripcion),
		QlikID:       in.QlikID,
		StreamID:     s.ID,
		StreamNombre: s.Nombre,
	}
	if err := uc.modeloRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	r := uc.toModeloResponse(m)
	return &r, nil
}

func (uc *QlikUseCase) UpdateModelo(ctx context.Context, id string, in dto.ModeloRequest) (*dto.ModeloResponse, error) {
	m, err := uc.modeloRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Nombre = strings.TrimSpace(in.Nombre)
	m.Descripcion = strings.TrimSpace(in.Descripcion)
	m.QlikID = in.QlikID
	if in.StreamID != "" {
		m.StreamID = in.StreamID
	}
	if err := uc.modeloRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return uc.modelo(ctx, id)
}

func (uc *QlikUseCase) modelo(ctx context.Context, id string) (*dto.ModeloResponse, error) {
	m, err := uc.modeloRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	r := uc.toModeloResponse(m)
	return &r, nil
}

// DeleteModelo elimina el modelo y sus permisos.
func (uc *QlikUseCase) DeleteModelo(ctx context.Context, id string) error {
	return uc.modeloRepo.Delete(ctx, id)
}

// UsaOrigen registra que el modelo consume el origen de datos.
func (uc *QlikUseCase) UsaOrigen(ctx context.Context, modeloID string, in dto.UsaOrigenRequest) (*dto.UsoOrigenResponse, error) {
	m, err := uc.modeloRepo.GetByID(ctx, modeloID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	o, err := uc.origenRepo.GetByID(ctx, in.OrigenDatoID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	existe, err := uc.origenRepo.ExistsUso(ctx, m.ID, o.ID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.NewBusinessError(domain.ErrDuplicate,
			fmt.Sprintf("Ya esta registrado el origen %q a este modelo", o.Nombre))
	}
	u := &entity.OrigenDatoModelo{
		ID:               uuid.New().String(),
		ModeloID:         m.ID,
		ModeloNombre:     m.Nombre,
		OrigenDatoID:     o.ID,
		OrigenDatoNombre: o.Nombre,
	}
	if err := uc.origenRepo.CreateUso(ctx, u); err != nil {
		return nil, err
	}
	r := toUsoOrigenResponse(u)
	return &r, nil
}

// GeneraOrigen registra un origen de datos producido por el modelo.
// El tipo de dato debe estar vigente y admitir orígenes generados por modelos.
func (uc *QlikUseCase) GeneraOrigen(ctx context.Context, modeloID string, in dto.GeneraOrigenRequest) (*dto.OrigenDatoResponse, error) {
	m, err := uc.modeloRepo.GetByID(ctx, modeloID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	t, err := uc.tipoVigente(ctx, in.TipoDatoID, true)
	if err != nil {
		return nil, err
	}
	o := &entity.OrigenDato{
		ID:             uuid.New().String(),
		Nombre:         strings.TrimSpace(in.Nombre),
		Vigente:        true,
		TipoDatoID:     t.ID,
		TipoDatoNombre: t.Nombre,
		ModeloID:       &m.ID,
	}
	if err := uc.createOrigen(ctx, o); err != nil {
		return nil, err
	}
	r := toOrigenDatoResponse(o)
	return &r, nil
}

// DeleteUso quita la relación modelo-origen.
func (uc *QlikUseCase) DeleteUso(ctx context.Context, id string) error {
	u, err := uc.origenRepo.GetUso(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.origenRepo.DeleteUso(ctx, id)
}

// ─── Tipos de dato ───────────────────────────────────────────────────────────

func (uc *QlikUseCase) ListTiposDato(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.TipoDatoResponse], error) {
	f := filtro(page)
	list, total, err := uc.tipoRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.TipoDatoResponse]{Items: mapList(list, toTipoDatoResponse), Page: pagina(f, total)}, nil
}

// GetTipoDato devuelve el tipo con sus orígenes vigentes y permisos.
func (uc *QlikUseCase) GetTipoDato(ctx context.Context, id string) (*dto.TipoDatoDetalleResponse, error) {
	t, err := uc.tipoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	origenes, err := uc.origenRepo.ListVigentesByTipo(ctx, id)
	if err != nil {
		return nil, err
	}
	permisos, err := uc.permisoRepo.ListByObjeto(ctx, entity.ObjetoTipoDato, id)
	if err != nil {
		return nil, err
	}
	return &dto.TipoDatoDetalleResponse{
		TipoDatoResponse: toTipoDatoResponse(t),
		Origenes:         mapList(origenes, toOrigenDatoResponse),
		Permisos:         mapList(permisos, toPermisoResponse),
	}, nil
}

func (uc *QlikUseCase) CreateTipoDato(ctx context.Context, in dto.TipoDatoRequest) (*dto.TipoDatoResponse, error) {
	t := &entity.TipoDato{ID: uuid.New().String(), Nombre: strings.TrimSpace(in.Nombre), OrigenModelo: in.OrigenModelo, Vigente: true}
	if in.Vigente != nil {
		t.Vigente = *in.Vigente
	}
	if err := uc.tipoRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	r := toTipoDatoResponse(t)
	return &r, nil
}

func (uc *QlikUseCase) UpdateTipoDato(ctx context.Context, id string, in dto.TipoDatoRequest) (*dto.TipoDatoResponse, error) {
	t, err := uc.tipoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Nombre = strings.TrimSpace(in.Nombre)
	t.OrigenModelo = in.OrigenModelo
	if in.Vigente != nil {
		t.Vigente = *in.Vigente
	}
	if err := uc.tipoRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	r := toTipoDatoResponse(t)
	return &r, nil
}

func (uc *QlikUseCase) DeleteTipoDato(ctx context.Context, id string) error {
	return uc.tipoRepo.Delete(ctx, id)
}

// tipoVigente exige un tipo de dato vigente cuyo OrigenModelo coincida con generado.
func (uc *QlikUseCase) tipoVigente(ctx context.Context, id string, generado bool) (*entity.TipoDato, error) {
	t, err := uc.tipoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.Vigente || t.OrigenModelo != generado {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Tipo de dato no válido para el origen")
	}
	return t, nil
}

// ─── Orígenes de datos ───────────────────────────────────────────────────────

func (uc *QlikUseCase) ListOrigenes(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.OrigenDatoResponse], error) {
	f := filtro(page)
	list, total, err := uc.origenRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.OrigenDatoResponse]{Items: mapList(list, toOrigenDatoResponse), Page: pagina(f, total)}, nil
}

// PorTipo orígenes vigentes del tipo, ordenados por nombre.
func (uc *QlikUseCase) PorTipo(ctx context.Context, tipoDatoID string) ([]dto.OrigenDatoResponse, error) {
	list, err := uc.origenRepo.ListVigentesByTipo(ctx, tipoDatoID)
	if err != nil {
		return nil, err
	}
	return mapList(list, toOrigenDatoResponse), nil
}

// GetOrigen devuelve el origen con los modelos que lo usan.
func (uc *QlikUseCase) GetOrigen(ctx context.Context, id string) (*dto.OrigenDatoDetalleResponse, error) {
	o, err := uc.origenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	usos, err := uc.origenRepo.ListUsosByOrigen(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrigenDatoDetalleResponse{
		OrigenDatoResponse: toOrigenDatoResponse(o),
		Modelos:            mapList(usos, toUsoOrigenResponse),
	}, nil
}

// CreateOrigen registra un origen independiente; el tipo no puede ser de orígenes generados.
func (uc *QlikUseCase) CreateOrigen(ctx context.Context, in dto.OrigenDatoRequest) (*dto.OrigenDatoResponse, error) {
	t, err := uc.tipoVigente(ctx, in.TipoDatoID, false)
	if err != nil {
		return nil, err
	}
	o := &entity.OrigenDato{
		ID:             uuid.New().String(),
		Nombre:         strings.TrimSpace(in.Nombre),
		Vigente:        true,
		TipoDatoID:     t.ID,
		TipoDatoNombre: t.Nombre,
	}
	if in.Vigente != nil {
		o.Vigente = *in.Vigente
	}
	if err := uc.createOrigen(ctx, o); err != nil {
		return nil, err
	}
	r := toOrigenDatoResponse(o)
	return &r, nil
}

func (uc *QlikUseCase) createOrigen(ctx context.Context, o *entity.OrigenDato) error {
	existe, err := uc.origenRepo.Exists(ctx, o.Nombre, o.TipoDatoID)
	if err != nil {
		return err
	}
	if existe {
		return domain.NewBusinessError(domain.ErrDuplicate,
			fmt.Sprintf("Ya existe el origen %q para el tipo %s", o.Nombre, o.TipoDatoNombre))
	}
	return uc.origenRepo.Create(ctx, o)
}

func (uc *QlikUseCase) UpdateOrigen(ctx context.Context, id string, in dto.OrigenDatoRequest) (*dto.OrigenDatoResponse, error) {
	o, err := uc.origenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if in.TipoDatoID != o.TipoDatoID {
		t, err := uc.tipoVigente(ctx, in.TipoDatoID, o.ModeloID != nil)
		if err != nil {
			return nil, err
		}
		o.TipoDatoID, o.TipoDatoNombre = t.ID, t.Nombre
	}
	o.Nombre = strings.TrimSpace(in.Nombre)
	if in.Vigente != nil {
		o.Vigente = *in.Vigente
	}
	if err := uc.origenRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	r := toOrigenDatoResponse(o)
	return &r, nil
}

func (uc *QlikUseCase) DeleteOrigen(ctx context.Context, id string) error {
	return uc.origenRepo.Delete(ctx, id)
}

// ─── Mapeo ───────────────────────────────────────────────────────────────────

func (uc *QlikUseCase) toStreamResponse(s *entity.Stream) dto.StreamResponse {
	return dto.StreamResponse{ID: s.ID, Nombre: s.Nombre, QlikID: s.QlikID, ExternalURL: s.ExternalURL(uc.proxy)}
}

func (uc *QlikUseCase) toModeloResponse(m *entity.Modelo) dto.ModeloResponse {
	return dto.ModeloResponse{
		ID:           m.ID,
		Nombre:       m.Nombre,
		Descripcion:  m.Descripcion,
		Resumen:      m.Resumen(),
		QlikID:       m.QlikID,
		StreamID:     m.StreamID,
		StreamNombre: m.StreamNombre,
		ExternalURL:  m.ExternalURL(uc.proxy),
	}
}

func toTipoDatoResponse(t *entity.TipoDato) dto.TipoDatoResponse {
	return dto.TipoDatoResponse{ID: t.ID, Nombre: t.Nombre, OrigenModelo: t.OrigenModelo, Vigente: t.Vigente}
}

func toOrigenDatoResponse(o *entity.OrigenDato) dto.OrigenDatoResponse {
	return dto.OrigenDatoResponse{
		ID:             o.ID,
		Nombre:         o.Nombre,
		Vigente:        o.Vigente,
		TipoDatoID:     o.TipoDatoID,
		TipoDatoNombre: o.TipoDatoNombre,
		ModeloID:       o.ModeloID,
	}
}

func toUsoOrigenResponse(u *entity.OrigenDatoModelo) dto.UsoOrigenResponse {
	return dto.UsoOrigenResponse{
		ID:               u.ID,
		ModeloID:         u.ModeloID,
		ModeloNombre:     u.ModeloNombre,
		OrigenDatoID:     u.OrigenDatoID,
		OrigenDatoNombre: u.OrigenDatoNombre,
	}
}
