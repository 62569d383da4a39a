package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// SolicitudUseCase solicitantes, motivos, documentos FHA y solicitudes de documentos.
type SolicitudUseCase struct {
	solicitanteRepo repository.SolicitanteRepository
	motivoRepo      repository.MotivoRepository
	documentoRepo   repository.DocumentoFHARepository
	solicitudRepo   repository.SolicitudFHARepository
}

// NewSolicitudUseCase construye el caso de uso.
func NewSolicitudUseCase(
	solicitanteRepo repository.SolicitanteRepository,
	motivoRepo repository.MotivoRepository,
	documentoRepo repository.DocumentoFHARepository,
	solicitudRepo repository.SolicitudFHARepository,
) *SolicitudUseCase {
	return &SolicitudUseCase{
		solicitanteRepo: solicitanteRepo,
		motivoRepo:      motivoRepo,
		documentoRepo:   documentoRepo,
		solicitudRepo:   solicitudRepo,
	}
}

// ─── Solicitantes ────────────────────────────────────────────────────────────

// ListSolicitantes busca por código exacto si q es numérico; area vacía lista todas.
func (uc *SolicitudUseCase) ListSolicitantes(ctx context.Context, page dto.PageRequest, area string) (*dto.ListResponse[dto.SolicitanteResponse], error) {
	f := filtro(page)
	list, total, err := uc.solicitanteRepo.List(ctx, f, area)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.SolicitanteResponse]{Items: mapList(list, toSolicitanteResponse), Page: pagina(f, total)}, nil
}

func (uc *SolicitudUseCase) GetSolicitante(ctx context.Context, id string) (*dto.SolicitanteResponse, error) {
	s, err := uc.solicitanteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	r := toSolicitanteResponse(s)
	return &r, nil
}

func (uc *SolicitudUseCase) CreateSolicitante(ctx context.Context, in dto.SolicitanteRequest) (*dto.SolicitanteResponse, error) {
	s := &entity.Solicitante{ID: uuid.New().String(), Vigente: true}
	aplicarSolicitante(s, in)
	if err := uc.solicitanteRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	r := toSolicitanteResponse(s)
	return &r, nil
}

func (uc *SolicitudUseCase) UpdateSolicitante(ctx context.Context, id string, in dto.SolicitanteRequest) (*dto.SolicitanteResponse, error) {
	s, err := uc.solicitanteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	aplicarSolicitante(s, in)
	if err := uc.solicitanteRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	r := toSolicitanteResponse(s)
	return &r, nil
}

func aplicarSolicitante(s *entity.Solicitante, in dto.SolicitanteRequest) {
	s.Codigo = in.Codigo
	s.Nombre = texto.Mayusculas(in.Nombre)
	s.Area = in.Area
	s.Extension = in.Extension
	s.Correo = in.Correo
	s.Gerencia = texto.Mayusculas(in.Gerencia)
	if in.Vigente != nil {
		s.Vigente = *in.Vigente
	}
}

// ─── Motivos ─────────────────────────────────────────────────────────────────

func (uc *SolicitudUseCase) ListMotivos(ctx context.Context, page dto.PageRequest, area string) (*dto.ListResponse[dto.MotivoResponse], error) {
	f := filtro(page)
	list, total, err := uc.motivoRepo.List(ctx, f, area)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.MotivoResponse]{Items: mapList(list, toMotivoResponse), Page: pagina(f, total)}, nil
}

func (uc *SolicitudUseCase) CreateMotivo(ctx context.Context, in dto.MotivoRequest) (*dto.MotivoResponse, error) {
	m := &entity.Motivo{ID: uuid.New().String(), Vigente: true}
	aplicarMotivo(m, in)
	if err := uc.motivoRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	r := toMotivoResponse(m)
	return &r, nil
}

func (uc *SolicitudUseCase) UpdateMotivo(ctx context.Context, id string, in dto.MotivoRequest) (*dto.MotivoResponse, error) {
	m, err := uc.motivoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	aplicarMotivo(m, in)
	if err := uc.motivoRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	r := toMotivoResponse(m)
	return &r, nil
}

func aplicarMotivo(m *entity.Motivo, in dto.MotivoRequest) {
	m.Nombre = texto.Mayusculas(in.Nombre)
	m.Area = in.Area
	m.Demanda = in.Demanda
	if in.Vigente != nil {
		m.Vigente = *in.Vigente
	}
}

// Demanda indica si el motivo requiere capturar el bufete.
func (uc *SolicitudUseCase) Demanda(ctx context.Context, id string) (*dto.DemandaResponse, error) {
	m, err := uc.motivoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.DemandaResponse{Demanda: m.Demanda}, nil
}

// ─── Documentos FHA ──────────────────────────────────────────────────────────

func (uc *SolicitudUseCase) GetDocumento(ctx context.Context, id string) (*dto.DocumentoFHAResponse, error) {
	d, err := uc.documentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	r := toDocumentoFHAResponse(d)
	return &r, nil
}

func (uc *SolicitudUseCase) CreateDocumento(ctx context.Context, in dto.DocumentoFHARequest) (*dto.DocumentoFHAResponse, error) {
	d := &entity.DocumentoFHA{ID: uuid.New().String(), Vigente: true}
	aplicarDocumento(d, in)
	if err := uc.documentoRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	r := toDocumentoFHAResponse(d)
	return &r, nil
}

func (uc *SolicitudUseCase) UpdateDocumento(ctx context.Context, id string, in dto.DocumentoFHARequest) (*dto.DocumentoFHAResponse, error) {
	d, err := uc.documentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	aplicarDocumento(d, in)
	if err := uc.documentoRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	r := toDocumentoFHAResponse(d)
	return &r, nil
}

func aplicarDocumento(d *entity.DocumentoFHA, in dto.DocumentoFHARequest) {
	d.CreditoID = in.CreditoID
	d.Tipo = in.Tipo
	d.Numero = texto.Mayusculas(in.Numero)
	d.Ubicacion = texto.Mayusculas(in.Ubicacion)
	d.Poliza = in.Poliza
	if in.Vigente != nil {
		d.Vigente = *in.Vigente
	}
}

// ─── Solicitudes FHA ─────────────────────────────────────────────────────────

// CrearSolicitud registra el préstamo de un documento. Solo se admite una solicitud vigente por documento.
func (uc *SolicitudUseCase) CrearSolicitud(ctx context.Context, userID string, in dto.SolicitudFHARequest) (*dto.SolicitudFHAResponse, error) {
	d, err := uc.documentoRepo.GetByID(ctx, in.DocumentoID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	activa, err := uc.solicitudRepo.ActivaPorDocumento(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if activa != nil {
		return nil, domain.NewBusinessError(domain.ErrSolicitudActiva, "El documento tiene una solicitud activa.")
	}
	sol, err := uc.solicitanteRepo.GetByID(ctx, in.SolicitanteID)
	if err != nil {
		return nil, err
	}
	if sol == nil || !sol.Vigente || sol.Area != entity.AreaFHA {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Solicitante no válido para FHA")
	}
	mot, err := uc.motivoRepo.GetByID(ctx, in.MotivoID)
	if err != nil {
		return nil, err
	}
	if mot == nil || !mot.Vigente || mot.Area != entity.AreaFHA {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Motivo no válido para FHA")
	}
	s := &entity.SolicitudFHA{
		ID:             uuid.New().String(),
		FechaSolicitud: time.Now(),
		Vigente:        true,
		DocumentoID:    d.ID,
		SolicitanteID:  sol.ID,
		MotivoID:       mot.ID,
		UsuarioID:      userID,
	}
	if mot.Demanda {
		s.Bufete = texto.Mayusculas(in.Bufete)
	}
	if err := uc.solicitudRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	r := toSolicitudFHAResponse(s)
	return &r, nil
}

// Abiertas lista las solicitudes vigentes que aún no salen de bóveda.
func (uc *SolicitudUseCase) Abiertas(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.SolicitudFHAResponse], error) {
	f := filtro(page)
	list, total, err := uc.solicitudRepo.ListAbiertas(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.SolicitudFHAResponse]{Items: mapList(list, toSolicitudFHAResponse), Page: pagina(f, total)}, nil
}

func (uc *SolicitudUseCase) GetSolicitud(ctx context.Context, id string) (*dto.SolicitudFHAResponse, error) {
	s, err := uc.solicitudRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	r := toSolicitudFHAResponse(s)
	return &r, nil
}

// ActualizarSolicitud registra las fechas del ciclo del documento; los campos nulos no cambian.
func (uc *SolicitudUseCase) ActualizarSolicitud(ctx context.Context, id string, in dto.ActualizarSolicitudFHARequest) (*dto.SolicitudFHAResponse, error) {
	s, err := uc.solicitudRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !s.Vigente {
		return nil, domain.NewBusinessError(domain.ErrConflict, "La solicitud está anulada")
	}
	if in.Bufete != nil {
		s.Bufete = texto.Mayusculas(*in.Bufete)
	}
	if in.PolizaEgreso != nil {
		s.PolizaEgreso = *in.PolizaEgreso
	}
	if in.FechaEgreso != nil {
		s.FechaEgreso = in.FechaEgreso
	}
	if in.FechaEntrega != nil {
		s.FechaEntrega = in.FechaEntrega
	}
	if in.FechaDevolucion != nil {
		s.FechaDevolucion = in.FechaDevolucion
	}
	if in.RegresoBoveda != nil {
		s.RegresoBoveda = in.RegresoBoveda
	}
	if err := uc.solicitudRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	r := toSolicitudFHAResponse(s)
	return &r, nil
}

// Anular deja la solicitud sin vigencia; el documento queda libre para una nueva.
func (uc *SolicitudUseCase) Anular(ctx context.Context, id string) error {
	s, err := uc.solicitudRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if !s.Vigente {
		return nil
	}
	s.Vigente = false
	return uc.solicitudRepo.Update(ctx, s)
}

func toSolicitanteResponse(s *entity.Solicitante) dto.SolicitanteResponse {
	return dto.SolicitanteResponse{
		ID:        s.ID,
		Codigo:    s.Codigo,
		Nombre:    s.Nombre,
		Area:      s.Area,
		Extension: s.Extension,
		Correo:    s.Correo,
		Gerencia:  s.Gerencia,
		Vigente:   s.Vigente,
	}
}

func toMotivoResponse(m *entity.Motivo) dto.MotivoResponse {
	return dto.MotivoResponse{ID: m.ID, Nombre: m.Nombre, Area: m.Area, Demanda: m.Demanda, Vigente: m.Vigente}
}

func toDocumentoFHAResponse(d *entity.DocumentoFHA) dto.DocumentoFHAResponse {
	return dto.DocumentoFHAResponse{
		ID:        d.ID,
		CreditoID: d.CreditoID,
		Tipo:      d.Tipo,
		Numero:    d.Numero,
		Ubicacion: d.Ubicacion,
		Poliza:    d.Poliza,
		Vigente:   d.Vigente,
	}
}

func toSolicitudFHAResponse(s *entity.SolicitudFHA) dto.SolicitudFHAResponse {
	return dto.SolicitudFHAResponse{
		ID:              s.ID,
		FechaSolicitud:  s.FechaSolicitud,
		Bufete:          s.Bufete,
		FechaEgreso:     s.FechaEgreso,
		PolizaEgreso:    s.PolizaEgreso,
		FechaEntrega:    s.FechaEntrega,
		FechaDevolucion: s.FechaDevolucion,
		RegresoBoveda:   s.RegresoBoveda,
		Vigente:         s.Vigente,
		Abierta:         s.Abierta(),
		DocumentoID:     s.DocumentoID,
		SolicitanteID:   s.SolicitanteID,
		MotivoID:        s.MotivoID,
		UsuarioID:       s.UsuarioID,
	}
}
