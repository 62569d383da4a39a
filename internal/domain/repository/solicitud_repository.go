package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// SolicitanteRepository persistencia de solicitantes.
type SolicitanteRepository interface {
	Create(ctx context.Context, s *entity.Solicitante) error
	Update(ctx context.Context, s *entity.Solicitante) error
	GetByID(ctx context.Context, id string) (*entity.Solicitante, error)
	// List busca por código exacto si Q es numérico, si no por nombre.
	List(ctx context.Context, f Filtro, area string) ([]*entity.Solicitante, int, error)
}

// MotivoRepository persistencia de motivos de solicitud.
type MotivoRepository interface {
	Create(ctx context.Context, m *entity.Motivo) error
	Update(ctx context.Context, m *entity.Motivo) error
	GetByID(ctx context.Context, id string) (*entity.Motivo, error)
	List(ctx context.Context, f Filtro, area string) ([]*entity.Motivo, int, error)
}

// DocumentoFHARepository persistencia de documentos FHA.
type DocumentoFHARepository interface {
	Create(ctx context.Context, d *entity.DocumentoFHA) error
	Update(ctx context.Context, d *entity.DocumentoFHA) error
	GetByID(ctx context.Context, id string) (*entity.DocumentoFHA, error)
	ListByCredito(ctx context.Context, creditoID string) ([]*entity.DocumentoFHA, error)
	Exists(ctx context.Context, creditoID, tipo, numero string) (bool, error)
}

// SolicitudFHARepository persistencia de solicitudes FHA.
type SolicitudFHARepository interface {
	Create(ctx context.Context, s *entity.SolicitudFHA) error
	Update(ctx context.Context, s *entity.SolicitudFHA) error
	GetByID(ctx context.Context, id string) (*entity.SolicitudFHA, error)
	// ActivaPorDocumento devuelve la solicitud vigente del documento, o nil.
	ActivaPorDocumento(ctx context.Context, documentoID string) (*entity.SolicitudFHA, error)
	ListAbiertas(ctx context.Context, f Filtro) ([]*entity.SolicitudFHA, int, error)
	ListByCredito(ctx context.Context, creditoID string) ([]*entity.SolicitudFHA, error)
}
