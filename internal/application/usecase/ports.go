package usecase

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// BodegaTxRunner guarda la bodega y su personal juntos.
type BodegaTxRunner interface {
	RunBodega(ctx context.Context, fn func(bodegaRepo repository.BodegaRepository) error) error
}

// EstructuraTxRunner ejecuta la generación de estructura en una sola transacción.
type EstructuraTxRunner interface {
	RunEstructura(ctx context.Context, fn func(estructuraRepo repository.EstructuraRepository) error) error
}

// LicenciaTxRunner serializa la asignación de licencias contra el cupo del tipo.
type LicenciaTxRunner interface {
	RunLicencias(ctx context.Context, fn func(
		tipoRepo repository.TipoLicenciaRepository,
		licenciaRepo repository.LicenciaRepository,
	) error) error
}
