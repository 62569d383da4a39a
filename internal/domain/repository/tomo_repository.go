package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// TomoRepository define el puerto de persistencia para Tomo (DIP).
type TomoRepository interface {
	Create(ctx context.Context, t *entity.Tomo) error
	// Update guarda vigente, comentario, caja y usuario, y renueva fecha_modificacion.
	Update(ctx context.Context, t *entity.Tomo) error
	GetByID(ctx context.Context, id string) (*entity.Tomo, error)
	GetByReferencia(ctx context.Context, credito string, numero int) (*entity.Tomo, error)
	ListByCredito(ctx context.Context, creditoID string) ([]*entity.Tomo, error)
	// ListByCreditoForUpdate bloquea los tomos del crédito (SELECT FOR UPDATE).
	ListByCreditoForUpdate(ctx context.Context, creditoID string) ([]*entity.Tomo, error)
	ListByCaja(ctx context.Context, cajaID string) ([]*entity.Tomo, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Tomo, error)
	// Liberar saca de su caja los tomos indicados y registra comentario y usuario.
	Liberar(ctx context.Context, ids []string, comentario, usuarioID string) (int64, error)
}
