package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// BodegaFiltro listado de bodegas visible para un usuario.
type BodegaFiltro struct {
	Filtro
	// UsuarioID restringe a bodegas donde el usuario es personal o encargado; vacío = todas.
	UsuarioID string
}

// BodegaRepository define el puerto de persistencia para Bodega (DIP).
type BodegaRepository interface {
	Create(ctx context.Context, b *entity.Bodega) error
	Update(ctx context.Context, b *entity.Bodega) error
	// GetByID devuelve la bodega con su personal y encargado cargados.
	GetByID(ctx context.Context, id string) (*entity.Bodega, error)
	List(ctx context.Context, f BodegaFiltro) ([]*entity.Bodega, int, error)
	SetVigente(ctx context.Context, id string, vigente bool) error
	SetPersonal(ctx context.Context, bodegaID string, userIDs []string) error
	EsPersonal(ctx context.Context, bodegaID, userID string) (bool, error)
	// Accesible indica si el usuario es personal o encargado.
	Accesible(ctx context.Context, bodegaID, userID string) (bool, error)
}
