package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// EstructuraRepository persistencia de estantes, niveles, posiciones y cajas.
type EstructuraRepository interface {
	// Arbol devuelve los estantes de la bodega con niveles, posiciones y cajas,
	// ordenados por longitud de código, código y número.
	Arbol(ctx context.Context, bodegaID string) ([]*entity.Estante, error)
	// LockBodega serializa generaciones concurrentes sobre la misma bodega.
	LockBodega(ctx context.Context, bodegaID string) error

	InsertEstantes(ctx context.Context, rows []*entity.Estante) (int64, error)
	InsertNiveles(ctx context.Context, rows []*entity.Nivel) (int64, error)
	InsertPosiciones(ctx context.Context, rows []*entity.Posicion) (int64, error)
	InsertCajas(ctx context.Context, rows []*entity.Caja) (int64, error)

	GetEstante(ctx context.Context, id string) (*entity.Estante, *entity.Ubicacion, error)
	GetNivel(ctx context.Context, id string) (*entity.Nivel, *entity.Ubicacion, error)
	GetPosicion(ctx context.Context, id string) (*entity.Posicion, *entity.Ubicacion, error)
	GetCaja(ctx context.Context, id string) (*entity.Caja, error)
	// FindCaja busca por referencia; bodega y estante se comparan en mayúsculas.
	FindCaja(ctx context.Context, bodega, estante string, nivel, posicion, caja int) (*entity.Caja, error)

	UpdateEstante(ctx context.Context, e *entity.Estante) error
	UpdateNivel(ctx context.Context, n *entity.Nivel) error
	UpdatePosicion(ctx context.Context, p *entity.Posicion) error
	UpdateCaja(ctx context.Context, c *entity.Caja) error

	// CajasBajo devuelve las cajas vigentes bajo un nodo (estante, nivel o posición) ordenadas.
	CajasBajo(ctx context.Context, nodo string, id string) ([]*entity.Caja, error)
	CajasInhabilitadas(ctx context.Context, bodegaID string) ([]*entity.Caja, error)
}

// Nodos para CajasBajo.
const (
	NodoEstante  = "estante"
	NodoNivel    = "nivel"
	NodoPosicion = "posicion"
)
