package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// CreditoRepository define el puerto de persistencia para Credito (DIP).
type CreditoRepository interface {
	Create(ctx context.Context, c *entity.Credito) error
	Update(ctx context.Context, c *entity.Credito) error
	GetByID(ctx context.Context, id string) (*entity.Credito, error)
	GetByNumero(ctx context.Context, numero string) (*entity.Credito, error)
	// List filtra por prefijo del número.
	List(ctx context.Context, f Filtro) ([]*entity.Credito, int, error)
	SetEscaneado(ctx context.Context, id string) error
	// ExistentesPorNumero devuelve numero -> id de los créditos que ya existen.
	ExistentesPorNumero(ctx context.Context, numeros []string) (map[string]string, error)
	InsertMany(ctx context.Context, rows []*entity.Credito) (int64, error)
}

// ReferenciaRepository tablas de referencia de créditos.
type ReferenciaRepository interface {
	ListClientes(ctx context.Context, f Filtro) ([]*entity.Cliente, int, error)
	GetCliente(ctx context.Context, id string) (*entity.Cliente, error)
	CreateCliente(ctx context.Context, c *entity.Cliente) error
	UpdateCliente(ctx context.Context, c *entity.Cliente) error

	ListMonedas(ctx context.Context, f Filtro) ([]*entity.Moneda, int, error)
	GetMoneda(ctx context.Context, id string) (*entity.Moneda, error)
	CreateMoneda(ctx context.Context, m *entity.Moneda) error
	UpdateMoneda(ctx context.Context, m *entity.Moneda) error

	ListProductos(ctx context.Context, f Filtro) ([]*entity.Producto, int, error)
	GetProducto(ctx context.Context, id string) (*entity.Producto, error)
	CreateProducto(ctx context.Context, p *entity.Producto) error
	UpdateProducto(ctx context.Context, p *entity.Producto) error

	ListOficinas(ctx context.Context, f Filtro) ([]*entity.Oficina, int, error)
	GetOficina(ctx context.Context, id string) (*entity.Oficina, error)
	CreateOficina(ctx context.Context, o *entity.Oficina) error
	UpdateOficina(ctx context.Context, o *entity.Oficina) error

	// Ensure* insertan los faltantes (ON CONFLICT DO NOTHING) y devuelven clave -> id de todos.
	EnsureClientes(ctx context.Context, rows []*entity.Cliente) (map[int64]string, error)
	EnsureOficinas(ctx context.Context, rows []*entity.Oficina) (map[int]string, error)
	EnsureMonedas(ctx context.Context, descripciones []string) (map[string]string, error)
	EnsureProductos(ctx context.Context, descripciones []string) (map[string]string, error)
}
