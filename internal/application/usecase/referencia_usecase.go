package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// ReferenciaUseCase mantenimiento de clientes, monedas, productos y oficinas.
type ReferenciaUseCase struct {
	repo repository.ReferenciaRepository
}

// NewReferenciaUseCase construye el caso de uso.
func NewReferenciaUseCase(repo repository.ReferenciaRepository) *ReferenciaUseCase {
	return &ReferenciaUseCase{repo: repo}
}

func filtro(page dto.PageRequest) repository.Filtro {
	page.DefaultPage()
	return repository.Filtro{Q: page.Q, Limit: page.Limit, Offset: page.Offset}
}

func pagina(f repository.Filtro, total int) dto.PageResponse {
	return dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}
}

func mapList[E any, R any](list []E, f func(E) R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, f(e))
	}
	return out
}

// ─── Clientes ────────────────────────────────────────────────────────────────

func (uc *ReferenciaUseCase) ListClientes(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.ClienteResponse], error) {
	f := filtro(page)
	list, total, err := uc.repo.ListClientes(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.ClienteResponse]{Items: mapList(list, toClienteResponse), Page: pagina(f, total)}, nil
}

func (uc *ReferenciaUseCase) CreateCliente(ctx context.Context, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c := &entity.Cliente{ID: uuid.New().String(), Codigo: in.Codigo, Nombre: texto.Mayusculas(in.Nombre)}
	if err := uc.repo.CreateCliente(ctx, c); err != nil {
		return nil, err
	}
	r := toClienteResponse(c)
	return &r, nil
}

func (uc *ReferenciaUseCase) UpdateCliente(ctx context.Context, id string, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Codigo = in.Codigo
	c.Nombre = texto.Mayusculas(in.Nombre)
	if err := uc.repo.UpdateCliente(ctx, c); err != nil {
		return nil, err
	}
	r := toClienteResponse(c)
	return &r, nil
}

// ─── Monedas ─────────────────────────────────────────────────────────────────

func (uc *ReferenciaUseCase) ListMonedas(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.MonedaResponse], error) {
	f := filtro(page)
	list, total, err := uc.repo.ListMonedas(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.MonedaResponse]{Items: mapList(list, toMonedaResponse), Page: pagina(f, total)}, nil
}

func (uc *ReferenciaUseCase) CreateMoneda(ctx context.Context, in dto.MonedaRequest) (*dto.MonedaResponse, error) {
	m := &entity.Moneda{ID: uuid.New().String(), Descripcion: texto.Mayusculas(in.Descripcion), Simbolo: in.Simbolo}
	if err := uc.repo.CreateMoneda(ctx, m); err != nil {
		return nil, err
	}
	r := toMonedaResponse(m)
	return &r, nil
}

func (uc *ReferenciaUseCase) UpdateMoneda(ctx context.Context, id string, in dto.MonedaRequest) (*dto.MonedaResponse, error) {
	m, err := uc.repo.GetMoneda(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Descripcion = texto.Mayusculas(in.Descripcion)
	m.Simbolo = in.Simbolo
	if err := uc.repo.UpdateMoneda(ctx, m); err != nil {
		return nil, err
	}
	r := toMonedaResponse(m)
	return &r, nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (uc *ReferenciaUseCase) ListProductos(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.ProductoResponse], error) {
	f := filtro(page)
	list, total, err := uc.repo.ListProductos(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.ProductoResponse]{Items: mapList(list, toProductoResponse), Page: pagina(f, total)}, nil
}

func (uc *ReferenciaUseCase) CreateProducto(ctx context.Context, in dto.ProductoRequest) (*dto.ProductoResponse, error) {
	p := &entity.Producto{ID: uuid.New().String(), Descripcion: texto.Mayusculas(in.Descripcion)}
	if err := uc.repo.CreateProducto(ctx, p); err != nil {
		return nil, err
	}
	r := toProductoResponse(p)
	return &r, nil
}

func (uc *ReferenciaUseCase) UpdateProducto(ctx context.Context, id string, in dto.ProductoRequest) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Descripcion = texto.Mayusculas(in.Descripcion)
	if err := uc.repo.UpdateProducto(ctx, p); err != nil {
		return nil, err
	}
	r := toProductoResponse(p)
	return &r, nil
}

// ─── Oficinas ────────────────────────────────────────────────────────────────

func (uc *ReferenciaUseCase) ListOficinas(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.OficinaResponse], error) {
	f := filtro(page)
	list, total, err := uc.repo.ListOficinas(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.OficinaResponse]{Items: mapList(list, toOficinaResponse), Page: pagina(f, total)}, nil
}

func (uc *ReferenciaUseCase) CreateOficina(ctx context.Context, in dto.OficinaRequest) (*dto.OficinaResponse, error) {
	o := &entity.Oficina{ID: uuid.New().String(), Numero: in.Numero, Descripcion: texto.Mayusculas(in.Descripcion)}
	if err := uc.repo.CreateOficina(ctx, o); err != nil {
		return nil, err
	}
	r := toOficinaResponse(o)
	return &r, nil
}

func (uc *ReferenciaUseCase) UpdateOficina(ctx context.Context, id string, in dto.OficinaRequest) (*dto.OficinaResponse, error) {
	o, err := uc.repo.GetOficina(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	o.Numero = in.Numero
	o.Descripcion = texto.Mayusculas(in.Descripcion)
	if err := uc.repo.UpdateOficina(ctx, o); err != nil {
		return nil, err
	}
	r := toOficinaResponse(o)
	return &r, nil
}

func toClienteResponse(c *entity.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{ID: c.ID, Codigo: c.Codigo, Nombre: c.Nombre}
}

func toMonedaResponse(m *entity.Moneda) dto.MonedaResponse {
	return dto.MonedaResponse{ID: m.ID, Descripcion: m.Descripcion, Simbolo: m.Simbolo}
}

func toProductoResponse(p *entity.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{ID: p.ID, Descripcion: p.Descripcion}
}

func toOficinaResponse(o *entity.Oficina) dto.OficinaResponse {
	return dto.OficinaResponse{ID: o.ID, Numero: o.Numero, Descripcion: o.Descripcion, Display: o.String()}
}
