package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// CreditoUseCase consulta y mantenimiento de créditos.
type CreditoUseCase struct {
	repo          repository.CreditoRepository
	tomoRepo      repository.TomoRepository
	documentoRepo repository.DocumentoFHARepository
	solicitudRepo repository.SolicitudFHARepository
}

// NewCreditoUseCase construye el caso de uso.
func NewCreditoUseCase(
	repo repository.CreditoRepository,
	tomoRepo repository.TomoRepository,
	documentoRepo repository.DocumentoFHARepository,
	solicitudRepo repository.SolicitudFHARepository,
) *CreditoUseCase {
	return &CreditoUseCase{repo: repo, tomoRepo: tomoRepo, documentoRepo: documentoRepo, solicitudRepo: solicitudRepo}
}

// Create registra un crédito con fecha de ingreso actual.
func (uc *CreditoUseCase) Create(ctx context.Context, in dto.CreditoRequest) (*dto.CreditoResponse, error) {
	c := &entity.Credito{ID: uuid.New().String(), FechaIngreso: time.Now()}
	aplicarCredito(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.get(ctx, c.ID)
}

// Update reemplaza los datos del crédito; la fecha de ingreso no cambia.
func (uc *CreditoUseCase) Update(ctx context.Context, id string, in dto.CreditoRequest) (*dto.CreditoResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	aplicarCredito(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.get(ctx, id)
}

func aplicarCredito(c *entity.Credito, in dto.CreditoRequest) {
	c.Numero = texto.SinEspacios(in.Numero)
	c.Monto = in.Monto.Round(2)
	c.Escaneado = in.Escaneado
	c.FechaConcesion = in.FechaConcesion
	c.ClienteID = in.ClienteID
	c.MonedaID = in.MonedaID
	c.OficinaID = in.OficinaID
	c.ProductoID = in.ProductoID
	c.CreditoAnterior = texto.SinEspacios(in.CreditoAnterior)
}

func (uc *CreditoUseCase) get(ctx context.Context, id string) (*dto.CreditoResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	r := toCreditoResponse(c)
	return &r, nil
}

// List lista créditos cuyo número empieza por q, los más recientes primero.
func (uc *CreditoUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CreditoListResponse, error) {
	page.Q = texto.SinEspacios(page.Q)
	f := filtro(page)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.CreditoListResponse{Items: mapList(list, toCreditoResponse), Page: pagina(f, total)}, nil
}

// Buscar localiza un crédito por número; acepta la referencia de un tomo ("1234-2").
func (uc *CreditoUseCase) Buscar(ctx context.Context, q string) (*dto.CreditoDetalleResponse, error) {
	c, err := uc.repo.GetByNumero(ctx, archivo.NumeroCreditoBuscado(q))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "No se encontró el crédito")
	}
	return uc.detalle(ctx, c)
}

// GetByID devuelve el detalle del crédito: tomos, documentos FHA y solicitudes abiertas.
func (uc *CreditoUseCase) GetByID(ctx context.Context, id string) (*dto.CreditoDetalleResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.detalle(ctx, c)
}

func (uc *CreditoUseCase) detalle(ctx context.Context, c *entity.Credito) (*dto.CreditoDetalleResponse, error) {
	tomos, err := uc.tomoRepo.ListByCredito(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	docs, err := uc.documentoRepo.ListByCredito(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	sols, err := uc.solicitudRepo.ListByCredito(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	abiertas := make([]dto.SolicitudFHAResponse, 0, len(sols))
	for _, s := range sols {
		if s.Abierta() {
			abiertas = append(abiertas, toSolicitudFHAResponse(s))
		}
	}
	return &dto.CreditoDetalleResponse{
		CreditoResponse: toCreditoResponse(c),
		Tomos:           ToTomoResponses(tomos),
		Documentos:      mapList(docs, toDocumentoFHAResponse),
		Solicitudes:     abiertas,
	}, nil
}

func toCreditoResponse(c *entity.Credito) dto.CreditoResponse {
	out := dto.CreditoResponse{
		ID:              c.ID,
		Numero:          c.Numero,
		Monto:           c.Monto,
		Escaneado:       c.Escaneado,
		FechaConcesion:  c.FechaConcesion,
		FechaIngreso:    c.FechaIngreso,
		CreditoAnterior: c.CreditoAnterior,
		CantidadTomos:   c.CantidadTomos,
	}
	if c.Cliente != nil {
		r := toClienteResponse(c.Cliente)
		out.Cliente = &r
	}
	if c.Moneda != nil {
		r := toMonedaResponse(c.Moneda)
		out.Moneda = &r
	}
	if c.Oficina != nil {
		r := toOficinaResponse(c.Oficina)
		out.Oficina = &r
	}
	if c.Producto != nil {
		r := toProductoResponse(c.Producto)
		out.Producto = &r
	}
	return out
}
