package expedientes

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// PDF documento generado y el nombre con que se descarga.
type PDF struct {
	Nombre    string
	Contenido []byte
}

// EtiquetaUseCase hojas de etiquetas para tomos y cajas.
type EtiquetaUseCase struct {
	tomoRepo       repository.TomoRepository
	creditoRepo    repository.CreditoRepository
	estructuraRepo repository.EstructuraRepository
	labels         LabelGenerator
}

// NewEtiquetaUseCase construye el caso de uso.
func NewEtiquetaUseCase(
	tomoRepo repository.TomoRepository,
	creditoRepo repository.CreditoRepository,
	estructuraRepo repository.EstructuraRepository,
	labels LabelGenerator,
) *EtiquetaUseCase {
	return &EtiquetaUseCase{tomoRepo: tomoRepo, creditoRepo: creditoRepo, estructuraRepo: estructuraRepo, labels: labels}
}

// EtiquetaCredito una etiqueta por cada tomo vigente del crédito, en orden de número.
func (uc *EtiquetaUseCase) EtiquetaCredito(ctx context.Context, creditoID string) (*PDF, error) {
	c, err := uc.creditoRepo.GetByID(ctx, creditoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	tomos, err := uc.tomoRepo.ListByCredito(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	var etiquetas []Etiqueta
	for _, t := range tomos {
		if t.Vigente {
			etiquetas = append(etiquetas, etiquetaTomo(t))
		}
	}
	if len(etiquetas) == 0 {
		return nil, domain.NewBusinessError(domain.ErrSinTomos, "El crédito no tiene tomos vigentes")
	}
	return uc.generar("credito-"+c.Numero, "Crédito "+c.Numero, etiquetas)
}

// EtiquetaTomo etiqueta de un solo tomo.
func (uc *EtiquetaUseCase) EtiquetaTomo(ctx context.Context, id string) (*PDF, error) {
	t, err := uc.tomoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generar("tomo-"+t.Referencia(), "Tomo "+t.Referencia(), []Etiqueta{etiquetaTomo(t)})
}

// EtiquetaNodo etiquetas de todas las cajas vigentes bajo un estante, nivel o posición.
func (uc *EtiquetaUseCase) EtiquetaNodo(ctx context.Context, nodo, id string) (*PDF, error) {
	cajas, err := uc.estructuraRepo.CajasBajo(ctx, nodo, id)
	if err != nil {
		return nil, err
	}
	if len(cajas) == 0 {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "No hay cajas vigentes")
	}
	u := cajas[0].Ubicacion
	u.Caja = 0
	switch nodo {
	case repository.NodoEstante:
		u.Nivel, u.Posicion = 0, 0
	case repository.NodoNivel:
		u.Posicion = 0
	}
	etiquetas := make([]Etiqueta, 0, len(cajas))
	for _, c := range cajas {
		etiquetas = append(etiquetas, etiquetaCaja(c))
	}
	return uc.generar(nodo+"-"+u.String(), u.String(), etiquetas)
}

// EtiquetaCaja etiqueta de una sola caja.
func (uc *EtiquetaUseCase) EtiquetaCaja(ctx context.Context, id string) (*PDF, error) {
	c, err := uc.estructuraRepo.GetCaja(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generar("caja-"+c.Ubicacion.String(), c.Ubicacion.String(), []Etiqueta{etiquetaCaja(c)})
}

func (uc *EtiquetaUseCase) generar(nombre, titulo string, etiquetas []Etiqueta) (*PDF, error) {
	b, err := uc.labels.Generate(titulo, etiquetas)
	if err != nil {
		return nil, fmt.Errorf("generar etiquetas: %w", err)
	}
	return &PDF{Nombre: nombre + ".pdf", Contenido: b}, nil
}

func etiquetaTomo(t *entity.Tomo) Etiqueta {
	return Etiqueta{
		Codigo:  t.Referencia(),
		Titulo:  "Crédito " + t.CreditoNumero,
		Detalle: fmt.Sprintf("Tomo %d", t.Numero),
	}
}

func etiquetaCaja(c *entity.Caja) Etiqueta {
	u := c.Ubicacion
	return Etiqueta{
		Codigo:  u.String(),
		Titulo:  u.BodegaNombre,
		Detalle: fmt.Sprintf("Estante %s  Nivel %02d  Posición %02d  Caja %02d", u.EstanteCodigo, u.Nivel, u.Posicion, u.Caja),
	}
}
