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

// BodegaUseCase casos de uso de bodegas.
type BodegaUseCase struct {
	txRunner       BodegaTxRunner
	repo           repository.BodegaRepository
	estructuraRepo repository.EstructuraRepository
	userRepo       repository.UsuarioRepository
}

// NewBodegaUseCase construye el caso de uso.
func NewBodegaUseCase(
	txRunner BodegaTxRunner,
	repo repository.BodegaRepository,
	estructuraRepo repository.EstructuraRepository,
	userRepo repository.UsuarioRepository,
) *BodegaUseCase {
	return &BodegaUseCase{txRunner: txRunner, repo: repo, estructuraRepo: estructuraRepo, userRepo: userRepo}
}

// Create crea una bodega con su encargado y personal en una sola transacción.
func (uc *BodegaUseCase) Create(ctx context.Context, in dto.BodegaRequest) (*dto.BodegaResponse, error) {
	now := time.Now()
	b := &entity.Bodega{
		ID:        uuid.New().String(),
		Vigente:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.aplicar(ctx, b, in); err != nil {
		return nil, err
	}
	err := uc.txRunner.RunBodega(ctx, func(repo repository.BodegaRepository) error {
		if err := repo.Create(ctx, b); err != nil {
			return err
		}
		return repo.SetPersonal(ctx, b.ID, b.Personal)
	})
	if err != nil {
		return nil, err
	}
	return uc.get(ctx, b.ID)
}

// Update reemplaza los datos de la bodega.
func (uc *BodegaUseCase) Update(ctx context.Context, id string, in dto.BodegaRequest) (*dto.BodegaResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.aplicar(ctx, b, in); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()
	err = uc.txRunner.RunBodega(ctx, func(repo repository.BodegaRepository) error {
		if err := repo.Update(ctx, b); err != nil {
			return err
		}
		return repo.SetPersonal(ctx, b.ID, b.Personal)
	})
	if err != nil {
		return nil, err
	}
	return uc.get(ctx, b.ID)
}

// aplicar normaliza la entrada y verifica que encargado y personal sean usuarios elegibles.
func (uc *BodegaUseCase) aplicar(ctx context.Context, b *entity.Bodega, in dto.BodegaRequest) error {
	b.Codigo = texto.Mayusculas(in.Codigo)
	b.Nombre = texto.Mayusculas(in.Nombre)
	b.Direccion = in.Direccion
	b.CorreoEgreso = in.CorreoEgreso
	b.CorreoTraslado = in.CorreoTraslado
	if in.Vigente != nil {
		b.Vigente = *in.Vigente
	}
	elegibles, err := uc.userRepo.ListElegiblesBodega(ctx)
	if err != nil {
		return err
	}
	ok := make(map[string]bool, len(elegibles))
	for _, u := range elegibles {
		ok[u.ID] = true
	}
	if in.EncargadoID != nil && *in.EncargadoID != "" {
		if !ok[*in.EncargadoID] {
			return domain.NewBusinessError(domain.ErrInvalidInput, "El encargado no es un usuario elegible")
		}
		b.EncargadoID = in.EncargadoID
	} else {
		b.EncargadoID = nil
	}
	personal := make([]string, 0, len(in.Personal))
	vistos := make(map[string]bool, len(in.Personal))
	for _, id := range in.Personal {
		if !ok[id] {
			return domain.NewBusinessError(domain.ErrInvalidInput, "El personal debe ser usuarios elegibles")
		}
		if !vistos[id] {
			vistos[id] = true
			personal = append(personal, id)
		}
	}
	b.Personal = personal
	return nil
}

// GetByID devuelve la bodega con su estructura. Un usuario no superusuario solo ve sus bodegas.
func (uc *BodegaUseCase) GetByID(ctx context.Context, id, userID string, superuser bool) (*dto.BodegaDetalleResponse, error) {
	if err := uc.checkAcceso(ctx, id, userID, superuser); err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	estantes, err := uc.estructuraRepo.Arbol(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.BodegaDetalleResponse{
		BodegaResponse: *toBodegaResponse(b),
		Columnas:       archivo.MaxColumnas(estantes),
		Estantes:       make([]dto.EstanteResponse, 0, len(estantes)),
	}
	for _, e := range estantes {
		out.Estantes = append(out.Estantes, toEstanteResponse(b.Codigo, e))
	}
	return out, nil
}

func (uc *BodegaUseCase) get(ctx context.Context, id string) (*dto.BodegaResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBodegaResponse(b), nil
}

// List lista bodegas visibles para el usuario con paginación.
func (uc *BodegaUseCase) List(ctx context.Context, userID string, superuser bool, page dto.PageRequest) (*dto.BodegaListResponse, error) {
	page.DefaultPage()
	f := repository.BodegaFiltro{Filtro: repository.Filtro{Q: page.Q, Limit: page.Limit, Offset: page.Offset}}
	if !superuser {
		f.UsuarioID = userID
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BodegaResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBodegaResponse(b))
	}
	return &dto.BodegaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ToggleVigente habilita o inhabilita la bodega.
func (uc *BodegaUseCase) ToggleVigente(ctx context.Context, id string) (*dto.BodegaResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetVigente(ctx, id, !b.Vigente); err != nil {
		return nil, err
	}
	b.Vigente = !b.Vigente
	return toBodegaResponse(b), nil
}

// CajasInhabilitadas lista las cajas no vigentes de la bodega.
func (uc *BodegaUseCase) CajasInhabilitadas(ctx context.Context, id, userID string, superuser bool) ([]dto.CajaResponse, error) {
	if err := uc.checkAcceso(ctx, id, userID, superuser); err != nil {
		return nil, err
	}
	cajas, err := uc.estructuraRepo.CajasInhabilitadas(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CajaResponse, 0, len(cajas))
	for _, c := range cajas {
		out = append(out, toCajaResponse(c))
	}
	return out, nil
}

func (uc *BodegaUseCase) checkAcceso(ctx context.Context, id, userID string, superuser bool) error {
	if superuser {
		return nil
	}
	ok, err := uc.repo.Accesible(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func toBodegaResponse(b *entity.Bodega) *dto.BodegaResponse {
	if b == nil {
		return nil
	}
	out := &dto.BodegaResponse{
		ID:             b.ID,
		Codigo:         b.Codigo,
		Nombre:         b.Nombre,
		Direccion:      b.Direccion,
		Vigente:        b.Vigente,
		CorreoEgreso:   b.CorreoEgreso,
		CorreoTraslado: b.CorreoTraslado,
		Personal:       b.Personal,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if out.Personal == nil {
		out.Personal = []string{}
	}
	if b.Encargado != nil {
		out.Encargado = &dto.UsuarioResponse{
			ID:        b.Encargado.ID,
			Username:  b.Encargado.Username,
			Email:     b.Encargado.Email,
			FirstName: b.Encargado.FirstName,
			LastName:  b.Encargado.LastName,
			Nombre:    b.Encargado.NombreCompleto(),
		}
	}
	return out
}
