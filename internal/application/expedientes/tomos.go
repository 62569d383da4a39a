package expedientes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// TomoUseCase flujo de los tomos: habilitar, ingresar en caja, extraer, trasladar y egresar.
type TomoUseCase struct {
	txRunner        TxRunner
	tomoRepo        repository.TomoRepository
	creditoRepo     repository.CreditoRepository
	estructuraRepo  repository.EstructuraRepository
	bodegaRepo      repository.BodegaRepository
	solicitanteRepo repository.SolicitanteRepository
	motivoRepo      repository.MotivoRepository
	userRepo        repository.UsuarioRepository
	pickList        PickList
	composer        *notificacion.Composer
	log             *logger.Logger
}

// Deps dependencias de TomoUseCase.
type Deps struct {
	TxRunner        TxRunner
	TomoRepo        repository.TomoRepository
	CreditoRepo     repository.CreditoRepository
	EstructuraRepo  repository.EstructuraRepository
	BodegaRepo      repository.BodegaRepository
	SolicitanteRepo repository.SolicitanteRepository
	MotivoRepo      repository.MotivoRepository
	UserRepo        repository.UsuarioRepository
	PickList        PickList
	Composer        *notificacion.Composer
	Log             *logger.Logger
}

// NewTomoUseCase construye el caso de uso.
func NewTomoUseCase(d Deps) *TomoUseCase {
	return &TomoUseCase{
		txRunner:        d.TxRunner,
		tomoRepo:        d.TomoRepo,
		creditoRepo:     d.CreditoRepo,
		estructuraRepo:  d.EstructuraRepo,
		bodegaRepo:      d.BodegaRepo,
		solicitanteRepo: d.SolicitanteRepo,
		motivoRepo:      d.MotivoRepo,
		userRepo:        d.UserRepo,
		pickList:        d.PickList,
		composer:        d.Composer,
		log:             d.Log.Named("tomos"),
	}
}

var errNoEncontrado = domain.NewBusinessError(domain.ErrNotFound, "Tomo o caja no encontrado")

// Get devuelve un tomo con su ubicación.
func (uc *TomoUseCase) Get(ctx context.Context, id string) (*dto.TomoResponse, error) {
	t, err := uc.tomoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	r := usecase.ToTomoResponse(t)
	return &r, nil
}

// MarcarEscaneado registra que el expediente del crédito fue digitalizado.
func (uc *TomoUseCase) MarcarEscaneado(ctx context.Context, creditoID string) error {
	c, err := uc.creditoRepo.GetByID(ctx, creditoID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.creditoRepo.SetEscaneado(ctx, c.ID)
}

// AgregarTomo habilita un tomo más en el crédito: crea el primero, rehabilita el menor
// inhabilitado o crea el siguiente número. Los tomos del crédito quedan bloqueados en la transacción.
func (uc *TomoUseCase) AgregarTomo(ctx context.Context, creditoID, userID string) (*dto.TomoResponse, error) {
	var out *entity.Tomo
	err := uc.txRunner.RunTomos(ctx, func(tomoRepo repository.TomoRepository, creditoRepo repository.CreditoRepository, _ repository.CorreoRepository) error {
		c, err := creditoRepo.GetByID(ctx, creditoID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		tomos, err := tomoRepo.ListByCreditoForUpdate(ctx, c.ID)
		if err != nil {
			return err
		}
		plan := archivo.PlanificarAgregar(tomos)
		if plan.Accion == archivo.Rehabilitar {
			out = plan.Tomo
			out.Vigente = true
			out.Comentario = entity.ComentarioTomoHabilitado
			out.UsuarioID = &userID
			return tomoRepo.Update(ctx, out)
		}
		out = &entity.Tomo{
			ID:            uuid.New().String(),
			Numero:        plan.Numero,
			Vigente:       true,
			Comentario:    entity.ComentarioTomoHabilitado,
			CreditoID:     c.ID,
			CreditoNumero: c.Numero,
			UsuarioID:     &userID,
		}
		return tomoRepo.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tomo", out.Referencia()).Str("usuario", userID).Msg("tomo habilitado")
	r := usecase.ToTomoResponse(out)
	return &r, nil
}

// RemoverTomo inhabilita el mayor tomo vigente del crédito si no está en una caja.
func (uc *TomoUseCase) RemoverTomo(ctx context.Context, creditoID, userID string) (*dto.TomoResponse, error) {
	var out *entity.Tomo
	err := uc.txRunner.RunTomos(ctx, func(tomoRepo repository.TomoRepository, creditoRepo repository.CreditoRepository, _ repository.CorreoRepository) error {
		c, err := creditoRepo.GetByID(ctx, creditoID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		tomos, err := tomoRepo.ListByCreditoForUpdate(ctx, c.ID)
		if err != nil {
			return err
		}
		if out, err = archivo.SeleccionarRemover(c.Numero, tomos); err != nil {
			return err
		}
		out.Vigente = false
		out.Comentario = entity.ComentarioTomoInhabilitado
		out.UsuarioID = &userID
		return tomoRepo.Update(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tomo", out.Referencia()).Str("usuario", userID).Msg("tomo inhabilitado")
	r := usecase.ToTomoResponse(out)
	return &r, nil
}

// IngresarTomo guarda el tomo en la caja indicada por su código impreso.
// Se valida en orden: personal de la bodega, caja vigente, bodega vigente y tomo sin caja.
func (uc *TomoUseCase) IngresarTomo(ctx context.Context, userID string, in dto.IngresoTomoRequest) (*dto.TomoResponse, error) {
	tref, err := archivo.ParseTomoRef(in.Tomo)
	if err != nil {
		return nil, errNoEncontrado
	}
	cref, err := archivo.ParseCajaRef(in.Caja)
	if err != nil {
		return nil, errNoEncontrado
	}
	t, err := uc.tomoRepo.GetByReferencia(ctx, tref.Credito, tref.Numero)
	if err != nil {
		return nil, err
	}
	caja, err := uc.estructuraRepo.FindCaja(ctx, cref.Bodega, cref.Estante, cref.Nivel, cref.Posicion, cref.Caja)
	if err != nil {
		return nil, err
	}
	if t == nil || caja == nil {
		return nil, errNoEncontrado
	}
	b, err := uc.bodegaRepo.GetByID(ctx, caja.Ubicacion.BodegaID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errNoEncontrado
	}

	switch {
	case !b.EsPersonal(userID):
		return nil, domain.NewBusinessError(domain.ErrSinPermisoBodega, "Usuario no puede asignar expedientes en esa caja")
	case !caja.Vigente:
		return nil, domain.NewBusinessError(domain.ErrCajaInactiva, "La caja no se encuentra habilitada")
	case !b.Vigente:
		return nil, domain.NewBusinessError(domain.ErrBodegaInactiva, "La bodega no se encuentra habilitada")
	case t.EnCaja():
		return nil, domain.NewBusinessError(domain.ErrTomoAsignado, "El tomo se encuentra asignado a: "+t.Ubicacion.String())
	}

	t.CajaID = &caja.ID
	t.UsuarioID = &userID
	t.Comentario = in.Comentario
	t.Vigente = true
	if err := uc.tomoRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	t.Ubicacion = caja.Ubicacion
	uc.log.Info().Str("tomo", t.Referencia()).Str("caja", caja.Ubicacion.String()).Msg("tomo ingresado")
	r := usecase.ToTomoResponse(t)
	return &r, nil
}

func lineas(tomos []*entity.Tomo) []notificacion.LineaTomo {
	out := make([]notificacion.LineaTomo, 0, len(tomos))
	for _, t := range tomos {
		out = append(out, notificacion.LineaTomo{Referencia: t.Referencia(), Ubicacion: t.Ubicacion.String()})
	}
	return out
}

func mensajeOK(n int, accion string) string {
	if n == 1 {
		return fmt.Sprintf("1 tomo %s", accion)
	}
	return fmt.Sprintf("%d tomos %s", n, accion)
}
