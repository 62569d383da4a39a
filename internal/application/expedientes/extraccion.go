package expedientes

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// AgregarALista agrega el tomo a la lista de extracción del usuario. La referencia
// escrita debe corresponder al tomo seleccionado.
func (uc *TomoUseCase) AgregarALista(ctx context.Context, userID string, in dto.AgregarExtraccionRequest) error {
	ref, err := archivo.ParseTomoRef(in.Referencia)
	if err != nil {
		return err
	}
	t, err := uc.tomoRepo.GetByReferencia(ctx, ref.Credito, ref.Numero)
	if err != nil {
		return err
	}
	if t == nil {
		return archivo.ErrFormato
	}
	if t.ID != in.TomoID {
		return domain.NewBusinessError(domain.ErrTomoNoCorresponde, "Tomo no corresponde al seleccionado")
	}
	nuevo, err := uc.pickList.Add(ctx, userID, t.ID)
	if err != nil {
		return err
	}
	if !nuevo {
		return domain.NewBusinessError(domain.ErrTomoEnLista, "Tomo agregado previamente")
	}
	return nil
}

// QuitarDeLista saca el tomo de la lista del usuario.
func (uc *TomoUseCase) QuitarDeLista(ctx context.Context, userID, tomoID string) error {
	return uc.pickList.Remove(ctx, userID, tomoID)
}

// Lista devuelve los tomos de la lista del usuario ordenados por ubicación.
func (uc *TomoUseCase) Lista(ctx context.Context, userID string) (*dto.ExtraccionResponse, error) {
	tomos, err := uc.tomosEnLista(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ExtraccionResponse{Items: usecase.ToTomoResponses(tomos)}, nil
}

func (uc *TomoUseCase) tomosEnLista(ctx context.Context, userID string) ([]*entity.Tomo, error) {
	ids, err := uc.pickList.Members(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return uc.tomoRepo.ListByIDs(ctx, ids)
}

var errListaVacia = domain.NewBusinessError(domain.ErrInvalidInput, "No hay tomos en la lista de extracción")

// Trasladar saca de sus cajas los tomos de la lista y los deja en tránsito hacia otra bodega.
// Si la bodega destino lo tiene configurado, su encargado recibe el detalle por correo.
func (uc *TomoUseCase) Trasladar(ctx context.Context, userID string, in dto.TrasladoRequest) (*dto.MovimientoResponse, error) {
	destino, err := uc.bodegaRepo.GetByID(ctx, in.BodegaID)
	if err != nil {
		return nil, err
	}
	if destino == nil {
		return nil, domain.ErrNotFound
	}
	if !destino.Vigente {
		return nil, domain.NewBusinessError(domain.ErrBodegaInactiva, "La bodega no se encuentra habilitada")
	}
	tomos, err := uc.tomosEnLista(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tomos) == 0 {
		return nil, errListaVacia
	}

	var correo *entity.Correo
	if destino.CorreoTraslado && destino.Encargado != nil {
		correo, err = uc.composer.Componer(notificacion.Mensaje{
			Asunto: "Traslado de Expedientes",
			Titulo: "Traslado",
			Texto:  fmt.Sprintf("Se han enviado, a %s, los siguientes tomos:", destino.Nombre),
			Tomos:  lineas(tomos),
		}, destino.Encargado.Email)
		if err != nil {
			return nil, err
		}
	}

	comentario := archivo.ComentarioTraslado(destino.Nombre, in.Comentario)
	n, err := uc.liberar(ctx, tomos, comentario, userID, correo)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("bodega", destino.Codigo).Int64("tomos", n).Str("usuario", userID).Msg("tomos trasladados")
	return &dto.MovimientoResponse{Tomos: int(n), Message: mensajeOK(int(n), "egresados por traslado")}, nil
}

// Egresar entrega los tomos de la lista a un solicitante del área de expedientes.
// El comentario de cada tomo registra la ficha del solicitante; usuario y solicitante reciben copia por correo.
func (uc *TomoUseCase) Egresar(ctx context.Context, userID string, in dto.EgresoRequest) (*dto.MovimientoResponse, error) {
	sol, err := uc.solicitanteRepo.GetByID(ctx, in.SolicitanteID)
	if err != nil {
		return nil, err
	}
	if sol == nil || !sol.Vigente || sol.Area != entity.AreaExpedientes {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Solicitante no válido para expedientes")
	}
	mot, err := uc.motivoRepo.GetByID(ctx, in.MotivoID)
	if err != nil {
		return nil, err
	}
	if mot == nil || !mot.Vigente || mot.Area != entity.AreaExpedientes {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Motivo no válido para expedientes")
	}
	tomos, err := uc.tomosEnLista(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tomos) == 0 {
		return nil, errListaVacia
	}
	actor, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}

	comentario := archivo.ComentarioEgreso(time.Now(), sol, in.Comentario)
	correo, err := uc.composer.Componer(notificacion.Mensaje{
		Asunto:     "Egreso por solicitud",
		Titulo:     "Egreso por Solicitud",
		Texto:      "Se han entregado, los siguientes tomos:",
		Tomos:      lineas(tomos),
		Comentario: comentario,
	}, actor.Email, sol.Correo)
	if err != nil {
		return nil, err
	}

	n, err := uc.liberar(ctx, tomos, comentario, userID, correo)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("solicitante", sol.Nombre).Str("motivo", mot.Nombre).Int64("tomos", n).Msg("tomos egresados")
	return &dto.MovimientoResponse{Tomos: int(n), Message: mensajeOK(int(n), "egresados por solicitud")}, nil
}

// liberar saca los tomos de sus cajas y encola el correo en una sola transacción, luego los quita de la lista.
func (uc *TomoUseCase) liberar(ctx context.Context, tomos []*entity.Tomo, comentario, userID string, correo *entity.Correo) (int64, error) {
	ids := make([]string, 0, len(tomos))
	for _, t := range tomos {
		ids = append(ids, t.ID)
	}
	var n int64
	err := uc.txRunner.RunTomos(ctx, func(tomoRepo repository.TomoRepository, _ repository.CreditoRepository, correoRepo repository.CorreoRepository) error {
		var err error
		if n, err = tomoRepo.Liberar(ctx, ids, comentario, userID); err != nil {
			return err
		}
		if correo == nil {
			return nil
		}
		return correoRepo.Enqueue(ctx, correo)
	})
	if err != nil {
		return 0, err
	}
	if err := uc.pickList.Remove(ctx, userID, ids...); err != nil {
		uc.log.Warn().Err(err).Str("usuario", userID).Msg("no se pudieron quitar los tomos de la lista de extracción")
	}
	return n, nil
}
