package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// errLog recibe los errores 500; main lo reemplaza por el logger de la app.
var errLog = logger.Nop()

// SetErrorLogger define el logger de errores internos.
func SetErrorLogger(l *logger.Logger) { errLog = l.Named("http") }

// reglas de negocio que no son conflictos de estado.
var reglas = []error{
	domain.ErrReferenciaInvalida,
	domain.ErrTomoNoCorresponde,
	domain.ErrTomoEnLista,
	domain.ErrSinPermisoBodega,
}

// conflictos con el estado actual del archivo.
var conflictos = []error{
	domain.ErrConflict,
	domain.ErrSinTomos,
	domain.ErrTomoEnCaja,
	domain.ErrTomoAsignado,
	domain.ErrCajaInactiva,
	domain.ErrBodegaInactiva,
	domain.ErrSolicitudActiva,
}

// respondError traduce errores de dominio a ErrorResponse con su status HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := domain.Message(err)
	if status == fiber.StatusInternalServerError {
		errLog.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case isAny(err, conflictos):
		return fiber.StatusConflict, "CONFLICT"
	case isAny(err, reglas):
		return fiber.StatusUnprocessableEntity, "BUSINESS_RULE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// notFound respuesta 404 para lecturas que devuelven nil.
func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

// ok responde con el mensaje de confirmación.
func ok(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.MessageResponse{Message: msg})
}
