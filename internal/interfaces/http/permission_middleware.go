package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *auth.AuthUseCase.
type permissionChecker interface {
	TienePermiso(ctx context.Context, userID string, superuser bool, perm string) (bool, error)
}

// RequirePermission exige el permiso "<app>.<accion>_<modelo>". Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay usuario en el contexto.
//   - 403 si el usuario no tiene el permiso ni es superusuario.
//   - 503 si falla la consulta de permisos.
func RequirePermission(perm string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}
		if IsSuperuser(c) {
			return c.Next()
		}
		allowed, err := checker.TienePermiso(c.Context(), userID, false, perm)
		if err != nil {
			errLog.Error().Err(err).Str("permiso", perm).Msg("verificar permiso")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permiso para realizar esta acción",
			})
		}
		return c.Next()
	}
}
