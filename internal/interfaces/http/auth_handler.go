package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/auth"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
)

// AuthHandler maneja login, perfil y contraseñas.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario o email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if auth.IsAuthError(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Perfil godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UsuarioResponse
// @Router       /api/auth/perfil [get]
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	out, err := h.uc.Perfil(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActualizarPerfil godoc
// @Summary      Editar perfil
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PerfilRequest  true  "nombre, apellido, email"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/perfil [put]
func (h *AuthHandler) ActualizarPerfil(c *fiber.Ctx) error {
	var in dto.PerfilRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ActualizarPerfil(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CambiarPassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CambiarPasswordRequest  true  "actual, nueva, confirmación"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password [post]
func (h *AuthHandler) CambiarPassword(c *fiber.Ctx) error {
	var in dto.CambiarPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.CambiarPassword(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Contraseña actualizada")
}

// SolicitarReset godoc
// @Summary      Solicitar recuperación de contraseña
// @Description  Responde igual exista o no el email.
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.SolicitarResetRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/password/reset [post]
func (h *AuthHandler) SolicitarReset(c *fiber.Ctx) error {
	var in dto.SolicitarResetRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SolicitarReset(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Si el correo está registrado recibirá las instrucciones")
}

// ConfirmarReset godoc
// @Summary      Confirmar recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.ConfirmarResetRequest  true  "token, nueva, confirmación"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/password/reset/confirmar [post]
func (h *AuthHandler) ConfirmarReset(c *fiber.Ctx) error {
	var in dto.ConfirmarResetRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ConfirmarReset(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Contraseña actualizada")
}

// Apps godoc
// @Summary      Módulos visibles para el usuario
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AppResponse
// @Router       /api/auth/apps [get]
func (h *AuthHandler) Apps(c *fiber.Ctx) error {
	out, err := h.uc.Apps(c.Context(), GetUserID(c), IsSuperuser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UsuariosElegibles godoc
// @Summary      Usuarios que pueden ser encargado o personal de bodega
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/bodegas/usuarios-elegibles [get]
func (h *AuthHandler) UsuariosElegibles(c *fiber.Ctx) error {
	out, err := h.uc.UsuariosElegibles(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
