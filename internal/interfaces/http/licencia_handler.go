package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
)

// LicenciaHandler licencias de Qlik Sense y los permisos de cada licencia (protegido).
type LicenciaHandler struct {
	licencias *usecase.LicenciaUseCase
}

// NewLicenciaHandler construye el handler.
func NewLicenciaHandler(licencias *usecase.LicenciaUseCase) *LicenciaHandler {
	return &LicenciaHandler{licencias: licencias}
}

// ── Tipos de licencia ─────────────────────────────────────────────────────────

func (h *LicenciaHandler) ListTipos(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.ListTipos(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *LicenciaHandler) GetTipo(c *fiber.Ctx) error {
	out, err := h.licencias.GetTipo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *LicenciaHandler) CreateTipo(c *fiber.Ctx) error {
	var in dto.TipoLicenciaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.CreateTipo(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTipo godoc
// @Summary      Actualizar tipo de licencia
// @Description  La cantidad no puede quedar por debajo de las licencias ya asignadas.
// @Tags         qlik
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tipo"
// @Param        body  body  dto.TipoLicenciaRequest  true  "Datos del tipo"
// @Success      200   {object}  dto.TipoLicenciaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/qlik/tipos-licencia/{id} [put]
func (h *LicenciaHandler) UpdateTipo(c *fiber.Ctx) error {
	var in dto.TipoLicenciaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.UpdateTipo(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *LicenciaHandler) DeleteTipo(c *fiber.Ctx) error {
	if err := h.licencias.DeleteTipo(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Tipo de licencia eliminado")
}

// ── Licencias ─────────────────────────────────────────────────────────────────

func (h *LicenciaHandler) ListLicencias(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.ListLicencias(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *LicenciaHandler) GetLicencia(c *fiber.Ctx) error {
	out, err := h.licencias.GetLicencia(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateLicencia godoc
// @Summary      Asignar una licencia
// @Tags         qlik
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LicenciaRequest  true  "Datos de la licencia"
// @Success      201   {object}  dto.LicenciaResponse
// @Failure      409   {object}  dto.ErrorResponse  "No hay licencias disponibles"
// @Router       /api/qlik/licencias [post]
func (h *LicenciaHandler) CreateLicencia(c *fiber.Ctx) error {
	var in dto.LicenciaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.CreateLicencia(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *LicenciaHandler) UpdateLicencia(c *fiber.Ctx) error {
	var in dto.LicenciaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.UpdateLicencia(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *LicenciaHandler) DeleteLicencia(c *fiber.Ctx) error {
	if err := h.licencias.DeleteLicencia(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Licencia eliminada")
}

// ── Permisos ──────────────────────────────────────────────────────────────────

func (h *LicenciaHandler) ListPermisos(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.ListPermisos(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *LicenciaHandler) CreatePermiso(c *fiber.Ctx) error {
	var in dto.PermisoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.licencias.CreatePermiso(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *LicenciaHandler) DeletePermiso(c *fiber.Ctx) error {
	if err := h.licencias.DeletePermiso(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Permiso eliminado")
}

// Objetos godoc
// @Summary      Objetos a los que se puede dar permiso
// @Tags         qlik
// @Security     Bearer
// @Produce      json
// @Param        tipo  query  string  true  "Stream, Modelo o TipoDato"
// @Success      200   {array}  dto.ObjetoResponse
// @Router       /api/qlik/permisos/objetos [get]
func (h *LicenciaHandler) Objetos(c *fiber.Ctx) error {
	out, err := h.licencias.Objetos(c.Context(), c.Query("tipo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
