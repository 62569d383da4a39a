package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
)

// FHAHandler solicitantes, motivos, documentos FHA y sus solicitudes (protegido).
type FHAHandler struct {
	uc *usecase.SolicitudUseCase
}

// NewFHAHandler construye el handler.
func NewFHAHandler(uc *usecase.SolicitudUseCase) *FHAHandler {
	return &FHAHandler{uc: uc}
}

// ── Solicitantes ──────────────────────────────────────────────────────────────

// ListSolicitantes godoc
// @Summary      Listar solicitantes
// @Tags         fha
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Código o nombre"
// @Param        area  query  string  false  "EXP o FHA"
// @Success      200   {object}  dto.ListResponse[dto.SolicitanteResponse]
// @Router       /api/solicitantes [get]
func (h *FHAHandler) ListSolicitantes(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListSolicitantes(c.Context(), page, strings.ToUpper(c.Query("area")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FHAHandler) GetSolicitante(c *fiber.Ctx) error {
	out, err := h.uc.GetSolicitante(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FHAHandler) CreateSolicitante(c *fiber.Ctx) error {
	var in dto.SolicitanteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateSolicitante(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FHAHandler) UpdateSolicitante(c *fiber.Ctx) error {
	var in dto.SolicitanteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateSolicitante(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Motivos ───────────────────────────────────────────────────────────────────

func (h *FHAHandler) ListMotivos(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMotivos(c.Context(), page, strings.ToUpper(c.Query("area")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FHAHandler) CreateMotivo(c *fiber.Ctx) error {
	var in dto.MotivoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateMotivo(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FHAHandler) UpdateMotivo(c *fiber.Ctx) error {
	var in dto.MotivoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateMotivo(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Demanda godoc
// @Summary      Indica si el motivo requiere bufete
// @Tags         fha
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del motivo"
// @Success      200  {object}  dto.DemandaResponse
// @Router       /api/motivos/{id}/demanda [get]
func (h *FHAHandler) Demanda(c *fiber.Ctx) error {
	out, err := h.uc.Demanda(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Documentos FHA ────────────────────────────────────────────────────────────

func (h *FHAHandler) GetDocumento(c *fiber.Ctx) error {
	out, err := h.uc.GetDocumento(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FHAHandler) CreateDocumento(c *fiber.Ctx) error {
	var in dto.DocumentoFHARequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateDocumento(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FHAHandler) UpdateDocumento(c *fiber.Ctx) error {
	var in dto.DocumentoFHARequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateDocumento(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Solicitudes FHA ───────────────────────────────────────────────────────────

// CrearSolicitud godoc
// @Summary      Solicitar un documento FHA
// @Tags         fha
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SolicitudFHARequest  true  "documento, solicitante, motivo"
// @Success      201   {object}  dto.SolicitudFHAResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/solicitudes-fha [post]
func (h *FHAHandler) CrearSolicitud(c *fiber.Ctx) error {
	var in dto.SolicitudFHARequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CrearSolicitud(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FHAHandler) Abiertas(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Abiertas(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FHAHandler) GetSolicitud(c *fiber.Ctx) error {
	out, err := h.uc.GetSolicitud(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FHAHandler) ActualizarSolicitud(c *fiber.Ctx) error {
	var in dto.ActualizarSolicitudFHARequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ActualizarSolicitud(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular solicitud FHA
// @Tags         fha
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/solicitudes-fha/{id} [delete]
func (h *FHAHandler) Anular(c *fiber.Ctx) error {
	if err := h.uc.Anular(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Solicitud anulada")
}
