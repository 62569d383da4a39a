package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
)

// CreditoHandler créditos y sus tomos (protegido).
type CreditoHandler struct {
	creditos  *usecase.CreditoUseCase
	tomos     *expedientes.TomoUseCase
	etiquetas *expedientes.EtiquetaUseCase
}

// NewCreditoHandler construye el handler.
func NewCreditoHandler(creditos *usecase.CreditoUseCase, tomos *expedientes.TomoUseCase, etiquetas *expedientes.EtiquetaUseCase) *CreditoHandler {
	return &CreditoHandler{creditos: creditos, tomos: tomos, etiquetas: etiquetas}
}

// List godoc
// @Summary      Listar créditos
// @Tags         creditos
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Prefijo del número"
// @Param        limit   query  int     false  "Límite"  default(15)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CreditoListResponse
// @Router       /api/creditos [get]
func (h *CreditoHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.creditos.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear crédito
// @Tags         creditos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreditoRequest  true  "Datos del crédito"
// @Success      201   {object}  dto.CreditoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/creditos [post]
func (h *CreditoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreditoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.creditos.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Crédito con tomos, documentos FHA y solicitudes abiertas
// @Tags         creditos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del crédito"
// @Success      200  {object}  dto.CreditoDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/creditos/{id} [get]
func (h *CreditoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.creditos.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CreditoHandler) Update(c *fiber.Ctx) error {
	var in dto.CreditoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.creditos.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Buscar godoc
// @Summary      Buscar un crédito por número o por referencia de tomo
// @Tags         creditos
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Número de crédito o referencia"
// @Success      200  {object}  dto.CreditoDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/creditos/buscar [get]
func (h *CreditoHandler) Buscar(c *fiber.Ctx) error {
	out, err := h.creditos.Buscar(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarcarEscaneado godoc
// @Summary      Marcar crédito como escaneado
// @Tags         creditos
// @Security     Bearer
// @Param        id   path  string  true  "ID del crédito"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/creditos/{id}/escaneado [post]
func (h *CreditoHandler) MarcarEscaneado(c *fiber.Ctx) error {
	if err := h.tomos.MarcarEscaneado(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Crédito marcado como escaneado")
}

// AgregarTomo godoc
// @Summary      Agregar un tomo al crédito
// @Description  Rehabilita el menor tomo inhabilitado o crea el siguiente número.
// @Tags         creditos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del crédito"
// @Success      200  {object}  dto.TomoResponse
// @Router       /api/creditos/{id}/tomos [post]
func (h *CreditoHandler) AgregarTomo(c *fiber.Ctx) error {
	out, err := h.tomos.AgregarTomo(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoverTomo godoc
// @Summary      Deshabilitar el último tomo vigente del crédito
// @Tags         creditos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del crédito"
// @Success      200  {object}  dto.TomoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/creditos/{id}/tomos [delete]
func (h *CreditoHandler) RemoverTomo(c *fiber.Ctx) error {
	out, err := h.tomos.RemoverTomo(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Etiquetas godoc
// @Summary      Etiquetas de los tomos vigentes del crédito
// @Tags         creditos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del crédito"
// @Success      200  {file}  binary
// @Router       /api/creditos/{id}/etiquetas [get]
func (h *CreditoHandler) Etiquetas(c *fiber.Ctx) error {
	pdf, err := h.etiquetas.EtiquetaCredito(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf)
}
