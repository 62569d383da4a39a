package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
)

// TomoHandler ingreso de tomos en cajas y la lista de extracción del usuario (protegido).
type TomoHandler struct {
	tomos     *expedientes.TomoUseCase
	etiquetas *expedientes.EtiquetaUseCase
}

// NewTomoHandler construye el handler.
func NewTomoHandler(tomos *expedientes.TomoUseCase, etiquetas *expedientes.EtiquetaUseCase) *TomoHandler {
	return &TomoHandler{tomos: tomos, etiquetas: etiquetas}
}

// GetByID godoc
// @Summary      Obtener tomo
// @Tags         tomos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tomo"
// @Success      200  {object}  dto.TomoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tomos/{id} [get]
func (h *TomoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.tomos.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Etiqueta godoc
// @Summary      Etiqueta de un tomo
// @Tags         tomos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del tomo"
// @Success      200  {file}  binary
// @Router       /api/tomos/{id}/etiqueta [get]
func (h *TomoHandler) Etiqueta(c *fiber.Ctx) error {
	pdf, err := h.etiquetas.EtiquetaTomo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf)
}

// Ingresar godoc
// @Summary      Ingresar un tomo en una caja
// @Description  Tomo y caja se identifican por el código leído de sus etiquetas.
// @Tags         tomos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngresoTomoRequest  true  "tomo, caja, comentario"
// @Success      200   {object}  dto.TomoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tomos/ingreso [post]
func (h *TomoHandler) Ingresar(c *fiber.Ctx) error {
	var in dto.IngresoTomoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.tomos.IngresarTomo(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Lista godoc
// @Summary      Tomos en la lista de extracción del usuario
// @Tags         tomos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExtraccionResponse
// @Router       /api/tomos/extraccion [get]
func (h *TomoHandler) Lista(c *fiber.Ctx) error {
	out, err := h.tomos.Lista(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Agregar godoc
// @Summary      Agregar tomo a la lista de extracción
// @Tags         tomos
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.AgregarExtraccionRequest  true  "tomo y referencia leída"
// @Success      201   {object}  dto.MessageResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tomos/extraccion [post]
func (h *TomoHandler) Agregar(c *fiber.Ctx) error {
	var in dto.AgregarExtraccionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.tomos.AgregarALista(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Tomo agregado a la lista"})
}

// Quitar godoc
// @Summary      Quitar tomo de la lista de extracción
// @Tags         tomos
// @Security     Bearer
// @Param        id   path  string  true  "ID del tomo"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/tomos/extraccion/{id} [delete]
func (h *TomoHandler) Quitar(c *fiber.Ctx) error {
	if err := h.tomos.QuitarDeLista(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Tomo quitado de la lista")
}

// Trasladar godoc
// @Summary      Trasladar los tomos de la lista a otra bodega
// @Tags         tomos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TrasladoRequest  true  "bodega destino y comentario"
// @Success      200   {object}  dto.MovimientoResponse
// @Router       /api/tomos/extraccion/traslado [post]
func (h *TomoHandler) Trasladar(c *fiber.Ctx) error {
	var in dto.TrasladoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.tomos.Trasladar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Egresar godoc
// @Summary      Egresar los tomos de la lista por solicitud
// @Tags         tomos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EgresoRequest  true  "solicitante, motivo y comentario"
// @Success      200   {object}  dto.MovimientoResponse
// @Router       /api/tomos/extraccion/egreso [post]
func (h *TomoHandler) Egresar(c *fiber.Ctx) error {
	var in dto.EgresoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.tomos.Egresar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
