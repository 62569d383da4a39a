package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
)

// QlikHandler catálogo de streams, modelos y orígenes de datos de Qlik Sense (protegido).
type QlikHandler struct {
	qlik *usecase.QlikUseCase
}

// NewQlikHandler construye el handler.
func NewQlikHandler(qlik *usecase.QlikUseCase) *QlikHandler {
	return &QlikHandler{qlik: qlik}
}

// ── Streams ───────────────────────────────────────────────────────────────────

// ListStreams godoc
// @Summary      Listar streams
// @Tags         qlik
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Nombre"
// @Success      200  {object}  dto.ListResponse[dto.StreamResponse]
// @Router       /api/qlik/streams [get]
func (h *QlikHandler) ListStreams(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.ListStreams(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) GetStream(c *fiber.Ctx) error {
	out, err := h.qlik.GetStream(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) CreateStream(c *fiber.Ctx) error {
	var in dto.StreamRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.CreateStream(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *QlikHandler) UpdateStream(c *fiber.Ctx) error {
	var in dto.StreamRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.UpdateStream(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) DeleteStream(c *fiber.Ctx) error {
	if err := h.qlik.DeleteStream(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Stream eliminado")
}

// AgregarModelo godoc
// @Summary      Crear un modelo dentro del stream
// @Tags         qlik
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stream"
// @Param        body  body  dto.ModeloRequest  true  "Datos del modelo"
// @Success      201   {object}  dto.ModeloResponse
// @Router       /api/qlik/streams/{id}/modelos [post]
func (h *QlikHandler) AgregarModelo(c *fiber.Ctx) error {
	var in dto.ModeloRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.AgregarModelo(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Modelos ───────────────────────────────────────────────────────────────────

func (h *QlikHandler) ListModelos(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.ListModelos(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) GetModelo(c *fiber.Ctx) error {
	out, err := h.qlik.GetModelo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) CreateModelo(c *fiber.Ctx) error {
	var in dto.ModeloRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.CreateModelo(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *QlikHandler) UpdateModelo(c *fiber.Ctx) error {
	var in dto.ModeloRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.UpdateModelo(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) DeleteModelo(c *fiber.Ctx) error {
	if err := h.qlik.DeleteModelo(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Modelo eliminado")
}

// UsaOrigen godoc
// @Summary      Registrar un origen de datos que el modelo consume
// @Tags         qlik
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del modelo"
// @Param        body  body  dto.UsaOrigenRequest  true  "origen"
// @Success      201   {object}  dto.UsoOrigenResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/qlik/modelos/{id}/usa [post]
func (h *QlikHandler) UsaOrigen(c *fiber.Ctx) error {
	var in dto.UsaOrigenRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.UsaOrigen(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GeneraOrigen godoc
// @Summary      Registrar un origen de datos que el modelo genera
// @Tags         qlik
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del modelo"
// @Param        body  body  dto.GeneraOrigenRequest  true  "origen generado"
// @Success      201   {object}  dto.OrigenDatoResponse
// @Router       /api/qlik/modelos/{id}/genera [post]
func (h *QlikHandler) GeneraOrigen(c *fiber.Ctx) error {
	var in dto.GeneraOrigenRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.GeneraOrigen(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *QlikHandler) DeleteUso(c *fiber.Ctx) error {
	if err := h.qlik.DeleteUso(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Origen quitado del modelo")
}

// ── Tipos de dato ─────────────────────────────────────────────────────────────

func (h *QlikHandler) ListTiposDato(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.ListTiposDato(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) GetTipoDato(c *fiber.Ctx) error {
	out, err := h.qlik.GetTipoDato(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) CreateTipoDato(c *fiber.Ctx) error {
	var in dto.TipoDatoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.CreateTipoDato(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *QlikHandler) UpdateTipoDato(c *fiber.Ctx) error {
	var in dto.TipoDatoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.UpdateTipoDato(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) DeleteTipoDato(c *fiber.Ctx) error {
	if err := h.qlik.DeleteTipoDato(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Tipo de dato eliminado")
}

// ── Orígenes de datos ─────────────────────────────────────────────────────────

// ListOrigenes godoc
// @Summary      Listar orígenes de datos
// @Description  Con tipodato devuelve solo los orígenes de ese tipo, sin paginar.
// @Tags         qlik
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "Nombre"
// @Param        tipodato  query  string  false  "ID del tipo de dato"
// @Success      200       {object}  dto.ListResponse[dto.OrigenDatoResponse]
// @Router       /api/qlik/origenes [get]
func (h *QlikHandler) ListOrigenes(c *fiber.Ctx) error {
	if tipo := c.Query("tipodato"); tipo != "" {
		out, err := h.qlik.PorTipo(c.Context(), tipo)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.ListOrigenes(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) GetOrigen(c *fiber.Ctx) error {
	out, err := h.qlik.GetOrigen(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) CreateOrigen(c *fiber.Ctx) error {
	var in dto.OrigenDatoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.CreateOrigen(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *QlikHandler) UpdateOrigen(c *fiber.Ctx) error {
	var in dto.OrigenDatoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.qlik.UpdateOrigen(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *QlikHandler) DeleteOrigen(c *fiber.Ctx) error {
	if err := h.qlik.DeleteOrigen(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Origen de datos eliminado")
}
