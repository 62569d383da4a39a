package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
)

// BodegaHandler maneja bodegas y su estructura física (protegido).
type BodegaHandler struct {
	bodegas    *usecase.BodegaUseCase
	estructura *usecase.EstructuraUseCase
	etiquetas  *expedientes.EtiquetaUseCase
}

// NewBodegaHandler construye el handler.
func NewBodegaHandler(bodegas *usecase.BodegaUseCase, estructura *usecase.EstructuraUseCase, etiquetas *expedientes.EtiquetaUseCase) *BodegaHandler {
	return &BodegaHandler{bodegas: bodegas, estructura: estructura, etiquetas: etiquetas}
}

// List godoc
// @Summary      Listar bodegas visibles para el usuario
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Código o nombre"
// @Param        limit   query  int     false  "Límite"  default(15)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.BodegaListResponse
// @Router       /api/bodegas [get]
func (h *BodegaHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.bodegas.List(c.Context(), GetUserID(c), IsSuperuser(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear bodega
// @Tags         bodegas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BodegaRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.BodegaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bodegas [post]
func (h *BodegaHandler) Create(c *fiber.Ctx) error {
	var in dto.BodegaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.bodegas.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Bodega con estantes, niveles, posiciones y cajas
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.BodegaDetalleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bodegas/{id} [get]
func (h *BodegaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.bodegas.GetByID(c.Context(), c.Params("id"), GetUserID(c), IsSuperuser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega
// @Tags         bodegas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la bodega"
// @Param        body  body  dto.BodegaRequest  true  "Datos de la bodega"
// @Success      200   {object}  dto.BodegaResponse
// @Router       /api/bodegas/{id} [put]
func (h *BodegaHandler) Update(c *fiber.Ctx) error {
	var in dto.BodegaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.bodegas.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Habilitar o inhabilitar bodega
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.BodegaResponse
// @Router       /api/bodegas/{id} [delete]
func (h *BodegaHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.bodegas.ToggleVigente(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CajasInhabilitadas godoc
// @Summary      Cajas inhabilitadas de la bodega
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.CajaResponse
// @Router       /api/bodegas/{id}/cajas-inhabilitadas [get]
func (h *BodegaHandler) CajasInhabilitadas(c *fiber.Ctx) error {
	out, err := h.bodegas.CajasInhabilitadas(c.Context(), c.Params("id"), GetUserID(c), IsSuperuser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerarEstructura godoc
// @Summary      Generar estantes, niveles, posiciones y cajas
// @Description  Crea solo lo que falta; volver a ejecutar con los mismos números no duplica nada.
// @Tags         bodegas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la bodega"
// @Param        body  body  dto.GenerarEstructuraRequest  true  "Cantidades"
// @Success      200   {object}  dto.GenerarEstructuraResponse
// @Router       /api/bodegas/{id}/estructura [post]
func (h *BodegaHandler) GenerarEstructura(c *fiber.Ctx) error {
	var in dto.GenerarEstructuraRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.Generar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Estantes ──────────────────────────────────────────────────────────────────

func (h *BodegaHandler) CreateEstante(c *fiber.Ctx) error {
	var in dto.EstanteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.CreateEstante(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *BodegaHandler) GetEstante(c *fiber.Ctx) error {
	out, err := h.estructura.GetEstante(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) UpdateEstante(c *fiber.Ctx) error {
	var in dto.EstanteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.UpdateEstante(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) ToggleEstante(c *fiber.Ctx) error {
	out, err := h.estructura.ToggleEstante(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Niveles ───────────────────────────────────────────────────────────────────

func (h *BodegaHandler) CreateNivel(c *fiber.Ctx) error {
	var in dto.NumeradoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.CreateNivel(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *BodegaHandler) GetNivel(c *fiber.Ctx) error {
	out, err := h.estructura.GetNivel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) UpdateNivel(c *fiber.Ctx) error {
	var in dto.NumeradoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.UpdateNivel(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) ToggleNivel(c *fiber.Ctx) error {
	out, err := h.estructura.ToggleNivel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Posiciones ────────────────────────────────────────────────────────────────

func (h *BodegaHandler) CreatePosicion(c *fiber.Ctx) error {
	var in dto.NumeradoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.CreatePosicion(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *BodegaHandler) GetPosicion(c *fiber.Ctx) error {
	out, err := h.estructura.GetPosicion(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) UpdatePosicion(c *fiber.Ctx) error {
	var in dto.NumeradoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.UpdatePosicion(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) TogglePosicion(c *fiber.Ctx) error {
	out, err := h.estructura.TogglePosicion(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Cajas ─────────────────────────────────────────────────────────────────────

func (h *BodegaHandler) CreateCaja(c *fiber.Ctx) error {
	var in dto.NumeradoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.CreateCaja(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCaja godoc
// @Summary      Caja con sus tomos
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CajaResponse
// @Router       /api/cajas/{id} [get]
func (h *BodegaHandler) GetCaja(c *fiber.Ctx) error {
	out, err := h.estructura.GetCaja(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) UpdateCaja(c *fiber.Ctx) error {
	var in dto.NumeradoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.estructura.UpdateCaja(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BodegaHandler) ToggleCaja(c *fiber.Ctx) error {
	out, err := h.estructura.ToggleCaja(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Etiquetas ─────────────────────────────────────────────────────────────────

// EtiquetasNodo devuelve el handler de etiquetas de las cajas bajo un estante, nivel o posición.
//
// @Summary      Etiquetas de las cajas de un nodo
// @Tags         bodegas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del nodo"
// @Success      200  {file}  binary
// @Router       /api/estantes/{id}/etiquetas [get]
func (h *BodegaHandler) EtiquetasNodo(nodo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pdf, err := h.etiquetas.EtiquetaNodo(c.Context(), nodo, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return sendPDF(c, pdf)
	}
}

// EtiquetaCaja godoc
// @Summary      Etiqueta de una caja
// @Tags         bodegas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {file}  binary
// @Router       /api/cajas/{id}/etiquetas [get]
func (h *BodegaHandler) EtiquetaCaja(c *fiber.Ctx) error {
	pdf, err := h.etiquetas.EtiquetaCaja(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf)
}

// sendPDF responde el documento como descarga.
func sendPDF(c *fiber.Ctx, pdf *expedientes.PDF) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+pdf.Nombre+`"`)
	return c.Send(pdf.Contenido)
}
