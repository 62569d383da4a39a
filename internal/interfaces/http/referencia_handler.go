package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
)

// ReferenciaHandler tablas de referencia de créditos: clientes, monedas, productos y oficinas.
type ReferenciaHandler struct {
	uc *usecase.ReferenciaUseCase
}

// NewReferenciaHandler construye el handler.
func NewReferenciaHandler(uc *usecase.ReferenciaUseCase) *ReferenciaHandler {
	return &ReferenciaHandler{uc: uc}
}

// ListClientes godoc
// @Summary      Listar clientes
// @Tags         referencias
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Código o nombre"
// @Success      200  {object}  dto.ListResponse[dto.ClienteResponse]
// @Router       /api/clientes [get]
func (h *ReferenciaHandler) ListClientes(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListClientes(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) CreateCliente(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateCliente(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ReferenciaHandler) UpdateCliente(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateCliente(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) ListMonedas(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMonedas(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) CreateMoneda(c *fiber.Ctx) error {
	var in dto.MonedaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateMoneda(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ReferenciaHandler) UpdateMoneda(c *fiber.Ctx) error {
	var in dto.MonedaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateMoneda(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) ListProductos(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListProductos(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) CreateProducto(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateProducto(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ReferenciaHandler) UpdateProducto(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProducto(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) ListOficinas(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListOficinas(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReferenciaHandler) CreateOficina(c *fiber.Ctx) error {
	var in dto.OficinaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateOficina(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ReferenciaHandler) UpdateOficina(c *fiber.Ctx) error {
	var in dto.OficinaRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateOficina(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
