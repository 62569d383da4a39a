package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/carga"
	"github.com/jhoicas/erp-expedientes/internal/domain"
)

// CargaHandler carga masiva de créditos desde Excel (protegido).
type CargaHandler struct {
	uc *carga.UseCase
}

// NewCargaHandler construye el handler.
func NewCargaHandler(uc *carga.UseCase) *CargaHandler {
	return &CargaHandler{uc: uc}
}

// CargarCreditos godoc
// @Summary      Cargar créditos desde un libro de Excel
// @Description  Hoja 1: créditos. Hoja 2 (opcional): documentos FHA.
// @Tags         cargas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "Libro .xlsx"
// @Success      200      {object}  dto.CargaResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/cargas/creditos [post]
func (h *CargaHandler) CargarCreditos(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return respondError(c, domain.NewBusinessError(domain.ErrInvalidInput, "archivo es requerido"))
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return respondError(c, domain.NewBusinessError(domain.ErrInvalidInput, "el archivo debe ser .xlsx"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.CargarCreditos(c.Context(), GetUserID(c), IsSuperuser(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
