package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
)

var validate = validator.New()

func init() {
	// Los mensajes nombran el campo como aparece en el JSON.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// parseBody decodifica el cuerpo y valida sus tags.
func parseBody(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return domain.NewBusinessError(domain.ErrInvalidInput, "cuerpo inválido")
	}
	return validar(in)
}

// parsePage lee q, limit y offset del query string.
func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, domain.NewBusinessError(domain.ErrInvalidInput, "parámetros de consulta inválidos")
	}
	if err := validar(&p); err != nil {
		return p, err
	}
	p.DefaultPage()
	return p, nil
}

func validar(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.NewBusinessError(domain.ErrInvalidInput, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, mensaje(fe))
	}
	return domain.NewBusinessError(domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func mensaje(fe validator.FieldError) string {
	campo := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", campo)
	case "email":
		return fmt.Sprintf("%s debe ser un correo válido", campo)
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", campo, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser como máximo %s", campo, fe.Param())
	case "len":
		return fmt.Sprintf("%s debe tener %s caracteres", campo, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", campo, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s debe ser un identificador válido", campo)
	case "eqfield":
		return fmt.Sprintf("%s no coincide", campo)
	case "alpha":
		return fmt.Sprintf("%s solo admite letras", campo)
	default:
		return fmt.Sprintf("%s no es válido (%s)", campo, fe.Tag())
	}
}
