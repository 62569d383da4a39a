package expedientes

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Los correos se encolan en la misma transacción que el cambio de los tomos.
type TxRunner interface {
	RunTomos(ctx context.Context, fn func(
		tomoRepo repository.TomoRepository,
		creditoRepo repository.CreditoRepository,
		correoRepo repository.CorreoRepository,
	) error) error
}

// PickList lista de tomos a extraer, una por usuario.
type PickList interface {
	// Add agrega el tomo; devuelve false si ya estaba en la lista.
	Add(ctx context.Context, userID, tomoID string) (bool, error)
	// Remove quita solo los tomos indicados; lo agregado entre tanto se conserva.
	Remove(ctx context.Context, userID string, tomoIDs ...string) error
	Members(ctx context.Context, userID string) ([]string, error)
}

// Etiqueta una etiqueta impresa: código de barras y QR del código, más dos líneas de texto.
type Etiqueta struct {
	Codigo  string
	Titulo  string
	Detalle string
}

// LabelGenerator genera el PDF de una hoja de etiquetas.
type LabelGenerator interface {
	Generate(titulo string, etiquetas []Etiqueta) ([]byte, error)
}
