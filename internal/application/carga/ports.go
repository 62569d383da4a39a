package carga

import (
	"context"
	"io"

	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// HojaReader lee las hojas de un libro de cálculo como filas de texto.
type HojaReader interface {
	Hojas(r io.Reader) ([][][]string, error)
}

// IDGenerator identifica cada corrida de carga.
type IDGenerator interface {
	NextID() int64
}

// LogWriter abre la bitácora de una carga por nombre, sin extensión.
type LogWriter interface {
	Open(nombre string) (io.WriteCloser, error)
}

// PermisoChecker consulta permisos del usuario que ejecuta la carga.
type PermisoChecker interface {
	TienePermiso(ctx context.Context, userID string, superuser bool, perm string) (bool, error)
}

// TxRunner ejecuta cada bloque de la carga en su propia transacción.
type TxRunner interface {
	RunCarga(ctx context.Context, fn func(
		referenciaRepo repository.ReferenciaRepository,
		creditoRepo repository.CreditoRepository,
		documentoRepo repository.DocumentoFHARepository,
	) error) error
}
