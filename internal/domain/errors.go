package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Reglas del archivo de expedientes.
	ErrSinTomos           = errors.New("no hay tomos para deshabilitar")
	ErrTomoEnCaja         = errors.New("el tomo se encuentra ingresado en una caja")
	ErrTomoAsignado       = errors.New("el tomo ya está asignado a una caja")
	ErrCajaInactiva       = errors.New("la caja no está vigente")
	ErrBodegaInactiva     = errors.New("la bodega no está vigente")
	ErrSinPermisoBodega   = errors.New("usuario no puede asignar expedientes en esa caja")
	ErrReferenciaInvalida = errors.New("referencia mal ingresada")
	ErrTomoNoCorresponde  = errors.New("tomo no corresponde al seleccionado")
	ErrTomoEnLista        = errors.New("tomo agregado previamente")
	ErrSolicitudActiva    = errors.New("el documento tiene una solicitud activa")
)

// BusinessError acompaña un error de dominio con el mensaje que verá el usuario.
type BusinessError struct {
	Kind    error
	Message string
}

// NewBusinessError construye un error de regla de negocio.
func NewBusinessError(kind error, msg string) *BusinessError {
	return &BusinessError{Kind: kind, Message: msg}
}

func (e *BusinessError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrX).
func (e *BusinessError) Unwrap() error { return e.Kind }

// Message devuelve el mensaje para el usuario si err es un BusinessError, o el texto del error.
func Message(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
