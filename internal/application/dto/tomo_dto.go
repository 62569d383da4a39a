package dto

import "time"

// TomoResponse salida de un tomo con su ubicación.
type TomoResponse struct {
	ID                string    `json:"id"`
	Numero            int       `json:"numero"`
	Referencia        string    `json:"referencia"`
	Vigente           bool      `json:"vigente"`
	FechaModificacion time.Time `json:"fecha_modificacion"`
	Comentario        string    `json:"comentario"`
	CreditoID         string    `json:"credito_id"`
	CajaID            *string   `json:"caja_id,omitempty"`
	Ubicacion         string    `json:"ubicacion"`
}

// IngresoTomoRequest ingreso de un tomo en una caja, ambos por su código impreso.
type IngresoTomoRequest struct {
	Tomo       string `json:"tomo" validate:"required,max=40"`
	Caja       string `json:"caja" validate:"required,max=40"`
	Comentario string `json:"comentario" validate:"max=254"`
}

// AgregarExtraccionRequest agrega un tomo a la lista de extracción.
type AgregarExtraccionRequest struct {
	TomoID     string `json:"tomo_id" validate:"required,uuid"`
	Referencia string `json:"referencia" validate:"required,max=40"`
}

// TrasladoRequest traslado de los tomos de la lista a otra bodega.
type TrasladoRequest struct {
	BodegaID   string `json:"bodega_id" validate:"required,uuid"`
	Comentario string `json:"comentario" validate:"max=150"`
}

// EgresoRequest egreso de los tomos de la lista por solicitud.
type EgresoRequest struct {
	SolicitanteID string `json:"solicitante_id" validate:"required,uuid"`
	MotivoID      string `json:"motivo_id" validate:"required,uuid"`
	Comentario    string `json:"comentario" validate:"max=254"`
}

// ExtraccionResponse tomos en la lista del usuario.
type ExtraccionResponse struct {
	Items []TomoResponse `json:"items"`
}

// MovimientoResponse resultado de un traslado o egreso.
type MovimientoResponse struct {
	Tomos   int    `json:"tomos"`
	Message string `json:"message"`
}
