package dto

import "time"

// SolicitanteRequest alta o edición de solicitante.
type SolicitanteRequest struct {
	Codigo    int    `json:"codigo" validate:"min=0"`
	Nombre    string `json:"nombre" validate:"required,max=30"`
	Area      string `json:"area" validate:"required,oneof=EXP FHA"`
	Extension string `json:"extension" validate:"max=10"`
	Correo    string `json:"correo" validate:"omitempty,email"`
	Gerencia  string `json:"gerencia" validate:"max=90"`
	Vigente   *bool  `json:"vigente"`
}

// SolicitanteResponse salida de un solicitante.
type SolicitanteResponse struct {
	ID        string `json:"id"`
	Codigo    int    `json:"codigo"`
	Nombre    string `json:"nombre"`
	Area      string `json:"area"`
	Extension string `json:"extension"`
	Correo    string `json:"correo"`
	Gerencia  string `json:"gerencia"`
	Vigente   bool   `json:"vigente"`
}

// MotivoRequest alta o edición de motivo.
type MotivoRequest struct {
	Nombre  string `json:"nombre" validate:"required,max=90"`
	Area    string `json:"area" validate:"required,oneof=EXP FHA"`
	Demanda bool   `json:"demanda"`
	Vigente *bool  `json:"vigente"`
}

// MotivoResponse salida de un motivo.
type MotivoResponse struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Area    string `json:"area"`
	Demanda bool   `json:"demanda"`
	Vigente bool   `json:"vigente"`
}

// DemandaResponse indica si el motivo requiere bufete.
type DemandaResponse struct {
	Demanda bool `json:"demanda"`
}

// DocumentoFHARequest alta o edición de documento FHA.
type DocumentoFHARequest struct {
	CreditoID string `json:"credito_id" validate:"required,uuid"`
	Tipo      string `json:"tipo" validate:"required,oneof=CED SEG ESC"`
	Numero    string `json:"numero" validate:"required,max=30"`
	Ubicacion string `json:"ubicacion" validate:"max=12"`
	Poliza    string `json:"poliza" validate:"max=30"`
	Vigente   *bool  `json:"vigente"`
}

// DocumentoFHAResponse salida de un documento FHA.
type DocumentoFHAResponse struct {
	ID        string `json:"id"`
	CreditoID string `json:"credito_id"`
	Tipo      string `json:"tipo"`
	Numero    string `json:"numero"`
	Ubicacion string `json:"ubicacion"`
	Poliza    string `json:"poliza"`
	Vigente   bool   `json:"vigente"`
}

// SolicitudFHARequest alta de solicitud de un documento FHA.
type SolicitudFHARequest struct {
	DocumentoID   string `json:"documento_id" validate:"required,uuid"`
	SolicitanteID string `json:"solicitante_id" validate:"required,uuid"`
	MotivoID      string `json:"motivo_id" validate:"required,uuid"`
	Bufete        string `json:"bufete" validate:"max=90"`
}

// ActualizarSolicitudFHARequest fechas del ciclo del documento prestado.
type ActualizarSolicitudFHARequest struct {
	Bufete          *string    `json:"bufete" validate:"omitempty,max=90"`
	FechaEgreso     *time.Time `json:"fecha_egreso"`
	PolizaEgreso    *string    `json:"poliza_egreso" validate:"omitempty,max=30"`
	FechaEntrega    *time.Time `json:"fecha_entrega"`
	FechaDevolucion *time.Time `json:"fecha_devolucion"`
	RegresoBoveda   *time.Time `json:"regreso_boveda"`
}

// SolicitudFHAResponse salida de una solicitud FHA.
type SolicitudFHAResponse struct {
	ID              string     `json:"id"`
	FechaSolicitud  time.Time  `json:"fecha_solicitud"`
	Bufete          string     `json:"bufete"`
	FechaEgreso     *time.Time `json:"fecha_egreso,omitempty"`
	PolizaEgreso    string     `json:"poliza_egreso"`
	FechaEntrega    *time.Time `json:"fecha_entrega,omitempty"`
	FechaDevolucion *time.Time `json:"fecha_devolucion,omitempty"`
	RegresoBoveda   *time.Time `json:"regreso_boveda,omitempty"`
	Vigente         bool       `json:"vigente"`
	Abierta         bool       `json:"abierta"`
	DocumentoID     string     `json:"documento_id"`
	SolicitanteID   string     `json:"solicitante_id"`
	MotivoID        string     `json:"motivo_id"`
	UsuarioID       string     `json:"usuario_id"`
}
