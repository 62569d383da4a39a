package entity

import "time"

// Áreas que atienden solicitudes.
const (
	AreaExpedientes = "EXP"
	AreaFHA         = "FHA"
)

// Tipos de documento FHA.
const (
	DocumentoCedula    = "CED"
	DocumentoSeguro    = "SEG"
	DocumentoEscritura = "ESC"
)

// Solicitante persona que pide expedientes o documentos.
type Solicitante struct {
	ID        string
	Codigo    int
	Nombre    string
	Area      string
	Extension string
	Correo    string
	Gerencia  string
	Vigente   bool
}

// Motivo razón de una solicitud; Demanda indica si requiere bufete.
type Motivo struct {
	ID      string
	Nombre  string
	Area    string
	Demanda bool
	Vigente bool
}

// DocumentoFHA documento de garantía asociado a un crédito.
type DocumentoFHA struct {
	ID        string
	Tipo      string
	Numero    string
	Ubicacion string
	Poliza    string
	Vigente   bool
	CreditoID string
}

// SolicitudFHA préstamo de un documento FHA.
type SolicitudFHA struct {
	ID              string
	FechaSolicitud  time.Time
	Bufete          string
	FechaEgreso     *time.Time
	PolizaEgreso    string
	FechaEntrega    *time.Time
	FechaDevolucion *time.Time
	RegresoBoveda   *time.Time
	Vigente         bool
	DocumentoID     string
	SolicitanteID   string
	MotivoID        string
	UsuarioID       string
}

// Abierta indica si la solicitud aún no ha egresado.
func (s *SolicitudFHA) Abierta() bool { return s.Vigente && s.FechaEgreso == nil }
