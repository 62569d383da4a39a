package entity

import "time"

// Módulos instalados que se muestran en el índice de aplicaciones.
const (
	AppDocumentos  = "documentos"
	AppExpedientes = "expedientes"
	AppQlik        = "qlik"
	AppUsuarios    = "usuarios"
)

// Apps lista los módulos en el orden en que se presentan.
var Apps = []string{AppDocumentos, AppExpedientes, AppQlik, AppUsuarios}

// PrefijoGrupoDocumentos identifica los grupos cuyos miembros pueden ser personal de bodega.
const PrefijoGrupoDocumentos = "documentos"

// Usuario representa una cuenta del sistema.
type Usuario struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsActive     bool
	IsSuperuser  bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto devuelve nombre y apellido, o el username si no hay ninguno.
func (u *Usuario) NombreCompleto() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// Grupo agrupa permisos con codename "app.accion_modelo" (ej. documentos.view_bodega).
type Grupo struct {
	ID       string
	Nombre   string
	Permisos []string
}
