package entity

import "fmt"

// Tipos de usuario de directorio.
const (
	TipoUsuarioBDR = "BDR"
	TipoUsuarioOUT = "OUT"
)

var tipoUsuarioDisplay = map[string]string{
	TipoUsuarioBDR: "gfbanrural/usr",
	TipoUsuarioOUT: "gfbanrural/out",
}

// Tipos de objeto sobre los que se otorgan permisos Qlik.
const (
	ObjetoStream   = "Stream"
	ObjetoModelo   = "Modelo"
	ObjetoTipoDato = "TipoDato"
)

// TipoLicencia bolsa de licencias con cupo.
type TipoLicencia struct {
	ID          string
	Descripcion string
	Cantidad    int
	Asignadas   int // completado en lecturas
}

// Disponibles cupo restante.
func (t *TipoLicencia) Disponibles() int { return t.Cantidad - t.Asignadas }

// Licencia usuario con licencia Qlik asignada.
type Licencia struct {
	ID              string
	Codigo          int
	TipoUsuario     string
	Nombre          string
	Gerencia        string
	Pais            string
	TipoLicenciaID  string
	TipoLicenciaDsc string
}

// UsuarioAD usuario de directorio, p. ej. "gfbanrural/usr000123".
func (l *Licencia) UsuarioAD() string {
	return tipoUsuarioDisplay[l.TipoUsuario] + fmt.Sprintf("%06d", l.Codigo)
}

func (l *Licencia) String() string { return fmt.Sprintf("%s (%d)", l.Nombre, l.Codigo) }

// TipoUsuarioValido indica si el tipo de usuario existe.
func TipoUsuarioValido(t string) bool {
	_, ok := tipoUsuarioDisplay[t]
	return ok
}

// Permiso acceso de una licencia a un objeto Qlik.
type Permiso struct {
	ID           string
	LicenciaID   string
	TipoObjeto   string
	ObjetoID     string
	ObjetoNombre string // completado en lecturas
	Licencia     *Licencia
}

// TipoObjetoValido indica si el tipo de objeto admite permisos.
func TipoObjetoValido(t string) bool {
	return t == ObjetoStream || t == ObjetoModelo || t == ObjetoTipoDato
}
