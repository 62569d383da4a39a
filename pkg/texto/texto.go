// Package texto normaliza códigos y nombres capturados por los usuarios.
package texto

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mayusculas recorta espacios y pasa a mayúsculas con reglas del español.
// Un Caser guarda estado, por eso se crea uno por llamada.
func Mayusculas(s string) string {
	return cases.Upper(language.Spanish).String(strings.TrimSpace(s))
}

// SinEspacios elimina todos los espacios de una referencia tipo "CREDITO - 1".
func SinEspacios(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// SoloLetras indica si s contiene únicamente letras ASCII A-Z (sin importar mayúsculas).
func SoloLetras(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// Resumen corta s a max runas y agrega "...".
func Resumen(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		r = r[:max]
	}
	return string(r) + "..."
}
