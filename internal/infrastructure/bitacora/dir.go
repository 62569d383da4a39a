// Package bitacora escribe las bitácoras de las cargas masivas en disco.
package bitacora

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jhoicas/erp-expedientes/internal/application/carga"
)

var _ carga.LogWriter = (*Dir)(nil)

// Dir guarda cada bitácora como <nombre>.log dentro de un directorio.
type Dir struct {
	path string
}

// NewDir crea el directorio si no existe.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("bitácora: %w", err)
	}
	return &Dir{path: path}, nil
}

// Open abre <dir>/<nombre>.log para agregar al final; dos cargas en el mismo segundo comparten archivo.
func (d *Dir) Open(nombre string) (io.WriteCloser, error) {
	f, err := os.OpenFile(d.Path(nombre), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("bitácora %s: %w", nombre, err)
	}
	return f, nil
}

// Path devuelve la ruta de una bitácora por nombre.
func (d *Dir) Path(nombre string) string {
	return filepath.Join(d.path, filepath.Base(nombre)+".log")
}
