package bitacora_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/infrastructure/bitacora"
)

func escribir(t *testing.T, d *bitacora.Dir, nombre, texto string) {
	t.Helper()
	w, err := d.Open(nombre)
	require.NoError(t, err)
	_, err = io.WriteString(w, texto)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestDir_Open(t *testing.T) {
	base := filepath.Join(t.TempDir(), "logs")
	d, err := bitacora.NewDir(base)
	require.NoError(t, err)

	escribir(t, d, "20240101_101010-CargaCreditos", "Credito > 1001\n")

	b, err := os.ReadFile(filepath.Join(base, "20240101_101010-CargaCreditos.log"))
	require.NoError(t, err)
	assert.Equal(t, "Credito > 1001\n", string(b))
}

// Dos cargas con el mismo nombre agregan al archivo existente.
func TestDir_Open_AgregaAlFinal(t *testing.T) {
	base := t.TempDir()
	d, err := bitacora.NewDir(base)
	require.NoError(t, err)

	escribir(t, d, "20260101_101010-CargaFHA", "primera carga\n")
	escribir(t, d, "20260101_101010-CargaFHA", "segunda carga\n")

	b, err := os.ReadFile(d.Path("20260101_101010-CargaFHA"))
	require.NoError(t, err)
	assert.Equal(t, "primera carga\nsegunda carga\n", string(b))
}

func TestDir_Path(t *testing.T) {
	base := t.TempDir()
	d, err := bitacora.NewDir(base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "20260101_101010-CargaCreditos.log"), d.Path("20260101_101010-CargaCreditos"))
	assert.Equal(t, filepath.Join(base, "x.log"), d.Path("../../x"), "no escapa del directorio")
}
