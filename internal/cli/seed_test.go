package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrupos(t *testing.T) {
	in := `
grupos:
  - nombre: Archivo
    permisos: [documentos.view_tomo, documentos.change_tomo]
  - nombre: Qlik
    permisos: [qlik.view_stream]
`
	grupos, err := parseGrupos(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, grupos, 2)
	assert.Equal(t, "Archivo", grupos[0].Nombre)
	assert.Equal(t, []string{"documentos.view_tomo", "documentos.change_tomo"}, grupos[0].Permisos)
}

func TestParseGrupos_Errores(t *testing.T) {
	casos := map[string]string{
		"sin nombre":       "grupos:\n  - permisos: [documentos.view_tomo]\n",
		"repetido":         "grupos:\n  - nombre: A\n  - nombre: A\n",
		"codename sin app": "grupos:\n  - nombre: A\n    permisos: [view_tomo]\n",
		"sin modelo":       "grupos:\n  - nombre: A\n    permisos: [documentos.view]\n",
		"yaml inválido":    "grupos: [",
	}
	for nombre, in := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := parseGrupos(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

// El archivo versionado debe pasar la misma validación que usa seed.
func TestParseGrupos_ArchivoDelRepositorio(t *testing.T) {
	f, err := os.Open("../../seeds/grupos.yaml")
	require.NoError(t, err)
	defer f.Close()

	grupos, err := parseGrupos(f)
	require.NoError(t, err)
	assert.NotEmpty(t, grupos)
}

func TestRootCommand_Subcomandos(t *testing.T) {
	root := NewRootCommand()
	for _, path := range [][]string{
		{"migrate"},
		{"seed"},
		{"import"},
		{"estructura", "generar"},
		{"mail", "dispatch"},
		{"usuario", "crear"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
