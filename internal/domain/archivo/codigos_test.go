package archivo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Códigos de estante: A..Z, luego AA..AZ, BA..ZZ (máximo dos letras).
// ──────────────────────────────────────────────────────────────────────────────

func TestCodigoEstante_Frontera(t *testing.T) {
	casos := map[int]string{
		0:   "A",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		77:  "BZ",
		78:  "CA",
		701: "ZZ",
	}
	for i, want := range casos {
		assert.Equal(t, want, archivo.CodigoEstante(i), "posición %d", i)
	}
}

func TestCodigosEstante_SecuenciaCompleta(t *testing.T) {
	codigos, err := archivo.CodigosEstante(archivo.MaxEstantes)
	require.NoError(t, err)
	require.Len(t, codigos, 702)

	vistos := make(map[string]bool, len(codigos))
	for _, c := range codigos {
		assert.False(t, vistos[c], "código repetido %s", c)
		vistos[c] = true
		assert.LessOrEqual(t, len(c), 2)
	}
	assert.Equal(t, "ZZ", codigos[len(codigos)-1])
}

func TestCodigosEstante_FueraDeRango(t *testing.T) {
	for _, n := range []int{0, -1, archivo.MaxEstantes + 1} {
		_, err := archivo.CodigosEstante(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}
