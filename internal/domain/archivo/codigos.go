// Package archivo reúne las reglas del archivo físico de expedientes:
// códigos de estante, referencias impresas en etiquetas y la asignación de tomos.
package archivo

import (
	"fmt"

	"github.com/jhoicas/erp-expedientes/internal/domain"
)

const letras = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxEstantes cantidad de códigos de hasta dos letras (A..Z, AA..ZZ).
const MaxEstantes = len(letras) + len(letras)*len(letras)

// CodigoEstante devuelve el código del estante en la posición i (base 0).
// 0 -> A, 25 -> Z, 26 -> AA, 51 -> AZ, 52 -> BA, 701 -> ZZ.
func CodigoEstante(i int) string {
	if i < len(letras) {
		return string(letras[i])
	}
	c1, c2 := i/len(letras), i%len(letras)
	return string(letras[c1-1]) + string(letras[c2])
}

// CodigosEstante devuelve los primeros n códigos de estante.
func CodigosEstante(n int) ([]string, error) {
	if n < 1 || n > MaxEstantes {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput,
			fmt.Sprintf("La cantidad de estantes debe estar entre 1 y %d", MaxEstantes))
	}
	codigos := make([]string, n)
	for i := range codigos {
		codigos[i] = CodigoEstante(i)
	}
	return codigos, nil
}
