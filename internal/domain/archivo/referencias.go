package archivo

import (
	"strconv"
	"strings"

	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// ErrLongitud la referencia no tiene la cantidad de partes esperada.
var ErrLongitud = domain.NewBusinessError(domain.ErrReferenciaInvalida, "Tomo mal ingresado (longitud)")

// ErrFormato alguna parte numérica de la referencia no es un número.
var ErrFormato = domain.NewBusinessError(domain.ErrReferenciaInvalida, "Tomo mal ingresado o no existe")

// TomoRef referencia impresa en la etiqueta del tomo: CREDITO-NUMERO.
type TomoRef struct {
	Credito string
	Numero  int
}

// ParseTomoRef interpreta "CREDITO-N" ignorando espacios.
func ParseTomoRef(s string) (TomoRef, error) {
	partes := strings.Split(texto.SinEspacios(s), "-")
	if len(partes) != 2 {
		return TomoRef{}, ErrLongitud
	}
	n, err := strconv.Atoi(partes[1])
	if err != nil || partes[0] == "" {
		return TomoRef{}, ErrFormato
	}
	return TomoRef{Credito: partes[0], Numero: n}, nil
}

// CajaRef referencia de una caja: BOD-EST-NIV-POS-CAJA.
type CajaRef struct {
	Bodega   string
	Estante  string
	Nivel    int
	Posicion int
	Caja     int
}

// ParseCajaRef interpreta "BOD-EST-NIV-POS-CAJA". Bodega y estante se pasan a mayúsculas.
func ParseCajaRef(s string) (CajaRef, error) {
	partes := strings.Split(texto.SinEspacios(s), "-")
	if len(partes) != 5 {
		return CajaRef{}, ErrLongitud
	}
	nums := make([]int, 3)
	for i, p := range partes[2:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return CajaRef{}, ErrFormato
		}
		nums[i] = n
	}
	return CajaRef{
		Bodega:   texto.Mayusculas(partes[0]),
		Estante:  texto.Mayusculas(partes[1]),
		Nivel:    nums[0],
		Posicion: nums[1],
		Caja:     nums[2],
	}, nil
}

// NumeroCreditoBuscado extrae el número de crédito de una búsqueda libre ("1234-2" -> "1234").
func NumeroCreditoBuscado(q string) string {
	return strings.Split(texto.SinEspacios(q), "-")[0]
}
