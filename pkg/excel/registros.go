// Package excel lee libros .xlsx y convierte sus filas en registros tipados.
package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipo conversión que se aplica a una celda.
type Tipo string

const (
	Texto    Tipo = "str"
	Entero   Tipo = "int"
	Numero   Tipo = "float"
	Booleano Tipo = "bool"
	Fecha    Tipo = "date"
)

// FormatoFecha formato de las fechas capturadas en las hojas (dd/mm/YYYY).
const FormatoFecha = "02/01/2006"

// Campo describe una columna esperada en la hoja.
type Campo struct {
	Columna string // encabezado en la primera fila
	Tipo    Tipo
	Vacio   bool   // admite celdas vacías
	Valores string // valores aceptados separados por "|", en mayúsculas; el primero es el verdadero en Booleano
}

func (c Campo) aceptados() []string {
	if c.Valores == "" {
		return nil
	}
	return strings.Split(c.Valores, "|")
}

// Registro fila válida indexada por encabezado.
type Registro map[string]any

// Texto valor de una columna Texto.
func (r Registro) Texto(col string) string {
	s, _ := r[col].(string)
	return s
}

// Entero valor de una columna Entero.
func (r Registro) Entero(col string) int64 {
	n, _ := r[col].(int64)
	return n
}

// Numero valor de una columna Numero.
func (r Registro) Numero(col string) decimal.Decimal {
	d, _ := r[col].(decimal.Decimal)
	return d
}

// Booleano valor de una columna Booleano.
func (r Registro) Booleano(col string) bool {
	b, _ := r[col].(bool)
	return b
}

// Fecha valor de una columna Fecha; cero si no se pudo interpretar.
func (r Registro) Fecha(col string) time.Time {
	t, _ := r[col].(time.Time)
	return t
}

// Excluido fila descartada y la columna que la invalidó.
type Excluido struct {
	Fila    int // número de fila en la hoja, desde 1
	Columna string
}

func (e Excluido) String() string {
	return fmt.Sprintf("f:%6d >> %s", e.Fila, e.Columna)
}

// Resultado registros válidos y filas excluidas.
type Resultado struct {
	Registros []Registro
	Excluidos []Excluido
}

// LeerRegistros interpreta las filas de una hoja cuya primera fila son los encabezados.
// Las columnas se ubican por nombre, así que su orden es libre. Una fila se excluye si un
// campo obligatorio está vacío o si su valor no está entre los aceptados. Las filas
// completamente vacías se ignoran.
func LeerRegistros(rows [][]string, campos []Campo) (*Resultado, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("la hoja no tiene encabezados")
	}
	indice := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		indice[strings.TrimSpace(h)] = i
	}
	for _, c := range campos {
		if _, ok := indice[c.Columna]; !ok {
			return nil, fmt.Errorf("falta la columna %s", c.Columna)
		}
	}

	res := &Resultado{}
	for n, row := range rows[1:] {
		if filaVacia(row) {
			continue
		}
		fila := n + 2
		reg := make(Registro, len(campos))
		for _, c := range campos {
			valor := celda(row, indice[c.Columna])
			if !valido(c, valor) {
				res.Excluidos = append(res.Excluidos, Excluido{Fila: fila, Columna: c.Columna})
				reg = nil
				break
			}
			reg[c.Columna] = convertir(c, valor)
		}
		if reg != nil {
			res.Registros = append(res.Registros, reg)
		}
	}
	return res, nil
}

func celda(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func filaVacia(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func valido(c Campo, valor string) bool {
	if valor == "" {
		return c.Vacio
	}
	aceptados := c.aceptados()
	if aceptados == nil {
		return true
	}
	v := normalizar(valor)
	for _, a := range aceptados {
		if v == a {
			return true
		}
	}
	return false
}

func normalizar(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

func convertir(c Campo, valor string) any {
	switch c.Tipo {
	case Entero:
		if n, err := strconv.ParseInt(valor, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(valor, 64); err == nil {
			return int64(f)
		}
		return int64(0)
	case Numero:
		d, err := decimal.NewFromString(strings.ReplaceAll(valor, ",", ""))
		if err != nil {
			return decimal.Zero
		}
		return d
	case Booleano:
		aceptados := c.aceptados()
		return len(aceptados) > 0 && normalizar(valor) == aceptados[0]
	case Fecha:
		t, err := time.Parse(FormatoFecha, valor)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return valor
	}
}
