package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Reader lee todas las hojas de un libro .xlsx como filas de texto.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// Hojas devuelve las filas de cada hoja en el orden del libro. Las celdas llegan con el
// formato visible en Excel, por eso las fechas deben venir como texto dd/mm/YYYY.
func (Reader) Hojas(r io.Reader) ([][][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	nombres := f.GetSheetList()
	hojas := make([][][]string, 0, len(nombres))
	for _, nombre := range nombres {
		rows, err := f.GetRows(nombre)
		if err != nil {
			return nil, fmt.Errorf("leer hoja %s: %w", nombre, err)
		}
		hojas = append(hojas, rows)
	}
	return hojas, nil
}
