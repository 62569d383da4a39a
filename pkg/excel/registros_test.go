package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/erp-expedientes/pkg/excel"
)

var campos = []excel.Campo{
	{Columna: "Credito", Tipo: excel.Texto},
	{Columna: "Cod_Cliente", Tipo: excel.Entero},
	{Columna: "Monto", Tipo: excel.Numero, Vacio: true},
	{Columna: "Fecha_Ini", Tipo: excel.Fecha, Vacio: true},
	{Columna: "Escaneado", Tipo: excel.Booleano, Vacio: true, Valores: "SI|NO"},
}

func TestLeerRegistros_ColumnasPorNombre(t *testing.T) {
	rows := [][]string{
		{"Escaneado", "Monto", "Credito", "Fecha_Ini", "Cod_Cliente", "Extra"},
		{"Si", "1500.25", "1001", "15/03/2021", "77", "x"},
		{"no", "", "1002", "fecha mala", "abc"},
	}
	res, err := excel.LeerRegistros(rows, campos)
	require.NoError(t, err)
	require.Len(t, res.Registros, 2)
	assert.Empty(t, res.Excluidos)

	r := res.Registros[0]
	assert.Equal(t, "1001", r.Texto("Credito"))
	assert.Equal(t, int64(77), r.Entero("Cod_Cliente"))
	assert.True(t, decimal.RequireFromString("1500.25").Equal(r.Numero("Monto")))
	assert.Equal(t, time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), r.Fecha("Fecha_Ini"))
	assert.True(t, r.Booleano("Escaneado"))

	r = res.Registros[1]
	assert.Equal(t, int64(0), r.Entero("Cod_Cliente"), "entero inválido vale cero")
	assert.True(t, r.Numero("Monto").IsZero())
	assert.True(t, r.Fecha("Fecha_Ini").IsZero(), "fecha inválida queda en cero")
	assert.False(t, r.Booleano("Escaneado"))
}

func TestLeerRegistros_Excluidos(t *testing.T) {
	rows := [][]string{
		{"Credito", "Cod_Cliente", "Monto", "Fecha_Ini", "Escaneado"},
		{"", "1", "", "", ""},
		{"1003", "2", "", "", "QUIZAS"},
		{},
		{"1004", "3"},
	}
	res, err := excel.LeerRegistros(rows, campos)
	require.NoError(t, err)
	require.Len(t, res.Registros, 1)
	assert.Equal(t, "1004", res.Registros[0].Texto("Credito"))
	assert.Equal(t, []excel.Excluido{{Fila: 2, Columna: "Credito"}, {Fila: 3, Columna: "Escaneado"}}, res.Excluidos)
	assert.Equal(t, "f:     2 >> Credito", res.Excluidos[0].String())
}

func TestLeerRegistros_FaltaColumna(t *testing.T) {
	_, err := excel.LeerRegistros([][]string{{"Credito"}}, campos)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cod_Cliente")

	_, err = excel.LeerRegistros(nil, campos)
	require.Error(t, err)
}

func TestReader_Hojas(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Credito", "Monto"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"1001", "10.5"}))
	_, err := f.NewSheet("FHA")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("FHA", "A1", &[]any{"Credito", "Tipo"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	hojas, err := excel.NewReader().Hojas(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, hojas, 2)
	assert.Equal(t, [][]string{{"Credito", "Monto"}, {"1001", "10.5"}}, hojas[0])
	assert.Equal(t, [][]string{{"Credito", "Tipo"}}, hojas[1])
}

func TestReader_ArchivoInvalido(t *testing.T) {
	_, err := excel.NewReader().Hojas(bytes.NewReader([]byte("no es xlsx")))
	assert.Error(t, err)
}
