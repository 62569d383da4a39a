package carga_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/carga"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type hojas [][][]string

func (h hojas) Hojas(io.Reader) ([][][]string, error) { return h, nil }

type ids struct{}

func (ids) NextID() int64 { return 42 }

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

type bitacoras map[string]*bytes.Buffer

func (b bitacoras) Open(nombre string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	b[nombre] = buf
	return nopCloser{buf}, nil
}

type permisos bool

func (p permisos) TienePermiso(context.Context, string, bool, string) (bool, error) {
	return bool(p), nil
}

type refRepo struct {
	repository.ReferenciaRepository
	clientes int
}

func (r *refRepo) EnsureClientes(_ context.Context, rows []*entity.Cliente) (map[int64]string, error) {
	r.clientes += len(rows)
	out := map[int64]string{}
	for _, c := range rows {
		out[c.Codigo] = "cli-" + c.Nombre
	}
	return out, nil
}

func (r *refRepo) EnsureOficinas(_ context.Context, rows []*entity.Oficina) (map[int]string, error) {
	out := map[int]string{}
	for _, o := range rows {
		out[o.Numero] = "ofi-" + o.Descripcion
	}
	return out, nil
}

func (r *refRepo) EnsureMonedas(_ context.Context, d []string) (map[string]string, error) {
	return ids2(d, "mon-"), nil
}

func (r *refRepo) EnsureProductos(_ context.Context, d []string) (map[string]string, error) {
	return ids2(d, "pro-"), nil
}

func ids2(claves []string, prefijo string) map[string]string {
	out := map[string]string{}
	for _, k := range claves {
		out[k] = prefijo + k
	}
	return out
}

type creditoRepo struct {
	repository.CreditoRepository
	existentes map[string]string
	insertados []*entity.Credito
	falla      string // número que hace fallar InsertMany
}

func (r *creditoRepo) ExistentesPorNumero(_ context.Context, numeros []string) (map[string]string, error) {
	out := map[string]string{}
	for _, n := range numeros {
		if id, ok := r.existentes[n]; ok {
			out[n] = id
		}
	}
	return out, nil
}

func (r *creditoRepo) InsertMany(_ context.Context, rows []*entity.Credito) (int64, error) {
	for _, c := range rows {
		if c.Numero == r.falla {
			return 0, errors.New("violación de llave")
		}
	}
	r.insertados = append(r.insertados, rows...)
	return int64(len(rows)), nil
}

type documentoRepo struct {
	repository.DocumentoFHARepository
	existe  map[string]bool
	creados []*entity.DocumentoFHA
}

func (r *documentoRepo) Exists(_ context.Context, creditoID, tipo, numero string) (bool, error) {
	return r.existe[creditoID+tipo+numero], nil
}

func (r *documentoRepo) Create(_ context.Context, d *entity.DocumentoFHA) error {
	r.creados = append(r.creados, d)
	return nil
}

type tx struct {
	ref *refRepo
	cre *creditoRepo
	doc *documentoRepo
}

func (t *tx) RunCarga(_ context.Context, fn func(repository.ReferenciaRepository, repository.CreditoRepository, repository.DocumentoFHARepository) error) error {
	return fn(t.ref, t.cre, t.doc)
}

var encabezado = []string{"Credito", "Cod_Cliente", "Cliente", "Cod_ofi", "Oficina", "Moneda", "Producto", "Fecha_Ini", "Monto", "Credito_Anterior", "Escaneado"}

func nuevo(h hojas, chunk int, permiso bool) (*carga.UseCase, *tx, bitacoras) {
	t := &tx{ref: &refRepo{}, cre: &creditoRepo{existentes: map[string]string{}}, doc: &documentoRepo{existe: map[string]bool{}}}
	logs := bitacoras{}
	uc := carga.NewUseCase(t, h, ids{}, logs, permisos(permiso), carga.Config{ChunkSize: chunk}, logger.Nop())
	return uc, t, logs
}

// ──────────────────────────────────────────────────────────────────────────────
// Créditos
// ──────────────────────────────────────────────────────────────────────────────

func TestCargarCreditos_InsertaNuevosYReportaExistentes(t *testing.T) {
	h := hojas{{
		encabezado,
		{"1001", "7", "ana perez", "12", "central", "gtq", "hipotecario", "01/02/2020", "1500.456", "", "SI"},
		{"1002", "7", "ana perez", "12", "central", "gtq", "hipotecario", "", "", "900", "NO"},
		{"1001", "7", "ana perez", "12", "central", "gtq", "hipotecario", "", "", "", ""},
		{"", "8", "sin numero", "12", "central", "gtq", "fiduciario", "", "", "", ""},
	}}
	uc, fx, logs := nuevo(h, 10, true)
	fx.cre.existentes["1002"] = "c-1002"

	res, err := uc.CargarCreditos(context.Background(), "u1", false, strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.ID)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, int64(1), res.Insertados)
	assert.Equal(t, 1, res.Existentes)
	assert.Equal(t, []int{5}, res.Excluidos)
	assert.Empty(t, res.Errores)
	assert.Empty(t, res.LogFHA)

	require.Len(t, fx.cre.insertados, 1)
	c := fx.cre.insertados[0]
	assert.Equal(t, "1001", c.Numero)
	assert.Equal(t, "cli-ANA PEREZ", c.ClienteID)
	assert.Equal(t, "ofi-CENTRAL", c.OficinaID)
	assert.Equal(t, "mon-GTQ", c.MonedaID)
	assert.Equal(t, "pro-HIPOTECARIO", c.ProductoID)
	assert.Equal(t, "1500.46", c.Monto.StringFixed(2))
	assert.True(t, c.Escaneado)
	require.NotNil(t, c.FechaConcesion)
	assert.Equal(t, 1, fx.ref.clientes, "clientes repetidos se envían una vez")

	require.True(t, strings.HasSuffix(res.LogCreditos, "-CargaCreditos"))
	bitacora := logs[res.LogCreditos].String()
	assert.Contains(t, bitacora, "Credito > 1001")
	assert.Contains(t, bitacora, "Credito Existente > 1002")
	assert.Contains(t, bitacora, "\nFIN: ")
}

func TestCargarCreditos_BloqueFallidoNoDetieneLaCarga(t *testing.T) {
	h := hojas{{
		encabezado,
		{"2001", "1", "a", "1", "o", "m", "p", "", "", "", ""},
		{"2002", "1", "a", "1", "o", "m", "p", "", "", "", ""},
		{"2003", "1", "a", "1", "o", "m", "p", "", "", "", ""},
	}}
	uc, fx, logs := nuevo(h, 1, true)
	fx.cre.falla = "2002"

	res, err := uc.CargarCreditos(context.Background(), "u1", false, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Insertados)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "Bloque 2-2")
	assert.NotContains(t, logs[res.LogCreditos].String(), "Credito > 2002")
}

func TestCargarCreditos_SinColumnaObligatoria(t *testing.T) {
	uc, _, _ := nuevo(hojas{{{"Credito", "Cliente"}, {"1", "x"}}}, 10, true)
	_, err := uc.CargarCreditos(context.Background(), "u1", false, strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hoja de créditos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos FHA
// ──────────────────────────────────────────────────────────────────────────────

func hojaFHA() [][]string {
	return [][]string{
		{"Credito", "Tipo", "Numero", "Ubicacion", "Poliza"},
		{"1001", "ced", "a-1", "boveda", ""},
		{"1001", "SEG", "S-9", "", "P1"},
		{"9999", "ESC", "E-1", "", ""},
	}
}

func TestCargarCreditos_DocumentosFHA(t *testing.T) {
	h := hojas{{encabezado}, hojaFHA()}
	uc, fx, logs := nuevo(h, 10, true)
	fx.cre.existentes["1001"] = "c-1001"
	fx.doc.existe["c-1001SEGS-9"] = true

	res, err := uc.CargarCreditos(context.Background(), "u1", false, strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, 1, res.DocumentosFHA)
	require.Len(t, fx.doc.creados, 1)
	d := fx.doc.creados[0]
	assert.Equal(t, "c-1001", d.CreditoID)
	assert.Equal(t, entity.DocumentoCedula, d.Tipo)
	assert.Equal(t, "A-1", d.Numero)
	assert.Equal(t, "BOVEDA", d.Ubicacion)

	require.Len(t, res.Errores, 2)
	assert.Contains(t, res.Errores[0], "Ya existe el documento.")
	assert.Contains(t, res.Errores[1], "No se encontró el número de crédito")
	require.True(t, strings.HasSuffix(res.LogFHA, "-CargaFHA"))
	assert.Contains(t, logs[res.LogFHA].String(), "DoctoFHA: 1001 CED-A-1")
}

func TestCargarCreditos_FHASinPermiso(t *testing.T) {
	h := hojas{{encabezado}, hojaFHA()}
	uc, fx, _ := nuevo(h, 10, false)

	res, err := uc.CargarCreditos(context.Background(), "u1", false, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"No tiene permisos para cargar documentos fha"}, res.Avisos)
	assert.Empty(t, fx.doc.creados)
	assert.Empty(t, res.LogFHA)
}

func TestCargarCreditos_HojaFHASoloEncabezadoSeIgnora(t *testing.T) {
	h := hojas{{encabezado}, {{"Credito", "Tipo", "Numero"}}}
	uc, _, _ := nuevo(h, 10, false)

	res, err := uc.CargarCreditos(context.Background(), "u1", false, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Avisos)
}
