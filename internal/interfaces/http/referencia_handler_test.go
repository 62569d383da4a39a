package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	apphttp "github.com/jhoicas/erp-expedientes/internal/interfaces/http"
)

// fakeReferencias guarda clientes en memoria; createErr simula fallas del repositorio.
type fakeReferencias struct {
	repository.ReferenciaRepository
	clientes  map[string]*entity.Cliente
	filtro    repository.Filtro
	createErr error
}

func (f *fakeReferencias) ListClientes(_ context.Context, flt repository.Filtro) ([]*entity.Cliente, int, error) {
	f.filtro = flt
	out := make([]*entity.Cliente, 0, len(f.clientes))
	for _, c := range f.clientes {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeReferencias) GetCliente(_ context.Context, id string) (*entity.Cliente, error) {
	return f.clientes[id], nil
}

func (f *fakeReferencias) CreateCliente(_ context.Context, c *entity.Cliente) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeReferencias) UpdateCliente(_ context.Context, c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func referenciasApp(repo *fakeReferencias) *fiber.App {
	h := apphttp.NewReferenciaHandler(usecase.NewReferenciaUseCase(repo))
	app := fiber.New()
	app.Get("/clientes", h.ListClientes)
	app.Post("/clientes", h.CreateCliente)
	app.Put("/clientes/:id", h.UpdateCliente)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y edición
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCliente_NombreEnMayusculas(t *testing.T) {
	repo := &fakeReferencias{clientes: map[string]*entity.Cliente{}}
	resp := send(t, referenciasApp(repo), http.MethodPost, "/clientes", `{"codigo":15,"nombre":"josé pérez"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ClienteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(15), out.Codigo)
	assert.Equal(t, "JOSÉ PÉREZ", out.Nombre)
	assert.Len(t, repo.clientes, 1)
}

func TestCreateCliente_SinNombre_Retorna400(t *testing.T) {
	repo := &fakeReferencias{clientes: map[string]*entity.Cliente{}}
	resp := send(t, referenciasApp(repo), http.MethodPost, "/clientes", `{"codigo":15}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "nombre es requerido", body.Message)
}

func TestCreateCliente_CuerpoInvalido_Retorna400(t *testing.T) {
	repo := &fakeReferencias{clientes: map[string]*entity.Cliente{}}
	resp := send(t, referenciasApp(repo), http.MethodPost, "/clientes", `{"codigo":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateCliente_Duplicado_Retorna409(t *testing.T) {
	repo := &fakeReferencias{
		clientes:  map[string]*entity.Cliente{},
		createErr: domain.NewBusinessError(domain.ErrDuplicate, "Ya existe un cliente con ese código"),
	}
	resp := send(t, referenciasApp(repo), http.MethodPost, "/clientes", `{"codigo":15,"nombre":"ACME"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "DUPLICATE", body.Code)
	assert.Equal(t, "Ya existe un cliente con ese código", body.Message)
}

// Los errores no mapeados no exponen el detalle interno.
func TestCreateCliente_ErrorInterno_Retorna500(t *testing.T) {
	repo := &fakeReferencias{
		clientes:  map[string]*entity.Cliente{},
		createErr: errors.New("pq: connection reset"),
	}
	resp := send(t, referenciasApp(repo), http.MethodPost, "/clientes", `{"codigo":15,"nombre":"ACME"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "pq:")
}

func TestUpdateCliente_Inexistente_Retorna404(t *testing.T) {
	repo := &fakeReferencias{clientes: map[string]*entity.Cliente{}}
	resp := send(t, referenciasApp(repo), http.MethodPut, "/clientes/no-existe", `{"codigo":1,"nombre":"ACME"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestListClientes_PaginaPorDefecto(t *testing.T) {
	repo := &fakeReferencias{clientes: map[string]*entity.Cliente{
		"c1": {ID: "c1", Codigo: 1, Nombre: "ACME"},
	}}
	resp := send(t, referenciasApp(repo), http.MethodGet, "/clientes?q=acm", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ListResponse[dto.ClienteResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Items, 1)
	assert.Equal(t, dto.TamanoPagina, out.Page.Limit)
	assert.Equal(t, 1, out.Page.Total)
	assert.Equal(t, "acm", repo.filtro.Q)
}

func TestListClientes_LimiteExcedido_Retorna400(t *testing.T) {
	repo := &fakeReferencias{clientes: map[string]*entity.Cliente{}}
	resp := send(t, referenciasApp(repo), http.MethodGet, "/clientes?limit=500", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "limit debe ser como máximo 100", decodeError(t, resp).Message)
}
