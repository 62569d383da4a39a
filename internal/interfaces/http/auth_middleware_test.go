package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/erp-expedientes/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-expedientes/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "jperez"
	testIssuer    = "erp-expedientes-test"
	testExpMin    = 60
	testPermiso   = "documentos.view_bodega"
)

// fakeChecker concede los permisos listados; err simula la caída de la DB.
type fakeChecker struct {
	permisos map[string]bool
	err      error
	calls    int
}

func (f *fakeChecker) TienePermiso(_ context.Context, _ string, _ bool, perm string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.permisos[perm], nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(checker *fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(testPermiso, checker),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":       true,
				"username": apphttp.GetUsername(c),
			})
		},
	)
	return app
}

func sessionToken(t *testing.T, superuser bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, superuser, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso(t *testing.T) {
	checker := &fakeChecker{permisos: map[string]bool{testPermiso: true}}
	resp := doRequest(t, buildTestApp(checker), sessionToken(t, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUsername, body["username"])
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	checker := &fakeChecker{permisos: map[string]bool{"documentos.add_bodega": true}}
	resp := doRequest(t, buildTestApp(checker), sessionToken(t, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

// El superusuario no consulta la DB.
func TestRequirePermission_Superusuario(t *testing.T) {
	checker := &fakeChecker{}
	resp := doRequest(t, buildTestApp(checker), sessionToken(t, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, checker.calls)
}

func TestRequirePermission_FallaConsulta_Retorna503(t *testing.T) {
	checker := &fakeChecker{err: errors.New("conexión rechazada")}
	resp := doRequest(t, buildTestApp(checker), sessionToken(t, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "PERMISSION_CHECK_FAILED")
}

func TestRequirePermission_SinUsuario_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequirePermission(testPermiso, &fakeChecker{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(&fakeChecker{}), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(&fakeChecker{}), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(&fakeChecker{}), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token de restablecimiento no abre sesión.
func TestAuthMiddleware_TokenReset_Retorna401(t *testing.T) {
	tok, err := pkgjwt.GenerateReset(testJWTSecret, testUserID, "huella", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(&fakeChecker{}), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"username":  apphttp.GetUsername(c),
			"superuser": apphttp.IsSuperuser(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", sessionToken(t, true))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["username"])
	assert.Equal(t, true, body["superuser"])
}
