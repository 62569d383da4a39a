package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-expedientes/internal/application/auth"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/jwt"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

const secret = "test-secret"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type usuarioRepo struct {
	repository.UsuarioRepository
	usuarios map[string]*entity.Usuario
	permisos map[string][]string
	logins   int
}

func (r *usuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	return r.usuarios[id], nil
}

func (r *usuarioRepo) FindByLogin(_ context.Context, login string) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepo) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepo) TouchLastLogin(context.Context, string, time.Time) error {
	r.logins++
	return nil
}

func (r *usuarioRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.usuarios[id].PasswordHash = hash
	return nil
}

func (r *usuarioRepo) Permisos(_ context.Context, id string) ([]string, error) {
	return r.permisos[id], nil
}

func (r *usuarioRepo) HasPermiso(_ context.Context, id, codename string) (bool, error) {
	for _, p := range r.permisos[id] {
		if p == codename {
			return true, nil
		}
	}
	return false, nil
}

type correoRepo struct {
	repository.CorreoRepository
	encolados []*entity.Correo
}

func (r *correoRepo) Enqueue(_ context.Context, c *entity.Correo) error {
	r.encolados = append(r.encolados, c)
	return nil
}

type renderer struct{}

func (renderer) Render(m notificacion.Mensaje) (string, error) { return m.Titulo + "|" + m.Enlace, nil }

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func nuevoAuth(t *testing.T) (*auth.AuthUseCase, *usuarioRepo, *correoRepo) {
	t.Helper()
	users := &usuarioRepo{
		usuarios: map[string]*entity.Usuario{
			"u1": {ID: "u1", Username: "jperez", Email: "jperez@banco.gt", FirstName: "Juan", LastName: "Pérez", PasswordHash: hash(t, "secreto123"), IsActive: true},
			"u2": {ID: "u2", Username: "inactivo", Email: "inactivo@banco.gt", PasswordHash: hash(t, "secreto123")},
		},
		permisos: map[string][]string{
			"u1": {"documentos.view_bodega", "documentos.add_tomo", "qlik.add_stream"},
		},
	}
	correos := &correoRepo{}
	uc := auth.NewAuthUseCase(users, correos, notificacion.NewComposer(renderer{}, "erp@banco.gt"),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "erp"}, logger.Nop())
	return uc, users, correos
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	uc, users, _ := nuevoAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: " jperez@banco.gt ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", out.User.Nombre)
	assert.NotNil(t, out.User.LastLogin)
	assert.Equal(t, 1, users.logins)

	claims, err := jwt.Parse(secret, out.Token, jwt.PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.False(t, claims.Superuser)
}

func TestLogin_Errores(t *testing.T) {
	uc, _, _ := nuevoAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Login: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.True(t, auth.IsAuthError(err))

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "jperez", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "inactivo", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, auth.IsAuthError(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiarPassword(t *testing.T) {
	uc, users, _ := nuevoAuth(t)
	ctx := context.Background()

	err := uc.CambiarPassword(ctx, "u1", dto.CambiarPasswordRequest{Actual: "mala", Nueva: "nueva1234", Confirmacion: "nueva1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.CambiarPassword(ctx, "u1", dto.CambiarPasswordRequest{Actual: "secreto123", Nueva: "nueva1234", Confirmacion: "otra12345"})
	assert.Equal(t, "Las contraseñas no coinciden", domain.Message(err))

	require.NoError(t, uc.CambiarPassword(ctx, "u1", dto.CambiarPasswordRequest{Actual: "secreto123", Nueva: "nueva1234", Confirmacion: "nueva1234"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.usuarios["u1"].PasswordHash), []byte("nueva1234")))
}

func TestSolicitarReset_EncolaCorreo(t *testing.T) {
	uc, _, correos := nuevoAuth(t)

	require.NoError(t, uc.SolicitarReset(context.Background(), dto.SolicitarResetRequest{Email: "jperez@banco.gt"}))
	require.Len(t, correos.encolados, 1)
	c := correos.encolados[0]
	assert.Equal(t, []string{"jperez@banco.gt"}, c.Destinatarios)
	assert.Equal(t, "erp@banco.gt", c.Remitente)
	assert.Equal(t, entity.CorreoPendiente, c.Estado)
	assert.Contains(t, c.HTML, "Recuperación de contraseña|")
}

// Un email desconocido o inactivo no revela nada ni encola correo.
func TestSolicitarReset_SinCuenta(t *testing.T) {
	uc, _, correos := nuevoAuth(t)
	ctx := context.Background()

	assert.NoError(t, uc.SolicitarReset(ctx, dto.SolicitarResetRequest{Email: "nadie@banco.gt"}))
	assert.NoError(t, uc.SolicitarReset(ctx, dto.SolicitarResetRequest{Email: "inactivo@banco.gt"}))
	assert.Empty(t, correos.encolados)
}

func TestConfirmarReset_UnSoloUso(t *testing.T) {
	uc, users, _ := nuevoAuth(t)
	ctx := context.Background()
	token, err := jwt.GenerateReset(secret, "u1", auth.Fingerprint(users.usuarios["u1"].PasswordHash), "erp", auth.ResetExpMinutes)
	require.NoError(t, err)
	in := dto.ConfirmarResetRequest{Token: token, Nueva: "nueva1234", Confirmacion: "nueva1234"}

	require.NoError(t, uc.ConfirmarReset(ctx, in))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.usuarios["u1"].PasswordHash), []byte("nueva1234")))

	// la contraseña cambió y el fingerprint ya no coincide
	err = uc.ConfirmarReset(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestConfirmarReset_TokenDeSesion(t *testing.T) {
	uc, _, _ := nuevoAuth(t)
	token, err := jwt.Generate(secret, "u1", "jperez", false, "erp", 60)
	require.NoError(t, err)

	err = uc.ConfirmarReset(context.Background(), dto.ConfirmarResetRequest{Token: token, Nueva: "nueva1234", Confirmacion: "nueva1234"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestApps(t *testing.T) {
	uc, _, _ := nuevoAuth(t)
	ctx := context.Background()

	apps, err := uc.Apps(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, apps, 1, "qlik.add_stream no es permiso de consulta")
	assert.Equal(t, entity.AppDocumentos, apps[0].Nombre)
	assert.Equal(t, "Documentos", apps[0].Titulo)

	apps, err = uc.Apps(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, apps, len(entity.Apps))
}

func TestTienePermiso(t *testing.T) {
	uc, _, _ := nuevoAuth(t)
	ctx := context.Background()

	ok, err := uc.TienePermiso(ctx, "u1", false, "documentos.add_tomo")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.TienePermiso(ctx, "u1", false, "documentos.delete_tomo")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.TienePermiso(ctx, "u2", true, "documentos.delete_tomo")
	require.NoError(t, err)
	assert.True(t, ok)
}
