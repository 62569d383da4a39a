package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/jwt"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// ResetExpMinutes vigencia del token de recuperación de contraseña.
const ResetExpMinutes = 30

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var appTitulos = map[string]string{
	entity.AppDocumentos:  "Documentos",
	entity.AppExpedientes: "Expedientes",
	entity.AppQlik:        "Qlik Sense",
	entity.AppUsuarios:    "Usuarios",
}

// AuthUseCase casos de uso de autenticación, perfil y permisos.
type AuthUseCase struct {
	userRepo   repository.UsuarioRepository
	correoRepo repository.CorreoRepository
	composer   *notificacion.Composer
	jwtCfg     JWTConfig
	log        *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UsuarioRepository,
	correoRepo repository.CorreoRepository,
	composer *notificacion.Composer,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, correoRepo: correoRepo, composer: composer, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// Login verifica usuario o email y password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByLogin(ctx, strings.TrimSpace(in.Login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.IsSuperuser, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUsuarioResponse(user),
	}, nil
}

// Perfil devuelve los datos del usuario autenticado.
func (uc *AuthUseCase) Perfil(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUsuarioResponse(user), nil
}

// ActualizarPerfil cambia nombre, apellido y email.
func (uc *AuthUseCase) ActualizarPerfil(ctx context.Context, userID string, in dto.PerfilRequest) (*dto.UsuarioResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.UpdatePerfil(ctx, user); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(user), nil
}

// CambiarPassword valida la contraseña actual y guarda la nueva.
func (uc *AuthUseCase) CambiarPassword(ctx context.Context, userID string, in dto.CambiarPasswordRequest) error {
	if len(in.Nueva) < 8 {
		return domain.NewBusinessError(domain.ErrInvalidInput, "La contraseña debe tener al menos 8 caracteres")
	}
	if in.Nueva != in.Confirmacion {
		return domain.NewBusinessError(domain.ErrInvalidInput, "Las contraseñas no coinciden")
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Actual)); err != nil {
		return domain.NewBusinessError(domain.ErrInvalidInput, "La contraseña actual no es correcta")
	}
	return uc.setPassword(ctx, user.ID, in.Nueva)
}

// SolicitarReset encola el correo de recuperación. Un email desconocido no produce error.
func (uc *AuthUseCase) SolicitarReset(ctx context.Context, in dto.SolicitarResetRequest) error {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		uc.log.Info().Str("email", in.Email).Msg("reset solicitado para email sin cuenta activa")
		return nil
	}
	token, err := jwt.GenerateReset(uc.jwtCfg.Secret, user.ID, Fingerprint(user.PasswordHash), uc.jwtCfg.Issuer, ResetExpMinutes)
	if err != nil {
		return err
	}
	correo, err := uc.composer.Componer(notificacion.Mensaje{
		Asunto: "Recuperación de contraseña",
		Titulo: "Recuperación de contraseña",
		Texto:  "Hola " + user.NombreCompleto() + ", use el siguiente código para definir una nueva contraseña. Vence en 30 minutos.",
		Enlace: token,
	}, user.Email)
	if err != nil || correo == nil {
		return err
	}
	return uc.correoRepo.Enqueue(ctx, correo)
}

// ConfirmarReset valida el token de recuperación y fija la nueva contraseña.
// El token deja de servir en cuanto la contraseña cambia.
func (uc *AuthUseCase) ConfirmarReset(ctx context.Context, in dto.ConfirmarResetRequest) error {
	if in.Nueva != in.Confirmacion {
		return domain.NewBusinessError(domain.ErrInvalidInput, "Las contraseñas no coinciden")
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Token, jwt.PurposeReset)
	if err != nil {
		return domain.NewBusinessError(domain.ErrUnauthorized, "El enlace de recuperación no es válido o expiró")
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive || claims.Subject != user.ID || claims.Fingerprint != Fingerprint(user.PasswordHash) {
		return domain.NewBusinessError(domain.ErrUnauthorized, "El enlace de recuperación no es válido o expiró")
	}
	return uc.setPassword(ctx, user.ID, in.Nueva)
}

func (uc *AuthUseCase) setPassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// Apps lista los módulos con al menos un permiso view_* del usuario.
func (uc *AuthUseCase) Apps(ctx context.Context, userID string, superuser bool) ([]dto.AppResponse, error) {
	var permisos []string
	if !superuser {
		var err error
		if permisos, err = uc.userRepo.Permisos(ctx, userID); err != nil {
			return nil, err
		}
	}
	out := make([]dto.AppResponse, 0, len(entity.Apps))
	for _, app := range entity.Apps {
		if superuser || puedeVer(permisos, app) {
			out = append(out, dto.AppResponse{Nombre: app, Titulo: appTitulos[app]})
		}
	}
	return out, nil
}

func puedeVer(permisos []string, app string) bool {
	prefijo := app + ".view_"
	for _, p := range permisos {
		if strings.HasPrefix(p, prefijo) {
			return true
		}
	}
	return false
}

// TienePermiso indica si el usuario tiene el codename; el superusuario los tiene todos.
func (uc *AuthUseCase) TienePermiso(ctx context.Context, userID string, superuser bool, perm string) (bool, error) {
	if superuser {
		return true, nil
	}
	return uc.userRepo.HasPermiso(ctx, userID, perm)
}

// UsuariosElegibles usuarios que pueden ser encargado o personal de una bodega.
func (uc *AuthUseCase) UsuariosElegibles(ctx context.Context) ([]dto.UsuarioResponse, error) {
	list, err := uc.userRepo.ListElegiblesBodega(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUsuarioResponse(u))
	}
	return out, nil
}

// CrearUsuario registra una cuenta activa y la asigna a los grupos indicados.
func (uc *AuthUseCase) CrearUsuario(ctx context.Context, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	existing, err := uc.userRepo.FindByLogin(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessError(domain.ErrDuplicate, "El usuario ya existe")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.Usuario{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		IsSuperuser:  in.IsSuperuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(in.Grupos) > 0 {
		if err := uc.userRepo.AsignarGrupos(ctx, user.ID, in.Grupos); err != nil {
			return nil, err
		}
	}
	return ToUsuarioResponse(user), nil
}

// Fingerprint resume el hash de la contraseña para atar los tokens de recuperación a ella.
func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}

// IsAuthError indica si err corresponde a credenciales inválidas.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized)
}

// ToUsuarioResponse convierte la entidad en su DTO de salida.
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Nombre:      u.NombreCompleto(),
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		LastLogin:   u.LastLogin,
	}
}
