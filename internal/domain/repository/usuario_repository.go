package repository

import (
	"context"
	"time"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	// FindByLogin busca por username o email.
	FindByLogin(ctx context.Context, login string) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	UpdatePerfil(ctx context.Context, u *entity.Usuario) error
	UpdatePassword(ctx context.Context, id, hash string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// Permisos devuelve los codenames de todos los grupos del usuario.
	Permisos(ctx context.Context, userID string) ([]string, error)
	HasPermiso(ctx context.Context, userID, codename string) (bool, error)
	// ListElegiblesBodega usuarios activos en grupos "documentos*".
	ListElegiblesBodega(ctx context.Context) ([]*entity.Usuario, error)
	AsignarGrupos(ctx context.Context, userID string, grupos []string) error
}

// GrupoRepository persistencia de grupos y sus permisos.
type GrupoRepository interface {
	// Upsert crea el grupo si no existe y reemplaza sus permisos.
	Upsert(ctx context.Context, g *entity.Grupo) error
	List(ctx context.Context) ([]*entity.Grupo, error)
}
