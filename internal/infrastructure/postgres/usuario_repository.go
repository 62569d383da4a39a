package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

var (
	_ repository.UsuarioRepository = (*UsuarioRepo)(nil)
	_ repository.GrupoRepository   = (*GrupoRepo)(nil)
)

const usuarioColumns = `id, username, email, first_name, last_name, password_hash,
	is_active, is_superuser, last_login, created_at, updated_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash,
		u.IsActive, u.IsSuperuser, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return writeError(fmt.Errorf("insert usuario: %w", err), "El nombre de usuario ya existe")
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.findOne(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)
}

// FindByLogin obtiene un usuario por username o email (sin distinguir mayúsculas).
func (r *UsuarioRepo) FindByLogin(ctx context.Context, login string) (*entity.Usuario, error) {
	return r.findOne(ctx, `
		SELECT `+usuarioColumns+` FROM usuarios
		WHERE lower(username) = lower($1) OR (email <> '' AND lower(email) = lower($1))
		ORDER BY lower(username) = lower($1) DESC
		LIMIT 1`, login)
}

// FindByEmail obtiene un usuario activo por email.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.findOne(ctx, `
		SELECT `+usuarioColumns+` FROM usuarios
		WHERE email <> '' AND lower(email) = lower($1) AND is_active
		LIMIT 1`, email)
}

func (r *UsuarioRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &u.IsSuperuser, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePerfil actualiza nombre, apellido y correo.
func (r *UsuarioRepo) UpdatePerfil(ctx context.Context, u *entity.Usuario) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE usuarios SET first_name = $2, last_name = $3, email = $4, updated_at = now()
		WHERE id = $1`, u.ID, u.FirstName, u.LastName, u.Email)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UsuarioRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE usuarios SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchLastLogin registra el último ingreso.
func (r *UsuarioRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	return nil
}

// Permisos devuelve los codenames de todos los grupos del usuario.
func (r *UsuarioRepo) Permisos(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT gp.codename
		FROM usuario_grupos ug JOIN grupo_permisos gp ON gp.grupo_id = ug.grupo_id
		WHERE ug.usuario_id = $1
		ORDER BY gp.codename`, userID)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// HasPermiso indica si alguno de los grupos del usuario tiene el codename.
func (r *UsuarioRepo) HasPermiso(ctx context.Context, userID, codename string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM usuario_grupos ug
			JOIN grupo_permisos gp ON gp.grupo_id = ug.grupo_id
			JOIN usuarios u ON u.id = ug.usuario_id
			WHERE ug.usuario_id = $1 AND gp.codename = $2 AND u.is_active
		)`, userID, codename).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check permiso: %w", err)
	}
	return ok, nil
}

// ListElegiblesBodega usuarios activos en grupos cuyo nombre empieza con "documentos".
func (r *UsuarioRepo) ListElegiblesBodega(ctx context.Context) ([]*entity.Usuario, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+prefixed("u", usuarioColumns)+`
		FROM usuarios u
		WHERE u.is_active AND EXISTS (
			SELECT 1 FROM usuario_grupos ug JOIN grupos g ON g.id = ug.grupo_id
			WHERE ug.usuario_id = u.id AND g.nombre LIKE $1 || '%'
		)
		ORDER BY u.username`, entity.PrefijoGrupoDocumentos)
	if err != nil {
		return nil, fmt.Errorf("list elegibles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// AsignarGrupos reemplaza los grupos del usuario por los indicados (por nombre).
func (r *UsuarioRepo) AsignarGrupos(ctx context.Context, userID string, grupos []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM usuario_grupos WHERE usuario_id = $1`, userID); err != nil {
		return fmt.Errorf("delete grupos: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO usuario_grupos (usuario_id, grupo_id)
		SELECT $1, g.id FROM grupos g WHERE g.nombre = ANY($2)`, userID, grupos)
	if err != nil {
		return writeError(fmt.Errorf("insert grupos: %w", err), "Grupo repetido")
	}
	if int(cmd.RowsAffected()) != len(grupos) {
		return domain.NewBusinessError(domain.ErrNotFound, "Alguno de los grupos no existe")
	}
	return nil
}

// GrupoRepo implementación de GrupoRepository.
type GrupoRepo struct {
	q Querier
}

// NewGrupoRepository construye el adaptador de grupos.
func NewGrupoRepository(q Querier) *GrupoRepo {
	return &GrupoRepo{q: q}
}

// Upsert crea el grupo si no existe y reemplaza sus permisos.
func (r *GrupoRepo) Upsert(ctx context.Context, g *entity.Grupo) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO grupos (id, nombre) VALUES ($1, $2)
		ON CONFLICT (nombre) DO UPDATE SET nombre = EXCLUDED.nombre
		RETURNING id`, g.ID, g.Nombre).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("upsert grupo: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM grupo_permisos WHERE grupo_id = $1`, g.ID); err != nil {
		return fmt.Errorf("delete permisos: %w", err)
	}
	if _, err := r.q.Exec(ctx, `
		INSERT INTO grupo_permisos (grupo_id, codename)
		SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING`, g.ID, g.Permisos); err != nil {
		return fmt.Errorf("insert permisos: %w", err)
	}
	return nil
}

// List devuelve los grupos con sus permisos.
func (r *GrupoRepo) List(ctx context.Context) ([]*entity.Grupo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT g.id, g.nombre, COALESCE(array_agg(gp.codename ORDER BY gp.codename) FILTER (WHERE gp.codename IS NOT NULL), '{}')
		FROM grupos g LEFT JOIN grupo_permisos gp ON gp.grupo_id = g.id
		GROUP BY g.id, g.nombre ORDER BY g.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list grupos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Grupo
	for rows.Next() {
		var g entity.Grupo
		if err := rows.Scan(&g.ID, &g.Nombre, &g.Permisos); err != nil {
			return nil, fmt.Errorf("scan grupo: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
