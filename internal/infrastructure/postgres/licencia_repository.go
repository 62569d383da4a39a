package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

var (
	_ repository.TipoLicenciaRepository = (*TipoLicenciaRepo)(nil)
	_ repository.LicenciaRepository     = (*LicenciaRepo)(nil)
	_ repository.PermisoRepository      = (*PermisoRepo)(nil)
)

// ─── Tipos de licencia ───────────────────────────────────────────────────────

const tipoLicenciaSelect = `
	SELECT t.id, t.descripcion, t.cantidad,
		(SELECT count(*) FROM qlik_licencias l WHERE l.tipolicencia_id = t.id)
	FROM qlik_tipos_licencia t`

// TipoLicenciaRepo persistencia de tipos de licencia.
type TipoLicenciaRepo struct {
	q Querier
}

// NewTipoLicenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTipoLicenciaRepository(q Querier) *TipoLicenciaRepo {
	return &TipoLicenciaRepo{q: q}
}

func (r *TipoLicenciaRepo) Create(ctx context.Context, t *entity.TipoLicencia) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_tipos_licencia (id, descripcion, cantidad) VALUES ($1, $2, $3)`,
		t.ID, t.Descripcion, t.Cantidad)
	if err != nil {
		return writeError(fmt.Errorf("insert tipo licencia: %w", err), "El tipo de licencia ya existe")
	}
	return nil
}

func (r *TipoLicenciaRepo) Update(ctx context.Context, t *entity.TipoLicencia) error {
	cmd, err := r.q.Exec(ctx, `UPDATE qlik_tipos_licencia SET descripcion = $2, cantidad = $3 WHERE id = $1`,
		t.ID, t.Descripcion, t.Cantidad)
	if err != nil {
		return writeError(fmt.Errorf("update tipo licencia: %w", err), "El tipo de licencia ya existe")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID bloquea la fila del tipo para que el conteo de asignadas no cambie dentro de la tx.
func (r *TipoLicenciaRepo) GetByID(ctx context.Context, id string) (*entity.TipoLicencia, error) {
	list, err := r.list(ctx, tipoLicenciaSelect+` WHERE t.id = $1 FOR UPDATE OF t`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *TipoLicenciaRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.TipoLicencia, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM qlik_tipos_licencia WHERE descripcion ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tipos licencia: %w", err)
	}
	list, err := r.list(ctx, tipoLicenciaSelect+` WHERE t.descripcion ILIKE $1 ORDER BY t.descripcion LIMIT $2 OFFSET $3`,
		contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *TipoLicenciaRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `DELETE FROM qlik_tipos_licencia WHERE id = $1`, id)
}

func (r *TipoLicenciaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TipoLicencia, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tipos licencia: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.TipoLicencia, error) {
		var t entity.TipoLicencia
		return &t, row.Scan(&t.ID, &t.Descripcion, &t.Cantidad, &t.Asignadas)
	})
	if err != nil {
		return nil, fmt.Errorf("scan tipos licencia: %w", err)
	}
	return list, nil
}

// ─── Licencias ───────────────────────────────────────────────────────────────

const licenciaSelect = `
	SELECT l.id, l.codigo, l.tusuario, l.nombre, l.gerencia, l.pais, l.tipolicencia_id, t.descripcion
	FROM qlik_licencias l JOIN qlik_tipos_licencia t ON t.id = l.tipolicencia_id`

// LicenciaRepo persistencia de licencias.
type LicenciaRepo struct {
	q Querier
}

// NewLicenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLicenciaRepository(q Querier) *LicenciaRepo {
	return &LicenciaRepo{q: q}
}

func (r *LicenciaRepo) Create(ctx context.Context, l *entity.Licencia) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO qlik_licencias (id, codigo, tusuario, nombre, gerencia, pais, tipolicencia_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.Codigo, l.TipoUsuario, l.Nombre, l.Gerencia, l.Pais, l.TipoLicenciaID)
	if err != nil {
		return writeError(fmt.Errorf("insert licencia: %w", err), "El código de usuario ya tiene licencia")
	}
	return nil
}

func (r *LicenciaRepo) Update(ctx context.Context, l *entity.Licencia) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE qlik_licencias SET codigo = $2, tusuario = $3, nombre = $4, gerencia = $5, pais = $6, tipolicencia_id = $7
		WHERE id = $1`,
		l.ID, l.Codigo, l.TipoUsuario, l.Nombre, l.Gerencia, l.Pais, l.TipoLicenciaID)
	if err != nil {
		return writeError(fmt.Errorf("update licencia: %w", err), "El código de usuario ya tiene licencia")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LicenciaRepo) GetByID(ctx context.Context, id string) (*entity.Licencia, error) {
	l, err := scanLicencia(r.q.QueryRow(ctx, licenciaSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get licencia: %w", err)
	}
	return l, nil
}

// List busca por nombre o por prefijo del código de usuario.
func (r *LicenciaRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.Licencia, int, error) {
	where := ` WHERE l.nombre ILIKE $1 OR l.codigo::text LIKE $2 || '%'`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM qlik_licencias l`+where, contains(f.Q), f.Q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count licencias: %w", err)
	}
	rows, err := r.q.Query(ctx, licenciaSelect+where+` ORDER BY l.nombre LIMIT $3 OFFSET $4`,
		contains(f.Q), f.Q, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list licencias: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Licencia, error) {
		return scanLicencia(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan licencias: %w", err)
	}
	return list, total, nil
}

func (r *LicenciaRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `DELETE FROM qlik_licencias WHERE id = $1`, id)
}

func scanLicencia(row pgx.Row) (*entity.Licencia, error) {
	var l entity.Licencia
	err := row.Scan(&l.ID, &l.Codigo, &l.TipoUsuario, &l.Nombre, &l.Gerencia, &l.Pais, &l.TipoLicenciaID, &l.TipoLicenciaDsc)
	return &l, err
}

// ─── Permisos ────────────────────────────────────────────────────────────────

const permisoSelect = `
	SELECT p.id, p.licencia_id, p.tobjeto, p.obj_id,
		COALESCE(CASE p.tobjeto
			WHEN 'Stream' THEN (SELECT nombre FROM qlik_streams WHERE id = p.obj_id)
			WHEN 'Modelo' THEN (SELECT nombre FROM qlik_modelos WHERE id = p.obj_id)
			WHEN 'TipoDato' THEN (SELECT nombre FROM qlik_tipos_dato WHERE id = p.obj_id)
		END, ''),
		l.id, l.codigo, l.tusuario, l.nombre, l.gerencia, l.pais, l.tipolicencia_id, t.descripcion
	FROM qlik_permisos p
	JOIN qlik_licencias l ON l.id = p.licencia_id
	JOIN qlik_tipos_licencia t ON t.id = l.tipolicencia_id`

// tablaObjeto tabla de cada tipo de objeto Qlik.
var tablaObjeto = map[string]string{
	entity.ObjetoStream:   "qlik_streams",
	entity.ObjetoModelo:   "qlik_modelos",
	entity.ObjetoTipoDato: "qlik_tipos_dato",
}

// PermisoRepo persistencia de permisos sobre objetos Qlik.
type PermisoRepo struct {
	q Querier
}

// NewPermisoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermisoRepository(q Querier) *PermisoRepo {
	return &PermisoRepo{q: q}
}

func (r *PermisoRepo) Create(ctx context.Context, p *entity.Permiso) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_permisos (id, obj_id, tobjeto, licencia_id) VALUES ($1, $2, $3, $4)`,
		p.ID, p.ObjetoID, p.TipoObjeto, p.LicenciaID)
	if err != nil {
		return writeError(fmt.Errorf("insert permiso: %w", err), "La licencia ya tiene permiso sobre ese objeto")
	}
	return nil
}

func (r *PermisoRepo) GetByID(ctx context.Context, id string) (*entity.Permiso, error) {
	list, err := r.list(ctx, permisoSelect+` WHERE p.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// List busca por nombre de la licencia.
func (r *PermisoRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.Permiso, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM qlik_permisos p JOIN qlik_licencias l ON l.id = p.licencia_id
		WHERE l.nombre ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count permisos: %w", err)
	}
	list, err := r.list(ctx, permisoSelect+` WHERE l.nombre ILIKE $1 ORDER BY l.nombre, p.tobjeto LIMIT $2 OFFSET $3`,
		contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PermisoRepo) ListByObjeto(ctx context.Context, tipo, objetoID string) ([]*entity.Permiso, error) {
	return r.list(ctx, permisoSelect+` WHERE p.tobjeto = $1 AND p.obj_id = $2 ORDER BY l.nombre`, tipo, objetoID)
}

func (r *PermisoRepo) ListByLicencia(ctx context.Context, licenciaID string) ([]*entity.Permiso, error) {
	return r.list(ctx, permisoSelect+` WHERE p.licencia_id = $1 ORDER BY p.tobjeto`, licenciaID)
}

func (r *PermisoRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `DELETE FROM qlik_permisos WHERE id = $1`, id)
}

// Objetos lista los objetos del tipo indicado para el selector de permisos.
func (r *PermisoRepo) Objetos(ctx context.Context, tipo string) ([]repository.ObjetoQlik, error) {
	tabla, ok := tablaObjeto[tipo]
	if !ok {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Tipo de objeto inválido")
	}
	rows, err := r.q.Query(ctx, fmt.Sprintf(`SELECT id, nombre FROM %s ORDER BY nombre`, tabla))
	if err != nil {
		return nil, fmt.Errorf("list objetos: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[repository.ObjetoQlik])
	if err != nil {
		return nil, fmt.Errorf("scan objetos: %w", err)
	}
	return list, nil
}

func (r *PermisoRepo) ObjetoExiste(ctx context.Context, tipo, id string) (bool, error) {
	tabla, ok := tablaObjeto[tipo]
	if !ok {
		return false, nil
	}
	var existe bool
	err := r.q.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tabla), id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists objeto: %w", err)
	}
	return existe, nil
}

func (r *PermisoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Permiso, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Permiso, error) {
		p := entity.Permiso{Licencia: &entity.Licencia{}}
		l := p.Licencia
		err := row.Scan(&p.ID, &p.LicenciaID, &p.TipoObjeto, &p.ObjetoID, &p.ObjetoNombre,
			&l.ID, &l.Codigo, &l.TipoUsuario, &l.Nombre, &l.Gerencia, &l.Pais, &l.TipoLicenciaID, &l.TipoLicenciaDsc)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan permisos: %w", err)
	}
	return list, nil
}
