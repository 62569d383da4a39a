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

var _ repository.BodegaRepository = (*BodegaRepo)(nil)

const msgBodegaRepetida = "Código o nombre repetido."

// BodegaRepo implementación del puerto BodegaRepository sobre PostgreSQL.
type BodegaRepo struct {
	q Querier
}

// NewBodegaRepository construye el adaptador de persistencia para bodegas.
func NewBodegaRepository(q Querier) *BodegaRepo {
	return &BodegaRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *BodegaRepo) Create(ctx context.Context, b *entity.Bodega) error {
	query := `
		INSERT INTO bodegas (id, codigo, nombre, direccion, vigente, correo_egreso, correo_traslado,
			encargado_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Codigo, b.Nombre, b.Direccion, b.Vigente, b.CorreoEgreso, b.CorreoTraslado,
		b.EncargadoID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return writeError(fmt.Errorf("insert bodega: %w", err), msgBodegaRepetida)
	}
	return nil
}

// Update actualiza una bodega existente.
func (r *BodegaRepo) Update(ctx context.Context, b *entity.Bodega) error {
	query := `
		UPDATE bodegas SET codigo = $2, nombre = $3, direccion = $4, vigente = $5,
			correo_egreso = $6, correo_traslado = $7, encargado_id = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.Codigo, b.Nombre, b.Direccion, b.Vigente, b.CorreoEgreso, b.CorreoTraslado,
		b.EncargadoID, b.UpdatedAt,
	)
	if err != nil {
		return writeError(fmt.Errorf("update bodega: %w", err), msgBodegaRepetida)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una bodega con su personal y encargado.
func (r *BodegaRepo) GetByID(ctx context.Context, id string) (*entity.Bodega, error) {
	query := `
		SELECT b.id, b.codigo, b.nombre, b.direccion, b.vigente, b.correo_egreso, b.correo_traslado,
			b.encargado_id, b.created_at, b.updated_at,
			u.username, u.email, u.first_name, u.last_name,
			COALESCE((SELECT array_agg(p.usuario_id::text) FROM bodega_personal p WHERE p.bodega_id = b.id), '{}')
		FROM bodegas b
		LEFT JOIN usuarios u ON u.id = b.encargado_id
		WHERE b.id = $1`
	var (
		b                       entity.Bodega
		username, email, fn, ln *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Codigo, &b.Nombre, &b.Direccion, &b.Vigente, &b.CorreoEgreso, &b.CorreoTraslado,
		&b.EncargadoID, &b.CreatedAt, &b.UpdatedAt,
		&username, &email, &fn, &ln,
		&b.Personal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	if b.EncargadoID != nil && username != nil {
		b.Encargado = &entity.Usuario{
			ID: *b.EncargadoID, Username: *username, Email: deref(email), FirstName: deref(fn), LastName: deref(ln),
		}
	}
	return &b, nil
}

// List lista bodegas ordenadas por vigencia y nombre.
func (r *BodegaRepo) List(ctx context.Context, f repository.BodegaFiltro) ([]*entity.Bodega, int, error) {
	where := `WHERE ($1 = '' OR b.nombre ILIKE $2)
		AND ($3 = '' OR b.encargado_id::text = $3 OR EXISTS (
			SELECT 1 FROM bodega_personal p WHERE p.bodega_id = b.id AND p.usuario_id::text = $3))`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM bodegas b `+where, f.Q, contains(f.Q), f.UsuarioID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bodegas: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT b.id, b.codigo, b.nombre, b.direccion, b.vigente, b.correo_egreso, b.correo_traslado,
			b.encargado_id, b.created_at, b.updated_at
		FROM bodegas b `+where+`
		ORDER BY b.vigente DESC, b.nombre
		LIMIT $4 OFFSET $5`, f.Q, contains(f.Q), f.UsuarioID, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bodegas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bodega
	for rows.Next() {
		var b entity.Bodega
		if err := rows.Scan(&b.ID, &b.Codigo, &b.Nombre, &b.Direccion, &b.Vigente, &b.CorreoEgreso,
			&b.CorreoTraslado, &b.EncargadoID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan bodega: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// SetVigente cambia el estado de la bodega.
func (r *BodegaRepo) SetVigente(ctx context.Context, id string, vigente bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE bodegas SET vigente = $2, updated_at = now() WHERE id = $1`, id, vigente)
	if err != nil {
		return fmt.Errorf("update bodega vigente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPersonal reemplaza el personal de la bodega. Usar dentro de RunBodega junto al alta o cambio.
func (r *BodegaRepo) SetPersonal(ctx context.Context, bodegaID string, userIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bodega_personal WHERE bodega_id = $1`, bodegaID); err != nil {
		return fmt.Errorf("delete personal: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO bodega_personal (bodega_id, usuario_id)
		SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`, bodegaID, userIDs)
	if err != nil {
		return writeError(fmt.Errorf("insert personal: %w", err), "Personal repetido")
	}
	return nil
}

// EsPersonal indica si el usuario forma parte del personal de la bodega.
func (r *BodegaRepo) EsPersonal(ctx context.Context, bodegaID, userID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bodega_personal WHERE bodega_id = $1 AND usuario_id = $2)`,
		bodegaID, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check personal: %w", err)
	}
	return ok, nil
}

// Accesible indica si el usuario es personal o encargado de la bodega.
func (r *BodegaRepo) Accesible(ctx context.Context, bodegaID, userID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bodegas WHERE id = $1 AND encargado_id = $2)
			OR EXISTS(SELECT 1 FROM bodega_personal WHERE bodega_id = $1 AND usuario_id = $2)`,
		bodegaID, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check acceso bodega: %w", err)
	}
	return ok, nil
}
