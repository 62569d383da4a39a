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

var _ repository.TomoRepository = (*TomoRepo)(nil)

const tomoSelect = `
	SELECT t.id, t.numero, t.vigente, t.fecha_modificacion, t.comentario, t.credito_id, cr.numero,
		t.caja_id, t.usuario_id,
		b.id, b.codigo, b.nombre, e.codigo, n.numero, p.numero, c.numero
	FROM tomos t
	JOIN creditos cr ON cr.id = t.credito_id
	LEFT JOIN cajas c ON c.id = t.caja_id
	LEFT JOIN posiciones p ON p.id = c.posicion_id
	LEFT JOIN niveles n ON n.id = p.nivel_id
	LEFT JOIN estantes e ON e.id = n.estante_id
	LEFT JOIN bodegas b ON b.id = e.bodega_id`

// TomoRepo implementación del puerto TomoRepository sobre PostgreSQL.
type TomoRepo struct {
	q Querier
}

// NewTomoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTomoRepository(q Querier) *TomoRepo {
	return &TomoRepo{q: q}
}

// Create persiste un tomo; fecha_modificacion la asigna la base.
func (r *TomoRepo) Create(ctx context.Context, t *entity.Tomo) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO tomos (id, numero, vigente, comentario, credito_id, caja_id, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING fecha_modificacion`,
		t.ID, t.Numero, t.Vigente, t.Comentario, t.CreditoID, t.CajaID, t.UsuarioID).Scan(&t.FechaModificacion)
	if err != nil {
		return writeError(fmt.Errorf("insert tomo: %w", err), "El tomo ya existe en el crédito")
	}
	return nil
}

// Update guarda el estado del tomo y renueva fecha_modificacion.
func (r *TomoRepo) Update(ctx context.Context, t *entity.Tomo) error {
	err := r.q.QueryRow(ctx, `
		UPDATE tomos SET vigente = $2, comentario = $3, caja_id = $4, usuario_id = $5, fecha_modificacion = now()
		WHERE id = $1 RETURNING fecha_modificacion`,
		t.ID, t.Vigente, t.Comentario, t.CajaID, t.UsuarioID).Scan(&t.FechaModificacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update tomo: %w", err)
	}
	return nil
}

// GetByID obtiene un tomo con su ubicación.
func (r *TomoRepo) GetByID(ctx context.Context, id string) (*entity.Tomo, error) {
	return r.one(ctx, tomoSelect+` WHERE t.id = $1`, id)
}

// GetByReferencia busca el tomo por número de crédito y número de tomo.
func (r *TomoRepo) GetByReferencia(ctx context.Context, credito string, numero int) (*entity.Tomo, error) {
	return r.one(ctx, tomoSelect+` WHERE cr.numero = $1 AND t.numero = $2`, credito, numero)
}

// ListByCredito lista los tomos del crédito por número.
func (r *TomoRepo) ListByCredito(ctx context.Context, creditoID string) ([]*entity.Tomo, error) {
	return r.list(ctx, tomoSelect+` WHERE t.credito_id = $1 ORDER BY t.numero`, creditoID)
}

// ListByCreditoForUpdate bloquea los tomos del crédito hasta el fin de la transacción.
func (r *TomoRepo) ListByCreditoForUpdate(ctx context.Context, creditoID string) ([]*entity.Tomo, error) {
	return r.list(ctx, tomoSelect+` WHERE t.credito_id = $1 ORDER BY t.numero FOR UPDATE OF t`, creditoID)
}

// ListByCaja lista los tomos guardados en la caja.
func (r *TomoRepo) ListByCaja(ctx context.Context, cajaID string) ([]*entity.Tomo, error) {
	return r.list(ctx, tomoSelect+` WHERE t.caja_id = $1 ORDER BY cr.numero, t.numero`, cajaID)
}

// ListByIDs lista los tomos indicados, ordenados por ubicación.
func (r *TomoRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Tomo, error) {
	return r.list(ctx, tomoSelect+` WHERE t.id = ANY($1::uuid[])
		ORDER BY b.codigo, length(e.codigo), e.codigo, n.numero, p.numero, c.numero, cr.numero, t.numero`, ids)
}

// Liberar saca los tomos de su caja en una sola sentencia.
func (r *TomoRepo) Liberar(ctx context.Context, ids []string, comentario, usuarioID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE tomos SET caja_id = NULL, comentario = $2, usuario_id = $3, fecha_modificacion = now()
		WHERE id = ANY($1::uuid[])`, ids, comentario, usuarioID)
	if err != nil {
		return 0, fmt.Errorf("liberar tomos: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *TomoRepo) one(ctx context.Context, query string, args ...any) (*entity.Tomo, error) {
	t, err := scanTomo(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tomo: %w", err)
	}
	return t, nil
}

func (r *TomoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Tomo, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tomos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Tomo, error) {
		return scanTomo(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan tomos: %w", err)
	}
	return list, nil
}

func scanTomo(row pgx.Row) (*entity.Tomo, error) {
	var (
		t                        entity.Tomo
		bodegaID, bodega, nombre *string
		estante                  *string
		nivel, posicion, caja    *int
	)
	err := row.Scan(&t.ID, &t.Numero, &t.Vigente, &t.FechaModificacion, &t.Comentario, &t.CreditoID, &t.CreditoNumero,
		&t.CajaID, &t.UsuarioID,
		&bodegaID, &bodega, &nombre, &estante, &nivel, &posicion, &caja)
	if err != nil {
		return nil, err
	}
	if t.CajaID != nil {
		t.Ubicacion = entity.Ubicacion{
			BodegaID:      deref(bodegaID),
			BodegaCodigo:  deref(bodega),
			BodegaNombre:  deref(nombre),
			EstanteCodigo: deref(estante),
			Nivel:         *nivel,
			Posicion:      *posicion,
			Caja:          *caja,
		}
	}
	return &t, nil
}
