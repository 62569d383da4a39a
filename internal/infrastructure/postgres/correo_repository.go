package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

var _ repository.CorreoRepository = (*CorreoRepo)(nil)

// CorreoRepo outbox de correos sobre PostgreSQL. Enqueue se ejecuta dentro de la tx de la operación
// que origina el correo; el despachador reclama filas con FOR UPDATE SKIP LOCKED.
type CorreoRepo struct {
	q Querier
}

// NewCorreoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCorreoRepository(q Querier) *CorreoRepo {
	return &CorreoRepo{q: q}
}

// Enqueue deja el correo pendiente de envío.
func (r *CorreoRepo) Enqueue(ctx context.Context, c *entity.Correo) error {
	if c.Estado == "" {
		c.Estado = entity.CorreoPendiente
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO correos (id, asunto, remitente, destinatarios, html, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		c.ID, c.Asunto, c.Remitente, c.Destinatarios, c.HTML, c.Estado).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("enqueue correo: %w", err)
	}
	return nil
}

// ClaimPending toma hasta limit correos pendientes. Los que quedaron en procesando por
// más de diez minutos (proceso caído) se vuelven a reclamar.
func (r *CorreoRepo) ClaimPending(ctx context.Context, limit int) ([]*entity.Correo, error) {
	rows, err := r.q.Query(ctx, `
		UPDATE correos SET estado = 'procesando', bloqueado_at = now()
		WHERE id IN (
			SELECT id FROM correos
			WHERE estado = 'pendiente'
				OR (estado = 'procesando' AND bloqueado_at < now() - interval '10 minutes')
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, asunto, remitente, destinatarios, html, estado, intentos, ultimo_error, created_at, enviado_at`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("claim correos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Correo, error) {
		var c entity.Correo
		err := row.Scan(&c.ID, &c.Asunto, &c.Remitente, &c.Destinatarios, &c.HTML, &c.Estado,
			&c.Intentos, &c.UltimoError, &c.CreatedAt, &c.EnviadoAt)
		return &c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan correos: %w", err)
	}
	return list, nil
}

// MarkSent marca el correo como enviado.
func (r *CorreoRepo) MarkSent(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE correos SET estado = 'enviado', enviado_at = now(), bloqueado_at = NULL, intentos = intentos + 1
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed registra el intento fallido; al llegar a maxAttempts el correo queda fallido.
func (r *CorreoRepo) MarkFailed(ctx context.Context, id, lastErr string, maxAttempts int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE correos SET intentos = intentos + 1, ultimo_error = $2, bloqueado_at = NULL,
			estado = CASE WHEN intentos + 1 >= $3 THEN 'fallido' ELSE 'pendiente' END
		WHERE id = $1`, id, lastErr, maxAttempts)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
