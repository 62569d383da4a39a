package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// CorreoRepository outbox de correos.
type CorreoRepository interface {
	Enqueue(ctx context.Context, c *entity.Correo) error
	// ClaimPending marca como procesando hasta limit correos pendientes (FOR UPDATE SKIP LOCKED).
	ClaimPending(ctx context.Context, limit int) ([]*entity.Correo, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed incrementa intentos; si llega a maxAttempts queda fallido, si no vuelve a pendiente.
	MarkFailed(ctx context.Context, id, lastErr string, maxAttempts int) error
}
