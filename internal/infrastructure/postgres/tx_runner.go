package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/erp-expedientes/internal/application/carga"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

var (
	_ expedientes.TxRunner       = (*TxRunner)(nil)
	_ carga.TxRunner             = (*TxRunner)(nil)
	_ usecase.BodegaTxRunner     = (*TxRunner)(nil)
	_ usecase.EstructuraTxRunner = (*TxRunner)(nil)
	_ usecase.LicenciaTxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTomos agrupa cambios de tomos, créditos y el correo que los notifica.
func (r *TxRunner) RunTomos(ctx context.Context, fn func(
	tomoRepo repository.TomoRepository,
	creditoRepo repository.CreditoRepository,
	correoRepo repository.CorreoRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTomoRepository(tx), NewCreditoRepository(tx), NewCorreoRepository(tx))
	})
}

// RunBodega guarda una bodega y reemplaza su personal en la misma transacción.
func (r *TxRunner) RunBodega(ctx context.Context, fn func(bodegaRepo repository.BodegaRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewBodegaRepository(tx))
	})
}

// RunEstructura genera la estructura de una bodega en una sola transacción.
func (r *TxRunner) RunEstructura(ctx context.Context, fn func(estructuraRepo repository.EstructuraRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewEstructuraRepository(tx))
	})
}

// RunCarga confirma un bloque de la carga masiva.
func (r *TxRunner) RunCarga(ctx context.Context, fn func(
	referenciaRepo repository.ReferenciaRepository,
	creditoRepo repository.CreditoRepository,
	documentoRepo repository.DocumentoFHARepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewReferenciaRepository(tx), NewCreditoRepository(tx), NewDocumentoFHARepository(tx))
	})
}

// RunLicencias asigna licencias contra el cupo del tipo.
func (r *TxRunner) RunLicencias(ctx context.Context, fn func(
	tipoRepo repository.TipoLicenciaRepository,
	licenciaRepo repository.LicenciaRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTipoLicenciaRepository(tx), NewLicenciaRepository(tx))
	})
}
