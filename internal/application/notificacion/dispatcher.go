package notificacion

import (
	"context"
	"time"

	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// DispatcherConfig parámetros del despachador del outbox.
type DispatcherConfig struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

// Dispatcher envía los correos pendientes del outbox.
type Dispatcher struct {
	repo   repository.CorreoRepository
	sender Sender
	cfg    DispatcherConfig
	log    *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(repo repository.CorreoRepository, sender Sender, cfg DispatcherConfig, log *logger.Logger) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	return &Dispatcher{repo: repo, sender: sender, cfg: cfg, log: log.Named("mail")}
}

// Resultado conteo de una pasada del despachador.
type Resultado struct {
	Enviados int
	Fallidos int
}

// DispatchOnce reclama un lote de correos y los envía uno a uno.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (Resultado, error) {
	var res Resultado
	correos, err := d.repo.ClaimPending(ctx, d.cfg.BatchSize)
	if err != nil {
		return res, err
	}
	for _, c := range correos {
		if err := d.sender.Send(ctx, c); err != nil {
			res.Fallidos++
			d.log.Warn().Err(err).Str("correo_id", c.ID).Int("intento", c.Intentos+1).Msg("envío fallido")
			if err := d.repo.MarkFailed(ctx, c.ID, err.Error(), d.cfg.MaxAttempts); err != nil {
				return res, err
			}
			continue
		}
		res.Enviados++
		if err := d.repo.MarkSent(ctx, c.ID); err != nil {
			return res, err
		}
	}
	if len(correos) > 0 {
		d.log.Info().Int("enviados", res.Enviados).Int("fallidos", res.Fallidos).Msg("outbox procesado")
	}
	return res, nil
}

// Run procesa el outbox cada Interval hasta que ctx se cancela.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()
	for {
		if _, err := d.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
			d.log.Error().Err(err).Msg("despachar correos")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
