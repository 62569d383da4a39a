package notificacion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// outbox imita el repositorio de correos, incluido el paso a fallido al agotar intentos.
type outbox struct {
	pendientes []*entity.Correo
	enviados   []string
	fallidos   map[string]string
	claimErr   error
	limite     int
}

func (o *outbox) Enqueue(_ context.Context, c *entity.Correo) error {
	o.pendientes = append(o.pendientes, c)
	return nil
}

func (o *outbox) ClaimPending(_ context.Context, limit int) ([]*entity.Correo, error) {
	o.limite = limit
	if o.claimErr != nil {
		return nil, o.claimErr
	}
	n := min(limit, len(o.pendientes))
	lote := o.pendientes[:n]
	o.pendientes = o.pendientes[n:]
	for _, c := range lote {
		c.Estado = entity.CorreoProcesando
	}
	return lote, nil
}

func (o *outbox) MarkSent(_ context.Context, id string) error {
	o.enviados = append(o.enviados, id)
	return nil
}

func (o *outbox) MarkFailed(_ context.Context, id, lastErr string, _ int) error {
	o.fallidos[id] = lastErr
	return nil
}

type sender struct{ rechazar map[string]bool }

func (s sender) Send(_ context.Context, c *entity.Correo) error {
	if s.rechazar[c.ID] {
		return errors.New("550 buzón inexistente")
	}
	return nil
}

func correos(ids ...string) []*entity.Correo {
	out := make([]*entity.Correo, 0, len(ids))
	for _, id := range ids {
		out = append(out, &entity.Correo{ID: id, Destinatarios: []string{id + "@banco.gt"}, Estado: entity.CorreoPendiente})
	}
	return out
}

func TestDispatchOnce(t *testing.T) {
	repo := &outbox{pendientes: correos("c1", "c2", "c3"), fallidos: map[string]string{}}
	d := notificacion.NewDispatcher(repo, sender{rechazar: map[string]bool{"c2": true}}, notificacion.DispatcherConfig{}, logger.Nop())

	res, err := d.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, notificacion.Resultado{Enviados: 2, Fallidos: 1}, res)
	assert.Equal(t, []string{"c1", "c3"}, repo.enviados)
	assert.Equal(t, "550 buzón inexistente", repo.fallidos["c2"])
	assert.Equal(t, 20, repo.limite, "lote por defecto")
}

func TestDispatchOnce_RespetaLote(t *testing.T) {
	repo := &outbox{pendientes: correos("c1", "c2", "c3"), fallidos: map[string]string{}}
	d := notificacion.NewDispatcher(repo, sender{}, notificacion.DispatcherConfig{BatchSize: 2}, logger.Nop())

	res, err := d.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Enviados)
	assert.Len(t, repo.pendientes, 1)
}

func TestDispatchOnce_ErrorAlReclamar(t *testing.T) {
	repo := &outbox{claimErr: errors.New("conexión cerrada")}
	d := notificacion.NewDispatcher(repo, sender{}, notificacion.DispatcherConfig{}, logger.Nop())

	_, err := d.DispatchOnce(context.Background())
	assert.EqualError(t, err, "conexión cerrada")
}

func TestRun_TerminaAlCancelar(t *testing.T) {
	repo := &outbox{pendientes: correos("c1"), fallidos: map[string]string{}}
	d := notificacion.NewDispatcher(repo, sender{}, notificacion.DispatcherConfig{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Run(ctx)
	assert.Equal(t, []string{"c1"}, repo.enviados, "procesa una pasada antes de salir")
}
