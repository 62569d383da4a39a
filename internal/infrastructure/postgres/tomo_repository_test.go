package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Querier que registra la última sentencia
// ──────────────────────────────────────────────────────────────────────────────

type querier struct {
	sql   string
	args  []any
	ahora time.Time
}

func (q *querier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql, q.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql, q.args = sql, args
	return nil, pgx.ErrNoRows
}

func (q *querier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql, q.args = sql, args
	return fila{ahora: q.ahora}
}

type fila struct{ ahora time.Time }

func (f fila) Scan(dest ...any) error {
	for _, d := range dest {
		if ts, ok := d.(*time.Time); ok {
			*ts = f.ahora
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tomos
// ──────────────────────────────────────────────────────────────────────────────

// Un tomo nuevo toma la fecha de la base, nunca el cero de Go.
func TestTomoCreate_FechaDeLaBase(t *testing.T) {
	ahora := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	q := &querier{ahora: ahora}
	tomo := &entity.Tomo{ID: "t-1", Numero: 1, Vigente: true, CreditoID: "c-1"}

	require.NoError(t, postgres.NewTomoRepository(q).Create(context.Background(), tomo))

	assert.Contains(t, q.sql, "RETURNING fecha_modificacion")
	assert.NotContains(t, q.sql, "fecha_modificacion,", "la columna no se envía en el INSERT")
	for _, a := range q.args {
		_, esFecha := a.(time.Time)
		assert.False(t, esFecha, "no se enlaza ninguna fecha")
	}
	assert.Equal(t, ahora, tomo.FechaModificacion)
}
