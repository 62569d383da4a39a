package postgres_test

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-expedientes/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Scripts embebidos
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrations_FormatoGoose(t *testing.T) {
	names, err := fs.Glob(postgres.Migrations(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	var prev int64
	for _, name := range names {
		v, err := goose.NumericComponent(name)
		require.NoError(t, err, name)
		assert.Greater(t, v, prev, "versiones crecientes: %s", name)
		prev = v

		b, err := fs.ReadFile(postgres.Migrations(), name)
		require.NoError(t, err)
		sql := string(b)
		assert.True(t, strings.HasPrefix(sql, "-- +goose Up\n"), name)
		assert.Contains(t, sql, "-- +goose Down\n", name)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Contra una base real (TEST_DATABASE_URL)
// ──────────────────────────────────────────────────────────────────────────────

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("postgres no disponible: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// Aplicar dos veces no repite scripts y el pool sigue utilizable.
func TestMigrate_Idempotente(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	_, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)

	applied, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM tomos`).Scan(&n))
}
