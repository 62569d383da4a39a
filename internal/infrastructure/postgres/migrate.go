package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/pressly/goose/v3/lock"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations scripts embebidos, sin el prefijo migrations/.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewMigrator construye el proveedor de goose sobre el pool. El bloqueo de sesión
// impide que dos procesos apliquen migraciones a la vez.
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS) (*goose.Provider, error) {
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("locker de migraciones: %w", err)
	}
	p, err := goose.NewProvider(database.DialectPostgres, stdlib.OpenDBFromPool(pool), fsys,
		goose.WithSessionLocker(locker),
	)
	if err != nil {
		return nil, fmt.Errorf("proveedor de migraciones: %w", err)
	}
	return p, nil
}

// Migrate aplica en orden las migraciones pendientes y devuelve los archivos aplicados.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	p, err := NewMigrator(pool, Migrations())
	if err != nil {
		return nil, err
	}
	defer p.Close()

	results, err := p.Up(ctx)
	applied := make([]string, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			applied = append(applied, r.Source.Path)
		}
	}
	if err != nil {
		return applied, fmt.Errorf("aplicar migraciones: %w", err)
	}
	return applied, nil
}
