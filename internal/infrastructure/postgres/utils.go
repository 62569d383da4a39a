package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/erp-expedientes/internal/domain"
)

// Querier abstrae pool y tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// batchSize filas por INSERT masivo.
const batchSize = 1500

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// writeError traduce errores de escritura a errores de dominio, con el mensaje de negocio dado para duplicados.
func writeError(err error, duplicado string) error {
	switch {
	case isUniqueViolation(err):
		return domain.NewBusinessError(domain.ErrDuplicate, duplicado)
	case isForeignKeyViolation(err):
		return domain.NewBusinessError(domain.ErrConflict, "El registro está relacionado con otros datos")
	default:
		return err
	}
}

// contains arma el patrón ILIKE para búsquedas parciales.
func contains(q string) string {
	return "%" + strings.TrimSpace(q) + "%"
}

// limitOrAll convierte un límite cero en NULL (sin límite).
func limitOrAll(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

// chunks divide n elementos en rangos [from, to) de a lo sumo size.
func chunks(n, size int) [][2]int {
	var out [][2]int
	for from := 0; from < n; from += size {
		to := from + size
		if to > n {
			to = n
		}
		out = append(out, [2]int{from, to})
	}
	return out
}

// prefixed antepone el alias de tabla a una lista de columnas separadas por coma.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable convierte la cadena vacía en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
