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

var _ repository.ReferenciaRepository = (*ReferenciaRepo)(nil)

// ReferenciaRepo clientes, monedas, productos y oficinas.
type ReferenciaRepo struct {
	q Querier
}

// NewReferenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenciaRepository(q Querier) *ReferenciaRepo {
	return &ReferenciaRepo{q: q}
}

// ─── Clientes ────────────────────────────────────────────────────────────────

func (r *ReferenciaRepo) ListClientes(ctx context.Context, f repository.Filtro) ([]*entity.Cliente, int, error) {
	where := `WHERE nombre ILIKE $1 OR codigo::text LIKE $2 || '%'`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clientes `+where, contains(f.Q), f.Q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, codigo, nombre FROM clientes `+where+`
		ORDER BY nombre LIMIT $3 OFFSET $4`, contains(f.Q), f.Q, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Cliente, error) {
		var c entity.Cliente
		return &c, row.Scan(&c.ID, &c.Codigo, &c.Nombre)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan clientes: %w", err)
	}
	return list, total, nil
}

func (r *ReferenciaRepo) GetCliente(ctx context.Context, id string) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(ctx, `SELECT id, codigo, nombre FROM clientes WHERE id = $1`, id).Scan(&c.ID, &c.Codigo, &c.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

func (r *ReferenciaRepo) CreateCliente(ctx context.Context, c *entity.Cliente) error {
	_, err := r.q.Exec(ctx, `INSERT INTO clientes (id, codigo, nombre) VALUES ($1, $2, $3)`, c.ID, c.Codigo, c.Nombre)
	if err != nil {
		return writeError(fmt.Errorf("insert cliente: %w", err), "El código de cliente ya existe")
	}
	return nil
}

func (r *ReferenciaRepo) UpdateCliente(ctx context.Context, c *entity.Cliente) error {
	return r.exec(ctx, `UPDATE clientes SET codigo = $2, nombre = $3 WHERE id = $1`,
		"El código de cliente ya existe", c.ID, c.Codigo, c.Nombre)
}

// ─── Monedas ─────────────────────────────────────────────────────────────────

func (r *ReferenciaRepo) ListMonedas(ctx context.Context, f repository.Filtro) ([]*entity.Moneda, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM monedas WHERE descripcion ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count monedas: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, descripcion, simbolo FROM monedas WHERE descripcion ILIKE $1
		ORDER BY descripcion LIMIT $2 OFFSET $3`, contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list monedas: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Moneda, error) {
		var m entity.Moneda
		return &m, row.Scan(&m.ID, &m.Descripcion, &m.Simbolo)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan monedas: %w", err)
	}
	return list, total, nil
}

func (r *ReferenciaRepo) GetMoneda(ctx context.Context, id string) (*entity.Moneda, error) {
	var m entity.Moneda
	err := r.q.QueryRow(ctx, `SELECT id, descripcion, simbolo FROM monedas WHERE id = $1`, id).Scan(&m.ID, &m.Descripcion, &m.Simbolo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get moneda: %w", err)
	}
	return &m, nil
}

func (r *ReferenciaRepo) CreateMoneda(ctx context.Context, m *entity.Moneda) error {
	_, err := r.q.Exec(ctx, `INSERT INTO monedas (id, descripcion, simbolo) VALUES ($1, $2, $3)`, m.ID, m.Descripcion, m.Simbolo)
	if err != nil {
		return writeError(fmt.Errorf("insert moneda: %w", err), "La moneda ya existe")
	}
	return nil
}

func (r *ReferenciaRepo) UpdateMoneda(ctx context.Context, m *entity.Moneda) error {
	return r.exec(ctx, `UPDATE monedas SET descripcion = $2, simbolo = $3 WHERE id = $1`,
		"La moneda ya existe", m.ID, m.Descripcion, m.Simbolo)
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (r *ReferenciaRepo) ListProductos(ctx context.Context, f repository.Filtro) ([]*entity.Producto, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM productos WHERE descripcion ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count productos: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, descripcion FROM productos WHERE descripcion ILIKE $1
		ORDER BY descripcion LIMIT $2 OFFSET $3`, contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list productos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Producto, error) {
		var p entity.Producto
		return &p, row.Scan(&p.ID, &p.Descripcion)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan productos: %w", err)
	}
	return list, total, nil
}

func (r *ReferenciaRepo) GetProducto(ctx context.Context, id string) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(ctx, `SELECT id, descripcion FROM productos WHERE id = $1`, id).Scan(&p.ID, &p.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

func (r *ReferenciaRepo) CreateProducto(ctx context.Context, p *entity.Producto) error {
	_, err := r.q.Exec(ctx, `INSERT INTO productos (id, descripcion) VALUES ($1, $2)`, p.ID, p.Descripcion)
	if err != nil {
		return writeError(fmt.Errorf("insert producto: %w", err), "El producto ya existe")
	}
	return nil
}

func (r *ReferenciaRepo) UpdateProducto(ctx context.Context, p *entity.Producto) error {
	return r.exec(ctx, `UPDATE productos SET descripcion = $2 WHERE id = $1`, "El producto ya existe", p.ID, p.Descripcion)
}

// ─── Oficinas ────────────────────────────────────────────────────────────────

func (r *ReferenciaRepo) ListOficinas(ctx context.Context, f repository.Filtro) ([]*entity.Oficina, int, error) {
	where := `WHERE descripcion ILIKE $1 OR numero::text LIKE $2 || '%'`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM oficinas `+where, contains(f.Q), f.Q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count oficinas: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, numero, descripcion FROM oficinas `+where+`
		ORDER BY numero LIMIT $3 OFFSET $4`, contains(f.Q), f.Q, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list oficinas: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Oficina, error) {
		var o entity.Oficina
		return &o, row.Scan(&o.ID, &o.Numero, &o.Descripcion)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan oficinas: %w", err)
	}
	return list, total, nil
}

func (r *ReferenciaRepo) GetOficina(ctx context.Context, id string) (*entity.Oficina, error) {
	var o entity.Oficina
	err := r.q.QueryRow(ctx, `SELECT id, numero, descripcion FROM oficinas WHERE id = $1`, id).Scan(&o.ID, &o.Numero, &o.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get oficina: %w", err)
	}
	return &o, nil
}

func (r *ReferenciaRepo) CreateOficina(ctx context.Context, o *entity.Oficina) error {
	_, err := r.q.Exec(ctx, `INSERT INTO oficinas (id, numero, descripcion) VALUES ($1, $2, $3)`, o.ID, o.Numero, o.Descripcion)
	if err != nil {
		return writeError(fmt.Errorf("insert oficina: %w", err), "El número de oficina ya existe")
	}
	return nil
}

func (r *ReferenciaRepo) UpdateOficina(ctx context.Context, o *entity.Oficina) error {
	return r.exec(ctx, `UPDATE oficinas SET numero = $2, descripcion = $3 WHERE id = $1`,
		"El número de oficina ya existe", o.ID, o.Numero, o.Descripcion)
}

func (r *ReferenciaRepo) exec(ctx context.Context, query, duplicado string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return writeError(fmt.Errorf("update referencia: %w", err), duplicado)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─── Carga masiva ────────────────────────────────────────────────────────────

// EnsureClientes inserta los clientes nuevos por código y devuelve codigo -> id de todos.
func (r *ReferenciaRepo) EnsureClientes(ctx context.Context, list []*entity.Cliente) (map[int64]string, error) {
	out := make(map[int64]string, len(list))
	for _, c := range chunks(len(list), batchSize) {
		codigos, nombres := make([]int64, 0, c[1]-c[0]), make([]string, 0, c[1]-c[0])
		for _, cl := range list[c[0]:c[1]] {
			codigos, nombres = append(codigos, cl.Codigo), append(nombres, cl.Nombre)
		}
		if _, err := r.q.Exec(ctx, `
			INSERT INTO clientes (id, codigo, nombre)
			SELECT gen_random_uuid(), codigo, nombre FROM unnest($1::bigint[], $2::text[]) AS t(codigo, nombre)
			ON CONFLICT (codigo) DO NOTHING`, codigos, nombres); err != nil {
			return nil, fmt.Errorf("ensure clientes: %w", err)
		}
		rows, err := r.q.Query(ctx, `SELECT codigo, id FROM clientes WHERE codigo = ANY($1)`, codigos)
		if err != nil {
			return nil, fmt.Errorf("ids clientes: %w", err)
		}
		pares, err := pgx.CollectRows(rows, pgx.RowToStructByPos[struct {
			Codigo int64
			ID     string
		}])
		if err != nil {
			return nil, fmt.Errorf("scan clientes: %w", err)
		}
		for _, p := range pares {
			out[p.Codigo] = p.ID
		}
	}
	return out, nil
}

// EnsureOficinas inserta las oficinas nuevas por número y devuelve numero -> id de todas.
func (r *ReferenciaRepo) EnsureOficinas(ctx context.Context, list []*entity.Oficina) (map[int]string, error) {
	numeros, descripciones := make([]int32, 0, len(list)), make([]string, 0, len(list))
	for _, o := range list {
		numeros, descripciones = append(numeros, int32(o.Numero)), append(descripciones, o.Descripcion)
	}
	if _, err := r.q.Exec(ctx, `
		INSERT INTO oficinas (id, numero, descripcion)
		SELECT gen_random_uuid(), numero, descripcion FROM unnest($1::int[], $2::text[]) AS t(numero, descripcion)
		ON CONFLICT (numero) DO NOTHING`, numeros, descripciones); err != nil {
		return nil, fmt.Errorf("ensure oficinas: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT numero, id FROM oficinas WHERE numero = ANY($1)`, numeros)
	if err != nil {
		return nil, fmt.Errorf("ids oficinas: %w", err)
	}
	defer rows.Close()
	out := make(map[int]string, len(list))
	for rows.Next() {
		var (
			n  int
			id string
		)
		if err := rows.Scan(&n, &id); err != nil {
			return nil, fmt.Errorf("scan oficina: %w", err)
		}
		out[n] = id
	}
	return out, rows.Err()
}

// EnsureMonedas inserta las monedas nuevas por descripción y devuelve descripcion -> id.
func (r *ReferenciaRepo) EnsureMonedas(ctx context.Context, descripciones []string) (map[string]string, error) {
	return r.ensureDescripciones(ctx, "monedas", descripciones)
}

// EnsureProductos inserta los productos nuevos por descripción y devuelve descripcion -> id.
func (r *ReferenciaRepo) EnsureProductos(ctx context.Context, descripciones []string) (map[string]string, error) {
	return r.ensureDescripciones(ctx, "productos", descripciones)
}

// ensureDescripciones tabla proviene de constantes internas.
func (r *ReferenciaRepo) ensureDescripciones(ctx context.Context, tabla string, descripciones []string) (map[string]string, error) {
	if _, err := r.q.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, descripcion)
		SELECT gen_random_uuid(), d FROM unnest($1::text[]) AS t(d)
		ON CONFLICT (descripcion) DO NOTHING`, tabla), descripciones); err != nil {
		return nil, fmt.Errorf("ensure %s: %w", tabla, err)
	}
	rows, err := r.q.Query(ctx, fmt.Sprintf(`SELECT descripcion, id FROM %s WHERE descripcion = ANY($1)`, tabla), descripciones)
	if err != nil {
		return nil, fmt.Errorf("ids %s: %w", tabla, err)
	}
	out := make(map[string]string, len(descripciones))
	if err := collectPares(rows, out); err != nil {
		return nil, err
	}
	return out, nil
}
