package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

var _ repository.CreditoRepository = (*CreditoRepo)(nil)

const msgCreditoRepetido = "El número de crédito ya existe"

const creditoSelect = `
	SELECT c.id, c.numero, c.monto, c.escaneado, c.fecha_concesion, c.fecha_ingreso,
		c.cliente_id, c.moneda_id, c.oficina_id, c.producto_id, c.credito_anterior,
		(SELECT count(*) FROM tomos t WHERE t.credito_id = c.id AND t.vigente),
		cl.codigo, cl.nombre, m.descripcion, m.simbolo, o.numero, o.descripcion, p.descripcion
	FROM creditos c
	JOIN clientes cl ON cl.id = c.cliente_id
	JOIN monedas m ON m.id = c.moneda_id
	JOIN oficinas o ON o.id = c.oficina_id
	JOIN productos p ON p.id = c.producto_id`

// CreditoRepo implementación del puerto CreditoRepository sobre PostgreSQL.
type CreditoRepo struct {
	q Querier
}

// NewCreditoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditoRepository(q Querier) *CreditoRepo {
	return &CreditoRepo{q: q}
}

// Create persiste un crédito.
func (r *CreditoRepo) Create(ctx context.Context, c *entity.Credito) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO creditos (id, numero, monto, escaneado, fecha_concesion, fecha_ingreso,
			cliente_id, moneda_id, oficina_id, producto_id, credito_anterior)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Numero, c.Monto, c.Escaneado, c.FechaConcesion, c.FechaIngreso,
		c.ClienteID, c.MonedaID, c.OficinaID, c.ProductoID, c.CreditoAnterior)
	if err != nil {
		return writeError(fmt.Errorf("insert credito: %w", err), msgCreditoRepetido)
	}
	return nil
}

// Update actualiza los datos editables del crédito.
func (r *CreditoRepo) Update(ctx context.Context, c *entity.Credito) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE creditos SET numero = $2, monto = $3, escaneado = $4, fecha_concesion = $5,
			cliente_id = $6, moneda_id = $7, oficina_id = $8, producto_id = $9, credito_anterior = $10
		WHERE id = $1`,
		c.ID, c.Numero, c.Monto, c.Escaneado, c.FechaConcesion,
		c.ClienteID, c.MonedaID, c.OficinaID, c.ProductoID, c.CreditoAnterior)
	if err != nil {
		return writeError(fmt.Errorf("update credito: %w", err), msgCreditoRepetido)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un crédito con sus referencias.
func (r *CreditoRepo) GetByID(ctx context.Context, id string) (*entity.Credito, error) {
	return r.one(ctx, creditoSelect+` WHERE c.id = $1`, id)
}

// GetByNumero obtiene un crédito por su número.
func (r *CreditoRepo) GetByNumero(ctx context.Context, numero string) (*entity.Credito, error) {
	return r.one(ctx, creditoSelect+` WHERE c.numero = $1`, numero)
}

func (r *CreditoRepo) one(ctx context.Context, query string, args ...any) (*entity.Credito, error) {
	c, err := scanCredito(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credito: %w", err)
	}
	return c, nil
}

func scanCredito(row pgx.Row) (*entity.Credito, error) {
	c := &entity.Credito{
		Cliente:  &entity.Cliente{},
		Moneda:   &entity.Moneda{},
		Oficina:  &entity.Oficina{},
		Producto: &entity.Producto{},
	}
	err := row.Scan(&c.ID, &c.Numero, &c.Monto, &c.Escaneado, &c.FechaConcesion, &c.FechaIngreso,
		&c.ClienteID, &c.MonedaID, &c.OficinaID, &c.ProductoID, &c.CreditoAnterior, &c.CantidadTomos,
		&c.Cliente.Codigo, &c.Cliente.Nombre, &c.Moneda.Descripcion, &c.Moneda.Simbolo,
		&c.Oficina.Numero, &c.Oficina.Descripcion, &c.Producto.Descripcion)
	if err != nil {
		return nil, err
	}
	c.Cliente.ID, c.Moneda.ID, c.Oficina.ID, c.Producto.ID = c.ClienteID, c.MonedaID, c.OficinaID, c.ProductoID
	return c, nil
}

// List busca créditos cuyo número comienza con f.Q, del más reciente al más antiguo.
func (r *CreditoRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.Credito, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM creditos WHERE numero LIKE $1 || '%'`, f.Q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count creditos: %w", err)
	}
	rows, err := r.q.Query(ctx, creditoSelect+`
		WHERE c.numero LIKE $1 || '%'
		ORDER BY c.fecha_ingreso DESC, c.numero
		LIMIT $2 OFFSET $3`, f.Q, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list creditos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Credito, error) {
		return scanCredito(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan creditos: %w", err)
	}
	return list, total, nil
}

// SetEscaneado marca el crédito como digitalizado.
func (r *CreditoRepo) SetEscaneado(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE creditos SET escaneado = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set escaneado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistentesPorNumero devuelve numero -> id de los créditos ya registrados.
func (r *CreditoRepo) ExistentesPorNumero(ctx context.Context, numeros []string) (map[string]string, error) {
	out := make(map[string]string, len(numeros))
	for _, c := range chunks(len(numeros), batchSize) {
		rows, err := r.q.Query(ctx, `SELECT numero, id FROM creditos WHERE numero = ANY($1)`, numeros[c[0]:c[1]])
		if err != nil {
			return nil, fmt.Errorf("creditos existentes: %w", err)
		}
		if err := collectPares(rows, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// InsertMany inserta créditos en lotes; los números ya registrados se ignoran.
func (r *CreditoRepo) InsertMany(ctx context.Context, list []*entity.Credito) (int64, error) {
	var total int64
	for _, c := range chunks(len(list), batchSize) {
		lote := list[c[0]:c[1]]
		var (
			ids, numeros, montos, anteriores       = make([]string, len(lote)), make([]string, len(lote)), make([]string, len(lote)), make([]string, len(lote))
			clientes, monedas, oficinas, productos = make([]string, len(lote)), make([]string, len(lote)), make([]string, len(lote)), make([]string, len(lote))
			concesiones                            = make([]*time.Time, len(lote))
			ingresos                               = make([]time.Time, len(lote))
			escaneados                             = make([]bool, len(lote))
		)
		for i, cr := range lote {
			ids[i], numeros[i], montos[i], anteriores[i] = cr.ID, cr.Numero, cr.Monto.String(), cr.CreditoAnterior
			clientes[i], monedas[i], oficinas[i], productos[i] = cr.ClienteID, cr.MonedaID, cr.OficinaID, cr.ProductoID
			concesiones[i], ingresos[i], escaneados[i] = cr.FechaConcesion, cr.FechaIngreso, cr.Escaneado
		}
		cmd, err := r.q.Exec(ctx, `
			INSERT INTO creditos (id, numero, monto, fecha_concesion, fecha_ingreso,
				cliente_id, moneda_id, oficina_id, producto_id, credito_anterior, escaneado)
			SELECT unnest($1::uuid[]), unnest($2::text[]), unnest($3::text[])::numeric,
				unnest($4::timestamptz[])::date, unnest($5::timestamptz[]),
				unnest($6::uuid[]), unnest($7::uuid[]), unnest($8::uuid[]), unnest($9::uuid[]),
				unnest($10::text[]), unnest($11::bool[])
			ON CONFLICT (numero) DO NOTHING`,
			ids, numeros, montos, concesiones, ingresos, clientes, monedas, oficinas, productos, anteriores, escaneados)
		if err != nil {
			return total, fmt.Errorf("insert creditos: %w", err)
		}
		total += cmd.RowsAffected()
	}
	return total, nil
}

// collectPares vuelca filas (clave texto, id) en out.
func collectPares(rows pgx.Rows, out map[string]string) error {
	defer rows.Close()
	for rows.Next() {
		var k, id string
		if err := rows.Scan(&k, &id); err != nil {
			return fmt.Errorf("scan par: %w", err)
		}
		out[k] = id
	}
	return rows.Err()
}
