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

var _ repository.EstructuraRepository = (*EstructuraRepo)(nil)

const cajaSelect = `
	SELECT c.id, c.posicion_id, c.numero, c.vigente,
		b.id, b.codigo, b.nombre, e.codigo, n.numero, p.numero
	FROM cajas c
	JOIN posiciones p ON p.id = c.posicion_id
	JOIN niveles n ON n.id = p.nivel_id
	JOIN estantes e ON e.id = n.estante_id
	JOIN bodegas b ON b.id = e.bodega_id`

const cajaOrden = ` ORDER BY length(e.codigo), e.codigo, n.numero, p.numero, c.numero`

// EstructuraRepo persistencia de estantes, niveles, posiciones y cajas (usable con pool o tx).
type EstructuraRepo struct {
	q Querier
}

// NewEstructuraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstructuraRepository(q Querier) *EstructuraRepo {
	return &EstructuraRepo{q: q}
}

// Arbol carga la estructura completa de la bodega en cuatro consultas y la arma en memoria.
func (r *EstructuraRepo) Arbol(ctx context.Context, bodegaID string) ([]*entity.Estante, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, bodega_id, codigo, vigente FROM estantes
		WHERE bodega_id = $1 ORDER BY length(codigo), codigo`, bodegaID)
	if err != nil {
		return nil, fmt.Errorf("list estantes: %w", err)
	}
	estantes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Estante, error) {
		var e entity.Estante
		return &e, row.Scan(&e.ID, &e.BodegaID, &e.Codigo, &e.Vigente)
	})
	if err != nil {
		return nil, fmt.Errorf("scan estantes: %w", err)
	}
	porEstante := make(map[string]*entity.Estante, len(estantes))
	for _, e := range estantes {
		porEstante[e.ID] = e
	}

	rows, err = r.q.Query(ctx, `
		SELECT n.id, n.estante_id, n.numero, n.vigente FROM niveles n
		JOIN estantes e ON e.id = n.estante_id
		WHERE e.bodega_id = $1 ORDER BY n.numero`, bodegaID)
	if err != nil {
		return nil, fmt.Errorf("list niveles: %w", err)
	}
	niveles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Nivel, error) {
		var n entity.Nivel
		return &n, row.Scan(&n.ID, &n.EstanteID, &n.Numero, &n.Vigente)
	})
	if err != nil {
		return nil, fmt.Errorf("scan niveles: %w", err)
	}
	porNivel := make(map[string]*entity.Nivel, len(niveles))
	for _, n := range niveles {
		porNivel[n.ID] = n
		porEstante[n.EstanteID].Niveles = append(porEstante[n.EstanteID].Niveles, n)
	}

	rows, err = r.q.Query(ctx, `
		SELECT p.id, p.nivel_id, p.numero, p.vigente FROM posiciones p
		JOIN niveles n ON n.id = p.nivel_id
		JOIN estantes e ON e.id = n.estante_id
		WHERE e.bodega_id = $1 ORDER BY p.numero`, bodegaID)
	if err != nil {
		return nil, fmt.Errorf("list posiciones: %w", err)
	}
	posiciones, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Posicion, error) {
		var p entity.Posicion
		return &p, row.Scan(&p.ID, &p.NivelID, &p.Numero, &p.Vigente)
	})
	if err != nil {
		return nil, fmt.Errorf("scan posiciones: %w", err)
	}
	porPosicion := make(map[string]*entity.Posicion, len(posiciones))
	for _, p := range posiciones {
		porPosicion[p.ID] = p
		porNivel[p.NivelID].Posiciones = append(porNivel[p.NivelID].Posiciones, p)
	}

	cajas, err := r.listCajas(ctx, cajaSelect+` WHERE b.id = $1`+cajaOrden, bodegaID)
	if err != nil {
		return nil, err
	}
	for _, c := range cajas {
		porPosicion[c.PosicionID].Cajas = append(porPosicion[c.PosicionID].Cajas, c)
	}
	return estantes, nil
}

// LockBodega toma un lock de fila sobre la bodega hasta el fin de la transacción.
func (r *EstructuraRepo) LockBodega(ctx context.Context, bodegaID string) error {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM bodegas WHERE id = $1 FOR UPDATE`, bodegaID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock bodega: %w", err)
	}
	return nil
}

// InsertEstantes inserta en lotes; los existentes se ignoran.
func (r *EstructuraRepo) InsertEstantes(ctx context.Context, rows []*entity.Estante) (int64, error) {
	var total int64
	for _, c := range chunks(len(rows), batchSize) {
		ids, padres, codigos := make([]string, 0, c[1]-c[0]), make([]string, 0, c[1]-c[0]), make([]string, 0, c[1]-c[0])
		for _, e := range rows[c[0]:c[1]] {
			ids, padres, codigos = append(ids, e.ID), append(padres, e.BodegaID), append(codigos, e.Codigo)
		}
		cmd, err := r.q.Exec(ctx, `
			INSERT INTO estantes (id, bodega_id, codigo, vigente)
			SELECT unnest($1::uuid[]), unnest($2::uuid[]), unnest($3::text[]), TRUE
			ON CONFLICT DO NOTHING`, ids, padres, codigos)
		if err != nil {
			return total, fmt.Errorf("insert estantes: %w", err)
		}
		total += cmd.RowsAffected()
	}
	return total, nil
}

// InsertNiveles inserta en lotes; los existentes se ignoran.
func (r *EstructuraRepo) InsertNiveles(ctx context.Context, rows []*entity.Nivel) (int64, error) {
	ids, padres, numeros := make([]string, len(rows)), make([]string, len(rows)), make([]int, len(rows))
	for i, n := range rows {
		ids[i], padres[i], numeros[i] = n.ID, n.EstanteID, n.Numero
	}
	return r.insertNumerados(ctx, "niveles", "estante_id", ids, padres, numeros)
}

// InsertPosiciones inserta en lotes; las existentes se ignoran.
func (r *EstructuraRepo) InsertPosiciones(ctx context.Context, rows []*entity.Posicion) (int64, error) {
	ids, padres, numeros := make([]string, len(rows)), make([]string, len(rows)), make([]int, len(rows))
	for i, p := range rows {
		ids[i], padres[i], numeros[i] = p.ID, p.NivelID, p.Numero
	}
	return r.insertNumerados(ctx, "posiciones", "nivel_id", ids, padres, numeros)
}

// InsertCajas inserta en lotes; las existentes se ignoran.
func (r *EstructuraRepo) InsertCajas(ctx context.Context, rows []*entity.Caja) (int64, error) {
	ids, padres, numeros := make([]string, len(rows)), make([]string, len(rows)), make([]int, len(rows))
	for i, c := range rows {
		ids[i], padres[i], numeros[i] = c.ID, c.PosicionID, c.Numero
	}
	return r.insertNumerados(ctx, "cajas", "posicion_id", ids, padres, numeros)
}

// insertNumerados inserta filas (id, padre, numero) de niveles, posiciones o cajas.
// tabla y columna provienen de constantes internas, nunca de la entrada del usuario.
func (r *EstructuraRepo) insertNumerados(ctx context.Context, tabla, padre string, ids, padres []string, numeros []int) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, numero, vigente)
		SELECT unnest($1::uuid[]), unnest($2::uuid[]), unnest($3::int[]), TRUE
		ON CONFLICT DO NOTHING`, tabla, padre)
	var total int64
	for _, c := range chunks(len(ids), batchSize) {
		cmd, err := r.q.Exec(ctx, query, ids[c[0]:c[1]], padres[c[0]:c[1]], numeros[c[0]:c[1]])
		if err != nil {
			return total, fmt.Errorf("insert %s: %w", tabla, err)
		}
		total += cmd.RowsAffected()
	}
	return total, nil
}

// GetEstante obtiene un estante con la ubicación de su bodega.
func (r *EstructuraRepo) GetEstante(ctx context.Context, id string) (*entity.Estante, *entity.Ubicacion, error) {
	var (
		e entity.Estante
		u entity.Ubicacion
	)
	err := r.q.QueryRow(ctx, `
		SELECT e.id, e.bodega_id, e.codigo, e.vigente, b.id, b.codigo, b.nombre
		FROM estantes e JOIN bodegas b ON b.id = e.bodega_id WHERE e.id = $1`, id).Scan(
		&e.ID, &e.BodegaID, &e.Codigo, &e.Vigente, &u.BodegaID, &u.BodegaCodigo, &u.BodegaNombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get estante: %w", err)
	}
	u.EstanteCodigo = e.Codigo
	return &e, &u, nil
}

// GetNivel obtiene un nivel con su ubicación.
func (r *EstructuraRepo) GetNivel(ctx context.Context, id string) (*entity.Nivel, *entity.Ubicacion, error) {
	var (
		n entity.Nivel
		u entity.Ubicacion
	)
	err := r.q.QueryRow(ctx, `
		SELECT n.id, n.estante_id, n.numero, n.vigente, b.id, b.codigo, b.nombre, e.codigo
		FROM niveles n JOIN estantes e ON e.id = n.estante_id JOIN bodegas b ON b.id = e.bodega_id
		WHERE n.id = $1`, id).Scan(
		&n.ID, &n.EstanteID, &n.Numero, &n.Vigente, &u.BodegaID, &u.BodegaCodigo, &u.BodegaNombre, &u.EstanteCodigo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get nivel: %w", err)
	}
	u.Nivel = n.Numero
	return &n, &u, nil
}

// GetPosicion obtiene una posición con su ubicación.
func (r *EstructuraRepo) GetPosicion(ctx context.Context, id string) (*entity.Posicion, *entity.Ubicacion, error) {
	var (
		p entity.Posicion
		u entity.Ubicacion
	)
	err := r.q.QueryRow(ctx, `
		SELECT p.id, p.nivel_id, p.numero, p.vigente, b.id, b.codigo, b.nombre, e.codigo, n.numero
		FROM posiciones p JOIN niveles n ON n.id = p.nivel_id
		JOIN estantes e ON e.id = n.estante_id JOIN bodegas b ON b.id = e.bodega_id
		WHERE p.id = $1`, id).Scan(
		&p.ID, &p.NivelID, &p.Numero, &p.Vigente, &u.BodegaID, &u.BodegaCodigo, &u.BodegaNombre, &u.EstanteCodigo, &u.Nivel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get posicion: %w", err)
	}
	u.Posicion = p.Numero
	return &p, &u, nil
}

// GetCaja obtiene una caja con su ubicación.
func (r *EstructuraRepo) GetCaja(ctx context.Context, id string) (*entity.Caja, error) {
	return r.oneCaja(ctx, cajaSelect+` WHERE c.id = $1`, id)
}

// FindCaja busca una caja por su referencia BOD-EST-NIV-POS-CAJA.
func (r *EstructuraRepo) FindCaja(ctx context.Context, bodega, estante string, nivel, posicion, caja int) (*entity.Caja, error) {
	return r.oneCaja(ctx, cajaSelect+`
		WHERE upper(b.codigo) = upper($1) AND upper(e.codigo) = upper($2)
			AND n.numero = $3 AND p.numero = $4 AND c.numero = $5`,
		bodega, estante, nivel, posicion, caja)
}

func (r *EstructuraRepo) oneCaja(ctx context.Context, query string, args ...any) (*entity.Caja, error) {
	list, err := r.listCajas(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *EstructuraRepo) listCajas(ctx context.Context, query string, args ...any) ([]*entity.Caja, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cajas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Caja
	for rows.Next() {
		var c entity.Caja
		u := &c.Ubicacion
		if err := rows.Scan(&c.ID, &c.PosicionID, &c.Numero, &c.Vigente,
			&u.BodegaID, &u.BodegaCodigo, &u.BodegaNombre, &u.EstanteCodigo, &u.Nivel, &u.Posicion); err != nil {
			return nil, fmt.Errorf("scan caja: %w", err)
		}
		u.Caja = c.Numero
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateEstante actualiza código y vigencia.
func (r *EstructuraRepo) UpdateEstante(ctx context.Context, e *entity.Estante) error {
	return r.update(ctx, `UPDATE estantes SET codigo = $2, vigente = $3 WHERE id = $1`,
		"El estante ya existe en la bodega", e.ID, e.Codigo, e.Vigente)
}

// UpdateNivel actualiza número y vigencia.
func (r *EstructuraRepo) UpdateNivel(ctx context.Context, n *entity.Nivel) error {
	return r.update(ctx, `UPDATE niveles SET numero = $2, vigente = $3 WHERE id = $1`,
		"El nivel ya existe en el estante", n.ID, n.Numero, n.Vigente)
}

// UpdatePosicion actualiza número y vigencia.
func (r *EstructuraRepo) UpdatePosicion(ctx context.Context, p *entity.Posicion) error {
	return r.update(ctx, `UPDATE posiciones SET numero = $2, vigente = $3 WHERE id = $1`,
		"La posición ya existe en el nivel", p.ID, p.Numero, p.Vigente)
}

// UpdateCaja actualiza número y vigencia.
func (r *EstructuraRepo) UpdateCaja(ctx context.Context, c *entity.Caja) error {
	return r.update(ctx, `UPDATE cajas SET numero = $2, vigente = $3 WHERE id = $1`,
		"La caja ya existe en la posición", c.ID, c.Numero, c.Vigente)
}

func (r *EstructuraRepo) update(ctx context.Context, query, duplicado string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return writeError(fmt.Errorf("update estructura: %w", err), duplicado)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CajasBajo devuelve las cajas vigentes bajo un estante, nivel o posición.
func (r *EstructuraRepo) CajasBajo(ctx context.Context, nodo, id string) ([]*entity.Caja, error) {
	var cond string
	switch nodo {
	case repository.NodoEstante:
		cond = `e.id = $1`
	case repository.NodoNivel:
		cond = `n.id = $1`
	case repository.NodoPosicion:
		cond = `p.id = $1`
	default:
		return nil, fmt.Errorf("nodo desconocido %q", nodo)
	}
	return r.listCajas(ctx, cajaSelect+` WHERE `+cond+` AND c.vigente`+cajaOrden, id)
}

// CajasInhabilitadas lista las cajas no vigentes de la bodega.
func (r *EstructuraRepo) CajasInhabilitadas(ctx context.Context, bodegaID string) ([]*entity.Caja, error) {
	return r.listCajas(ctx, cajaSelect+` WHERE b.id = $1 AND NOT c.vigente`+cajaOrden, bodegaID)
}
