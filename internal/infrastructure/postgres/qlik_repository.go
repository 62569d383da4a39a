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

var (
	_ repository.StreamRepository     = (*StreamRepo)(nil)
	_ repository.ModeloRepository     = (*ModeloRepo)(nil)
	_ repository.TipoDatoRepository   = (*TipoDatoRepo)(nil)
	_ repository.OrigenDatoRepository = (*OrigenDatoRepo)(nil)
)

// deleteOne ejecuta un DELETE y traduce cero filas a ErrNotFound.
func deleteOne(ctx context.Context, q Querier, query, id string) error {
	cmd, err := q.Exec(ctx, query, id)
	if err != nil {
		return writeError(fmt.Errorf("delete: %w", err), "")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─── Streams ─────────────────────────────────────────────────────────────────

// StreamRepo persistencia de streams.
type StreamRepo struct {
	q Querier
}

// NewStreamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStreamRepository(q Querier) *StreamRepo {
	return &StreamRepo{q: q}
}

func (r *StreamRepo) Create(ctx context.Context, s *entity.Stream) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_streams (id, nombre, qlik_id) VALUES ($1, $2, $3)`, s.ID, s.Nombre, s.QlikID)
	if err != nil {
		return writeError(fmt.Errorf("insert stream: %w", err), "Nombre o identificador de stream repetido")
	}
	return nil
}

func (r *StreamRepo) Update(ctx context.Context, s *entity.Stream) error {
	cmd, err := r.q.Exec(ctx, `UPDATE qlik_streams SET nombre = $2, qlik_id = $3 WHERE id = $1`, s.ID, s.Nombre, s.QlikID)
	if err != nil {
		return writeError(fmt.Errorf("update stream: %w", err), "Nombre o identificador de stream repetido")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StreamRepo) GetByID(ctx context.Context, id string) (*entity.Stream, error) {
	var s entity.Stream
	err := r.q.QueryRow(ctx, `SELECT id, nombre, qlik_id FROM qlik_streams WHERE id = $1`, id).Scan(&s.ID, &s.Nombre, &s.QlikID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stream: %w", err)
	}
	return &s, nil
}

func (r *StreamRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.Stream, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM qlik_streams WHERE nombre ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count streams: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, nombre, qlik_id FROM qlik_streams WHERE nombre ILIKE $1
		ORDER BY nombre LIMIT $2 OFFSET $3`, contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list streams: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Stream, error) {
		var s entity.Stream
		return &s, row.Scan(&s.ID, &s.Nombre, &s.QlikID)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan streams: %w", err)
	}
	return list, total, nil
}

// Delete borra el stream, sus modelos (cascada) y los permisos otorgados sobre ambos.
func (r *StreamRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `
		WITH permisos AS (
			DELETE FROM qlik_permisos
			WHERE (tobjeto = 'Stream' AND obj_id = $1)
				OR (tobjeto = 'Modelo' AND obj_id IN (SELECT id FROM qlik_modelos WHERE stream_id = $1))
		)
		DELETE FROM qlik_streams WHERE id = $1`, id)
}

// ─── Modelos ─────────────────────────────────────────────────────────────────

const modeloSelect = `
	SELECT m.id, m.nombre, m.descripcion, m.qlik_id, m.stream_id, s.nombre
	FROM qlik_modelos m JOIN qlik_streams s ON s.id = m.stream_id`

// ModeloRepo persistencia de modelos.
type ModeloRepo struct {
	q Querier
}

// NewModeloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModeloRepository(q Querier) *ModeloRepo {
	return &ModeloRepo{q: q}
}

func (r *ModeloRepo) Create(ctx context.Context, m *entity.Modelo) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_modelos (id, nombre, descripcion, qlik_id, stream_id) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Nombre, m.Descripcion, m.QlikID, m.StreamID)
	if err != nil {
		return writeError(fmt.Errorf("insert modelo: %w", err), "Ya existe un modelo con ese nombre o identificador")
	}
	return nil
}

func (r *ModeloRepo) Update(ctx context.Context, m *entity.Modelo) error {
	cmd, err := r.q.Exec(ctx, `UPDATE qlik_modelos SET nombre = $2, descripcion = $3, qlik_id = $4, stream_id = $5 WHERE id = $1`,
		m.ID, m.Nombre, m.Descripcion, m.QlikID, m.StreamID)
	if err != nil {
		return writeError(fmt.Errorf("update modelo: %w", err), "Ya existe un modelo con ese nombre o identificador")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ModeloRepo) GetByID(ctx context.Context, id string) (*entity.Modelo, error) {
	list, err := r.list(ctx, modeloSelect+` WHERE m.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *ModeloRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.Modelo, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM qlik_modelos WHERE nombre ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count modelos: %w", err)
	}
	list, err := r.list(ctx, modeloSelect+` WHERE m.nombre ILIKE $1 ORDER BY s.nombre, m.nombre LIMIT $2 OFFSET $3`,
		contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ModeloRepo) ListByStream(ctx context.Context, streamID string) ([]*entity.Modelo, error) {
	return r.list(ctx, modeloSelect+` WHERE m.stream_id = $1 ORDER BY m.nombre`, streamID)
}

func (r *ModeloRepo) ExistsInStream(ctx context.Context, streamID, nombre string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM qlik_modelos WHERE stream_id = $1 AND nombre = $2)`,
		streamID, nombre).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists modelo: %w", err)
	}
	return ok, nil
}

// Delete borra el modelo, sus orígenes y usos (cascada) y sus permisos.
func (r *ModeloRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `
		WITH permisos AS (
			DELETE FROM qlik_permisos WHERE tobjeto = 'Modelo' AND obj_id = $1
		)
		DELETE FROM qlik_modelos WHERE id = $1`, id)
}

func (r *ModeloRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Modelo, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list modelos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Modelo, error) {
		var m entity.Modelo
		return &m, row.Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.QlikID, &m.StreamID, &m.StreamNombre)
	})
	if err != nil {
		return nil, fmt.Errorf("scan modelos: %w", err)
	}
	return list, nil
}

// ─── Tipos de dato ───────────────────────────────────────────────────────────

// TipoDatoRepo persistencia de tipos de dato.
type TipoDatoRepo struct {
	q Querier
}

// NewTipoDatoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTipoDatoRepository(q Querier) *TipoDatoRepo {
	return &TipoDatoRepo{q: q}
}

func (r *TipoDatoRepo) Create(ctx context.Context, t *entity.TipoDato) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_tipos_dato (id, nombre, origenmodelo, vigente) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Nombre, t.OrigenModelo, t.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("insert tipo dato: %w", err), "El tipo de dato ya existe")
	}
	return nil
}

func (r *TipoDatoRepo) Update(ctx context.Context, t *entity.TipoDato) error {
	cmd, err := r.q.Exec(ctx, `UPDATE qlik_tipos_dato SET nombre = $2, origenmodelo = $3, vigente = $4 WHERE id = $1`,
		t.ID, t.Nombre, t.OrigenModelo, t.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("update tipo dato: %w", err), "El tipo de dato ya existe")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TipoDatoRepo) GetByID(ctx context.Context, id string) (*entity.TipoDato, error) {
	var t entity.TipoDato
	err := r.q.QueryRow(ctx, `SELECT id, nombre, origenmodelo, vigente FROM qlik_tipos_dato WHERE id = $1`, id).
		Scan(&t.ID, &t.Nombre, &t.OrigenModelo, &t.Vigente)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo dato: %w", err)
	}
	return &t, nil
}

func (r *TipoDatoRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.TipoDato, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM qlik_tipos_dato WHERE nombre ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tipos dato: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, nombre, origenmodelo, vigente FROM qlik_tipos_dato WHERE nombre ILIKE $1
		ORDER BY vigente DESC, nombre LIMIT $2 OFFSET $3`, contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tipos dato: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.TipoDato, error) {
		var t entity.TipoDato
		return &t, row.Scan(&t.ID, &t.Nombre, &t.OrigenModelo, &t.Vigente)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan tipos dato: %w", err)
	}
	return list, total, nil
}

// Delete borra el tipo de dato, sus orígenes (cascada) y sus permisos.
func (r *TipoDatoRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `
		WITH permisos AS (
			DELETE FROM qlik_permisos WHERE tobjeto = 'TipoDato' AND obj_id = $1
		)
		DELETE FROM qlik_tipos_dato WHERE id = $1`, id)
}

// ─── Orígenes de datos ───────────────────────────────────────────────────────

const origenSelect = `
	SELECT o.id, o.nombre, o.vigente, o.tipodato_id, t.nombre, o.modelo_id
	FROM qlik_origenes_dato o JOIN qlik_tipos_dato t ON t.id = o.tipodato_id`

const usoSelect = `
	SELECT u.id, u.modelo_id, m.nombre, u.origendato_id, o.nombre
	FROM qlik_origenes_modelo u
	JOIN qlik_modelos m ON m.id = u.modelo_id
	JOIN qlik_origenes_dato o ON o.id = u.origendato_id`

// OrigenDatoRepo persistencia de orígenes de datos y de su uso por modelos.
type OrigenDatoRepo struct {
	q Querier
}

// NewOrigenDatoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrigenDatoRepository(q Querier) *OrigenDatoRepo {
	return &OrigenDatoRepo{q: q}
}

func (r *OrigenDatoRepo) Create(ctx context.Context, o *entity.OrigenDato) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_origenes_dato (id, nombre, vigente, tipodato_id, modelo_id) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Nombre, o.Vigente, o.TipoDatoID, o.ModeloID)
	if err != nil {
		return writeError(fmt.Errorf("insert origen: %w", err), "El origen de datos ya existe para el tipo de dato")
	}
	return nil
}

func (r *OrigenDatoRepo) Update(ctx context.Context, o *entity.OrigenDato) error {
	cmd, err := r.q.Exec(ctx, `UPDATE qlik_origenes_dato SET nombre = $2, vigente = $3, tipodato_id = $4, modelo_id = $5 WHERE id = $1`,
		o.ID, o.Nombre, o.Vigente, o.TipoDatoID, o.ModeloID)
	if err != nil {
		return writeError(fmt.Errorf("update origen: %w", err), "El origen de datos ya existe para el tipo de dato")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrigenDatoRepo) GetByID(ctx context.Context, id string) (*entity.OrigenDato, error) {
	list, err := r.list(ctx, origenSelect+` WHERE o.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *OrigenDatoRepo) List(ctx context.Context, f repository.Filtro) ([]*entity.OrigenDato, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM qlik_origenes_dato WHERE nombre ILIKE $1`, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count origenes: %w", err)
	}
	list, err := r.list(ctx, origenSelect+` WHERE o.nombre ILIKE $1 ORDER BY t.nombre, o.nombre LIMIT $2 OFFSET $3`,
		contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *OrigenDatoRepo) ListVigentesByTipo(ctx context.Context, tipoDatoID string) ([]*entity.OrigenDato, error) {
	return r.list(ctx, origenSelect+` WHERE o.tipodato_id = $1 AND o.vigente ORDER BY o.nombre`, tipoDatoID)
}

func (r *OrigenDatoRepo) ListGeneradosPor(ctx context.Context, modeloID string) ([]*entity.OrigenDato, error) {
	return r.list(ctx, origenSelect+` WHERE o.modelo_id = $1 ORDER BY t.nombre, o.nombre`, modeloID)
}

func (r *OrigenDatoRepo) Exists(ctx context.Context, nombre, tipoDatoID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM qlik_origenes_dato WHERE nombre = $1 AND tipodato_id = $2)`,
		nombre, tipoDatoID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists origen: %w", err)
	}
	return ok, nil
}

func (r *OrigenDatoRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `DELETE FROM qlik_origenes_dato WHERE id = $1`, id)
}

func (r *OrigenDatoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OrigenDato, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list origenes: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.OrigenDato, error) {
		var o entity.OrigenDato
		return &o, row.Scan(&o.ID, &o.Nombre, &o.Vigente, &o.TipoDatoID, &o.TipoDatoNombre, &o.ModeloID)
	})
	if err != nil {
		return nil, fmt.Errorf("scan origenes: %w", err)
	}
	return list, nil
}

func (r *OrigenDatoRepo) CreateUso(ctx context.Context, u *entity.OrigenDatoModelo) error {
	_, err := r.q.Exec(ctx, `INSERT INTO qlik_origenes_modelo (id, modelo_id, origendato_id) VALUES ($1, $2, $3)`,
		u.ID, u.ModeloID, u.OrigenDatoID)
	if err != nil {
		return writeError(fmt.Errorf("insert uso: %w", err), "El modelo ya usa ese origen de datos")
	}
	return nil
}

func (r *OrigenDatoRepo) GetUso(ctx context.Context, id string) (*entity.OrigenDatoModelo, error) {
	list, err := r.listUsos(ctx, usoSelect+` WHERE u.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *OrigenDatoRepo) ExistsUso(ctx context.Context, modeloID, origenID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM qlik_origenes_modelo WHERE modelo_id = $1 AND origendato_id = $2)`,
		modeloID, origenID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists uso: %w", err)
	}
	return ok, nil
}

func (r *OrigenDatoRepo) ListUsosByModelo(ctx context.Context, modeloID string) ([]*entity.OrigenDatoModelo, error) {
	return r.listUsos(ctx, usoSelect+` WHERE u.modelo_id = $1 ORDER BY o.nombre`, modeloID)
}

func (r *OrigenDatoRepo) ListUsosByOrigen(ctx context.Context, origenID string) ([]*entity.OrigenDatoModelo, error) {
	return r.listUsos(ctx, usoSelect+` WHERE u.origendato_id = $1 ORDER BY m.nombre`, origenID)
}

func (r *OrigenDatoRepo) DeleteUso(ctx context.Context, id string) error {
	return deleteOne(ctx, r.q, `DELETE FROM qlik_origenes_modelo WHERE id = $1`, id)
}

func (r *OrigenDatoRepo) listUsos(ctx context.Context, query string, args ...any) ([]*entity.OrigenDatoModelo, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.OrigenDatoModelo, error) {
		var u entity.OrigenDatoModelo
		return &u, row.Scan(&u.ID, &u.ModeloID, &u.ModeloNombre, &u.OrigenDatoID, &u.OrigenDatoNombre)
	})
	if err != nil {
		return nil, fmt.Errorf("scan usos: %w", err)
	}
	return list, nil
}
