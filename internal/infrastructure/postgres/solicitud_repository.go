package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

var (
	_ repository.SolicitanteRepository  = (*SolicitanteRepo)(nil)
	_ repository.MotivoRepository       = (*MotivoRepo)(nil)
	_ repository.DocumentoFHARepository = (*DocumentoFHARepo)(nil)
	_ repository.SolicitudFHARepository = (*SolicitudFHARepo)(nil)
)

// ─── Solicitantes ────────────────────────────────────────────────────────────

const solicitanteColumns = `id, codigo, nombre, area, extension, correo, gerencia, vigente`

// SolicitanteRepo persistencia de solicitantes.
type SolicitanteRepo struct {
	q Querier
}

// NewSolicitanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSolicitanteRepository(q Querier) *SolicitanteRepo {
	return &SolicitanteRepo{q: q}
}

func (r *SolicitanteRepo) Create(ctx context.Context, s *entity.Solicitante) error {
	_, err := r.q.Exec(ctx, `INSERT INTO solicitantes (`+solicitanteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Codigo, s.Nombre, s.Area, s.Extension, s.Correo, s.Gerencia, s.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("insert solicitante: %w", err), "El código de solicitante ya existe en el área")
	}
	return nil
}

func (r *SolicitanteRepo) Update(ctx context.Context, s *entity.Solicitante) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE solicitantes SET codigo = $2, nombre = $3, area = $4, extension = $5, correo = $6,
			gerencia = $7, vigente = $8
		WHERE id = $1`,
		s.ID, s.Codigo, s.Nombre, s.Area, s.Extension, s.Correo, s.Gerencia, s.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("update solicitante: %w", err), "El código de solicitante ya existe en el área")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SolicitanteRepo) GetByID(ctx context.Context, id string) (*entity.Solicitante, error) {
	s, err := scanSolicitante(r.q.QueryRow(ctx, `SELECT `+solicitanteColumns+` FROM solicitantes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitante: %w", err)
	}
	return s, nil
}

// List busca por código exacto cuando Q es numérico y por nombre en otro caso.
func (r *SolicitanteRepo) List(ctx context.Context, f repository.Filtro, area string) ([]*entity.Solicitante, int, error) {
	where := `WHERE ($1 = '' OR area = $1) AND nombre ILIKE $2`
	args := []any{area, contains(f.Q)}
	if codigo, err := strconv.Atoi(strings.TrimSpace(f.Q)); err == nil {
		where = `WHERE ($1 = '' OR area = $1) AND codigo = $2`
		args[1] = codigo
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM solicitantes `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count solicitantes: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+solicitanteColumns+` FROM solicitantes `+where+`
		ORDER BY vigente DESC, nombre LIMIT $3 OFFSET $4`, append(args, limitOrAll(f.Limit), f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list solicitantes: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Solicitante, error) {
		return scanSolicitante(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan solicitantes: %w", err)
	}
	return list, total, nil
}

func scanSolicitante(row pgx.Row) (*entity.Solicitante, error) {
	var s entity.Solicitante
	err := row.Scan(&s.ID, &s.Codigo, &s.Nombre, &s.Area, &s.Extension, &s.Correo, &s.Gerencia, &s.Vigente)
	return &s, err
}

// ─── Motivos ─────────────────────────────────────────────────────────────────

// MotivoRepo persistencia de motivos.
type MotivoRepo struct {
	q Querier
}

// NewMotivoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMotivoRepository(q Querier) *MotivoRepo {
	return &MotivoRepo{q: q}
}

func (r *MotivoRepo) Create(ctx context.Context, m *entity.Motivo) error {
	_, err := r.q.Exec(ctx, `INSERT INTO motivos (id, nombre, area, demanda, vigente) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Nombre, m.Area, m.Demanda, m.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("insert motivo: %w", err), "El motivo ya existe en el área")
	}
	return nil
}

func (r *MotivoRepo) Update(ctx context.Context, m *entity.Motivo) error {
	cmd, err := r.q.Exec(ctx, `UPDATE motivos SET nombre = $2, area = $3, demanda = $4, vigente = $5 WHERE id = $1`,
		m.ID, m.Nombre, m.Area, m.Demanda, m.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("update motivo: %w", err), "El motivo ya existe en el área")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MotivoRepo) GetByID(ctx context.Context, id string) (*entity.Motivo, error) {
	var m entity.Motivo
	err := r.q.QueryRow(ctx, `SELECT id, nombre, area, demanda, vigente FROM motivos WHERE id = $1`, id).
		Scan(&m.ID, &m.Nombre, &m.Area, &m.Demanda, &m.Vigente)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motivo: %w", err)
	}
	return &m, nil
}

func (r *MotivoRepo) List(ctx context.Context, f repository.Filtro, area string) ([]*entity.Motivo, int, error) {
	where := `WHERE ($1 = '' OR area = $1) AND nombre ILIKE $2`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM motivos `+where, area, contains(f.Q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count motivos: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT id, nombre, area, demanda, vigente FROM motivos `+where+`
		ORDER BY vigente DESC, nombre LIMIT $3 OFFSET $4`, area, contains(f.Q), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list motivos: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Motivo, error) {
		var m entity.Motivo
		return &m, row.Scan(&m.ID, &m.Nombre, &m.Area, &m.Demanda, &m.Vigente)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan motivos: %w", err)
	}
	return list, total, nil
}

// ─── Documentos FHA ──────────────────────────────────────────────────────────

const documentoColumns = `id, tipo, numero, ubicacion, poliza, vigente, credito_id`

// DocumentoFHARepo persistencia de documentos FHA.
type DocumentoFHARepo struct {
	q Querier
}

// NewDocumentoFHARepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentoFHARepository(q Querier) *DocumentoFHARepo {
	return &DocumentoFHARepo{q: q}
}

func (r *DocumentoFHARepo) Create(ctx context.Context, d *entity.DocumentoFHA) error {
	_, err := r.q.Exec(ctx, `INSERT INTO documentos_fha (`+documentoColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Tipo, d.Numero, d.Ubicacion, d.Poliza, d.Vigente, d.CreditoID)
	if err != nil {
		return writeError(fmt.Errorf("insert documento fha: %w", err), "El documento ya existe en el crédito")
	}
	return nil
}

func (r *DocumentoFHARepo) Update(ctx context.Context, d *entity.DocumentoFHA) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE documentos_fha SET tipo = $2, numero = $3, ubicacion = $4, poliza = $5, vigente = $6
		WHERE id = $1`, d.ID, d.Tipo, d.Numero, d.Ubicacion, d.Poliza, d.Vigente)
	if err != nil {
		return writeError(fmt.Errorf("update documento fha: %w", err), "El documento ya existe en el crédito")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentoFHARepo) GetByID(ctx context.Context, id string) (*entity.DocumentoFHA, error) {
	var d entity.DocumentoFHA
	err := r.q.QueryRow(ctx, `SELECT `+documentoColumns+` FROM documentos_fha WHERE id = $1`, id).
		Scan(&d.ID, &d.Tipo, &d.Numero, &d.Ubicacion, &d.Poliza, &d.Vigente, &d.CreditoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento fha: %w", err)
	}
	return &d, nil
}

func (r *DocumentoFHARepo) ListByCredito(ctx context.Context, creditoID string) ([]*entity.DocumentoFHA, error) {
	rows, err := r.q.Query(ctx, `SELECT `+documentoColumns+` FROM documentos_fha
		WHERE credito_id = $1 ORDER BY tipo, numero`, creditoID)
	if err != nil {
		return nil, fmt.Errorf("list documentos fha: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.DocumentoFHA, error) {
		var d entity.DocumentoFHA
		return &d, row.Scan(&d.ID, &d.Tipo, &d.Numero, &d.Ubicacion, &d.Poliza, &d.Vigente, &d.CreditoID)
	})
}

func (r *DocumentoFHARepo) Exists(ctx context.Context, creditoID, tipo, numero string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documentos_fha WHERE credito_id = $1 AND tipo = $2 AND numero = $3)`,
		creditoID, tipo, numero).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists documento fha: %w", err)
	}
	return ok, nil
}

// ─── Solicitudes FHA ─────────────────────────────────────────────────────────

const solicitudColumns = `id, fecha_solicitud, bufete, fecha_egreso, poliza_egreso, fecha_entrega,
	fecha_devolucion, regreso_boveda, vigente, documento_id, solicitante_id, motivo_id, usuario_id`

// SolicitudFHARepo persistencia de solicitudes FHA.
type SolicitudFHARepo struct {
	q Querier
}

// NewSolicitudFHARepository construye el adaptador. Pasar pool o tx (Querier).
func NewSolicitudFHARepository(q Querier) *SolicitudFHARepo {
	return &SolicitudFHARepo{q: q}
}

func (r *SolicitudFHARepo) Create(ctx context.Context, s *entity.SolicitudFHA) error {
	_, err := r.q.Exec(ctx, `INSERT INTO solicitudes_fha (`+solicitudColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.FechaSolicitud, s.Bufete, s.FechaEgreso, s.PolizaEgreso, s.FechaEntrega,
		s.FechaDevolucion, s.RegresoBoveda, s.Vigente, s.DocumentoID, s.SolicitanteID, s.MotivoID, nullable(s.UsuarioID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewBusinessError(domain.ErrSolicitudActiva, "El documento ya tiene una solicitud activa")
		}
		return writeError(fmt.Errorf("insert solicitud fha: %w", err), "")
	}
	return nil
}

func (r *SolicitudFHARepo) Update(ctx context.Context, s *entity.SolicitudFHA) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE solicitudes_fha SET bufete = $2, fecha_egreso = $3, poliza_egreso = $4, fecha_entrega = $5,
			fecha_devolucion = $6, regreso_boveda = $7, vigente = $8, solicitante_id = $9, motivo_id = $10
		WHERE id = $1`,
		s.ID, s.Bufete, s.FechaEgreso, s.PolizaEgreso, s.FechaEntrega,
		s.FechaDevolucion, s.RegresoBoveda, s.Vigente, s.SolicitanteID, s.MotivoID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewBusinessError(domain.ErrSolicitudActiva, "El documento ya tiene una solicitud activa")
		}
		return fmt.Errorf("update solicitud fha: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SolicitudFHARepo) GetByID(ctx context.Context, id string) (*entity.SolicitudFHA, error) {
	return r.one(ctx, `SELECT `+solicitudColumns+` FROM solicitudes_fha WHERE id = $1`, id)
}

func (r *SolicitudFHARepo) ActivaPorDocumento(ctx context.Context, documentoID string) (*entity.SolicitudFHA, error) {
	return r.one(ctx, `SELECT `+solicitudColumns+` FROM solicitudes_fha WHERE documento_id = $1 AND vigente`, documentoID)
}

// ListAbiertas solicitudes vigentes sin egreso, de la más antigua a la más reciente.
func (r *SolicitudFHARepo) ListAbiertas(ctx context.Context, f repository.Filtro) ([]*entity.SolicitudFHA, int, error) {
	where := `WHERE vigente AND fecha_egreso IS NULL`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM solicitudes_fha `+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count solicitudes fha: %w", err)
	}
	list, err := r.list(ctx, `SELECT `+solicitudColumns+` FROM solicitudes_fha `+where+`
		ORDER BY fecha_solicitud LIMIT $1 OFFSET $2`, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SolicitudFHARepo) ListByCredito(ctx context.Context, creditoID string) ([]*entity.SolicitudFHA, error) {
	return r.list(ctx, `SELECT `+prefixed("s", solicitudColumns)+` FROM solicitudes_fha s
		JOIN documentos_fha d ON d.id = s.documento_id
		WHERE d.credito_id = $1 ORDER BY s.fecha_solicitud DESC`, creditoID)
}

func (r *SolicitudFHARepo) one(ctx context.Context, query string, args ...any) (*entity.SolicitudFHA, error) {
	s, err := scanSolicitud(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud fha: %w", err)
	}
	return s, nil
}

func (r *SolicitudFHARepo) list(ctx context.Context, query string, args ...any) ([]*entity.SolicitudFHA, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes fha: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SolicitudFHA, error) {
		return scanSolicitud(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan solicitudes fha: %w", err)
	}
	return list, nil
}

func scanSolicitud(row pgx.Row) (*entity.SolicitudFHA, error) {
	var (
		s       entity.SolicitudFHA
		usuario *string
	)
	err := row.Scan(&s.ID, &s.FechaSolicitud, &s.Bufete, &s.FechaEgreso, &s.PolizaEgreso, &s.FechaEntrega,
		&s.FechaDevolucion, &s.RegresoBoveda, &s.Vigente, &s.DocumentoID, &s.SolicitanteID, &s.MotivoID, &usuario)
	s.UsuarioID = deref(usuario)
	return &s, err
}
