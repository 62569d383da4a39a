package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/archivo"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// EstructuraUseCase generación y mantenimiento de estantes, niveles, posiciones y cajas.
type EstructuraUseCase struct {
	txRunner   EstructuraTxRunner
	repo       repository.EstructuraRepository
	bodegaRepo repository.BodegaRepository
	tomoRepo   repository.TomoRepository
	log        *logger.Logger
}

// NewEstructuraUseCase construye el caso de uso.
func NewEstructuraUseCase(
	txRunner EstructuraTxRunner,
	repo repository.EstructuraRepository,
	bodegaRepo repository.BodegaRepository,
	tomoRepo repository.TomoRepository,
	log *logger.Logger,
) *EstructuraUseCase {
	return &EstructuraUseCase{
		txRunner:   txRunner,
		repo:       repo,
		bodegaRepo: bodegaRepo,
		tomoRepo:   tomoRepo,
		log:        log.Named("estructura"),
	}
}

// Generar crea lo que falta de la estructura de la bodega. Es idempotente: las filas existentes,
// incluso las inhabilitadas, no se tocan. Todo ocurre en una transacción con la bodega bloqueada.
func (uc *EstructuraUseCase) Generar(ctx context.Context, bodegaID string, in dto.GenerarEstructuraRequest) (*dto.GenerarEstructuraResponse, error) {
	d := archivo.Dimensiones{Estantes: in.Estantes, Niveles: in.Niveles, Posiciones: in.Posiciones, Cajas: in.Cajas}
	if err := d.Validar(); err != nil {
		return nil, err
	}
	b, err := uc.bodegaRepo.GetByID(ctx, bodegaID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.GenerarEstructuraResponse{}
	err = uc.txRunner.RunEstructura(ctx, func(repo repository.EstructuraRepository) error {
		if err := repo.LockBodega(ctx, bodegaID); err != nil {
			return err
		}
		actual, err := repo.Arbol(ctx, bodegaID)
		if err != nil {
			return err
		}
		plan, err := archivo.PlanificarEstructura(bodegaID, actual, d, func() string { return uuid.New().String() })
		if err != nil {
			return err
		}
		if plan.Vacio() {
			return nil
		}
		if out.Estantes, err = repo.InsertEstantes(ctx, plan.Estantes); err != nil {
			return err
		}
		if out.Niveles, err = repo.InsertNiveles(ctx, plan.Niveles); err != nil {
			return err
		}
		if out.Posiciones, err = repo.InsertPosiciones(ctx, plan.Posiciones); err != nil {
			return err
		}
		out.Cajas, err = repo.InsertCajas(ctx, plan.Cajas)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("bodega", b.Codigo).
		Int64("estantes", out.Estantes).
		Int64("niveles", out.Niveles).
		Int64("posiciones", out.Posiciones).
		Int64("cajas", out.Cajas).
		Msg("estructura generada")
	return out, nil
}

// ─── Estantes ────────────────────────────────────────────────────────────────

// CreateEstante agrega un estante a la bodega.
func (uc *EstructuraUseCase) CreateEstante(ctx context.Context, in dto.EstanteRequest) (*dto.EstanteResponse, error) {
	codigo, err := codigoEstante(in.Codigo)
	if err != nil {
		return nil, err
	}
	b, err := uc.bodegaRepo.GetByID(ctx, in.BodegaID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	e := &entity.Estante{ID: uuid.New().String(), BodegaID: b.ID, Codigo: codigo, Vigente: true}
	n, err := uc.repo.InsertEstantes(ctx, []*entity.Estante{e})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.NewBusinessError(domain.ErrDuplicate, "El estante ya existe en la bodega")
	}
	r := toEstanteResponse(b.Codigo, e)
	return &r, nil
}

// GetEstante devuelve el estante.
func (uc *EstructuraUseCase) GetEstante(ctx context.Context, id string) (*dto.EstanteResponse, error) {
	e, u, err := uc.repo.GetEstante(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	r := toEstanteResponse(u.BodegaCodigo, e)
	return &r, nil
}

// UpdateEstante cambia código y vigencia.
func (uc *EstructuraUseCase) UpdateEstante(ctx context.Context, id string, in dto.EstanteRequest) (*dto.EstanteResponse, error) {
	codigo, err := codigoEstante(in.Codigo)
	if err != nil {
		return nil, err
	}
	e, u, err := uc.repo.GetEstante(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	e.Codigo = codigo
	if in.Vigente != nil {
		e.Vigente = *in.Vigente
	}
	if err := uc.repo.UpdateEstante(ctx, e); err != nil {
		return nil, err
	}
	r := toEstanteResponse(u.BodegaCodigo, e)
	return &r, nil
}

// ToggleEstante habilita o inhabilita el estante.
func (uc *EstructuraUseCase) ToggleEstante(ctx context.Context, id string) (*dto.EstanteResponse, error) {
	e, u, err := uc.repo.GetEstante(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	e.Vigente = !e.Vigente
	if err := uc.repo.UpdateEstante(ctx, e); err != nil {
		return nil, err
	}
	r := toEstanteResponse(u.BodegaCodigo, e)
	return &r, nil
}

func codigoEstante(s string) (string, error) {
	codigo := texto.Mayusculas(s)
	if len(codigo) < 1 || len(codigo) > 2 || !texto.SoloLetras(codigo) {
		return "", domain.NewBusinessError(domain.ErrInvalidInput, "El código del estante debe tener una o dos letras")
	}
	return codigo, nil
}

// ─── Niveles ─────────────────────────────────────────────────────────────────

// CreateNivel agrega un nivel al estante PadreID.
func (uc *EstructuraUseCase) CreateNivel(ctx context.Context, in dto.NumeradoRequest) (*dto.NivelResponse, error) {
	e, u, err := uc.repo.GetEstante(ctx, in.PadreID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	n := &entity.Nivel{ID: uuid.New().String(), EstanteID: e.ID, Numero: in.Numero, Vigente: true}
	c, err := uc.repo.InsertNiveles(ctx, []*entity.Nivel{n})
	if err != nil {
		return nil, err
	}
	if c == 0 {
		return nil, domain.NewBusinessError(domain.ErrDuplicate, "El nivel ya existe en el estante")
	}
	u.Nivel = n.Numero
	r := toNivelResponse(*u, n)
	return &r, nil
}

// GetNivel devuelve el nivel.
func (uc *EstructuraUseCase) GetNivel(ctx context.Context, id string) (*dto.NivelResponse, error) {
	n, u, err := uc.repo.GetNivel(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	r := toNivelResponse(*u, n)
	return &r, nil
}

// UpdateNivel cambia número y vigencia. El padre no cambia.
func (uc *EstructuraUseCase) UpdateNivel(ctx context.Context, id string, in dto.NumeradoRequest) (*dto.NivelResponse, error) {
	return uc.saveNivel(ctx, id, func(n *entity.Nivel) {
		n.Numero = in.Numero
		if in.Vigente != nil {
			n.Vigente = *in.Vigente
		}
	})
}

// ToggleNivel habilita o inhabilita el nivel.
func (uc *EstructuraUseCase) ToggleNivel(ctx context.Context, id string) (*dto.NivelResponse, error) {
	return uc.saveNivel(ctx, id, func(n *entity.Nivel) { n.Vigente = !n.Vigente })
}

func (uc *EstructuraUseCase) saveNivel(ctx context.Context, id string, cambiar func(*entity.Nivel)) (*dto.NivelResponse, error) {
	n, u, err := uc.repo.GetNivel(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	cambiar(n)
	if err := uc.repo.UpdateNivel(ctx, n); err != nil {
		return nil, err
	}
	u.Nivel = n.Numero
	r := toNivelResponse(*u, n)
	return &r, nil
}

// ─── Posiciones ──────────────────────────────────────────────────────────────

// CreatePosicion agrega una posición al nivel PadreID.
func (uc *EstructuraUseCase) CreatePosicion(ctx context.Context, in dto.NumeradoRequest) (*dto.PosicionResponse, error) {
	n, u, err := uc.repo.GetNivel(ctx, in.PadreID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	p := &entity.Posicion{ID: uuid.New().String(), NivelID: n.ID, Numero: in.Numero, Vigente: true}
	c, err := uc.repo.InsertPosiciones(ctx, []*entity.Posicion{p})
	if err != nil {
		return nil, err
	}
	if c == 0 {
		return nil, domain.NewBusinessError(domain.ErrDuplicate, "La posición ya existe en el nivel")
	}
	u.Posicion = p.Numero
	r := toPosicionResponse(*u, p)
	return &r, nil
}

// GetPosicion devuelve la posición.
func (uc *EstructuraUseCase) GetPosicion(ctx context.Context, id string) (*dto.PosicionResponse, error) {
	p, u, err := uc.repo.GetPosicion(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	r := toPosicionResponse(*u, p)
	return &r, nil
}

// UpdatePosicion cambia número y vigencia.
func (uc *EstructuraUseCase) UpdatePosicion(ctx context.Context, id string, in dto.NumeradoRequest) (*dto.PosicionResponse, error) {
	return uc.savePosicion(ctx, id, func(p *entity.Posicion) {
		p.Numero = in.Numero
		if in.Vigente != nil {
			p.Vigente = *in.Vigente
		}
	})
}

// TogglePosicion habilita o inhabilita la posición.
func (uc *EstructuraUseCase) TogglePosicion(ctx context.Context, id string) (*dto.PosicionResponse, error) {
	return uc.savePosicion(ctx, id, func(p *entity.Posicion) { p.Vigente = !p.Vigente })
}

func (uc *EstructuraUseCase) savePosicion(ctx context.Context, id string, cambiar func(*entity.Posicion)) (*dto.PosicionResponse, error) {
	p, u, err := uc.repo.GetPosicion(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	cambiar(p)
	if err := uc.repo.UpdatePosicion(ctx, p); err != nil {
		return nil, err
	}
	u.Posicion = p.Numero
	r := toPosicionResponse(*u, p)
	return &r, nil
}

// ─── Cajas ───────────────────────────────────────────────────────────────────

// CreateCaja agrega una caja a la posición PadreID.
func (uc *EstructuraUseCase) CreateCaja(ctx context.Context, in dto.NumeradoRequest) (*dto.CajaResponse, error) {
	p, u, err := uc.repo.GetPosicion(ctx, in.PadreID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c := &entity.Caja{ID: uuid.New().String(), PosicionID: p.ID, Numero: in.Numero, Vigente: true, Ubicacion: *u}
	n, err := uc.repo.InsertCajas(ctx, []*entity.Caja{c})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.NewBusinessError(domain.ErrDuplicate, "La caja ya existe en la posición")
	}
	c.Ubicacion.Caja = c.Numero
	r := toCajaResponse(c)
	return &r, nil
}

// GetCaja devuelve la caja con los tomos que contiene.
func (uc *EstructuraUseCase) GetCaja(ctx context.Context, id string) (*dto.CajaResponse, error) {
	c, err := uc.repo.GetCaja(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	tomos, err := uc.tomoRepo.ListByCaja(ctx, id)
	if err != nil {
		return nil, err
	}
	r := toCajaResponse(c)
	r.Tomos = ToTomoResponses(tomos)
	return &r, nil
}

// UpdateCaja cambia número y vigencia.
func (uc *EstructuraUseCase) UpdateCaja(ctx context.Context, id string, in dto.NumeradoRequest) (*dto.CajaResponse, error) {
	return uc.saveCaja(ctx, id, func(c *entity.Caja) {
		c.Numero = in.Numero
		if in.Vigente != nil {
			c.Vigente = *in.Vigente
		}
	})
}

// ToggleCaja habilita o inhabilita la caja.
func (uc *EstructuraUseCase) ToggleCaja(ctx context.Context, id string) (*dto.CajaResponse, error) {
	return uc.saveCaja(ctx, id, func(c *entity.Caja) { c.Vigente = !c.Vigente })
}

func (uc *EstructuraUseCase) saveCaja(ctx context.Context, id string, cambiar func(*entity.Caja)) (*dto.CajaResponse, error) {
	c, err := uc.repo.GetCaja(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	cambiar(c)
	if err := uc.repo.UpdateCaja(ctx, c); err != nil {
		return nil, err
	}
	c.Ubicacion.Caja = c.Numero
	r := toCajaResponse(c)
	return &r, nil
}

// ─── Mapeo ───────────────────────────────────────────────────────────────────

func toEstanteResponse(bodega string, e *entity.Estante) dto.EstanteResponse {
	u := entity.Ubicacion{BodegaCodigo: bodega, EstanteCodigo: e.Codigo}
	out := dto.EstanteResponse{
		ID:       e.ID,
		BodegaID: e.BodegaID,
		Codigo:   e.Codigo,
		Display:  u.String(),
		Vigente:  e.Vigente,
	}
	for _, n := range e.Niveles {
		nu := u
		nu.Nivel = n.Numero
		out.Niveles = append(out.Niveles, toNivelResponse(nu, n))
	}
	return out
}

func toNivelResponse(u entity.Ubicacion, n *entity.Nivel) dto.NivelResponse {
	out := dto.NivelResponse{
		ID:        n.ID,
		EstanteID: n.EstanteID,
		Numero:    n.Numero,
		Display:   u.String(),
		Vigente:   n.Vigente,
	}
	for _, p := range n.Posiciones {
		pu := u
		pu.Posicion = p.Numero
		out.Posiciones = append(out.Posiciones, toPosicionResponse(pu, p))
	}
	return out
}

func toPosicionResponse(u entity.Ubicacion, p *entity.Posicion) dto.PosicionResponse {
	out := dto.PosicionResponse{
		ID:      p.ID,
		NivelID: p.NivelID,
		Numero:  p.Numero,
		Display: u.String(),
		Vigente: p.Vigente,
	}
	for _, c := range p.Cajas {
		out.Cajas = append(out.Cajas, toCajaResponse(c))
	}
	return out
}

func toCajaResponse(c *entity.Caja) dto.CajaResponse {
	return dto.CajaResponse{
		ID:         c.ID,
		PosicionID: c.PosicionID,
		Numero:     c.Numero,
		Display:    c.Ubicacion.String(),
		Vigente:    c.Vigente,
	}
}

// ToTomoResponse convierte un tomo en su DTO de salida.
func ToTomoResponse(t *entity.Tomo) dto.TomoResponse {
	return dto.TomoResponse{
		ID:                t.ID,
		Numero:            t.Numero,
		Referencia:        t.Referencia(),
		Vigente:           t.Vigente,
		FechaModificacion: t.FechaModificacion,
		Comentario:        t.Comentario,
		CreditoID:         t.CreditoID,
		CajaID:            t.CajaID,
		Ubicacion:         t.Ubicacion.String(),
	}
}

// ToTomoResponses convierte una lista de tomos.
func ToTomoResponses(list []*entity.Tomo) []dto.TomoResponse {
	out := make([]dto.TomoResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTomoResponse(t))
	}
	return out
}

