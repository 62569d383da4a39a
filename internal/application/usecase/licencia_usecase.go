package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// LicenciaUseCase tipos de licencia, licencias Qlik y sus permisos.
type LicenciaUseCase struct {
	txRunner     LicenciaTxRunner
	tipoRepo     repository.TipoLicenciaRepository
	licenciaRepo repository.LicenciaRepository
	permisoRepo  repository.PermisoRepository
}

// NewLicenciaUseCase construye el caso de uso.
func NewLicenciaUseCase(
	txRunner LicenciaTxRunner,
	tipoRepo repository.TipoLicenciaRepository,
	licenciaRepo repository.LicenciaRepository,
	permisoRepo repository.PermisoRepository,
) *LicenciaUseCase {
	return &LicenciaUseCase{txRunner: txRunner, tipoRepo: tipoRepo, licenciaRepo: licenciaRepo, permisoRepo: permisoRepo}
}

var errSinDisponibles = domain.NewBusinessError(domain.ErrConflict, "No hay licencias disponibles")

// ─── Tipos de licencia ───────────────────────────────────────────────────────

func (uc *LicenciaUseCase) ListTipos(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.TipoLicenciaResponse], error) {
	f := filtro(page)
	list, total, err := uc.tipoRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.TipoLicenciaResponse]{Items: mapList(list, toTipoLicenciaResponse), Page: pagina(f, total)}, nil
}

func (uc *LicenciaUseCase) GetTipo(ctx context.Context, id string) (*dto.TipoLicenciaResponse, error) {
	t, err := uc.tipoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	r := toTipoLicenciaResponse(t)
	return &r, nil
}

func (uc *LicenciaUseCase) CreateTipo(ctx context.Context, in dto.TipoLicenciaRequest) (*dto.TipoLicenciaResponse, error) {
	t := &entity.TipoLicencia{ID: uuid.New().String(), Descripcion: texto.Mayusculas(in.Descripcion), Cantidad: in.Cantidad}
	if err := uc.tipoRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	r := toTipoLicenciaResponse(t)
	return &r, nil
}

// UpdateTipo cambia descripción y cupo; el cupo no puede quedar por debajo de las asignadas.
func (uc *LicenciaUseCase) UpdateTipo(ctx context.Context, id string, in dto.TipoLicenciaRequest) (*dto.TipoLicenciaResponse, error) {
	var out dto.TipoLicenciaResponse
	err := uc.txRunner.RunLicencias(ctx, func(tipoRepo repository.TipoLicenciaRepository, _ repository.LicenciaRepository) error {
		t, err := tipoRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if in.Cantidad < t.Asignadas {
			return domain.NewBusinessError(domain.ErrConflict, "La cantidad es menor que las licencias asignadas")
		}
		t.Descripcion = texto.Mayusculas(in.Descripcion)
		t.Cantidad = in.Cantidad
		if err := tipoRepo.Update(ctx, t); err != nil {
			return err
		}
		out = toTipoLicenciaResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *LicenciaUseCase) DeleteTipo(ctx context.Context, id string) error {
	return uc.tipoRepo.Delete(ctx, id)
}

// ─── Licencias ───────────────────────────────────────────────────────────────

func (uc *LicenciaUseCase) ListLicencias(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.LicenciaResponse], error) {
	f := filtro(page)
	list, total, err := uc.licenciaRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.LicenciaResponse]{Items: mapList(list, toLicenciaResponse), Page: pagina(f, total)}, nil
}

// GetLicencia devuelve la licencia con sus permisos.
func (uc *LicenciaUseCase) GetLicencia(ctx context.Context, id string) (*dto.LicenciaDetalleResponse, error) {
	l, err := uc.licenciaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	permisos, err := uc.permisoRepo.ListByLicencia(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.LicenciaDetalleResponse{
		LicenciaResponse: toLicenciaResponse(l),
		Permisos:         mapList(permisos, toPermisoResponse),
	}, nil
}

// CreateLicencia asigna una licencia si el tipo tiene cupo. El tipo queda bloqueado durante
// la transacción para que dos altas simultáneas no excedan la cantidad.
func (uc *LicenciaUseCase) CreateLicencia(ctx context.Context, in dto.LicenciaRequest) (*dto.LicenciaResponse, error) {
	l := &entity.Licencia{ID: uuid.New().String()}
	if err := aplicarLicencia(l, in); err != nil {
		return nil, err
	}
	err := uc.txRunner.RunLicencias(ctx, func(tipoRepo repository.TipoLicenciaRepository, licenciaRepo repository.LicenciaRepository) error {
		t, err := tipoRepo.GetByID(ctx, l.TipoLicenciaID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Disponibles() <= 0 {
			return errSinDisponibles
		}
		l.TipoLicenciaDsc = t.Descripcion
		return licenciaRepo.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	r := toLicenciaResponse(l)
	return &r, nil
}

// UpdateLicencia modifica la licencia; cambiar de tipo exige cupo en el tipo nuevo.
func (uc *LicenciaUseCase) UpdateLicencia(ctx context.Context, id string, in dto.LicenciaRequest) (*dto.LicenciaResponse, error) {
	var out dto.LicenciaResponse
	err := uc.txRunner.RunLicencias(ctx, func(tipoRepo repository.TipoLicenciaRepository, licenciaRepo repository.LicenciaRepository) error {
		l, err := licenciaRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		anterior := l.TipoLicenciaID
		if err := aplicarLicencia(l, in); err != nil {
			return err
		}
		if l.TipoLicenciaID != anterior {
			t, err := tipoRepo.GetByID(ctx, l.TipoLicenciaID)
			if err != nil {
				return err
			}
			if t == nil {
				return domain.ErrNotFound
			}
			if t.Disponibles() <= 0 {
				return errSinDisponibles
			}
			l.TipoLicenciaDsc = t.Descripcion
		}
		if err := licenciaRepo.Update(ctx, l); err != nil {
			return err
		}
		out = toLicenciaResponse(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func aplicarLicencia(l *entity.Licencia, in dto.LicenciaRequest) error {
	if !entity.TipoUsuarioValido(in.TipoUsuario) {
		return domain.NewBusinessError(domain.ErrInvalidInput, "Tipo de usuario no válido")
	}
	l.Codigo = in.Codigo
	l.TipoUsuario = in.TipoUsuario
	l.Nombre = texto.Mayusculas(in.Nombre)
	l.Gerencia = texto.Mayusculas(in.Gerencia)
	l.Pais = texto.Mayusculas(in.Pais)
	l.TipoLicenciaID = in.TipoLicenciaID
	return nil
}

// DeleteLicencia elimina la licencia y sus permisos.
func (uc *LicenciaUseCase) DeleteLicencia(ctx context.Context, id string) error {
	return uc.licenciaRepo.Delete(ctx, id)
}

// ─── Permisos ────────────────────────────────────────────────────────────────

func (uc *LicenciaUseCase) ListPermisos(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.PermisoResponse], error) {
	f := filtro(page)
	list, total, err := uc.permisoRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.PermisoResponse]{Items: mapList(list, toPermisoResponse), Page: pagina(f, total)}, nil
}

// CreatePermiso otorga a la licencia acceso al objeto; el objeto debe existir.
func (uc *LicenciaUseCase) CreatePermiso(ctx context.Context, in dto.PermisoRequest) (*dto.PermisoResponse, error) {
	if !entity.TipoObjetoValido(in.TipoObjeto) {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Tipo de objeto no válido")
	}
	l, err := uc.licenciaRepo.GetByID(ctx, in.LicenciaID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.permisoRepo.ObjetoExiste(ctx, in.TipoObjeto, in.ObjetoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "El objeto no existe")
	}
	p := &entity.Permiso{ID: uuid.New().String(), LicenciaID: l.ID, TipoObjeto: in.TipoObjeto, ObjetoID: in.ObjetoID}
	if err := uc.permisoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	p, err = uc.permisoRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	r := toPermisoResponse(p)
	return &r, nil
}

func (uc *LicenciaUseCase) DeletePermiso(ctx context.Context, id string) error {
	return uc.permisoRepo.Delete(ctx, id)
}

// Objetos opciones para otorgar permisos sobre el tipo de objeto indicado.
func (uc *LicenciaUseCase) Objetos(ctx context.Context, tipo string) ([]dto.ObjetoResponse, error) {
	tipo = strings.TrimSpace(tipo)
	if !entity.TipoObjetoValido(tipo) {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Tipo de objeto no válido")
	}
	list, err := uc.permisoRepo.Objetos(ctx, tipo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ObjetoResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.ObjetoResponse{ID: o.ID, Nombre: o.Nombre})
	}
	return out, nil
}

func toTipoLicenciaResponse(t *entity.TipoLicencia) dto.TipoLicenciaResponse {
	return dto.TipoLicenciaResponse{
		ID:          t.ID,
		Descripcion: t.Descripcion,
		Cantidad:    t.Cantidad,
		Asignadas:   t.Asignadas,
		Disponibles: t.Disponibles(),
	}
}

func toLicenciaResponse(l *entity.Licencia) dto.LicenciaResponse {
	return dto.LicenciaResponse{
		ID:              l.ID,
		Codigo:          l.Codigo,
		TipoUsuario:     l.TipoUsuario,
		UsuarioAD:       l.UsuarioAD(),
		Nombre:          l.Nombre,
		Gerencia:        l.Gerencia,
		Pais:            l.Pais,
		TipoLicenciaID:  l.TipoLicenciaID,
		TipoLicenciaDsc: l.TipoLicenciaDsc,
	}
}

func toPermisoResponse(p *entity.Permiso) dto.PermisoResponse {
	out := dto.PermisoResponse{ID: p.ID, TipoObjeto: p.TipoObjeto, ObjetoID: p.ObjetoID, ObjetoNombre: p.ObjetoNombre}
	if p.Licencia != nil {
		r := toLicenciaResponse(p.Licencia)
		out.Licencia = &r
	}
	return out
}
