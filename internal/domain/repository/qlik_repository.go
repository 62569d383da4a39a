package repository

import (
	"context"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// StreamRepository persistencia de streams Qlik.
type StreamRepository interface {
	Create(ctx context.Context, s *entity.Stream) error
	Update(ctx context.Context, s *entity.Stream) error
	GetByID(ctx context.Context, id string) (*entity.Stream, error)
	List(ctx context.Context, f Filtro) ([]*entity.Stream, int, error)
	Delete(ctx context.Context, id string) error
}

// ModeloRepository persistencia de modelos (apps) Qlik.
type ModeloRepository interface {
	Create(ctx context.Context, m *entity.Modelo) error
	Update(ctx context.Context, m *entity.Modelo) error
	GetByID(ctx context.Context, id string) (*entity.Modelo, error)
	List(ctx context.Context, f Filtro) ([]*entity.Modelo, int, error)
	ListByStream(ctx context.Context, streamID string) ([]*entity.Modelo, error)
	ExistsInStream(ctx context.Context, streamID, nombre string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// TipoDatoRepository persistencia de tipos de dato.
type TipoDatoRepository interface {
	Create(ctx context.Context, t *entity.TipoDato) error
	Update(ctx context.Context, t *entity.TipoDato) error
	GetByID(ctx context.Context, id string) (*entity.TipoDato, error)
	List(ctx context.Context, f Filtro) ([]*entity.TipoDato, int, error)
	Delete(ctx context.Context, id string) error
}

// OrigenDatoRepository persistencia de orígenes de datos y su uso por modelos.
type OrigenDatoRepository interface {
	Create(ctx context.Context, o *entity.OrigenDato) error
	Update(ctx context.Context, o *entity.OrigenDato) error
	GetByID(ctx context.Context, id string) (*entity.OrigenDato, error)
	List(ctx context.Context, f Filtro) ([]*entity.OrigenDato, int, error)
	// ListVigentesByTipo alimenta el selector dependiente del tipo de dato.
	ListVigentesByTipo(ctx context.Context, tipoDatoID string) ([]*entity.OrigenDato, error)
	ListGeneradosPor(ctx context.Context, modeloID string) ([]*entity.OrigenDato, error)
	Exists(ctx context.Context, nombre, tipoDatoID string) (bool, error)
	Delete(ctx context.Context, id string) error

	CreateUso(ctx context.Context, u *entity.OrigenDatoModelo) error
	GetUso(ctx context.Context, id string) (*entity.OrigenDatoModelo, error)
	ExistsUso(ctx context.Context, modeloID, origenID string) (bool, error)
	ListUsosByModelo(ctx context.Context, modeloID string) ([]*entity.OrigenDatoModelo, error)
	ListUsosByOrigen(ctx context.Context, origenID string) ([]*entity.OrigenDatoModelo, error)
	DeleteUso(ctx context.Context, id string) error
}

// TipoLicenciaRepository persistencia de tipos de licencia.
type TipoLicenciaRepository interface {
	Create(ctx context.Context, t *entity.TipoLicencia) error
	Update(ctx context.Context, t *entity.TipoLicencia) error
	// GetByID completa Asignadas con el conteo de licencias.
	GetByID(ctx context.Context, id string) (*entity.TipoLicencia, error)
	List(ctx context.Context, f Filtro) ([]*entity.TipoLicencia, int, error)
	Delete(ctx context.Context, id string) error
}

// LicenciaRepository persistencia de licencias.
type LicenciaRepository interface {
	Create(ctx context.Context, l *entity.Licencia) error
	Update(ctx context.Context, l *entity.Licencia) error
	GetByID(ctx context.Context, id string) (*entity.Licencia, error)
	List(ctx context.Context, f Filtro) ([]*entity.Licencia, int, error)
	Delete(ctx context.Context, id string) error
}

// PermisoRepository persistencia de permisos sobre objetos Qlik.
type PermisoRepository interface {
	Create(ctx context.Context, p *entity.Permiso) error
	GetByID(ctx context.Context, id string) (*entity.Permiso, error)
	List(ctx context.Context, f Filtro) ([]*entity.Permiso, int, error)
	ListByObjeto(ctx context.Context, tipo, objetoID string) ([]*entity.Permiso, error)
	ListByLicencia(ctx context.Context, licenciaID string) ([]*entity.Permiso, error)
	Delete(ctx context.Context, id string) error
	// Objetos lista id y nombre de los objetos del tipo indicado.
	Objetos(ctx context.Context, tipo string) ([]ObjetoQlik, error)
	ObjetoExiste(ctx context.Context, tipo, id string) (bool, error)
}

// ObjetoQlik opción del selector de objetos al otorgar permisos.
type ObjetoQlik struct {
	ID     string
	Nombre string
}
