package dto

// StreamRequest alta o edición de stream.
type StreamRequest struct {
	Nombre string `json:"nombre" validate:"required,max=90"`
	QlikID string `json:"qlik_id" validate:"required,uuid"`
}

// StreamResponse salida de un stream.
type StreamResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	QlikID      string `json:"qlik_id"`
	ExternalURL string `json:"external_url"`
}

// StreamDetalleResponse stream con sus modelos y permisos.
type StreamDetalleResponse struct {
	StreamResponse
	Modelos  []ModeloResponse  `json:"modelos"`
	Permisos []PermisoResponse `json:"permisos"`
}

// ModeloRequest alta o edición de modelo; StreamID se ignora al agregar desde un stream.
type ModeloRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=90"`
	Descripcion string `json:"descripcion" validate:"max=210"`
	QlikID      string `json:"qlik_id" validate:"required,uuid"`
	StreamID    string `json:"stream_id" validate:"omitempty,uuid"`
}

// ModeloResponse salida de un modelo.
type ModeloResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion"`
	Resumen      string `json:"resumen"`
	QlikID       string `json:"qlik_id"`
	StreamID     string `json:"stream_id"`
	StreamNombre string `json:"stream_nombre"`
	ExternalURL  string `json:"external_url"`
}

// ModeloDetalleResponse modelo con los orígenes que usa y genera, y sus permisos.
type ModeloDetalleResponse struct {
	ModeloResponse
	Usa      []UsoOrigenResponse  `json:"usa"`
	Genera   []OrigenDatoResponse `json:"genera"`
	Permisos []PermisoResponse    `json:"permisos"`
}

// UsaOrigenRequest registra que un modelo usa un origen de datos.
type UsaOrigenRequest struct {
	OrigenDatoID string `json:"origendato_id" validate:"required,uuid"`
}

// GeneraOrigenRequest registra un origen de datos generado por el modelo.
type GeneraOrigenRequest struct {
	Nombre     string `json:"nombre" validate:"required,max=90"`
	TipoDatoID string `json:"tipodato_id" validate:"required,uuid"`
}

// UsoOrigenResponse relación modelo-origen.
type UsoOrigenResponse struct {
	ID               string `json:"id"`
	ModeloID         string `json:"modelo_id"`
	ModeloNombre     string `json:"modelo_nombre"`
	OrigenDatoID     string `json:"origendato_id"`
	OrigenDatoNombre string `json:"origendato_nombre"`
}

// TipoDatoRequest alta o edición de tipo de dato.
type TipoDatoRequest struct {
	Nombre       string `json:"nombre" validate:"required,max=90"`
	OrigenModelo bool   `json:"origenmodelo"`
	Vigente      *bool  `json:"vigente"`
}

// TipoDatoResponse salida de un tipo de dato.
type TipoDatoResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	OrigenModelo bool   `json:"origenmodelo"`
	Vigente      bool   `json:"vigente"`
}

// TipoDatoDetalleResponse tipo de dato con sus orígenes vigentes y permisos.
type TipoDatoDetalleResponse struct {
	TipoDatoResponse
	Origenes []OrigenDatoResponse `json:"origenes"`
	Permisos []PermisoResponse    `json:"permisos"`
}

// OrigenDatoRequest alta o edición de origen de datos.
type OrigenDatoRequest struct {
	Nombre     string `json:"nombre" validate:"required,max=90"`
	TipoDatoID string `json:"tipodato_id" validate:"required,uuid"`
	Vigente    *bool  `json:"vigente"`
}

// OrigenDatoResponse salida de un origen de datos.
type OrigenDatoResponse struct {
	ID             string  `json:"id"`
	Nombre         string  `json:"nombre"`
	Vigente        bool    `json:"vigente"`
	TipoDatoID     string  `json:"tipodato_id"`
	TipoDatoNombre string  `json:"tipodato_nombre"`
	ModeloID       *string `json:"modelo_id,omitempty"`
}

// OrigenDatoDetalleResponse origen con los modelos que lo usan.
type OrigenDatoDetalleResponse struct {
	OrigenDatoResponse
	Modelos []UsoOrigenResponse `json:"modelos"`
}

// TipoLicenciaRequest alta o edición de tipo de licencia.
type TipoLicenciaRequest struct {
	Descripcion string `json:"descripcion" validate:"required,max=15"`
	Cantidad    int    `json:"cantidad" validate:"min=0,max=32767"`
}

// TipoLicenciaResponse salida de un tipo de licencia con su cupo.
type TipoLicenciaResponse struct {
	ID          string `json:"id"`
	Descripcion string `json:"descripcion"`
	Cantidad    int    `json:"cantidad"`
	Asignadas   int    `json:"asignadas"`
	Disponibles int    `json:"disponibles"`
}

// LicenciaRequest alta o edición de licencia.
type LicenciaRequest struct {
	Codigo         int    `json:"codigo" validate:"min=0"`
	TipoUsuario    string `json:"tusuario" validate:"required,oneof=BDR OUT"`
	Nombre         string `json:"nombre" validate:"required,max=90"`
	Gerencia       string `json:"gerencia" validate:"max=90"`
	Pais           string `json:"pais" validate:"max=30"`
	TipoLicenciaID string `json:"tlicencia_id" validate:"required,uuid"`
}

// LicenciaResponse salida de una licencia.
type LicenciaResponse struct {
	ID              string `json:"id"`
	Codigo          int    `json:"codigo"`
	TipoUsuario     string `json:"tusuario"`
	UsuarioAD       string `json:"usuario_ad"`
	Nombre          string `json:"nombre"`
	Gerencia        string `json:"gerencia"`
	Pais            string `json:"pais"`
	TipoLicenciaID  string `json:"tlicencia_id"`
	TipoLicenciaDsc string `json:"tlicencia"`
}

// LicenciaDetalleResponse licencia con sus permisos.
type LicenciaDetalleResponse struct {
	LicenciaResponse
	Permisos []PermisoResponse `json:"permisos"`
}

// PermisoRequest otorga a una licencia acceso a un objeto Qlik.
type PermisoRequest struct {
	LicenciaID string `json:"licencia_id" validate:"required,uuid"`
	TipoObjeto string `json:"tobjeto" validate:"required,oneof=Stream Modelo TipoDato"`
	ObjetoID   string `json:"obj_id" validate:"required,uuid"`
}

// PermisoResponse salida de un permiso.
type PermisoResponse struct {
	ID           string            `json:"id"`
	TipoObjeto   string            `json:"tobjeto"`
	ObjetoID     string            `json:"obj_id"`
	ObjetoNombre string            `json:"objeto"`
	Licencia     *LicenciaResponse `json:"licencia,omitempty"`
}

// ObjetoResponse opción del selector de objetos.
type ObjetoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
