package dto

import "time"

// BodegaRequest entrada para crear o actualizar una bodega.
type BodegaRequest struct {
	Codigo         string   `json:"codigo" validate:"required,len=3"`
	Nombre         string   `json:"nombre" validate:"required,min=1,max=120"`
	Direccion      string   `json:"direccion" validate:"max=254"`
	Vigente        *bool    `json:"vigente"`
	CorreoEgreso   bool     `json:"correo_egreso"`
	CorreoTraslado bool     `json:"correo_traslado"`
	EncargadoID    *string  `json:"encargado_id" validate:"omitempty,uuid"`
	Personal       []string `json:"personal" validate:"dive,uuid"`
}

// BodegaResponse salida de una bodega.
type BodegaResponse struct {
	ID             string           `json:"id"`
	Codigo         string           `json:"codigo"`
	Nombre         string           `json:"nombre"`
	Direccion      string           `json:"direccion"`
	Vigente        bool             `json:"vigente"`
	CorreoEgreso   bool             `json:"correo_egreso"`
	CorreoTraslado bool             `json:"correo_traslado"`
	Encargado      *UsuarioResponse `json:"encargado,omitempty"`
	Personal       []string         `json:"personal"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BodegaDetalleResponse bodega con su estructura física.
type BodegaDetalleResponse struct {
	BodegaResponse
	Columnas int               `json:"columnas"`
	Estantes []EstanteResponse `json:"estantes"`
}

// BodegaListResponse lista paginada de bodegas.
type BodegaListResponse struct {
	Items []BodegaResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
