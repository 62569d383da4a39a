package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClienteRequest alta o edición de cliente.
type ClienteRequest struct {
	Codigo int64  `json:"codigo" validate:"min=0"`
	Nombre string `json:"nombre" validate:"required,max=150"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID     string `json:"id"`
	Codigo int64  `json:"codigo"`
	Nombre string `json:"nombre"`
}

// MonedaRequest alta o edición de moneda.
type MonedaRequest struct {
	Descripcion string `json:"descripcion" validate:"required,max=30"`
	Simbolo     string `json:"simbolo" validate:"max=5"`
}

// MonedaResponse salida de una moneda.
type MonedaResponse struct {
	ID          string `json:"id"`
	Descripcion string `json:"descripcion"`
	Simbolo     string `json:"simbolo"`
}

// ProductoRequest alta o edición de producto.
type ProductoRequest struct {
	Descripcion string `json:"descripcion" validate:"required,max=90"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID          string `json:"id"`
	Descripcion string `json:"descripcion"`
}

// OficinaRequest alta o edición de oficina.
type OficinaRequest struct {
	Numero      int    `json:"numero" validate:"min=0"`
	Descripcion string `json:"descripcion" validate:"required,max=90"`
}

// OficinaResponse salida de una oficina.
type OficinaResponse struct {
	ID          string `json:"id"`
	Numero      int    `json:"numero"`
	Descripcion string `json:"descripcion"`
	Display     string `json:"display"`
}

// CreditoRequest alta o edición de crédito.
type CreditoRequest struct {
	Numero          string          `json:"numero" validate:"required,max=30"`
	Monto           decimal.Decimal `json:"monto"`
	Escaneado       bool            `json:"escaneado"`
	FechaConcesion  *time.Time      `json:"fecha_concesion"`
	ClienteID       string          `json:"cliente_id" validate:"required,uuid"`
	MonedaID        string          `json:"moneda_id" validate:"required,uuid"`
	OficinaID       string          `json:"oficina_id" validate:"required,uuid"`
	ProductoID      string          `json:"producto_id" validate:"required,uuid"`
	CreditoAnterior string          `json:"credito_anterior" validate:"max=30"`
}

// CreditoResponse salida de un crédito.
type CreditoResponse struct {
	ID              string            `json:"id"`
	Numero          string            `json:"numero"`
	Monto           decimal.Decimal   `json:"monto"`
	Escaneado       bool              `json:"escaneado"`
	FechaConcesion  *time.Time        `json:"fecha_concesion,omitempty"`
	FechaIngreso    time.Time         `json:"fecha_ingreso"`
	CreditoAnterior string            `json:"credito_anterior"`
	CantidadTomos   int               `json:"cantidad_tomos"`
	Cliente         *ClienteResponse  `json:"cliente,omitempty"`
	Moneda          *MonedaResponse   `json:"moneda,omitempty"`
	Oficina         *OficinaResponse  `json:"oficina,omitempty"`
	Producto        *ProductoResponse `json:"producto,omitempty"`
}

// CreditoDetalleResponse crédito con sus tomos, documentos FHA y solicitudes abiertas.
type CreditoDetalleResponse struct {
	CreditoResponse
	Tomos       []TomoResponse         `json:"tomos"`
	Documentos  []DocumentoFHAResponse `json:"documentos"`
	Solicitudes []SolicitudFHAResponse `json:"solicitudes"`
}

// CreditoListResponse lista paginada de créditos.
type CreditoListResponse struct {
	Items []CreditoResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
