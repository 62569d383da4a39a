package dto

// GenerarEstructuraRequest dimensiones de la estructura a generar en una bodega.
type GenerarEstructuraRequest struct {
	Estantes   int `json:"estantes" validate:"required,min=1,max=702"`
	Niveles    int `json:"niveles" validate:"required,min=1,max=99"`
	Posiciones int `json:"posiciones" validate:"required,min=1,max=99"`
	Cajas      int `json:"cajas" validate:"required,min=1,max=99"`
}

// GenerarEstructuraResponse filas creadas por nivel de la jerarquía.
type GenerarEstructuraResponse struct {
	Estantes   int64 `json:"estantes"`
	Niveles    int64 `json:"niveles"`
	Posiciones int64 `json:"posiciones"`
	Cajas      int64 `json:"cajas"`
}

// EstanteRequest alta o edición de un estante.
type EstanteRequest struct {
	BodegaID string `json:"bodega_id" validate:"required,uuid"`
	Codigo   string `json:"codigo" validate:"required,min=1,max=2,alpha"`
	Vigente  *bool  `json:"vigente"`
}

// NumeradoRequest alta o edición de nivel, posición o caja; PadreID es el nodo superior.
type NumeradoRequest struct {
	PadreID string `json:"padre_id" validate:"required,uuid"`
	Numero  int    `json:"numero" validate:"required,min=1,max=32767"`
	Vigente *bool  `json:"vigente"`
}

// EstanteResponse estante con sus niveles.
type EstanteResponse struct {
	ID       string          `json:"id"`
	BodegaID string          `json:"bodega_id"`
	Codigo   string          `json:"codigo"`
	Display  string          `json:"display"`
	Vigente  bool            `json:"vigente"`
	Niveles  []NivelResponse `json:"niveles,omitempty"`
}

// NivelResponse nivel con sus posiciones.
type NivelResponse struct {
	ID         string             `json:"id"`
	EstanteID  string             `json:"estante_id"`
	Numero     int                `json:"numero"`
	Display    string             `json:"display"`
	Vigente    bool               `json:"vigente"`
	Posiciones []PosicionResponse `json:"posiciones,omitempty"`
}

// PosicionResponse posición con sus cajas.
type PosicionResponse struct {
	ID      string         `json:"id"`
	NivelID string         `json:"nivel_id"`
	Numero  int            `json:"numero"`
	Display string         `json:"display"`
	Vigente bool           `json:"vigente"`
	Cajas   []CajaResponse `json:"cajas,omitempty"`
}

// CajaResponse caja y, en el detalle, sus tomos.
type CajaResponse struct {
	ID         string         `json:"id"`
	PosicionID string         `json:"posicion_id"`
	Numero     int            `json:"numero"`
	Display    string         `json:"display"`
	Vigente    bool           `json:"vigente"`
	Tomos      []TomoResponse `json:"tomos,omitempty"`
}
