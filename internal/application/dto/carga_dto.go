package dto

// CargaResponse resultado de una carga masiva de créditos.
type CargaResponse struct {
	ID            int64    `json:"id"`
	Total         int      `json:"total"`
	Insertados    int64    `json:"insertados"`
	Existentes    int      `json:"existentes"`
	Excluidos     []int    `json:"excluidos"`
	Errores       []string `json:"errores"`
	Avisos        []string `json:"avisos"`
	DocumentosFHA int      `json:"documentos_fha"`
	LogCreditos   string   `json:"log_creditos"`
	LogFHA        string   `json:"log_fha,omitempty"`
}
