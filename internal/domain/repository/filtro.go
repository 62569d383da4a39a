package repository

// Filtro búsqueda y paginación comunes a los listados.
type Filtro struct {
	Q      string // coincidencia parcial sin distinguir mayúsculas
	Limit  int
	Offset int
}
