package entity

import "github.com/jhoicas/erp-expedientes/pkg/texto"

// Stream agrupador de modelos en Qlik Sense.
type Stream struct {
	ID     string
	Nombre string
	QlikID string
}

// ExternalURL enlace al stream en el hub.
func (s *Stream) ExternalURL(proxy string) string {
	return proxy + "hub/stream/" + s.QlikID
}

// Modelo aplicación de Qlik Sense.
type Modelo struct {
	ID           string
	Nombre       string
	Descripcion  string
	QlikID       string
	StreamID     string
	StreamNombre string
}

// ExternalURL enlace a la app.
func (m *Modelo) ExternalURL(proxy string) string {
	return proxy + "sense/app/" + m.QlikID
}

// Resumen primeros 60 caracteres de la descripción.
func (m *Modelo) Resumen() string {
	return texto.Resumen(m.Descripcion, 60)
}

// TipoDato clasifica los orígenes de datos (conexiones). OrigenModelo indica
// que los orígenes de ese tipo son generados por un modelo.
type TipoDato struct {
	ID           string
	Nombre       string
	OrigenModelo bool
	Vigente      bool
}

// OrigenDato fuente de datos; ModeloID es el modelo que la genera, si aplica.
type OrigenDato struct {
	ID             string
	Nombre         string
	Vigente        bool
	TipoDatoID     string
	TipoDatoNombre string
	ModeloID       *string
}

// OrigenDatoModelo registra que un modelo usa un origen de datos.
type OrigenDatoModelo struct {
	ID               string
	ModeloID         string
	ModeloNombre     string
	OrigenDatoID     string
	OrigenDatoNombre string
}
