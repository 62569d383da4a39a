package archivo

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// ComentarioTraslado texto que queda en cada tomo enviado a otra bodega.
func ComentarioTraslado(destino, comentario string) string {
	return fmt.Sprintf("Traslado a %s\n%s", destino, comentario)
}

// ComentarioEgreso ficha del solicitante que queda en cada tomo egresado.
func ComentarioEgreso(fecha time.Time, s *entity.Solicitante, comentario string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fecha: \t\t%s\n", fecha.Format("02-01-2006"))
	fmt.Fprintf(&b, "Codigo: \t%d\n", s.Codigo)
	fmt.Fprintf(&b, "Nombre: \t%s\n", s.Nombre)
	fmt.Fprintf(&b, "Extension: \t%s\n", s.Extension)
	fmt.Fprintf(&b, "Correo: \t%s\n", s.Correo)
	fmt.Fprintf(&b, "Gerencia: \t%s\n", s.Gerencia)
	fmt.Fprintf(&b, "Comentario: \t%s", comentario)
	return b.String()
}
