package archivo

import (
	"fmt"

	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// AccionAgregar resultado de planificar la habilitación de un tomo.
type AccionAgregar int

const (
	// CrearPrimero el crédito no tiene tomos: se crea el tomo 1.
	CrearPrimero AccionAgregar = iota
	// Rehabilitar se habilita el menor tomo inhabilitado.
	Rehabilitar
	// CrearSiguiente todos están vigentes: se crea max+1.
	CrearSiguiente
)

// PlanAgregar qué hacer al agregar un tomo a un crédito.
type PlanAgregar struct {
	Accion AccionAgregar
	Numero int
	Tomo   *entity.Tomo // solo para Rehabilitar
}

// PlanificarAgregar decide cómo habilitar un tomo a partir de los tomos actuales del crédito.
func PlanificarAgregar(tomos []*entity.Tomo) PlanAgregar {
	if len(tomos) == 0 {
		return PlanAgregar{Accion: CrearPrimero, Numero: 1}
	}
	var minInactivo *entity.Tomo
	mayor := 0
	for _, t := range tomos {
		if t.Numero > mayor {
			mayor = t.Numero
		}
		if !t.Vigente && (minInactivo == nil || t.Numero < minInactivo.Numero) {
			minInactivo = t
		}
	}
	if minInactivo != nil {
		return PlanAgregar{Accion: Rehabilitar, Numero: minInactivo.Numero, Tomo: minInactivo}
	}
	return PlanAgregar{Accion: CrearSiguiente, Numero: mayor + 1}
}

// SeleccionarRemover devuelve el mayor tomo vigente, que es el que se inhabilita.
func SeleccionarRemover(credito string, tomos []*entity.Tomo) (*entity.Tomo, error) {
	var sel *entity.Tomo
	for _, t := range tomos {
		if t.Vigente && (sel == nil || t.Numero > sel.Numero) {
			sel = t
		}
	}
	if sel == nil {
		return nil, domain.NewBusinessError(domain.ErrSinTomos,
			fmt.Sprintf("No hay tomos para deshabilitar en el crédito %s", credito))
	}
	if sel.EnCaja() {
		return nil, domain.NewBusinessError(domain.ErrTomoEnCaja, "El tomo se encuentra ingresado en una caja")
	}
	return sel, nil
}
