package archivo

import (
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
)

// Dimensiones cantidades solicitadas por nivel de la estructura.
type Dimensiones struct {
	Estantes   int
	Niveles    int
	Posiciones int
	Cajas      int
}

// Validar exige al menos uno de cada nivel y como máximo MaxEstantes estantes.
func (d Dimensiones) Validar() error {
	if d.Estantes < 1 || d.Niveles < 1 || d.Posiciones < 1 || d.Cajas < 1 {
		return domain.NewBusinessError(domain.ErrInvalidInput, "Todas las cantidades deben ser mayores a cero")
	}
	if _, err := CodigosEstante(d.Estantes); err != nil {
		return err
	}
	return nil
}

// PlanEstructura filas a insertar, en orden de dependencia.
type PlanEstructura struct {
	Estantes   []*entity.Estante
	Niveles    []*entity.Nivel
	Posiciones []*entity.Posicion
	Cajas      []*entity.Caja
}

// Vacio indica que la estructura ya estaba completa.
func (p *PlanEstructura) Vacio() bool {
	return len(p.Estantes)+len(p.Niveles)+len(p.Posiciones)+len(p.Cajas) == 0
}

// PlanificarEstructura calcula lo que falta crear en la bodega para cubrir las dimensiones.
//
// Las filas existentes no se modifican, ni siquiera las inhabilitadas. Los hijos se generan
// solo bajo padres vigentes: niveles bajo estantes vigentes, posiciones bajo niveles vigentes
// y cajas bajo posiciones vigentes. actual es el árbol completo de la bodega.
func PlanificarEstructura(bodegaID string, actual []*entity.Estante, d Dimensiones, newID func() string) (*PlanEstructura, error) {
	if err := d.Validar(); err != nil {
		return nil, err
	}
	codigos, _ := CodigosEstante(d.Estantes)
	plan := &PlanEstructura{}

	porCodigo := make(map[string]bool, len(actual))
	for _, e := range actual {
		porCodigo[e.Codigo] = true
	}
	estantes := append([]*entity.Estante(nil), actual...)
	for _, c := range codigos {
		if porCodigo[c] {
			continue
		}
		e := &entity.Estante{ID: newID(), BodegaID: bodegaID, Codigo: c, Vigente: true}
		plan.Estantes = append(plan.Estantes, e)
		estantes = append(estantes, e)
	}

	var niveles []*entity.Nivel
	for _, e := range estantes {
		niveles = append(niveles, e.Niveles...)
		if !e.Vigente {
			continue
		}
		existe := make(map[int]bool, len(e.Niveles))
		for _, n := range e.Niveles {
			existe[n.Numero] = true
		}
		for i := 1; i <= d.Niveles; i++ {
			if existe[i] {
				continue
			}
			n := &entity.Nivel{ID: newID(), EstanteID: e.ID, Numero: i, Vigente: true}
			plan.Niveles = append(plan.Niveles, n)
			niveles = append(niveles, n)
		}
	}

	var posiciones []*entity.Posicion
	for _, n := range niveles {
		posiciones = append(posiciones, n.Posiciones...)
		if !n.Vigente {
			continue
		}
		existe := make(map[int]bool, len(n.Posiciones))
		for _, p := range n.Posiciones {
			existe[p.Numero] = true
		}
		for i := 1; i <= d.Posiciones; i++ {
			if existe[i] {
				continue
			}
			p := &entity.Posicion{ID: newID(), NivelID: n.ID, Numero: i, Vigente: true}
			plan.Posiciones = append(plan.Posiciones, p)
			posiciones = append(posiciones, p)
		}
	}

	for _, p := range posiciones {
		if !p.Vigente {
			continue
		}
		existe := make(map[int]bool, len(p.Cajas))
		for _, c := range p.Cajas {
			existe[c.Numero] = true
		}
		for i := 1; i <= d.Cajas; i++ {
			if existe[i] {
				continue
			}
			plan.Cajas = append(plan.Cajas, &entity.Caja{ID: newID(), PosicionID: p.ID, Numero: i, Vigente: true})
		}
	}
	return plan, nil
}

// MaxColumnas mayor cantidad de posiciones en un nivel; ancho de la grilla del detalle de bodega.
func MaxColumnas(estantes []*entity.Estante) int {
	mayor := 0
	for _, e := range estantes {
		for _, n := range e.Niveles {
			if len(n.Posiciones) > mayor {
				mayor = len(n.Posiciones)
			}
		}
	}
	return mayor
}
