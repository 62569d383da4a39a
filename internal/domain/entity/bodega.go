package entity

import (
	"fmt"
	"time"
)

// Bodega representa un archivo físico donde se guardan los expedientes.
type Bodega struct {
	ID             string
	Codigo         string // 3 caracteres, en mayúsculas
	Nombre         string
	Direccion      string
	Vigente        bool
	CorreoEgreso   bool
	CorreoTraslado bool
	EncargadoID    *string
	Encargado      *Usuario // cargado en el detalle
	Personal       []string // IDs de usuarios que pueden ingresar tomos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (b *Bodega) String() string { return b.Codigo }

// EsPersonal indica si el usuario forma parte del personal de la bodega.
func (b *Bodega) EsPersonal(userID string) bool {
	for _, id := range b.Personal {
		if id == userID {
			return true
		}
	}
	return false
}

// Estante primer nivel de la estructura; código alfabético (A..Z, AA..ZZ).
type Estante struct {
	ID       string
	BodegaID string
	Codigo   string
	Vigente  bool
	Niveles  []*Nivel // solo en el árbol de estructura
}

// Nivel piso de un estante.
type Nivel struct {
	ID         string
	EstanteID  string
	Numero     int
	Vigente    bool
	Posiciones []*Posicion
}

// Posicion columna dentro de un nivel.
type Posicion struct {
	ID      string
	NivelID string
	Numero  int
	Vigente bool
	Cajas   []*Caja
}

// Caja contenedor donde se ingresan los tomos.
type Caja struct {
	ID         string
	PosicionID string
	Numero     int
	Vigente    bool
	Ubicacion  Ubicacion // completada en consultas con join
}

// Ubicacion dirección física completa BOD-EST-NIV-POS-CAJA.
// Los campos numéricos en cero se omiten al formatear.
type Ubicacion struct {
	BodegaID      string
	BodegaCodigo  string
	BodegaNombre  string
	EstanteCodigo string
	Nivel         int
	Posicion      int
	Caja          int
}

// String devuelve el código de la ubicación, p. ej. "BOD-A-01-02-03".
func (u Ubicacion) String() string {
	s := u.BodegaCodigo
	if u.EstanteCodigo == "" {
		return s
	}
	s += "-" + u.EstanteCodigo
	for _, n := range []int{u.Nivel, u.Posicion, u.Caja} {
		if n == 0 {
			break
		}
		s += fmt.Sprintf("-%02d", n)
	}
	return s
}

// Vacia indica si no hay ubicación (tomo fuera de caja).
func (u Ubicacion) Vacia() bool { return u.BodegaCodigo == "" }
