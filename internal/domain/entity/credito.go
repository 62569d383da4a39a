package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Cliente titular de créditos.
type Cliente struct {
	ID     string
	Codigo int64
	Nombre string
}

// Moneda de un crédito.
type Moneda struct {
	ID          string
	Descripcion string
	Simbolo     string
}

// Producto crediticio.
type Producto struct {
	ID          string
	Descripcion string
}

// Oficina agencia donde se otorgó el crédito.
type Oficina struct {
	ID          string
	Numero      int
	Descripcion string
}

func (o *Oficina) String() string {
	return fmt.Sprintf("%04d - %s", o.Numero, o.Descripcion)
}

// Credito expediente de un préstamo; sus tomos físicos se guardan en bodega.
type Credito struct {
	ID              string
	Numero          string
	Monto           decimal.Decimal
	Escaneado       bool
	FechaConcesion  *time.Time
	FechaIngreso    time.Time
	ClienteID       string
	MonedaID        string
	OficinaID       string
	ProductoID      string
	CreditoAnterior string
	CantidadTomos   int // tomos vigentes, completado en lecturas

	Cliente  *Cliente
	Moneda   *Moneda
	Oficina  *Oficina
	Producto *Producto
}

func (c *Credito) String() string { return c.Numero }
