// Package pdf genera las hojas de etiquetas de tomos y cajas.
//
// Cada etiqueta ocupa una fila de la página carta:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  ║│║║│║│║║ (Code128)  │  QR  │  Título                    │
//	│  código               │      │  Detalle                   │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
)

var _ expedientes.LabelGenerator = (*LabelGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LabelGenerator implementa expedientes.LabelGenerator usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// Generate arma una hoja con una etiqueta por fila y devuelve los bytes del PDF.
func (g *LabelGenerator) Generate(titulo string, etiquetas []expedientes.Etiqueta) ([]byte, error) {
	if len(etiquetas) == 0 {
		return nil, fmt.Errorf("pdf: no hay etiquetas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(titulo, len(etiquetas)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, e := range etiquetas {
		m.AddRows(etiquetaRow(e))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(titulo string, n int) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("%d etiqueta(s)", n), props.Text{
			Size: 8, Align: align.Right, Top: 3, Color: colorGray,
		})),
	)
}

// etiquetaRow: código de barras con el código legible debajo, QR y los textos.
func etiquetaRow(e expedientes.Etiqueta) core.Row {
	return row.New(32).Add(
		col.New(5).Add(
			code.NewBar(e.Codigo, props.Barcode{Percent: 80, Left: 2, Top: 2}),
			text.New(e.Codigo, props.Text{Size: 8, Top: 27, Left: 2}),
		),
		col.New(2).Add(code.NewQr(e.Codigo, props.Rect{Percent: 90, Center: true})),
		col.New(5).Add(
			text.New(e.Titulo, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Left: 3}),
			text.New(e.Detalle, props.Text{Size: 8, Top: 15, Left: 3, Color: colorGray}),
		),
	)
}
