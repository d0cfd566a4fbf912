// Package pdf genera el estado de cuenta de una habitación en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hotel               │  Habitación N° + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HUÉSPEDES: nombre + documento + salida                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Huésped | Cant | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/dto"
)

var _ consumption.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoStatementGenerator implementa consumption.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(_ context.Context, st *dto.RoomStatement) ([]byte, error) {
	if st == nil {
		return nil, fmt.Errorf("pdf: estado de cuenta vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta habitación "+st.Room.Number, true).
		WithAuthor(nonEmpty(st.HotelName, "Hotel"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(guestRows(st.Guests)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(st.Lines) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Sin consumos registrados", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	m.AddRows(lineRows(st.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(st.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del hotel (izq) y habitación + fecha de emisión (der).
func headerRow(st *dto.RoomStatement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(st.HotelName, "Hotel"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Tipo: %s   |   Capacidad: %d", st.Room.Type, st.Room.Capacity), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Habitación "+st.Room.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+st.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func guestRows(guests []dto.GuestResponse) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("HUÉSPEDES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	if len(guests) == 0 {
		return append(rows, row.New(5).Add(col.New(12).Add(
			text.New("—", props.Text{Size: 8, Color: colorGray}),
		)))
	}
	for _, g := range guests {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(g.Name+" "+g.Surname, props.Text{Size: 8, Style: fontstyle.Bold})),
			col.New(3).Add(text.New(g.DocumentNumber, props.Text{Size: 8, Color: colorGray})),
			col.New(3).Add(text.New("Salida: "+g.CheckOut, props.Text{Size: 8, Align: align.Right, Color: colorGray})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Huésped", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// lineRows: una fila por consumo.
func lineRows(lines []dto.StatementLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.CreatedAt.Format("02/01 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(l.GuestName, "—"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.Total.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(total.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1500" → "-1.500"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
