// Package pdf implementa el comprobante imprimible del ticket de lavandería.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Nombre del local  │  N° Ticket+Fecha │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Teléfono                   │
//	│  ───────────────────────────────────────────  │
//	│  DETALLE: servicio / prendas con cantidades   │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL + método de pago + estado de cobro     │
//	│  FOOTER: leyenda de retiro                    │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 21, Green: 101, Blue: 192}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoTicketGenerator implementa usecase.TicketPDFGenerator usando Maroto v2.
type MarotoTicketGenerator struct {
	LocalName string // nombre del local en el encabezado
}

// NewMarotoTicketGenerator construye el generador.
func NewMarotoTicketGenerator(localName string) *MarotoTicketGenerator {
	return &MarotoTicketGenerator{LocalName: localName}
}

// GenerateTicketPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoTicketGenerator) GenerateTicketPDF(_ context.Context, ticket *entity.Ticket) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket "+ticket.Numero, true).
		WithAuthor(g.LocalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.LocalName, ticket))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(ticket))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range detalleRows(ticket) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(ticket))
	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del local (izq) y número + fecha (der).
func headerRow(localName string, t *entity.Ticket) core.Row {
	fecha := t.CreatedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(localName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lavandería y tintorería", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TICKET "+t.Numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(fecha, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func clienteRow(t *entity.Ticket) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("Cliente: "+t.ClienteNombre, props.Text{Size: 10, Top: 1}),
			text.New("Tel: "+t.ClienteTelefono, props.Text{Size: 9, Top: 6, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(statusLabel(t.Status), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}

// detalleRows: una fila por concepto del ticket.
func detalleRows(t *entity.Ticket) []core.Row {
	var out []core.Row
	if t.Servicio == entity.ServicioValet {
		label := fmt.Sprintf("Valet x%d", t.ValetQuantity)
		if t.EsValetGratis {
			label += " (valet gratis)"
		}
		out = append(out, conceptoRow(label, fmt.Sprintf("$ %s", t.Total.StringFixed(2))))
	} else {
		for _, it := range t.Items {
			subtotal := it.UnitPrice.Mul(decimalFromInt(it.Quantity))
			out = append(out, conceptoRow(
				fmt.Sprintf("%s x%d", it.Nombre, it.Quantity),
				fmt.Sprintf("$ %s", subtotal.StringFixed(2)),
			))
		}
	}
	for _, op := range t.Opciones {
		out = append(out, conceptoRow("· "+op, ""))
	}
	return out
}

func conceptoRow(izq, der string) core.Row {
	cols := []core.Col{
		col.New(8).Add(text.New(izq, props.Text{Size: 9, Top: 1})),
	}
	if der != "" {
		cols = append(cols, col.New(4).Add(text.New(der, props.Text{Size: 9, Top: 1, Align: align.Right})))
	} else {
		cols = append(cols, col.New(4))
	}
	return row.New(6).Add(cols...)
}

func totalRow(t *entity.Ticket) core.Row {
	pago := t.PaymentMethod
	if pago == "" {
		pago = "a definir"
	}
	cobro := "PENDIENTE DE PAGO"
	if t.IsPaid {
		cobro = "PAGADO"
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Pago: "+pago, props.Text{Size: 9, Top: 2, Color: colorGray}),
			text.New(cobro, props.Text{Style: fontstyle.Bold, Size: 9, Top: 8}),
		),
		col.New(5).Add(
			text.New("TOTAL", props.Text{Size: 9, Align: align.Right, Top: 1, Color: colorGray}),
			text.New("$ "+t.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 5, Color: colorPrimary,
			}),
		),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Presentá este ticket al retirar tu ropa. Gracias por tu visita.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		),
	)
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func statusLabel(s entity.TicketStatus) string {
	switch s {
	case entity.StatusPending:
		return "PENDIENTE"
	case entity.StatusProcessing:
		return "EN PROCESO"
	case entity.StatusReady:
		return "LISTO"
	case entity.StatusDelivered:
		return "ENTREGADO"
	case entity.StatusCanceled:
		return "CANCELADO"
	}
	return string(s)
}
