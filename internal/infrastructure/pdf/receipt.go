// Package pdf genera el comprobante PDF de una venta con Maroto v2.
//
// Layout A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de venta  │  N° + Fecha                │
//	│  CLIENTE: Nombre / Tel / Dirección                          │
//	│  TABLA: Cant | Producto | P.Unit | Total                    │
//	│  TOTALES + ESTADOS (producto / pago / confirmaciones)       │
//	│  FOOTER: emitido por + QR con el id de la venta             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa ports.ReceiptGenerator con Maroto v2.
type ReceiptGenerator struct {
	printer *message.Printer
}

// NewReceiptGenerator construye el generador; los importes se formatean en español.
func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{printer: message.NewPrinter(language.Spanish)}
}

// SaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) SaleReceipt(sale dto.SaleResponse, issuedBy string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(issuedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.detailRow(sale))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(sale))
	m.AddRows(statusRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sale, issuedBy))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(sale dto.SaleResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Producto retirado del inventario del tenant", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func customerRow(sale dto.SaleResponse) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Dirección: %s",
				nonEmpty(sale.CustomerPhone, "—"),
				nonEmpty(sale.CustomerAddress, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReceiptGenerator) detailRow(sale dto.SaleResponse) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprint(sale.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(nonEmpty(sale.ProductName, sale.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(g.money(sale.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(g.money(sale.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (g *ReceiptGenerator) totalsRow(sale dto.SaleResponse) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.money(sale.TotalPrice), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func statusRow(sale dto.SaleResponse) core.Row {
	confirmations := []string{}
	if sale.PaymentConfirmedByManager {
		confirmations = append(confirmations, "manager")
	}
	if sale.PaymentConfirmedByAdmin {
		confirmations = append(confirmations, "admin")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Estado del producto: %s   |   Estado del pago: %s",
				sale.ProductStatus, sale.PaymentStatus,
			), props.Text{Size: 8, Top: 2}),
			text.New("Confirmado por: "+nonEmpty(strings.Join(confirmations, ", "), "—"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func footerRow(sale dto.SaleResponse, issuedBy string) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(sale.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Emitido por: "+issuedBy, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Referencia: "+sale.ID, props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
			text.New("Este comprobante no es una factura electrónica.", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 20, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// money formatea con separador de miles y dos decimales según el locale del printer.
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
