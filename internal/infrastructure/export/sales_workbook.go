// Package export genera libros XLSX con excelize.
package export

import (
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
)

const (
	SalesSheet   = "Ventas"
	SummarySheet = "Resumen"
)

var salesHeader = []string{
	"ID", "Fecha", "Producto", "Cliente", "Teléfono", "Cantidad", "Precio unit.", "Total",
	"Estado producto", "Estado pago", "Agente", "Manager", "Vendida", "Confirmada", "Notas",
}

var _ ports.SalesExporter = (*SalesWorkbook)(nil)

// SalesWorkbook implementa ports.SalesExporter.
type SalesWorkbook struct{}

// NewSalesWorkbook construye el exportador.
func NewSalesWorkbook() *SalesWorkbook { return &SalesWorkbook{} }

// ExportSales una hoja con las ventas y otra con los agregados.
func (SalesWorkbook) ExportSales(sales []dto.SaleResponse, stats dto.SalesStatsResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SalesSheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for c, v := range salesHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(SalesSheet, cell, v)
	}
	for r, s := range sales {
		values := []any{
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.ProductName,
			s.CustomerName,
			s.CustomerPhone,
			s.Quantity,
			s.UnitPrice.InexactFloat64(),
			s.TotalPrice.InexactFloat64(),
			s.ProductStatus,
			s.PaymentStatus,
			s.AgentID,
			s.ManagerID,
			formatTime(s.SoldAt),
			formatTime(s.PaymentConfirmedAt),
			s.Notes,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(SalesSheet, cell, v)
		}
	}

	_ = f.SetColWidth(SalesSheet, "A", "A", 38)
	_ = f.SetColWidth(SalesSheet, "B", "B", 17)
	_ = f.SetColWidth(SalesSheet, "C", "D", 24)
	_ = f.SetColWidth(SalesSheet, "E", "J", 14)
	_ = f.SetColWidth(SalesSheet, "K", "L", 38)
	_ = f.SetColWidth(SalesSheet, "M", "N", 17)
	_ = f.SetColWidth(SalesSheet, "O", "O", 30)

	header, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
	})
	_ = f.SetCellStyle(SalesSheet, "A1", "O1", header)

	money, _ := f.NewStyle(&excelize.Style{NumFmt: 4})
	if len(sales) > 0 {
		last, _ := excelize.CoordinatesToCellName(8, len(sales)+1)
		_ = f.SetCellStyle(SalesSheet, "G2", last, money)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Pedidos", stats.TotalOrders},
		{"Ventas", stats.TotalSales},
		{"Ingresos confirmados", stats.TotalRevenue.InexactFloat64()},
		{"Pagos pendientes", stats.PendingPayments},
	}
	for r, kv := range summary {
		_ = f.SetSheetRow(SummarySheet, "A"+strconv.Itoa(r+1), &kv)
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 24)
	_ = f.SetCellStyle(SummarySheet, "B3", "B3", money)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
