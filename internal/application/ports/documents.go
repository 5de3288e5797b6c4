package ports

import "github.com/jhoicas/retail-ops-api/internal/application/dto"

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	SaleReceipt(sale dto.SaleResponse, issuedBy string) ([]byte, error)
}

// SalesExporter genera un libro de cálculo con las ventas dadas.
type SalesExporter interface {
	ExportSales(sales []dto.SaleResponse, stats dto.SalesStatsResponse) ([]byte, error)
}
