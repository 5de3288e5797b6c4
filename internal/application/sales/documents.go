package sales

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// DocumentsUseCase comprobante PDF de una venta y exportación XLSX del listado.
// Ambos respetan el mismo alcance que Get y List.
type DocumentsUseCase struct {
	sales    *UseCase
	receipts ports.ReceiptGenerator
	exporter ports.SalesExporter
}

// NewDocumentsUseCase construye el caso de uso de documentos.
func NewDocumentsUseCase(sales *UseCase, receipts ports.ReceiptGenerator, exporter ports.SalesExporter) *DocumentsUseCase {
	return &DocumentsUseCase{sales: sales, receipts: receipts, exporter: exporter}
}

// Receipt genera el comprobante de una venta visible para el llamador.
func (uc *DocumentsUseCase) Receipt(ctx context.Context, p entity.Principal, id string) ([]byte, error) {
	pos, err := uc.sales.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	sale, err := uc.sales.load(ctx, pos, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.SaleReceipt(toSaleResponse(sale), pos.ActorLabel())
}

// Export libro XLSX con las ventas del alcance (filtros opcionales) y sus agregados.
func (uc *DocumentsUseCase) Export(ctx context.Context, p entity.Principal, q dto.SaleListQuery) ([]byte, error) {
	list, err := uc.sales.List(ctx, p, q)
	if err != nil {
		return nil, err
	}
	stats, err := uc.sales.Stats(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportSales(list.Items, *stats)
}
