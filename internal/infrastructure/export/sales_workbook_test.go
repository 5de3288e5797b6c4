package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/export"
)

func TestExportSales(t *testing.T) {
	sold := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	out, err := export.NewSalesWorkbook().ExportSales([]dto.SaleResponse{
		{ID: "s1", ProductName: "Zapatilla", CustomerName: "Ana", Quantity: 2,
			UnitPrice: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(20),
			ProductStatus: "sold", PaymentStatus: "confirmed", SoldAt: &sold, CreatedAt: sold},
		{ID: "s2", ProductName: "Bolso", CustomerName: "N/A", Quantity: 1,
			UnitPrice: decimal.NewFromInt(7), TotalPrice: decimal.NewFromInt(7),
			ProductStatus: "picked", PaymentStatus: "pending", CreatedAt: sold},
	}, dto.SalesStatsResponse{TotalSales: 1, TotalOrders: 2, PendingPayments: 1, TotalRevenue: decimal.NewFromInt(20)})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SalesSheet, export.SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(export.SalesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "s1", rows[1][0])
	assert.Equal(t, "2026-03-01 10:30", rows[1][12])

	v, err := f.GetCellValue(export.SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestExportSales_Vacio(t *testing.T) {
	out, err := export.NewSalesWorkbook().ExportSales(nil, dto.SalesStatsResponse{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
