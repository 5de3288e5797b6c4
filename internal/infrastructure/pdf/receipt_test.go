package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
)

func TestSaleReceipt_GeneraPDF(t *testing.T) {
	g := NewReceiptGenerator()
	out, err := g.SaleReceipt(dto.SaleResponse{
		ID: "3f1c2a9e-0000-4000-8000-000000000001", ProductName: "Zapatilla", CustomerName: "N/A",
		Quantity: 2, UnitPrice: decimal.NewFromInt(1500), TotalPrice: decimal.NewFromInt(3000),
		ProductStatus: "sold", PaymentStatus: "paid", CreatedAt: time.Now(),
	}, "Manager Uno")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMoney_SeparadorDeMiles(t *testing.T) {
	g := NewReceiptGenerator()
	assert.Equal(t, "$1.234.567,50", g.money(decimal.RequireFromString("1234567.5")))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "ABCDEF12", shortID("abcdef1234"))
	assert.Equal(t, "AB", shortID("ab"))
}
