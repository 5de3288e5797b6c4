package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/sales"
)

func pickedSale(qty int, unit int64) *entity.Sale {
	return &entity.Sale{
		ID:            "s1",
		ProductID:     "p1",
		OwnerAdmin:    "a1",
		Quantity:      qty,
		UnitPrice:     decimal.NewFromInt(unit),
		TotalPrice:    sales.TotalPrice(decimal.NewFromInt(unit), qty),
		ProductStatus: entity.ProductPicked,
		PaymentStatus: entity.PaymentPending,
		CustomerName:  "Ana",
	}
}

func TestSplit_ConservaCantidadYTotal(t *testing.T) {
	sale := pickedSale(10, 5)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	sold := sales.Split(sale, 4, "s2", now)

	assert.Equal(t, 4, sold.Quantity)
	assert.True(t, decimal.NewFromInt(20).Equal(sold.TotalPrice))
	assert.Equal(t, entity.ProductSold, sold.ProductStatus)
	require.NotNil(t, sold.SoldAt)
	assert.Equal(t, now, *sold.SoldAt)
	assert.Equal(t, "Ana", sold.CustomerName)
	assert.Equal(t, "a1", sold.OwnerAdmin)

	assert.Equal(t, 6, sale.Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(sale.TotalPrice))
	assert.Equal(t, entity.ProductPicked, sale.ProductStatus)
	assert.Nil(t, sale.SoldAt)

	assert.Equal(t, 10, sold.Quantity+sale.Quantity)
	assert.True(t, decimal.NewFromInt(50).Equal(sold.TotalPrice.Add(sale.TotalPrice)))
}

func TestSplit_DecimalesExactos(t *testing.T) {
	sale := pickedSale(3, 0)
	sale.UnitPrice = decimal.RequireFromString("19.99")
	sale.TotalPrice = sales.TotalPrice(sale.UnitPrice, 3)

	sold := sales.Split(sale, 1, "s2", time.Now())

	assert.Equal(t, "19.99", sold.TotalPrice.String())
	assert.Equal(t, "39.98", sale.TotalPrice.String())
}

func TestCanMoveProduct(t *testing.T) {
	assert.True(t, sales.CanMoveProduct(entity.ProductPicked, entity.ProductSold))
	assert.True(t, sales.CanMoveProduct(entity.ProductPicked, entity.ProductReturned))
	assert.True(t, sales.CanMoveProduct(entity.ProductReturned, entity.ProductReturned))

	assert.False(t, sales.CanMoveProduct(entity.ProductSold, entity.ProductPicked))
	assert.False(t, sales.CanMoveProduct(entity.ProductSold, entity.ProductSold))
	assert.False(t, sales.CanMoveProduct(entity.ProductSold, entity.ProductReturned))
	assert.False(t, sales.CanMoveProduct(entity.ProductReturned, entity.ProductSold))
	assert.False(t, sales.CanMoveProduct(entity.ProductReturned, entity.ProductPicked))
}

func TestCanMovePayment(t *testing.T) {
	assert.True(t, sales.CanMovePayment(entity.PaymentPending, entity.PaymentPaid))
	assert.True(t, sales.CanMovePayment(entity.PaymentPaid, entity.PaymentConfirmed))
	assert.True(t, sales.CanMovePayment(entity.PaymentPending, entity.PaymentConfirmed))
	assert.True(t, sales.CanMovePayment(entity.PaymentPending, entity.PaymentCancelled))

	assert.False(t, sales.CanMovePayment(entity.PaymentConfirmed, entity.PaymentConfirmed))
	assert.False(t, sales.CanMovePayment(entity.PaymentConfirmed, entity.PaymentPaid))
	assert.False(t, sales.CanMovePayment(entity.PaymentPaid, entity.PaymentPending))
	assert.False(t, sales.CanMovePayment(entity.PaymentPaid, entity.PaymentCancelled))
	assert.False(t, sales.CanMovePayment(entity.PaymentCancelled, entity.PaymentPaid))
}

func TestValidateQuantity(t *testing.T) {
	assert.ErrorIs(t, sales.ValidateQuantity(0, 5), domain.ErrInvalidInput)
	assert.ErrorIs(t, sales.ValidateQuantity(-2, 5), domain.ErrInvalidInput)

	err := sales.ValidateQuantity(6, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "solo hay 5 unidad(es)")

	assert.NoError(t, sales.ValidateQuantity(5, 5))
}

func TestValidateSoldQuantity(t *testing.T) {
	sale := pickedSale(3, 1)
	assert.ErrorIs(t, sales.ValidateSoldQuantity(sale, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, sales.ValidateSoldQuantity(sale, 4), domain.ErrConflict)
	assert.NoError(t, sales.ValidateSoldQuantity(sale, 3))
}

func TestMarkReturned_SoloLiberaUnaVez(t *testing.T) {
	sale := pickedSale(2, 1)
	now := time.Now()

	assert.True(t, sales.MarkReturned(sale, now))
	assert.Nil(t, sale.SoldAt)
	assert.False(t, sales.MarkReturned(sale, now))
}

func TestMarkSold_SoldAtSoloPrimeraVez(t *testing.T) {
	sale := pickedSale(2, 1)
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sales.MarkSold(sale, first)
	sales.MarkSold(sale, first.Add(time.Hour))

	require.NotNil(t, sale.SoldAt)
	assert.Equal(t, first, *sale.SoldAt)
	assert.Equal(t, entity.ProductSold, sale.ProductStatus)
}

func TestParseStatus(t *testing.T) {
	st, err := sales.ParseProductStatus(" Sold ")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductSold, st)

	_, err = sales.ParseProductStatus("lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	pst, err := sales.ParsePaymentStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, pst)

	_, err = sales.ParsePaymentStatus("refunded")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
