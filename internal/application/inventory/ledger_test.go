package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, qty int) {
	t.Helper()
	require.NoError(t, store.Repositories().Products.Create(context.Background(), &entity.Product{
		ID: "p1", OwnerAdmin: "a1", Name: "Zapatilla", Price: decimal.NewFromInt(10), Quantity: qty,
	}))
}

func quantity(t *testing.T, store *memory.Store) int {
	t.Helper()
	p, err := store.Repositories().Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	return p.Quantity
}

func TestLedger_ReserveYRelease_ConservaStock(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedProduct(t, store, 10)
	ledger := inventory.NewLedger(0)
	products := store.Repositories().Products

	p, err := ledger.Reserve(ctx, products, "p1", "a1", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity)

	sale := &entity.Sale{ProductID: "p1", Quantity: 3}
	released, err := ledger.Release(ctx, products, sale, entity.ProductPicked)
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, 10, quantity(t, store))

	released, err = ledger.Release(ctx, products, sale, entity.ProductReturned)
	require.NoError(t, err)
	assert.False(t, released, "una venta ya devuelta no vuelve a liberar")
	assert.Equal(t, 10, quantity(t, store))
}

func TestLedger_ReleaseDesdeVendida_Rechaza(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, 1)

	_, err := inventory.NewLedger(0).Release(context.Background(), store.Repositories().Products,
		&entity.Sale{ProductID: "p1", Quantity: 1}, entity.ProductSold)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 1, quantity(t, store))
}

func TestLedger_Reserve_Errores(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedProduct(t, store, 2)
	ledger := inventory.NewLedger(0)
	products := store.Repositories().Products

	_, err := ledger.Reserve(ctx, products, "p1", "a1", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = ledger.Reserve(ctx, products, "p1", "otro-admin", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ledger.Reserve(ctx, products, "p1", "a1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 2, quantity(t, store))
}

func TestLedger_PickRevierteSiFallaLaVenta(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedProduct(t, store, 5)
	ledger := inventory.NewLedger(0)
	boom := errors.New("fallo posterior")

	err := store.TxRunner().Run(ctx, func(tx repository.Repositories) error {
		if _, err := ledger.Pick(ctx, tx, &entity.Sale{ID: "s1", ProductID: "p1", OwnerAdmin: "a1", Quantity: 2}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, quantity(t, store))

	sale, err := store.Repositories().Sales.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sale)
}

func TestLedger_IsLowStock(t *testing.T) {
	ledger := inventory.NewLedger(3)
	assert.True(t, ledger.IsLowStock(&entity.Product{Quantity: 3}))
	assert.False(t, ledger.IsLowStock(&entity.Product{Quantity: 4}))
	assert.False(t, inventory.NewLedger(0).IsLowStock(&entity.Product{Quantity: 0}))
}
