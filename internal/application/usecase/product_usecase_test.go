package usecase_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/usecase"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
)

// mapCache FeaturedCache en memoria que cuenta aciertos.
type mapCache struct {
	mu    sync.Mutex
	items map[string][]dto.ProductResponse
	hits  int
}

func (c *mapCache) GetFeatured(_ context.Context, owner string) ([]dto.ProductResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.items[owner]
	if ok {
		c.hits++
	}
	return items, ok
}

func (c *mapCache) SetFeatured(_ context.Context, owner string, items []dto.ProductResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[owner] = items
}

func (c *mapCache) InvalidateFeatured(_ context.Context, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, owner)
}

func newProducts(t *testing.T) (*usecase.ProductUseCase, memory.Tenant, memory.Tenant, *mapCache) {
	t.Helper()
	store := memory.New()
	t1 := store.SeedTenant("t1", "")
	t2 := store.SeedTenant("t2", "")
	repos := store.Repositories()
	cache := &mapCache{items: map[string][]dto.ProductResponse{}}
	uc := usecase.NewProductUseCase(store.TxRunner(), repos.Products, hierarchy.NewResolver(repos.Users, repos.Managers, repos.Agents), cache, inventory.NewLedger(3))
	return uc, t1, t2, cache
}

func TestProduct_CRUDDentroDelTenant(t *testing.T) {
	ctx := context.Background()
	uc, t1, t2, _ := newProducts(t)

	p, err := uc.Create(ctx, t1.ManagerPrincipal(), dto.CreateProductRequest{Name: "Zapatilla", Price: decimal.NewFromInt(10), Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, t1.Admin.ID, p.OwnerAdmin)

	got, err := uc.GetByID(ctx, t1.AgentPrincipal(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zapatilla", got.Name)

	_, err = uc.GetByID(ctx, t2.AdminPrincipal(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, t1.AgentPrincipal(), dto.CreateProductRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, t1.AdminPrincipal(), dto.CreateProductRequest{Name: "X", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, t1.AdminPrincipal(), dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	qty := 2
	updated, err := uc.Update(ctx, t1.AdminPrincipal(), p.ID, dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)

	low, err := uc.LowStock(ctx, t1.AdminPrincipal())
	require.NoError(t, err)
	require.Len(t, low, 1)

	list, err := uc.List(ctx, t2.AdminPrincipal(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 20, list.Page.Limit)

	assert.ErrorIs(t, uc.Delete(ctx, t2.AdminPrincipal(), p.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, t1.AdminPrincipal(), p.ID))
}

func TestProduct_DestacadosConCache(t *testing.T) {
	ctx := context.Background()
	uc, t1, _, cache := newProducts(t)
	p, err := uc.Create(ctx, t1.AdminPrincipal(), dto.CreateProductRequest{Name: "Bolso", Price: decimal.NewFromInt(30)})
	require.NoError(t, err)

	_, err = uc.ToggleFeatured(ctx, t1.ManagerPrincipal(), p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	toggled, err := uc.ToggleFeatured(ctx, t1.AdminPrincipal(), p.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFeatured)

	items, err := uc.Featured(ctx, t1.AgentPrincipal())
	require.NoError(t, err)
	require.Len(t, items, 1)
	_, err = uc.Featured(ctx, t1.AgentPrincipal())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = uc.ToggleFeatured(ctx, t1.AdminPrincipal(), p.ID)
	require.NoError(t, err)
	items, err = uc.Featured(ctx, t1.AdminPrincipal())
	require.NoError(t, err)
	assert.Empty(t, items, "el toggle invalida la caché")
}

// interleavedProducts ejecuta next una sola vez justo después de leer un producto por id:
// simula una retirada que llega entre la lectura y la escritura de una edición.
type interleavedProducts struct {
	repository.ProductRepository
	next func()
}

func (r *interleavedProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.ProductRepository.GetByID(ctx, id)
	if f := r.next; f != nil {
		r.next = nil
		f()
	}
	return p, err
}

// productsTx entrega a la transacción el repositorio de productos indicado.
type productsTx struct {
	inner    repository.TxRunner
	products repository.ProductRepository
}

func (r productsTx) Run(ctx context.Context, fn func(tx repository.Repositories) error) error {
	return r.inner.Run(ctx, func(tx repository.Repositories) error {
		tx.Products = r.products
		return fn(tx)
	})
}

func TestProduct_EdicionNoPisaMovimientosDeStock(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	t1 := store.SeedTenant("t1", "")
	repos := store.Repositories()
	ledger := inventory.NewLedger(0)
	admin := t1.AdminPrincipal()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p1", OwnerAdmin: t1.Admin.ID, Name: "Zapatilla", Price: decimal.NewFromInt(10), Quantity: 10,
	}))
	pick := func(qty int) func() {
		return func() {
			_, err := ledger.Reserve(ctx, repos.Products, "p1", t1.Admin.ID, qty)
			require.NoError(t, err)
		}
	}
	products := &interleavedProducts{ProductRepository: repos.Products}
	uc := usecase.NewProductUseCase(productsTx{inner: store.TxRunner(), products: products}, products,
		hierarchy.NewResolver(repos.Users, repos.Managers, repos.Agents), &mapCache{items: map[string][]dto.ProductResponse{}}, ledger)

	products.next = pick(3)
	name := "Zapatilla Pro"
	out, err := uc.Update(ctx, admin, "p1", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Zapatilla Pro", out.Name)
	assert.Equal(t, 7, out.Quantity, "la edición de catálogo conserva la retirada concurrente")

	pick(2)()
	toggled, err := uc.ToggleFeatured(ctx, admin, "p1")
	require.NoError(t, err)
	assert.True(t, toggled.IsFeatured)
	assert.Equal(t, 5, toggled.Quantity)

	products.next = pick(3)
	qty := 20
	_, err = uc.Update(ctx, admin, "p1", dto.UpdateProductRequest{Quantity: &qty, Name: &name})
	assert.ErrorIs(t, err, domain.ErrConflict)
	got, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity, "la corrección manual no pisa stock que cambió tras la lectura")

	out, err = uc.Update(ctx, admin, "p1", dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Quantity)
}

type fakeStore struct{ saved []byte }

func (s *fakeStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	s.saved = b
	return "http://cdn.test/" + filename, err
}

func TestUpload_ValidaTipoYTamano(t *testing.T) {
	ctx := context.Background()
	_, t1, _, _ := newProducts(t)
	store := &fakeStore{}
	uc := usecase.NewUploadUseCase(store)
	body := []byte("png-bytes")

	out, err := uc.Upload(ctx, t1.AdminPrincipal(), "foto.PNG", "image/png", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/upload.png", out.URL)
	assert.Equal(t, body, store.saved)

	_, err = uc.Upload(ctx, t1.AdminPrincipal(), "x.exe", "application/x-msdownload", 10, bytes.NewReader(body))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Upload(ctx, t1.AdminPrincipal(), "x.png", "image/png", usecase.MaxUploadBytes+1, bytes.NewReader(body))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_CategoriaYRecomendaciones(t *testing.T) {
	ctx := context.Background()
	uc, t1, t2, _ := newProducts(t)

	for _, in := range []dto.CreateProductRequest{
		{Name: "Zapatilla", Category: "Calzado", Price: decimal.NewFromInt(10), Quantity: 5},
		{Name: "Bota", Category: "calzado", Price: decimal.NewFromInt(20), Quantity: 0},
		{Name: "Gorra", Category: "Accesorios", Price: decimal.NewFromInt(5), Quantity: 3},
	} {
		_, err := uc.Create(ctx, t1.AdminPrincipal(), in)
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, t2.AdminPrincipal(), dto.CreateProductRequest{Name: "Sandalia", Category: "Calzado", Price: decimal.NewFromInt(8), Quantity: 2})
	require.NoError(t, err)

	shoes, err := uc.ByCategory(ctx, t1.AgentPrincipal(), "CALZADO")
	require.NoError(t, err)
	assert.Len(t, shoes, 2, "coincide sin distinguir mayúsculas y solo dentro del tenant")
	_, err = uc.ByCategory(ctx, t1.AgentPrincipal(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recs, err := uc.Recommendations(ctx, t1.ManagerPrincipal())
	require.NoError(t, err)
	require.Len(t, recs, 2, "solo productos con stock")
	for _, r := range recs {
		assert.Equal(t, t1.Admin.ID, r.OwnerAdmin)
		assert.Positive(t, r.Quantity)
	}
}
