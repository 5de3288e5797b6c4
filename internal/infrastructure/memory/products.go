package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/internal/domain/sales"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Reserve compara y descuenta bajo el mismo lock.
type ProductRepo struct {
	s *Store
	u *undoLog
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remember(r.u, r.s.products, p.ID)
	r.s.products[p.ID] = *p
	r.s.touch(p.ID)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) ListByOwner(_ context.Context, ownerAdmin string, limit, offset int) ([]*entity.Product, error) {
	list := r.filter(func(p entity.Product) bool { return p.OwnerAdmin == ownerAdmin })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *ProductRepo) ListFeatured(_ context.Context, ownerAdmin string) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.OwnerAdmin == ownerAdmin && p.IsFeatured }), nil
}

func (r *ProductRepo) ListByCategory(_ context.Context, ownerAdmin, category string) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool {
		return p.OwnerAdmin == ownerAdmin && strings.EqualFold(p.Category, category)
	}), nil
}

func (r *ProductRepo) ListRecommended(_ context.Context, ownerAdmin string, limit int) ([]*entity.Product, error) {
	list := r.filter(func(p entity.Product) bool { return p.OwnerAdmin == ownerAdmin && p.Quantity > 0 })
	rand.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, ownerAdmin string, threshold int) ([]*entity.Product, error) {
	list := r.filter(func(p entity.Product) bool { return p.OwnerAdmin == ownerAdmin && p.Quantity <= threshold })
	sort.SliceStable(list, func(i, j int) bool { return list[i].Quantity < list[j].Quantity })
	return list, nil
}

func (r *ProductRepo) filter(keep func(entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out
}

func (r *ProductRepo) UpdateDetails(_ context.Context, p *entity.Product) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.OwnerAdmin != p.OwnerAdmin {
		return nil, nil
	}
	cur.Name = p.Name
	cur.Brand = p.Brand
	cur.Description = p.Description
	cur.Category = p.Category
	cur.Color = p.Color
	cur.Price = p.Price
	cur.Image = p.Image
	cur.UpdatedAt = p.UpdatedAt
	remember(r.u, r.s.products, p.ID)
	r.s.products[p.ID] = cur
	return &cur, nil
}

func (r *ProductRepo) ToggleFeatured(_ context.Context, id, ownerAdmin string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[id]
	if !ok || cur.OwnerAdmin != ownerAdmin {
		return nil, nil
	}
	cur.IsFeatured = !cur.IsFeatured
	cur.UpdatedAt = time.Now().UTC()
	remember(r.u, r.s.products, id)
	r.s.products[id] = cur
	return &cur, nil
}

func (r *ProductRepo) SetQuantity(_ context.Context, id, ownerAdmin string, expected, qty int) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[id]
	if !ok || cur.OwnerAdmin != ownerAdmin {
		return nil, nil
	}
	if cur.Quantity != expected {
		return nil, fmt.Errorf("%w: el stock cambió mientras se editaba el producto", domain.ErrConflict)
	}
	cur.Quantity = qty
	cur.UpdatedAt = time.Now().UTC()
	remember(r.u, r.s.products, id)
	r.s.products[id] = cur
	return &cur, nil
}

func (r *ProductRepo) Delete(_ context.Context, id, ownerAdmin string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.OwnerAdmin != ownerAdmin {
		return false, nil
	}
	remember(r.u, r.s.products, id)
	delete(r.s.products, id)
	return true, nil
}

func (r *ProductRepo) Reserve(_ context.Context, productID, ownerAdmin string, qty int) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.OwnerAdmin != ownerAdmin {
		return nil, nil
	}
	if p.Quantity < qty {
		return nil, sales.InsufficientStock(p.Quantity)
	}
	p.Quantity -= qty
	remember(r.u, r.s.products, productID)
	r.s.products[productID] = p
	return &p, nil
}

func (r *ProductRepo) Release(_ context.Context, productID string, qty int) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return nil, nil
	}
	p.Quantity += qty
	remember(r.u, r.s.products, productID)
	r.s.products[productID] = p
	return &p, nil
}
