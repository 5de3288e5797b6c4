package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria; el alcance se evalúa con SaleScope.Matches.
type SaleRepo struct {
	s *Store
	u *undoLog
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remember(r.u, r.s.sales, sale.ID)
	r.s.sales[sale.ID] = *sale
	r.s.touch(sale.ID)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

// GetForUpdate igual que GetByID: TxRunner serializa las transacciones del store.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) List(_ context.Context, scope entity.SaleScope, f entity.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		sale := sale
		if !scope.Matches(&sale) {
			continue
		}
		if f.ProductStatus != "" && sale.ProductStatus != f.ProductStatus {
			continue
		}
		if f.PaymentStatus != "" && sale.PaymentStatus != f.PaymentStatus {
			continue
		}
		out = append(out, &sale)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.s.order[out[i].ID] > r.s.order[out[j].ID]
	})
	return out, nil
}

func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale, prev entity.SaleRevision) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sales[sale.ID]
	if !ok {
		return domain.NotFound("venta")
	}
	if cur.Revision() != prev {
		return domain.ErrConflict
	}
	remember(r.u, r.s.sales, sale.ID)
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id, ownerAdmin string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok || sale.OwnerAdmin != ownerAdmin {
		return false, nil
	}
	remember(r.u, r.s.sales, id)
	delete(r.s.sales, id)
	return true, nil
}

func (r *SaleRepo) Stats(_ context.Context, scope entity.SaleScope) (entity.SalesStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stats := entity.SalesStats{TotalRevenue: decimal.Zero}
	for _, sale := range r.s.sales {
		sale := sale
		if !scope.Matches(&sale) {
			continue
		}
		stats.TotalOrders++
		if sale.ProductStatus == entity.ProductSold {
			stats.TotalSales++
			if sale.PaymentStatus == entity.PaymentConfirmed {
				stats.TotalRevenue = stats.TotalRevenue.Add(sale.TotalPrice)
			}
		}
		if sale.PaymentStatus == entity.PaymentPending {
			stats.PendingPayments++
		}
	}
	return stats, nil
}
