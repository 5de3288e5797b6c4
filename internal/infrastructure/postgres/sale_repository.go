package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, product_name, COALESCE(agent_id, ''), COALESCE(manager_id, ''), owner_admin,
	customer_name, customer_phone, customer_address, quantity, unit_price, total_price, product_status, payment_status,
	notes, sold_at, payment_confirmed_at, payment_confirmed_by_manager, payment_confirmed_by_admin, created_at, updated_at`

// SaleRepo ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, product_id, product_name, agent_id, manager_id, owner_admin, customer_name, customer_phone,
			customer_address, quantity, unit_price, total_price, product_status, payment_status, notes, sold_at,
			payment_confirmed_at, payment_confirmed_by_manager, payment_confirmed_by_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		s.ID, s.ProductID, s.ProductName, nullable(s.AgentID), nullable(s.ManagerID), s.OwnerAdmin, s.CustomerName,
		s.CustomerPhone, s.CustomerAddress, s.Quantity, s.UnitPrice, s.TotalPrice, string(s.ProductStatus),
		string(s.PaymentStatus), s.Notes, s.SoldAt, s.PaymentConfirmedAt, s.PaymentConfirmedByManager,
		s.PaymentConfirmedByAdmin, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
}

// GetForUpdate SELECT ... FOR UPDATE: serializa las mutaciones concurrentes de la misma venta.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id))
}

// scopeWhere traduce SaleScope a SQL. OwnerAdmin vacío no devuelve filas.
func scopeWhere(scope entity.SaleScope) (string, []any) {
	conds := []string{"owner_admin = $1"}
	args := []any{scope.OwnerAdmin}
	if scope.OwnerAdmin == "" {
		conds = append(conds, "FALSE")
	}
	if scope.ManagerID != "" {
		args = append(args, scope.ManagerID)
		conds = append(conds, fmt.Sprintf("manager_id = $%d", len(args)))
	}
	if scope.AgentID != "" {
		args = append(args, scope.AgentID)
		conds = append(conds, fmt.Sprintf("agent_id = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func (r *SaleRepo) List(ctx context.Context, scope entity.SaleScope, f entity.SaleFilter) ([]*entity.Sale, error) {
	where, args := scopeWhere(scope)
	if f.ProductStatus != "" {
		args = append(args, string(f.ProductStatus))
		where += fmt.Sprintf(" AND product_status = $%d", len(args))
	}
	if f.PaymentStatus != "" {
		args = append(args, string(f.PaymentStatus))
		where += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update escritura condicional a la revisión leída (estados y cantidad): si otra petición la cambió, ErrConflict.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale, prev entity.SaleRevision) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET quantity = $2, total_price = $3, product_status = $4, payment_status = $5, notes = $6,
			sold_at = $7, payment_confirmed_at = $8, payment_confirmed_by_manager = $9, payment_confirmed_by_admin = $10,
			updated_at = $11
		WHERE id = $1 AND product_status = $12 AND payment_status = $13 AND quantity = $14`,
		s.ID, s.Quantity, s.TotalPrice, string(s.ProductStatus), string(s.PaymentStatus), s.Notes, s.SoldAt,
		s.PaymentConfirmedAt, s.PaymentConfirmedByManager, s.PaymentConfirmedByAdmin, s.UpdatedAt,
		string(prev.ProductStatus), string(prev.PaymentStatus), prev.Quantity,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sales WHERE id = $1)`, s.ID).Scan(&exists); err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		if !exists {
			return domain.NotFound("venta")
		}
		return domain.ErrConflict
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id, ownerAdmin string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND owner_admin = $2`, id, ownerAdmin)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Stats agregados con el mismo WHERE que List. Ingresos: vendidas con pago confirmado.
func (r *SaleRepo) Stats(ctx context.Context, scope entity.SaleScope) (entity.SalesStats, error) {
	where, args := scopeWhere(scope)
	var st entity.SalesStats
	err := r.q.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE product_status = 'sold'),
			COALESCE(SUM(total_price) FILTER (WHERE product_status = 'sold' AND payment_status = 'confirmed'), 0),
			COUNT(*) FILTER (WHERE payment_status = 'pending'),
			COUNT(*)
		FROM sales WHERE `+where, args...).Scan(&st.TotalSales, &st.TotalRevenue, &st.PendingPayments, &st.TotalOrders)
	if err != nil {
		return entity.SalesStats{}, fmt.Errorf("sales stats: %w", err)
	}
	return st, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var productStatus, paymentStatus string
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.AgentID, &s.ManagerID, &s.OwnerAdmin, &s.CustomerName,
		&s.CustomerPhone, &s.CustomerAddress, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &productStatus, &paymentStatus,
		&s.Notes, &s.SoldAt, &s.PaymentConfirmedAt, &s.PaymentConfirmedByManager, &s.PaymentConfirmedByAdmin,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	s.ProductStatus = entity.ProductStatus(productStatus)
	s.PaymentStatus = entity.PaymentStatus(paymentStatus)
	return &s, nil
}
