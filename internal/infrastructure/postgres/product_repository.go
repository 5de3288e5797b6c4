package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/internal/domain/sales"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_admin, name, brand, description, category, color, price, quantity, image, is_featured, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, owner_admin, name, brand, description, category, color, price, quantity, image, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.OwnerAdmin, p.Name, p.Brand, p.Description, p.Category, p.Color, p.Price, p.Quantity,
		p.Image, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// ListByOwner lista productos del tenant con paginación, más recientes primero.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerAdmin string, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_admin = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerAdmin, limit, offset)
}

// ListFeatured productos destacados del tenant.
func (r *ProductRepo) ListFeatured(ctx context.Context, ownerAdmin string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_admin = $1 AND is_featured ORDER BY created_at DESC`, ownerAdmin)
}

// ListByCategory productos del tenant de una categoría (sin distinguir mayúsculas).
func (r *ProductRepo) ListByCategory(ctx context.Context, ownerAdmin, category string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_admin = $1 AND lower(category) = lower($2) ORDER BY created_at DESC`,
		ownerAdmin, category)
}

// ListRecommended muestra aleatoria de productos con stock.
func (r *ProductRepo) ListRecommended(ctx context.Context, ownerAdmin string, limit int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_admin = $1 AND quantity > 0 ORDER BY random() LIMIT $2`,
		ownerAdmin, limit)
}

// ListLowStock productos con quantity <= threshold.
func (r *ProductRepo) ListLowStock(ctx context.Context, ownerAdmin string, threshold int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_admin = $1 AND quantity <= $2 ORDER BY quantity ASC, created_at DESC`,
		ownerAdmin, threshold)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateDetails actualiza los datos de catálogo. quantity la mueve solo el ledger.
func (r *ProductRepo) UpdateDetails(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	out, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET name = $3, brand = $4, description = $5, category = $6, color = $7, price = $8,
			image = $9, updated_at = $10
		WHERE id = $1 AND owner_admin = $2
		RETURNING `+productColumns,
		p.ID, p.OwnerAdmin, p.Name, p.Brand, p.Description, p.Category, p.Color, p.Price, p.Image, p.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return out, nil
}

// ToggleFeatured invierte is_featured sin leer ni reescribir el resto de columnas.
func (r *ProductRepo) ToggleFeatured(ctx context.Context, id, ownerAdmin string) (*entity.Product, error) {
	out, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET is_featured = NOT is_featured, updated_at = now()
		WHERE id = $1 AND owner_admin = $2
		RETURNING `+productColumns, id, ownerAdmin))
	if err != nil {
		return nil, fmt.Errorf("toggle featured: %w", err)
	}
	return out, nil
}

// SetQuantity escritura condicional a la cantidad leída.
func (r *ProductRepo) SetQuantity(ctx context.Context, id, ownerAdmin string, expected, qty int) (*entity.Product, error) {
	out, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET quantity = $4, updated_at = now()
		WHERE id = $1 AND owner_admin = $2 AND quantity = $3
		RETURNING `+productColumns, id, ownerAdmin, expected, qty))
	if err != nil || out != nil {
		return out, err
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND owner_admin = $2)`, id, ownerAdmin).Scan(&exists); err != nil {
		return nil, fmt.Errorf("set product quantity: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return nil, stockMoved()
}

func stockMoved() error {
	return fmt.Errorf("%w: el stock cambió mientras se editaba el producto", domain.ErrConflict)
}

// Delete elimina un producto del tenant; false si no existe en él.
func (r *ProductRepo) Delete(ctx context.Context, id, ownerAdmin string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_admin = $2`, id, ownerAdmin)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Reserve decremento condicional: dos retiradas concurrentes nunca dejan quantity negativa.
func (r *ProductRepo) Reserve(ctx context.Context, productID, ownerAdmin string, qty int) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET quantity = quantity - $3, updated_at = now()
		WHERE id = $1 AND owner_admin = $2 AND quantity >= $3
		RETURNING `+productColumns, productID, ownerAdmin, qty))
	if err != nil || p != nil {
		return p, err
	}
	// Sin fila: o no existe en el tenant o no alcanza el stock.
	var available int
	err = r.q.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1 AND owner_admin = $2`, productID, ownerAdmin).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reserve product: %w", err)
	}
	return nil, sales.InsufficientStock(available)
}

// Release suma qty al stock.
func (r *ProductRepo) Release(ctx context.Context, productID string, qty int) (*entity.Product, error) {
	return scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns, productID, qty))
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.OwnerAdmin, &p.Name, &p.Brand, &p.Description, &p.Category, &p.Color,
		&p.Price, &p.Quantity, &p.Image, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
