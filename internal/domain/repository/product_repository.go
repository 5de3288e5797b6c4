package repository

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByOwner(ctx context.Context, ownerAdmin string, limit, offset int) ([]*entity.Product, error)
	ListFeatured(ctx context.Context, ownerAdmin string) ([]*entity.Product, error)
	// ListByCategory productos del tenant cuya categoría coincide sin distinguir mayúsculas.
	ListByCategory(ctx context.Context, ownerAdmin, category string) ([]*entity.Product, error)
	// ListRecommended muestra aleatoria de hasta limit productos con stock.
	ListRecommended(ctx context.Context, ownerAdmin string, limit int) ([]*entity.Product, error)
	// ListLowStock productos con quantity <= threshold, de menor a mayor cantidad.
	ListLowStock(ctx context.Context, ownerAdmin string, threshold int) ([]*entity.Product, error)
	// UpdateDetails persiste solo los datos de catálogo; quantity e is_featured no se tocan.
	// Devuelve el producto tal como quedó; (nil, nil) si no existe en el tenant.
	UpdateDetails(ctx context.Context, product *entity.Product) (*entity.Product, error)
	// ToggleFeatured invierte is_featured en una sola escritura. (nil, nil) si no existe en el tenant.
	ToggleFeatured(ctx context.Context, id, ownerAdmin string) (*entity.Product, error)
	// SetQuantity fija quantity solo si sigue valiendo expected. (nil, nil) si no existe en el tenant;
	// domain.ErrConflict si el stock cambió desde la lectura.
	SetQuantity(ctx context.Context, id, ownerAdmin string, expected, qty int) (*entity.Product, error)
	Delete(ctx context.Context, id, ownerAdmin string) (bool, error)

	// Reserve descuenta qty de forma atómica solo si quantity >= qty (compare-and-swap).
	// (nil, nil) si el producto no existe en ese tenant; domain.ErrInsufficientStock si no alcanza.
	Reserve(ctx context.Context, productID, ownerAdmin string, qty int) (*entity.Product, error)
	// Release suma qty al stock. (nil, nil) si el producto ya no existe.
	Release(ctx context.Context, productID string, qty int) (*entity.Product, error)
}
