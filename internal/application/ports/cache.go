package ports

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
)

// FeaturedCache caché de productos destacados por tenant.
// Un fallo de caché nunca es error para el llamador: Get devuelve ok=false.
type FeaturedCache interface {
	GetFeatured(ctx context.Context, ownerAdmin string) ([]dto.ProductResponse, bool)
	SetFeatured(ctx context.Context, ownerAdmin string, items []dto.ProductResponse)
	InvalidateFeatured(ctx context.Context, ownerAdmin string)
}
