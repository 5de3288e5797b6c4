package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo del tenant. Tras la creación, el stock
// lo mueve el ledger; aquí solo se corrige manualmente desde Update, a través del ledger.
type ProductUseCase struct {
	txRunner repository.TxRunner
	repo     repository.ProductRepository
	resolver *hierarchy.Resolver
	cache    ports.FeaturedCache
	ledger   *inventory.Ledger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, repo repository.ProductRepository, resolver *hierarchy.Resolver, cache ports.FeaturedCache, ledger *inventory.Ledger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, resolver: resolver, cache: cache, ledger: ledger}
}

// Create crea un producto en el tenant del llamador (admin o manager).
func (uc *ProductUseCase) Create(ctx context.Context, p entity.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	owner, err := uc.editor(ctx, p)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price no puede ser negativo")
	}
	if in.Quantity < 0 {
		return nil, domain.Invalid("quantity no puede ser negativa")
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		OwnerAdmin:  owner,
		Name:        name,
		Brand:       strings.TrimSpace(in.Brand),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Color:       strings.TrimSpace(in.Color),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID producto del tenant del llamador; de otro tenant es NotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, p entity.Principal, id string) (*dto.ProductResponse, error) {
	owner, err := uc.resolver.ResolveOwnerAdmin(ctx, p)
	if err != nil {
		return nil, err
	}
	product, err := owned(ctx, uc.repo, owner, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update edición parcial de catálogo. La escritura no toca quantity; una corrección manual
// de stock pasa por el ledger y es condicional a la cantidad leída en la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, p entity.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	owner, err := uc.editor(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := validateProductUpdate(in); err != nil {
		return nil, err
	}

	var product *entity.Product
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		read, err := owned(ctx, tx.Products, owner, id)
		if err != nil {
			return err
		}
		edited := *read
		applyProductUpdate(&edited, in)
		edited.UpdatedAt = time.Now().UTC()
		if product, err = tx.Products.UpdateDetails(ctx, &edited); err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		if in.Quantity != nil {
			if product, err = uc.ledger.Adjust(ctx, tx.Products, read, *in.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if product.IsFeatured {
		uc.cache.InvalidateFeatured(ctx, owner)
	}
	return toProductResponse(product), nil
}

func validateProductUpdate(in dto.UpdateProductRequest) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.Invalid("name no puede quedar vacío")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return domain.Invalid("price no puede ser negativo")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return domain.Invalid("quantity no puede ser negativa")
	}
	return nil
}

func applyProductUpdate(product *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Color != nil {
		product.Color = strings.TrimSpace(*in.Color)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
}

// List lista productos del tenant con paginación.
func (uc *ProductUseCase) List(ctx context.Context, p entity.Principal, page dto.PageRequest) (*dto.ProductListResponse, error) {
	owner, err := uc.resolver.ResolveOwnerAdmin(ctx, p)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ctx, owner, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// RecommendationSize productos por recomendación.
const RecommendationSize = 4

// ByCategory productos del tenant de una categoría.
func (uc *ProductUseCase) ByCategory(ctx context.Context, p entity.Principal, category string) ([]dto.ProductResponse, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.Invalid("category es requerida")
	}
	owner, err := uc.resolver.ResolveOwnerAdmin(ctx, p)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCategory(ctx, owner, category)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Recommendations muestra aleatoria de productos del tenant con stock disponible.
func (uc *ProductUseCase) Recommendations(ctx context.Context, p entity.Principal) ([]dto.ProductResponse, error) {
	owner, err := uc.resolver.ResolveOwnerAdmin(ctx, p)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListRecommended(ctx, owner, RecommendationSize)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Featured productos destacados del tenant; se sirven desde caché cuando está disponible.
func (uc *ProductUseCase) Featured(ctx context.Context, p entity.Principal) ([]dto.ProductResponse, error) {
	owner, err := uc.resolver.ResolveOwnerAdmin(ctx, p)
	if err != nil {
		return nil, err
	}
	if items, ok := uc.cache.GetFeatured(ctx, owner); ok {
		return items, nil
	}
	list, err := uc.repo.ListFeatured(ctx, owner)
	if err != nil {
		return nil, err
	}
	items := toProductResponses(list)
	uc.cache.SetFeatured(ctx, owner, items)
	return items, nil
}

// ToggleFeatured invierte isFeatured (solo admin) e invalida la caché del tenant.
func (uc *ProductUseCase) ToggleFeatured(ctx context.Context, p entity.Principal, id string) (*dto.ProductResponse, error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin destaca productos")
	}
	product, err := uc.repo.ToggleFeatured(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	uc.cache.InvalidateFeatured(ctx, p.UserID)
	return toProductResponse(product), nil
}

// LowStock productos en o por debajo del umbral configurado (admin o manager).
func (uc *ProductUseCase) LowStock(ctx context.Context, p entity.Principal) ([]dto.ProductResponse, error) {
	owner, err := uc.editor(ctx, p)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListLowStock(ctx, owner, uc.ledger.LowStockThreshold())
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto del tenant. Las ventas que lo referencian se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, p entity.Principal, id string) error {
	owner, err := uc.editor(ctx, p)
	if err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, id, owner)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("producto")
	}
	uc.cache.InvalidateFeatured(ctx, owner)
	return nil
}

// editor exige admin o manager y devuelve el tenant.
func (uc *ProductUseCase) editor(ctx context.Context, p entity.Principal) (string, error) {
	if !p.Is(entity.RoleAdmin, entity.RoleManager) {
		return "", domain.Forbidden("solo admin o manager editan el catálogo")
	}
	return uc.resolver.ResolveOwnerAdmin(ctx, p)
}

func owned(ctx context.Context, repo repository.ProductRepository, owner, id string) (*entity.Product, error) {
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OwnerAdmin != owner {
		return nil, domain.NotFound("producto")
	}
	return product, nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		OwnerAdmin:  p.OwnerAdmin,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Category:    p.Category,
		Color:       p.Color,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Image:       p.Image,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
