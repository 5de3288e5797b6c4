package repository

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
// List y Stats aplican el mismo predicado de alcance.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate lee la venta bloqueando la fila hasta el fin de la transacción.
	// Solo tiene sentido dentro de TxRunner.Run. (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, scope entity.SaleScope, filter entity.SaleFilter) ([]*entity.Sale, error)
	// Update guarda la venta solo si su revisión (estados y cantidad) sigue siendo prev;
	// en otro caso devuelve domain.ErrConflict (otra petición la modificó).
	Update(ctx context.Context, sale *entity.Sale, prev entity.SaleRevision) error
	Delete(ctx context.Context, id, ownerAdmin string) (bool, error)
	Stats(ctx context.Context, scope entity.SaleScope) (entity.SalesStats, error)
}
