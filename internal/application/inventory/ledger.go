// Package inventory es el ledger de stock: único dueño de Product.quantity después de la creación.
package inventory

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/pkg/metrics"
)

// Ledger reserva stock al retirar y lo libera en la devolución de una retirada.
// Recibe los repositorios de la transacción en curso para que reserva y venta sean atómicas.
type Ledger struct {
	lowStockThreshold int
}

// NewLedger construye el ledger. lowStockThreshold: cantidad a partir de la cual un producto
// se considera con stock bajo (0 desactiva la alerta).
func NewLedger(lowStockThreshold int) *Ledger {
	return &Ledger{lowStockThreshold: lowStockThreshold}
}

// Reserve descuenta qty con un decremento condicional (quantity >= qty) y devuelve el producto actualizado.
// NotFound si el producto no existe en el tenant; ErrInsufficientStock si no alcanza.
func (l *Ledger) Reserve(ctx context.Context, products repository.ProductRepository, productID, ownerAdmin string, qty int) (*entity.Product, error) {
	if qty < 1 {
		return nil, domain.Invalid("la cantidad debe ser al menos 1")
	}
	p, err := products.Reserve(ctx, productID, ownerAdmin, qty)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto")
	}
	metrics.StockUnits.WithLabelValues("reserved").Add(float64(qty))
	return p, nil
}

// Release devuelve al stock la cantidad de una venta que pasa a returned.
// Solo libera si el estado anterior no era returned; devuelve si hubo liberación.
func (l *Ledger) Release(ctx context.Context, products repository.ProductRepository, sale *entity.Sale, previous entity.ProductStatus) (bool, error) {
	if previous == entity.ProductReturned {
		return false, nil
	}
	if previous != entity.ProductPicked {
		return false, domain.ErrInvalidTransition
	}
	p, err := products.Release(ctx, sale.ProductID, sale.Quantity)
	if err != nil {
		return false, err
	}
	if p == nil {
		// Producto eliminado: la venta se marca igualmente como devuelta.
		return false, nil
	}
	metrics.StockUnits.WithLabelValues("released").Add(float64(sale.Quantity))
	return true, nil
}

// Adjust corrección manual del stock (reposición, recuento físico) a qty unidades.
// Es condicional a la cantidad de read: si una retirada o devolución la cambió entre medias, ErrConflict.
func (l *Ledger) Adjust(ctx context.Context, products repository.ProductRepository, read *entity.Product, qty int) (*entity.Product, error) {
	if qty < 0 {
		return nil, domain.Invalid("quantity no puede ser negativa")
	}
	if qty == read.Quantity {
		return read, nil
	}
	p, err := products.SetQuantity(ctx, read.ID, read.OwnerAdmin, read.Quantity, qty)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto")
	}
	delta := qty - read.Quantity
	if delta < 0 {
		delta = -delta
	}
	metrics.StockUnits.WithLabelValues("adjusted").Add(float64(delta))
	return p, nil
}

// Pick retira stock y persiste la venta en la misma transacción (tx).
// Si la creación de la venta falla, el rollback de tx deshace el descuento.
func (l *Ledger) Pick(ctx context.Context, tx repository.Repositories, sale *entity.Sale) (*entity.Product, error) {
	p, err := l.Reserve(ctx, tx.Products, sale.ProductID, sale.OwnerAdmin, sale.Quantity)
	if err != nil {
		return nil, err
	}
	if err := tx.Sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return p, nil
}

// IsLowStock indica si el producto quedó en o por debajo del umbral de stock bajo.
func (l *Ledger) IsLowStock(p *entity.Product) bool {
	return l.lowStockThreshold > 0 && p != nil && p.Quantity <= l.lowStockThreshold
}

// LowStockThreshold umbral configurado.
func (l *Ledger) LowStockThreshold() int {
	return l.lowStockThreshold
}
