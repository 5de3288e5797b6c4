// Package sales contiene las reglas puras del ciclo de vida de una venta:
// transiciones de estado del producto y del pago, y el cálculo de la venta parcial.
package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// TotalPrice = unitPrice × quantity (aritmética decimal exacta).
func TotalPrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ParseProductStatus valida un estado de producto recibido como texto.
func ParseProductStatus(s string) (entity.ProductStatus, error) {
	switch st := entity.ProductStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case entity.ProductPicked, entity.ProductSold, entity.ProductReturned:
		return st, nil
	}
	return "", domain.Invalid("productStatus inválido: %q", s)
}

// ParsePaymentStatus valida un estado de pago recibido como texto.
func ParsePaymentStatus(s string) (entity.PaymentStatus, error) {
	switch st := entity.PaymentStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case entity.PaymentPending, entity.PaymentPaid, entity.PaymentConfirmed, entity.PaymentCancelled:
		return st, nil
	}
	return "", domain.Invalid("paymentStatus inválido: %q", s)
}

// CanMoveProduct picked → {sold, returned}. sold y returned son terminales;
// returned → returned se acepta como reintento sin efecto.
func CanMoveProduct(from, to entity.ProductStatus) bool {
	switch from {
	case entity.ProductPicked:
		return to == entity.ProductSold || to == entity.ProductReturned
	case entity.ProductReturned:
		return to == entity.ProductReturned
	}
	return false
}

// CanMovePayment pending → paid → confirmed, o pending → cancelled.
func CanMovePayment(from, to entity.PaymentStatus) bool {
	switch from {
	case entity.PaymentPending:
		return to == entity.PaymentPaid || to == entity.PaymentConfirmed || to == entity.PaymentCancelled
	case entity.PaymentPaid:
		return to == entity.PaymentConfirmed
	}
	return false
}

// ValidateQuantity cantidad de una nueva retirada: 1 ≤ quantity ≤ available.
func ValidateQuantity(quantity, available int) error {
	if quantity < 1 {
		return domain.Invalid("la cantidad debe ser al menos 1")
	}
	if quantity > available {
		return InsufficientStock(available)
	}
	return nil
}

// InsufficientStock error de conflicto con el stock disponible.
func InsufficientStock(available int) error {
	return fmt.Errorf("%w: solo hay %d unidad(es) disponibles", domain.ErrInsufficientStock, available)
}

// ValidateSoldQuantity cantidad vendida sobre una retirada: 1 ≤ soldQuantity ≤ sale.Quantity.
func ValidateSoldQuantity(sale *entity.Sale, soldQuantity int) error {
	if soldQuantity < 1 {
		return domain.Invalid("soldQuantity debe ser al menos 1")
	}
	if soldQuantity > sale.Quantity {
		return InsufficientStock(sale.Quantity)
	}
	return nil
}

// MarkSold marca la venta completa como vendida; SoldAt solo se fija la primera vez.
func MarkSold(sale *entity.Sale, now time.Time) {
	if sale.SoldAt == nil {
		t := now
		sale.SoldAt = &t
	}
	sale.ProductStatus = entity.ProductSold
	sale.UpdatedAt = now
}

// MarkReturned marca la venta como devuelta y limpia SoldAt.
// Devuelve true si hubo transición real (la anterior no era returned) y por tanto hay que liberar stock.
func MarkReturned(sale *entity.Sale, now time.Time) bool {
	release := sale.ProductStatus != entity.ProductReturned
	sale.ProductStatus = entity.ProductReturned
	sale.SoldAt = nil
	sale.UpdatedAt = now
	return release
}

// Split separa soldQuantity unidades de una retirada en un nuevo registro vendido.
// La original conserva el resto en picked; cantidades y totales se conservan:
// sold.Quantity + sale.Quantity == cantidad original y lo mismo para TotalPrice.
func Split(sale *entity.Sale, soldQuantity int, newID string, now time.Time) *entity.Sale {
	soldAt := now
	sold := &entity.Sale{
		ID:                        newID,
		ProductID:                 sale.ProductID,
		ProductName:               sale.ProductName,
		AgentID:                   sale.AgentID,
		ManagerID:                 sale.ManagerID,
		OwnerAdmin:                sale.OwnerAdmin,
		CustomerName:              sale.CustomerName,
		CustomerPhone:             sale.CustomerPhone,
		CustomerAddress:           sale.CustomerAddress,
		Quantity:                  soldQuantity,
		UnitPrice:                 sale.UnitPrice,
		TotalPrice:                TotalPrice(sale.UnitPrice, soldQuantity),
		ProductStatus:             entity.ProductSold,
		PaymentStatus:             sale.PaymentStatus,
		Notes:                     sale.Notes,
		SoldAt:                    &soldAt,
		PaymentConfirmedAt:        sale.PaymentConfirmedAt,
		PaymentConfirmedByManager: sale.PaymentConfirmedByManager,
		PaymentConfirmedByAdmin:   sale.PaymentConfirmedByAdmin,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	sale.Quantity -= soldQuantity
	sale.TotalPrice = TotalPrice(sale.UnitPrice, sale.Quantity)
	sale.UpdatedAt = now
	return sold
}
