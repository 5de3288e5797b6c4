// Package sales implementa el motor de registros de venta: retirada, venta (total o parcial),
// devolución, cobro y confirmación, con el alcance de cada rol derivado de la jerarquía.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/notification"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	domainsales "github.com/jhoicas/retail-ops-api/internal/domain/sales"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
	"github.com/jhoicas/retail-ops-api/pkg/metrics"
)

// UseCase casos de uso del ciclo de vida de Sale.
// Las mutaciones corren dentro de TxRunner; las notificaciones se emiten después del commit.
type UseCase struct {
	txRunner repository.TxRunner
	ledger   *inventory.Ledger
	sales    repository.SaleRepository
	products repository.ProductRepository
	resolver *hierarchy.Resolver
	notifier notification.Notifier
	log      *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	ledger *inventory.Ledger,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	resolver *hierarchy.Resolver,
	notifier notification.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		ledger:   ledger,
		sales:    sales,
		products: products,
		resolver: resolver,
		notifier: notifier,
		log:      log.Named("sales"),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
}

// Create retira stock de un producto del tenant y registra la venta en picked (o sold si markSold).
// El tenant de la venta es el resuelto para el llamador; nunca el que envíe el cliente.
func (uc *UseCase) Create(ctx context.Context, p entity.Principal, in dto.CreateSaleRequest) (*dto.SaleMutationResponse, error) {
	pos, err := uc.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("productId es requerido")
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	if product.OwnerAdmin != pos.OwnerAdmin {
		return nil, domain.Forbidden("el producto no pertenece a tu organización")
	}
	if err := domainsales.ValidateQuantity(in.Quantity, product.Quantity); err != nil {
		return nil, err
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:              uc.newID(),
		ProductID:       product.ID,
		ProductName:     product.Name,
		AgentID:         pos.AgentID(),
		ManagerID:       pos.ManagerID(),
		OwnerAdmin:      pos.OwnerAdmin,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		Quantity:        in.Quantity,
		UnitPrice:       product.Price,
		TotalPrice:      domainsales.TotalPrice(product.Price, in.Quantity),
		ProductStatus:   entity.ProductPicked,
		PaymentStatus:   entity.PaymentPending,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if sale.CustomerName == "" {
		sale.CustomerName = entity.DefaultCustomerName
	}
	if in.MarkSold {
		domainsales.MarkSold(sale, now)
	}

	var after *entity.Product
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		p, err := uc.ledger.Pick(ctx, tx, sale)
		if err != nil {
			return err
		}
		after = p
		if sale.ProductStatus == entity.ProductSold && sale.AgentID != "" {
			return tx.Agents.AddSale(ctx, sale.AgentID, sale.TotalPrice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SaleTransitions.WithLabelValues("picked").Inc()
	if sale.ProductStatus == entity.ProductSold {
		metrics.SaleTransitions.WithLabelValues("sold").Inc()
	}
	uc.notifyPicked(ctx, pos, sale)
	if uc.ledger.IsLowStock(after) {
		uc.notifyLowStock(after)
	}

	msg := "Producto retirado correctamente"
	if sale.ProductStatus == entity.ProductSold {
		msg = "Venta registrada correctamente"
	}
	return &dto.SaleMutationResponse{Message: msg, Sale: toSaleResponse(sale)}, nil
}

// List ventas visibles para el llamador, más recientes primero. Los filtros solo estrechan el alcance.
func (uc *UseCase) List(ctx context.Context, p entity.Principal, q dto.SaleListQuery) (*dto.SaleListResponse, error) {
	scope, err := uc.resolver.ResolveScope(ctx, p)
	if err != nil {
		return nil, err
	}
	var filter entity.SaleFilter
	if q.ProductStatus != "" {
		if filter.ProductStatus, err = domainsales.ParseProductStatus(q.ProductStatus); err != nil {
			return nil, err
		}
	}
	if q.PaymentStatus != "" {
		if filter.PaymentStatus, err = domainsales.ParsePaymentStatus(q.PaymentStatus); err != nil {
			return nil, err
		}
	}
	list, err := uc.sales.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

// Get venta por id dentro del alcance del llamador; fuera de alcance es NotFound.
func (uc *UseCase) Get(ctx context.Context, p entity.Principal, id string) (*dto.SaleResponse, error) {
	pos, err := uc.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	sale, err := uc.load(ctx, pos, id)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// ConfirmPayment paso final del admin: pasa el pago a confirmed.
// AlreadyConfirmed si ya lo estaba; conflicto si estaba cancelado.
func (uc *UseCase) ConfirmPayment(ctx context.Context, p entity.Principal, id string) (*dto.SaleMutationResponse, error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin confirma pagos")
	}
	pos, err := uc.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		var err error
		if sale, err = lockSale(ctx, tx.Sales, pos, id); err != nil {
			return err
		}
		if sale.PaymentStatus == entity.PaymentConfirmed {
			return domain.ErrAlreadyConfirmed
		}
		prev := sale.Revision()
		if !domainsales.CanMovePayment(prev.PaymentStatus, entity.PaymentConfirmed) {
			return transitionError("paymentStatus", string(prev.PaymentStatus), string(entity.PaymentConfirmed))
		}
		sale.PaymentStatus = entity.PaymentConfirmed
		sale.PaymentConfirmedByAdmin = true
		sale.PaymentConfirmedAt = &now
		sale.UpdatedAt = now
		return tx.Sales.Update(ctx, sale, prev)
	})
	if err != nil {
		return nil, err
	}

	metrics.SaleTransitions.WithLabelValues("confirmed").Inc()
	uc.notifyConfirmed(ctx, pos, sale)
	return &dto.SaleMutationResponse{Message: "Pago confirmado correctamente", Sale: toSaleResponse(sale)}, nil
}

// Delete borrado físico por el admin dueño. No repone stock.
func (uc *UseCase) Delete(ctx context.Context, p entity.Principal, id string) error {
	if !p.Is(entity.RoleAdmin) {
		return domain.Forbidden("solo el admin elimina ventas")
	}
	ok, err := uc.sales.Delete(ctx, id, p.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("venta")
	}
	metrics.SaleTransitions.WithLabelValues("deleted").Inc()
	return nil
}

// Stats agregados con el mismo alcance que List.
func (uc *UseCase) Stats(ctx context.Context, p entity.Principal) (*dto.SalesStatsResponse, error) {
	scope, err := uc.resolver.ResolveScope(ctx, p)
	if err != nil {
		return nil, err
	}
	stats, err := uc.sales.Stats(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &dto.SalesStatsResponse{
		TotalSales:      stats.TotalSales,
		TotalRevenue:    stats.TotalRevenue,
		PendingPayments: stats.PendingPayments,
		TotalOrders:     stats.TotalOrders,
	}, nil
}

// load obtiene la venta y verifica el alcance de la posición.
func (uc *UseCase) load(ctx context.Context, pos *hierarchy.Position, id string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || !pos.Scope().Matches(sale) {
		return nil, domain.NotFound("venta")
	}
	return sale, nil
}

// lockSale relee la venta dentro de la transacción con la fila bloqueada y verifica el alcance.
func lockSale(ctx context.Context, sales repository.SaleRepository, pos *hierarchy.Position, id string) (*entity.Sale, error) {
	sale, err := sales.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || !pos.Scope().Matches(sale) {
		return nil, domain.NotFound("venta")
	}
	return sale, nil
}

func transitionError(field, from, to string) error {
	return fmt.Errorf("%w: %s no puede pasar de %s a %s", domain.ErrInvalidTransition, field, from, to)
}
