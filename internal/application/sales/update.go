package sales

import (
	"context"
	"strings"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	domainsales "github.com/jhoicas/retail-ops-api/internal/domain/sales"
	"github.com/jhoicas/retail-ops-api/pkg/metrics"
)

// updatePlan ramas de updateSale ya validadas; se construye antes de mutar nada.
type updatePlan struct {
	paid      bool
	cancelled bool
	notes     *string
	sold      bool
	soldQty   int
	returned  bool
}

func (pl updatePlan) partial(sale *entity.Sale) bool {
	return pl.sold && pl.soldQty < sale.Quantity
}

// Update parche disperso sobre una venta visible para el llamador.
// La venta se relee dentro de la transacción con la fila bloqueada y el parche se valida
// contra ese estado antes de mutar; la escritura final es condicional a la revisión leída.
func (uc *UseCase) Update(ctx context.Context, p entity.Principal, id string, in dto.UpdateSaleRequest) (*dto.SaleMutationResponse, error) {
	pos, err := uc.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var (
		sale  *entity.Sale
		plan  updatePlan
		prev  entity.SaleRevision
		split *entity.Sale
	)
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		var err error
		if sale, err = lockSale(ctx, tx.Sales, pos, id); err != nil {
			return err
		}
		if plan, err = planUpdate(sale, in); err != nil {
			return err
		}
		prev = sale.Revision()

		if plan.paid {
			sale.PaymentStatus = entity.PaymentPaid
			sale.PaymentConfirmedByManager = true
			sale.PaymentConfirmedAt = &now
		}
		if plan.cancelled {
			sale.PaymentStatus = entity.PaymentCancelled
		}
		if plan.notes != nil {
			sale.Notes = *plan.notes
		}

		switch {
		case plan.sold && plan.partial(sale):
			split = domainsales.Split(sale, plan.soldQty, uc.newID(), now)
			if err := tx.Sales.Create(ctx, split); err != nil {
				return err
			}
			if split.AgentID != "" {
				if err := tx.Agents.AddSale(ctx, split.AgentID, split.TotalPrice); err != nil {
					return err
				}
			}
		case plan.sold:
			domainsales.MarkSold(sale, now)
			if sale.AgentID != "" {
				if err := tx.Agents.AddSale(ctx, sale.AgentID, sale.TotalPrice); err != nil {
					return err
				}
			}
		case plan.returned:
			if domainsales.MarkReturned(sale, now) {
				if _, err := uc.ledger.Release(ctx, tx.Products, sale, prev.ProductStatus); err != nil {
					return err
				}
			}
		}

		sale.UpdatedAt = now
		return tx.Sales.Update(ctx, sale, prev)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.SaleMutationResponse{Message: "Venta actualizada correctamente", Sale: toSaleResponse(sale)}
	if plan.paid {
		metrics.SaleTransitions.WithLabelValues("paid").Inc()
		uc.notifyPaid(ctx, pos, sale)
	}
	if plan.cancelled {
		metrics.SaleTransitions.WithLabelValues("cancelled").Inc()
	}
	switch {
	case split != nil:
		// La respuesta principal es el nuevo registro vendido; la retirada restante va aparte.
		metrics.SaleTransitions.WithLabelValues("sold_partial").Inc()
		remaining := out.Sale
		out.Sale = toSaleResponse(split)
		out.RemainingPick = &remaining
		out.Message = "Venta parcial registrada correctamente"
		uc.notifySold(ctx, pos, split)
	case plan.sold:
		metrics.SaleTransitions.WithLabelValues("sold").Inc()
		uc.notifySold(ctx, pos, sale)
	case plan.returned && prev.ProductStatus != entity.ProductReturned:
		metrics.SaleTransitions.WithLabelValues("returned").Inc()
		uc.notifyReturned(ctx, pos, sale)
	}
	return out, nil
}

// planUpdate valida el parche completo contra el estado actual.
func planUpdate(sale *entity.Sale, in dto.UpdateSaleRequest) (updatePlan, error) {
	var plan updatePlan
	plan.notes = in.Notes

	if in.PaymentStatus != nil {
		st, err := domainsales.ParsePaymentStatus(*in.PaymentStatus)
		if err != nil {
			return plan, err
		}
		switch st {
		case entity.PaymentPaid:
			plan.paid = true
		case entity.PaymentCancelled:
			plan.cancelled = true
		default:
			return plan, domain.Invalid("paymentStatus solo acepta paid o cancelled; la confirmación la hace el admin")
		}
		if sale.PaymentStatus != st && !domainsales.CanMovePayment(sale.PaymentStatus, st) {
			return plan, transitionError("paymentStatus", string(sale.PaymentStatus), string(st))
		}
		if sale.PaymentStatus == st {
			// Reintento: sin cambios de pago.
			plan.paid, plan.cancelled = false, false
		}
	}

	if in.SoldQuantity != nil && (in.ProductStatus == nil || !strings.EqualFold(strings.TrimSpace(*in.ProductStatus), string(entity.ProductSold))) {
		return plan, domain.Invalid("soldQuantity solo aplica con productStatus=sold")
	}

	if in.ProductStatus != nil {
		st, err := domainsales.ParseProductStatus(*in.ProductStatus)
		if err != nil {
			return plan, err
		}
		switch st {
		case entity.ProductSold:
			if !domainsales.CanMoveProduct(sale.ProductStatus, st) {
				return plan, transitionError("productStatus", string(sale.ProductStatus), string(st))
			}
			plan.sold = true
			plan.soldQty = sale.Quantity
			if in.SoldQuantity != nil {
				plan.soldQty = *in.SoldQuantity
			}
			if err := domainsales.ValidateSoldQuantity(sale, plan.soldQty); err != nil {
				return plan, err
			}
		case entity.ProductReturned:
			if !domainsales.CanMoveProduct(sale.ProductStatus, st) {
				return plan, transitionError("productStatus", string(sale.ProductStatus), string(st))
			}
			plan.returned = true
		default:
			return plan, domain.Invalid("productStatus solo acepta sold o returned")
		}
	}
	return plan, nil
}
