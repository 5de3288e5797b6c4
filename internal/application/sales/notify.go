package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// Las notificaciones son efectos secundarios posteriores al commit: un fallo al resolver
// destinatarios se registra y no altera el resultado de la operación.

func (uc *UseCase) notifyPicked(ctx context.Context, pos *hierarchy.Position, sale *entity.Sale) {
	title := "Producto retirado"
	msg := fmt.Sprintf("%s retiró %d unidad(es) de %s", pos.ActorLabel(), sale.Quantity, sale.ProductName)
	for _, r := range uc.recipients(ctx, sale, true, true, false) {
		if r.id == pos.Principal.UserID {
			continue
		}
		uc.send(r, pos, entity.NotifyProductPicked, title, msg, sale, entity.PriorityNormal)
	}
}

func (uc *UseCase) notifyPaid(ctx context.Context, pos *hierarchy.Position, sale *entity.Sale) {
	title := "Pago recibido"
	msg := fmt.Sprintf("%s registró el pago de %s (%s)", pos.ActorLabel(), sale.ProductName, sale.TotalPrice.StringFixed(2))
	for _, r := range uc.recipients(ctx, sale, true, true, false) {
		if r.id == pos.Principal.UserID {
			continue
		}
		uc.send(r, pos, entity.NotifyPaymentReceived, title, msg, sale, entity.PriorityHigh)
	}
}

func (uc *UseCase) notifySold(ctx context.Context, pos *hierarchy.Position, sale *entity.Sale) {
	msg := fmt.Sprintf("%s vendió %d unidad(es) de %s", pos.ActorLabel(), sale.Quantity, sale.ProductName)
	for _, r := range uc.recipients(ctx, sale, false, true, false) {
		uc.send(r, pos, entity.NotifyProductSold, "Producto vendido", msg, sale, entity.PriorityNormal)
	}
}

func (uc *UseCase) notifyReturned(ctx context.Context, pos *hierarchy.Position, sale *entity.Sale) {
	msg := fmt.Sprintf("%s devolvió %d unidad(es) de %s", pos.ActorLabel(), sale.Quantity, sale.ProductName)
	for _, r := range uc.recipients(ctx, sale, false, true, false) {
		uc.send(r, pos, entity.NotifyProductReturned, "Producto devuelto", msg, sale, entity.PriorityNormal)
	}
}

func (uc *UseCase) notifyConfirmed(ctx context.Context, pos *hierarchy.Position, sale *entity.Sale) {
	msg := fmt.Sprintf("El admin confirmó el pago de %s (%s)", sale.ProductName, sale.TotalPrice.StringFixed(2))
	for _, r := range uc.recipients(ctx, sale, false, true, true) {
		uc.send(r, pos, entity.NotifyPaymentConfirmed, "Pago confirmado", msg, sale, entity.PriorityHigh)
	}
}

// notifyLowStock alerta al admin dueño cuando una retirada deja el producto en el umbral o por debajo.
func (uc *UseCase) notifyLowStock(p *entity.Product) {
	uc.notifier.Notify(entity.Notification{
		RecipientID:   p.OwnerAdmin,
		RecipientRole: entity.RoleAdmin,
		Type:          entity.NotifyAlert,
		Title:         "Stock bajo",
		Message:       fmt.Sprintf("Quedan %d unidad(es) de %s", p.Quantity, p.Name),
		RefModel:      entity.RefProduct,
		RefID:         p.ID,
		Priority:      entity.PriorityHigh,
	})
}

type recipient struct {
	id   string
	role string
}

// recipients ids de usuario del admin, del manager y/o del agente de la venta. Omite los que no existen.
func (uc *UseCase) recipients(ctx context.Context, sale *entity.Sale, admin, manager, agent bool) []recipient {
	var out []recipient
	if admin && sale.OwnerAdmin != "" {
		out = append(out, recipient{id: sale.OwnerAdmin, role: entity.RoleAdmin})
	}
	if manager {
		id, err := uc.resolver.ManagerUserID(ctx, sale.ManagerID)
		if err != nil {
			uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo resolver el usuario del manager")
		} else if id != "" {
			out = append(out, recipient{id: id, role: entity.RoleManager})
		}
	}
	if agent {
		id, err := uc.resolver.AgentUserID(ctx, sale.AgentID)
		if err != nil {
			uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo resolver el usuario del agente")
		} else if id != "" {
			out = append(out, recipient{id: id, role: entity.RoleAgent})
		}
	}
	return out
}

func (uc *UseCase) send(r recipient, pos *hierarchy.Position, typ entity.NotificationType, title, msg string, sale *entity.Sale, prio entity.Priority) {
	uc.notifier.Notify(entity.Notification{
		RecipientID:   r.id,
		RecipientRole: r.role,
		SenderID:      pos.Principal.UserID,
		Type:          typ,
		Title:         title,
		Message:       msg,
		RefModel:      entity.RefSales,
		RefID:         sale.ID,
		Priority:      prio,
	})
}
