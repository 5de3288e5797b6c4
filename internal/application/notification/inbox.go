package notification

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// InboxLimit máximo de notificaciones devueltas por listado.
const InboxLimit = 50

// InboxUseCase bandeja de notificaciones del usuario autenticado.
type InboxUseCase struct {
	repo repository.NotificationRepository
}

// NewInboxUseCase construye el caso de uso.
func NewInboxUseCase(repo repository.NotificationRepository) *InboxUseCase {
	return &InboxUseCase{repo: repo}
}

// List últimas notificaciones del usuario, más recientes primero.
func (uc *InboxUseCase) List(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListByRecipient(ctx, userID, InboxLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// UnreadCount número de notificaciones sin leer.
func (uc *InboxUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	return uc.repo.CountUnread(ctx, userID)
}

// MarkRead marca una notificación propia como leída.
func (uc *InboxUseCase) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := uc.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("notificación")
	}
	return nil
}

// MarkAllRead marca todas como leídas y devuelve cuántas cambiaron.
func (uc *InboxUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}

// Delete elimina una notificación propia.
func (uc *InboxUseCase) Delete(ctx context.Context, userID, id string) error {
	ok, err := uc.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("notificación")
	}
	return nil
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		RefModel:  string(n.RefModel),
		RefID:     n.RefID,
		Priority:  string(n.Priority),
		SenderID:  n.SenderID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
