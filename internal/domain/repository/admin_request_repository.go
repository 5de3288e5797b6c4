package repository

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// AdminRequestRepository define el puerto de persistencia para AdminRequest.
type AdminRequestRepository interface {
	Create(ctx context.Context, req *entity.AdminRequest) error
	// ListByUser solicitudes de la cuenta, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.AdminRequest, error)
}
