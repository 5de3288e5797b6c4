package repository

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByCreator cuentas aprovisionadas por el admin, más recientes primero.
	ListByCreator(ctx context.Context, adminID string) ([]*entity.User, error)
	// Update persiste todos los campos; un email ya usado por otra cuenta es ErrEmailAlreadyExists.
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
