package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// CreateManager crea el perfil Manager y su login (rol manager) en una transacción,
// entrega las credenciales y deja constancia en el buzón del admin.
func (uc *UseCase) CreateManager(ctx context.Context, p entity.Principal, in dto.CreateManagerRequest) (*dto.ProvisionedResponse[dto.ManagerResponse], error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin crea managers")
	}
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)
	user, plain, err := uc.newLogin(ctx, name, email, strings.TrimSpace(in.Phone), entity.RoleManager, p.UserID)
	if err != nil {
		return nil, err
	}
	m := &entity.Manager{
		ID:             uc.newID(),
		AdminID:        p.UserID,
		Name:           name,
		Email:          email,
		Phone:          user.Phone,
		Address:        strings.TrimSpace(in.Address),
		GovernmentID:   strings.TrimSpace(in.GovernmentID),
		ProfilePicture: in.ProfilePicture,
		IsActive:       true,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.CreatedAt,
	}
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Managers.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	delivery := uc.deliver(ctx, user, plain)
	uc.notifier.Notify(entity.Notification{
		RecipientID:   p.UserID,
		RecipientRole: entity.RoleAdmin,
		SenderID:      p.UserID,
		Type:          entity.NotifyNewManager,
		Title:         "Nuevo manager",
		Message:       fmt.Sprintf("Se creó el manager %s", m.Name),
		RefModel:      entity.RefManager,
		RefID:         m.ID,
	})
	return &dto.ProvisionedResponse[dto.ManagerResponse]{
		Message:  "Manager creado correctamente",
		Data:     toManagerResponse(m),
		Delivery: delivery,
	}, nil
}

// ListManagers managers del admin, más recientes primero.
func (uc *UseCase) ListManagers(ctx context.Context, p entity.Principal) ([]dto.ManagerResponse, error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin lista managers")
	}
	list, err := uc.repos.Managers.ListByAdmin(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ManagerResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toManagerResponse(m))
	}
	return out, nil
}

// GetManager manager del admin por id.
func (uc *UseCase) GetManager(ctx context.Context, p entity.Principal, id string) (*dto.ManagerResponse, error) {
	m, err := uc.ownManager(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := toManagerResponse(m)
	return &out, nil
}

// UpdateManager edición parcial del perfil. El email (clave de login) no se modifica.
func (uc *UseCase) UpdateManager(ctx context.Context, p entity.Principal, id string, in dto.UpdateManagerRequest) (*dto.ManagerResponse, error) {
	m, err := uc.ownManager(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if m.Name, err = requireName(*in.Name); err != nil {
			return nil, err
		}
	}
	set(&m.Phone, in.Phone)
	set(&m.Address, in.Address)
	set(&m.GovernmentID, in.GovernmentID)
	set(&m.ProfilePicture, in.ProfilePicture)
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = uc.now()
	if err := uc.repos.Managers.Update(ctx, m); err != nil {
		return nil, err
	}
	out := toManagerResponse(m)
	return &out, nil
}

// DeleteManager borra el manager y su login; sus agentes y workers quedan sin asignar dentro del tenant.
func (uc *UseCase) DeleteManager(ctx context.Context, p entity.Principal, id string) error {
	m, err := uc.ownManager(ctx, p, id)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Agents.UnassignManager(ctx, m.ID); err != nil {
			return err
		}
		if err := tx.Workers.UnassignManager(ctx, m.ID); err != nil {
			return err
		}
		if err := tx.Managers.Delete(ctx, m.ID); err != nil {
			return err
		}
		return deleteLogin(ctx, tx.Users, m.Email)
	})
}

func (uc *UseCase) ownManager(ctx context.Context, p entity.Principal, id string) (*entity.Manager, error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin gestiona managers")
	}
	m, err := uc.repos.Managers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || m.AdminID != p.UserID {
		return nil, domain.NotFound("manager")
	}
	return m, nil
}

func toManagerResponse(m *entity.Manager) dto.ManagerResponse {
	return dto.ManagerResponse{
		ID:             m.ID,
		AdminID:        m.AdminID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		GovernmentID:   m.GovernmentID,
		ProfilePicture: m.ProfilePicture,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}
