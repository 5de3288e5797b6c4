package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// CreateAgent crea User (rol agent, createdByAdmin = admin del tenant) y Agent en una sola transacción:
// si falla el perfil, la cuenta no queda creada. Un manager crea agentes propios; el admin puede
// indicar managerId de su tenant o dejarlo sin asignar.
func (uc *UseCase) CreateAgent(ctx context.Context, p entity.Principal, in dto.CreateAgentRequest) (*dto.ProvisionedResponse[dto.AgentResponse], error) {
	pos, err := uc.supervisor(ctx, p)
	if err != nil {
		return nil, err
	}
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	manager := pos.Manager
	if pos.Role == entity.RoleAdmin {
		if manager, err = uc.tenantManager(ctx, pos.OwnerAdmin, strings.TrimSpace(in.ManagerID)); err != nil {
			return nil, err
		}
	}

	email := entity.NormalizeEmail(in.Email)
	user, plain, err := uc.newLogin(ctx, name, email, strings.TrimSpace(in.Phone), entity.RoleAgent, pos.OwnerAdmin)
	if err != nil {
		return nil, err
	}
	a := &entity.Agent{
		ID:             uc.newID(),
		OwnerAdmin:     pos.OwnerAdmin,
		Name:           name,
		Email:          email,
		Phone:          user.Phone,
		Location:       strings.TrimSpace(in.Location),
		Address:        strings.TrimSpace(in.Address),
		GovernmentID:   strings.TrimSpace(in.GovernmentID),
		ProfilePicture: in.ProfilePicture,
		IsActive:       true,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.CreatedAt,
	}
	if manager != nil {
		a.ManagerID = manager.ID
	}
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Agents.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	delivery := uc.deliver(ctx, user, plain)
	msg := fmt.Sprintf("%s creó el agente %s", pos.ActorLabel(), a.Name)
	uc.notify(pos.OwnerAdmin, entity.RoleAdmin, p, entity.NotifyNewAgent, "Nuevo agente", msg, entity.RefAgent, a.ID)
	if managerUser, err := uc.resolver.ManagerUserID(ctx, a.ManagerID); err != nil {
		uc.log.Warn().Err(err).Str("agent_id", a.ID).Msg("no se pudo resolver el usuario del manager")
	} else {
		uc.notify(managerUser, entity.RoleManager, p, entity.NotifyNewAgent, "Nuevo agente", msg, entity.RefAgent, a.ID)
	}
	return &dto.ProvisionedResponse[dto.AgentResponse]{
		Message:  "Agente creado correctamente",
		Data:     toAgentResponse(a),
		Delivery: delivery,
	}, nil
}

// ListAgents admin: todos los agentes del tenant (incluidos sin asignar); manager: los suyos.
func (uc *UseCase) ListAgents(ctx context.Context, p entity.Principal) ([]dto.AgentResponse, error) {
	pos, err := uc.supervisor(ctx, p)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Agents.List(ctx, staffFilter(pos))
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAgentResponse(a))
	}
	return out, nil
}

// GetAgent agente por id dentro del alcance.
func (uc *UseCase) GetAgent(ctx context.Context, p entity.Principal, id string) (*dto.AgentResponse, error) {
	_, a, err := uc.scopedAgent(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

// AgentMe perfil y acumulados del propio agente.
func (uc *UseCase) AgentMe(ctx context.Context, p entity.Principal) (*dto.AgentResponse, error) {
	if !p.Is(entity.RoleAgent) {
		return nil, domain.Forbidden("solo disponible para agentes")
	}
	pos, err := uc.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	out := toAgentResponse(pos.Agent)
	return &out, nil
}

// UpdateAgent edición parcial. Solo el admin reasigna managerId (dentro del tenant, "" desasigna).
func (uc *UseCase) UpdateAgent(ctx context.Context, p entity.Principal, id string, in dto.UpdateAgentRequest) (*dto.AgentResponse, error) {
	pos, a, err := uc.scopedAgent(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.ManagerID != nil {
		if pos.Role != entity.RoleAdmin {
			return nil, domain.Forbidden("solo el admin reasigna agentes")
		}
		m, err := uc.tenantManager(ctx, pos.OwnerAdmin, strings.TrimSpace(*in.ManagerID))
		if err != nil {
			return nil, err
		}
		a.ManagerID = ""
		if m != nil {
			a.ManagerID = m.ID
		}
	}
	if in.Name != nil {
		if a.Name, err = requireName(*in.Name); err != nil {
			return nil, err
		}
	}
	set(&a.Phone, in.Phone)
	set(&a.Location, in.Location)
	set(&a.Address, in.Address)
	set(&a.GovernmentID, in.GovernmentID)
	set(&a.ProfilePicture, in.ProfilePicture)
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	a.UpdatedAt = uc.now()
	if err := uc.repos.Agents.Update(ctx, a); err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

// DeleteAgent borra el agente y su login. Sus ventas se conservan.
func (uc *UseCase) DeleteAgent(ctx context.Context, p entity.Principal, id string) error {
	_, a, err := uc.scopedAgent(ctx, p, id)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Agents.Delete(ctx, a.ID); err != nil {
			return err
		}
		return deleteLogin(ctx, tx.Users, a.Email)
	})
}

// ResetAgentPassword genera una nueva contraseña temporal y la vuelve a entregar.
func (uc *UseCase) ResetAgentPassword(ctx context.Context, p entity.Principal, id string) (*dto.DeliveryResult, error) {
	_, a, err := uc.scopedAgent(ctx, p, id)
	if err != nil {
		return nil, err
	}
	user, err := uc.repos.Users.GetByEmail(ctx, a.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	plain, hash, err := uc.newPassword()
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	if err := uc.repos.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	res := uc.deliver(ctx, user, plain)
	return &res, nil
}

// scopedAgent carga un agente visible para el llamador; fuera de alcance es NotFound.
func (uc *UseCase) scopedAgent(ctx context.Context, p entity.Principal, id string) (*hierarchy.Position, *entity.Agent, error) {
	pos, err := uc.supervisor(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	a, err := uc.repos.Agents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a == nil || !inScope(pos, a.OwnerAdmin, a.ManagerID) {
		return nil, nil, domain.NotFound("agente")
	}
	return pos, a, nil
}

func staffFilter(pos *hierarchy.Position) repository.StaffFilter {
	f := repository.StaffFilter{OwnerAdmin: pos.OwnerAdmin}
	if pos.Role == entity.RoleManager {
		f.ManagerID = pos.ManagerID()
	}
	return f
}

func inScope(pos *hierarchy.Position, ownerAdmin, managerID string) bool {
	if ownerAdmin == "" || ownerAdmin != pos.OwnerAdmin {
		return false
	}
	return pos.Role == entity.RoleAdmin || managerID == pos.ManagerID()
}

func toAgentResponse(a *entity.Agent) dto.AgentResponse {
	return dto.AgentResponse{
		ID:             a.ID,
		ManagerID:      a.ManagerID,
		OwnerAdmin:     a.OwnerAdmin,
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		Location:       a.Location,
		Address:        a.Address,
		GovernmentID:   a.GovernmentID,
		ProfilePicture: a.ProfilePicture,
		IsActive:       a.IsActive,
		TotalSales:     a.TotalSales,
		TotalRevenue:   a.TotalRevenue,
		CreatedAt:      a.CreatedAt,
	}
}
