// Package hierarchy resuelve la posición de un principal en la jerarquía admin → manager → agente:
// el admin dueño (tenant) y el predicado de alcance para ventas. Se recalcula en cada petición.
package hierarchy

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// Position posición resuelta de un principal.
// Manager es el perfil del propio manager o el manager del agente (nil si no tiene).
type Position struct {
	Principal  entity.Principal
	Role       string
	OwnerAdmin string
	Manager    *entity.Manager
	Agent      *entity.Agent
}

// Scope predicado de visibilidad de ventas para esta posición.
func (p *Position) Scope() entity.SaleScope {
	switch p.Role {
	case entity.RoleManager:
		return entity.SaleScope{OwnerAdmin: p.OwnerAdmin, ManagerID: p.Manager.ID}
	case entity.RoleAgent:
		return entity.SaleScope{OwnerAdmin: p.OwnerAdmin, AgentID: p.Agent.ID}
	default:
		return entity.SaleScope{OwnerAdmin: p.OwnerAdmin}
	}
}

// ManagerID id del manager asociado ("" si no hay).
func (p *Position) ManagerID() string {
	if p.Manager == nil {
		return ""
	}
	return p.Manager.ID
}

// AgentID id del agente ("" si el principal no es agente).
func (p *Position) AgentID() string {
	if p.Agent == nil {
		return ""
	}
	return p.Agent.ID
}

// ActorLabel etiqueta legible del actor para los mensajes de notificación.
func (p *Position) ActorLabel() string {
	switch p.Role {
	case entity.RoleAgent:
		return "Agente " + p.Agent.Name
	case entity.RoleManager:
		return "Manager " + p.Manager.Name
	default:
		return "Admin"
	}
}

// Resolver deriva tenant y alcance a partir de las relaciones guardadas. No muta nada.
type Resolver struct {
	users    repository.UserRepository
	managers repository.ManagerRepository
	agents   repository.AgentRepository
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository, managers repository.ManagerRepository, agents repository.AgentRepository) *Resolver {
	return &Resolver{users: users, managers: managers, agents: agents}
}

// Resolve ubica al principal en la jerarquía.
// Un eslabón roto (perfil inexistente) es domain.ErrNotFound; un rol sin alcance es domain.ErrForbidden.
func (r *Resolver) Resolve(ctx context.Context, p entity.Principal) (*Position, error) {
	role := entity.NormalizeRole(p.Role)
	pos := &Position{Principal: p, Role: role}

	switch role {
	case entity.RoleAdmin:
		if p.UserID == "" {
			return nil, domain.ErrUnauthorized
		}
		pos.OwnerAdmin = p.UserID
		return pos, nil

	case entity.RoleManager:
		m, err := r.managers.GetByEmail(ctx, p.Email)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.NotFound("perfil de manager")
		}
		pos.Manager = m
		pos.OwnerAdmin = m.AdminID
		return pos, nil

	case entity.RoleAgent:
		a, err := r.agents.GetByEmail(ctx, p.Email)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.NotFound("perfil de agente")
		}
		pos.Agent = a
		if a.ManagerID != "" {
			m, err := r.managers.GetByID(ctx, a.ManagerID)
			if err != nil {
				return nil, err
			}
			if m != nil {
				pos.Manager = m
				pos.OwnerAdmin = m.AdminID
			}
		}
		if pos.OwnerAdmin == "" {
			owner, err := r.createdByAdmin(ctx, p.UserID)
			if err != nil {
				return nil, err
			}
			pos.OwnerAdmin = owner
		}
		return pos, nil
	}
	return nil, domain.Forbidden("el rol no tiene alcance sobre estos datos")
}

// createdByAdmin admin que aprovisionó la cuenta (agente sin manager).
func (r *Resolver) createdByAdmin(ctx context.Context, userID string) (string, error) {
	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil || u.CreatedByAdmin == "" {
		return "", domain.NotFound("admin del agente")
	}
	return u.CreatedByAdmin, nil
}

// ResolveOwnerAdmin admin dueño del principal.
func (r *Resolver) ResolveOwnerAdmin(ctx context.Context, p entity.Principal) (string, error) {
	pos, err := r.Resolve(ctx, p)
	if err != nil {
		return "", err
	}
	return pos.OwnerAdmin, nil
}

// ResolveScope predicado de alcance del principal.
func (r *Resolver) ResolveScope(ctx context.Context, p entity.Principal) (entity.SaleScope, error) {
	pos, err := r.Resolve(ctx, p)
	if err != nil {
		return entity.SaleScope{}, err
	}
	return pos.Scope(), nil
}

// ManagerUserID id del usuario (login) de un manager; "" si no existe el manager o su cuenta.
func (r *Resolver) ManagerUserID(ctx context.Context, managerID string) (string, error) {
	if managerID == "" {
		return "", nil
	}
	m, err := r.managers.GetByID(ctx, managerID)
	if err != nil || m == nil {
		return "", err
	}
	return r.userIDByEmail(ctx, m.Email)
}

// AgentUserID id del usuario (login) de un agente; "" si no existe.
func (r *Resolver) AgentUserID(ctx context.Context, agentID string) (string, error) {
	if agentID == "" {
		return "", nil
	}
	a, err := r.agents.GetByID(ctx, agentID)
	if err != nil || a == nil {
		return "", err
	}
	return r.userIDByEmail(ctx, a.Email)
}

func (r *Resolver) userIDByEmail(ctx context.Context, email string) (string, error) {
	u, err := r.users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", err
	}
	return u.ID, nil
}
