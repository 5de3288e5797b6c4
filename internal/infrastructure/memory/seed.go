package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// Tenant árbol mínimo admin → manager → agente creado por SeedTenant.
type Tenant struct {
	Admin       entity.User
	ManagerUser entity.User
	Manager     entity.Manager
	AgentUser   entity.User
	Agent       entity.Agent
}

// AdminPrincipal principal del admin del tenant.
func (t Tenant) AdminPrincipal() entity.Principal {
	return entity.Principal{UserID: t.Admin.ID, Email: t.Admin.Email, Role: entity.RoleAdmin}
}

// ManagerPrincipal principal del manager del tenant.
func (t Tenant) ManagerPrincipal() entity.Principal {
	return entity.Principal{UserID: t.ManagerUser.ID, Email: t.ManagerUser.Email, Role: entity.RoleManager}
}

// AgentPrincipal principal del agente del tenant.
func (t Tenant) AgentPrincipal() entity.Principal {
	return entity.Principal{UserID: t.AgentUser.ID, Email: t.AgentUser.Email, Role: entity.RoleAgent}
}

// SeedTenant crea un tenant con ids y emails deterministas derivados de name
// (ej. name="t1": admin "t1-admin" / admin@t1.test). passwordHash se usa para las tres cuentas.
func (s *Store) SeedTenant(name, passwordHash string) Tenant {
	now := time.Now().UTC()
	t := Tenant{
		Admin: entity.User{
			ID: name + "-admin", Name: "Admin " + name, Email: "admin@" + name + ".test",
			PasswordHash: passwordHash, Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now,
		},
		ManagerUser: entity.User{
			ID: name + "-manager-user", Name: "Manager " + name, Email: "manager@" + name + ".test",
			PasswordHash: passwordHash, Role: entity.RoleManager, CreatedByAdmin: name + "-admin",
			CreatedAt: now, UpdatedAt: now,
		},
		Manager: entity.Manager{
			ID: name + "-manager", AdminID: name + "-admin", Name: "Manager " + name,
			Email: "manager@" + name + ".test", IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
		AgentUser: entity.User{
			ID: name + "-agent-user", Name: "Agente " + name, Email: "agent@" + name + ".test",
			PasswordHash: passwordHash, Role: entity.RoleAgent, CreatedByAdmin: name + "-admin",
			CreatedAt: now, UpdatedAt: now,
		},
		Agent: entity.Agent{
			ID: name + "-agent", ManagerID: name + "-manager", OwnerAdmin: name + "-admin",
			Name: "Agente " + name, Email: "agent@" + name + ".test", IsActive: true,
			TotalRevenue: decimal.Zero, CreatedAt: now, UpdatedAt: now,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range []entity.User{t.Admin, t.ManagerUser, t.AgentUser} {
		s.users[u.ID] = u
		s.touch(u.ID)
	}
	s.managers[t.Manager.ID] = t.Manager
	s.touch(t.Manager.ID)
	s.agents[t.Agent.ID] = t.Agent
	s.touch(t.Agent.ID)
	return t
}
