package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// ManagerRepository define el puerto de persistencia para Manager.
type ManagerRepository interface {
	Create(ctx context.Context, manager *entity.Manager) error
	GetByID(ctx context.Context, id string) (*entity.Manager, error)
	GetByEmail(ctx context.Context, email string) (*entity.Manager, error)
	ListByAdmin(ctx context.Context, adminID string) ([]*entity.Manager, error)
	Update(ctx context.Context, manager *entity.Manager) error
	Delete(ctx context.Context, id string) error
}

// StaffFilter alcance de listado para agentes y workers. OwnerAdmin siempre presente;
// ManagerID vacío = todos los del tenant (incluidos los sin asignar).
type StaffFilter struct {
	OwnerAdmin string
	ManagerID  string
}

// AgentRepository define el puerto de persistencia para Agent.
type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, id string) (*entity.Agent, error)
	GetByEmail(ctx context.Context, email string) (*entity.Agent, error)
	List(ctx context.Context, filter StaffFilter) ([]*entity.Agent, error)
	Update(ctx context.Context, agent *entity.Agent) error
	Delete(ctx context.Context, id string) error
	// AddSale incrementa de forma atómica totalSales en 1 y totalRevenue en revenue.
	AddSale(ctx context.Context, agentID string, revenue decimal.Decimal) error
	// UnassignManager deja sin manager a todos sus agentes (OwnerAdmin se conserva).
	UnassignManager(ctx context.Context, managerID string) error
}

// WorkerRepository define el puerto de persistencia para Worker.
type WorkerRepository interface {
	Create(ctx context.Context, worker *entity.Worker) error
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	List(ctx context.Context, filter StaffFilter) ([]*entity.Worker, error)
	Update(ctx context.Context, worker *entity.Worker) error
	Delete(ctx context.Context, id string) error
	UnassignManager(ctx context.Context, managerID string) error
}
