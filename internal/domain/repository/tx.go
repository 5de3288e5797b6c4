package repository

import "context"

// Repositories repositorios atados a una misma unidad transaccional.
type Repositories struct {
	Users    UserRepository
	Managers ManagerRepository
	Agents   AgentRepository
	Workers  WorkerRepository
	Products ProductRepository
	Sales    SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repositories) error) error
}
