package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var (
	_ repository.ManagerRepository = (*ManagerRepo)(nil)
	_ repository.AgentRepository   = (*AgentRepo)(nil)
	_ repository.WorkerRepository  = (*WorkerRepo)(nil)
)

// ---------- managers ----------

const managerColumns = `id, admin_id, name, email, phone, address, government_id, profile_picture, is_active, created_at, updated_at`

// ManagerRepo managers sobre PostgreSQL.
type ManagerRepo struct {
	q Querier
}

// NewManagerRepository construye el adaptador de managers.
func NewManagerRepository(q Querier) *ManagerRepo {
	return &ManagerRepo{q: q}
}

func (r *ManagerRepo) Create(ctx context.Context, m *entity.Manager) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO managers (id, admin_id, name, email, phone, address, government_id, profile_picture, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.AdminID, m.Name, entity.NormalizeEmail(m.Email), m.Phone, m.Address, m.GovernmentID,
		m.ProfilePicture, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert manager: %w", err)
	}
	return nil
}

func (r *ManagerRepo) GetByID(ctx context.Context, id string) (*entity.Manager, error) {
	return scanManager(r.q.QueryRow(ctx, `SELECT `+managerColumns+` FROM managers WHERE id = $1`, id))
}

func (r *ManagerRepo) GetByEmail(ctx context.Context, email string) (*entity.Manager, error) {
	return scanManager(r.q.QueryRow(ctx, `SELECT `+managerColumns+` FROM managers WHERE email = $1`, entity.NormalizeEmail(email)))
}

func (r *ManagerRepo) ListByAdmin(ctx context.Context, adminID string) ([]*entity.Manager, error) {
	rows, err := r.q.Query(ctx, `SELECT `+managerColumns+` FROM managers WHERE admin_id = $1 ORDER BY created_at DESC`, adminID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manager
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *ManagerRepo) Update(ctx context.Context, m *entity.Manager) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE managers SET name = $2, phone = $3, address = $4, government_id = $5, profile_picture = $6, is_active = $7,
			updated_at = $8, email = $9
		WHERE id = $1`,
		m.ID, m.Name, m.Phone, m.Address, m.GovernmentID, m.ProfilePicture, m.IsActive, m.UpdatedAt,
		entity.NormalizeEmail(m.Email),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update manager: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("manager")
	}
	return nil
}

func (r *ManagerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete manager: %w", err)
	}
	return nil
}

func scanManager(row pgx.Row) (*entity.Manager, error) {
	var m entity.Manager
	err := row.Scan(&m.ID, &m.AdminID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.GovernmentID,
		&m.ProfilePicture, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan manager: %w", err)
	}
	return &m, nil
}

// ---------- agents ----------

const agentColumns = `id, COALESCE(manager_id, ''), owner_admin, name, email, phone, location, address, government_id,
	profile_picture, is_active, total_sales, total_revenue, created_at, updated_at`

// AgentRepo agentes sobre PostgreSQL.
type AgentRepo struct {
	q Querier
}

// NewAgentRepository construye el adaptador de agentes.
func NewAgentRepository(q Querier) *AgentRepo {
	return &AgentRepo{q: q}
}

func (r *AgentRepo) Create(ctx context.Context, a *entity.Agent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO agents (id, manager_id, owner_admin, name, email, phone, location, address, government_id,
			profile_picture, is_active, total_sales, total_revenue, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		a.ID, nullable(a.ManagerID), a.OwnerAdmin, a.Name, entity.NormalizeEmail(a.Email), a.Phone, a.Location,
		a.Address, a.GovernmentID, a.ProfilePicture, a.IsActive, a.TotalSales, a.TotalRevenue, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

func (r *AgentRepo) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	return scanAgent(r.q.QueryRow(ctx, `SELECT `+agentColumns+` FROM agents WHERE id = $1`, id))
}

func (r *AgentRepo) GetByEmail(ctx context.Context, email string) (*entity.Agent, error) {
	return scanAgent(r.q.QueryRow(ctx, `SELECT `+agentColumns+` FROM agents WHERE email = $1`, entity.NormalizeEmail(email)))
}

func (r *AgentRepo) List(ctx context.Context, f repository.StaffFilter) ([]*entity.Agent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+agentColumns+` FROM agents
		WHERE owner_admin = $1 AND ($2 = '' OR manager_id = $2)
		ORDER BY created_at DESC`, f.OwnerAdmin, f.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AgentRepo) Update(ctx context.Context, a *entity.Agent) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE agents SET manager_id = $2, name = $3, phone = $4, location = $5, address = $6, government_id = $7,
			profile_picture = $8, is_active = $9, updated_at = $10, email = $11
		WHERE id = $1`,
		a.ID, nullable(a.ManagerID), a.Name, a.Phone, a.Location, a.Address, a.GovernmentID,
		a.ProfilePicture, a.IsActive, a.UpdatedAt, entity.NormalizeEmail(a.Email),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update agent: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("agente")
	}
	return nil
}

func (r *AgentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	return nil
}

// AddSale incremento atómico en SQL; no lee-modifica-escribe.
func (r *AgentRepo) AddSale(ctx context.Context, agentID string, revenue decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		UPDATE agents SET total_sales = total_sales + 1, total_revenue = total_revenue + $2, updated_at = now()
		WHERE id = $1`, agentID, revenue)
	if err != nil {
		return fmt.Errorf("add agent sale: %w", err)
	}
	return nil
}

func (r *AgentRepo) UnassignManager(ctx context.Context, managerID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE agents SET manager_id = NULL, updated_at = now() WHERE manager_id = $1`, managerID); err != nil {
		return fmt.Errorf("unassign agents: %w", err)
	}
	return nil
}

func scanAgent(row pgx.Row) (*entity.Agent, error) {
	var a entity.Agent
	err := row.Scan(&a.ID, &a.ManagerID, &a.OwnerAdmin, &a.Name, &a.Email, &a.Phone, &a.Location, &a.Address,
		&a.GovernmentID, &a.ProfilePicture, &a.IsActive, &a.TotalSales, &a.TotalRevenue, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan agent: %w", err)
	}
	return &a, nil
}

// ---------- workers ----------

const workerColumns = `id, COALESCE(manager_id, ''), owner_admin, name, email, phone, address, department, position,
	profile_picture, is_active, created_at, updated_at`

// WorkerRepo workers sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador de workers.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO workers (id, manager_id, owner_admin, name, email, phone, address, department, position,
			profile_picture, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		w.ID, nullable(w.ManagerID), w.OwnerAdmin, w.Name, w.Email, w.Phone, w.Address, w.Department, w.Position,
		w.ProfilePicture, w.IsActive, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	return scanWorker(r.q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
}

func (r *WorkerRepo) List(ctx context.Context, f repository.StaffFilter) ([]*entity.Worker, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+workerColumns+` FROM workers
		WHERE owner_admin = $1 AND ($2 = '' OR manager_id = $2)
		ORDER BY created_at DESC`, f.OwnerAdmin, f.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE workers SET manager_id = $2, name = $3, email = $4, phone = $5, address = $6, department = $7,
			position = $8, profile_picture = $9, is_active = $10, updated_at = $11
		WHERE id = $1`,
		w.ID, nullable(w.ManagerID), w.Name, w.Email, w.Phone, w.Address, w.Department, w.Position,
		w.ProfilePicture, w.IsActive, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("worker")
	}
	return nil
}

func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	return nil
}

func (r *WorkerRepo) UnassignManager(ctx context.Context, managerID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE workers SET manager_id = NULL, updated_at = now() WHERE manager_id = $1`, managerID); err != nil {
		return fmt.Errorf("unassign workers: %w", err)
	}
	return nil
}

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var w entity.Worker
	err := row.Scan(&w.ID, &w.ManagerID, &w.OwnerAdmin, &w.Name, &w.Email, &w.Phone, &w.Address, &w.Department,
		&w.Position, &w.ProfilePicture, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan worker: %w", err)
	}
	return &w, nil
}
