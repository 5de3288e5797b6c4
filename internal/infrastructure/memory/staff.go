package memory

import (
	"context"
	"sort"

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

// ManagerRepo managers en memoria.
type ManagerRepo struct {
	s *Store
	u *undoLog
}

func (r *ManagerRepo) Create(_ context.Context, m *entity.Manager) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := entity.NormalizeEmail(m.Email)
	for _, existing := range r.s.managers {
		if existing.Email == email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *m
	c.Email = email
	remember(r.u, r.s.managers, c.ID)
	r.s.managers[c.ID] = c
	r.s.touch(c.ID)
	return nil
}

func (r *ManagerRepo) GetByID(_ context.Context, id string) (*entity.Manager, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.managers[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *ManagerRepo) GetByEmail(_ context.Context, email string) (*entity.Manager, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, m := range r.s.managers {
		if m.Email == email {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *ManagerRepo) ListByAdmin(_ context.Context, adminID string) ([]*entity.Manager, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Manager
	for _, m := range r.s.managers {
		if m.AdminID == adminID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *ManagerRepo) Update(_ context.Context, m *entity.Manager) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.managers[m.ID]; !ok {
		return domain.NotFound("manager")
	}
	c := *m
	c.Email = entity.NormalizeEmail(c.Email)
	for id, other := range r.s.managers {
		if id != c.ID && other.Email == c.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	remember(r.u, r.s.managers, c.ID)
	r.s.managers[c.ID] = c
	return nil
}

func (r *ManagerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remember(r.u, r.s.managers, id)
	delete(r.s.managers, id)
	return nil
}

// AgentRepo agentes en memoria.
type AgentRepo struct {
	s *Store
	u *undoLog
}

func (r *AgentRepo) Create(_ context.Context, a *entity.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := entity.NormalizeEmail(a.Email)
	for _, existing := range r.s.agents {
		if existing.Email == email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *a
	c.Email = email
	remember(r.u, r.s.agents, c.ID)
	r.s.agents[c.ID] = c
	r.s.touch(c.ID)
	return nil
}

func (r *AgentRepo) GetByID(_ context.Context, id string) (*entity.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.agents[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AgentRepo) GetByEmail(_ context.Context, email string) (*entity.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, a := range r.s.agents {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AgentRepo) List(_ context.Context, f repository.StaffFilter) ([]*entity.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Agent
	for _, a := range r.s.agents {
		if a.OwnerAdmin != f.OwnerAdmin || (f.ManagerID != "" && a.ManagerID != f.ManagerID) {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *AgentRepo) Update(_ context.Context, a *entity.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.agents[a.ID]; !ok {
		return domain.NotFound("agente")
	}
	c := *a
	c.Email = entity.NormalizeEmail(c.Email)
	for id, other := range r.s.agents {
		if id != c.ID && other.Email == c.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	remember(r.u, r.s.agents, c.ID)
	r.s.agents[c.ID] = c
	return nil
}

func (r *AgentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remember(r.u, r.s.agents, id)
	delete(r.s.agents, id)
	return nil
}

func (r *AgentRepo) AddSale(_ context.Context, agentID string, revenue decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.agents[agentID]
	if !ok {
		return nil
	}
	a.TotalSales++
	a.TotalRevenue = a.TotalRevenue.Add(revenue)
	remember(r.u, r.s.agents, agentID)
	r.s.agents[agentID] = a
	return nil
}

func (r *AgentRepo) UnassignManager(_ context.Context, managerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.agents {
		if a.ManagerID == managerID {
			a.ManagerID = ""
			remember(r.u, r.s.agents, id)
			r.s.agents[id] = a
		}
	}
	return nil
}

// WorkerRepo workers en memoria.
type WorkerRepo struct {
	s *Store
	u *undoLog
}

func (r *WorkerRepo) Create(_ context.Context, w *entity.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *w
	remember(r.u, r.s.workers, c.ID)
	r.s.workers[c.ID] = c
	r.s.touch(c.ID)
	return nil
}

func (r *WorkerRepo) GetByID(_ context.Context, id string) (*entity.Worker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.workers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WorkerRepo) List(_ context.Context, f repository.StaffFilter) ([]*entity.Worker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Worker
	for _, w := range r.s.workers {
		if w.OwnerAdmin != f.OwnerAdmin || (f.ManagerID != "" && w.ManagerID != f.ManagerID) {
			continue
		}
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *WorkerRepo) Update(_ context.Context, w *entity.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workers[w.ID]; !ok {
		return domain.NotFound("worker")
	}
	remember(r.u, r.s.workers, w.ID)
	r.s.workers[w.ID] = *w
	return nil
}

func (r *WorkerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remember(r.u, r.s.workers, id)
	delete(r.s.workers, id)
	return nil
}

func (r *WorkerRepo) UnassignManager(_ context.Context, managerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, w := range r.s.workers {
		if w.ManagerID == managerID {
			w.ManagerID = ""
			remember(r.u, r.s.workers, id)
			r.s.workers[id] = w
		}
	}
	return nil
}
