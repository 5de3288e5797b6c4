package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// CreateWorker alta de personal sin login. Departamento y cargo por defecto: general / worker.
func (uc *UseCase) CreateWorker(ctx context.Context, p entity.Principal, in dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
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
	now := uc.now()
	w := &entity.Worker{
		ID:             uc.newID(),
		OwnerAdmin:     pos.OwnerAdmin,
		Name:           name,
		Email:          entity.NormalizeEmail(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		Department:     strings.TrimSpace(in.Department),
		Position:       strings.TrimSpace(in.Position),
		ProfilePicture: in.ProfilePicture,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if w.Department == "" {
		w.Department = entity.DefaultWorkerDepartment
	}
	if w.Position == "" {
		w.Position = entity.DefaultWorkerPosition
	}
	if manager != nil {
		w.ManagerID = manager.ID
	}
	if err := uc.repos.Workers.Create(ctx, w); err != nil {
		return nil, err
	}
	if pos.Role == entity.RoleManager {
		uc.notify(pos.OwnerAdmin, entity.RoleAdmin, p, entity.NotifyNewWorker, "Nuevo worker",
			fmt.Sprintf("%s registró al worker %s", pos.ActorLabel(), w.Name), entity.RefWorker, w.ID)
	}
	out := toWorkerResponse(w)
	return &out, nil
}

// ListWorkers mismo alcance que ListAgents.
func (uc *UseCase) ListWorkers(ctx context.Context, p entity.Principal) ([]dto.WorkerResponse, error) {
	pos, err := uc.supervisor(ctx, p)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Workers.List(ctx, staffFilter(pos))
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkerResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWorkerResponse(w))
	}
	return out, nil
}

// GetWorker worker por id dentro del alcance.
func (uc *UseCase) GetWorker(ctx context.Context, p entity.Principal, id string) (*dto.WorkerResponse, error) {
	_, w, err := uc.scopedWorker(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := toWorkerResponse(w)
	return &out, nil
}

// UpdateWorker edición parcial; solo el admin reasigna managerId.
func (uc *UseCase) UpdateWorker(ctx context.Context, p entity.Principal, id string, in dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	pos, w, err := uc.scopedWorker(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.ManagerID != nil {
		if pos.Role != entity.RoleAdmin {
			return nil, domain.Forbidden("solo el admin reasigna workers")
		}
		m, err := uc.tenantManager(ctx, pos.OwnerAdmin, strings.TrimSpace(*in.ManagerID))
		if err != nil {
			return nil, err
		}
		w.ManagerID = ""
		if m != nil {
			w.ManagerID = m.ID
		}
	}
	if in.Name != nil {
		if w.Name, err = requireName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		w.Email = entity.NormalizeEmail(*in.Email)
	}
	set(&w.Phone, in.Phone)
	set(&w.Address, in.Address)
	set(&w.Department, in.Department)
	set(&w.Position, in.Position)
	set(&w.ProfilePicture, in.ProfilePicture)
	if w.Department == "" {
		w.Department = entity.DefaultWorkerDepartment
	}
	if w.Position == "" {
		w.Position = entity.DefaultWorkerPosition
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	w.UpdatedAt = uc.now()
	if err := uc.repos.Workers.Update(ctx, w); err != nil {
		return nil, err
	}
	out := toWorkerResponse(w)
	return &out, nil
}

// DeleteWorker borrado físico dentro del alcance.
func (uc *UseCase) DeleteWorker(ctx context.Context, p entity.Principal, id string) error {
	_, w, err := uc.scopedWorker(ctx, p, id)
	if err != nil {
		return err
	}
	return uc.repos.Workers.Delete(ctx, w.ID)
}

func (uc *UseCase) scopedWorker(ctx context.Context, p entity.Principal, id string) (*hierarchy.Position, *entity.Worker, error) {
	pos, err := uc.supervisor(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	w, err := uc.repos.Workers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if w == nil || !inScope(pos, w.OwnerAdmin, w.ManagerID) {
		return nil, nil, domain.NotFound("worker")
	}
	return pos, w, nil
}

func toWorkerResponse(w *entity.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:             w.ID,
		ManagerID:      w.ManagerID,
		OwnerAdmin:     w.OwnerAdmin,
		Name:           w.Name,
		Email:          w.Email,
		Phone:          w.Phone,
		Address:        w.Address,
		Department:     w.Department,
		Position:       w.Position,
		ProfilePicture: w.ProfilePicture,
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt,
	}
}
