package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.AdminRequestRepository = (*AdminRequestRepo)(nil)

// AdminRequestRepo solicitudes de alta en memoria.
type AdminRequestRepo struct {
	s *Store
}

func (r *AdminRequestRepo) Create(_ context.Context, req *entity.AdminRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.adminRequests[req.ID] = *req
	r.s.touch(req.ID)
	return nil
}

func (r *AdminRequestRepo) ListByUser(_ context.Context, userID string) ([]*entity.AdminRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.AdminRequest
	for _, req := range r.s.adminRequests {
		if req.UserID == userID {
			req := req
			out = append(out, &req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}
