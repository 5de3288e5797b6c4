package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único (normalizado).
type UserRepo struct {
	s *Store
	u *undoLog
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == entity.NormalizeEmail(user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u := *user
	u.Email = entity.NormalizeEmail(u.Email)
	remember(r.u, r.s.users, u.ID)
	r.s.users[u.ID] = u
	r.s.touch(u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByCreator(_ context.Context, adminID string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.CreatedByAdmin == adminID {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u := *user
	u.Email = entity.NormalizeEmail(u.Email)
	for id, other := range r.s.users {
		if id != u.ID && other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	remember(r.u, r.s.users, u.ID)
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remember(r.u, r.s.users, id)
	delete(r.s.users, id)
	return nil
}
