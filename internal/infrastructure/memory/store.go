// Package memory implementa los repositorios en memoria (tests y APP_STORE=memory).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// Store guarda todas las entidades en mapas protegidos por un RWMutex.
// Los repositorios devuelven copias; nunca punteros a los valores internos.
type Store struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	users         map[string]entity.User
	managers      map[string]entity.Manager
	agents        map[string]entity.Agent
	workers       map[string]entity.Worker
	products      map[string]entity.Product
	sales         map[string]entity.Sale
	notifications map[string]entity.Notification
	adminRequests map[string]entity.AdminRequest
	seq           int64 // orden de inserción para listados estables
	order         map[string]int64
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		users:         map[string]entity.User{},
		managers:      map[string]entity.Manager{},
		agents:        map[string]entity.Agent{},
		workers:       map[string]entity.Worker{},
		products:      map[string]entity.Product{},
		sales:         map[string]entity.Sale{},
		notifications: map[string]entity.Notification{},
		adminRequests: map[string]entity.AdminRequest{},
		order:         map[string]int64{},
	}
}

// Repositories devuelve el conjunto de repositorios sobre este store.
func (s *Store) Repositories() repository.Repositories {
	return s.repositories(nil)
}

// repositories con u no nil registra cada escritura para poder deshacerla.
func (s *Store) repositories(u *undoLog) repository.Repositories {
	return repository.Repositories{
		Users:    &UserRepo{s: s, u: u},
		Managers: &ManagerRepo{s: s, u: u},
		Agents:   &AgentRepo{s: s, u: u},
		Workers:  &WorkerRepo{s: s, u: u},
		Products: &ProductRepo{s: s, u: u},
		Sales:    &SaleRepo{s: s, u: u},
	}
}

// Notifications repositorio de notificaciones.
func (s *Store) Notifications() *NotificationRepo {
	return &NotificationRepo{s: s}
}

// AdminRequests repositorio de solicitudes de alta (fuera de las transacciones).
func (s *Store) AdminRequests() *AdminRequestRepo {
	return &AdminRequestRepo{s: s}
}

// TxRunner runner transaccional sobre el store.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{s: s}
}

// touch registra el orden de inserción de id. Requiere s.mu tomado en escritura.
func (s *Store) touch(id string) {
	s.seq++
	s.order[id] = s.seq
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y, si fn falla, deshace solo las escrituras hechas
// con los repositorios de la transacción. Las escrituras concurrentes de fuera se conservan.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repositorios atados a la transacción y hace rollback si devuelve error.
func (r *TxRunner) Run(_ context.Context, fn func(tx repository.Repositories) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	u := &undoLog{}
	if err := fn(r.s.repositories(u)); err != nil {
		r.s.mu.Lock()
		u.rollback()
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// undoLog pasos para restaurar, en orden inverso, cada clave escrita en la transacción.
type undoLog struct {
	steps []func()
}

func (u *undoLog) rollback() {
	for i := len(u.steps) - 1; i >= 0; i-- {
		u.steps[i]()
	}
}

// remember guarda el valor previo de m[k] antes de escribirlo. Requiere s.mu tomado en escritura.
func remember[K comparable, V any](u *undoLog, m map[K]V, k K) {
	if u == nil {
		return
	}
	old, had := m[k]
	u.steps = append(u.steps, func() {
		if had {
			m[k] = old
		} else {
			delete(m, k)
		}
	})
}
