package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/notification"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// failingRepo falla siempre en Create.
type failingRepo struct {
	*memory.NotificationRepo
	mu    sync.Mutex
	calls int
}

func (r *failingRepo) Create(context.Context, *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return errors.New("db caída")
}

// blockingRepo bloquea Create hasta que se cierre release.
type blockingRepo struct {
	*memory.NotificationRepo
	release chan struct{}
}

func (r *blockingRepo) Create(ctx context.Context, n *entity.Notification) error {
	<-r.release
	return r.NotificationRepo.Create(ctx, n)
}

func TestDispatcher_PersisteYCompletaCampos(t *testing.T) {
	repo := memory.New().Notifications()
	d := notification.NewDispatcher(repo, logger.Nop(), notification.Config{QueueSize: 8, Workers: 2})

	d.Notify(entity.Notification{RecipientID: "u1", Type: entity.NotifyProductPicked, Title: "t", RefModel: entity.RefSales, RefID: "s1"})
	d.Notify(entity.Notification{RecipientID: "", Type: entity.NotifyAlert})
	d.Close()

	list, err := repo.ListByRecipient(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].CreatedAt.IsZero())
	assert.Equal(t, entity.PriorityNormal, list[0].Priority)
	assert.Equal(t, "s1", list[0].RefID)
}

func TestDispatcher_FalloDeEscrituraNoPropaga(t *testing.T) {
	repo := &failingRepo{NotificationRepo: memory.New().Notifications()}
	d := notification.NewDispatcher(repo, logger.Nop(), notification.Config{QueueSize: 4, Workers: 1})

	assert.NotPanics(t, func() {
		d.Notify(entity.Notification{RecipientID: "u1", Type: entity.NotifyAlert})
	})
	d.Close()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.calls)
}

func TestDispatcher_ColaLlenaDescartaSinBloquear(t *testing.T) {
	repo := &blockingRepo{NotificationRepo: memory.New().Notifications(), release: make(chan struct{})}
	d := notification.NewDispatcher(repo, logger.Nop(), notification.Config{QueueSize: 1, Workers: 1})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Notify(entity.Notification{RecipientID: "u1", Type: entity.NotifyAlert})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify no debe bloquear con la cola llena")
	}

	close(repo.release)
	d.Close()

	n, err := repo.CountUnread(context.Background(), "u1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.Less(t, n, 10, "las que no cupieron en la cola se descartan")
}

func TestDispatcher_NotifyTrasCloseSeDescarta(t *testing.T) {
	repo := memory.New().Notifications()
	d := notification.NewDispatcher(repo, logger.Nop(), notification.Config{})
	d.Close()
	d.Close()

	assert.NotPanics(t, func() { d.Notify(entity.Notification{RecipientID: "u1"}) })
}

func TestInbox_OperacionesAcotadasAlUsuario(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Notifications()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n1", RecipientID: "u1", Type: entity.NotifyProductSold, Priority: entity.PriorityNormal, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n2", RecipientID: "u1", Type: entity.NotifyAlert, Priority: entity.PriorityHigh, CreatedAt: now.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n3", RecipientID: "u2", CreatedAt: now}))
	uc := notification.NewInboxUseCase(repo)

	list, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)

	assert.ErrorIs(t, uc.MarkRead(ctx, "u1", "n3"), domain.ErrNotFound)
	require.NoError(t, uc.MarkRead(ctx, "u1", "n1"))

	count, err := uc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	changed, err := uc.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	assert.ErrorIs(t, uc.Delete(ctx, "u2", "n1"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, "u1", "n1"))
}
