// Package notification persiste notificaciones fuera del camino crítico (cola acotada + workers)
// y expone la bandeja de cada destinatario.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
	"github.com/jhoicas/retail-ops-api/pkg/metrics"
)

// Notifier puerto que usan los casos de uso para emitir notificaciones.
// Notify nunca bloquea ni devuelve error al llamador.
type Notifier interface {
	Notify(n entity.Notification)
}

// Config tamaño de cola, número de workers y timeout por escritura.
type Config struct {
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
}

// Dispatcher cola acotada de notificaciones. Los fallos de escritura se registran y se descartan;
// nunca afectan a la operación que las originó. La resolución de destinatarios es del llamador.
type Dispatcher struct {
	repo    repository.NotificationRepository
	log     *logger.Logger
	queue   chan entity.Notification
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher construye el despachador y arranca sus workers.
func NewDispatcher(repo repository.NotificationRepository, log *logger.Logger, cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	d := &Dispatcher{
		repo:    repo,
		log:     log.Named("notifications"),
		queue:   make(chan entity.Notification, cfg.QueueSize),
		timeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Notify encola la notificación. Si no hay destinatario, la cola está llena o el
// despachador está cerrado, se descarta y se registra.
func (d *Dispatcher) Notify(n entity.Notification) {
	if n.RecipientID == "" {
		d.log.Debug().Str("type", string(n.Type)).Msg("notificación sin destinatario descartada")
		return
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Priority == "" {
		n.Priority = entity.PriorityNormal
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.Notifications.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("type", string(n.Type)).Msg("despachador cerrado, notificación descartada")
		return
	}
	select {
	case d.queue <- n:
		metrics.NotificationQueueDepth.Inc()
	default:
		metrics.Notifications.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("type", string(n.Type)).
			Str("recipient", n.RecipientID).
			Msg("cola de notificaciones llena, notificación descartada")
	}
}

// Close deja de aceptar notificaciones y espera a que se persistan las encoladas.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		metrics.NotificationQueueDepth.Dec()
		d.store(n)
	}
}

func (d *Dispatcher) store(n entity.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.repo.Create(ctx, &n); err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("type", string(n.Type)).
			Str("recipient", n.RecipientID).
			Str("ref_id", n.RefID).
			Msg("no se pudo guardar la notificación")
		return
	}
	metrics.Notifications.WithLabelValues("stored").Inc()
}
