// Package metrics expone los colectores Prometheus de la aplicación.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SaleTransitions cuenta transiciones del ciclo de venta por evento
	// (picked, sold, partial_sold, returned, paid, cancelled, confirmed, deleted).
	SaleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail_ops",
		Name:      "sale_transitions_total",
		Help:      "Transiciones del ciclo de vida de ventas.",
	}, []string{"event"})

	// StockUnits unidades reservadas (picked) y liberadas (returned) en el inventario.
	StockUnits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail_ops",
		Name:      "stock_units_total",
		Help:      "Unidades de inventario reservadas o liberadas.",
	}, []string{"direction"})

	// Notifications resultado del despacho de notificaciones (stored, failed, dropped).
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail_ops",
		Name:      "notifications_total",
		Help:      "Notificaciones procesadas por el despachador.",
	}, []string{"result"})

	// NotificationQueueDepth profundidad actual de la cola del despachador.
	NotificationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "retail_ops",
		Name:      "notification_queue_depth",
		Help:      "Notificaciones en cola pendientes de persistir.",
	})

	// CredentialDeliveries envíos de credenciales por canal y resultado.
	CredentialDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail_ops",
		Name:      "credential_deliveries_total",
		Help:      "Envíos de credenciales por canal (email, sms) y resultado (sent, failed).",
	}, []string{"channel", "result"})
)
