package entity

import "time"

// NotificationType tipo cerrado de notificación.
type NotificationType string

const (
	NotifyPaymentReceived  NotificationType = "payment_received"
	NotifyPaymentConfirmed NotificationType = "payment_confirmed"
	NotifyProductSold      NotificationType = "product_sold"
	NotifyProductReturned  NotificationType = "product_returned"
	NotifyProductPicked    NotificationType = "product_picked"
	NotifyNewAgent         NotificationType = "new_agent"
	NotifyNewManager       NotificationType = "new_manager"
	NotifyNewWorker        NotificationType = "new_worker"
	NotifySalesMade        NotificationType = "sales_made"
	NotifyAlert            NotificationType = "alert"
)

// RefModel entidad a la que apunta la referencia polimórfica.
type RefModel string

const (
	RefSales   RefModel = "Sales"
	RefProduct RefModel = "Product"
	RefAgent   RefModel = "Agent"
	RefManager RefModel = "Manager"
	RefWorker  RefModel = "Worker"
)

// Priority prioridad de la notificación.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Notification registro append-only; nunca modifica estado de negocio.
type Notification struct {
	ID            string
	RecipientID   string
	RecipientRole string
	SenderID      string
	Type          NotificationType
	Title         string
	Message       string
	RefModel      RefModel
	RefID         string
	Priority      Priority
	IsRead        bool
	CreatedAt     time.Time
}
