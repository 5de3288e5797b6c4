package dto

import "time"

// NotificationResponse salida de una notificación de la bandeja.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RefModel  string    `json:"refModel,omitempty"`
	RefID     string    `json:"refId,omitempty"`
	Priority  string    `json:"priority"`
	SenderID  string    `json:"senderId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnreadCountResponse contador de no leídas.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
