package dto

import "time"

// AdminRequestForm campos de texto del formulario multipart de solicitud de alta.
type AdminRequestForm struct {
	BusinessName string `form:"businessName"`
	BusinessType string `form:"businessType"`
	Country      string `form:"country"`
	City         string `form:"city"`
	Phone        string `form:"phone"`
	Reason       string `form:"reason"`
}

// AdminRequestDocuments URLs de los documentos adjuntos.
type AdminRequestDocuments struct {
	BusinessDoc string `json:"businessDoc"`
	OwnerID     string `json:"ownerId"`
	FinanceDoc  string `json:"financeDoc"`
}

// AdminRequestResponse salida de una solicitud de alta.
type AdminRequestResponse struct {
	ID           string                `json:"id"`
	UserID       string                `json:"userId"`
	BusinessName string                `json:"businessName"`
	BusinessType string                `json:"businessType,omitempty"`
	Country      string                `json:"country,omitempty"`
	City         string                `json:"city,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	Reason       string                `json:"reason,omitempty"`
	Documents    AdminRequestDocuments `json:"documents"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// AdminRequestCreatedResponse confirmación del envío.
type AdminRequestCreatedResponse struct {
	Message string               `json:"message"`
	Request AdminRequestResponse `json:"request"`
}
