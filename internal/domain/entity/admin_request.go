package entity

import "time"

// AdminRequestStatus estado de revisión de una solicitud para operar como admin.
type AdminRequestStatus string

const (
	AdminRequestPending  AdminRequestStatus = "pending"
	AdminRequestApproved AdminRequestStatus = "approved"
	AdminRequestRejected AdminRequestStatus = "rejected"
)

// AdminRequestDocuments URLs de los documentos adjuntos.
type AdminRequestDocuments struct {
	BusinessDoc string
	OwnerID     string
	FinanceDoc  string
}

// AdminRequest solicitud de alta de un negocio enviada por una cuenta autenticada.
type AdminRequest struct {
	ID           string
	UserID       string
	BusinessName string
	BusinessType string
	Country      string
	City         string
	Phone        string
	Reason       string
	Documents    AdminRequestDocuments
	Status       AdminRequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
