package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChannelResult resultado de un canal de entrega de credenciales.
type ChannelResult struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

// DeliveryResult resultado de la entrega de credenciales; se devuelve tal cual al cliente.
type DeliveryResult struct {
	Email ChannelResult `json:"email"`
	SMS   ChannelResult `json:"sms"`
}

// CreateManagerRequest alta de manager (admin).
type CreateManagerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	GovernmentID   string `json:"governmentId"`
	ProfilePicture string `json:"profilePicture"`
}

// UpdateManagerRequest edición de manager.
type UpdateManagerRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	GovernmentID   *string `json:"governmentId"`
	ProfilePicture *string `json:"profilePicture"`
	IsActive       *bool   `json:"isActive"`
}

// ManagerResponse salida de un manager.
type ManagerResponse struct {
	ID             string    `json:"id"`
	AdminID        string    `json:"adminId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	GovernmentID   string    `json:"governmentId,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateAgentRequest alta de agente. ManagerID solo lo usa el admin.
type CreateAgentRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Address        string `json:"address"`
	GovernmentID   string `json:"governmentId"`
	ProfilePicture string `json:"profilePicture"`
	ManagerID      string `json:"managerId"`
}

// UpdateAgentRequest edición de agente. ManagerID (admin): "" desasigna.
type UpdateAgentRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Location       *string `json:"location"`
	Address        *string `json:"address"`
	GovernmentID   *string `json:"governmentId"`
	ProfilePicture *string `json:"profilePicture"`
	IsActive       *bool   `json:"isActive"`
	ManagerID      *string `json:"managerId"`
}

// AgentResponse salida de un agente con sus acumulados.
type AgentResponse struct {
	ID             string          `json:"id"`
	ManagerID      string          `json:"managerId,omitempty"`
	OwnerAdmin     string          `json:"ownerAdmin"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Location       string          `json:"location,omitempty"`
	Address        string          `json:"address,omitempty"`
	GovernmentID   string          `json:"governmentId,omitempty"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	IsActive       bool            `json:"isActive"`
	TotalSales     int             `json:"totalSales"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ProvisionedResponse entidad creada con login + resultado de la entrega de credenciales.
type ProvisionedResponse[T any] struct {
	Message  string         `json:"message"`
	Data     T              `json:"data"`
	Delivery DeliveryResult `json:"delivery"`
}

// CreateWorkerRequest alta de worker (sin login).
type CreateWorkerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	ProfilePicture string `json:"profilePicture"`
	ManagerID      string `json:"managerId"`
}

// UpdateWorkerRequest edición de worker. ManagerID (admin): "" desasigna.
type UpdateWorkerRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	ProfilePicture *string `json:"profilePicture"`
	IsActive       *bool   `json:"isActive"`
	ManagerID      *string `json:"managerId"`
}

// WorkerResponse salida de un worker.
type WorkerResponse struct {
	ID             string    `json:"id"`
	ManagerID      string    `json:"managerId,omitempty"`
	OwnerAdmin     string    `json:"ownerAdmin"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Department     string    `json:"department"`
	Position       string    `json:"position"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}
