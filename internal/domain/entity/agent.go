package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent perfil de un agente de ventas (tiene login). ManagerID vacío = sin asignar.
// OwnerAdmin es el admin dueño desnormalizado (se mantiene al reasignar manager).
type Agent struct {
	ID             string
	ManagerID      string
	OwnerAdmin     string
	Name           string
	Email          string
	Phone          string
	Location       string
	Address        string
	GovernmentID   string
	ProfilePicture string
	IsActive       bool
	TotalSales     int
	TotalRevenue   decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
