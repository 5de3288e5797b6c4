package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado físico de la unidad vendida.
type ProductStatus string

const (
	ProductPicked   ProductStatus = "picked"
	ProductSold     ProductStatus = "sold"
	ProductReturned ProductStatus = "returned"
)

// PaymentStatus estado del cobro.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// DefaultCustomerName nombre de cliente cuando no se informa.
const DefaultCustomerName = "N/A"

// Sale registro de venta. TotalPrice = UnitPrice × Quantity en todo estado persistido.
// OwnerAdmin se resuelve una sola vez al crear y nunca se recalcula.
type Sale struct {
	ID                        string
	ProductID                 string
	ProductName               string
	AgentID                   string // vacío si la creó un manager o admin
	ManagerID                 string
	OwnerAdmin                string
	CustomerName              string
	CustomerPhone             string
	CustomerAddress           string
	Quantity                  int
	UnitPrice                 decimal.Decimal
	TotalPrice                decimal.Decimal
	ProductStatus             ProductStatus
	PaymentStatus             PaymentStatus
	Notes                     string
	SoldAt                    *time.Time
	PaymentConfirmedAt        *time.Time
	PaymentConfirmedByManager bool
	PaymentConfirmedByAdmin   bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// SaleRevision estado leído de una venta sobre el que se condiciona la escritura.
// La cantidad forma parte de la revisión: una venta parcial no cambia los estados de la original.
type SaleRevision struct {
	ProductStatus ProductStatus
	PaymentStatus PaymentStatus
	Quantity      int
}

// Revision estado actual de la venta.
func (s *Sale) Revision() SaleRevision {
	return SaleRevision{ProductStatus: s.ProductStatus, PaymentStatus: s.PaymentStatus, Quantity: s.Quantity}
}

// SaleScope predicado de visibilidad derivado del rol del principal.
// Campos vacíos no filtran; OwnerAdmin siempre está presente.
type SaleScope struct {
	OwnerAdmin string
	ManagerID  string
	AgentID    string
}

// Matches indica si la venta cae dentro del alcance.
func (s SaleScope) Matches(sale *Sale) bool {
	if sale == nil || s.OwnerAdmin == "" || sale.OwnerAdmin != s.OwnerAdmin {
		return false
	}
	if s.ManagerID != "" && sale.ManagerID != s.ManagerID {
		return false
	}
	if s.AgentID != "" && sale.AgentID != s.AgentID {
		return false
	}
	return true
}

// SaleFilter filtros opcionales de listado; solo estrechan el alcance.
type SaleFilter struct {
	ProductStatus ProductStatus
	PaymentStatus PaymentStatus
}

// SalesStats agregados de ventas dentro de un alcance.
type SalesStats struct {
	TotalSales      int
	TotalRevenue    decimal.Decimal
	PendingPayments int
	TotalOrders     int
}
