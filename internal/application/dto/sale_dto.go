package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada de createSale. El tenant nunca viene del cliente.
type CreateSaleRequest struct {
	ProductID       string   `json:"productId"`
	Quantity        int      `json:"quantity"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	CustomerAddress string   `json:"customerAddress"`
	Notes           string   `json:"notes"`
	MarkSold        FlexBool `json:"markSold"`
}

// UpdateSaleRequest parche disperso: solo se aplican los campos presentes.
type UpdateSaleRequest struct {
	ProductStatus *string `json:"productStatus"`
	PaymentStatus *string `json:"paymentStatus"`
	Notes         *string `json:"notes"`
	SoldQuantity  *int    `json:"soldQuantity"`
}

// SaleListQuery filtros opcionales de listado (solo estrechan el alcance).
type SaleListQuery struct {
	ProductStatus string `query:"productStatus"`
	PaymentStatus string `query:"paymentStatus"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID                        string          `json:"id"`
	ProductID                 string          `json:"productId"`
	ProductName               string          `json:"productName"`
	AgentID                   string          `json:"agentId,omitempty"`
	ManagerID                 string          `json:"managerId,omitempty"`
	OwnerAdmin                string          `json:"ownerAdmin"`
	CustomerName              string          `json:"customerName"`
	CustomerPhone             string          `json:"customerPhone,omitempty"`
	CustomerAddress           string          `json:"customerAddress,omitempty"`
	Quantity                  int             `json:"quantity"`
	UnitPrice                 decimal.Decimal `json:"unitPrice"`
	TotalPrice                decimal.Decimal `json:"totalPrice"`
	ProductStatus             string          `json:"productStatus"`
	PaymentStatus             string          `json:"paymentStatus"`
	Notes                     string          `json:"notes,omitempty"`
	SoldAt                    *time.Time      `json:"soldAt,omitempty"`
	PaymentConfirmedAt        *time.Time      `json:"paymentConfirmedAt,omitempty"`
	PaymentConfirmedByManager bool            `json:"paymentConfirmedByManager"`
	PaymentConfirmedByAdmin   bool            `json:"paymentConfirmedByAdmin"`
	CreatedAt                 time.Time       `json:"createdAt"`
	UpdatedAt                 time.Time       `json:"updatedAt"`
}

// SaleMutationResponse entidad mutada + mensaje. RemainingPick solo en ventas parciales.
type SaleMutationResponse struct {
	Message       string        `json:"message"`
	Sale          SaleResponse  `json:"sale"`
	RemainingPick *SaleResponse `json:"remainingPick,omitempty"`
}

// SaleListResponse listado de ventas del alcance.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}

// SalesStatsResponse agregados de getSalesStats.
type SalesStatsResponse struct {
	TotalSales      int             `json:"totalSales"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingPayments int             `json:"pendingPayments"`
	TotalOrders     int             `json:"totalOrders"`
}
