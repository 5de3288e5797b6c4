package sales

import (
	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:                        s.ID,
		ProductID:                 s.ProductID,
		ProductName:               s.ProductName,
		AgentID:                   s.AgentID,
		ManagerID:                 s.ManagerID,
		OwnerAdmin:                s.OwnerAdmin,
		CustomerName:              s.CustomerName,
		CustomerPhone:             s.CustomerPhone,
		CustomerAddress:           s.CustomerAddress,
		Quantity:                  s.Quantity,
		UnitPrice:                 s.UnitPrice,
		TotalPrice:                s.TotalPrice,
		ProductStatus:             string(s.ProductStatus),
		PaymentStatus:             string(s.PaymentStatus),
		Notes:                     s.Notes,
		SoldAt:                    s.SoldAt,
		PaymentConfirmedAt:        s.PaymentConfirmedAt,
		PaymentConfirmedByManager: s.PaymentConfirmedByManager,
		PaymentConfirmedByAdmin:   s.PaymentConfirmedByAdmin,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
	}
}
