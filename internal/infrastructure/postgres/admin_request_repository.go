package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.AdminRequestRepository = (*AdminRequestRepo)(nil)

// AdminRequestRepo solicitudes de alta sobre PostgreSQL.
type AdminRequestRepo struct {
	q Querier
}

// NewAdminRequestRepository construye el adaptador de solicitudes de alta.
func NewAdminRequestRepository(q Querier) *AdminRequestRepo {
	return &AdminRequestRepo{q: q}
}

func (r *AdminRequestRepo) Create(ctx context.Context, req *entity.AdminRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO admin_requests (id, user_id, business_name, business_type, country, city, phone, reason,
			business_doc, owner_id_doc, finance_doc, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		req.ID, req.UserID, req.BusinessName, req.BusinessType, req.Country, req.City, req.Phone, req.Reason,
		req.Documents.BusinessDoc, req.Documents.OwnerID, req.Documents.FinanceDoc, string(req.Status),
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin request: %w", err)
	}
	return nil
}

func (r *AdminRequestRepo) ListByUser(ctx context.Context, userID string) ([]*entity.AdminRequest, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, business_name, business_type, country, city, phone, reason,
			business_doc, owner_id_doc, finance_doc, status, created_at, updated_at
		FROM admin_requests WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list admin requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdminRequest
	for rows.Next() {
		var req entity.AdminRequest
		var status string
		if err := rows.Scan(&req.ID, &req.UserID, &req.BusinessName, &req.BusinessType, &req.Country, &req.City,
			&req.Phone, &req.Reason, &req.Documents.BusinessDoc, &req.Documents.OwnerID, &req.Documents.FinanceDoc,
			&status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan admin request: %w", err)
		}
		req.Status = entity.AdminRequestStatus(status)
		list = append(list, &req)
	}
	return list, rows.Err()
}
