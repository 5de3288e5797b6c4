// Package onboarding recoge las solicitudes de alta de negocios que quieren operar como admin.
// La revisión queda fuera de la API: toda solicitud nace pendiente.
package onboarding

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// MaxDocumentBytes tamaño máximo de cada documento adjunto.
const MaxDocumentBytes = 5 << 20

var allowedDocumentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
}

// Document archivo adjunto tal como llega del formulario.
type Document struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Documents adjuntos obligatorios; nil significa no enviado.
type Documents struct {
	BusinessDoc *Document
	OwnerID     *Document
	FinanceDoc  *Document
}

// UseCase solicitudes de alta.
type UseCase struct {
	repo  repository.AdminRequestRepository
	store ports.ImageStore
	log   *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AdminRequestRepository, store ports.ImageStore, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:  repo,
		store: store,
		log:   log.Named("onboarding"),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// Submit valida el formulario y los tres documentos, los guarda y registra la solicitud como pendiente.
func (uc *UseCase) Submit(ctx context.Context, p entity.Principal, in dto.AdminRequestForm, docs Documents) (*dto.AdminRequestCreatedResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if p.Is(entity.RoleAdmin) {
		return nil, domain.Invalid("la cuenta ya es admin")
	}
	businessName := strings.TrimSpace(in.BusinessName)
	if businessName == "" {
		return nil, domain.Invalid("businessName es requerido")
	}
	fields := []struct {
		name string
		doc  *Document
	}{
		{name: "businessDoc", doc: docs.BusinessDoc},
		{name: "ownerId", doc: docs.OwnerID},
		{name: "financeDoc", doc: docs.FinanceDoc},
	}
	exts := make([]string, len(fields))
	for i, f := range fields {
		ext, err := checkDocument(f.name, f.doc)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}

	now := uc.now()
	req := &entity.AdminRequest{
		ID:           uc.newID(),
		UserID:       p.UserID,
		BusinessName: businessName,
		BusinessType: strings.TrimSpace(in.BusinessType),
		Country:      strings.TrimSpace(in.Country),
		City:         strings.TrimSpace(in.City),
		Phone:        strings.TrimSpace(in.Phone),
		Reason:       strings.TrimSpace(in.Reason),
		Status:       entity.AdminRequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	urls := make([]string, len(fields))
	for i, f := range fields {
		url, err := uc.store.Save(ctx, f.name+exts[i], f.doc.ContentType, io.LimitReader(f.doc.Body, MaxDocumentBytes))
		if err != nil {
			return nil, err
		}
		urls[i] = url
	}
	req.Documents = entity.AdminRequestDocuments{BusinessDoc: urls[0], OwnerID: urls[1], FinanceDoc: urls[2]}
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	uc.log.Info().Str("request_id", req.ID).Str("user_id", req.UserID).Msg("solicitud de alta registrada")
	return &dto.AdminRequestCreatedResponse{
		Message: "Solicitud enviada correctamente",
		Request: toResponse(req),
	}, nil
}

// ListMine solicitudes enviadas por el llamador.
func (uc *UseCase) ListMine(ctx context.Context, p entity.Principal) ([]dto.AdminRequestResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r))
	}
	return out, nil
}

// checkDocument devuelve la extensión con la que se guarda el documento.
func checkDocument(field string, d *Document) (string, error) {
	if d == nil || d.Body == nil {
		return "", domain.Invalid("%s es requerido", field)
	}
	ct := strings.ToLower(strings.TrimSpace(strings.Split(d.ContentType, ";")[0]))
	ext, ok := allowedDocumentTypes[ct]
	if !ok {
		return "", domain.Invalid("%s: tipo de archivo no permitido: %s", field, ct)
	}
	if d.Size <= 0 || d.Size > MaxDocumentBytes {
		return "", domain.Invalid("%s debe pesar entre 1 byte y %d MB", field, MaxDocumentBytes>>20)
	}
	return ext, nil
}

func toResponse(r *entity.AdminRequest) dto.AdminRequestResponse {
	return dto.AdminRequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		BusinessName: r.BusinessName,
		BusinessType: r.BusinessType,
		Country:      r.Country,
		City:         r.City,
		Phone:        r.Phone,
		Reason:       r.Reason,
		Documents: dto.AdminRequestDocuments{
			BusinessDoc: r.Documents.BusinessDoc,
			OwnerID:     r.Documents.OwnerID,
			FinanceDoc:  r.Documents.FinanceDoc,
		},
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
