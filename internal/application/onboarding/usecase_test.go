package onboarding_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/onboarding"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]string
}

func (s *fakeStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "/uploads/" + filename
	s.saved[url] = string(b)
	return url, nil
}

func doc(name, contentType, body string) *onboarding.Document {
	return &onboarding.Document{Filename: name, ContentType: contentType, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func fullDocs() onboarding.Documents {
	return onboarding.Documents{
		BusinessDoc: doc("camara.pdf", "application/pdf", "camara"),
		OwnerID:     doc("cedula.png", "image/png", "cedula"),
		FinanceDoc:  doc("balance.pdf", "application/pdf; charset=binary", "balance"),
	}
}

func newUseCase() (*onboarding.UseCase, *fakeStore) {
	store := &fakeStore{saved: map[string]string{}}
	return onboarding.NewUseCase(memory.New().AdminRequests(), store, logger.Nop()), store
}

func TestSubmit_GuardaDocumentosYQuedaPendiente(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()
	p := entity.Principal{UserID: "u1", Email: "u1@example.com", Role: entity.RoleUser}

	out, err := uc.Submit(ctx, p, dto.AdminRequestForm{BusinessName: " Tienda Uno ", Country: "CO", City: "Bogotá"}, fullDocs())
	require.NoError(t, err)
	assert.Equal(t, "Tienda Uno", out.Request.BusinessName)
	assert.Equal(t, string(entity.AdminRequestPending), out.Request.Status)
	assert.Equal(t, "camara", store.saved[out.Request.Documents.BusinessDoc])
	assert.Equal(t, "cedula", store.saved[out.Request.Documents.OwnerID])
	assert.Equal(t, "balance", store.saved[out.Request.Documents.FinanceDoc])
	assert.True(t, strings.HasSuffix(out.Request.Documents.OwnerID, ".png"))

	disguised := fullDocs()
	disguised.BusinessDoc = doc("camara.exe", "application/pdf", "camara")
	again, err := uc.Submit(ctx, p, dto.AdminRequestForm{BusinessName: "Tienda Uno"}, disguised)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(again.Request.Documents.BusinessDoc, ".pdf"), "la extensión sale del tipo de contenido")

	mine, err := uc.ListMine(ctx, p)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, again.Request.ID, mine[0].ID)
	assert.Equal(t, out.Request.ID, mine[1].ID)

	others, err := uc.ListMine(ctx, entity.Principal{UserID: "u2", Role: entity.RoleUser})
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestSubmit_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()
	p := entity.Principal{UserID: "u1", Role: entity.RoleUser}
	form := dto.AdminRequestForm{BusinessName: "Tienda"}

	missing := fullDocs()
	missing.FinanceDoc = nil
	_, err := uc.Submit(ctx, p, form, missing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badType := fullDocs()
	badType.OwnerID = doc("cedula.exe", "application/octet-stream", "x")
	_, err = uc.Submit(ctx, p, form, badType)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tooBig := fullDocs()
	tooBig.BusinessDoc.Size = onboarding.MaxDocumentBytes + 1
	_, err = uc.Submit(ctx, p, form, tooBig)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Submit(ctx, p, dto.AdminRequestForm{}, fullDocs())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Submit(ctx, entity.Principal{UserID: "a1", Role: entity.RoleAdmin}, form, fullDocs())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.saved, "no se guarda nada si la solicitud no es válida")
}
