package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/notification"
	"github.com/jhoicas/retail-ops-api/internal/application/onboarding"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/application/sales"
	"github.com/jhoicas/retail-ops-api/internal/application/staff"
	"github.com/jhoicas/retail-ops-api/internal/application/usecase"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/cache"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/delivery"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/export"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/retail-ops-api/internal/interfaces/http"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

type testServer struct {
	app     *fiber.App
	tenants map[string]memory.Tenant
	inbox   *memory.NotificationRepo
	close   func()
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Nop()
	store := memory.New()
	t1 := store.SeedTenant("t1", "")
	t2 := store.SeedTenant("t2", "")
	repos := store.Repositories()
	ctx := context.Background()
	for _, p := range []*entity.Product{
		{ID: "p1", OwnerAdmin: t1.Admin.ID, Name: "Zapatilla", Price: decimal.NewFromInt(10), Quantity: 5},
		{ID: "p2", OwnerAdmin: t2.Admin.ID, Name: "Bolso", Price: decimal.NewFromInt(7), Quantity: 5},
	} {
		require.NoError(t, repos.Products.Create(ctx, p))
	}

	dispatcher := notification.NewDispatcher(store.Notifications(), log, notification.Config{QueueSize: 64, Workers: 1})
	resolver := hierarchy.NewResolver(repos.Users, repos.Managers, repos.Agents)
	ledger := inventory.NewLedger(3)
	salesUC := sales.NewUseCase(store.TxRunner(), ledger, repos.Sales, repos.Products, resolver, dispatcher, log)
	images, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	var creds ports.CredentialDelivery = delivery.NewService(nil, nil, 0, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:    usecase.NewUserUseCase(repos.Users),
		ProductUC: usecase.NewProductUseCase(store.TxRunner(), repos.Products, resolver, cache.NoopFeaturedCache{}, ledger),
		UploadUC:  usecase.NewUploadUseCase(images),
		SalesUC:   salesUC,
		SalesDocs: sales.NewDocumentsUseCase(salesUC, pdf.NewReceiptGenerator(), export.NewSalesWorkbook()),
		StaffUC:   staff.NewUseCase(store.TxRunner(), repos, resolver, creds, dispatcher, log),
		InboxUC:   notification.NewInboxUseCase(store.Notifications()),
		AdminReqs: onboarding.NewUseCase(store.AdminRequests(), images, log),
		Log:       log,
		JWTSecret: testJWTSecret,
		AppName:   "retail-ops-test",
	})
	return &testServer{
		app:     app,
		tenants: map[string]memory.Tenant{"t1": t1, "t2": t2},
		inbox:   store.Notifications(),
		close:   dispatcher.Close,
	}
}

func (s *testServer) do(t *testing.T, method, path string, p entity.Principal, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if p.UserID != "" {
		req.Header.Set("Authorization", tokenFor(t, p.UserID, p.Email, p.Role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	defer s.close()

	resp := s.do(t, http.MethodGet, "/health", entity.Principal{}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/metrics", entity.Principal{}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CicloDeVentaPorHTTP(t *testing.T) {
	s := newTestServer(t)
	t1 := s.tenants["t1"]

	resp := s.do(t, http.MethodPost, "/api/sales", t1.AgentPrincipal(), fiber.Map{"productId": "p1", "quantity": 2, "markSold": "true"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.SaleMutationResponse](t, resp)
	assert.Equal(t, "sold", created.Sale.ProductStatus)
	assert.Equal(t, "N/A", created.Sale.CustomerName)
	assert.True(t, decimal.NewFromInt(20).Equal(created.Sale.TotalPrice))
	id := created.Sale.ID

	resp = s.do(t, http.MethodGet, "/api/sales/stats", t1.ManagerPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.SalesStatsResponse](t, resp)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingPayments)

	resp = s.do(t, http.MethodPut, "/api/sales/"+id, t1.ManagerPrincipal(), fiber.Map{"paymentStatus": "paid"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paid", decode[dto.SaleMutationResponse](t, resp).Sale.PaymentStatus)

	resp = s.do(t, http.MethodPut, "/api/sales/"+id+"/confirm-payment", t1.AgentPrincipal(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPut, "/api/sales/"+id+"/confirm-payment", t1.AdminPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", decode[dto.SaleMutationResponse](t, resp).Sale.PaymentStatus)

	resp = s.do(t, http.MethodPut, "/api/sales/"+id+"/confirm-payment", t1.AdminPrincipal(), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodGet, "/api/sales/"+id+"/receipt", t1.AgentPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/sales/export", t1.AdminPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	resp.Body.Close()

	s.close()
	n, err := s.inbox.CountUnread(context.Background(), t1.Admin.ID)
	require.NoError(t, err)
	assert.Positive(t, n, "el admin recibe product_picked y payment_received")
}

func TestRouter_AislamientoEntreTenants(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	t1, t2 := s.tenants["t1"], s.tenants["t2"]

	resp := s.do(t, http.MethodPost, "/api/sales", t1.AgentPrincipal(), fiber.Map{"productId": "p2", "quantity": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodPost, "/api/sales", t1.AgentPrincipal(), fiber.Map{"productId": "p1", "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[dto.SaleMutationResponse](t, resp).Sale.ID

	resp = s.do(t, http.MethodGet, "/api/sales/"+id, t2.AdminPrincipal(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodGet, "/api/sales", t2.ManagerPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[dto.SaleListResponse](t, resp).Total)
}

func TestRouter_Errores(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	t1 := s.tenants["t1"]

	resp := s.do(t, http.MethodGet, "/api/sales", entity.Principal{}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/sales", t1.AgentPrincipal(), fiber.Map{"productId": "p1", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodPost, "/api/sales", t1.AgentPrincipal(), fiber.Map{"productId": "p1", "quantity": 99})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/managers", t1.ManagerPrincipal(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_CrearAgenteDevuelveEntrega(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	t1 := s.tenants["t1"]

	resp := s.do(t, http.MethodPost, "/api/agents", t1.ManagerPrincipal(), fiber.Map{"name": "Ana", "email": "ana@t1.test"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.ProvisionedResponse[dto.AgentResponse]](t, resp)
	assert.Equal(t, t1.Manager.ID, out.Data.ManagerID)
	assert.False(t, out.Delivery.Email.Sent)
	assert.Equal(t, "email provider not configured", out.Delivery.Email.Reason)
	assert.Equal(t, "sms provider not configured", out.Delivery.SMS.Reason)
}

func TestRouter_GestionDeUsuariosSoloAdmin(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	t1 := s.tenants["t1"]

	resp := s.do(t, http.MethodGet, "/api/users", t1.ManagerPrincipal(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/users", t1.AdminPrincipal(), fiber.Map{"name": "Uma", "email": "uma@t1.test", "role": "user"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProvisionedResponse[dto.ManagedUserResponse]](t, resp)
	assert.Equal(t, entity.RoleUser, created.Data.Role)
	assert.Equal(t, "email provider not configured", created.Delivery.Email.Reason)

	resp = s.do(t, http.MethodGet, "/api/users", t1.AdminPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ManagedUserResponse](t, resp), 4)

	resp = s.do(t, http.MethodPut, "/api/users/"+created.Data.ID, t1.AdminPrincipal(), fiber.Map{"name": "Uma Ruiz"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Uma Ruiz", decode[dto.ManagedUserResponse](t, resp).Name)

	resp = s.do(t, http.MethodDelete, "/api/users/"+t1.Admin.ID, t1.AdminPrincipal(), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodDelete, "/api/users/"+created.Data.ID, t1.AdminPrincipal(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_CambioDeContrasena(t *testing.T) {
	s := newTestServer(t)
	defer s.close()

	resp := s.do(t, http.MethodPost, "/api/auth/signup", entity.Principal{}, fiber.Map{"name": "Ana", "email": "ana@example.com", "password": "secreto123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	u := decode[dto.UserResponse](t, resp)
	p := entity.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}

	resp = s.do(t, http.MethodPut, "/api/auth/change-password", p, fiber.Map{"currentPassword": "equivocada", "newPassword": "nuevo-secreto"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodPut, "/api/auth/change-password", p, fiber.Map{"currentPassword": "secreto123", "newPassword": "nuevo-secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/auth/login", entity.Principal{}, fiber.Map{"email": "ana@example.com", "password": "nuevo-secreto"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_SolicitudDeAlta(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	p := entity.Principal{UserID: "u1", Email: "u1@example.com", Role: entity.RoleUser}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("businessName", "Tienda Uno"))
	require.NoError(t, w.WriteField("city", "Cali"))
	for _, field := range []string{"businessDoc", "ownerId", "financeDoc"} {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + field + `.pdf"`}
		h["Content-Type"] = []string{"application/pdf"}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 " + field))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/requests", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenFor(t, p.UserID, p.Email, p.Role))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.AdminRequestCreatedResponse](t, resp)
	assert.Equal(t, "pending", out.Request.Status)
	assert.Equal(t, "Cali", out.Request.City)
	assert.Contains(t, out.Request.Documents.OwnerID, "/uploads/")

	resp = s.do(t, http.MethodGet, "/api/admin/requests", p, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.AdminRequestResponse](t, resp), 1)

	resp = s.do(t, http.MethodPost, "/api/admin/requests", p, fiber.Map{"businessName": "Sin documentos"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_ProductosPorCategoriaYRecomendados(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	t1 := s.tenants["t1"]

	resp := s.do(t, http.MethodPost, "/api/products", t1.AdminPrincipal(), fiber.Map{"name": "Gorra", "category": "Accesorios", "price": "5", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/products/category/accesorios", t1.AgentPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	byCategory := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Gorra", byCategory[0].Name)

	resp = s.do(t, http.MethodGet, "/api/products/recommendations", t1.AgentPrincipal(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ProductResponse](t, resp), 2, "p1 y la gorra, sin productos de otro tenant")
}
