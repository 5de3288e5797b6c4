package staff_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/application/staff"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

type fakeDelivery struct {
	mu   sync.Mutex
	reqs []ports.CredentialRequest
}

func (d *fakeDelivery) DeliverCredentials(_ context.Context, req ports.CredentialRequest) dto.DeliveryResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reqs = append(d.reqs, req)
	res := dto.DeliveryResult{Email: dto.ChannelResult{Sent: true}}
	if req.ToPhone == "" {
		res.SMS = dto.ChannelResult{Reason: "no phone number"}
	} else {
		res.SMS = dto.ChannelResult{Sent: true}
	}
	return res
}

func (d *fakeDelivery) last() ports.CredentialRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reqs[len(d.reqs)-1]
}

type recorder struct {
	mu   sync.Mutex
	sent []entity.Notification
}

func (r *recorder) Notify(n entity.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recorder) to(typ entity.NotificationType) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, n := range r.sent {
		if n.Type == typ {
			ids = append(ids, n.RecipientID)
		}
	}
	return ids
}

type fixture struct {
	store    *memory.Store
	tenant   memory.Tenant
	uc       *staff.UseCase
	delivery *fakeDelivery
	notes    *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	f := &fixture{store: store, tenant: store.SeedTenant("t1", ""), delivery: &fakeDelivery{}, notes: &recorder{}}
	f.uc = staff.NewUseCase(store.TxRunner(), repos,
		hierarchy.NewResolver(repos.Users, repos.Managers, repos.Agents), f.delivery, f.notes, logger.Nop())
	return f
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := staff.GeneratePassword()
		require.NoError(t, err)
		assert.Len(t, pw, staff.PasswordLength)
		for _, c := range pw {
			assert.True(t, strings.ContainsRune(staff.PasswordCharset, c))
		}
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestCreateManager_CreaLoginYEntregaCredenciales(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.uc.CreateManager(ctx, f.tenant.AdminPrincipal(), dto.CreateManagerRequest{Name: "Marta", Email: "Marta@t1.test", Phone: "+57300"})
	require.NoError(t, err)
	assert.Equal(t, f.tenant.Admin.ID, out.Data.AdminID)
	assert.True(t, out.Delivery.Email.Sent)
	assert.True(t, out.Delivery.SMS.Sent)

	user, err := f.store.Repositories().Users.GetByEmail(ctx, "marta@t1.test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Equal(t, f.tenant.Admin.ID, user.CreatedByAdmin)
	sent := f.delivery.last()
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(sent.Password)))
	assert.Equal(t, []string{f.tenant.Admin.ID}, f.notes.to(entity.NotifyNewManager))

	_, err = f.uc.CreateManager(ctx, f.tenant.ManagerPrincipal(), dto.CreateManagerRequest{Name: "X", Email: "x@t1.test"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.CreateManager(ctx, f.tenant.AdminPrincipal(), dto.CreateManagerRequest{Name: "Otra", Email: "marta@t1.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateAgent_PorManager(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.uc.CreateAgent(ctx, f.tenant.ManagerPrincipal(), dto.CreateAgentRequest{Name: "Gabo", Email: "gabo@t1.test", ManagerID: "ignorado"})
	require.NoError(t, err)
	assert.Equal(t, f.tenant.Manager.ID, out.Data.ManagerID)
	assert.Equal(t, f.tenant.Admin.ID, out.Data.OwnerAdmin)
	assert.Equal(t, "no phone number", out.Delivery.SMS.Reason)
	assert.Equal(t, []string{f.tenant.Admin.ID}, f.notes.to(entity.NotifyNewAgent), "el manager creador no se notifica a sí mismo")

	user, err := f.store.Repositories().Users.GetByEmail(ctx, "gabo@t1.test")
	require.NoError(t, err)
	assert.Equal(t, f.tenant.Admin.ID, user.CreatedByAdmin)

	list, err := f.uc.ListAgents(ctx, f.tenant.ManagerPrincipal())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateAgent_PorAdminSinManagerYConManagerAjeno(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.store.SeedTenant("t2", "")

	_, err := f.uc.CreateAgent(ctx, f.tenant.AdminPrincipal(), dto.CreateAgentRequest{Name: "X", Email: "x@t1.test", ManagerID: other.Manager.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.CreateAgent(ctx, f.tenant.AdminPrincipal(), dto.CreateAgentRequest{Name: "Libre", Email: "libre@t1.test"})
	require.NoError(t, err)
	assert.Empty(t, out.Data.ManagerID)

	adminList, err := f.uc.ListAgents(ctx, f.tenant.AdminPrincipal())
	require.NoError(t, err)
	assert.Len(t, adminList, 2, "el admin ve también los agentes sin asignar")

	managerList, err := f.uc.ListAgents(ctx, f.tenant.ManagerPrincipal())
	require.NoError(t, err)
	assert.Len(t, managerList, 1)
}

func TestCreateAgent_FalloDelPerfilRevierteLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	repos := f.store.Repositories()
	require.NoError(t, repos.Agents.Create(ctx, &entity.Agent{ID: "huerfano", OwnerAdmin: f.tenant.Admin.ID, Email: "dup@t1.test"}))

	_, err := f.uc.CreateAgent(ctx, f.tenant.ManagerPrincipal(), dto.CreateAgentRequest{Name: "Dup", Email: "dup@t1.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	user, err := repos.Users.GetByEmail(ctx, "dup@t1.test")
	require.NoError(t, err)
	assert.Nil(t, user, "la cuenta no debe quedar huérfana")
}

func TestUpdateAgent_SoloAdminReasigna(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	empty := ""

	_, err := f.uc.UpdateAgent(ctx, f.tenant.ManagerPrincipal(), f.tenant.Agent.ID, dto.UpdateAgentRequest{ManagerID: &empty})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.UpdateAgent(ctx, f.tenant.AdminPrincipal(), f.tenant.Agent.ID, dto.UpdateAgentRequest{ManagerID: &empty})
	require.NoError(t, err)
	assert.Empty(t, out.ManagerID)
	assert.Equal(t, f.tenant.Admin.ID, out.OwnerAdmin)

	_, err = f.uc.GetAgent(ctx, f.tenant.ManagerPrincipal(), f.tenant.Agent.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetAgentPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.uc.ResetAgentPassword(ctx, f.tenant.ManagerPrincipal(), f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.True(t, res.Email.Sent)

	user, err := f.store.Repositories().Users.GetByID(ctx, f.tenant.AgentUser.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.delivery.last().Password)))
}

func TestAgentMe(t *testing.T) {
	f := newFixture(t)

	me, err := f.uc.AgentMe(context.Background(), f.tenant.AgentPrincipal())
	require.NoError(t, err)
	assert.Equal(t, f.tenant.Agent.ID, me.ID)

	_, err = f.uc.AgentMe(context.Background(), f.tenant.ManagerPrincipal())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteManager_DesasignaYBorraLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.uc.CreateWorker(ctx, f.tenant.ManagerPrincipal(), dto.CreateWorkerRequest{Name: "Wilson"})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteManager(ctx, f.tenant.AdminPrincipal(), f.tenant.Manager.ID))

	repos := f.store.Repositories()
	agent, err := repos.Agents.GetByID(ctx, f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.Empty(t, agent.ManagerID)
	assert.Equal(t, f.tenant.Admin.ID, agent.OwnerAdmin)

	workers, err := f.uc.ListWorkers(ctx, f.tenant.AdminPrincipal())
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Empty(t, workers[0].ManagerID)

	login, err := repos.Users.GetByEmail(ctx, f.tenant.ManagerUser.Email)
	require.NoError(t, err)
	assert.Nil(t, login)
}

func TestWorkers_DefaultsYAlcance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.store.SeedTenant("t2", "")

	w, err := f.uc.CreateWorker(ctx, f.tenant.ManagerPrincipal(), dto.CreateWorkerRequest{Name: "Wilson"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultWorkerDepartment, w.Department)
	assert.Equal(t, entity.DefaultWorkerPosition, w.Position)
	assert.Equal(t, f.tenant.Manager.ID, w.ManagerID)
	assert.Equal(t, []string{f.tenant.Admin.ID}, f.notes.to(entity.NotifyNewWorker))

	_, err = f.uc.GetWorker(ctx, other.AdminPrincipal(), w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.DeleteWorker(ctx, other.ManagerPrincipal(), w.ID), domain.ErrNotFound)

	dept := "bodega"
	updated, err := f.uc.UpdateWorker(ctx, f.tenant.ManagerPrincipal(), w.ID, dto.UpdateWorkerRequest{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "bodega", updated.Department)

	_, err = f.uc.CreateWorker(ctx, f.tenant.AgentPrincipal(), dto.CreateWorkerRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUsers_CrearPorRol(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.tenant.AdminPrincipal()
	repos := f.store.Repositories()

	out, err := f.uc.CreateUser(ctx, admin, dto.CreateUserRequest{Name: "Uma", Email: "uma@t1.test", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Data.Role)
	assert.Equal(t, f.tenant.Admin.ID, out.Data.CreatedByAdmin)
	assert.Equal(t, "no phone number", out.Delivery.SMS.Reason)
	user, err := repos.Users.GetByEmail(ctx, "uma@t1.test")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.delivery.last().Password)))

	_, err = f.uc.CreateUser(ctx, admin, dto.CreateUserRequest{Name: "Mia", Email: "mia@t1.test", Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "manager sin teléfono")
	_, err = f.uc.CreateUser(ctx, admin, dto.CreateUserRequest{Name: "Mia", Email: "mia@t1.test", Role: "manager", Phone: "+57301"})
	require.NoError(t, err)
	m, err := repos.Managers.GetByEmail(ctx, "mia@t1.test")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, f.tenant.Admin.ID, m.AdminID)

	agentIn := dto.CreateUserRequest{Name: "Abel", Email: "abel@t1.test", Role: "agent", Phone: "+57302", Location: "Centro", GovernmentID: "CC1"}
	_, err = f.uc.CreateUser(ctx, admin, agentIn)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "agente sin manager")
	agentIn.ManagerID = f.store.SeedTenant("t2", "").Manager.ID
	_, err = f.uc.CreateUser(ctx, admin, agentIn)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "manager de otro tenant")
	agentIn.ManagerID = f.tenant.Manager.ID
	created, err := f.uc.CreateUser(ctx, admin, agentIn)
	require.NoError(t, err)
	assert.Equal(t, f.tenant.Manager.Name, created.Data.ManagerName)
	a, err := repos.Agents.GetByEmail(ctx, "abel@t1.test")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, f.tenant.Manager.ID, a.ManagerID)
	assert.Equal(t, "Centro", a.Location)

	_, err = f.uc.CreateUser(ctx, admin, dto.CreateUserRequest{Name: "Root", Email: "root@t1.test", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateUser(ctx, f.tenant.ManagerPrincipal(), dto.CreateUserRequest{Name: "X", Email: "x@t1.test", Role: "user"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUsers_ListarConManagerDelAgente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.SeedTenant("t2", "")

	list, err := f.uc.ListUsers(ctx, f.tenant.AdminPrincipal())
	require.NoError(t, err)
	require.Len(t, list, 3, "el propio admin, su manager y su agente")
	byEmail := map[string]dto.ManagedUserResponse{}
	for _, u := range list {
		byEmail[u.Email] = u
	}
	agent := byEmail[f.tenant.AgentUser.Email]
	assert.Equal(t, f.tenant.Manager.ID, agent.ManagerID)
	assert.Equal(t, f.tenant.Manager.Name, agent.ManagerName)
	assert.Equal(t, f.tenant.Manager.Email, agent.ManagerEmail)
	assert.Empty(t, byEmail[f.tenant.ManagerUser.Email].ManagerID)
	assert.Contains(t, byEmail, f.tenant.Admin.Email)
}

func TestUsers_EditarSincronizaPerfil(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.tenant.AdminPrincipal()
	repos := f.store.Repositories()
	other := f.store.SeedTenant("t2", "")

	name, email := "Agente Renombrado", "nuevo-agente@t1.test"
	out, err := f.uc.UpdateUser(ctx, admin, f.tenant.AgentUser.ID, dto.UpdateUserRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, out.Email)
	a, err := repos.Agents.GetByID(ctx, f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.Equal(t, email, a.Email)
	assert.Equal(t, name, a.Name)

	// El agente sigue resolviéndose con su nuevo email.
	me, err := f.uc.AgentMe(ctx, entity.Principal{UserID: f.tenant.AgentUser.ID, Email: email, Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, f.tenant.Agent.ID, me.ID)

	empty := ""
	_, err = f.uc.UpdateUser(ctx, admin, f.tenant.AgentUser.ID, dto.UpdateUserRequest{ManagerID: &empty})
	require.NoError(t, err)
	a, err = repos.Agents.GetByID(ctx, f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.Empty(t, a.ManagerID)

	taken := f.tenant.ManagerUser.Email
	_, err = f.uc.UpdateUser(ctx, admin, f.tenant.AgentUser.ID, dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	a, err = repos.Agents.GetByID(ctx, f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.Equal(t, email, a.Email, "el perfil no cambia si falla la cuenta")

	_, err = f.uc.UpdateUser(ctx, admin, other.AgentUser.ID, dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.UpdateUser(ctx, admin, f.tenant.ManagerUser.ID, dto.UpdateUserRequest{ManagerID: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsers_CambioDeRolDesactivaYCreaPerfil(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.tenant.AdminPrincipal()
	repos := f.store.Repositories()

	created, err := f.uc.CreateUser(ctx, admin, dto.CreateUserRequest{Name: "Uma", Email: "uma@t1.test", Role: "user"})
	require.NoError(t, err)

	agentRole, managerID := "agent", f.tenant.Manager.ID
	_, err = f.uc.UpdateUser(ctx, admin, created.Data.ID, dto.UpdateUserRequest{Role: &agentRole, ManagerID: &managerID})
	require.NoError(t, err)
	a, err := repos.Agents.GetByEmail(ctx, "uma@t1.test")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.True(t, a.IsActive)
	assert.Equal(t, f.tenant.Manager.ID, a.ManagerID)
	assert.Equal(t, f.tenant.Admin.ID, a.OwnerAdmin)

	userRole := "user"
	_, err = f.uc.UpdateUser(ctx, admin, created.Data.ID, dto.UpdateUserRequest{Role: &userRole})
	require.NoError(t, err)
	a, err = repos.Agents.GetByEmail(ctx, "uma@t1.test")
	require.NoError(t, err)
	assert.False(t, a.IsActive)

	_, err = f.uc.UpdateUser(ctx, admin, created.Data.ID, dto.UpdateUserRequest{Role: &agentRole})
	require.NoError(t, err)
	a, err = repos.Agents.GetByEmail(ctx, "uma@t1.test")
	require.NoError(t, err)
	assert.True(t, a.IsActive, "se reactiva el perfil existente")

	adminRole := "admin"
	_, err = f.uc.UpdateUser(ctx, admin, created.Data.ID, dto.UpdateUserRequest{Role: &adminRole})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsers_BorrarYRestablecer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.tenant.AdminPrincipal()
	repos := f.store.Repositories()

	err := f.uc.DeleteUser(ctx, admin, f.tenant.Admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	phone := "+57399"
	_, err = f.uc.UpdateAgent(ctx, admin, f.tenant.Agent.ID, dto.UpdateAgentRequest{Phone: &phone})
	require.NoError(t, err)
	res, err := f.uc.ResetUserPassword(ctx, admin, f.tenant.AgentUser.ID)
	require.NoError(t, err)
	assert.True(t, res.SMS.Sent)
	sent := f.delivery.last()
	assert.Equal(t, phone, sent.ToPhone, "el SMS va al teléfono del perfil")
	user, err := repos.Users.GetByID(ctx, f.tenant.AgentUser.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(sent.Password)))

	plain, err := f.uc.CreateUser(ctx, admin, dto.CreateUserRequest{Name: "Uma", Email: "uma@t1.test", Role: "user"})
	require.NoError(t, err)
	_, err = f.uc.ResetUserPassword(ctx, admin, plain.Data.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.uc.DeleteUser(ctx, admin, f.tenant.ManagerUser.ID))
	m, err := repos.Managers.GetByID(ctx, f.tenant.Manager.ID)
	require.NoError(t, err)
	assert.Nil(t, m)
	a, err := repos.Agents.GetByID(ctx, f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.Empty(t, a.ManagerID)

	require.NoError(t, f.uc.DeleteUser(ctx, admin, f.tenant.AgentUser.ID))
	a, err = repos.Agents.GetByID(ctx, f.tenant.Agent.ID)
	require.NoError(t, err)
	assert.Nil(t, a)
	login, err := repos.Users.GetByID(ctx, f.tenant.AgentUser.ID)
	require.NoError(t, err)
	assert.Nil(t, login)
}
