package hierarchy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
)

func newResolver(t *testing.T) (*hierarchy.Resolver, *memory.Store, memory.Tenant) {
	t.Helper()
	store := memory.New()
	tenant := store.SeedTenant("t1", "")
	repos := store.Repositories()
	return hierarchy.NewResolver(repos.Users, repos.Managers, repos.Agents), store, tenant
}

func TestResolve_Admin(t *testing.T) {
	r, _, tenant := newResolver(t)

	scope, err := r.ResolveScope(context.Background(), tenant.AdminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, entity.SaleScope{OwnerAdmin: tenant.Admin.ID}, scope)
}

func TestResolve_Manager(t *testing.T) {
	r, _, tenant := newResolver(t)

	pos, err := r.Resolve(context.Background(), tenant.ManagerPrincipal())
	require.NoError(t, err)
	assert.Equal(t, tenant.Admin.ID, pos.OwnerAdmin)
	assert.Equal(t, entity.SaleScope{OwnerAdmin: tenant.Admin.ID, ManagerID: tenant.Manager.ID}, pos.Scope())
	assert.Equal(t, "Manager Manager t1", pos.ActorLabel())
}

func TestResolve_AgentDosSaltos(t *testing.T) {
	r, _, tenant := newResolver(t)

	pos, err := r.Resolve(context.Background(), tenant.AgentPrincipal())
	require.NoError(t, err)
	assert.Equal(t, tenant.Admin.ID, pos.OwnerAdmin)
	assert.Equal(t, tenant.Manager.ID, pos.ManagerID())
	assert.Equal(t, entity.SaleScope{OwnerAdmin: tenant.Admin.ID, AgentID: tenant.Agent.ID}, pos.Scope())
}

func TestResolve_AgentSinManagerUsaCreatedByAdmin(t *testing.T) {
	r, store, tenant := newResolver(t)
	ctx := context.Background()
	require.NoError(t, store.Repositories().Agents.UnassignManager(ctx, tenant.Manager.ID))

	pos, err := r.Resolve(ctx, tenant.AgentPrincipal())
	require.NoError(t, err)
	assert.Equal(t, tenant.Admin.ID, pos.OwnerAdmin)
	assert.Nil(t, pos.Manager)
	assert.Equal(t, entity.SaleScope{OwnerAdmin: tenant.Admin.ID, AgentID: tenant.Agent.ID}, pos.Scope())
}

func TestResolve_AgentSinManagerNiCreador_NotFound(t *testing.T) {
	r, store, tenant := newResolver(t)
	ctx := context.Background()
	repos := store.Repositories()
	require.NoError(t, repos.Agents.UnassignManager(ctx, tenant.Manager.ID))
	u := tenant.AgentUser
	u.CreatedByAdmin = ""
	require.NoError(t, repos.Users.Update(ctx, &u))

	_, err := r.ResolveOwnerAdmin(ctx, tenant.AgentPrincipal())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_PerfilInexistente_NotFound(t *testing.T) {
	r, _, _ := newResolver(t)

	_, err := r.Resolve(context.Background(), entity.Principal{UserID: "x", Email: "nadie@x.test", Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Resolve(context.Background(), entity.Principal{UserID: "x", Email: "nadie@x.test", Role: "agent"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_RolSinAlcance_Forbidden(t *testing.T) {
	r, _, _ := newResolver(t)

	_, err := r.Resolve(context.Background(), entity.Principal{UserID: "u", Email: "u@x.test", Role: "user"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResolve_RolSeNormaliza(t *testing.T) {
	r, _, tenant := newResolver(t)
	p := tenant.ManagerPrincipal()
	p.Role = "  MANAGER "

	owner, err := r.ResolveOwnerAdmin(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, tenant.Admin.ID, owner)
}

func TestManagerYAgentUserID(t *testing.T) {
	r, _, tenant := newResolver(t)
	ctx := context.Background()

	id, err := r.ManagerUserID(ctx, tenant.Manager.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.ManagerUser.ID, id)

	id, err = r.AgentUserID(ctx, tenant.Agent.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.AgentUser.ID, id)

	id, err = r.ManagerUserID(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, id)
}
