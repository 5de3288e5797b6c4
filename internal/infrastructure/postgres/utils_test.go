package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otra cosa")))
}

func TestScopeWhere(t *testing.T) {
	where, args := scopeWhere(entity.SaleScope{OwnerAdmin: "a1"})
	assert.Equal(t, "owner_admin = $1", where)
	assert.Equal(t, []any{"a1"}, args)

	where, args = scopeWhere(entity.SaleScope{OwnerAdmin: "a1", AgentID: "g1"})
	assert.Equal(t, "owner_admin = $1 AND agent_id = $2", where)
	assert.Equal(t, []any{"a1", "g1"}, args)

	where, _ = scopeWhere(entity.SaleScope{})
	assert.Contains(t, where, "FALSE", "sin tenant no hay filas")
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", nullable("x"))
}
