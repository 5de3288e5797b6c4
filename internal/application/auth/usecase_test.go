package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
	"github.com/jhoicas/retail-ops-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.New().Repositories().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestSignupYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	u, err := uc.Signup(ctx, dto.SignupRequest{Name: "Ana", Email: " Ana@Example.com ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Empty(t, u.CreatedByAdmin)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, 3600, out.ExpiresIn)

	userID, email, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "ana@example.com", email)
	assert.Equal(t, entity.RoleUser, role)

	me, err := uc.Me(ctx, entity.Principal{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestSignup_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "x@example.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "no-es-email", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "x@example.com", Password: "secreto123"})
	require.NoError(t, err)
	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "X@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.CreateAdmin(ctx, dto.SignupRequest{Email: "admin@example.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	u, err := uc.Signup(ctx, dto.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	p := entity.Principal{UserID: u.ID, Email: u.Email, Role: entity.RoleUser}

	err = uc.ChangePassword(ctx, p, dto.ChangePasswordRequest{CurrentPassword: "otra-cosa", NewPassword: "nuevo-secreto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = uc.ChangePassword(ctx, p, dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = uc.ChangePassword(ctx, p, dto.ChangePasswordRequest{NewPassword: "nuevo-secreto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, p, dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "nuevo-secreto"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nuevo-secreto"})
	assert.NoError(t, err)
}
