package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-ops-api/internal/domain"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want domain.Kind
	}{
		{domain.NotFound("venta"), domain.KindNotFound},
		{domain.ErrUserNotFound, domain.KindNotFound},
		{domain.Forbidden("otro tenant"), domain.KindAccessDenied},
		{domain.Invalid("cantidad %d", 0), domain.KindValidation},
		{domain.ErrAlreadyConfirmed, domain.KindConflict},
		{fmt.Errorf("%w: solo hay 2", domain.ErrInsufficientStock), domain.KindConflict},
		{domain.ErrInvalidTransition, domain.KindConflict},
		{domain.ErrEmailAlreadyExists, domain.KindConflict},
		{domain.ErrUnauthorized, domain.KindUnauthorized},
		{errors.New("connection reset"), domain.KindUnexpected},
		{nil, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.KindOf(tc.err), "%v", tc.err)
	}
}

func TestErroresEspecificosSonConflicto(t *testing.T) {
	assert.ErrorIs(t, domain.ErrAlreadyConfirmed, domain.ErrConflict)
	assert.ErrorIs(t, domain.ErrInsufficientStock, domain.ErrConflict)
	assert.NotErrorIs(t, domain.ErrAlreadyConfirmed, domain.ErrInsufficientStock)
}
