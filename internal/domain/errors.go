package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = fmt.Errorf("%w: usuario no encontrado", ErrNotFound)
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrAlreadyConfirmed   = fmt.Errorf("%w: pago ya confirmado", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
)

// Kind identificador estable del tipo de error, expuesto al cliente.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindAccessDenied Kind = "ACCESS_DENIED"
	KindValidation   Kind = "VALIDATION"
	KindConflict     Kind = "CONFLICT"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindUnexpected   Kind = "UNEXPECTED"
)

// KindOf clasifica un error. Cualquier error no reconocido es inesperado (datastore, interno).
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindAccessDenied
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrConflict), errors.Is(err, ErrEmailAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindUnexpected
	}
}

// Invalid envuelve ErrInvalidInput con un mensaje legible.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando qué recurso falta.
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// Forbidden envuelve ErrForbidden con el motivo.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
