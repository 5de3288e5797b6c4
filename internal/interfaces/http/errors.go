package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

var kindStatus = map[domain.Kind]int{
	domain.KindNotFound:     fiber.StatusNotFound,
	domain.KindAccessDenied: fiber.StatusForbidden,
	domain.KindValidation:   fiber.StatusBadRequest,
	domain.KindConflict:     fiber.StatusBadRequest,
	domain.KindUnauthorized: fiber.StatusUnauthorized,
}

// errorWriter traduce errores de dominio a dto.ErrorResponse; los inesperados se registran y se ocultan.
type errorWriter struct {
	log *logger.Logger
}

func (w errorWriter) write(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		w.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error inesperado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: string(domain.KindUnexpected), Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(kind), Message: publicMessage(err)})
}

// publicMessage mensaje del error sin el prefijo repetido del sentinel.
func publicMessage(err error) string {
	msg := err.Error()
	for _, s := range []error{domain.ErrNotFound, domain.ErrForbidden, domain.ErrInvalidInput, domain.ErrConflict, domain.ErrUnauthorized} {
		if errors.Is(err, s) {
			if rest := strings.TrimPrefix(msg, s.Error()+": "); rest != "" {
				return rest
			}
		}
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: string(domain.KindValidation), Message: "cuerpo inválido"})
}
