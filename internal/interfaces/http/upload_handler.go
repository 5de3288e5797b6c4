package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/usecase"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// UploadHandler subida de imágenes (multipart, campo "file").
type UploadHandler struct {
	uc   *usecase.UploadUseCase
	errs errorWriter
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uc: uc, errs: errorWriter{log: log}}
}

// Upload godoc
// @Summary      Subir imagen
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen (jpeg, png, webp, gif)"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.errs.write(c, domain.Invalid("campo file requerido"))
	}
	f, err := fh.Open()
	if err != nil {
		return h.errs.write(c, err)
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), principal(c), fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
