package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/onboarding"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// AdminRequestHandler solicitudes de alta de negocios (multipart: businessDoc, ownerId, financeDoc).
type AdminRequestHandler struct {
	uc   *onboarding.UseCase
	errs errorWriter
}

// NewAdminRequestHandler construye el handler.
func NewAdminRequestHandler(uc *onboarding.UseCase, log *logger.Logger) *AdminRequestHandler {
	return &AdminRequestHandler{uc: uc, errs: errorWriter{log: log}}
}

// Submit godoc
// @Summary      Enviar solicitud de alta como admin
// @Tags         admin-requests
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        businessName  formData  string  true   "Nombre del negocio"
// @Param        businessType  formData  string  false  "Tipo de negocio"
// @Param        country       formData  string  false  "País"
// @Param        city          formData  string  false  "Ciudad"
// @Param        phone         formData  string  false  "Teléfono"
// @Param        reason        formData  string  false  "Motivo"
// @Param        businessDoc   formData  file    true   "Documento del negocio (pdf o imagen)"
// @Param        ownerId       formData  file    true   "Documento de identidad del dueño"
// @Param        financeDoc    formData  file    true   "Documento financiero"
// @Success      201  {object}  dto.AdminRequestCreatedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/requests [post]
func (h *AdminRequestHandler) Submit(c *fiber.Ctx) error {
	var in dto.AdminRequestForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	var docs onboarding.Documents
	for field, dst := range map[string]**onboarding.Document{
		"businessDoc": &docs.BusinessDoc,
		"ownerId":     &docs.OwnerID,
		"financeDoc":  &docs.FinanceDoc,
	} {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return h.errs.write(c, err)
		}
		defer f.Close()
		*dst = document(fh, f)
	}

	out, err := h.uc.Submit(c.UserContext(), principal(c), in, docs)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis solicitudes de alta
// @Tags         admin-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AdminRequestResponse
// @Router       /api/admin/requests [get]
func (h *AdminRequestHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), principal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

func document(fh *multipart.FileHeader, f multipart.File) *onboarding.Document {
	return &onboarding.Document{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
}
