package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/staff"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// StaffHandler managers, agentes y workers del tenant.
type StaffHandler struct {
	uc   *staff.UseCase
	errs errorWriter
}

// NewStaffHandler construye el handler.
func NewStaffHandler(uc *staff.UseCase, log *logger.Logger) *StaffHandler {
	return &StaffHandler{uc: uc, errs: errorWriter{log: log}}
}

// ── Managers ──────────────────────────────────────────────────────────────────

// CreateManager godoc
// @Summary      Crear manager (admin) y entregar credenciales
// @Tags         managers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManagerRequest  true  "Datos del manager"
// @Success      201   {object}  dto.ProvisionedResponse[dto.ManagerResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/managers [post]
func (h *StaffHandler) CreateManager(c *fiber.Ctx) error {
	var in dto.CreateManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateManager(c.UserContext(), principal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListManagers godoc
// @Summary      Listar managers del admin
// @Tags         managers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ManagerResponse
// @Router       /api/managers [get]
func (h *StaffHandler) ListManagers(c *fiber.Ctx) error {
	out, err := h.uc.ListManagers(c.UserContext(), principal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetManager godoc
// @Summary      Obtener manager
// @Tags         managers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del manager"
// @Success      200  {object}  dto.ManagerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/managers/{id} [get]
func (h *StaffHandler) GetManager(c *fiber.Ctx) error {
	out, err := h.uc.GetManager(c.UserContext(), principal(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdateManager godoc
// @Summary      Actualizar manager
// @Tags         managers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del manager"
// @Param        body  body  dto.UpdateManagerRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ManagerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/managers/{id} [put]
func (h *StaffHandler) UpdateManager(c *fiber.Ctx) error {
	var in dto.UpdateManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateManager(c.UserContext(), principal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DeleteManager godoc
// @Summary      Eliminar manager (desasigna agentes y workers)
// @Tags         managers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del manager"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/managers/{id} [delete]
func (h *StaffHandler) DeleteManager(c *fiber.Ctx) error {
	if err := h.uc.DeleteManager(c.UserContext(), principal(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Manager eliminado correctamente"})
}

// ── Agents ────────────────────────────────────────────────────────────────────

// CreateAgent godoc
// @Summary      Crear agente y entregar credenciales
// @Tags         agents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAgentRequest  true  "Datos del agente"
// @Success      201   {object}  dto.ProvisionedResponse[dto.AgentResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/agents [post]
func (h *StaffHandler) CreateAgent(c *fiber.Ctx) error {
	var in dto.CreateAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateAgent(c.UserContext(), principal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAgents godoc
// @Summary      Listar agentes del alcance
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AgentResponse
// @Router       /api/agents [get]
func (h *StaffHandler) ListAgents(c *fiber.Ctx) error {
	out, err := h.uc.ListAgents(c.UserContext(), principal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// AgentMe godoc
// @Summary      Perfil del agente autenticado
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AgentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agents/me [get]
func (h *StaffHandler) AgentMe(c *fiber.Ctx) error {
	out, err := h.uc.AgentMe(c.UserContext(), principal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetAgent godoc
// @Summary      Obtener agente
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del agente"
// @Success      200  {object}  dto.AgentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agents/{id} [get]
func (h *StaffHandler) GetAgent(c *fiber.Ctx) error {
	out, err := h.uc.GetAgent(c.UserContext(), principal(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdateAgent godoc
// @Summary      Actualizar agente
// @Tags         agents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del agente"
// @Param        body  body  dto.UpdateAgentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.AgentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/agents/{id} [put]
func (h *StaffHandler) UpdateAgent(c *fiber.Ctx) error {
	var in dto.UpdateAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateAgent(c.UserContext(), principal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DeleteAgent godoc
// @Summary      Eliminar agente y su login
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del agente"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/agents/{id} [delete]
func (h *StaffHandler) DeleteAgent(c *fiber.Ctx) error {
	if err := h.uc.DeleteAgent(c.UserContext(), principal(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Agente eliminado correctamente"})
}

// ResetAgentPassword godoc
// @Summary      Regenerar contraseña del agente y reenviar credenciales
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del agente"
// @Success      200  {object}  dto.DeliveryResult
// @Router       /api/agents/{id}/reset-password [post]
func (h *StaffHandler) ResetAgentPassword(c *fiber.Ctx) error {
	out, err := h.uc.ResetAgentPassword(c.UserContext(), principal(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// ── Workers ───────────────────────────────────────────────────────────────────

// CreateWorker godoc
// @Summary      Crear worker (sin login)
// @Tags         workers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkerRequest  true  "Datos del worker"
// @Success      201   {object}  dto.WorkerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/workers [post]
func (h *StaffHandler) CreateWorker(c *fiber.Ctx) error {
	var in dto.CreateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateWorker(c.UserContext(), principal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListWorkers godoc
// @Summary      Listar workers del alcance
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkerResponse
// @Router       /api/workers [get]
func (h *StaffHandler) ListWorkers(c *fiber.Ctx) error {
	out, err := h.uc.ListWorkers(c.UserContext(), principal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetWorker godoc
// @Summary      Obtener worker
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del worker"
// @Success      200  {object}  dto.WorkerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workers/{id} [get]
func (h *StaffHandler) GetWorker(c *fiber.Ctx) error {
	out, err := h.uc.GetWorker(c.UserContext(), principal(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdateWorker godoc
// @Summary      Actualizar worker
// @Tags         workers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del worker"
// @Param        body  body  dto.UpdateWorkerRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.WorkerResponse
// @Router       /api/workers/{id} [put]
func (h *StaffHandler) UpdateWorker(c *fiber.Ctx) error {
	var in dto.UpdateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateWorker(c.UserContext(), principal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DeleteWorker godoc
// @Summary      Eliminar worker
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del worker"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/workers/{id} [delete]
func (h *StaffHandler) DeleteWorker(c *fiber.Ctx) error {
	if err := h.uc.DeleteWorker(c.UserContext(), principal(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Worker eliminado correctamente"})
}

// ── Users ─────────────────────────────────────────────────────────────────────

// ListUsers godoc
// @Summary      Listar cuentas del tenant (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ManagedUserResponse
// @Router       /api/users [get]
func (h *StaffHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext(), principal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear cuenta (user, manager o agent) y entregar credenciales
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.ProvisionedResponse[dto.ManagedUserResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *StaffHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateUser(c.UserContext(), principal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser godoc
// @Summary      Actualizar cuenta y su perfil
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ManagedUserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *StaffHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateUser(c.UserContext(), principal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Eliminar cuenta y su perfil
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *StaffHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.UserContext(), principal(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Usuario eliminado correctamente"})
}

// ResetUserPassword godoc
// @Summary      Regenerar contraseña de un manager o agente y reenviar credenciales
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.DeliveryResult
// @Router       /api/users/{id}/reset-password [post]
func (h *StaffHandler) ResetUserPassword(c *fiber.Ctx) error {
	out, err := h.uc.ResetUserPassword(c.UserContext(), principal(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
