package staff

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// ListUsers cuentas del tenant: el propio admin y las que aprovisionó.
// Los agentes salen con el id, nombre y email de su manager.
func (uc *UseCase) ListUsers(ctx context.Context, p entity.Principal) ([]dto.ManagedUserResponse, error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin gestiona usuarios")
	}
	list, err := uc.repos.Users.ListByCreator(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	self, err := uc.repos.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if self != nil {
		list = append(list, self)
	}

	managers := map[string]*entity.Manager{}
	out := make([]dto.ManagedUserResponse, 0, len(list))
	for _, u := range list {
		item := dto.ManagedUserResponse{UserResponse: *auth.ToUserResponse(u)}
		if item.Role == entity.RoleAgent {
			if err := uc.withAgentManager(ctx, &item, managers); err != nil {
				return nil, err
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *UseCase) withAgentManager(ctx context.Context, item *dto.ManagedUserResponse, cache map[string]*entity.Manager) error {
	a, err := uc.repos.Agents.GetByEmail(ctx, item.Email)
	if err != nil || a == nil || a.ManagerID == "" {
		return err
	}
	m, ok := cache[a.ManagerID]
	if !ok {
		if m, err = uc.repos.Managers.GetByID(ctx, a.ManagerID); err != nil {
			return err
		}
		cache[a.ManagerID] = m
	}
	item.ManagerID = a.ManagerID
	if m != nil {
		item.ManagerName = m.Name
		item.ManagerEmail = m.Email
	}
	return nil
}

// CreateUser crea una cuenta del tenant con contraseña generada. Para manager y agent se crea
// también el perfil en la misma transacción; después se entregan las credenciales.
func (uc *UseCase) CreateUser(ctx context.Context, p entity.Principal, in dto.CreateUserRequest) (*dto.ProvisionedResponse[dto.ManagedUserResponse], error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin gestiona usuarios")
	}
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	role := entity.NormalizeRole(in.Role)
	phone := strings.TrimSpace(in.Phone)
	var manager *entity.Manager
	switch role {
	case entity.RoleUser:
	case entity.RoleManager:
		if phone == "" {
			return nil, domain.Invalid("phone es requerido para managers")
		}
	case entity.RoleAgent:
		if phone == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.GovernmentID) == "" || strings.TrimSpace(in.ManagerID) == "" {
			return nil, domain.Invalid("phone, location, governmentId y managerId son requeridos para agentes")
		}
		if manager, err = uc.tenantManager(ctx, p.UserID, strings.TrimSpace(in.ManagerID)); err != nil {
			return nil, err
		}
	default:
		return nil, domain.Invalid("role debe ser user, manager o agent")
	}

	user, plain, err := uc.newLogin(ctx, name, entity.NormalizeEmail(in.Email), phone, role, p.UserID)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = strings.TrimSpace(in.ProfilePicture)
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		switch role {
		case entity.RoleManager:
			m := newManagerProfile(uc.newID(), user)
			m.Address = strings.TrimSpace(in.Address)
			m.GovernmentID = strings.TrimSpace(in.GovernmentID)
			return tx.Managers.Create(ctx, m)
		case entity.RoleAgent:
			a := newAgentProfile(uc.newID(), user, manager)
			a.Location = strings.TrimSpace(in.Location)
			a.Address = strings.TrimSpace(in.Address)
			a.GovernmentID = strings.TrimSpace(in.GovernmentID)
			return tx.Agents.Create(ctx, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := dto.ManagedUserResponse{UserResponse: *auth.ToUserResponse(user)}
	if manager != nil {
		out.ManagerID, out.ManagerName, out.ManagerEmail = manager.ID, manager.Name, manager.Email
	}
	return &dto.ProvisionedResponse[dto.ManagedUserResponse]{
		Message:  "Usuario creado correctamente",
		Data:     out,
		Delivery: uc.deliver(ctx, user, plain),
	}, nil
}

// UpdateUser edita nombre, email, rol y foto de una cuenta del tenant y lleva los cambios a su perfil.
// Al cambiar de rol el perfil anterior queda inactivo y el del rol nuevo se crea o reactiva.
// managerId reasigna (o con "" desasigna) el perfil de agente.
func (uc *UseCase) UpdateUser(ctx context.Context, p entity.Principal, id string, in dto.UpdateUserRequest) (*dto.ManagedUserResponse, error) {
	user, err := uc.ownUser(ctx, p, id)
	if err != nil {
		return nil, err
	}
	prevEmail, prevRole := user.Email, entity.NormalizeRole(user.Role)

	if in.Name != nil {
		if user.Name, err = requireName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.Invalid("email inválido")
		}
		user.Email = email
	}
	if in.Role != nil {
		role := entity.NormalizeRole(*in.Role)
		if role != entity.RoleUser && role != entity.RoleManager && role != entity.RoleAgent {
			return nil, domain.Invalid("role debe ser user, manager o agent")
		}
		user.Role = role
	}
	set(&user.ProfilePicture, in.ProfilePicture)

	var manager *entity.Manager
	if in.ManagerID != nil {
		if prevRole != entity.RoleAgent && user.Role != entity.RoleAgent {
			return nil, domain.Invalid("managerId solo aplica a agentes")
		}
		if manager, err = uc.tenantManager(ctx, p.UserID, strings.TrimSpace(*in.ManagerID)); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	user.UpdatedAt = now
	sync := profileSync{user: user, prevEmail: prevEmail, prevRole: prevRole, in: in, manager: manager, now: now}
	err = uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		if err := uc.syncManager(ctx, tx.Managers, sync); err != nil {
			return err
		}
		return uc.syncAgent(ctx, tx.Agents, sync)
	})
	if err != nil {
		return nil, err
	}

	out := dto.ManagedUserResponse{UserResponse: *auth.ToUserResponse(user)}
	if out.Role == entity.RoleAgent {
		if err := uc.withAgentManager(ctx, &out, map[string]*entity.Manager{}); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// profileSync cambios de una cuenta que hay que llevar a sus perfiles.
type profileSync struct {
	user      *entity.User
	prevEmail string
	prevRole  string
	in        dto.UpdateUserRequest
	manager   *entity.Manager
	now       time.Time
}

func (s profileSync) role() string { return entity.NormalizeRole(s.user.Role) }

func (uc *UseCase) syncManager(ctx context.Context, managers repository.ManagerRepository, s profileSync) error {
	if s.prevRole != entity.RoleManager && s.role() != entity.RoleManager {
		return nil
	}
	m, err := managers.GetByEmail(ctx, s.prevEmail)
	if err != nil {
		return err
	}
	if m == nil {
		if s.role() != entity.RoleManager {
			return nil
		}
		return managers.Create(ctx, newManagerProfile(uc.newID(), s.user))
	}
	m.Email = s.user.Email
	if s.in.Name != nil {
		m.Name = s.user.Name
	}
	if s.in.ProfilePicture != nil {
		m.ProfilePicture = s.user.ProfilePicture
	}
	if s.role() != s.prevRole {
		m.IsActive = s.role() == entity.RoleManager
	}
	m.UpdatedAt = s.now
	return managers.Update(ctx, m)
}

func (uc *UseCase) syncAgent(ctx context.Context, agents repository.AgentRepository, s profileSync) error {
	if s.prevRole != entity.RoleAgent && s.role() != entity.RoleAgent {
		return nil
	}
	a, err := agents.GetByEmail(ctx, s.prevEmail)
	if err != nil {
		return err
	}
	if a == nil {
		if s.role() != entity.RoleAgent {
			return nil
		}
		return agents.Create(ctx, newAgentProfile(uc.newID(), s.user, s.manager))
	}
	a.Email = s.user.Email
	if s.in.Name != nil {
		a.Name = s.user.Name
	}
	if s.in.ProfilePicture != nil {
		a.ProfilePicture = s.user.ProfilePicture
	}
	if s.role() != s.prevRole {
		a.IsActive = s.role() == entity.RoleAgent
	}
	if s.in.ManagerID != nil {
		a.ManagerID = ""
		if s.manager != nil {
			a.ManagerID = s.manager.ID
		}
	}
	a.UpdatedAt = s.now
	return agents.Update(ctx, a)
}

// DeleteUser borra una cuenta del tenant y su perfil. El admin no puede borrarse a sí mismo.
// Borrar un manager deja sin asignar a sus agentes y workers.
func (uc *UseCase) DeleteUser(ctx context.Context, p entity.Principal, id string) error {
	if p.Is(entity.RoleAdmin) && id == p.UserID {
		return domain.Invalid("no puedes borrar tu propia cuenta")
	}
	user, err := uc.ownUser(ctx, p, id)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(tx repository.Repositories) error {
		switch entity.NormalizeRole(user.Role) {
		case entity.RoleManager:
			m, err := tx.Managers.GetByEmail(ctx, user.Email)
			if err != nil {
				return err
			}
			if m != nil {
				if err := tx.Agents.UnassignManager(ctx, m.ID); err != nil {
					return err
				}
				if err := tx.Workers.UnassignManager(ctx, m.ID); err != nil {
					return err
				}
				if err := tx.Managers.Delete(ctx, m.ID); err != nil {
					return err
				}
			}
		case entity.RoleAgent:
			a, err := tx.Agents.GetByEmail(ctx, user.Email)
			if err != nil {
				return err
			}
			if a != nil {
				if err := tx.Agents.Delete(ctx, a.ID); err != nil {
					return err
				}
			}
		}
		return tx.Users.Delete(ctx, user.ID)
	})
}

// ResetUserPassword nueva contraseña temporal para un manager o agente del tenant.
// El SMS va al teléfono del perfil.
func (uc *UseCase) ResetUserPassword(ctx context.Context, p entity.Principal, id string) (*dto.DeliveryResult, error) {
	user, err := uc.ownUser(ctx, p, id)
	if err != nil {
		return nil, err
	}
	phone := ""
	switch entity.NormalizeRole(user.Role) {
	case entity.RoleManager:
		m, err := uc.repos.Managers.GetByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.NotFound("perfil de manager")
		}
		phone = m.Phone
	case entity.RoleAgent:
		a, err := uc.repos.Agents.GetByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.NotFound("perfil de agente")
		}
		phone = a.Phone
	default:
		return nil, domain.Invalid("solo se restablece la contraseña de managers y agentes")
	}

	plain, hash, err := uc.newPassword()
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	if err := uc.repos.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	to := *user
	to.Phone = phone
	res := uc.deliver(ctx, &to, plain)
	return &res, nil
}

// ownUser cuenta aprovisionada por el admin llamador; cualquier otra es NotFound.
func (uc *UseCase) ownUser(ctx context.Context, p entity.Principal, id string) (*entity.User, error) {
	if !p.Is(entity.RoleAdmin) {
		return nil, domain.Forbidden("solo el admin gestiona usuarios")
	}
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.CreatedByAdmin != p.UserID {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func newManagerProfile(id string, u *entity.User) *entity.Manager {
	return &entity.Manager{
		ID:             id,
		AdminID:        u.CreatedByAdmin,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		IsActive:       true,
		CreatedAt:      u.UpdatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func newAgentProfile(id string, u *entity.User, manager *entity.Manager) *entity.Agent {
	a := &entity.Agent{
		ID:             id,
		OwnerAdmin:     u.CreatedByAdmin,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		IsActive:       true,
		CreatedAt:      u.UpdatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if manager != nil {
		a.ManagerID = manager.ID
	}
	return a
}
