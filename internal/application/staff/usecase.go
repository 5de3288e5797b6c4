// Package staff aprovisiona managers, agentes y workers dentro del tenant del llamador.
// Managers y agentes reciben login con contraseña temporal entregada por email y SMS.
package staff

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/notification"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// UseCase casos de uso de personal.
type UseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repositories
	resolver *hierarchy.Resolver
	delivery ports.CredentialDelivery
	notifier notification.Notifier
	log      *logger.Logger

	now      func() time.Time
	newID    func() string
	password func() (string, error)
}

// NewUseCase construye el caso de uso. repos son los repositorios fuera de transacción.
func NewUseCase(
	txRunner repository.TxRunner,
	repos repository.Repositories,
	resolver *hierarchy.Resolver,
	delivery ports.CredentialDelivery,
	notifier notification.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		repos:    repos,
		resolver: resolver,
		delivery: delivery,
		notifier: notifier,
		log:      log.Named("staff"),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
		password: GeneratePassword,
	}
}

// supervisor resuelve al llamador y exige rol admin o manager.
func (uc *UseCase) supervisor(ctx context.Context, p entity.Principal) (*hierarchy.Position, error) {
	if !p.Is(entity.RoleAdmin, entity.RoleManager) {
		return nil, domain.Forbidden("solo admin o manager gestionan personal")
	}
	return uc.resolver.Resolve(ctx, p)
}

// tenantManager valida que managerID pertenezca al tenant; "" es válido (sin asignar).
func (uc *UseCase) tenantManager(ctx context.Context, ownerAdmin, managerID string) (*entity.Manager, error) {
	if managerID == "" {
		return nil, nil
	}
	m, err := uc.repos.Managers.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.AdminID != ownerAdmin {
		return nil, domain.Invalid("managerId no pertenece a tu organización")
	}
	return m, nil
}

// newLogin prepara el User de una cuenta aprovisionada y su contraseña en claro.
func (uc *UseCase) newLogin(ctx context.Context, name, email, phone, role, ownerAdmin string) (*entity.User, string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", domain.Invalid("email inválido")
	}
	existing, err := uc.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailAlreadyExists
	}
	plain, hash, err := uc.newPassword()
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	return &entity.User{
		ID:             uc.newID(),
		Name:           name,
		Email:          email,
		Phone:          phone,
		PasswordHash:   hash,
		Role:           role,
		CreatedByAdmin: ownerAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, plain, nil
}

func (uc *UseCase) newPassword() (plain, hash string, err error) {
	plain, err = uc.password()
	if err != nil {
		return "", "", err
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return plain, string(b), nil
}

// deliver entrega credenciales; el resultado se devuelve tal cual, sin reintentos.
func (uc *UseCase) deliver(ctx context.Context, u *entity.User, plain string) dto.DeliveryResult {
	res := uc.delivery.DeliverCredentials(ctx, ports.CredentialRequest{
		ToEmail:  u.Email,
		ToPhone:  u.Phone,
		Name:     u.Name,
		Role:     u.Role,
		Password: plain,
	})
	uc.log.Info().
		Str("user_id", u.ID).
		Bool("email_sent", res.Email.Sent).
		Bool("sms_sent", res.SMS.Sent).
		Msg("credenciales entregadas")
	return res
}

// deleteLogin borra la cuenta asociada a un perfil (por email), si existe.
func deleteLogin(ctx context.Context, users repository.UserRepository, email string) error {
	u, err := users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return err
	}
	return users.Delete(ctx, u.ID)
}

func (uc *UseCase) notify(recipientID, role string, sender entity.Principal, typ entity.NotificationType, title, msg string, ref entity.RefModel, refID string) {
	if recipientID == "" || recipientID == sender.UserID {
		return
	}
	uc.notifier.Notify(entity.Notification{
		RecipientID:   recipientID,
		RecipientRole: role,
		SenderID:      sender.UserID,
		Type:          typ,
		Title:         title,
		Message:       msg,
		RefModel:      ref,
		RefID:         refID,
	})
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid("name es requerido")
	}
	return name, nil
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
