// Package delivery implementa ports.CredentialDelivery: correo (Resend o SMTP) y SMS (Twilio) en paralelo.
package delivery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/pkg/config"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
	"github.com/jhoicas/retail-ops-api/pkg/metrics"
)

const (
	ReasonEmailNotConfigured = "email provider not configured"
	ReasonSMSNotConfigured   = "sms provider not configured"
	ReasonNoPhone            = "no phone number"
	ReasonNoEmail            = "no email address"
)

// EmailSender envía un mensaje de texto plano a una dirección.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender envía un SMS a un número.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

var _ ports.CredentialDelivery = (*Service)(nil)

// Service entrega credenciales por ambos canales. Un canal nil se informa como no configurado.
type Service struct {
	email   EmailSender
	sms     SMSSender
	timeout time.Duration
	log     *logger.Logger
}

// NewService construye el servicio con los emisores dados (cualquiera puede ser nil).
func NewService(email EmailSender, sms SMSSender, timeout time.Duration, log *logger.Logger) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{email: email, sms: sms, timeout: timeout, log: log.Named("delivery")}
}

// NewFromConfig elige proveedores según la configuración: Resend, luego SMTP; Twilio para SMS.
func NewFromConfig(cfg config.DeliveryConfig, log *logger.Logger) *Service {
	client := &http.Client{Timeout: cfg.Timeout}
	var email EmailSender
	switch {
	case cfg.ResendAPIKey != "":
		email = NewResend(client, cfg.ResendAPIKey, cfg.EmailFrom)
	case cfg.SMTPHost != "":
		email = NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	}
	var sms SMSSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		sms = NewTwilio(client, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}
	return NewService(email, sms, cfg.Timeout, log)
}

// DeliverCredentials envía correo y SMS concurrentemente; nunca reintenta ni devuelve error.
func (s *Service) DeliverCredentials(ctx context.Context, req ports.CredentialRequest) dto.DeliveryResult {
	var res dto.DeliveryResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Email = s.sendEmail(gctx, req)
		return nil
	})
	g.Go(func() error {
		res.SMS = s.sendSMS(gctx, req)
		return nil
	})
	_ = g.Wait()
	return res
}

func (s *Service) sendEmail(ctx context.Context, req ports.CredentialRequest) dto.ChannelResult {
	if s.email == nil {
		return s.result("email", req.ToEmail, dto.ChannelResult{Reason: ReasonEmailNotConfigured})
	}
	if strings.TrimSpace(req.ToEmail) == "" {
		return s.result("email", req.ToEmail, dto.ChannelResult{Reason: ReasonNoEmail})
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.email.SendEmail(ctx, req.ToEmail, credentialSubject(), credentialBody(req)); err != nil {
		return s.result("email", req.ToEmail, dto.ChannelResult{Reason: err.Error()})
	}
	return s.result("email", req.ToEmail, dto.ChannelResult{Sent: true})
}

func (s *Service) sendSMS(ctx context.Context, req ports.CredentialRequest) dto.ChannelResult {
	if s.sms == nil {
		return s.result("sms", req.ToPhone, dto.ChannelResult{Reason: ReasonSMSNotConfigured})
	}
	if strings.TrimSpace(req.ToPhone) == "" {
		return s.result("sms", req.ToPhone, dto.ChannelResult{Reason: ReasonNoPhone})
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.sms.SendSMS(ctx, req.ToPhone, credentialSMS(req)); err != nil {
		return s.result("sms", req.ToPhone, dto.ChannelResult{Reason: err.Error()})
	}
	return s.result("sms", req.ToPhone, dto.ChannelResult{Sent: true})
}

func (s *Service) result(channel, to string, r dto.ChannelResult) dto.ChannelResult {
	if r.Sent {
		metrics.CredentialDeliveries.WithLabelValues(channel, "sent").Inc()
		s.log.Info().Str("channel", channel).Str("to", to).Msg("credenciales enviadas")
		return r
	}
	metrics.CredentialDeliveries.WithLabelValues(channel, "failed").Inc()
	s.log.Warn().Str("channel", channel).Str("to", to).Str("reason", r.Reason).Msg("credenciales no enviadas")
	return r
}

func credentialSubject() string {
	return "Tus credenciales de acceso"
}

func credentialBody(req ports.CredentialRequest) string {
	return fmt.Sprintf("Hola %s,\n\nSe ha creado tu cuenta con rol %s.\n\nUsuario: %s\nContraseña temporal: %s\n\nCambia la contraseña al iniciar sesión.\n",
		req.Name, req.Role, req.ToEmail, req.Password)
}

func credentialSMS(req ports.CredentialRequest) string {
	return fmt.Sprintf("Hola %s, tu usuario es %s y tu contraseña temporal %s", req.Name, req.ToEmail, req.Password)
}
