package delivery

import (
	"context"

	"gopkg.in/gomail.v2"
)

// SMTP emisor de correo vía servidor SMTP (gomail).
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP construye el emisor; user vacío = sin autenticación.
func NewSMTP(host string, port int, user, password, from string) *SMTP {
	return &SMTP{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

// SendEmail gomail no acepta contexto: el envío corre en una goroutine y se abandona si ctx vence.
func (s *SMTP) SendEmail(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
