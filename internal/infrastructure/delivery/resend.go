package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultResendURL endpoint de envío de la API de Resend.
const DefaultResendURL = "https://api.resend.com/emails"

// Resend emisor de correo vía la API HTTP de Resend.
type Resend struct {
	client  *http.Client
	apiKey  string
	from    string
	baseURL string
}

// NewResend construye el emisor contra DefaultResendURL.
func NewResend(client *http.Client, apiKey, from string) *Resend {
	return &Resend{client: client, apiKey: apiKey, from: from, baseURL: DefaultResendURL}
}

// WithBaseURL cambia el endpoint (tests).
func (r *Resend) WithBaseURL(u string) *Resend {
	r.baseURL = u
	return r
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (r *Resend) SendEmail(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(resendRequest{From: r.from, To: []string{to}, Subject: subject, Text: body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
