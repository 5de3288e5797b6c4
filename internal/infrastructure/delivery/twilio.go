package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultTwilioURL base de la API REST de Twilio.
const DefaultTwilioURL = "https://api.twilio.com/2010-04-01"

// Twilio emisor de SMS vía la API REST de Twilio (formulario + basic auth).
type Twilio struct {
	client     *http.Client
	accountSID string
	authToken  string
	from       string
	baseURL    string
}

// NewTwilio construye el emisor contra DefaultTwilioURL.
func NewTwilio(client *http.Client, accountSID, authToken, from string) *Twilio {
	return &Twilio{client: client, accountSID: accountSID, authToken: authToken, from: from, baseURL: DefaultTwilioURL}
}

// WithBaseURL cambia la base de la API (tests).
func (t *Twilio) WithBaseURL(u string) *Twilio {
	t.baseURL = strings.TrimRight(u, "/")
	return t
}

func (t *Twilio) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, url.PathEscape(t.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
