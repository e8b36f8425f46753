package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS delivers messages through the EmailJS REST API.
type EmailJS struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is sent as the access token when the account requires it.
	PrivateKey string
	Client     *http.Client
}

type emailJSRequest struct {
	ServiceID      string  `json:"service_id"`
	TemplateID     string  `json:"template_id"`
	UserID         string  `json:"user_id"`
	AccessToken    string  `json:"accessToken,omitempty"`
	TemplateParams Message `json:"template_params"`
}

// Deliver posts the message as template params.
func (e *EmailJS) Deliver(ctx context.Context, m Message) error {
	if e.ServiceID == "" || e.TemplateID == "" || e.PublicKey == "" {
		return fmt.Errorf("EmailJS credentials not configured")
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.ServiceID,
		TemplateID:     e.TemplateID,
		UserID:         e.PublicKey,
		AccessToken:    e.PrivateKey,
		TemplateParams: m,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := e.Endpoint
	if endpoint == "" {
		endpoint = DefaultEmailJSEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("EmailJS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("EmailJS returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
