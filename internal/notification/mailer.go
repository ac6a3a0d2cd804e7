package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"slmarkets/internal/config"
	apperrors "slmarkets/internal/errors"
)

// Mailer delivers a single rendered email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// HTTPMailer talks to a Resend-compatible email API.
type HTTPMailer struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewHTTPMailer(cfg config.MailConfig) *HTTPMailer {
	return &HTTPMailer{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		from:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *HTTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(sendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return apperrors.NewNotificationError("failed to encode email payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return apperrors.NewNotificationError("failed to build email request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNotificationError("email request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.NewNotificationError(
			fmt.Sprintf("email API returned status %d: %s", resp.StatusCode, string(body)), nil)
	}

	return nil
}
