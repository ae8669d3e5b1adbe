package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

// EmailMessage is a single transactional email.
type EmailMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

const (
	resendBreakerThreshold = 5
	resendBreakerCooldown  = time.Minute
)

type resendResponse struct {
	ID string `json:"id"`
}

// ResendClient sends mail through the Resend HTTP API. After repeated transient
// failures the remaining sends fail fast until the provider recovers.
type ResendClient struct {
	httpClient *http.Client
	breaker    *utils.CircuitBreaker
	logger     *slog.Logger
	apiKey     string
	baseURL    string
}

// NewResendClient returns a domain.ErrConfiguration error when no API key is set.
func NewResendClient(httpClient *http.Client, apiKey, baseURL string, logger *slog.Logger) (*ResendClient, error) {
	if apiKey == "" {
		return nil, domain.Wrap(domain.ErrConfiguration, "send-summary", "resend", "RESEND_API_KEY is not set", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	breaker := utils.NewCircuitBreaker(utils.CircuitBreakerOptions{
		Threshold: resendBreakerThreshold,
		Cooldown:  resendBreakerCooldown,
		Trips:     apperrors.IsRetryable,
	})
	return &ResendClient{
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logger,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// Send posts msg and returns the provider's message id.
func (c *ResendClient) Send(ctx context.Context, msg EmailMessage) (string, error) {
	var id string
	err := c.breaker.Call(func() error {
		var err error
		id, err = c.send(ctx, msg)
		return err
	})
	if errors.Is(err, utils.ErrCircuitOpen) {
		return "", domain.Wrap(domain.ErrFetch, "send-summary", "resend", "provider unavailable", err)
	}
	return id, err
}

func (c *ResendClient) send(ctx context.Context, msg EmailMessage) (string, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	endpoint := c.baseURL + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.Wrap(domain.ErrFetch, "send-summary", "resend", "request failed", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.ErrorContext(ctx, "Resend returned non-2xx status",
			"status", resp.StatusCode,
			"body", string(body))
		return "", domain.Wrap(domain.ErrFetch, "send-summary", "resend", "",
			&apperrors.HTTPStatusError{URL: endpoint, StatusCode: resp.StatusCode})
	}

	var parsed resendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Resend response: %w", err)
	}

	return parsed.ID, nil
}
