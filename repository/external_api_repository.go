package repository

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/retry"
)

// SummarizerAPIRepository implementation. A missing API key is kept as a
// configuration error and returned on every call.
type summarizerAPIRepository struct {
	client    *driver.OpenAIClient
	configErr error
	logger    *slog.Logger
}

// NewSummarizerAPIRepository creates the LLM repository. It never fails so that
// ingestion keeps working without LLM credentials.
func NewSummarizerAPIRepository(cfg driver.OpenAIClientConfig, httpClient *http.Client, retrier *retry.Retrier, logger *slog.Logger) SummarizerAPIRepository {
	client, err := driver.NewOpenAIClient(cfg, httpClient, retrier, logger)
	if err != nil {
		logger.Warn("LLM client not configured; summary generation will fail", "error", err)
	}
	return &summarizerAPIRepository{
		client:    client,
		configErr: err,
		logger:    logger,
	}
}

func (r *summarizerAPIRepository) CheckConfigured() error {
	return r.configErr
}

func (r *summarizerAPIRepository) Complete(ctx context.Context, req driver.ChatRequest) (*driver.ChatResponse, error) {
	if r.configErr != nil {
		return nil, r.configErr
	}
	return r.client.Chat(ctx, req)
}

// MailerRepository implementation.
type mailerRepository struct {
	client    *driver.ResendClient
	configErr error
	logger    *slog.Logger
}

func NewMailerRepository(httpClient *http.Client, apiKey, baseURL string, logger *slog.Logger) MailerRepository {
	client, err := driver.NewResendClient(httpClient, apiKey, baseURL, logger)
	if err != nil {
		logger.Warn("mail delivery not configured; send-summary will fail", "error", err)
	}
	return &mailerRepository{
		client:    client,
		configErr: err,
		logger:    logger,
	}
}

func (r *mailerRepository) CheckConfigured() error {
	return r.configErr
}

func (r *mailerRepository) Send(ctx context.Context, msg driver.EmailMessage) (string, error) {
	if r.configErr != nil {
		return "", r.configErr
	}
	return r.client.Send(ctx, msg)
}
