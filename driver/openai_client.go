package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/retry"
)

// ChatRequest is one schema-constrained completion.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       any
	MaxTokens    int
	Temperature  *float64
}

// ChatResponse carries the raw assistant content; parsing is the caller's job
// so malformed output can fall back to plain text.
type ChatResponse struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

type OpenAIClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	openai  openai.Client
	retrier *retry.Retrier
	logger  *slog.Logger
	model   string
	timeout time.Duration
}

// NewOpenAIClient returns a domain.ErrConfiguration error when no API key is set.
func NewOpenAIClient(cfg OpenAIClientConfig, httpClient *http.Client, retrier *retry.Retrier, logger *slog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, domain.Wrap(domain.ErrConfiguration, "generate-summary", "llm", "OPENAI_API_KEY is not set", nil)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// retries go through the shared retrier
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIClient{
		openai:  openai.NewClient(opts...),
		retrier: retrier,
		logger:  logger,
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

func (c *OpenAIClient) Model() string {
	return c.model
}

// Chat sends req and returns the first choice's content.
func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.SchemaName,
					Description: openai.String("Structured response schema"),
					Schema:      req.Schema,
					Strict:      openai.Bool(true),
				},
			},
		}
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	var resp *openai.ChatCompletion
	call := func() error {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		var err error
		resp, err = c.openai.Chat.Completions.New(callCtx, params)
		return err
	}

	start := time.Now()
	var err error
	if c.retrier != nil {
		err = c.retrier.Do(ctx, call)
	} else {
		err = call()
	}
	if err != nil {
		return nil, classifyChatError(err)
	}

	c.logger.DebugContext(ctx, "llm chat completed",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &ChatResponse{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

// GenerateSchema reflects T into a strict JSON schema for structured output.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// classifyChatError turns rejected credentials into a configuration error so the
// run aborts instead of summarizing every discussion with the same failure.
func classifyChatError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		return domain.Wrap(domain.ErrConfiguration, string(domain.StageGenerateSummary), "llm",
			fmt.Sprintf("OPENAI_API_KEY rejected with status %d", apiErr.StatusCode), err)
	}
	return fmt.Errorf("openai chat: %w", err)
}

// IsRetryableLLMError retries rate limits, server errors and transport failures.
func IsRetryableLLMError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}

	// per-call deadline hit; the outer context is checked by the retrier
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Network errors (no API response) are generally retryable
	return true
}
