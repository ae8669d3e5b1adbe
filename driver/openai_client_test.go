package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/retry"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1741000000,
	"model": "gpt-4o-mini",
	"choices": [{
		"index": 0,
		"finish_reason": "stop",
		"message": {"role": "assistant", "content": "{\"summary\":\"ok\",\"tags\":[]}"}
	}],
	"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
}`

type digestShape struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

func TestNewOpenAIClient(t *testing.T) {
	t.Run("should fail with a configuration error without an API key", func(t *testing.T) {
		_, err := NewOpenAIClient(OpenAIClientConfig{}, nil, nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.True(t, domain.IsFatal(err))
	})

	t.Run("should default the model", func(t *testing.T) {
		client, err := NewOpenAIClient(OpenAIClientConfig{APIKey: "sk-test"}, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", client.Model())
	})
}

func TestOpenAIClient_Chat(t *testing.T) {
	t.Run("should send a schema constrained request and return content", func(t *testing.T) {
		var payload map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &payload)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(completionBody))
		}))
		defer server.Close()

		client, err := NewOpenAIClient(OpenAIClientConfig{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-4o-mini"}, server.Client(), nil, nil)
		require.NoError(t, err)

		resp, err := client.Chat(context.Background(), ChatRequest{
			SystemPrompt: "system",
			UserPrompt:   "user",
			SchemaName:   "weekly_digest",
			Schema:       GenerateSchema[digestShape](),
			MaxTokens:    500,
		})

		require.NoError(t, err)
		assert.Equal(t, `{"summary":"ok","tags":[]}`, resp.Content)
		assert.Equal(t, 120, resp.PromptTokens)
		assert.Equal(t, 30, resp.CompletionTokens)

		require.NotNil(t, payload)
		assert.Equal(t, "gpt-4o-mini", payload["model"])
		format, ok := payload["response_format"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "json_schema", format["type"])
	})

	t.Run("should retry server errors through the retrier", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
				return
			}
			_, _ = w.Write([]byte(completionBody))
		}))
		defer server.Close()

		retrier := retry.NewRetrier(retry.RetryConfig{
			MaxAttempts:   2,
			BaseDelay:     time.Millisecond,
			MaxDelay:      time.Millisecond,
			BackoffFactor: 1,
		}, IsRetryableLLMError, nil)
		client, err := NewOpenAIClient(OpenAIClientConfig{APIKey: "sk-test", BaseURL: server.URL}, server.Client(), retrier, nil)
		require.NoError(t, err)

		resp, err := client.Chat(context.Background(), ChatRequest{SystemPrompt: "s", UserPrompt: "u"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Content)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("should not retry a bad request", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"bad schema","type":"invalid_request_error"}}`))
		}))
		defer server.Close()

		retrier := retry.NewRetrier(retry.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, BackoffFactor: 1}, IsRetryableLLMError, nil)
		client, err := NewOpenAIClient(OpenAIClientConfig{APIKey: "sk-test", BaseURL: server.URL}, server.Client(), retrier, nil)
		require.NoError(t, err)

		_, err = client.Chat(context.Background(), ChatRequest{SystemPrompt: "s", UserPrompt: "u"})

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
		assert.False(t, domain.IsFatal(err))
	})

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(fmt.Sprintf("should treat status %d as a fatal configuration error", status), func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
			}))
			defer server.Close()

			retrier := retry.NewRetrier(retry.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, BackoffFactor: 1}, IsRetryableLLMError, nil)
			client, err := NewOpenAIClient(OpenAIClientConfig{APIKey: "sk-revoked", BaseURL: server.URL}, server.Client(), retrier, nil)
			require.NoError(t, err)

			_, err = client.Chat(context.Background(), ChatRequest{SystemPrompt: "s", UserPrompt: "u"})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.True(t, domain.IsFatal(err))
			assert.Contains(t, err.Error(), "OPENAI_API_KEY rejected")
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestIsRetryableLLMError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "cancelled", err: fmt.Errorf("call: %w", context.Canceled), want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "transport", err: errors.New("connection reset by peer"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableLLMError(tt.err))
		})
	}
}
