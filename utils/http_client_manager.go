package utils

import (
	"net/http"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

// HTTPClientManager holds the outbound HTTP clients, one per upstream class.
type HTTPClientManager struct {
	archiveClient *http.Client
	apiClient     *http.Client
	llmClient     *http.Client
}

// optimizedTransport wraps http.Transport to expose fields for testing
type optimizedTransport struct {
	*http.Transport
}

func NewHTTPClientManager(cfg config.HTTPConfig) *HTTPClientManager {
	m := &HTTPClientManager{}
	m.archiveClient = m.createOptimizedClient(cfg, cfg.Timeout)
	m.apiClient = m.createOptimizedClient(cfg, cfg.Timeout)
	// LLM calls are bounded by the caller's context instead of Client.Timeout.
	m.llmClient = m.createOptimizedClient(cfg, 0)
	return m
}

// GetArchiveClient returns the client used for archive and commitfest pages.
func (m *HTTPClientManager) GetArchiveClient() *http.Client {
	return m.archiveClient
}

// GetAPIClient returns the client used for JSON APIs such as Resend.
func (m *HTTPClientManager) GetAPIClient() *http.Client {
	return m.apiClient
}

// GetLLMClient returns the client handed to the OpenAI SDK.
func (m *HTTPClientManager) GetLLMClient() *http.Client {
	return m.llmClient
}

func (m *HTTPClientManager) createOptimizedClient(cfg config.HTTPConfig, timeout time.Duration) *http.Client {
	transport := &optimizedTransport{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          cfg.MaxIdleConns,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
			TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
