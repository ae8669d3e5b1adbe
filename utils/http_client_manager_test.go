package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

func testHTTPConfig() config.HTTPConfig {
	return config.HTTPConfig{
		Timeout:             30 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}

func TestHTTPClientManager_GetArchiveClient(t *testing.T) {
	t.Run("should apply configured timeout and pool settings", func(t *testing.T) {
		manager := NewHTTPClientManager(testHTTPConfig())
		client := manager.GetArchiveClient()

		require.NotNil(t, client)
		assert.Equal(t, 30*time.Second, client.Timeout)

		transport, ok := client.Transport.(*optimizedTransport)
		require.True(t, ok)
		assert.Equal(t, 10, transport.MaxIdleConns)
		assert.Equal(t, 2, transport.MaxIdleConnsPerHost)
		assert.Equal(t, 90*time.Second, transport.IdleConnTimeout)
		assert.Equal(t, 10*time.Second, transport.TLSHandshakeTimeout)
	})
}

func TestHTTPClientManager_GetLLMClient(t *testing.T) {
	t.Run("should delegate timeout to the request context", func(t *testing.T) {
		manager := NewHTTPClientManager(testHTTPConfig())

		client := manager.GetLLMClient()

		require.NotNil(t, client)
		assert.Zero(t, client.Timeout)
	})
}

func TestHTTPClientManager_DistinctClients(t *testing.T) {
	manager := NewHTTPClientManager(testHTTPConfig())

	assert.NotSame(t, manager.GetArchiveClient(), manager.GetAPIClient())
	assert.NotSame(t, manager.GetAPIClient(), manager.GetLLMClient())
}
