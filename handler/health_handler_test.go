package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/handler"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/test/mocks"
)

func TestReadinessRoute(t *testing.T) {
	tests := map[string]struct {
		setupMock      func(*mocks.MockHealthCheckerService)
		expectedCode   int
		expectedStatus string
		expectedDeps   map[string]string
	}{
		"should report dependencies when the database answers": {
			setupMock: func(m *mocks.MockHealthCheckerService) {
				m.EXPECT().CheckDatabase(gomock.Any()).Return(nil)
				m.EXPECT().CheckDependencies(gomock.Any()).Return(map[string]string{
					"database": "ok",
					"llm":      "unconfigured",
					"mailer":   "ok",
				})
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
			expectedDeps:   map[string]string{"database": "ok", "llm": "unconfigured", "mailer": "ok"},
		},
		"should be unavailable without a database": {
			setupMock: func(m *mocks.MockHealthCheckerService) {
				m.EXPECT().CheckDatabase(gomock.Any()).Return(errors.New("connection refused"))
			},
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unhealthy",
			expectedDeps:   map[string]string{"database": "unavailable"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mocks.NewMockHealthCheckerService(ctrl)
			tc.setupMock(checker)

			e := echo.New()
			e.GET("/api/v1/health", handler.ReadinessRoute(handler.NewHealthHandler(checker, testLogger())))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			var resp handler.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.expectedStatus, resp.Status)
			assert.Equal(t, tc.expectedDeps, resp.Dependencies)
		})
	}
}

func TestLivenessRoute(t *testing.T) {
	e := echo.New()
	e.GET("/health", handler.LivenessRoute)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
