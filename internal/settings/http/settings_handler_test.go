package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	settingsHTTP "github.com/briefnote/briefnote/internal/settings/http"

	settingsDomain "github.com/briefnote/briefnote/internal/settings/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockSettingsUseCase struct {
	mock.Mock
}

func (m *mockSettingsUseCase) Get(ctx context.Context) (settingsDomain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settingsDomain.Settings), args.Error(1)
}

func (m *mockSettingsUseCase) Update(ctx context.Context, settings settingsDomain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func setupRouter(settingsUC *mockSettingsUseCase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := settingsHTTP.NewSettingsHandler(settingsUC, logger)

	router := gin.New()
	router.GET("/v1/settings", handler.GetHandler)
	router.PUT("/v1/settings", handler.UpdateHandler)
	return router
}

func TestSettingsHandler_Get(t *testing.T) {
	settingsUC := &mockSettingsUseCase{}
	settingsUC.On("Get", mock.Anything).Return(settingsDomain.Default(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/v1/settings", nil)
	setupRouter(settingsUC).ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["require_password_verification"])
	assert.Equal(t, float64(90), response["audit_log_retention_days"])
}

func TestSettingsHandler_Update(t *testing.T) {
	t.Run("updates settings", func(t *testing.T) {
		settingsUC := &mockSettingsUseCase{}
		expected := settingsDomain.Settings{
			RequirePasswordVerification: false,
			AuditLogRetentionDays:       30,
		}
		settingsUC.On("Update", mock.Anything, expected).Return(nil)

		raw, _ := json.Marshal(map[string]any{
			"require_password_verification": false,
			"audit_log_retention_days":      30,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodPut, "/v1/settings", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(settingsUC).ServeHTTP(w, req)

		assert.Equal(t, nethttp.StatusOK, w.Code)
		settingsUC.AssertExpectations(t)
	})

	t.Run("invalid retention is rejected", func(t *testing.T) {
		settingsUC := &mockSettingsUseCase{}
		settingsUC.On("Update", mock.Anything, mock.Anything).
			Return(settingsDomain.ErrInvalidRetention)

		raw, _ := json.Marshal(map[string]any{
			"require_password_verification": true,
			"audit_log_retention_days":      99999,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodPut, "/v1/settings", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(settingsUC).ServeHTTP(w, req)

		assert.Equal(t, nethttp.StatusUnprocessableEntity, w.Code)
	})
}
