// Package http provides HTTP handlers for plugin settings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/briefnote/briefnote/internal/httputil"
	settingsDomain "github.com/briefnote/briefnote/internal/settings/domain"
	settingsUseCase "github.com/briefnote/briefnote/internal/settings/usecase"
)

// SettingsRequest contains the full replacement settings.
type SettingsRequest struct {
	RequirePasswordVerification bool `json:"require_password_verification"`
	AuditLogRetentionDays       int  `json:"audit_log_retention_days"`
}

// SettingsResponse represents the settings in API responses.
type SettingsResponse struct {
	RequirePasswordVerification bool `json:"require_password_verification"`
	AuditLogRetentionDays       int  `json:"audit_log_retention_days"`
}

// SettingsHandler handles HTTP requests for plugin settings. Admin only.
type SettingsHandler struct {
	settingsUseCase settingsUseCase.UseCase
	logger          *slog.Logger
}

// NewSettingsHandler creates a new settings handler with required dependencies.
func NewSettingsHandler(settingsUC settingsUseCase.UseCase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUC,
		logger:          logger,
	}
}

// GetHandler returns the current settings, falling back to defaults when
// nothing has been stored yet.
// GET /v1/settings - Admin only.
func (h *SettingsHandler) GetHandler(c *gin.Context) {
	settings, err := h.settingsUseCase.Get(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse(settings))
}

// UpdateHandler replaces the stored settings.
// PUT /v1/settings - Admin only.
func (h *SettingsHandler) UpdateHandler(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	settings := settingsDomain.Settings(req)
	if err := h.settingsUseCase.Update(c.Request.Context(), settings); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse(settings))
}
