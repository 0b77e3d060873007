// Package http provides HTTP handlers for audit trail operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	"github.com/briefnote/briefnote/internal/audit/http/dto"
	auditUseCase "github.com/briefnote/briefnote/internal/audit/usecase"
	"github.com/briefnote/briefnote/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit trail operations.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.UseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(auditLogUC auditUseCase.UseCase, logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUC,
		logger:          logger,
	}
}

// ListHandler retrieves audit trail entries with pagination and optional filters.
// GET /v1/audit-logs?page=1&per_page=20&action=viewed&user_id=7&credential_id=3&date_from=2026-08-01T00:00:00Z&date_to=2026-08-28T23:59:59Z
// Admin only. Returns 200 OK with a page ordered by created_at descending
// (newest first). Date boundaries are RFC3339 and inclusive.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	page, perPage, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter, err := h.parseFilter(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entries, total, err := h.auditLogUseCase.List(c.Request.Context(), filter, page, perPage)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(entries, page, perPage, total))
}

// parseFilter builds a domain filter from the optional query parameters.
func (h *AuditLogHandler) parseFilter(c *gin.Context) (auditDomain.Filter, error) {
	var filter auditDomain.Filter

	if action := c.Query("action"); action != "" {
		filter.Action = auditDomain.Action(action)
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID < 1 {
			return filter, fmt.Errorf("invalid user_id parameter: must be a positive integer")
		}
		filter.UserID = &userID
	}

	if credentialIDStr := c.Query("credential_id"); credentialIDStr != "" {
		credentialID, err := strconv.ParseInt(credentialIDStr, 10, 64)
		if err != nil || credentialID < 1 {
			return filter, fmt.Errorf("invalid credential_id parameter: must be a positive integer")
		}
		filter.CredentialID = &credentialID
	}

	if fromStr := c.Query("date_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return filter, fmt.Errorf("invalid date_from format: must be RFC3339 (e.g., 2026-08-01T00:00:00Z)")
		}
		utcTime := parsed.UTC()
		filter.DateFrom = &utcTime
	}

	if toStr := c.Query("date_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return filter, fmt.Errorf("invalid date_to format: must be RFC3339 (e.g., 2026-08-28T23:59:59Z)")
		}
		utcTime := parsed.UTC()
		filter.DateTo = &utcTime
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return filter, fmt.Errorf("date_from must be before or equal to date_to")
	}

	return filter, nil
}
