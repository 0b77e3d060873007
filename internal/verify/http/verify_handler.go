// Package http provides HTTP handlers for the password verification gate.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/httputil"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	customValidation "github.com/briefnote/briefnote/internal/validation"
	verifyUseCase "github.com/briefnote/briefnote/internal/verify/usecase"
)

// VerifyRequest contains the password to check against the actor's account.
type VerifyRequest struct {
	Password string `json:"password"`
}

// Validate validates the verify request.
func (r VerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
	)
}

// VerifyHandler handles HTTP requests for the password verification gate.
type VerifyHandler struct {
	verifyUseCase verifyUseCase.UseCase
	logger        *slog.Logger
}

// NewVerifyHandler creates a new verify handler with required dependencies.
func NewVerifyHandler(verifyUC verifyUseCase.UseCase, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{
		verifyUseCase: verifyUC,
		logger:        logger,
	}
}

// VerifyHandler checks the actor's password and stamps a verification on success.
// POST /v1/verify
// Returns 204 No Content on success, 401 on a wrong password, and 423 during
// a lockout.
func (h *VerifyHandler) VerifyHandler(c *gin.Context) {
	actor, ok := userDomain.GetUser(c.Request.Context())
	if !ok || actor == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.verifyUseCase.Verify(c.Request.Context(), actor, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// StatusHandler reports whether the actor currently passes the verification gate.
// GET /v1/verify
func (h *VerifyHandler) StatusHandler(c *gin.Context) {
	actor, ok := userDomain.GetUser(c.Request.Context())
	if !ok || actor == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	verified, err := h.verifyUseCase.CheckVerified(c.Request.Context(), actor.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": verified})
}
