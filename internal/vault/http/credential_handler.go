// Package http provides HTTP handlers for credential vault operations.
// Sensitive fields are encrypted at rest and only leave the vault through the
// reveal and copy paths, which sit behind the password verification gate.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/httputil"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	customValidation "github.com/briefnote/briefnote/internal/validation"
	vaultDomain "github.com/briefnote/briefnote/internal/vault/domain"
	"github.com/briefnote/briefnote/internal/vault/http/dto"
	vaultUseCase "github.com/briefnote/briefnote/internal/vault/usecase"
	verifyDomain "github.com/briefnote/briefnote/internal/verify/domain"
	verifyUseCase "github.com/briefnote/briefnote/internal/verify/usecase"
)

// CredentialHandler handles HTTP requests for credential vault operations.
// It coordinates the verification gate and audit attribution with the vault
// usecase.
type CredentialHandler struct {
	vaultUseCase  vaultUseCase.UseCase
	verifyUseCase verifyUseCase.UseCase
	logger        *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	vaultUC vaultUseCase.UseCase,
	verifyUC verifyUseCase.UseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		vaultUseCase:  vaultUC,
		verifyUseCase: verifyUC,
		logger:        logger,
	}
}

// ListHandler retrieves all credentials as metadata only.
// GET /v1/credentials - Requires the view_credentials capability.
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	credentials, err := h.vaultUseCase.ListCredentials(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToListResponse(credentials))
}

// GetHandler retrieves a single credential as metadata only.
// GET /v1/credentials/:id - Requires the view_credentials capability.
func (h *CredentialHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	credential, err := h.vaultUseCase.GetCredential(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// GetDecryptedHandler retrieves a credential with all sensitive fields opened.
// GET /v1/credentials/:id/decrypted - Requires the view_credentials capability
// and a live password verification. Returns 403 when verification is required
// but missing.
func (h *CredentialHandler) GetDecryptedHandler(c *gin.Context) {
	actor, ok := h.requireVerified(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	credential, err := h.vaultUseCase.GetDecryptedCredential(c.Request.Context(), actor, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecryptedCredentialToResponse(credential))
}

// RevealHandler opens a single sensitive field for display.
// POST /v1/credentials/:id/reveal - Requires the view_credentials capability
// and a live password verification.
func (h *CredentialHandler) RevealHandler(c *gin.Context) {
	h.openField(c, h.vaultUseCase.RevealField)
}

// CopyHandler opens a single sensitive field for clipboard use.
// POST /v1/credentials/:id/copy - Requires the view_credentials capability
// and a live password verification.
func (h *CredentialHandler) CopyHandler(c *gin.Context) {
	h.openField(c, h.vaultUseCase.CopyField)
}

// CreateHandler creates a new credential, sealing the provided secrets.
// POST /v1/credentials - Requires the edit_credentials capability.
// Returns 201 Created with credential metadata (never the secrets).
func (h *CredentialHandler) CreateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := h.vaultUseCase.CreateCredential(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(credential))
}

// UpdateHandler applies a partial update to a credential.
// PUT /v1/credentials/:id - Requires the edit_credentials capability.
func (h *CredentialHandler) UpdateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := h.vaultUseCase.UpdateCredential(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// DeleteHandler permanently removes a credential.
// DELETE /v1/credentials/:id - Requires the edit_credentials capability.
// Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.vaultUseCase.DeleteCredential(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ReorderHandler assigns sort positions from the posted id sequence.
// POST /v1/credentials/reorder - Requires the edit_credentials capability.
// Returns 204 No Content.
func (h *CredentialHandler) ReorderHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.vaultUseCase.ReorderCredentials(c.Request.Context(), actor, req.IDs); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// openField handles the shared reveal/copy flow: verification gate, field
// request parsing, and the single-field response.
func (h *CredentialHandler) openField(
	c *gin.Context,
	open func(ctx context.Context, actor *userDomain.User, id int64, field vaultDomain.SensitiveField) (string, error),
) {
	actor, ok := h.requireVerified(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := open(c.Request.Context(), actor, id, vaultDomain.SensitiveField(req.Field))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FieldResponse{Field: req.Field, Value: value})
}

// requireVerified resolves the actor and enforces the password verification
// gate. Writes the error response and returns ok=false when the request must
// not proceed.
func (h *CredentialHandler) requireVerified(c *gin.Context) (*userDomain.User, bool) {
	actor, ok := h.actor(c)
	if !ok {
		return nil, false
	}

	verified, err := h.verifyUseCase.CheckVerified(c.Request.Context(), actor.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return nil, false
	}
	if !verified {
		httputil.HandleErrorGin(c, verifyDomain.ErrVerificationRequired, h.logger)
		return nil, false
	}

	return actor, true
}

// actor resolves the authenticated user from the request context.
func (h *CredentialHandler) actor(c *gin.Context) (*userDomain.User, bool) {
	actor, ok := userDomain.GetUser(c.Request.Context())
	if !ok || actor == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return actor, true
}

// parseID parses the :id path parameter.
func (h *CredentialHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid id parameter: must be a positive integer"),
			h.logger,
		)
		return 0, false
	}
	return id, true
}
