// Package http provides HTTP handlers for the shared note.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/httputil"
	notesDomain "github.com/briefnote/briefnote/internal/notes/domain"
	notesUseCase "github.com/briefnote/briefnote/internal/notes/usecase"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	customValidation "github.com/briefnote/briefnote/internal/validation"
)

// Note events the client can report.
const (
	eventCopy   = "copy"
	eventPaste  = "paste"
	eventExport = "export"
)

// SaveNoteRequest contains the full replacement note content.
type SaveNoteRequest struct {
	Content string `json:"content"`
}

// NoteEventRequest reports a clipboard or export event with the number of
// characters involved.
type NoteEventRequest struct {
	Event string `json:"event"`
	Chars int    `json:"chars"`
}

// Validate validates the note event request.
func (r NoteEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Event, validation.Required, validation.In(eventCopy, eventPaste, eventExport)),
		validation.Field(&r.Chars, validation.Min(0)),
	)
}

// NoteResponse represents the shared note in API responses.
type NoteResponse struct {
	Content     string     `json:"content"`
	LastSavedAt *time.Time `json:"last_saved_at,omitempty"`
}

func mapNoteToResponse(note *notesDomain.Note) NoteResponse {
	response := NoteResponse{Content: note.Content}
	if !note.LastSavedAt.IsZero() {
		lastSaved := note.LastSavedAt
		response.LastSavedAt = &lastSaved
	}
	return response
}

// NoteHandler handles HTTP requests for the shared note.
type NoteHandler struct {
	noteUseCase notesUseCase.UseCase
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler with required dependencies.
func NewNoteHandler(noteUC notesUseCase.UseCase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteUseCase: noteUC,
		logger:      logger,
	}
}

// GetHandler returns the note. Audited as notes_accessed.
// GET /v1/notes - Requires the view_notes capability.
func (h *NoteHandler) GetHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	note, err := h.noteUseCase.Get(c.Request.Context(), actor)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapNoteToResponse(note))
}

// SaveHandler replaces the note content. Audited as notes_saved.
// PUT /v1/notes - Requires the edit_notes capability.
func (h *NoteHandler) SaveHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	note, err := h.noteUseCase.Save(c.Request.Context(), actor, req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapNoteToResponse(note))
}

// PreviewHandler returns the note rendered as sanitized HTML.
// GET /v1/notes/preview - Requires the view_notes capability.
func (h *NoteHandler) PreviewHandler(c *gin.Context) {
	html, err := h.noteUseCase.Render(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": html})
}

// EventHandler records a clipboard or export event in the audit trail.
// POST /v1/notes/events - Requires the view_notes capability.
// Returns 204 No Content.
func (h *NoteHandler) EventHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req NoteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var err error
	switch req.Event {
	case eventCopy:
		err = h.noteUseCase.RecordCopy(c.Request.Context(), actor, req.Chars)
	case eventPaste:
		err = h.noteUseCase.RecordPaste(c.Request.Context(), actor, req.Chars)
	case eventExport:
		err = h.noteUseCase.RecordExport(c.Request.Context(), actor, req.Chars)
	default:
		httputil.HandleValidationErrorGin(c, fmt.Errorf("unknown event: %s", req.Event), h.logger)
		return
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// actor resolves the authenticated user from the request context.
func (h *NoteHandler) actor(c *gin.Context) (*userDomain.User, bool) {
	actor, ok := userDomain.GetUser(c.Request.Context())
	if !ok || actor == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return actor, true
}
