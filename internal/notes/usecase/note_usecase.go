// Package usecase implements the shared note business logic.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/notes/domain"
	"github.com/briefnote/briefnote/internal/notes/service"
	optionsDomain "github.com/briefnote/briefnote/internal/options/domain"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
)

// OptionRepository defines the persistence operations the usecase needs.
type OptionRepository interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}

// AuditLogger records audit trail entries for note events.
type AuditLogger interface {
	Log(ctx context.Context, entry *auditDomain.AuditLog) error
}

// UseCase defines the interface for shared note business logic.
type UseCase interface {
	// Get returns the note. Audited as notes_accessed.
	Get(ctx context.Context, actor *userDomain.User) (*domain.Note, error)

	// Save replaces the note content and stamps the save time. Audited as
	// notes_saved with length and word count.
	Save(ctx context.Context, actor *userDomain.User, content string) (*domain.Note, error)

	// Render returns the note as sanitized HTML.
	Render(ctx context.Context) (string, error)

	// RecordCopy logs that note content was copied to the clipboard.
	RecordCopy(ctx context.Context, actor *userDomain.User, chars int) error

	// RecordPaste logs that content was pasted into the note.
	RecordPaste(ctx context.Context, actor *userDomain.User, chars int) error

	// RecordExport logs that the note was exported.
	RecordExport(ctx context.Context, actor *userDomain.User, chars int) error
}

// NoteUseCase handles the shared note stored in the options table.
type NoteUseCase struct {
	optionRepo  OptionRepository
	renderer    *service.Renderer
	auditLogger AuditLogger
	logger      *slog.Logger

	// now is replaceable for tests.
	now func() time.Time
}

// NewNoteUseCase creates a new NoteUseCase.
func NewNoteUseCase(
	optionRepo OptionRepository,
	renderer *service.Renderer,
	auditLogger AuditLogger,
	logger *slog.Logger,
) *NoteUseCase {
	return &NoteUseCase{
		optionRepo:  optionRepo,
		renderer:    renderer,
		auditLogger: auditLogger,
		logger:      logger,
		now:         time.Now,
	}
}

// Get returns the note.
func (uc *NoteUseCase) Get(ctx context.Context, actor *userDomain.User) (*domain.Note, error) {
	note, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, actor, auditDomain.ActionNotesAccessed, "")

	return note, nil
}

// Save replaces the note content and stamps the save time.
func (uc *NoteUseCase) Save(ctx context.Context, actor *userDomain.User, content string) (*domain.Note, error) {
	now := uc.now().UTC()

	if err := uc.optionRepo.Set(ctx, optionsDomain.NoteContentOption, content); err != nil {
		return nil, err
	}
	if err := uc.optionRepo.Set(ctx, optionsDomain.NoteLastSavedOption, now.Format(time.RFC3339)); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Length: %d chars, %d words", len([]rune(content)), len(strings.Fields(content)))
	uc.audit(ctx, actor, auditDomain.ActionNotesSaved, details)

	return &domain.Note{Content: content, LastSavedAt: now}, nil
}

// Render returns the note as sanitized HTML.
func (uc *NoteUseCase) Render(ctx context.Context) (string, error) {
	note, err := uc.load(ctx)
	if err != nil {
		return "", err
	}
	return uc.renderer.Render(note.Content)
}

// RecordCopy logs that note content was copied to the clipboard.
func (uc *NoteUseCase) RecordCopy(ctx context.Context, actor *userDomain.User, chars int) error {
	return uc.recordEvent(ctx, actor, auditDomain.ActionNotesCopied, chars)
}

// RecordPaste logs that content was pasted into the note.
func (uc *NoteUseCase) RecordPaste(ctx context.Context, actor *userDomain.User, chars int) error {
	return uc.recordEvent(ctx, actor, auditDomain.ActionNotesPasted, chars)
}

// RecordExport logs that the note was exported.
func (uc *NoteUseCase) RecordExport(ctx context.Context, actor *userDomain.User, chars int) error {
	return uc.recordEvent(ctx, actor, auditDomain.ActionNotesExported, chars)
}

// recordEvent writes a clipboard or export trail entry. Unlike the implicit
// audit on Get and Save, these are the primary operation, so failures
// propagate to the caller.
func (uc *NoteUseCase) recordEvent(
	ctx context.Context,
	actor *userDomain.User,
	action auditDomain.Action,
	chars int,
) error {
	entry := &auditDomain.AuditLog{
		Action:  action,
		Details: fmt.Sprintf("%d characters", chars),
	}
	if actor != nil {
		entry.UserID = actor.ID
	}
	return uc.auditLogger.Log(ctx, entry)
}

// load reads the note from the options table. A note that was never saved
// reads as empty.
func (uc *NoteUseCase) load(ctx context.Context) (*domain.Note, error) {
	content, err := uc.optionRepo.Get(ctx, optionsDomain.NoteContentOption)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	note := &domain.Note{Content: content}

	lastSaved, err := uc.optionRepo.Get(ctx, optionsDomain.NoteLastSavedOption)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return note, nil
		}
		return nil, err
	}

	at, err := time.Parse(time.RFC3339, lastSaved)
	if err != nil {
		uc.logger.Warn("corrupt note last-saved timestamp", slog.String("value", lastSaved))
		return note, nil
	}
	note.LastSavedAt = at

	return note, nil
}

// audit records a trail entry for an implicit note event. Failures are
// logged and swallowed so they never block the primary operation.
func (uc *NoteUseCase) audit(ctx context.Context, actor *userDomain.User, action auditDomain.Action, details string) {
	entry := &auditDomain.AuditLog{
		Action:  action,
		Details: details,
	}
	if actor != nil {
		entry.UserID = actor.ID
	}

	if err := uc.auditLogger.Log(ctx, entry); err != nil {
		uc.logger.Error("failed to write note audit entry",
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
	}
}
