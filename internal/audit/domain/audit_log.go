// Package domain defines the audit trail entities and types.
package domain

import (
	"time"

	"github.com/briefnote/briefnote/internal/errors"
)

// Action identifies what happened to a target.
type Action string

// Credential actions.
const (
	ActionViewed   Action = "viewed"
	ActionCopied   Action = "copied"
	ActionCreated  Action = "created"
	ActionModified Action = "modified"
	ActionDeleted  Action = "deleted"
)

// Shared note actions.
const (
	ActionNotesAccessed Action = "notes_accessed"
	ActionNotesSaved    Action = "notes_saved"
	ActionNotesCopied   Action = "notes_copied"
	ActionNotesPasted   Action = "notes_pasted"
	ActionNotesExported Action = "notes_exported"
)

// Security actions.
const (
	// ActionLockout records a verification lockout. The entry is generic
	// on purpose so it reveals nothing about the failed attempts.
	ActionLockout Action = "lockout"
)

// Valid reports whether the action is part of the closed action set.
// Unknown actions are rejected at write time to keep the trail queryable.
func (a Action) Valid() bool {
	switch a {
	case ActionViewed, ActionCopied, ActionCreated, ActionModified, ActionDeleted,
		ActionNotesAccessed, ActionNotesSaved, ActionNotesCopied, ActionNotesPasted, ActionNotesExported,
		ActionLockout:
		return true
	}
	return false
}

// AuditLog is a single append-only trail entry.
//
// CredentialLabel is denormalized at write time so entries stay readable
// after the credential is deleted. CredentialID is nil for entries that do
// not reference a credential (note events, lockouts).
type AuditLog struct {
	ID              int64
	UserID          int64
	ActorName       string
	Action          Action
	CredentialLabel string
	CredentialID    *int64
	Details         string
	IPAddress       string
	CreatedAt       time.Time
}

// Filter narrows an audit log listing. Zero values mean "no constraint".
type Filter struct {
	Action       Action
	UserID       *int64
	CredentialID *int64
	DateFrom     *time.Time
	DateTo       *time.Time
}

// Domain-specific errors for audit operations.
var (
	// ErrInvalidAction indicates the action is not part of the closed set.
	ErrInvalidAction = errors.Wrap(errors.ErrInvalidInput, "invalid audit action")
)
