// Package domain defines the application options model. Options are named
// key/value pairs backing the root key, runtime settings and the shared note.
package domain

import "time"

// Option represents a single named application option.
type Option struct {
	Name      string
	Value     string
	UpdatedAt time.Time
}

// Well-known option names.
const (
	// RootKeyOption holds the base64-encoded (optionally KMS-wrapped) root key.
	RootKeyOption = "vault_root_key"

	// SettingsOption holds the JSON-encoded runtime settings.
	SettingsOption = "settings"

	// NoteContentOption holds the shared Markdown note content.
	NoteContentOption = "note_content"

	// NoteLastSavedOption holds the RFC 3339 timestamp of the last note save.
	NoteLastSavedOption = "note_last_saved"
)
