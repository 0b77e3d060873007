// Package domain defines the runtime settings model.
package domain

import "github.com/briefnote/briefnote/internal/errors"

// Settings holds the admin-mutable runtime configuration. It is persisted
// as JSON in the app_options table.
type Settings struct {
	// RequirePasswordVerification gates secret reveal and copy behind a
	// recent password verification.
	RequirePasswordVerification bool `json:"require_password_verification"`

	// AuditLogRetentionDays is how long audit entries are kept before the
	// prune job removes them. Zero or negative disables pruning.
	AuditLogRetentionDays int `json:"audit_log_retention_days"`
}

// Default returns the settings used before an admin ever saves any.
func Default() Settings {
	return Settings{
		RequirePasswordVerification: true,
		AuditLogRetentionDays:       90,
	}
}

// Domain-specific errors for settings operations.
var (
	// ErrInvalidRetention indicates the retention period is out of range.
	ErrInvalidRetention = errors.Wrap(errors.ErrInvalidInput, "retention days must be between 0 and 3650")
)
