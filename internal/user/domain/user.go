// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/briefnote/briefnote/internal/errors"
)

// Capability identifies a single user permission.
type Capability string

// Capabilities controlling access to credentials and notes.
const (
	CapabilityViewCredentials Capability = "view_credentials"
	CapabilityEditCredentials Capability = "edit_credentials"
	CapabilityViewNotes       Capability = "view_notes"
	CapabilityEditNotes       Capability = "edit_notes"
	CapabilityManageSettings  Capability = "manage_settings"
)

// User represents a user in the system
type User struct {
	ID                 int64
	Name               string
	Email              string
	PasswordHash       string
	TokenHash          string
	IsActive           bool
	IsAdmin            bool
	CanViewCredentials bool
	CanEditCredentials bool
	CanViewNotes       bool
	CanEditNotes       bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Has reports whether the user holds the given capability. Admins hold every
// capability implicitly.
func (u *User) Has(capability Capability) bool {
	if u.IsAdmin {
		return true
	}

	switch capability {
	case CapabilityViewCredentials:
		return u.CanViewCredentials || u.CanEditCredentials
	case CapabilityEditCredentials:
		return u.CanEditCredentials
	case CapabilityViewNotes:
		return u.CanViewNotes || u.CanEditNotes
	case CapabilityEditNotes:
		return u.CanEditNotes
	case CapabilityManageSettings:
		return false
	default:
		return false
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUserInactive indicates the user account has been deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrUnauthorized, "user is inactive")

	// ErrInvalidToken indicates the presented API token is unknown or revoked.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrNameRequired indicates the name field is required.
	ErrNameRequired = errors.Wrap(errors.ErrInvalidInput, "name is required")

	// ErrEmailRequired indicates the email field is required.
	ErrEmailRequired = errors.Wrap(errors.ErrInvalidInput, "email is required")

	// ErrPasswordRequired indicates the password field is required.
	ErrPasswordRequired = errors.Wrap(errors.ErrInvalidInput, "password is required")
)
