// Package domain defines the access verification errors.
package domain

import "github.com/briefnote/briefnote/internal/errors"

// Domain-specific errors for verification operations.
var (
	// ErrIncorrectPassword indicates the presented password did not match.
	ErrIncorrectPassword = errors.Wrap(errors.ErrUnauthorized, "incorrect password")

	// ErrLockedOut indicates the actor is temporarily locked out after
	// repeated failed attempts.
	ErrLockedOut = errors.Wrap(errors.ErrLocked, "too many failed verification attempts")

	// ErrVerificationRequired indicates the actor must verify their password
	// before revealing or copying secrets.
	ErrVerificationRequired = errors.Wrap(errors.ErrForbidden, "password verification required")
)
