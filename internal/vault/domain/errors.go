package domain

import "github.com/briefnote/briefnote/internal/errors"

// Domain-specific errors for vault operations.
var (
	// ErrCredentialNotFound indicates the requested credential does not exist.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrLabelRequired indicates the label field is required.
	ErrLabelRequired = errors.Wrap(errors.ErrInvalidInput, "label is required")

	// ErrInvalidCredentialType indicates the credential type is not supported.
	ErrInvalidCredentialType = errors.Wrap(errors.ErrInvalidInput, "invalid credential type")

	// ErrInvalidField indicates the sensitive field name is not supported
	// or does not belong to the credential's type.
	ErrInvalidField = errors.Wrap(errors.ErrInvalidInput, "invalid sensitive field")

	// ErrDecryptionFailed indicates an envelope could not be authenticated
	// and opened. No partial plaintext is ever returned.
	ErrDecryptionFailed = errors.Wrap(errors.ErrStorage, "decryption failed")

	// ErrEncryptionUnavailable indicates the root key cannot be loaded, so
	// writes that would encrypt data are refused.
	ErrEncryptionUnavailable = errors.Wrap(errors.ErrStorage, "encryption unavailable")
)
