// Package service provides the cryptographic services backing the vault:
// root key management, the field envelope codec and optional KMS wrapping.
package service

import "context"

// OptionRepository defines the persistence operations the key manager needs.
type OptionRepository interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}

// KeyManager manages the vault root key lifecycle.
type KeyManager interface {
	// Key returns the 32-byte root key, generating and persisting one on
	// first use. It never returns an all-zero key.
	Key(ctx context.Context) ([]byte, error)

	// Regenerate destructively replaces the root key. Existing envelopes
	// become permanently undecryptable; intended for key-compromise
	// recovery only.
	Regenerate(ctx context.Context) error
}

// EnvelopeCodec seals and opens individual sensitive field values.
type EnvelopeCodec interface {
	// Encrypt seals a plaintext value into a portable envelope. An empty
	// plaintext produces an empty envelope.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt opens an envelope produced by Encrypt. An empty envelope
	// produces an empty plaintext. Returns ErrDecryptionFailed when the
	// envelope is malformed or fails authentication.
	Decrypt(ctx context.Context, envelope string) (string, error)

	// Ready verifies the root key is reachable and usable. Returns
	// ErrEncryptionUnavailable otherwise.
	Ready(ctx context.Context) error
}

// Keeper abstracts an external KMS key used to wrap the persisted root key.
// *secrets.Keeper from gocloud.dev implements this interface.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens Keepers for configured KMS providers.
type KMSService interface {
	// OpenKeeper opens a keeper for the given key URI.
	// Returns an error if the URI is invalid or the connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)
}
