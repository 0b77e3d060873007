package service

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/chacha20poly1305"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/vault/domain"
)

// envelopeCodec implements EnvelopeCodec using XChaCha20-Poly1305.
//
// Each envelope is base64(nonce || ciphertext) with a fresh random 24-byte
// nonce per call, so encrypting the same plaintext twice yields different
// envelopes. The root key is fetched from the key manager on every call and
// never cached, so key regeneration takes effect immediately.
type envelopeCodec struct {
	keys KeyManager
}

// NewEnvelopeCodec creates a new EnvelopeCodec backed by the given key manager.
func NewEnvelopeCodec(keys KeyManager) EnvelopeCodec {
	return &envelopeCodec{keys: keys}
}

// Encrypt seals a plaintext value into a portable envelope.
func (c *envelopeCodec) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aead, err := c.open(ctx)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", apperrors.Wrap(err, "failed to generate nonce")
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (c *envelopeCodec) Decrypt(ctx context.Context, envelope string) (string, error) {
	if envelope == "" {
		return "", nil
	}

	aead, err := c.open(ctx)
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}
	if len(sealed) < aead.NonceSize() {
		return "", domain.ErrDecryptionFailed
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// Ready verifies the root key is reachable and usable.
func (c *envelopeCodec) Ready(ctx context.Context) error {
	if _, err := c.open(ctx); err != nil {
		return err
	}
	return nil
}

// open fetches the root key and constructs the AEAD for this call.
func (c *envelopeCodec) open(ctx context.Context) (cipher.AEAD, error) {
	key, err := c.keys.Key(ctx)
	if err != nil {
		return nil, domain.ErrEncryptionUnavailable
	}

	instance, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, domain.ErrEncryptionUnavailable
	}

	return instance, nil
}
