package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	optionsDomain "github.com/briefnote/briefnote/internal/options/domain"
)

// rootKeySize is the root key length in bytes (256 bits).
const rootKeySize = 32

// RootKeyManager implements KeyManager on top of the options table.
//
// The key is stored base64-encoded under the vault_root_key option. When a
// Keeper is configured the stored value is the KMS-wrapped key instead of the
// raw key material. The key is read from storage on every call so that a
// rotated or regenerated key takes effect without a restart.
type RootKeyManager struct {
	options OptionRepository
	keeper  Keeper

	// group collapses concurrent first-use generations into a single key.
	group singleflight.Group
}

// NewRootKeyManager creates a new RootKeyManager. The keeper is optional;
// pass nil to store the key unwrapped.
func NewRootKeyManager(options OptionRepository, keeper Keeper) *RootKeyManager {
	return &RootKeyManager{
		options: options,
		keeper:  keeper,
	}
}

// Key returns the 32-byte root key, generating and persisting one on first use.
func (m *RootKeyManager) Key(ctx context.Context) ([]byte, error) {
	encoded, err := m.options.Get(ctx, optionsDomain.RootKeyOption)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			v, genErr, _ := m.group.Do(optionsDomain.RootKeyOption, func() (interface{}, error) {
				return m.generate(ctx)
			})
			if genErr != nil {
				return nil, genErr
			}
			return v.([]byte), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to load root key: "+err.Error())
	}

	stored, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "root key is not valid base64")
	}

	key := stored
	if m.keeper != nil {
		key, err = m.keeper.Decrypt(ctx, stored)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to unwrap root key: "+err.Error())
		}
	}

	if len(key) != rootKeySize || isZero(key) {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "stored root key is invalid")
	}

	return key, nil
}

// Regenerate destructively replaces the root key.
func (m *RootKeyManager) Regenerate(ctx context.Context) error {
	_, err := m.generate(ctx)
	return err
}

// generate creates a fresh random key and persists it, replacing any
// existing value.
func (m *RootKeyManager) generate(ctx context.Context) ([]byte, error) {
	key := make([]byte, rootKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate root key")
	}

	stored := key
	if m.keeper != nil {
		wrapped, err := m.keeper.Encrypt(ctx, key)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to wrap root key: "+err.Error())
		}
		stored = wrapped
	}

	encoded := base64.StdEncoding.EncodeToString(stored)
	if err := m.options.Set(ctx, optionsDomain.RootKeyOption, encoded); err != nil {
		// The key must never be used unless it is durably persisted.
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to persist root key: "+err.Error())
	}

	return key, nil
}

// isZero reports whether every byte of the key is zero.
func isZero(key []byte) bool {
	var acc byte
	for _, b := range key {
		acc |= b
	}
	return acc == 0
}
