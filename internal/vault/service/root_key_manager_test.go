package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets/localsecrets"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	optionsDomain "github.com/briefnote/briefnote/internal/options/domain"
)

type mockOptionRepository struct {
	mock.Mock
}

func (m *mockOptionRepository) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockOptionRepository) Set(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

// memoryOptionRepository is a map-backed OptionRepository for round-trip tests.
type memoryOptionRepository struct {
	values map[string]string
}

func newMemoryOptionRepository() *memoryOptionRepository {
	return &memoryOptionRepository{values: map[string]string{}}
}

func (m *memoryOptionRepository) Get(_ context.Context, name string) (string, error) {
	value, ok := m.values[name]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (m *memoryOptionRepository) Set(_ context.Context, name, value string) error {
	m.values[name] = value
	return nil
}

func TestRootKeyManager_Key(t *testing.T) {
	ctx := context.Background()

	t.Run("generates and persists a key on first use", func(t *testing.T) {
		options := newMemoryOptionRepository()
		manager := NewRootKeyManager(options, nil)

		key, err := manager.Key(ctx)
		require.NoError(t, err)
		assert.Len(t, key, 32)
		assert.NotEqual(t, make([]byte, 32), key, "key must never be all zeros")

		// Persisted value is the base64 of the same key
		stored, err := base64.StdEncoding.DecodeString(options.values[optionsDomain.RootKeyOption])
		require.NoError(t, err)
		assert.Equal(t, key, stored)
	})

	t.Run("returns the same key on subsequent calls", func(t *testing.T) {
		options := newMemoryOptionRepository()
		manager := NewRootKeyManager(options, nil)

		key1, err := manager.Key(ctx)
		require.NoError(t, err)

		key2, err := manager.Key(ctx)
		require.NoError(t, err)

		assert.Equal(t, key1, key2)
	})

	t.Run("fails when the key cannot be persisted", func(t *testing.T) {
		options := new(mockOptionRepository)
		options.On("Get", ctx, optionsDomain.RootKeyOption).Return("", apperrors.ErrNotFound)
		options.On("Set", ctx, optionsDomain.RootKeyOption, mock.Anything).
			Return(apperrors.New("disk full"))

		manager := NewRootKeyManager(options, nil)

		_, err := manager.Key(ctx)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})

	t.Run("fails when the stored key is corrupt", func(t *testing.T) {
		tests := []struct {
			name   string
			stored string
		}{
			{"not base64", "%%%not-base64%%%"},
			{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
			{"all zeros", base64.StdEncoding.EncodeToString(make([]byte, 32))},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				options := newMemoryOptionRepository()
				options.values[optionsDomain.RootKeyOption] = tt.stored
				manager := NewRootKeyManager(options, nil)

				_, err := manager.Key(ctx)
				assert.ErrorIs(t, err, apperrors.ErrStorage)
			})
		}
	})

	t.Run("fails when the store is unreachable", func(t *testing.T) {
		options := new(mockOptionRepository)
		options.On("Get", ctx, optionsDomain.RootKeyOption).
			Return("", apperrors.New("connection refused"))

		manager := NewRootKeyManager(options, nil)

		_, err := manager.Key(ctx)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestRootKeyManager_Regenerate(t *testing.T) {
	ctx := context.Background()

	options := newMemoryOptionRepository()
	manager := NewRootKeyManager(options, nil)

	key1, err := manager.Key(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.Regenerate(ctx))

	key2, err := manager.Key(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2, "regenerate must produce a fresh key")
	assert.Len(t, key2, 32)
}

func TestRootKeyManager_KMSWrapping(t *testing.T) {
	ctx := context.Background()

	secretKey, err := localsecrets.NewRandomKey()
	require.NoError(t, err)
	keeper := localsecrets.NewKeeper(secretKey)
	t.Cleanup(func() {
		_ = keeper.Close()
	})

	options := newMemoryOptionRepository()
	manager := NewRootKeyManager(options, keeper)

	key1, err := manager.Key(ctx)
	require.NoError(t, err)
	assert.Len(t, key1, 32)

	// Stored value is wrapped, not the raw key
	stored, err := base64.StdEncoding.DecodeString(options.values[optionsDomain.RootKeyOption])
	require.NoError(t, err)
	assert.NotEqual(t, key1, stored)

	// Round-trips through the keeper
	key2, err := manager.Key(ctx)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}
