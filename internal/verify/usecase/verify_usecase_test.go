package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	apperrors "github.com/briefnote/briefnote/internal/errors"
	settingsDomain "github.com/briefnote/briefnote/internal/settings/domain"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/verify/domain"
	"github.com/briefnote/briefnote/internal/verify/service"
)

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) HashPassword(plainPassword string) (string, error) {
	args := m.Called(plainPassword)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	args := m.Called(plainPassword, hashedPassword)
	return args.Bool(0)
}

type mockSettingsProvider struct {
	mock.Mock
}

func (m *mockSettingsProvider) Get(ctx context.Context) (settingsDomain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settingsDomain.Settings), args.Error(1)
}

type mockAuditLogger struct {
	mock.Mock
}

func (m *mockAuditLogger) Log(ctx context.Context, entry *auditDomain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func newStore() *service.MemoryStore {
	return service.NewMemoryStore(service.Config{
		VerificationTTL: 15 * time.Minute,
		MaxAttempts:     5,
		FailureWindow:   5 * time.Minute,
		LockoutDuration: 5 * time.Minute,
	})
}

func testActor() *userDomain.User {
	return &userDomain.User{ID: 7, Name: "Ada", PasswordHash: "$argon2id$hash"}
}

func TestVerifyUseCase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("success stamps a verification", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		passwordService.On("ComparePassword", "correct", "$argon2id$hash").Return(true)

		require.NoError(t, uc.Verify(ctx, testActor(), "correct"))
		assert.True(t, store.IsVerified(7))
	})

	t.Run("mismatch returns ErrIncorrectPassword", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		passwordService.On("ComparePassword", "wrong", "$argon2id$hash").Return(false)

		err := uc.Verify(ctx, testActor(), "wrong")
		assert.ErrorIs(t, err, domain.ErrIncorrectPassword)
		assert.False(t, store.IsVerified(7))
	})

	t.Run("four failures then a success resets the counter", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		passwordService.On("ComparePassword", "wrong", "$argon2id$hash").Return(false)
		passwordService.On("ComparePassword", "correct", "$argon2id$hash").Return(true)

		actor := testActor()
		for i := 0; i < 4; i++ {
			assert.ErrorIs(t, uc.Verify(ctx, actor, "wrong"), domain.ErrIncorrectPassword)
		}
		require.NoError(t, uc.Verify(ctx, actor, "correct"))

		// The counter is reset, so four more failures still do not lock out
		for i := 0; i < 4; i++ {
			assert.ErrorIs(t, uc.Verify(ctx, actor, "wrong"), domain.ErrIncorrectPassword)
		}
		assert.False(t, store.IsLockedOut(7))
	})

	t.Run("the fifth failure locks out and writes a generic audit entry", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		passwordService.On("ComparePassword", "wrong", "$argon2id$hash").Return(false)
		auditLogger.On("Log", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		actor := testActor()
		for i := 0; i < 4; i++ {
			assert.ErrorIs(t, uc.Verify(ctx, actor, "wrong"), domain.ErrIncorrectPassword)
		}
		assert.ErrorIs(t, uc.Verify(ctx, actor, "wrong"), domain.ErrLockedOut)

		entry := auditLogger.Calls[0].Arguments.Get(1).(*auditDomain.AuditLog)
		assert.Equal(t, auditDomain.ActionLockout, entry.Action)
		assert.Equal(t, int64(7), entry.UserID)
		assert.Empty(t, entry.Details, "lockout entries stay generic")
	})

	t.Run("a locked-out actor is rejected even with the correct password", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		passwordService.On("ComparePassword", "wrong", "$argon2id$hash").Return(false)
		auditLogger.On("Log", ctx, mock.Anything).Return(nil)

		actor := testActor()
		for i := 0; i < 5; i++ {
			_ = uc.Verify(ctx, actor, "wrong")
		}

		err := uc.Verify(ctx, actor, "correct")
		assert.ErrorIs(t, err, domain.ErrLockedOut)
		assert.ErrorIs(t, err, apperrors.ErrLocked)
		passwordService.AssertNotCalled(t, "ComparePassword", "correct", "$argon2id$hash")
	})
}

func TestVerifyUseCase_CheckVerified(t *testing.T) {
	ctx := context.Background()

	t.Run("always allowed when the requirement is disabled", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		settings.On("Get", ctx).Return(settingsDomain.Settings{RequirePasswordVerification: false}, nil)

		verified, err := uc.CheckVerified(ctx, 7)
		require.NoError(t, err)
		assert.True(t, verified)
	})

	t.Run("requires a live verification when enabled", func(t *testing.T) {
		store := newStore()
		passwordService := new(mockPasswordService)
		settings := new(mockSettingsProvider)
		auditLogger := new(mockAuditLogger)
		uc := NewVerifyUseCase(store, passwordService, settings, auditLogger, slog.Default())

		settings.On("Get", ctx).Return(settingsDomain.Settings{RequirePasswordVerification: true}, nil)

		verified, err := uc.CheckVerified(ctx, 7)
		require.NoError(t, err)
		assert.False(t, verified)

		store.MarkVerified(7)
		verified, err = uc.CheckVerified(ctx, 7)
		require.NoError(t, err)
		assert.True(t, verified)
	})
}
