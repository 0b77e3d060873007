// Package usecase implements the access verification business logic.
package usecase

import (
	"context"
	"log/slog"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	settingsDomain "github.com/briefnote/briefnote/internal/settings/domain"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	userService "github.com/briefnote/briefnote/internal/user/service"
	"github.com/briefnote/briefnote/internal/verify/domain"
)

// Store defines the per-actor verification state operations.
type Store interface {
	MarkVerified(userID int64)
	IsVerified(userID int64) bool
	RecordFailure(userID int64) bool
	IsLockedOut(userID int64) bool
}

// SettingsProvider exposes the runtime settings the verifier consults.
type SettingsProvider interface {
	Get(ctx context.Context) (settingsDomain.Settings, error)
}

// AuditLogger records audit trail entries for verification events.
type AuditLogger interface {
	Log(ctx context.Context, entry *auditDomain.AuditLog) error
}

// UseCase defines the interface for access verification business logic.
type UseCase interface {
	// CheckVerified reports whether the actor may reveal or copy secrets:
	// either the verification requirement is disabled or the actor holds a
	// live verification.
	CheckVerified(ctx context.Context, userID int64) (bool, error)

	// Verify checks the actor's password, stamping a verification on
	// success. Returns ErrLockedOut during a lockout and
	// ErrIncorrectPassword on mismatch.
	Verify(ctx context.Context, actor *userDomain.User, password string) error
}

// VerifyUseCase handles the re-authentication gate.
type VerifyUseCase struct {
	store           Store
	passwordService userService.PasswordService
	settings        SettingsProvider
	auditLogger     AuditLogger
	logger          *slog.Logger
}

// NewVerifyUseCase creates a new VerifyUseCase.
func NewVerifyUseCase(
	store Store,
	passwordService userService.PasswordService,
	settings SettingsProvider,
	auditLogger AuditLogger,
	logger *slog.Logger,
) *VerifyUseCase {
	return &VerifyUseCase{
		store:           store,
		passwordService: passwordService,
		settings:        settings,
		auditLogger:     auditLogger,
		logger:          logger,
	}
}

// CheckVerified reports whether the actor may reveal or copy secrets.
func (uc *VerifyUseCase) CheckVerified(ctx context.Context, userID int64) (bool, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	if !settings.RequirePasswordVerification {
		return true, nil
	}
	return uc.store.IsVerified(userID), nil
}

// Verify checks the actor's password.
func (uc *VerifyUseCase) Verify(ctx context.Context, actor *userDomain.User, password string) error {
	// A locked-out actor is rejected before the password is even looked at,
	// so a correct guess during the lockout learns nothing.
	if uc.store.IsLockedOut(actor.ID) {
		return domain.ErrLockedOut
	}

	if uc.passwordService.ComparePassword(password, actor.PasswordHash) {
		uc.store.MarkVerified(actor.ID)
		return nil
	}

	if lockedOut := uc.store.RecordFailure(actor.ID); lockedOut {
		// The entry stays generic so the trail reveals nothing about the
		// attempted passwords.
		entry := &auditDomain.AuditLog{
			UserID: actor.ID,
			Action: auditDomain.ActionLockout,
		}
		if err := uc.auditLogger.Log(ctx, entry); err != nil {
			uc.logger.Error("failed to write lockout audit entry", slog.Any("error", err))
		}
		return domain.ErrLockedOut
	}

	return domain.ErrIncorrectPassword
}
