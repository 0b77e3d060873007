package app

import (
	"fmt"

	verifyService "github.com/briefnote/briefnote/internal/verify/service"
	verifyUseCase "github.com/briefnote/briefnote/internal/verify/usecase"
)

// VerifyStore returns the in-memory per-actor verification state store.
func (c *Container) VerifyStore() *verifyService.MemoryStore {
	c.verifyStoreInit.Do(func() {
		c.verifyStore = verifyService.NewMemoryStore(verifyService.Config{
			VerificationTTL: c.config.VerificationTTL,
			MaxAttempts:     c.config.VerifyMaxAttempts,
			FailureWindow:   c.config.VerifyFailureWindow,
			LockoutDuration: c.config.VerifyLockoutDuration,
		})
	})
	return c.verifyStore
}

// VerifyUseCase returns the password verification use case instance.
func (c *Container) VerifyUseCase() (verifyUseCase.UseCase, error) {
	var err error
	c.verifyUCInit.Do(func() {
		c.verifyUC, err = c.initVerifyUseCase()
		if err != nil {
			c.initErrors["verifyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["verifyUseCase"]; exists {
		return nil, storedErr
	}
	return c.verifyUC, nil
}

// initVerifyUseCase creates the verify use case with all its dependencies.
func (c *Container) initVerifyUseCase() (verifyUseCase.UseCase, error) {
	settingsUC, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for verify use case: %w", err)
	}

	auditUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for verify use case: %w", err)
	}

	return verifyUseCase.NewVerifyUseCase(
		c.VerifyStore(),
		c.PasswordService(),
		settingsUC,
		auditUC,
		c.Logger(),
	), nil
}
