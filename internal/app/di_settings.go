package app

import (
	"fmt"

	settingsUseCase "github.com/briefnote/briefnote/internal/settings/usecase"
)

// SettingsUseCase returns the settings use case instance.
func (c *Container) SettingsUseCase() (settingsUseCase.UseCase, error) {
	var err error
	c.settingsUCInit.Do(func() {
		c.settingsUC, err = c.initSettingsUseCase()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingsUC, nil
}

// initSettingsUseCase creates the settings use case.
func (c *Container) initSettingsUseCase() (settingsUseCase.UseCase, error) {
	optionRepo, err := c.OptionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get option repository for settings use case: %w", err)
	}

	return settingsUseCase.NewSettingsUseCase(optionRepo), nil
}
