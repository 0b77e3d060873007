// Package usecase implements the runtime settings business logic.
package usecase

import (
	"context"
	"encoding/json"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	optionsDomain "github.com/briefnote/briefnote/internal/options/domain"
	"github.com/briefnote/briefnote/internal/settings/domain"
)

// OptionRepository defines the persistence operations the usecase needs.
type OptionRepository interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}

// UseCase defines the interface for settings business logic.
type UseCase interface {
	// Get returns the current settings, falling back to defaults when none
	// were ever saved.
	Get(ctx context.Context) (domain.Settings, error)

	// Update replaces the stored settings.
	Update(ctx context.Context, settings domain.Settings) error
}

// SettingsUseCase handles settings persistence in the options table.
type SettingsUseCase struct {
	optionRepo OptionRepository
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(optionRepo OptionRepository) *SettingsUseCase {
	return &SettingsUseCase{optionRepo: optionRepo}
}

// Get returns the current settings.
func (uc *SettingsUseCase) Get(ctx context.Context) (domain.Settings, error) {
	raw, err := uc.optionRepo.Get(ctx, optionsDomain.SettingsOption)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return domain.Default(), nil
		}
		return domain.Settings{}, err
	}

	settings := domain.Default()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return domain.Settings{}, apperrors.Wrap(err, "failed to decode settings")
	}

	return settings, nil
}

// Update replaces the stored settings.
func (uc *SettingsUseCase) Update(ctx context.Context, settings domain.Settings) error {
	if settings.AuditLogRetentionDays < 0 || settings.AuditLogRetentionDays > 3650 {
		return domain.ErrInvalidRetention
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode settings")
	}

	return uc.optionRepo.Set(ctx, optionsDomain.SettingsOption, string(raw))
}
