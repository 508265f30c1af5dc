package service

import (
	"context"

	"github.com/sangkips/preferences-api/internal/domain/entity"
	"github.com/sangkips/preferences-api/internal/domain/enum"
	"github.com/sangkips/preferences-api/internal/domain/repository"
	"github.com/sangkips/preferences-api/pkg/apperror"
)

// ThemeSettingsView is the wire shape of theme settings
type ThemeSettingsView struct {
	Mode        enum.ThemeMode `json:"mode"`
	AccentColor string         `json:"accentColor"`
}

// UpdateThemeInput represents a partial theme update
type UpdateThemeInput struct {
	Mode        *string `json:"mode"`
	AccentColor *string `json:"accentColor" validate:"omitnil,max=20"`
}

// ThemeService handles theme mode and accent colour
type ThemeService struct {
	themeRepo repository.ThemeSettingsRepository
}

// NewThemeService creates a new theme service
func NewThemeService(themeRepo repository.ThemeSettingsRepository) *ThemeService {
	return &ThemeService{themeRepo: themeRepo}
}

// GetSettings returns the stored theme or the defaults
func (s *ThemeService) GetSettings(ctx context.Context, userID string) (*ThemeSettingsView, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	theme, err := s.themeRepo.FetchOrDefault(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	return newThemeSettingsView(theme), nil
}

// UpdateSettings rejects unknown modes before anything is written
func (s *ThemeService) UpdateSettings(ctx context.Context, userID string, input *UpdateThemeInput) (*ThemeSettingsView, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	var patch entity.ThemeSettingsPatch
	if input.Mode != nil {
		mode, err := enum.ParseThemeMode(*input.Mode)
		if err != nil {
			return nil, apperror.NewInvalidThemeModeError()
		}
		patch.Mode = &mode
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	patch.AccentColor = input.AccentColor

	theme, err := s.themeRepo.UpsertPartial(ctx, userID, patch)
	if err != nil {
		return nil, storeError(err)
	}

	return newThemeSettingsView(theme), nil
}

func newThemeSettingsView(t *entity.ThemeSettings) *ThemeSettingsView {
	return &ThemeSettingsView{
		Mode:        t.Mode,
		AccentColor: t.AccentColor,
	}
}
