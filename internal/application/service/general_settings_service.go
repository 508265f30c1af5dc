package service

import (
	"context"

	"github.com/sangkips/preferences-api/internal/domain/entity"
	"github.com/sangkips/preferences-api/internal/domain/repository"
	"github.com/sangkips/preferences-api/pkg/apperror"
)

// GeneralSettingsView is the wire shape of general settings
type GeneralSettingsView struct {
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Locale   string `json:"locale"`
}

// UpdateGeneralSettingsInput represents a partial update of general settings
type UpdateGeneralSettingsInput struct {
	Language *string `json:"language" validate:"omitnil,min=2,max=10"`
	Timezone *string `json:"timezone" validate:"omitnil,max=50"`
	Locale   *string `json:"locale" validate:"omitnil,max=10"`
}

// GeneralSettingsService handles language, timezone and locale
type GeneralSettingsService struct {
	settingsRepo repository.UserSettingsRepository
}

// NewGeneralSettingsService creates a new general settings service
func NewGeneralSettingsService(settingsRepo repository.UserSettingsRepository) *GeneralSettingsService {
	return &GeneralSettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the stored settings or the defaults
func (s *GeneralSettingsService) GetSettings(ctx context.Context, userID string) (*GeneralSettingsView, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	settings, err := s.settingsRepo.FetchOrDefault(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	return newGeneralSettingsView(settings), nil
}

// UpdateSettings validates input and applies the fields that are present
func (s *GeneralSettingsService) UpdateSettings(ctx context.Context, userID string, input *UpdateGeneralSettingsInput) (*GeneralSettingsView, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.UpsertPartial(ctx, userID, entity.UserSettingsPatch{
		Language: input.Language,
		Timezone: input.Timezone,
		Locale:   input.Locale,
	})
	if err != nil {
		return nil, storeError(err)
	}

	return newGeneralSettingsView(settings), nil
}

func newGeneralSettingsView(s *entity.UserSettings) *GeneralSettingsView {
	return &GeneralSettingsView{
		Language: s.Language,
		Timezone: s.Timezone,
		Locale:   s.Locale,
	}
}
