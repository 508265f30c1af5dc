package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/sangkips/preferences-api/internal/domain/entity"
	"github.com/sangkips/preferences-api/internal/domain/repository"
	"github.com/sangkips/preferences-api/pkg/apperror"
)

// NotificationSettingsView is the catalog together with the user's toggles
type NotificationSettingsView struct {
	Items       []entity.NotificationItem `json:"items"`
	Preferences map[string]bool           `json:"preferences"`
}

// NotificationPreferencesView is returned after an update
type NotificationPreferencesView struct {
	Preferences map[string]bool `json:"preferences"`
}

// NotificationService handles notification toggles
type NotificationService struct {
	prefsRepo repository.NotificationPreferencesRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(prefsRepo repository.NotificationPreferencesRepository) *NotificationService {
	return &NotificationService{prefsRepo: prefsRepo}
}

// GetSettings returns the catalog and the stored or default toggles
func (s *NotificationService) GetSettings(ctx context.Context, userID string) (*NotificationSettingsView, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	prefs, err := s.prefsRepo.FetchOrDefault(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	items := make([]entity.NotificationItem, len(entity.NotificationCatalog))
	copy(items, entity.NotificationCatalog)

	return &NotificationSettingsView{
		Items:       items,
		Preferences: prefs.ToMap(),
	}, nil
}

// UpdatePreferences applies the known keys of updates. Unknown keys are ignored;
// a known key whose value is not a boolean fails the whole request.
func (s *NotificationService) UpdatePreferences(ctx context.Context, userID string, updates map[string]json.RawMessage) (*NotificationPreferencesView, error) {
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	patch, err := decodeNotificationPatch(updates)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.UpsertPartial(ctx, userID, patch)
	if err != nil {
		return nil, storeError(err)
	}

	return &NotificationPreferencesView{Preferences: prefs.ToMap()}, nil
}

func decodeNotificationPatch(updates map[string]json.RawMessage) (entity.NotificationPreferencesPatch, error) {
	var patch entity.NotificationPreferencesPatch
	var fields []apperror.FieldError

	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !entity.IsNotificationKey(key) {
			continue
		}
		var enabled *bool
		if err := json.Unmarshal(updates[key], &enabled); err != nil || enabled == nil {
			fields = append(fields, apperror.FieldError{Field: key, Message: "must be a boolean"})
			continue
		}
		patch.Set(key, *enabled)
	}

	if len(fields) > 0 {
		return entity.NotificationPreferencesPatch{}, apperror.NewValidationError(fields)
	}
	return patch, nil
}
