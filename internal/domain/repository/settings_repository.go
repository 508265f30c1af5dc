package repository

import (
	"context"
	"errors"

	"github.com/sangkips/preferences-api/internal/domain/entity"
)

// PreferenceStore defines data access for one per-user preference record.
// T is the stored entity and P the partial update applied to it.
type PreferenceStore[T any, P any] interface {
	// Fetch returns the stored record, or nil when the user has none
	Fetch(ctx context.Context, userID string) (*T, error)
	// FetchOrDefault returns the stored record or an unsaved default
	FetchOrDefault(ctx context.Context, userID string) (*T, error)
	// UpsertPartial creates the row from defaults when missing, overlays patch and saves it
	UpsertPartial(ctx context.Context, userID string, patch P) (*T, error)
}

// UserSettingsRepository stores general settings
type UserSettingsRepository = PreferenceStore[entity.UserSettings, entity.UserSettingsPatch]

// NotificationPreferencesRepository stores notification toggles
type NotificationPreferencesRepository = PreferenceStore[entity.NotificationPreferences, entity.NotificationPreferencesPatch]

// ThemeSettingsRepository stores theme settings
type ThemeSettingsRepository = PreferenceStore[entity.ThemeSettings, entity.ThemeSettingsPatch]

// ErrPersistence marks failures of the backing store. Implementations wrap
// driver errors so callers can match them with errors.Is.
var ErrPersistence = errors.New("persistence failure")
