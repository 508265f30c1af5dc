package request

import (
	"encoding/json"

	"github.com/sangkips/preferences-api/internal/application/service"
)

// UpdateGeneralSettingsRequest represents the body of a general settings update
type UpdateGeneralSettingsRequest struct {
	Language *string `json:"language"`
	Timezone *string `json:"timezone"`
	Locale   *string `json:"locale"`
}

// ToInput converts the request to a service input
func (r *UpdateGeneralSettingsRequest) ToInput() *service.UpdateGeneralSettingsInput {
	return &service.UpdateGeneralSettingsInput{
		Language: r.Language,
		Timezone: r.Timezone,
		Locale:   r.Locale,
	}
}

// UpdateThemeRequest represents the body of a theme update.
// The accent colour may be sent as accentColor or accent_color.
type UpdateThemeRequest struct {
	Mode             *string `json:"mode"`
	AccentColor      *string `json:"accentColor"`
	AccentColorSnake *string `json:"accent_color"`
}

// ToInput converts the request to a service input; accentColor wins over accent_color
func (r *UpdateThemeRequest) ToInput() *service.UpdateThemeInput {
	accent := r.AccentColor
	if accent == nil {
		accent = r.AccentColorSnake
	}
	return &service.UpdateThemeInput{
		Mode:        r.Mode,
		AccentColor: accent,
	}
}

// UpdateNotificationsRequest holds the raw toggles of a notification update.
// Both {"preferences": {...}} and a bare {...} map are accepted.
type UpdateNotificationsRequest struct {
	Preferences map[string]json.RawMessage
}

func (r *UpdateNotificationsRequest) UnmarshalJSON(data []byte) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	if wrapped, ok := body["preferences"]; ok {
		var prefs map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &prefs); err == nil && prefs != nil {
			r.Preferences = prefs
			return nil
		}
	}

	r.Preferences = body
	return nil
}
