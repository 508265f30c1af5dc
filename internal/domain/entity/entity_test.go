package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sangkips/preferences-api/internal/domain/enum"
)

func ptr[T any](v T) *T { return &v }

func TestDefaults(t *testing.T) {
	s := DefaultUserSettings("u1")
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, "UTC", s.Timezone)
	assert.Equal(t, "en-US", s.Locale)

	n := DefaultNotificationPreferences("u1")
	assert.Equal(t, map[string]bool{
		"email":        false,
		"push":         true,
		"assignments":  false,
		"skillUpdates": true,
	}, n.ToMap())

	th := DefaultThemeSettings("u1")
	assert.Equal(t, enum.ThemeModeSystem, th.Mode)
	assert.Equal(t, "#3b82f6", th.AccentColor)
}

func TestUserSettingsPatchAppliesOnlyPresentFields(t *testing.T) {
	s := DefaultUserSettings("u1")
	UserSettingsPatch{Language: ptr("fr"), Timezone: ptr("Europe/Paris")}.ApplyTo(s)

	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, "Europe/Paris", s.Timezone)
	assert.Equal(t, "en-US", s.Locale)

	before := *s
	UserSettingsPatch{}.ApplyTo(s)
	assert.Equal(t, before, *s)
}

func TestNotificationPreferencesPatch(t *testing.T) {
	var p NotificationPreferencesPatch
	assert.True(t, p.Set("email", true))
	assert.True(t, p.Set("skillUpdates", false))
	assert.False(t, p.Set("sms", true))

	n := DefaultNotificationPreferences("u1")
	p.ApplyTo(n)

	assert.True(t, n.EmailEnabled)
	assert.True(t, n.PushEnabled)
	assert.False(t, n.AssignmentsEnabled)
	assert.False(t, n.SkillUpdatesEnabled)
}

func TestThemeSettingsPatch(t *testing.T) {
	th := DefaultThemeSettings("u1")
	ThemeSettingsPatch{Mode: ptr(enum.ThemeModeDark)}.ApplyTo(th)

	assert.Equal(t, enum.ThemeModeDark, th.Mode)
	assert.Equal(t, DefaultAccentColor, th.AccentColor)
}

func TestNotificationCatalog(t *testing.T) {
	keys := make([]string, 0, len(NotificationCatalog))
	for _, item := range NotificationCatalog {
		assert.NotEmpty(t, item.Label)
		assert.NotEmpty(t, item.Description)
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []string{"email", "push", "assignments", "skillUpdates"}, keys)

	assert.True(t, IsNotificationKey("assignments"))
	assert.False(t, IsNotificationKey("skill_updates"))
}
