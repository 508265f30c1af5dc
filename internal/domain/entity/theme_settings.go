package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/preferences-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DefaultAccentColor is the accent used until a user picks one
const DefaultAccentColor = "#3b82f6"

// ThemeSettings holds a user's appearance settings
type ThemeSettings struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string         `gorm:"size:255;not null;uniqueIndex" json:"user_id"`
	Mode        enum.ThemeMode `gorm:"size:10;not null" json:"mode"`
	AccentColor string         `gorm:"size:20;not null" json:"accent_color"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DefaultThemeSettings returns the system mode with the default accent
func DefaultThemeSettings(userID string) *ThemeSettings {
	return &ThemeSettings{
		UserID:      userID,
		Mode:        enum.ThemeModeSystem,
		AccentColor: DefaultAccentColor,
	}
}

// BeforeCreate generates a UUID before creating new settings
func (t *ThemeSettings) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ThemeSettings model
func (ThemeSettings) TableName() string {
	return "theme_settings"
}

// ThemeSettingsPatch is a partial update. Mode is expected to be valid already.
type ThemeSettingsPatch struct {
	Mode        *enum.ThemeMode
	AccentColor *string
}

// ApplyTo overlays the present fields onto t
func (p ThemeSettingsPatch) ApplyTo(t *ThemeSettings) {
	if p.Mode != nil {
		t.Mode = *p.Mode
	}
	if p.AccentColor != nil {
		t.AccentColor = *p.AccentColor
	}
}
