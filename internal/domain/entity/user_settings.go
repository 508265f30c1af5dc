package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// General settings defaults
const (
	DefaultLanguage = "en"
	DefaultTimezone = "UTC"
	DefaultLocale   = "en-US"
)

// UserSettings holds a user's general settings
type UserSettings struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"size:255;not null;uniqueIndex" json:"user_id"`
	Language  string    `gorm:"size:10;not null" json:"language"`
	Timezone  string    `gorm:"size:50;not null" json:"timezone"`
	Locale    string    `gorm:"size:10;not null" json:"locale"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultUserSettings returns the unsaved settings a user without a row has
func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:   userID,
		Language: DefaultLanguage,
		Timezone: DefaultTimezone,
		Locale:   DefaultLocale,
	}
}

// BeforeCreate generates a UUID before creating new settings
func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UserSettings model
func (UserSettings) TableName() string {
	return "user_settings"
}

// UserSettingsPatch is a partial update. Nil fields are left untouched.
type UserSettingsPatch struct {
	Language *string
	Timezone *string
	Locale   *string
}

// ApplyTo overlays the present fields onto s
func (p UserSettingsPatch) ApplyTo(s *UserSettings) {
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.Locale != nil {
		s.Locale = *p.Locale
	}
}
