package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification keys as they appear on the wire
const (
	NotificationEmail        = "email"
	NotificationPush         = "push"
	NotificationAssignments  = "assignments"
	NotificationSkillUpdates = "skillUpdates"
)

// NotificationItem describes one toggle shown to the user
type NotificationItem struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// NotificationCatalog is the fixed list of toggles, in display order
var NotificationCatalog = []NotificationItem{
	{Key: NotificationEmail, Label: "Email Notifications", Description: "Receive notifications via email"},
	{Key: NotificationPush, Label: "Push Notifications", Description: "Receive browser push notifications"},
	{Key: NotificationAssignments, Label: "Assignment Updates", Description: "Get notified when assignments change"},
	{Key: NotificationSkillUpdates, Label: "Skill Updates", Description: "Get notified about skill taxonomy changes"},
}

// NotificationPreferences stores which notifications a user receives
type NotificationPreferences struct {
	ID                  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID              string    `gorm:"size:255;not null;uniqueIndex" json:"user_id"`
	EmailEnabled        bool      `gorm:"not null" json:"email_enabled"`
	PushEnabled         bool      `gorm:"not null" json:"push_enabled"`
	AssignmentsEnabled  bool      `gorm:"not null" json:"assignments_enabled"`
	SkillUpdatesEnabled bool      `gorm:"not null" json:"skill_updates_enabled"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DefaultNotificationPreferences returns email off, push on, assignments off, skill updates on
func DefaultNotificationPreferences(userID string) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:              userID,
		EmailEnabled:        false,
		PushEnabled:         true,
		AssignmentsEnabled:  false,
		SkillUpdatesEnabled: true,
	}
}

// BeforeCreate generates a UUID before creating new preferences
func (n *NotificationPreferences) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the NotificationPreferences model
func (NotificationPreferences) TableName() string {
	return "notification_preferences"
}

// ToMap returns the flags keyed by their wire names
func (n *NotificationPreferences) ToMap() map[string]bool {
	return map[string]bool{
		NotificationEmail:        n.EmailEnabled,
		NotificationPush:         n.PushEnabled,
		NotificationAssignments:  n.AssignmentsEnabled,
		NotificationSkillUpdates: n.SkillUpdatesEnabled,
	}
}

// NotificationPreferencesPatch is a partial update. Nil fields are left untouched.
type NotificationPreferencesPatch struct {
	Email        *bool
	Push         *bool
	Assignments  *bool
	SkillUpdates *bool
}

// Set assigns the flag named by a wire key. Unknown keys report false.
func (p *NotificationPreferencesPatch) Set(key string, enabled bool) bool {
	v := enabled
	switch key {
	case NotificationEmail:
		p.Email = &v
	case NotificationPush:
		p.Push = &v
	case NotificationAssignments:
		p.Assignments = &v
	case NotificationSkillUpdates:
		p.SkillUpdates = &v
	default:
		return false
	}
	return true
}

// ApplyTo overlays the present flags onto n
func (p NotificationPreferencesPatch) ApplyTo(n *NotificationPreferences) {
	if p.Email != nil {
		n.EmailEnabled = *p.Email
	}
	if p.Push != nil {
		n.PushEnabled = *p.Push
	}
	if p.Assignments != nil {
		n.AssignmentsEnabled = *p.Assignments
	}
	if p.SkillUpdates != nil {
		n.SkillUpdatesEnabled = *p.SkillUpdates
	}
}

// IsNotificationKey reports whether key names one of the catalog toggles
func IsNotificationKey(key string) bool {
	for _, item := range NotificationCatalog {
		if item.Key == key {
			return true
		}
	}
	return false
}
