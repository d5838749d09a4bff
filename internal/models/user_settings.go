package models

import "time"

// UserSettings holds per-user reminder preferences. Quiet hours are stored
// as "HH:MM" local time-of-day strings interpreted in the user's timezone.
type UserSettings struct {
	UserID           string         `gorm:"type:uuid;primarykey" json:"user_id"`
	QuietHoursStart  *string        `gorm:"type:varchar(5)" json:"quiet_hours_start"`
	QuietHoursEnd    *string        `gorm:"type:varchar(5)" json:"quiet_hours_end"`
	ReminderDefaults map[string]any `gorm:"serializer:json" json:"reminder_defaults"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
