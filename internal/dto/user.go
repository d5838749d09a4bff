package dto

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"created_at"`
}

// SettingsDTO represents per-user reminder preferences in API responses
type SettingsDTO struct {
	QuietHoursStart  *string        `json:"quiet_hours_start"`
	QuietHoursEnd    *string        `json:"quiet_hours_end"`
	Timezone         string         `json:"timezone"`
	ReminderDefaults map[string]any `json:"reminder_defaults"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Timezone:    user.Timezone,
		CreatedAt:   user.CreatedAt,
	}
}

// ToSettingsDTO converts settings plus the account timezone to SettingsDTO
func ToSettingsDTO(settings models.UserSettings, timezone string) SettingsDTO {
	defaults := settings.ReminderDefaults
	if defaults == nil {
		defaults = map[string]any{}
	}
	return SettingsDTO{
		QuietHoursStart:  settings.QuietHoursStart,
		QuietHoursEnd:    settings.QuietHoursEnd,
		Timezone:         timezone,
		ReminderDefaults: defaults,
	}
}
