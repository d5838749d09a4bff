package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"gorm.io/gorm"
)

// SettingsService manages per-user reminder preferences.
type SettingsService struct {
	userRepo repository.UserRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(userRepo repository.UserRepository) *SettingsService {
	return &SettingsService{userRepo: userRepo}
}

// Get returns the user's settings, defaulting to an empty row when none
// have been stored yet.
func (s *SettingsService) Get(userID string) (*models.UserSettings, error) {
	settings, err := s.userRepo.FindSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		settings = &models.UserSettings{UserID: userID}
	}
	return settings, nil
}

// UpdateSettingsInput represents the full replacement payload for settings.
// Quiet hours are "HH:MM" local time-of-day strings; both must be present
// together or absent together.
type UpdateSettingsInput struct {
	QuietHoursStart  *string
	QuietHoursEnd    *string
	Timezone         *string
	ReminderDefaults map[string]any
}

// Update replaces the user's settings and optionally the account timezone.
func (s *SettingsService) Update(userID string, input UpdateSettingsInput) (*models.UserSettings, error) {
	if (input.QuietHoursStart == nil) != (input.QuietHoursEnd == nil) {
		return nil, apperrors.InvalidRequest("quiet_hours_start and quiet_hours_end must be set together.")
	}
	if input.QuietHoursStart != nil {
		if _, err := time.Parse("15:04", *input.QuietHoursStart); err != nil {
			return nil, apperrors.InvalidRequest("quiet_hours_start must be in HH:MM format.")
		}
		if _, err := time.Parse("15:04", *input.QuietHoursEnd); err != nil {
			return nil, apperrors.InvalidRequest("quiet_hours_end must be in HH:MM format.")
		}
	}

	if input.Timezone != nil {
		if _, err := s.userRepo.FindByID(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if err := s.userRepo.UpdateTimezone(userID, *input.Timezone); err != nil {
			return nil, fmt.Errorf("failed to update timezone: %w", err)
		}
	}

	settings := &models.UserSettings{
		UserID:           userID,
		QuietHoursStart:  input.QuietHoursStart,
		QuietHoursEnd:    input.QuietHoursEnd,
		ReminderDefaults: input.ReminderDefaults,
	}
	if err := s.userRepo.UpsertSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
