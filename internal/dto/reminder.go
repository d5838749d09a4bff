package dto

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
)

// ReminderDTO represents a reminder in API responses
type ReminderDTO struct {
	ID            string                   `json:"id"`
	ApplicationID *string                  `json:"application_id"`
	ActivityID    *string                  `json:"activity_id"`
	Title         string                   `json:"title"`
	DueAt         time.Time                `json:"due_at"`
	Channels      []models.ReminderChannel `json:"channels"`
	Sent          bool                     `json:"sent"`
	SentAt        *time.Time               `json:"sent_at"`
	DedupeKey     *string                  `json:"dedupe_key"`
	Meta          map[string]any           `json:"meta"`
	Version       int64                    `json:"version"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ReminderListResponse represents the owner's reminders
type ReminderListResponse struct {
	Items []ReminderDTO `json:"items"`
}

// ToReminderDTO converts a Reminder model to ReminderDTO
func ToReminderDTO(reminder models.Reminder) ReminderDTO {
	return ReminderDTO{
		ID:            reminder.ID,
		ApplicationID: reminder.ApplicationID,
		ActivityID:    reminder.ActivityID,
		Title:         reminder.Title,
		DueAt:         reminder.DueAt,
		Channels:      reminder.Channels,
		Sent:          reminder.Sent,
		SentAt:        reminder.SentAt,
		DedupeKey:     reminder.DedupeKey,
		Meta:          reminder.Meta,
		Version:       reminder.Version,
		CreatedAt:     reminder.CreatedAt,
		UpdatedAt:     reminder.UpdatedAt,
	}
}

// ToReminderListResponse converts a slice of reminders to ReminderListResponse
func ToReminderListResponse(reminders []models.Reminder) ReminderListResponse {
	items := make([]ReminderDTO, len(reminders))
	for i, reminder := range reminders {
		items[i] = ToReminderDTO(reminder)
	}
	return ReminderListResponse{Items: items}
}
