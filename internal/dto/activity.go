package dto

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
)

// ActivityDTO represents an activity in API responses
type ActivityDTO struct {
	ID            string                `json:"id"`
	ApplicationID string                `json:"application_id"`
	Type          models.ActivityType   `json:"type"`
	Status        models.ActivityStatus `json:"status"`
	StartsAt      *time.Time            `json:"starts_at"`
	DurationMins  *int                  `json:"duration_minutes"`
	Timezone      *string               `json:"timezone"`
	Outcome       *string               `json:"outcome"`
	NextAction    *string               `json:"next_action"`
	NextActionDue *time.Time            `json:"next_action_due"`
	Notes         *string               `json:"notes"`
	Contacts      map[string]any        `json:"related_contacts"`

	InterviewStage  *models.InterviewStage  `json:"interview_stage"`
	InterviewMedium *models.InterviewMedium `json:"interview_medium"`
	LocationOrLink  *string                 `json:"location_or_link"`
	Agenda          *string                 `json:"agenda"`
	PrepChecklist   map[string]any          `json:"prep_checklist"`

	FollowupChannel *models.FollowupChannel `json:"followup_channel"`
	TemplateUsed    *string                 `json:"template_used"`
	ReplyDeadline   *time.Time              `json:"reply_deadline"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityListResponse represents an application's activities
type ActivityListResponse struct {
	Items []ActivityDTO `json:"items"`
}

// ToActivityDTO converts an Activity model to ActivityDTO
func ToActivityDTO(activity models.Activity) ActivityDTO {
	return ActivityDTO{
		ID:              activity.ID,
		ApplicationID:   activity.ApplicationID,
		Type:            activity.Type,
		Status:          activity.Status,
		StartsAt:        activity.StartsAt,
		DurationMins:    activity.DurationMins,
		Timezone:        activity.Timezone,
		Outcome:         activity.Outcome,
		NextAction:      activity.NextAction,
		NextActionDue:   activity.NextActionDue,
		Notes:           activity.Notes,
		Contacts:        activity.Contacts,
		InterviewStage:  activity.InterviewStage,
		InterviewMedium: activity.InterviewMedium,
		LocationOrLink:  activity.LocationOrLink,
		Agenda:          activity.Agenda,
		PrepChecklist:   activity.PrepChecklist,
		FollowupChannel: activity.FollowupChannel,
		TemplateUsed:    activity.TemplateUsed,
		ReplyDeadline:   activity.ReplyDeadline,
		Version:         activity.Version,
		CreatedAt:       activity.CreatedAt,
		UpdatedAt:       activity.UpdatedAt,
	}
}

// ToActivityListResponse converts a slice of activities to ActivityListResponse
func ToActivityListResponse(activities []models.Activity) ActivityListResponse {
	items := make([]ActivityDTO, len(activities))
	for i, activity := range activities {
		items[i] = ToActivityDTO(activity)
	}
	return ActivityListResponse{Items: items}
}
