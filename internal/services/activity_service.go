package services

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"github.com/karashiro/jobtrack-api/internal/utils"
)

// ActivityService handles activity business logic.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	appRepo      repository.ApplicationRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository, appRepo repository.ApplicationRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		appRepo:      appRepo,
	}
}

// ListByApplication returns the application's activities. The parent
// application is resolved first so a foreign application reads as not found.
func (s *ActivityService) ListByApplication(ownerID, applicationID string) ([]models.Activity, error) {
	if _, err := s.appRepo.FindByID(ownerID, applicationID); err != nil {
		return nil, translateLookupError("Application", "applications", applicationID, err)
	}
	return s.activityRepo.ListByApplication(ownerID, applicationID)
}

// CreateActivityInput represents input for creating an activity.
type CreateActivityInput struct {
	ID            string
	Type          string
	Status        string
	StartsAt      *time.Time
	DurationMins  *int
	Timezone      *string
	Outcome       *string
	NextAction    *string
	NextActionDue *time.Time
	Notes         *string
	Contacts      map[string]any

	InterviewStage  *string
	InterviewMedium *string
	LocationOrLink  *string
	Agenda          *string
	PrepChecklist   map[string]any

	FollowupChannel *string
	TemplateUsed    *string
	ReplyDeadline   *time.Time
}

// Create validates the payload and persists a new activity under the given
// application.
func (s *ActivityService) Create(ownerID, applicationID string, input CreateActivityInput) (*models.Activity, error) {
	if _, err := s.appRepo.FindByID(ownerID, applicationID); err != nil {
		return nil, translateLookupError("Application", "applications", applicationID, err)
	}

	activityType := models.ActivityType(input.Type)
	if !activityType.Valid() {
		return nil, apperrors.InvalidRequest("type is not a valid activity type.")
	}

	status := models.ActivityScheduled
	if input.Status != "" {
		status = models.ActivityStatus(input.Status)
		if !status.Valid() {
			return nil, apperrors.InvalidRequest("status is not a valid activity status.")
		}
	}
	// A scheduled activity always carries its start time.
	if status == models.ActivityScheduled && input.StartsAt == nil {
		return nil, apperrors.InvalidRequest("scheduled activities require starts_at.")
	}

	activity := &models.Activity{
		ID:            input.ID,
		UserID:        ownerID,
		ApplicationID: applicationID,
		Type:          activityType,
		Status:        status,
		StartsAt:      input.StartsAt,
		DurationMins:  input.DurationMins,
		Timezone:      input.Timezone,
		Outcome:       input.Outcome,
		NextAction:    input.NextAction,
		NextActionDue: input.NextActionDue,
		Notes:         input.Notes,
		Contacts:      input.Contacts,

		LocationOrLink: input.LocationOrLink,
		Agenda:         input.Agenda,
		PrepChecklist:  input.PrepChecklist,
		TemplateUsed:   input.TemplateUsed,
		ReplyDeadline:  input.ReplyDeadline,
	}

	if input.InterviewStage != nil {
		stage := models.InterviewStage(*input.InterviewStage)
		if !stage.Valid() {
			return nil, apperrors.InvalidRequest("interview_stage is not a valid interview stage.")
		}
		activity.InterviewStage = &stage
	}
	if input.InterviewMedium != nil {
		medium := models.InterviewMedium(*input.InterviewMedium)
		if !medium.Valid() {
			return nil, apperrors.InvalidRequest("interview_medium is not a valid interview medium.")
		}
		activity.InterviewMedium = &medium
	}
	if input.FollowupChannel != nil {
		channel := models.FollowupChannel(*input.FollowupChannel)
		if !channel.Valid() {
			return nil, apperrors.InvalidRequest("followup_channel is not a valid follow-up channel.")
		}
		activity.FollowupChannel = &channel
	}

	if err := s.activityRepo.Create(activity); err != nil {
		return nil, translateCreateError("activity", err)
	}
	return activity, nil
}

// Get returns the owner's activity or a not-found problem.
func (s *ActivityService) Get(ownerID, id string) (*models.Activity, error) {
	activity, err := s.activityRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, translateLookupError("Activity", "activities", id, err)
	}
	return activity, nil
}

// Update applies a partial update guarded by the If-Match precondition.
func (s *ActivityService) Update(ownerID, id, ifMatch string, raw map[string]any) (*models.Activity, error) {
	expected, err := utils.ParseIfMatch(ifMatch)
	if err != nil {
		return nil, err
	}

	changes, err := activityChanges(raw)
	if err != nil {
		return nil, err
	}

	// A scheduled activity always carries its start time. The patch may move
	// either side of that invariant, so the effective status and start time
	// after the patch are what get checked.
	status, statusInPatch := changes["status"]
	startsAt, startsInPatch := changes["starts_at"]
	if statusInPatch || startsInPatch {
		current, err := s.activityRepo.FindByID(ownerID, id)
		if err != nil {
			return nil, translateLookupError("Activity", "activities", id, err)
		}

		effectiveStatus := string(current.Status)
		if statusInPatch {
			effectiveStatus = status.(string)
		}
		startsAtSet := current.StartsAt != nil
		if startsInPatch {
			startsAtSet = startsAt != nil
		}
		if effectiveStatus == string(models.ActivityScheduled) && !startsAtSet {
			return nil, apperrors.InvalidRequest("scheduled activities require starts_at.")
		}
	}

	activity, err := s.activityRepo.Update(ownerID, id, expected, changes)
	if err != nil {
		return nil, translateLookupError("Activity", "activities", id, err)
	}
	return activity, nil
}

// Delete removes the activity, guarded by the If-Match precondition.
func (s *ActivityService) Delete(ownerID, id, ifMatch string) error {
	expected, err := utils.ParseIfMatch(ifMatch)
	if err != nil {
		return err
	}

	if err := s.activityRepo.Delete(ownerID, id, expected); err != nil {
		return translateLookupError("Activity", "activities", id, err)
	}
	return nil
}

func activityChanges(raw map[string]any) (map[string]any, error) {
	changes := make(map[string]any)
	for key, value := range raw {
		switch key {
		case "type":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			if !models.ActivityType(s).Valid() {
				return nil, apperrors.InvalidRequest("type is not a valid activity type.")
			}
			changes[key] = s
		case "status":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			if !models.ActivityStatus(s).Valid() {
				return nil, apperrors.InvalidRequest("status is not a valid activity status.")
			}
			changes[key] = s
		case "starts_at", "next_action_due", "reply_deadline":
			v, err := nullableTime(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "duration_minutes":
			v, err := nullableInt(key, value)
			if err != nil {
				return nil, err
			}
			changes["duration_mins"] = v
		case "interview_stage":
			v, err := nullableString(key, value)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok && !models.InterviewStage(s).Valid() {
				return nil, apperrors.InvalidRequest("interview_stage is not a valid interview stage.")
			}
			changes[key] = v
		case "interview_medium":
			v, err := nullableString(key, value)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok && !models.InterviewMedium(s).Valid() {
				return nil, apperrors.InvalidRequest("interview_medium is not a valid interview medium.")
			}
			changes[key] = v
		case "followup_channel":
			v, err := nullableString(key, value)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok && !models.FollowupChannel(s).Valid() {
				return nil, apperrors.InvalidRequest("followup_channel is not a valid follow-up channel.")
			}
			changes[key] = v
		case "timezone", "outcome", "next_action", "notes",
			"location_or_link", "agenda", "template_used":
			v, err := nullableString(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "related_contacts":
			v, err := nullableObject(key, value)
			if err != nil {
				return nil, err
			}
			changes["contacts"] = v
		case "prep_checklist":
			v, err := nullableObject(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		}
	}
	return changes, nil
}
