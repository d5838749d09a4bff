package services

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"github.com/karashiro/jobtrack-api/internal/utils"
)

// ReminderService handles reminder business logic.
type ReminderService struct {
	reminderRepo repository.ReminderRepository
	appRepo      repository.ApplicationRepository
	activityRepo repository.ActivityRepository
}

// NewReminderService creates a new ReminderService.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	appRepo repository.ApplicationRepository,
	activityRepo repository.ActivityRepository,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		appRepo:      appRepo,
		activityRepo: activityRepo,
	}
}

// ListRemindersInput represents filters for listing reminders.
type ListRemindersInput struct {
	DueBefore *time.Time
	DueAfter  *time.Time
	Sent      *bool
}

// List returns the owner's reminders ordered by due time ascending.
func (s *ReminderService) List(ownerID string, input ListRemindersInput) ([]models.Reminder, error) {
	return s.reminderRepo.List(ownerID, repository.ReminderFilter{
		DueBefore: input.DueBefore,
		DueAfter:  input.DueAfter,
		Sent:      input.Sent,
	})
}

// CreateReminderInput represents input for creating a reminder.
type CreateReminderInput struct {
	ID            string
	ApplicationID *string
	ActivityID    *string
	Title         string
	DueAt         time.Time
	Channels      []string
	DedupeKey     *string
	Meta          map[string]any
}

// Create validates the payload and persists a new reminder. A reminder must
// anchor to an application or an activity; the referenced rows are resolved
// within the owner's scope so a foreign reference reads as invalid, not as
// someone else's data.
func (s *ReminderService) Create(ownerID string, input CreateReminderInput) (*models.Reminder, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidRequest("title must be a non-empty string.")
	}
	if input.DueAt.IsZero() {
		return nil, apperrors.InvalidRequest("due_at is required.")
	}
	if input.ApplicationID == nil && input.ActivityID == nil {
		return nil, apperrors.InvalidRequest("a reminder must reference an application or an activity.")
	}

	if input.ApplicationID != nil {
		if _, err := s.appRepo.FindByID(ownerID, *input.ApplicationID); err != nil {
			return nil, apperrors.InvalidRequest("application_id does not reference one of your applications.")
		}
	}
	if input.ActivityID != nil {
		if _, err := s.activityRepo.FindByID(ownerID, *input.ActivityID); err != nil {
			return nil, apperrors.InvalidRequest("activity_id does not reference one of your activities.")
		}
	}

	channels := make([]models.ReminderChannel, 0, len(input.Channels))
	for _, raw := range input.Channels {
		channel := models.ReminderChannel(raw)
		if !channel.Valid() {
			return nil, apperrors.InvalidRequest("channels contains an unknown delivery channel.")
		}
		channels = append(channels, channel)
	}

	reminder := &models.Reminder{
		ID:            input.ID,
		UserID:        ownerID,
		ApplicationID: input.ApplicationID,
		ActivityID:    input.ActivityID,
		Title:         input.Title,
		DueAt:         input.DueAt,
		Channels:      channels,
		DedupeKey:     input.DedupeKey,
		Meta:          input.Meta,
	}

	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, translateCreateError("reminder", err)
	}
	return reminder, nil
}

// Get returns the owner's reminder or a not-found problem.
func (s *ReminderService) Get(ownerID, id string) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, translateLookupError("Reminder", "reminders", id, err)
	}
	return reminder, nil
}

// Update applies a partial update guarded by the If-Match precondition.
func (s *ReminderService) Update(ownerID, id, ifMatch string, raw map[string]any) (*models.Reminder, error) {
	expected, err := utils.ParseIfMatch(ifMatch)
	if err != nil {
		return nil, err
	}

	changes, err := reminderChanges(raw)
	if err != nil {
		return nil, err
	}

	reminder, err := s.reminderRepo.Update(ownerID, id, expected, changes)
	if err != nil {
		return nil, translateLookupError("Reminder", "reminders", id, err)
	}
	return reminder, nil
}

// Delete removes the reminder, guarded by the If-Match precondition.
func (s *ReminderService) Delete(ownerID, id, ifMatch string) error {
	expected, err := utils.ParseIfMatch(ifMatch)
	if err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(ownerID, id, expected); err != nil {
		return translateLookupError("Reminder", "reminders", id, err)
	}
	return nil
}

func reminderChanges(raw map[string]any) (map[string]any, error) {
	changes := make(map[string]any)
	for key, value := range raw {
		switch key {
		case "title":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = s
		case "due_at":
			if value == nil {
				return nil, apperrors.InvalidRequest("due_at cannot be cleared.")
			}
			v, err := nullableTime(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "channels":
			if value == nil {
				return nil, apperrors.InvalidRequest("channels cannot be cleared.")
			}
			items, ok := value.([]any)
			if !ok {
				return nil, apperrors.InvalidRequest("channels must be a list of delivery channels.")
			}
			if len(items) == 0 {
				return nil, apperrors.InvalidRequest("channels must not be empty.")
			}
			for _, item := range items {
				s, ok := item.(string)
				if !ok || !models.ReminderChannel(s).Valid() {
					return nil, apperrors.InvalidRequest("channels contains an unknown delivery channel.")
				}
			}
			v, err := nullableStringList(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "sent":
			v, err := nullableBool(key, value)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, apperrors.InvalidRequest("sent cannot be cleared.")
			}
			changes[key] = v
		case "sent_at":
			v, err := nullableTime(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "dedupe_key":
			v, err := nullableString(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "meta":
			v, err := nullableObject(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		}
	}
	return changes, nil
}
