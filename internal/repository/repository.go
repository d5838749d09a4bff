package repository

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
)

// ApplicationFilter holds filtering options for listing applications.
// Limit is the raw fetch size; callers ask for one extra row to detect
// whether more pages exist. CursorCreatedAt/CursorID hold the decoded
// pagination cursor.
type ApplicationFilter struct {
	CursorCreatedAt *time.Time
	CursorID        string
	Limit           int
	Status          *models.AppStatus
	Query           string
	Tag             string
	Priority        *models.PriorityLevel
	Archived        *bool
}

// ReminderFilter holds filtering options for listing reminders.
type ReminderFilter struct {
	DueBefore *time.Time
	DueAfter  *time.Time
	Sent      *bool
}

// ApplicationRepository defines data access for applications. Every
// operation is scoped by owner id; a primary-key hit under another owner
// behaves as not found.
type ApplicationRepository interface {
	// Create persists a new application with version 1.
	Create(app *models.Application) error

	// List returns the owner's applications in (created_at DESC, id DESC)
	// order, at most filter.Limit rows past the cursor.
	List(ownerID string, filter ApplicationFilter) ([]models.Application, error)

	// FindByID finds an application by id within the owner's scope.
	FindByID(ownerID, id string, preload ...string) (*models.Application, error)

	// Update applies a version-guarded partial update and returns the
	// refreshed row.
	Update(ownerID, id string, expectedVersion int64, changes map[string]any) (*models.Application, error)

	// Delete removes the application and cascades to its activities and
	// reminders, guarded by the expected version.
	Delete(ownerID, id string, expectedVersion int64) error
}

// ActivityRepository defines data access for activities.
type ActivityRepository interface {
	Create(activity *models.Activity) error

	// ListByApplication returns the application's activities ordered by
	// start time ascending with nulls last, then creation time descending.
	ListByApplication(ownerID, applicationID string) ([]models.Activity, error)

	FindByID(ownerID, id string) (*models.Activity, error)

	Update(ownerID, id string, expectedVersion int64, changes map[string]any) (*models.Activity, error)

	// Delete removes the activity, deletes reminders referencing only this
	// activity and detaches reminders that also reference an application.
	Delete(ownerID, id string, expectedVersion int64) error
}

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(reminder *models.Reminder) error

	// List returns the owner's reminders ordered by due time ascending.
	List(ownerID string, filter ReminderFilter) ([]models.Reminder, error)

	FindByID(ownerID, id string) (*models.Reminder, error)

	Update(ownerID, id string, expectedVersion int64, changes map[string]any) (*models.Reminder, error)

	Delete(ownerID, id string, expectedVersion int64) error

	// ListDue returns unsent reminders due at or before now across all
	// owners, oldest first, capped at limit (0 means uncapped), with the
	// owning user and its settings preloaded.
	ListDue(now time.Time, limit int) ([]models.Reminder, error)

	// SaveBatch flushes a scan batch of mutated reminders in a single
	// transaction.
	SaveBatch(reminders []*models.Reminder) error
}

// UserRepository defines data access for users and their settings.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)

	// UpdateTimezone sets the user's IANA timezone name.
	UpdateTimezone(userID, timezone string) error

	// FindSettings returns the user's settings, or nil when none exist.
	FindSettings(userID string) (*models.UserSettings, error)

	// UpsertSettings creates or replaces the user's settings row.
	UpsertSettings(settings *models.UserSettings) error
}
