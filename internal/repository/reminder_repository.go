package repository

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create persists a new reminder with version 1
func (r *GormReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

// List returns the owner's reminders ordered by due time ascending
func (r *GormReminderRepository) List(ownerID string, filter ReminderFilter) ([]models.Reminder, error) {
	query := r.db.Where("user_id = ?", ownerID).Order("due_at ASC")

	if filter.DueBefore != nil {
		query = query.Where("due_at <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_at >= ?", *filter.DueAfter)
	}
	if filter.Sent != nil {
		query = query.Where("sent = ?", *filter.Sent)
	}

	var reminders []models.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// FindByID finds a reminder within the owner's scope
func (r *GormReminderRepository) FindByID(ownerID, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// Update applies a version-guarded partial update
func (r *GormReminderRepository) Update(ownerID, id string, expectedVersion int64, changes map[string]any) (*models.Reminder, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Reminder
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&current).Error; err != nil {
			return err
		}
		if err := checkVersion("reminders", id, current.Version, expectedVersion); err != nil {
			return err
		}
		return applyVersioned(tx, &models.Reminder{}, "reminders", ownerID, id, expectedVersion, changes)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ownerID, id)
}

// Delete removes the reminder, guarded by the expected version
func (r *GormReminderRepository) Delete(ownerID, id string, expectedVersion int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Reminder
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&current).Error; err != nil {
			return err
		}
		if err := checkVersion("reminders", id, current.Version, expectedVersion); err != nil {
			return err
		}

		return tx.Where("user_id = ?", ownerID).Delete(&models.Reminder{}, "id = ?", id).Error
	})
}

// ListDue returns unsent reminders due at or before now, oldest first, with
// owners and their settings preloaded for quiet-hours resolution
func (r *GormReminderRepository) ListDue(now time.Time, limit int) ([]models.Reminder, error) {
	query := r.db.
		Where("due_at <= ? AND sent = ?", now, false).
		Order("due_at ASC").
		Preload("User").
		Preload("User.Settings")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var reminders []models.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// SaveBatch flushes a scan batch in a single transaction. Associations are
// never written back.
func (r *GormReminderRepository) SaveBatch(reminders []*models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, reminder := range reminders {
			if err := tx.Omit(clause.Associations).Save(reminder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
