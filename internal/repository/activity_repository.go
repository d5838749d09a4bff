package repository

import (
	"github.com/karashiro/jobtrack-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create persists a new activity with version 1
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ListByApplication returns activities ordered by start time ascending with
// nulls last, then creation time descending
func (r *GormActivityRepository) ListByApplication(ownerID, applicationID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Where("user_id = ? AND application_id = ?", ownerID, applicationID).
		Order("CASE WHEN starts_at IS NULL THEN 1 ELSE 0 END, starts_at ASC, created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// FindByID finds an activity within the owner's scope
func (r *GormActivityRepository) FindByID(ownerID, id string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// Update applies a version-guarded partial update
func (r *GormActivityRepository) Update(ownerID, id string, expectedVersion int64, changes map[string]any) (*models.Activity, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Activity
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&current).Error; err != nil {
			return err
		}
		if err := checkVersion("activities", id, current.Version, expectedVersion); err != nil {
			return err
		}
		return applyVersioned(tx, &models.Activity{}, "activities", ownerID, id, expectedVersion, changes)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ownerID, id)
}

// Delete removes the activity. Reminders referencing only this activity are
// deleted with it; reminders that also reference an application are detached
// instead.
func (r *GormActivityRepository) Delete(ownerID, id string, expectedVersion int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Activity
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&current).Error; err != nil {
			return err
		}
		if err := checkVersion("activities", id, current.Version, expectedVersion); err != nil {
			return err
		}

		if err := tx.Where("activity_id = ? AND application_id IS NULL", id).
			Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Reminder{}).
			Where("activity_id = ? AND application_id IS NOT NULL", id).
			Update("activity_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", ownerID).Delete(&models.Activity{}, "id = ?", id).Error
	})
}
