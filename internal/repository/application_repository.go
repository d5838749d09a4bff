package repository

import (
	"strings"

	"github.com/karashiro/jobtrack-api/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create persists a new application with version 1
func (r *GormApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

// List retrieves the owner's applications in (created_at DESC, id DESC) order
func (r *GormApplicationRepository) List(ownerID string, filter ApplicationFilter) ([]models.Application, error) {
	query := r.db.Model(&models.Application{}).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC")

	if filter.CursorCreatedAt != nil {
		// Strict total order: rows before the cursor's timestamp, plus
		// same-timestamp rows with a smaller id.
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			*filter.CursorCreatedAt, *filter.CursorCreatedAt, filter.CursorID,
		)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Query)) + "%"
		query = query.Where(
			"LOWER(company) LIKE ? OR LOWER(role_title) LIKE ? OR LOWER(COALESCE(notes, '')) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		query = query.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Archived != nil {
		if *filter.Archived {
			query = query.Where("archived_at IS NOT NULL")
		} else {
			query = query.Where("archived_at IS NULL")
		}
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByID finds an application within the owner's scope
func (r *GormApplicationRepository) FindByID(ownerID, id string, preload ...string) (*models.Application, error) {
	var app models.Application
	query := r.db.Where("id = ? AND user_id = ?", id, ownerID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Update applies a version-guarded partial update
func (r *GormApplicationRepository) Update(ownerID, id string, expectedVersion int64, changes map[string]any) (*models.Application, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Application
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&current).Error; err != nil {
			return err
		}
		if err := checkVersion("applications", id, current.Version, expectedVersion); err != nil {
			return err
		}
		return applyVersioned(tx, &models.Application{}, "applications", ownerID, id, expectedVersion, changes)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ownerID, id)
}

// Delete removes the application and cascades to its activities and reminders
func (r *GormApplicationRepository) Delete(ownerID, id string, expectedVersion int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Application
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&current).Error; err != nil {
			return err
		}
		if err := checkVersion("applications", id, current.Version, expectedVersion); err != nil {
			return err
		}

		var activityIDs []string
		if err := tx.Model(&models.Activity{}).
			Where("application_id = ?", id).
			Pluck("id", &activityIDs).Error; err != nil {
			return err
		}

		if len(activityIDs) > 0 {
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.Reminder{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", ownerID).Delete(&models.Application{}, "id = ?", id).Error
	})
}
