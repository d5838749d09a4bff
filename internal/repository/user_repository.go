package repository

import (
	"errors"

	"github.com/karashiro/jobtrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateTimezone sets the user's IANA timezone name
func (r *GormUserRepository) UpdateTimezone(userID, timezone string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("timezone", timezone).Error
}

// FindSettings returns the user's settings, or nil when none exist
func (r *GormUserRepository) FindSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings creates or replaces the user's settings row
func (r *GormUserRepository) UpsertSettings(settings *models.UserSettings) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
