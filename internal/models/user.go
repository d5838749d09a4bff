package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"type:uuid;primarykey" json:"id"`
	Email        string     `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	DisplayName  *string    `gorm:"type:varchar(255)" json:"display_name"`
	Timezone     string     `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	VerifiedAt   *time.Time `json:"verified_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Settings     *UserSettings `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"settings,omitempty"`
	Applications []Application `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Activities   []Activity    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reminders    []Reminder    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
