package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderChannel string

const (
	ChannelInApp    ReminderChannel = "in_app"
	ChannelEmail    ReminderChannel = "email"
	ChannelCalendar ReminderChannel = "calendar"
)

func (c ReminderChannel) Valid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelCalendar:
		return true
	}
	return false
}

// Reminder must reference an application or an activity (or both), never
// neither. The service layer rejects creates that violate this.
type Reminder struct {
	ID            string            `gorm:"type:uuid;primarykey" json:"id"`
	UserID        string            `gorm:"type:uuid;not null;index:ix_reminders_user_due,priority:1;uniqueIndex:uq_reminders_user_dedupe,priority:1" json:"user_id"`
	ApplicationID *string           `gorm:"type:uuid;index" json:"application_id"`
	ActivityID    *string           `gorm:"type:uuid;index" json:"activity_id"`
	Title         string            `gorm:"type:varchar(255);not null" json:"title"`
	DueAt         time.Time         `gorm:"not null;index:ix_reminders_user_due,priority:2" json:"due_at"`
	Channels      []ReminderChannel `gorm:"serializer:json" json:"channels"`
	Sent          bool              `gorm:"not null;default:false" json:"sent"`
	SentAt        *time.Time        `json:"sent_at"`
	DedupeKey     *string           `gorm:"type:varchar(255);uniqueIndex:uq_reminders_user_dedupe,priority:2" json:"dedupe_key"`
	Meta          map[string]any    `gorm:"serializer:json" json:"meta"`
	Version       int64             `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Application *Application `gorm:"foreignKey:ApplicationID" json:"-"`
	Activity    *Activity    `gorm:"foreignKey:ActivityID" json:"-"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	if len(r.Channels) == 0 {
		r.Channels = []ReminderChannel{ChannelInApp}
	}
	return nil
}
