package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityInterview ActivityType = "Interview"
	ActivityFollowUp  ActivityType = "FollowUp"
	ActivityCall      ActivityType = "Call"
	ActivityEmail     ActivityType = "Email"
	ActivityOther     ActivityType = "Other"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityInterview, ActivityFollowUp, ActivityCall, ActivityEmail, ActivityOther:
		return true
	}
	return false
}

type ActivityStatus string

const (
	ActivityScheduled ActivityStatus = "scheduled"
	ActivityDone      ActivityStatus = "done"
	ActivityCanceled  ActivityStatus = "canceled"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityScheduled, ActivityDone, ActivityCanceled:
		return true
	}
	return false
}

type InterviewStage string

const (
	StageScreening InterviewStage = "screening"
	StageTechnical InterviewStage = "technical"
	StageLoop      InterviewStage = "loop"
	StageOffer     InterviewStage = "offer"
	StageOther     InterviewStage = "other"
)

func (s InterviewStage) Valid() bool {
	switch s {
	case StageScreening, StageTechnical, StageLoop, StageOffer, StageOther:
		return true
	}
	return false
}

type InterviewMedium string

const (
	MediumOnsite     InterviewMedium = "onsite"
	MediumZoom       InterviewMedium = "zoom"
	MediumPhone      InterviewMedium = "phone"
	MediumGoogleMeet InterviewMedium = "google_meet"
	MediumTeams      InterviewMedium = "teams"
	MediumOther      InterviewMedium = "other"
)

func (m InterviewMedium) Valid() bool {
	switch m {
	case MediumOnsite, MediumZoom, MediumPhone, MediumGoogleMeet, MediumTeams, MediumOther:
		return true
	}
	return false
}

type FollowupChannel string

const (
	FollowupEmail    FollowupChannel = "email"
	FollowupLinkedIn FollowupChannel = "linkedin"
	FollowupPhone    FollowupChannel = "phone"
	FollowupOther    FollowupChannel = "other"
)

func (c FollowupChannel) Valid() bool {
	switch c {
	case FollowupEmail, FollowupLinkedIn, FollowupPhone, FollowupOther:
		return true
	}
	return false
}

type Activity struct {
	ID            string         `gorm:"type:uuid;primarykey" json:"id"`
	UserID        string         `gorm:"type:uuid;not null;index:ix_activities_user_starts_at,priority:1" json:"user_id"`
	ApplicationID string         `gorm:"type:uuid;not null;index" json:"application_id"`
	Type          ActivityType   `gorm:"type:varchar(20);not null" json:"type"`
	Status        ActivityStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	StartsAt      *time.Time     `gorm:"index:ix_activities_user_starts_at,priority:2" json:"starts_at"`
	DurationMins  *int           `json:"duration_minutes"`
	Timezone      *string        `gorm:"type:varchar(64)" json:"timezone"`
	Outcome       *string        `gorm:"type:varchar(255)" json:"outcome"`
	NextAction    *string        `gorm:"type:varchar(255)" json:"next_action"`
	NextActionDue *time.Time     `json:"next_action_due"`
	Notes         *string        `gorm:"type:text" json:"notes"`
	Contacts      map[string]any `gorm:"serializer:json" json:"related_contacts"`

	// Interview specific fields
	InterviewStage  *InterviewStage  `gorm:"type:varchar(20)" json:"interview_stage"`
	InterviewMedium *InterviewMedium `gorm:"type:varchar(20)" json:"interview_medium"`
	LocationOrLink  *string          `gorm:"type:varchar(512)" json:"location_or_link"`
	Agenda          *string          `gorm:"type:text" json:"agenda"`
	PrepChecklist   map[string]any   `gorm:"serializer:json" json:"prep_checklist"`

	// Follow-up specific fields
	FollowupChannel *FollowupChannel `gorm:"type:varchar(20)" json:"followup_channel"`
	TemplateUsed    *string          `gorm:"type:varchar(255)" json:"template_used"`
	ReplyDeadline   *time.Time       `json:"reply_deadline"`

	Version   int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
	Reminders   []Reminder  `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"reminders,omitempty"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
