package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppStatus string

const (
	StatusDraft         AppStatus = "Draft"
	StatusApplied       AppStatus = "Applied"
	StatusScreening     AppStatus = "Screening"
	StatusRecruiterCall AppStatus = "Recruiter_Call"
	StatusTechScreen    AppStatus = "Tech_Screen"
	StatusInterviewLoop AppStatus = "Interview_Loop"
	StatusOffer         AppStatus = "Offer"
	StatusAccepted      AppStatus = "Accepted"
	StatusDeclined      AppStatus = "Declined"
	StatusRejected      AppStatus = "Rejected"
	StatusOnHold        AppStatus = "On_Hold"
)

// Valid reports whether s is one of the known workflow states.
func (s AppStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusApplied, StatusScreening, StatusRecruiterCall,
		StatusTechScreen, StatusInterviewLoop, StatusOffer, StatusAccepted,
		StatusDeclined, StatusRejected, StatusOnHold:
		return true
	}
	return false
}

type PriorityLevel string

const (
	PriorityNone   PriorityLevel = "None"
	PriorityLow    PriorityLevel = "Low"
	PriorityMedium PriorityLevel = "Medium"
	PriorityHigh   PriorityLevel = "High"
)

func (p PriorityLevel) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type LocationMode string

const (
	LocationRemote LocationMode = "remote"
	LocationOnsite LocationMode = "onsite"
	LocationHybrid LocationMode = "hybrid"
)

func (m LocationMode) Valid() bool {
	switch m {
	case LocationRemote, LocationOnsite, LocationHybrid:
		return true
	}
	return false
}

type Application struct {
	ID               string         `gorm:"type:uuid;primarykey" json:"id"`
	UserID           string         `gorm:"type:uuid;not null;index:ix_applications_user_created,priority:1" json:"user_id"`
	Company          string         `gorm:"type:varchar(255);not null" json:"company"`
	RoleTitle        string         `gorm:"type:varchar(255);not null" json:"role_title"`
	Status           AppStatus      `gorm:"type:varchar(20);not null;default:'Applied';index:ix_applications_user_status" json:"status"`
	Source           string         `gorm:"type:varchar(128);not null;default:'Other'" json:"source"`
	ApplicationDate  *time.Time     `json:"application_date"`
	Priority         PriorityLevel  `gorm:"type:varchar(10);not null;default:'None'" json:"priority"`
	LocationMode     LocationMode   `gorm:"type:varchar(10);not null;default:'remote'" json:"location_mode"`
	LocationText     *string        `gorm:"type:varchar(255)" json:"location_text"`
	Timezone         *string        `gorm:"type:varchar(64)" json:"timezone"`
	JobURL           *string        `gorm:"type:varchar(1024)" json:"job_url"`
	SalaryMin        *float64       `json:"salary_min"`
	SalaryMax        *float64       `json:"salary_max"`
	SalaryCurrency   *string        `gorm:"type:varchar(8)" json:"salary_currency"`
	JobRequisitionID *string        `gorm:"type:varchar(128)" json:"job_requisition_id"`
	SeniorityLevel   *string        `gorm:"type:varchar(128)" json:"seniority_level"`
	TechKeywords     []string       `gorm:"serializer:json" json:"tech_keywords"`
	ResumeURL        *string        `gorm:"type:varchar(1024)" json:"resume_url"`
	CoverLetterURL   *string        `gorm:"type:varchar(1024)" json:"cover_letter_url"`
	CoverLetterUsed  *bool          `json:"cover_letter_used"`
	ContactsInline   map[string]any `gorm:"serializer:json" json:"contacts_inline"`
	NextAction       *string        `gorm:"type:varchar(255)" json:"next_action"`
	NextActionDue    *time.Time     `gorm:"index:ix_applications_user_next_action_due" json:"next_action_due"`
	Notes            *string        `gorm:"type:text" json:"notes"`
	Tags             []string       `gorm:"serializer:json" json:"tags"`
	AttachmentsLinks []string       `gorm:"serializer:json" json:"attachments_links"`
	ArchivedAt       *time.Time     `gorm:"index:ix_applications_user_archived" json:"archived_at"`
	Version          int64          `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time      `gorm:"index:ix_applications_user_created,priority:2" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Relations
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Activities []Activity `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
	Reminders  []Reminder `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"reminders,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
