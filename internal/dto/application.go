package dto

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
)

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID               string               `json:"id"`
	Company          string               `json:"company"`
	RoleTitle        string               `json:"role_title"`
	Status           models.AppStatus     `json:"status"`
	Source           string               `json:"source"`
	ApplicationDate  *time.Time           `json:"application_date"`
	Priority         models.PriorityLevel `json:"priority"`
	LocationMode     models.LocationMode  `json:"location_mode"`
	LocationText     *string              `json:"location_text"`
	Timezone         *string              `json:"timezone"`
	JobURL           *string              `json:"job_url"`
	SalaryMin        *float64             `json:"salary_min"`
	SalaryMax        *float64             `json:"salary_max"`
	SalaryCurrency   *string              `json:"salary_currency"`
	JobRequisitionID *string              `json:"job_requisition_id"`
	SeniorityLevel   *string              `json:"seniority_level"`
	TechKeywords     []string             `json:"tech_keywords"`
	ResumeURL        *string              `json:"resume_url"`
	CoverLetterURL   *string              `json:"cover_letter_url"`
	CoverLetterUsed  *bool                `json:"cover_letter_used"`
	ContactsInline   map[string]any       `json:"contacts_inline"`
	NextAction       *string              `json:"next_action"`
	NextActionDue    *time.Time           `json:"next_action_due"`
	Notes            *string              `json:"notes"`
	Tags             []string             `json:"tags"`
	AttachmentsLinks []string             `json:"attachments_links"`
	ArchivedAt       *time.Time           `json:"archived_at"`
	Version          int64                `json:"version"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Activities       []ActivityDTO        `json:"activities,omitempty"`
	Reminders        []ReminderDTO        `json:"reminders,omitempty"`
}

// ApplicationListResponse represents one page of applications. NextCursor
// is null on the final page.
type ApplicationListResponse struct {
	Items      []ApplicationDTO `json:"items"`
	NextCursor *string          `json:"next_cursor"`
}

// ToApplicationDTO converts an Application model to ApplicationDTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:               app.ID,
		Company:          app.Company,
		RoleTitle:        app.RoleTitle,
		Status:           app.Status,
		Source:           app.Source,
		ApplicationDate:  app.ApplicationDate,
		Priority:         app.Priority,
		LocationMode:     app.LocationMode,
		LocationText:     app.LocationText,
		Timezone:         app.Timezone,
		JobURL:           app.JobURL,
		SalaryMin:        app.SalaryMin,
		SalaryMax:        app.SalaryMax,
		SalaryCurrency:   app.SalaryCurrency,
		JobRequisitionID: app.JobRequisitionID,
		SeniorityLevel:   app.SeniorityLevel,
		TechKeywords:     app.TechKeywords,
		ResumeURL:        app.ResumeURL,
		CoverLetterURL:   app.CoverLetterURL,
		CoverLetterUsed:  app.CoverLetterUsed,
		ContactsInline:   app.ContactsInline,
		NextAction:       app.NextAction,
		NextActionDue:    app.NextActionDue,
		Notes:            app.Notes,
		Tags:             app.Tags,
		AttachmentsLinks: app.AttachmentsLinks,
		ArchivedAt:       app.ArchivedAt,
		Version:          app.Version,
		CreatedAt:        app.CreatedAt,
		UpdatedAt:        app.UpdatedAt,
	}

	// Include children if preloaded
	if len(app.Activities) > 0 {
		dto.Activities = make([]ActivityDTO, len(app.Activities))
		for i, activity := range app.Activities {
			dto.Activities[i] = ToActivityDTO(activity)
		}
	}
	if len(app.Reminders) > 0 {
		dto.Reminders = make([]ReminderDTO, len(app.Reminders))
		for i, reminder := range app.Reminders {
			dto.Reminders[i] = ToReminderDTO(reminder)
		}
	}

	return dto
}

// ToApplicationListResponse converts one page of applications plus the
// encoded cursor of the last row (empty when no further pages exist).
func ToApplicationListResponse(apps []models.Application, nextCursor string) ApplicationListResponse {
	items := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		items[i] = ToApplicationDTO(app)
	}
	resp := ApplicationListResponse{Items: items}
	if nextCursor != "" {
		resp.NextCursor = &nextCursor
	}
	return resp
}
