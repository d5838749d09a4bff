package services

import (
	"fmt"
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"github.com/karashiro/jobtrack-api/internal/utils"
)

// ApplicationService handles application business logic.
type ApplicationService struct {
	appRepo repository.ApplicationRepository
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo}
}

// ListApplicationsInput represents filters for listing applications.
type ListApplicationsInput struct {
	Limit    int
	Cursor   string
	Status   string
	Query    string
	Tag      string
	Priority string
	Archived *bool
}

// ApplicationPage is one page of the owner's applications plus the cursor
// for the next page, nil when the listing is exhausted.
type ApplicationPage struct {
	Items      []models.Application
	NextCursor *string
}

// List returns applications in (created_at DESC, id DESC) order, resuming
// after the supplied cursor.
func (s *ApplicationService) List(ownerID string, input ListApplicationsInput) (*ApplicationPage, error) {
	limit := input.Limit
	if limit <= 0 {
		return nil, apperrors.InvalidRequest("limit must be greater than zero.")
	}
	if limit > constants.MaxPageSize {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("limit cannot exceed %d.", constants.MaxPageSize))
	}

	filter := repository.ApplicationFilter{
		// One extra row signals whether another page exists.
		Limit: limit + 1,
		Query: input.Query,
		Tag:   input.Tag,
	}

	if input.Cursor != "" {
		createdAt, id, err := utils.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, err
		}
		filter.CursorCreatedAt = &createdAt
		filter.CursorID = id
	}
	if input.Status != "" {
		status := models.AppStatus(input.Status)
		if !status.Valid() {
			return nil, apperrors.InvalidRequest("status is not a valid application status.")
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := models.PriorityLevel(input.Priority)
		if !priority.Valid() {
			return nil, apperrors.InvalidRequest("priority is not a valid priority level.")
		}
		filter.Priority = &priority
	}
	filter.Archived = input.Archived

	rows, err := s.appRepo.List(ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	page := &ApplicationPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		cursor := utils.EncodeCursor(last.CreatedAt, last.ID)
		page.NextCursor = &cursor
	}
	return page, nil
}

// CreateApplicationInput represents input for creating an application.
// A caller-supplied ID is honored; otherwise one is generated.
type CreateApplicationInput struct {
	ID               string
	Company          string
	RoleTitle        string
	Status           string
	Source           string
	ApplicationDate  *time.Time
	Priority         string
	LocationMode     string
	LocationText     *string
	Timezone         *string
	JobURL           *string
	SalaryMin        *float64
	SalaryMax        *float64
	SalaryCurrency   *string
	JobRequisitionID *string
	SeniorityLevel   *string
	TechKeywords     []string
	ResumeURL        *string
	CoverLetterURL   *string
	CoverLetterUsed  *bool
	ContactsInline   map[string]any
	NextAction       *string
	NextActionDue    *time.Time
	Notes            *string
	Tags             []string
	AttachmentsLinks []string
}

// Create validates the payload and persists a new application at version 1.
func (s *ApplicationService) Create(ownerID string, input CreateApplicationInput) (*models.Application, error) {
	if input.Company == "" {
		return nil, apperrors.InvalidRequest("company must be a non-empty string.")
	}
	if input.RoleTitle == "" {
		return nil, apperrors.InvalidRequest("role_title must be a non-empty string.")
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, apperrors.InvalidRequest("salary_min cannot exceed salary_max.")
	}

	app := &models.Application{
		ID:               input.ID,
		UserID:           ownerID,
		Company:          input.Company,
		RoleTitle:        input.RoleTitle,
		Status:           models.StatusApplied,
		Source:           "Other",
		ApplicationDate:  input.ApplicationDate,
		Priority:         models.PriorityNone,
		LocationMode:     models.LocationRemote,
		LocationText:     input.LocationText,
		Timezone:         input.Timezone,
		JobURL:           input.JobURL,
		SalaryMin:        input.SalaryMin,
		SalaryMax:        input.SalaryMax,
		SalaryCurrency:   input.SalaryCurrency,
		JobRequisitionID: input.JobRequisitionID,
		SeniorityLevel:   input.SeniorityLevel,
		TechKeywords:     input.TechKeywords,
		ResumeURL:        input.ResumeURL,
		CoverLetterURL:   input.CoverLetterURL,
		CoverLetterUsed:  input.CoverLetterUsed,
		ContactsInline:   input.ContactsInline,
		NextAction:       input.NextAction,
		NextActionDue:    input.NextActionDue,
		Notes:            input.Notes,
		Tags:             input.Tags,
		AttachmentsLinks: input.AttachmentsLinks,
	}

	if input.Status != "" {
		status := models.AppStatus(input.Status)
		if !status.Valid() {
			return nil, apperrors.InvalidRequest("status is not a valid application status.")
		}
		app.Status = status
	}
	if input.Priority != "" {
		priority := models.PriorityLevel(input.Priority)
		if !priority.Valid() {
			return nil, apperrors.InvalidRequest("priority is not a valid priority level.")
		}
		app.Priority = priority
	}
	if input.LocationMode != "" {
		mode := models.LocationMode(input.LocationMode)
		if !mode.Valid() {
			return nil, apperrors.InvalidRequest("location_mode is not a valid location mode.")
		}
		app.LocationMode = mode
	}
	if input.Source != "" {
		app.Source = input.Source
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, translateCreateError("application", err)
	}
	return app, nil
}

// Get returns the owner's application or a not-found problem.
func (s *ApplicationService) Get(ownerID, id string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(ownerID, id, "Activities", "Reminders")
	if err != nil {
		return nil, translateLookupError("Application", "applications", id, err)
	}
	return app, nil
}

// Update applies a partial update guarded by the If-Match precondition.
func (s *ApplicationService) Update(ownerID, id, ifMatch string, raw map[string]any) (*models.Application, error) {
	expected, err := utils.ParseIfMatch(ifMatch)
	if err != nil {
		return nil, err
	}

	changes, err := applicationChanges(raw)
	if err != nil {
		return nil, err
	}

	app, err := s.appRepo.Update(ownerID, id, expected, changes)
	if err != nil {
		return nil, translateLookupError("Application", "applications", id, err)
	}
	return app, nil
}

// Delete removes the application and everything hanging off it, guarded by
// the If-Match precondition.
func (s *ApplicationService) Delete(ownerID, id, ifMatch string) error {
	expected, err := utils.ParseIfMatch(ifMatch)
	if err != nil {
		return err
	}

	if err := s.appRepo.Delete(ownerID, id, expected); err != nil {
		return translateLookupError("Application", "applications", id, err)
	}
	return nil
}

// applicationChanges builds the column change set for a PATCH body. Only
// keys present in raw are touched; explicit nulls clear nullable columns.
// Unknown keys are ignored.
func applicationChanges(raw map[string]any) (map[string]any, error) {
	changes := make(map[string]any)
	for key, value := range raw {
		switch key {
		case "company", "role_title":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = s
		case "status":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			if !models.AppStatus(s).Valid() {
				return nil, apperrors.InvalidRequest("status is not a valid application status.")
			}
			changes[key] = s
		case "priority":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			if !models.PriorityLevel(s).Valid() {
				return nil, apperrors.InvalidRequest("priority is not a valid priority level.")
			}
			changes[key] = s
		case "location_mode":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			if !models.LocationMode(s).Valid() {
				return nil, apperrors.InvalidRequest("location_mode is not a valid location mode.")
			}
			changes[key] = s
		case "source":
			s, err := requiredString(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = s
		case "location_text", "timezone", "job_url", "salary_currency",
			"job_requisition_id", "seniority_level", "resume_url",
			"cover_letter_url", "next_action", "notes":
			v, err := nullableString(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "application_date", "next_action_due", "archived_at":
			v, err := nullableTime(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "salary_min", "salary_max":
			v, err := nullableFloat(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "cover_letter_used":
			v, err := nullableBool(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "tech_keywords", "tags", "attachments_links":
			v, err := nullableStringList(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		case "contacts_inline":
			v, err := nullableObject(key, value)
			if err != nil {
				return nil, err
			}
			changes[key] = v
		}
	}

	if min, ok := changes["salary_min"].(float64); ok {
		if max, ok := changes["salary_max"].(float64); ok && min > max {
			return nil, apperrors.InvalidRequest("salary_min cannot exceed salary_max.")
		}
	}
	return changes, nil
}
