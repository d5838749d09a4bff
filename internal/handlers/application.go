package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/dto"
	"github.com/karashiro/jobtrack-api/internal/middleware"
	"github.com/karashiro/jobtrack-api/internal/services"
	"github.com/karashiro/jobtrack-api/internal/utils"
)

// ApplicationHandler coordinates application HTTP handlers.
type ApplicationHandler struct {
	appService    *services.ApplicationService
	assistService *services.AssistService
}

// NewApplicationHandler creates a new ApplicationHandler. assistService may
// be nil when no OpenAI key is configured.
func NewApplicationHandler(appService *services.ApplicationService, assistService *services.AssistService) *ApplicationHandler {
	return &ApplicationHandler{
		appService:    appService,
		assistService: assistService,
	}
}

// ListApplications returns one cursor page of the user's applications.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	input := services.ListApplicationsInput{
		Limit:    constants.DefaultPageSize,
		Cursor:   c.Query("cursor"),
		Status:   c.Query("status"),
		Query:    c.Query("q"),
		Tag:      c.Query("tag"),
		Priority: c.Query("priority"),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidRequest("limit must be an integer."))
			return
		}
		input.Limit = limit
	}
	if raw := c.Query("archived"); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidRequest("archived must be a boolean."))
			return
		}
		input.Archived = &archived
	}

	page, err := h.appService.List(userID, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	nextCursor := ""
	if page.NextCursor != nil {
		nextCursor = *page.NextCursor
	}
	c.JSON(http.StatusOK, dto.ToApplicationListResponse(page.Items, nextCursor))
}

// CreateApplication creates a new application.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	type CreateApplicationRequest struct {
		ID               string         `json:"id"`
		Company          string         `json:"company" binding:"required"`
		RoleTitle        string         `json:"role_title" binding:"required"`
		Status           string         `json:"status"`
		Source           string         `json:"source"`
		ApplicationDate  *time.Time     `json:"application_date"`
		Priority         string         `json:"priority"`
		LocationMode     string         `json:"location_mode"`
		LocationText     *string        `json:"location_text"`
		Timezone         *string        `json:"timezone"`
		JobURL           *string        `json:"job_url"`
		SalaryMin        *float64       `json:"salary_min"`
		SalaryMax        *float64       `json:"salary_max"`
		SalaryCurrency   *string        `json:"salary_currency"`
		JobRequisitionID *string        `json:"job_requisition_id"`
		SeniorityLevel   *string        `json:"seniority_level"`
		TechKeywords     []string       `json:"tech_keywords"`
		ResumeURL        *string        `json:"resume_url"`
		CoverLetterURL   *string        `json:"cover_letter_url"`
		CoverLetterUsed  *bool          `json:"cover_letter_used"`
		ContactsInline   map[string]any `json:"contacts_inline"`
		NextAction       *string        `json:"next_action"`
		NextActionDue    *time.Time     `json:"next_action_due"`
		Notes            *string        `json:"notes"`
		Tags             []string       `json:"tags"`
		AttachmentsLinks []string       `json:"attachments_links"`
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	app, err := h.appService.Create(userID, services.CreateApplicationInput{
		ID:               req.ID,
		Company:          req.Company,
		RoleTitle:        req.RoleTitle,
		Status:           req.Status,
		Source:           req.Source,
		ApplicationDate:  req.ApplicationDate,
		Priority:         req.Priority,
		LocationMode:     req.LocationMode,
		LocationText:     req.LocationText,
		Timezone:         req.Timezone,
		JobURL:           req.JobURL,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryCurrency:   req.SalaryCurrency,
		JobRequisitionID: req.JobRequisitionID,
		SeniorityLevel:   req.SeniorityLevel,
		TechKeywords:     req.TechKeywords,
		ResumeURL:        req.ResumeURL,
		CoverLetterURL:   req.CoverLetterURL,
		CoverLetterUsed:  req.CoverLetterUsed,
		ContactsInline:   req.ContactsInline,
		NextAction:       req.NextAction,
		NextActionDue:    req.NextActionDue,
		Notes:            req.Notes,
		Tags:             req.Tags,
		AttachmentsLinks: req.AttachmentsLinks,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(app.Version))
	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// GetApplication returns a single application with its activities and
// reminders.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	app, err := h.appService.Get(userID, c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(app.Version))
	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// PatchApplication applies a partial update guarded by If-Match.
func (h *ApplicationHandler) PatchApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	app, err := h.appService.Update(userID, c.Param("id"), c.GetHeader(constants.HeaderIfMatch), raw)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(app.Version))
	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// DeleteApplication removes an application and its dependents, guarded by
// If-Match.
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	if err := h.appService.Delete(userID, c.Param("id"), c.GetHeader(constants.HeaderIfMatch)); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ParseJobPosting extracts an application draft from pasted posting text.
func (h *ApplicationHandler) ParseJobPosting(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	if h.assistService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Job posting parsing is not configured",
		})
		return
	}

	type ParseRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	draft, err := h.assistService.ParseJobPosting(c.Request.Context(), req.Text)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal())
		return
	}

	c.JSON(http.StatusOK, draft)
}
