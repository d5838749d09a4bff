package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/dto"
	"github.com/karashiro/jobtrack-api/internal/middleware"
	"github.com/karashiro/jobtrack-api/internal/services"
	"github.com/karashiro/jobtrack-api/internal/utils"
)

// ActivityHandler coordinates activity HTTP handlers.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivities returns the application's activities.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	activities, err := h.activityService.ListByApplication(userID, c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(activities))
}

// CreateActivity creates a new activity under an application.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	type CreateActivityRequest struct {
		ID            string         `json:"id"`
		Type          string         `json:"type" binding:"required"`
		Status        string         `json:"status"`
		StartsAt      *time.Time     `json:"starts_at"`
		DurationMins  *int           `json:"duration_minutes"`
		Timezone      *string        `json:"timezone"`
		Outcome       *string        `json:"outcome"`
		NextAction    *string        `json:"next_action"`
		NextActionDue *time.Time     `json:"next_action_due"`
		Notes         *string        `json:"notes"`
		Contacts      map[string]any `json:"related_contacts"`

		InterviewStage  *string        `json:"interview_stage"`
		InterviewMedium *string        `json:"interview_medium"`
		LocationOrLink  *string        `json:"location_or_link"`
		Agenda          *string        `json:"agenda"`
		PrepChecklist   map[string]any `json:"prep_checklist"`

		FollowupChannel *string    `json:"followup_channel"`
		TemplateUsed    *string    `json:"template_used"`
		ReplyDeadline   *time.Time `json:"reply_deadline"`
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	activity, err := h.activityService.Create(userID, c.Param("id"), services.CreateActivityInput{
		ID:              req.ID,
		Type:            req.Type,
		Status:          req.Status,
		StartsAt:        req.StartsAt,
		DurationMins:    req.DurationMins,
		Timezone:        req.Timezone,
		Outcome:         req.Outcome,
		NextAction:      req.NextAction,
		NextActionDue:   req.NextActionDue,
		Notes:           req.Notes,
		Contacts:        req.Contacts,
		InterviewStage:  req.InterviewStage,
		InterviewMedium: req.InterviewMedium,
		LocationOrLink:  req.LocationOrLink,
		Agenda:          req.Agenda,
		PrepChecklist:   req.PrepChecklist,
		FollowupChannel: req.FollowupChannel,
		TemplateUsed:    req.TemplateUsed,
		ReplyDeadline:   req.ReplyDeadline,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(activity.Version))
	c.JSON(http.StatusCreated, dto.ToActivityDTO(*activity))
}

// GetActivity returns a single activity.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	activity, err := h.activityService.Get(userID, c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(activity.Version))
	c.JSON(http.StatusOK, dto.ToActivityDTO(*activity))
}

// PatchActivity applies a partial update guarded by If-Match.
func (h *ActivityHandler) PatchActivity(c *gin.Context) {
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

	activity, err := h.activityService.Update(userID, c.Param("id"), c.GetHeader(constants.HeaderIfMatch), raw)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(activity.Version))
	c.JSON(http.StatusOK, dto.ToActivityDTO(*activity))
}

// DeleteActivity removes an activity, guarded by If-Match.
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	if err := h.activityService.Delete(userID, c.Param("id"), c.GetHeader(constants.HeaderIfMatch)); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
