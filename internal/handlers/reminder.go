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

// ReminderHandler coordinates reminder HTTP handlers.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// ListReminders returns the user's reminders ordered by due time.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	var input services.ListRemindersInput
	if raw := c.Query("due_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidRequest("due_before must be an RFC 3339 timestamp."))
			return
		}
		input.DueBefore = &t
	}
	if raw := c.Query("due_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidRequest("due_after must be an RFC 3339 timestamp."))
			return
		}
		input.DueAfter = &t
	}
	if raw := c.Query("sent"); raw != "" {
		sent, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidRequest("sent must be a boolean."))
			return
		}
		input.Sent = &sent
	}

	reminders, err := h.reminderService.List(userID, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderListResponse(reminders))
}

// CreateReminder creates a new reminder.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	type CreateReminderRequest struct {
		ID            string         `json:"id"`
		ApplicationID *string        `json:"application_id"`
		ActivityID    *string        `json:"activity_id"`
		Title         string         `json:"title" binding:"required"`
		DueAt         time.Time      `json:"due_at" binding:"required"`
		Channels      []string       `json:"channels"`
		DedupeKey     *string        `json:"dedupe_key"`
		Meta          map[string]any `json:"meta"`
	}

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	reminder, err := h.reminderService.Create(userID, services.CreateReminderInput{
		ID:            req.ID,
		ApplicationID: req.ApplicationID,
		ActivityID:    req.ActivityID,
		Title:         req.Title,
		DueAt:         req.DueAt,
		Channels:      req.Channels,
		DedupeKey:     req.DedupeKey,
		Meta:          req.Meta,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(reminder.Version))
	c.JSON(http.StatusCreated, dto.ToReminderDTO(*reminder))
}

// GetReminder returns a single reminder.
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	reminder, err := h.reminderService.Get(userID, c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(reminder.Version))
	c.JSON(http.StatusOK, dto.ToReminderDTO(*reminder))
}

// PatchReminder applies a partial update guarded by If-Match.
func (h *ReminderHandler) PatchReminder(c *gin.Context) {
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

	reminder, err := h.reminderService.Update(userID, c.Param("id"), c.GetHeader(constants.HeaderIfMatch), raw)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header(constants.HeaderETag, utils.FormatETag(reminder.Version))
	c.JSON(http.StatusOK, dto.ToReminderDTO(*reminder))
}

// DeleteReminder removes a reminder, guarded by If-Match.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	if err := h.reminderService.Delete(userID, c.Param("id"), c.GetHeader(constants.HeaderIfMatch)); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
