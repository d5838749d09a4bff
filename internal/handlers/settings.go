package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/dto"
	"github.com/karashiro/jobtrack-api/internal/middleware"
	"github.com/karashiro/jobtrack-api/internal/services"
)

// SettingsHandler coordinates user-settings HTTP handlers.
type SettingsHandler struct {
	settingsService *services.SettingsService
	authService     *services.AuthService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *services.SettingsService, authService *services.AuthService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		authService:     authService,
	}
}

// GetSettings returns the user's reminder preferences.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	settings, err := h.settingsService.Get(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsDTO(*settings, user.Timezone))
}

// PutSettings replaces the user's reminder preferences.
func (h *SettingsHandler) PutSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized(""))
		return
	}

	type PutSettingsRequest struct {
		QuietHoursStart  *string        `json:"quiet_hours_start"`
		QuietHoursEnd    *string        `json:"quiet_hours_end"`
		Timezone         *string        `json:"timezone"`
		ReminderDefaults map[string]any `json:"reminder_defaults"`
	}

	var req PutSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	settings, err := h.settingsService.Update(userID, services.UpdateSettingsInput{
		QuietHoursStart:  req.QuietHoursStart,
		QuietHoursEnd:    req.QuietHoursEnd,
		Timezone:         req.Timezone,
		ReminderDefaults: req.ReminderDefaults,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apperrors.Respond(c, apperrors.NotFound("", nil))
			return
		}
		apperrors.Respond(c, err)
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsDTO(*settings, user.Timezone))
}
