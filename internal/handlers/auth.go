package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/dto"
	"github.com/karashiro/jobtrack-api/internal/middleware"
	"github.com/karashiro/jobtrack-api/internal/services"
	"github.com/karashiro/jobtrack-api/internal/token"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	jwt         *token.JWT
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, jwt *token.JWT) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwt:         jwt,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"display_name"`
		Timezone    string `json:"timezone"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user, initializes the session and issues an access
// token for clients that prefer bearer auth.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidRequest("Invalid request body."))
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apperrors.Respond(c, apperrors.Internal())
		return
	}

	accessToken, err := h.jwt.CreateToken(user.ID)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         dto.ToUserDTO(*user),
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apperrors.Respond(c, apperrors.Internal())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apperrors.Respond(c, apperrors.InvalidRequest(
			fmt.Sprintf("Password must be at least %d characters.", constants.MinPasswordLength)))
	case errors.Is(err, services.ErrInvalidEmail):
		apperrors.Respond(c, apperrors.InvalidRequest("email must be a valid email address."))
	case errors.Is(err, services.ErrEmailTaken):
		apperrors.Respond(c, apperrors.InvalidRequest("Email is already registered."))
	case errors.Is(err, services.ErrInvalidCredentials):
		apperrors.Respond(c, apperrors.Unauthorized("Invalid email or password."))
	case errors.Is(err, services.ErrUserNotFound):
		apperrors.Respond(c, apperrors.NotFound("", nil))
	default:
		apperrors.Respond(c, apperrors.Internal())
	}
}
