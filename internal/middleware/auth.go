package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/token"
)

// RequireAuth authenticates the request via a bearer token or, failing
// that, the session cookie. The resolved user id lands in the gin context.
func RequireAuth(jwt *token.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := bearerUserID(c, jwt); userID != "" {
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
			return
		}

		session := sessions.Default(c)
		if userID, ok := session.Get(constants.ContextKeyUserID).(string); ok && userID != "" {
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
			return
		}

		apperrors.Respond(c, apperrors.Unauthorized(""))
		c.Abort()
	}
}

func bearerUserID(c *gin.Context, jwt *token.JWT) string {
	if jwt == nil {
		return ""
	}
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return ""
	}
	userID, err := jwt.ParseToken(raw)
	if err != nil {
		return ""
	}
	return userID
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	s, ok := userID.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
