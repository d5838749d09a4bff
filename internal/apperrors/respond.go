package apperrors

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/constants"
)

// Problem is the structured error body sent to clients.
type Problem struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail"`
	Instance string         `json:"instance"`
	Meta     map[string]any `json:"meta"`
}

// Respond renders err as a problem response. Errors that are not *Error are
// collapsed into the generic internal problem.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal()
	}

	meta := map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	for k, v := range appErr.Meta {
		meta[k] = v
	}

	c.JSON(appErr.Status, Problem{
		Type:     appErr.Type,
		Title:    appErr.Title,
		Status:   appErr.Status,
		Detail:   appErr.Detail,
		Instance: RequestID(c),
		Meta:     meta,
	})
}

// RequestID returns the request's correlation id, generating one on demand.
func RequestID(c *gin.Context) string {
	if id, exists := c.Get(constants.ContextKeyRequestID); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	id := newRequestID()
	c.Set(constants.ContextKeyRequestID, id)
	return id
}

func newRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "req_unknown"
	}
	return fmt.Sprintf("req_%s", hex.EncodeToString(bytes))
}
