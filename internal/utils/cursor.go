package utils

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
)

// cursorPayload is the wire shape of a pagination cursor: the sort key of
// the last row returned.
type cursorPayload struct {
	CreatedAt string `json:"created_at"`
	ID        string `json:"id"`
}

// EncodeCursor serializes a (created_at, id) sort key into an opaque
// URL-safe token with base64 padding stripped.
func EncodeCursor(createdAt time.Time, id string) string {
	payload := cursorPayload{
		CreatedAt: createdAt.UTC().Format(time.RFC3339Nano),
		ID:        id,
	}
	raw, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor. Any structural failure yields an
// invalid-request error, never a server error.
func DecodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(cursor, "="))
	if err != nil {
		return time.Time{}, "", apperrors.InvalidRequest("Invalid cursor value.")
	}

	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return time.Time{}, "", apperrors.InvalidRequest("Invalid cursor value.")
	}
	if payload.CreatedAt == "" || payload.ID == "" {
		return time.Time{}, "", apperrors.InvalidRequest("Invalid cursor value.")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, payload.CreatedAt)
	if err != nil {
		return time.Time{}, "", apperrors.InvalidRequest("Invalid cursor value.")
	}

	return createdAt, payload.ID, nil
}
