package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Session / header names
const (
	SessionCookieName = "jobtrack_session"
	HeaderIfMatch     = "If-Match"
	HeaderETag        = "ETag"
)

// Pagination bounds for application listing
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)
