package apperrors

import (
	"fmt"
	"net/http"
)

// ErrorNamespace is the base URI of the problem "type" field.
const ErrorNamespace = "https://errors.jobtrack.app"

const DefaultDetail = "Something went wrong. We're looking into it."

func problemType(slug string) string {
	return fmt.Sprintf("%s/%s", ErrorNamespace, slug)
}

// Error is a typed application error carrying everything needed to render a
// structured problem response.
type Error struct {
	Type   string
	Title  string
	Status int
	Detail string
	Meta   map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Detail
}

// Is matches two application errors by problem type, so sentinel prototypes
// below work with errors.Is regardless of detail text or meta.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

// Sentinel prototypes for errors.Is comparisons.
var (
	ErrNotFound             = &Error{Type: problemType("not-found")}
	ErrInvalidRequest       = &Error{Type: problemType("invalid-request")}
	ErrPreconditionRequired = &Error{Type: problemType("precondition-required")}
	ErrVersionConflict      = &Error{Type: problemType("conflict")}
	ErrUnauthorized         = &Error{Type: problemType("unauthorized")}
	ErrForbidden            = &Error{Type: problemType("forbidden")}
	ErrInternal             = &Error{Type: problemType("internal-error")}
)

// NotFound reports a missing resource. Owner mismatches use this too, so
// existence never leaks across owners.
func NotFound(detail string, meta map[string]any) *Error {
	if detail == "" {
		detail = "Requested resource was not found."
	}
	return &Error{
		Type:   problemType("not-found"),
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
		Detail: detail,
		Meta:   meta,
	}
}

// InvalidRequest covers malformed payloads, bad cursors, bad preconditions
// and persistence constraint violations.
func InvalidRequest(detail string) *Error {
	if detail == "" {
		detail = "Invalid request."
	}
	return &Error{
		Type:   problemType("invalid-request"),
		Title:  "Invalid Request",
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}

// PreconditionRequired reports a missing If-Match header on a mutating request.
func PreconditionRequired(detail string) *Error {
	if detail == "" {
		detail = "If-Match header is required."
	}
	return &Error{
		Type:   problemType("precondition-required"),
		Title:  "Precondition Required",
		Status: http.StatusPreconditionRequired,
		Detail: detail,
	}
}

// VersionConflict reports a stale If-Match token. The entity's current
// version rides along in meta so the caller can retry.
func VersionConflict(resource, id string, currentVersion int64) *Error {
	return &Error{
		Type:   problemType("conflict"),
		Title:  "Version Conflict",
		Status: http.StatusConflict,
		Detail: "Row version does not match If-Match header.",
		Meta: map[string]any{
			"resource":        resource,
			"id":              id,
			"current_version": currentVersion,
		},
	}
}

func Unauthorized(detail string) *Error {
	if detail == "" {
		detail = "Authentication required."
	}
	return &Error{
		Type:   problemType("unauthorized"),
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
	}
}

func Forbidden(detail string) *Error {
	if detail == "" {
		detail = "Forbidden."
	}
	return &Error{
		Type:   problemType("forbidden"),
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
	}
}

// Internal is the deliberately generic catch-all. Internals never reach the
// caller.
func Internal() *Error {
	return &Error{
		Type:   problemType("internal-error"),
		Title:  "Unexpected Error",
		Status: http.StatusInternalServerError,
		Detail: DefaultDetail,
	}
}
