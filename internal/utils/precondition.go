package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
)

// ParseIfMatch extracts the expected entity version from an If-Match header.
// The header carries a weak validator of the form W/"<version>"; a bare
// quoted or unquoted integer is accepted too. Every mutating operation
// requires the header, so an empty value is a distinct precondition-required
// failure rather than a plain invalid request.
func ParseIfMatch(header string) (int64, error) {
	if strings.TrimSpace(header) == "" {
		return 0, apperrors.PreconditionRequired("")
	}

	candidate := strings.TrimSpace(header)
	if strings.HasPrefix(candidate, "W/") {
		candidate = strings.TrimSpace(candidate[2:])
	}
	candidate = strings.Trim(candidate, `"`)

	parsed, err := strconv.ParseInt(candidate, 10, 64)
	if err != nil {
		return 0, apperrors.InvalidRequest("If-Match header is invalid.")
	}
	if parsed < 0 {
		return 0, apperrors.InvalidRequest("If-Match header must be a non-negative integer.")
	}
	return parsed, nil
}

// FormatETag renders an entity version as the weak validator clients echo
// back in If-Match.
func FormatETag(version int64) string {
	return fmt.Sprintf(`W/"%d"`, version)
}
