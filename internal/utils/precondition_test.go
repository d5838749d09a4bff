package utils

import (
	"errors"
	"testing"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestParseIfMatch_Forms(t *testing.T) {
	for header, want := range map[string]int64{
		`W/"3"`:   3,
		`"7"`:     7,
		"12":      12,
		` W/"1" `: 1,
	} {
		got, err := ParseIfMatch(header)
		assert.NoError(t, err, "header %q", header)
		assert.Equal(t, want, got, "header %q", header)
	}
}

func TestParseIfMatch_Missing(t *testing.T) {
	for _, header := range []string{"", "   "} {
		_, err := ParseIfMatch(header)
		assert.True(t, errors.Is(err, apperrors.ErrPreconditionRequired), "header %q", header)
	}
}

func TestParseIfMatch_Invalid(t *testing.T) {
	for _, header := range []string{`W/"abc"`, `"-2"`, `W/""`, "1.5"} {
		_, err := ParseIfMatch(header)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest), "header %q", header)
	}
}

func TestFormatETag(t *testing.T) {
	assert.Equal(t, `W/"1"`, FormatETag(1))
	assert.Equal(t, `W/"42"`, FormatETag(42))

	version, err := ParseIfMatch(FormatETag(9))
	assert.NoError(t, err)
	assert.Equal(t, int64(9), version)
}
