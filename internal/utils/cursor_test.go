package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	id := "0b6fda12-4c1e-4b3e-9a1f-6f2d8a6e9b01"

	cursor := EncodeCursor(createdAt, id)
	assert.NotEmpty(t, cursor)
	assert.NotContains(t, cursor, "=")

	gotCreatedAt, gotID, err := DecodeCursor(cursor)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(gotCreatedAt))
	assert.Equal(t, id, gotID)
}

func TestEncodeCursor_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	createdAt := time.Date(2026, 3, 14, 18, 0, 0, 0, loc)

	cursor := EncodeCursor(createdAt, "abc")
	gotCreatedAt, _, err := DecodeCursor(cursor)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(gotCreatedAt))
	assert.Equal(t, time.UTC, gotCreatedAt.Location())
}

func TestDecodeCursor_AcceptsPaddedToken(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cursor := EncodeCursor(createdAt, "xyz") + "=="

	gotCreatedAt, gotID, err := DecodeCursor(cursor)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(gotCreatedAt))
	assert.Equal(t, "xyz", gotID)
}

func TestDecodeCursor_Garbage(t *testing.T) {
	for _, cursor := range []string{
		"not base64 !!!",
		"bm90IGpzb24",          // valid base64, not JSON
		"e30",                  // "{}": missing fields
		"eyJjcmVhdGVkX2F0IjoiYmFkIiwiaWQiOiJ4In0", // unparseable timestamp
	} {
		_, _, err := DecodeCursor(cursor)
		assert.Error(t, err, "cursor %q", cursor)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest), "cursor %q", cursor)
	}
}
