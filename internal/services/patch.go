package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
)

// Helpers for turning raw PATCH JSON into column change sets. A key present
// with a null value clears the column; a key that is absent never reaches
// these helpers. Values returned are ready for a gorm map update, which
// bypasses field serializers, so list/object fields are pre-marshalled.

func nullableString(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be a string.", key))
	}
	return s, nil
}

func requiredString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return "", apperrors.InvalidRequest(fmt.Sprintf("%s must be a non-empty string.", key))
	}
	return s, nil
}

func nullableTime(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be a timestamp string.", key))
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s is not a valid timestamp.", key))
	}
	return t, nil
}

// parseTimestamp accepts RFC 3339 timestamps and bare dates.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func nullableFloat(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	f, ok := value.(float64)
	if !ok {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be a number.", key))
	}
	return f, nil
}

func nullableInt(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	f, ok := value.(float64)
	if !ok || f != float64(int(f)) {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be an integer.", key))
	}
	return int(f), nil
}

func nullableBool(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be a boolean.", key))
	}
	return b, nil
}

// nullableStringList marshals a JSON string array for a serializer-backed
// column. Explicit null clears it.
func nullableStringList(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be a list of strings.", key))
	}
	strs := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be a list of strings.", key))
		}
		strs = append(strs, s)
	}
	raw, err := json.Marshal(strs)
	if err != nil {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s could not be encoded.", key))
	}
	return string(raw), nil
}

// nullableObject marshals a JSON object for a serializer-backed column.
func nullableObject(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s must be an object.", key))
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, apperrors.InvalidRequest(fmt.Sprintf("%s could not be encoded.", key))
	}
	return string(raw), nil
}
