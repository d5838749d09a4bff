package services

import (
	"errors"
	"fmt"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"gorm.io/gorm"
)

// translateCreateError converts persistence constraint violations into
// invalid-request problems so raw database errors never reach a caller.
func translateCreateError(resource string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperrors.InvalidRequest(fmt.Sprintf("Unable to create %s with provided data.", resource))
	default:
		return err
	}
}

// translateLookupError maps a missing row (or an owner mismatch, which reads
// identically) to a not-found problem carrying the resource and id.
func translateLookupError(label, resource, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(
			fmt.Sprintf("%s not found.", label),
			map[string]any{"resource": resource, "id": id},
		)
	}
	return err
}
