package repository

import (
	"errors"

	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"gorm.io/gorm"
)

// checkVersion compares the stored version against the caller's expected
// version. On mismatch the current version rides along in the conflict so
// the caller can recover without another read.
func checkVersion(resource, id string, current, expected int64) error {
	if current != expected {
		return apperrors.VersionConflict(resource, id, current)
	}
	return nil
}

// applyVersioned performs the guarded write half of the optimistic protocol:
// the WHERE clause pins the version observed during the precheck, so of two
// racers at most one commits per version and the loser sees a conflict. The
// version bump, field changes and updated_at refresh land in the same
// statement. An empty change set writes nothing.
func applyVersioned(tx *gorm.DB, model any, resource, ownerID, id string, expected int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}

	updates := make(map[string]any, len(changes)+1)
	for column, value := range changes {
		updates[column] = value
	}
	updates["version"] = gorm.Expr("version + 1")

	result := tx.Model(model).
		Where("id = ? AND user_id = ? AND version = ?", id, ownerID, expected).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return staleWriteError(tx, model, resource, ownerID, id)
	}
	return nil
}

// staleWriteError resolves a zero-row guarded write into the right failure:
// the row vanished (not found) or another writer moved the version first.
func staleWriteError(tx *gorm.DB, model any, resource, ownerID, id string) error {
	var current int64
	err := tx.Model(model).
		Select("version").
		Where("id = ? AND user_id = ?", id, ownerID).
		Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("", map[string]any{"resource": resource, "id": id})
	}
	if err != nil {
		return err
	}
	return apperrors.VersionConflict(resource, id, current)
}
