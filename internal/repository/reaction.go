package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Toggle outcomes reported back to callers.
const (
	ToggleAdded    = "added"
	ToggleRemoved  = "removed"
	ToggleReplaced = "replaced"
)

// ReactionRepository is the shared reaction ledger for posts and comments.
// It guarantees at most one entry per actor per target: toggling the same
// type removes the entry, a different type replaces it in place.
type ReactionRepository interface {
	Toggle(ctx context.Context, targetType string, targetID, employeeID uint, reactionType string) (string, error)
	ListByTarget(ctx context.Context, targetType string, targetID uint) ([]models.Reaction, error)
	DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint) error
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Toggle(ctx context.Context, targetType string, targetID, employeeID uint, reactionType string) (string, error) {
	var action string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("target_type = ? AND target_id = ? AND employee_id = ?", targetType, targetID, employeeID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{
				TargetType: targetType,
				TargetID:   targetID,
				EmployeeID: employeeID,
				Type:       reactionType,
			}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			action = ToggleAdded
			return nil
		case err != nil:
			return err
		case existing.Type == reactionType:
			// Toggle-off. Hard delete so re-adding the same reaction works.
			if err := tx.Unscoped().Delete(&models.Reaction{}, existing.ID).Error; err != nil {
				return err
			}
			action = ToggleRemoved
			return nil
		default:
			if err := tx.Model(&models.Reaction{}).
				Where("id = ?", existing.ID).
				Update("type", reactionType).Error; err != nil {
				return err
			}
			action = ToggleReplaced
			return nil
		}
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Two concurrent first reactions raced; the unique index kept the
			// ledger single-entry, so report the loser as a conflict.
			return "", models.NewConflictError("Reaction was modified concurrently, please retry")
		}
		return "", err
	}
	return action, nil
}

func (r *reactionRepository) ListByTarget(ctx context.Context, targetType string, targetID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at asc").
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&models.Reaction{}).Error
}

// isUniqueViolation detects unique-constraint errors across drivers without
// depending on driver-specific error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
