package repository

import (
	"context"
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"gorm.io/gorm"
)

// PollRepository manages poll rows and option-level vote sets.
type PollRepository interface {
	Create(ctx context.Context, postID uint, question string, options []string, allowMultiple bool, expiresAt *time.Time) (*models.Poll, error)
	Vote(ctx context.Context, poll *models.Poll, employeeID, optionID uint) error
	DeleteByPost(ctx context.Context, postID uint) error
}

type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository creates a new PollRepository
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) Create(ctx context.Context, postID uint, question string, options []string, allowMultiple bool, expiresAt *time.Time) (*models.Poll, error) {
	poll := &models.Poll{
		PostID:        postID,
		Question:      question,
		AllowMultiple: allowMultiple,
		ExpiresAt:     expiresAt,
	}
	for i, text := range options {
		poll.Options = append(poll.Options, models.PollOption{Idx: i, Text: text})
	}
	if err := r.db.WithContext(ctx).Create(poll).Error; err != nil {
		return nil, err
	}
	return poll, nil
}

// Vote applies the voting policy atomically. Single-choice polls first clear
// the actor's votes on every other option of the same poll; the insert itself
// uses ON CONFLICT DO NOTHING so voting again for an already-chosen option is
// a no-op rather than a double count, even under concurrent requests.
func (r *pollRepository) Vote(ctx context.Context, poll *models.Poll, employeeID, optionID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !poll.AllowMultiple {
			optionIDs := make([]uint, 0, len(poll.Options))
			for _, opt := range poll.Options {
				optionIDs = append(optionIDs, opt.ID)
			}
			if err := tx.
				Where("option_id IN ? AND employee_id = ? AND option_id <> ?", optionIDs, employeeID, optionID).
				Delete(&models.PollVote{}).Error; err != nil {
				return err
			}
		}

		return tx.Exec(
			`INSERT INTO poll_votes (option_id, employee_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (option_id, employee_id) DO NOTHING`,
			optionID, employeeID,
		).Error
	})
}

func (r *pollRepository) DeleteByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		if err := tx.Where("post_id = ?", postID).First(&poll).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		var optionIDs []uint
		if err := tx.Model(&models.PollOption{}).
			Where("poll_id = ?", poll.ID).
			Pluck("id", &optionIDs).Error; err != nil {
			return err
		}
		if len(optionIDs) > 0 {
			if err := tx.Where("option_id IN ?", optionIDs).Delete(&models.PollVote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Poll{}, poll.ID).Error
	})
}
