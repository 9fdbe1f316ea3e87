package repository

import (
	"context"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"gorm.io/gorm"
)

// BadgeRepository reads the seeded badge catalog.
type BadgeRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Badge, error)
	List(ctx context.Context) ([]*models.Badge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) GetByID(ctx context.Context, id uint) (*models.Badge, error) {
	var badge models.Badge
	if err := r.db.WithContext(ctx).First(&badge, id).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) List(ctx context.Context) ([]*models.Badge, error) {
	var badges []*models.Badge
	err := r.db.WithContext(ctx).Order("id asc").Find(&badges).Error
	return badges, err
}
