package repository

import (
	"context"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"gorm.io/gorm"
)

// AppreciationRepository stores immutable peer-recognition records.
type AppreciationRepository interface {
	Create(ctx context.Context, appreciation *models.Appreciation) error
	GetByID(ctx context.Context, tenantID, id uint) (*models.Appreciation, error)
	List(ctx context.Context, tenantID uint, recipientID *uint, limit, offset int) ([]*models.Appreciation, error)
}

type appreciationRepository struct {
	db *gorm.DB
}

// NewAppreciationRepository creates a new appreciation repository
func NewAppreciationRepository(db *gorm.DB) AppreciationRepository {
	return &appreciationRepository{db: db}
}

func (r *appreciationRepository) Create(ctx context.Context, appreciation *models.Appreciation) error {
	return r.db.WithContext(ctx).Create(appreciation).Error
}

func (r *appreciationRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Appreciation, error) {
	var appreciation models.Appreciation
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Preload("Badge").
		Where("tenant_id = ?", tenantID).
		First(&appreciation, id).Error
	if err != nil {
		return nil, err
	}
	return &appreciation, nil
}

func (r *appreciationRepository) List(ctx context.Context, tenantID uint, recipientID *uint, limit, offset int) ([]*models.Appreciation, error) {
	query := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Preload("Badge").
		Where("tenant_id = ?", tenantID)
	if recipientID != nil {
		query = query.Where("recipient_id = ?", *recipientID)
	}

	var appreciations []*models.Appreciation
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&appreciations).Error
	return appreciations, err
}
