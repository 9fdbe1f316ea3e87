package repository

import (
	"context"
	"errors"
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/cache"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"gorm.io/gorm"
)

// FeedFilter optionally narrows feed listing by post type and scope.
type FeedFilter struct {
	Type  string
	Scope string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, tenantID, id uint) (*models.Post, error)
	ListFeed(ctx context.Context, tenantID uint, filter FeedFilter, limit, offset int) ([]*models.Post, int64, error)
	UpdateContent(ctx context.Context, tenantID, id uint, content string) error
	SetPinned(ctx context.Context, tenantID, id uint, pinned bool) error
	Delete(ctx context.Context, tenantID, id uint) error
	IncrementCommentCount(ctx context.Context, id uint, delta int) error
	CountCreatedAfter(ctx context.Context, tenantID uint, since time.Time) (int64, error)
	Latest(ctx context.Context, tenantID uint) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateFeed(ctx, post.TenantID)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("tenant_id = ?", tenantID).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListFeed returns one tenant-isolated page ordered pinned-first then by
// recency, plus the total row count for pagination.
func (r *postRepository) ListFeed(ctx context.Context, tenantID uint, filter FeedFilter, limit, offset int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("tenant_id = ?", tenantID)
	if filter.Type != "" {
		base = base.Where("type = ?", filter.Type)
	}
	if filter.Scope != "" {
		base = base.Where("scope = ?", filter.Scope)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.withAssociations(base.Session(&gorm.Session{})).
		Order("is_pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// withAssociations preloads everything the API returns with a post.
func (r *postRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Reactions").
		Preload("Reactions.Employee").
		Preload("Poll").
		Preload("Poll.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.idx ASC")
		}).
		Preload("Poll.Options.Votes")
}

// UpdateContent writes the one field edits may touch. A targeted column
// update avoids rewriting associations loaded on the aggregate.
func (r *postRepository) UpdateContent(ctx context.Context, tenantID, id uint, content string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeed(ctx, tenantID)
	return nil
}

func (r *postRepository) SetPinned(ctx context.Context, tenantID, id uint, pinned bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		UpdateColumn("is_pinned", pinned)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeed(ctx, tenantID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeed(ctx, tenantID)
	return nil
}

// IncrementCommentCount applies an atomic counter update so concurrent comment
// writes on the same post never lose increments.
func (r *postRepository) IncrementCommentCount(ctx context.Context, id uint, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count + ?, 0)", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) CountCreatedAfter(ctx context.Context, tenantID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("tenant_id = ? AND created_at > ?", tenantID, since).
		Count(&count).Error
	return count, err
}

func (r *postRepository) Latest(ctx context.Context, tenantID uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
