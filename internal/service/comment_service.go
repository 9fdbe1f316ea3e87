package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/neointeraction/hrms-backend-sub001/internal/cache"
	"github.com/neointeraction/hrms-backend-sub001/internal/middleware"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 5000

// CommentService owns the comment thread store: flat comment records with an
// optional parent reference, the denormalized comment counter on the owning
// post, and the comment side of the reaction ledger.
type CommentService struct {
	commentRepo  repository.CommentRepository
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
	employeeRepo repository.EmployeeRepository
	mentions     *MentionNotifier
}

type AddCommentInput struct {
	UserID   uint
	TenantID uint
	PostID   uint
	Content  string
	ParentID *uint
}

type ToggleCommentReactionInput struct {
	UserID    uint
	TenantID  uint
	CommentID uint
	Type      string
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
	employeeRepo repository.EmployeeRepository,
	mentions *MentionNotifier,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
		employeeRepo: employeeRepo,
		mentions:     mentions,
	}
}

// AddComment persists a comment and increments the owning post's counter.
// The comment write is primary; a failed counter increment afterwards leaves
// the counter behind the collection, which is logged and counted rather than
// rolled back.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, in.TenantID, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	content := sanitizeContent(in.Content)
	if content == "" {
		return nil, models.NewInvalidArgumentError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewInvalidArgumentError("Comment too long (max 5000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewInvalidArgumentError("Parent comment does not exist")
			}
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewInvalidArgumentError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: employee.ID,
		Content:  content,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementCommentCount(ctx, in.PostID, 1); err != nil {
		middleware.ReconciliationFailures.WithLabelValues("comment_count").Inc()
		middleware.Logger.ErrorContext(ctx, "comment counter increment failed",
			slog.Any("post_id", in.PostID),
			slog.Any("comment_id", comment.ID),
			slog.String("error", err.Error()),
		)
	}

	cache.InvalidateFeed(ctx, in.TenantID)
	s.mentions.NotifyAsync(in.TenantID, employee, content, in.PostID, MentionSourceComment)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the post's flat comment list in ascending creation
// order; the reply tree is reconstructed client-side from parent_id.
func (s *CommentService) ListComments(ctx context.Context, tenantID, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, tenantID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// ToggleReaction applies the shared ledger's toggle semantics to a comment.
func (s *CommentService) ToggleReaction(ctx context.Context, in ToggleCommentReactionInput) (*models.Comment, error) {
	if !models.ValidReactionType(models.ReactionTargetComment, in.Type) {
		return nil, models.NewInvalidArgumentError("Unsupported reaction type for comments")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	// Tenant isolation runs through the owning post.
	if _, err := s.postRepo.GetByID(ctx, in.TenantID, comment.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.reactionRepo.Toggle(ctx, models.ReactionTargetComment, in.CommentID, employee.ID, in.Type); err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return s.commentRepo.GetByID(ctx, in.CommentID)
}
