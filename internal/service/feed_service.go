package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/cache"
	"github.com/neointeraction/hrms-backend-sub001/internal/middleware"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	maxContentLen    = 10000
	maxMediaItems    = 10
	minPollOptions   = 2
	maxPollOptions   = 20
	DefaultFeedPage  = 1
	DefaultFeedLimit = 10
	MaxFeedLimit     = 100
)

// FeedService owns the post aggregate: creation, edits, deletion with comment
// cascade, reaction toggles, poll voting, pinning, and feed retrieval.
type FeedService struct {
	postRepo     repository.PostRepository
	pollRepo     repository.PollRepository
	reactionRepo repository.ReactionRepository
	commentRepo  repository.CommentRepository
	employeeRepo repository.EmployeeRepository
	mentions     *MentionNotifier
}

// CreatePollInput is the poll payload when creating a poll post.
type CreatePollInput struct {
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	AllowMultiple bool       `json:"allow_multiple"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type CreatePostInput struct {
	UserID   uint
	TenantID uint
	Type     string
	Scope    string
	Content  string
	Media    []string
	Poll     *CreatePollInput
}

type UpdatePostInput struct {
	UserID   uint
	TenantID uint
	PostID   uint
	Content  string
}

type DeletePostInput struct {
	UserID   uint
	TenantID uint
	PostID   uint
}

type ListFeedInput struct {
	TenantID uint
	Type     string
	Scope    string
	Page     int
	PageSize int
}

type ToggleReactionInput struct {
	UserID   uint
	TenantID uint
	PostID   uint
	Type     string
}

type VotePollInput struct {
	UserID      uint
	TenantID    uint
	PostID      uint
	OptionIndex int
}

type PinPostInput struct {
	UserID   uint
	TenantID uint
	PostID   uint
	Pinned   bool
}

// NewFeedService creates a new feed service.
func NewFeedService(
	postRepo repository.PostRepository,
	pollRepo repository.PollRepository,
	reactionRepo repository.ReactionRepository,
	commentRepo repository.CommentRepository,
	employeeRepo repository.EmployeeRepository,
	mentions *MentionNotifier,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		pollRepo:     pollRepo,
		reactionRepo: reactionRepo,
		commentRepo:  commentRepo,
		employeeRepo: employeeRepo,
		mentions:     mentions,
	}
}

// resolveActor maps the authenticated identity to its tenant Employee profile.
func resolveActor(ctx context.Context, repo repository.EmployeeRepository, tenantID, userID uint) (*models.Employee, error) {
	employee, err := repo.GetByUserID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessageError("No employee profile found for the current user in this tenant")
		}
		return nil, err
	}
	return employee, nil
}

func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}

	postType := in.Type
	if postType == "" {
		postType = models.PostTypeText
	}
	if !models.ValidPostType(postType) {
		return nil, models.NewInvalidArgumentError("Invalid post type")
	}
	if postType == models.PostTypeAppreciation {
		// Appreciation posts are synthesized by the appreciation flow only.
		return nil, models.NewInvalidArgumentError("Appreciation posts cannot be created directly")
	}

	scope := in.Scope
	if scope == "" {
		scope = models.ScopeCompany
	}
	if !models.ValidScope(scope) {
		return nil, models.NewInvalidArgumentError("Invalid post scope")
	}

	content := sanitizeContent(in.Content)
	if len(content) > maxContentLen {
		return nil, models.NewInvalidArgumentError("Content too long (max 10000 characters)")
	}
	if content == "" && len(in.Media) == 0 && postType != models.PostTypePoll {
		return nil, models.NewInvalidArgumentError("Content is required for posts without media")
	}

	if len(in.Media) > maxMediaItems {
		return nil, models.NewInvalidArgumentError("Too many media attachments (max 10)")
	}
	for _, url := range in.Media {
		if url == "" {
			return nil, models.NewInvalidArgumentError("Media URLs must not be empty")
		}
	}

	var pollInput *CreatePollInput
	if postType == models.PostTypePoll {
		pollInput, err = validatePollInput(in.Poll)
		if err != nil {
			return nil, err
		}
	} else if in.Poll != nil {
		return nil, models.NewInvalidArgumentError("Poll data is only allowed on poll posts")
	}

	post := &models.Post{
		TenantID: in.TenantID,
		AuthorID: employee.ID,
		Type:     postType,
		Scope:    scope,
		Content:  content,
	}
	if len(in.Media) > 0 {
		media, err := json.Marshal(in.Media)
		if err != nil {
			return nil, err
		}
		post.Media = datatypes.JSON(media)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if pollInput != nil {
		if _, err := s.pollRepo.Create(ctx, post.ID, pollInput.Question, pollInput.Options, pollInput.AllowMultiple, pollInput.ExpiresAt); err != nil {
			// A poll post without poll rows must not stay in the feed.
			if delErr := s.postRepo.Delete(ctx, in.TenantID, post.ID); delErr != nil {
				middleware.ReconciliationFailures.WithLabelValues("poll_create").Inc()
				middleware.Logger.ErrorContext(ctx, "orphaned poll post cleanup failed",
					slog.Any("post_id", post.ID),
					slog.String("error", delErr.Error()),
				)
			}
			return nil, err
		}
	}

	s.mentions.NotifyAsync(in.TenantID, employee, content, post.ID, MentionSourcePost)

	return s.postRepo.GetByID(ctx, in.TenantID, post.ID)
}

func validatePollInput(in *CreatePollInput) (*CreatePollInput, error) {
	if in == nil || in.Question == "" {
		return nil, models.NewInvalidArgumentError("Poll question is required")
	}

	options := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		if trimmed := sanitizeContent(o); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	if len(options) < minPollOptions {
		return nil, models.NewInvalidArgumentError("Poll must have at least two non-empty options")
	}
	if len(options) > maxPollOptions {
		return nil, models.NewInvalidArgumentError("Poll cannot have more than 20 options")
	}

	return &CreatePollInput{
		Question:      sanitizeContent(in.Question),
		Options:       options,
		AllowMultiple: in.AllowMultiple,
		ExpiresAt:     in.ExpiresAt,
	}, nil
}

// GetPost returns one tenant-scoped post with its full state.
func (s *FeedService) GetPost(ctx context.Context, tenantID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, tenantID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}
	return post, nil
}

// UpdatePost edits post content. Only the author may edit, and only content is
// mutable; type, media, poll data and ownership are fixed at creation.
func (s *FeedService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.TenantID, in.PostID)
	if err != nil {
		return nil, err
	}

	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != employee.ID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	content := sanitizeContent(in.Content)
	if content == "" {
		return nil, models.NewInvalidArgumentError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewInvalidArgumentError("Content too long (max 10000 characters)")
	}

	if err := s.postRepo.UpdateContent(ctx, in.TenantID, in.PostID, content); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, in.TenantID, in.PostID)
}

// DeletePost removes a post and cascades deletion of its comments, reactions
// and poll rows. The post delete is the primary write; cascade failures leave
// a detectable inconsistency that is logged and counted, never silently
// ignored and never rolled back.
func (s *FeedService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.TenantID, in.PostID)
	if err != nil {
		return err
	}

	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return err
	}
	if post.AuthorID != employee.ID && !employee.IsAdminClass() {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	commentIDs, idsErr := s.commentRepo.IDsByPost(ctx, in.PostID)

	if err := s.postRepo.Delete(ctx, in.TenantID, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", in.PostID)
		}
		return err
	}

	// Cascade, best-effort from here on.
	if idsErr != nil {
		s.reportCascadeFailure(ctx, in.PostID, "list comment ids", idsErr)
	}
	if _, err := s.commentRepo.DeleteByPost(ctx, in.PostID); err != nil {
		s.reportCascadeFailure(ctx, in.PostID, "delete comments", err)
	}
	if err := s.reactionRepo.DeleteByTargets(ctx, models.ReactionTargetPost, []uint{in.PostID}); err != nil {
		s.reportCascadeFailure(ctx, in.PostID, "delete post reactions", err)
	}
	if err := s.reactionRepo.DeleteByTargets(ctx, models.ReactionTargetComment, commentIDs); err != nil {
		s.reportCascadeFailure(ctx, in.PostID, "delete comment reactions", err)
	}
	if err := s.pollRepo.DeleteByPost(ctx, in.PostID); err != nil {
		s.reportCascadeFailure(ctx, in.PostID, "delete poll", err)
	}

	return nil
}

func (s *FeedService) reportCascadeFailure(ctx context.Context, postID uint, step string, err error) {
	middleware.ReconciliationFailures.WithLabelValues("cascade_delete").Inc()
	middleware.Logger.ErrorContext(ctx, "post delete cascade step failed",
		slog.Any("post_id", postID),
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

// cachedFeedPage is the shape stored in Redis for the hot first page.
type cachedFeedPage struct {
	Posts      []*models.Post `json:"posts"`
	TotalPages int            `json:"total_pages"`
}

// ListFeed returns one page of the tenant's feed, pinned posts first, newest
// first within each group.
func (s *FeedService) ListFeed(ctx context.Context, in ListFeedInput) ([]*models.Post, int, error) {
	if in.Type != "" && !models.ValidPostType(in.Type) {
		return nil, 0, models.NewInvalidArgumentError("Invalid post type filter")
	}
	if in.Scope != "" && !models.ValidScope(in.Scope) {
		return nil, 0, models.NewInvalidArgumentError("Invalid scope filter")
	}

	page := in.Page
	if page < 1 {
		page = DefaultFeedPage
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = DefaultFeedLimit
	}
	if pageSize > MaxFeedLimit {
		pageSize = MaxFeedLimit
	}
	offset := (page - 1) * pageSize

	filter := repository.FeedFilter{Type: in.Type, Scope: in.Scope}

	// Cache only the default first page; filtered views go straight through.
	if page == 1 && pageSize == DefaultFeedLimit && in.Type == "" && in.Scope == "" {
		var cached cachedFeedPage
		err := cache.Aside(ctx, cache.FeedKey(in.TenantID), &cached, cache.FeedTTL, func() error {
			posts, total, fetchErr := s.postRepo.ListFeed(ctx, in.TenantID, filter, pageSize, offset)
			if fetchErr != nil {
				return fetchErr
			}
			cached = cachedFeedPage{Posts: posts, TotalPages: totalPages(total, pageSize)}
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
		return cached.Posts, cached.TotalPages, nil
	}

	posts, total, err := s.postRepo.ListFeed(ctx, in.TenantID, filter, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, totalPages(total, pageSize), nil
}

func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// CheckNewActivity supports client polling: how many posts arrived after the
// given instant, plus a summary of the newest one.
func (s *FeedService) CheckNewActivity(ctx context.Context, tenantID uint, since time.Time) (int64, *models.PostSummary, error) {
	count, err := s.postRepo.CountCreatedAfter(ctx, tenantID, since)
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	latest, err := s.postRepo.Latest(ctx, tenantID)
	if err != nil {
		return 0, nil, err
	}
	if latest == nil {
		return count, nil, nil
	}
	return count, &models.PostSummary{
		ID:         latest.ID,
		Type:       latest.Type,
		AuthorName: latest.Author.FullName(),
		CreatedAt:  latest.CreatedAt,
	}, nil
}

// ToggleReaction applies the reaction ledger's toggle semantics to a post.
func (s *FeedService) ToggleReaction(ctx context.Context, in ToggleReactionInput) (*models.Post, error) {
	if !models.ValidReactionType(models.ReactionTargetPost, in.Type) {
		return nil, models.NewInvalidArgumentError("Unsupported reaction type for posts")
	}

	if _, err := s.GetPost(ctx, in.TenantID, in.PostID); err != nil {
		return nil, err
	}
	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.reactionRepo.Toggle(ctx, models.ReactionTargetPost, in.PostID, employee.ID, in.Type); err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, in.PostID)
	cache.InvalidateFeed(ctx, in.TenantID)
	return s.GetPost(ctx, in.TenantID, in.PostID)
}

// VotePoll records or moves the actor's vote. Single-choice polls clear other
// selections first; voting again for an already-chosen option is a no-op.
// Votes after the advisory expiry are accepted.
func (s *FeedService) VotePoll(ctx context.Context, in VotePollInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.TenantID, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Type != models.PostTypePoll || post.Poll == nil {
		return nil, models.NewInvalidArgumentError("Post is not a poll")
	}

	option := post.Poll.OptionByIdx(in.OptionIndex)
	if option == nil {
		return nil, models.NewInvalidArgumentError("Invalid poll option")
	}

	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.pollRepo.Vote(ctx, post.Poll, employee.ID, option.ID); err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, in.PostID)
	cache.InvalidateFeed(ctx, in.TenantID)
	return s.GetPost(ctx, in.TenantID, in.PostID)
}

// SetPinned pins or unpins a post. Admin-class roles only.
func (s *FeedService) SetPinned(ctx context.Context, in PinPostInput) (*models.Post, error) {
	employee, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !employee.IsAdminClass() {
		return nil, models.NewForbiddenError("Only admins can pin posts")
	}

	if err := s.postRepo.SetPinned(ctx, in.TenantID, in.PostID, in.Pinned); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}
	return s.GetPost(ctx, in.TenantID, in.PostID)
}
