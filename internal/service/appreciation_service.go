package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neointeraction/hrms-backend-sub001/internal/cache"
	"github.com/neointeraction/hrms-backend-sub001/internal/middleware"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxAppreciationMessageLen = 2000

// AppreciationService creates peer-recognition records and fans each one out
// into the feed as a synthesized appreciation post. The appreciation record is
// the primary write; a failed post synthesis is a recorded inconsistency, not
// a rollback.
type AppreciationService struct {
	appreciationRepo repository.AppreciationRepository
	badgeRepo        repository.BadgeRepository
	postRepo         repository.PostRepository
	employeeRepo     repository.EmployeeRepository
}

type CreateAppreciationInput struct {
	UserID      uint
	TenantID    uint
	RecipientID uint
	BadgeID     uint
	Message     string
}

type ListAppreciationsInput struct {
	TenantID    uint
	RecipientID *uint
	Limit       int
	Offset      int
}

// NewAppreciationService creates a new appreciation service.
func NewAppreciationService(
	appreciationRepo repository.AppreciationRepository,
	badgeRepo repository.BadgeRepository,
	postRepo repository.PostRepository,
	employeeRepo repository.EmployeeRepository,
) *AppreciationService {
	return &AppreciationService{
		appreciationRepo: appreciationRepo,
		badgeRepo:        badgeRepo,
		postRepo:         postRepo,
		employeeRepo:     employeeRepo,
	}
}

func (s *AppreciationService) Create(ctx context.Context, in CreateAppreciationInput) (*models.Appreciation, error) {
	sender, err := resolveActor(ctx, s.employeeRepo, in.TenantID, in.UserID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.employeeRepo.GetByID(ctx, in.TenantID, in.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Employee", in.RecipientID)
		}
		return nil, err
	}
	if sender.ID == recipient.ID {
		return nil, models.NewInvalidArgumentError("You cannot send an appreciation to yourself")
	}

	badge, err := s.badgeRepo.GetByID(ctx, in.BadgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Badge", in.BadgeID)
		}
		return nil, err
	}

	message := sanitizeContent(in.Message)
	if len(message) > maxAppreciationMessageLen {
		return nil, models.NewInvalidArgumentError("Message too long (max 2000 characters)")
	}

	appreciation := &models.Appreciation{
		TenantID:    in.TenantID,
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		BadgeID:     badge.ID,
		Message:     message,
	}
	if err := s.appreciationRepo.Create(ctx, appreciation); err != nil {
		return nil, err
	}

	s.synthesizePost(ctx, appreciation, sender, recipient, badge, message)

	return s.appreciationRepo.GetByID(ctx, in.TenantID, appreciation.ID)
}

// synthesizePost fans the appreciation out into the feed. Runs after the
// appreciation is durable; failure leaves an appreciation without its feed
// post, which is logged and counted for reconciliation.
func (s *AppreciationService) synthesizePost(ctx context.Context, appreciation *models.Appreciation, sender, recipient *models.Employee, badge *models.Badge, message string) {
	content := fmt.Sprintf("%s recognized %s with the %q badge", sender.FullName(), recipient.FullName(), badge.Title)
	if message != "" {
		content += "\n\n" + message
	}

	media, err := json.Marshal([]string{badge.Icon})
	if err != nil {
		s.reportSynthesisFailure(ctx, appreciation.ID, err)
		return
	}

	post := &models.Post{
		TenantID:              appreciation.TenantID,
		AuthorID:              sender.ID,
		Type:                  models.PostTypeAppreciation,
		Scope:                 models.ScopeCompany,
		Content:               content,
		Media:                 datatypes.JSON(media),
		RelatedAppreciationID: &appreciation.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.reportSynthesisFailure(ctx, appreciation.ID, err)
		return
	}

	cache.InvalidateFeed(ctx, appreciation.TenantID)
}

func (s *AppreciationService) reportSynthesisFailure(ctx context.Context, appreciationID uint, err error) {
	middleware.ReconciliationFailures.WithLabelValues("appreciation_post").Inc()
	middleware.Logger.ErrorContext(ctx, "appreciation post synthesis failed",
		slog.Any("appreciation_id", appreciationID),
		slog.String("error", err.Error()),
	)
}

// List returns the tenant's appreciations, optionally narrowed to one
// recipient, newest first.
func (s *AppreciationService) List(ctx context.Context, in ListAppreciationsInput) ([]*models.Appreciation, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.appreciationRepo.List(ctx, in.TenantID, in.RecipientID, limit, offset)
}

// ListBadges exposes the badge catalog for the appreciation UI.
func (s *AppreciationService) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	return s.badgeRepo.List(ctx)
}
