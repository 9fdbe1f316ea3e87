package service

import (
	"context"
	"testing"
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// employeeRepoStub is a stub for repository.EmployeeRepository.
type employeeRepoStub struct {
	getByUserIDFn     func(context.Context, uint, uint) (*models.Employee, error)
	getByIDFn         func(context.Context, uint, uint) (*models.Employee, error)
	findByFirstNameFn func(context.Context, uint, string) ([]*models.Employee, error)
}

func (s *employeeRepoStub) GetByUserID(ctx context.Context, tenantID, userID uint) (*models.Employee, error) {
	return s.getByUserIDFn(ctx, tenantID, userID)
}
func (s *employeeRepoStub) GetByID(ctx context.Context, tenantID, id uint) (*models.Employee, error) {
	return s.getByIDFn(ctx, tenantID, id)
}
func (s *employeeRepoStub) FindByFirstName(ctx context.Context, tenantID uint, name string) ([]*models.Employee, error) {
	return s.findByFirstNameFn(ctx, tenantID, name)
}

func noopEmployeeRepo() *employeeRepoStub {
	return &employeeRepoStub{
		getByUserIDFn: func(_ context.Context, tenantID, userID uint) (*models.Employee, error) {
			return &models.Employee{ID: userID, TenantID: tenantID, UserID: userID, FirstName: "Test", LastName: "Employee"}, nil
		},
		getByIDFn: func(_ context.Context, tenantID, id uint) (*models.Employee, error) {
			return &models.Employee{ID: id, TenantID: tenantID, FirstName: "Test", LastName: "Employee"}, nil
		},
		findByFirstNameFn: func(_ context.Context, _ uint, _ string) ([]*models.Employee, error) {
			return nil, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, uint, uint) (*models.Post, error)
	listFeedFn          func(context.Context, uint, repository.FeedFilter, int, int) ([]*models.Post, int64, error)
	updateContentFn     func(context.Context, uint, uint, string) error
	setPinnedFn         func(context.Context, uint, uint, bool) error
	deleteFn            func(context.Context, uint, uint) error
	incrementCommentsFn func(context.Context, uint, int) error
	countAfterFn        func(context.Context, uint, time.Time) (int64, error)
	latestFn            func(context.Context, uint) (*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, tenantID, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, tenantID, id)
}
func (s *postRepoStub) ListFeed(ctx context.Context, tenantID uint, filter repository.FeedFilter, limit, offset int) ([]*models.Post, int64, error) {
	return s.listFeedFn(ctx, tenantID, filter, limit, offset)
}
func (s *postRepoStub) UpdateContent(ctx context.Context, tenantID, id uint, content string) error {
	return s.updateContentFn(ctx, tenantID, id, content)
}
func (s *postRepoStub) SetPinned(ctx context.Context, tenantID, id uint, pinned bool) error {
	return s.setPinnedFn(ctx, tenantID, id, pinned)
}
func (s *postRepoStub) Delete(ctx context.Context, tenantID, id uint) error {
	return s.deleteFn(ctx, tenantID, id)
}
func (s *postRepoStub) IncrementCommentCount(ctx context.Context, id uint, delta int) error {
	return s.incrementCommentsFn(ctx, id, delta)
}
func (s *postRepoStub) CountCreatedAfter(ctx context.Context, tenantID uint, since time.Time) (int64, error) {
	return s.countAfterFn(ctx, tenantID, since)
}
func (s *postRepoStub) Latest(ctx context.Context, tenantID uint) (*models.Post, error) {
	return s.latestFn(ctx, tenantID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, tenantID, id uint) (*models.Post, error) {
			return &models.Post{ID: id, TenantID: tenantID, AuthorID: 1, Type: models.PostTypeText, Scope: models.ScopeCompany, Content: "hello"}, nil
		},
		listFeedFn: func(_ context.Context, _ uint, _ repository.FeedFilter, _, _ int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateContentFn:     func(_ context.Context, _, _ uint, _ string) error { return nil },
		setPinnedFn:         func(_ context.Context, _, _ uint, _ bool) error { return nil },
		deleteFn:            func(_ context.Context, _, _ uint) error { return nil },
		incrementCommentsFn: func(_ context.Context, _ uint, _ int) error { return nil },
		countAfterFn:        func(_ context.Context, _ uint, _ time.Time) (int64, error) { return 0, nil },
		latestFn:            func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByPostFn   func(context.Context, uint) ([]*models.Comment, error)
	idsByPostFn    func(context.Context, uint) ([]uint, error)
	countByPostFn  func(context.Context, uint) (int64, error)
	deleteByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) IDsByPost(ctx context.Context, postID uint) ([]uint, error) {
	return s.idsByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	return s.deleteByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, AuthorID: 1, Content: "hi"}, nil
		},
		listByPostFn:   func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		idsByPostFn:    func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		countByPostFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		deleteByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	toggleFn          func(context.Context, string, uint, uint, string) (string, error)
	listByTargetFn    func(context.Context, string, uint) ([]models.Reaction, error)
	deleteByTargetsFn func(context.Context, string, []uint) error
}

func (s *reactionRepoStub) Toggle(ctx context.Context, targetType string, targetID, employeeID uint, reactionType string) (string, error) {
	return s.toggleFn(ctx, targetType, targetID, employeeID, reactionType)
}
func (s *reactionRepoStub) ListByTarget(ctx context.Context, targetType string, targetID uint) ([]models.Reaction, error) {
	return s.listByTargetFn(ctx, targetType, targetID)
}
func (s *reactionRepoStub) DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint) error {
	return s.deleteByTargetsFn(ctx, targetType, targetIDs)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		toggleFn: func(_ context.Context, _ string, _, _ uint, _ string) (string, error) {
			return repository.ToggleAdded, nil
		},
		listByTargetFn:    func(_ context.Context, _ string, _ uint) ([]models.Reaction, error) { return nil, nil },
		deleteByTargetsFn: func(_ context.Context, _ string, _ []uint) error { return nil },
	}
}

// pollRepoStub is a stub for repository.PollRepository.
type pollRepoStub struct {
	createFn       func(context.Context, uint, string, []string, bool, *time.Time) (*models.Poll, error)
	voteFn         func(context.Context, *models.Poll, uint, uint) error
	deleteByPostFn func(context.Context, uint) error
}

func (s *pollRepoStub) Create(ctx context.Context, postID uint, question string, options []string, allowMultiple bool, expiresAt *time.Time) (*models.Poll, error) {
	return s.createFn(ctx, postID, question, options, allowMultiple, expiresAt)
}
func (s *pollRepoStub) Vote(ctx context.Context, poll *models.Poll, employeeID, optionID uint) error {
	return s.voteFn(ctx, poll, employeeID, optionID)
}
func (s *pollRepoStub) DeleteByPost(ctx context.Context, postID uint) error {
	return s.deleteByPostFn(ctx, postID)
}

func noopPollRepo() *pollRepoStub {
	return &pollRepoStub{
		createFn: func(_ context.Context, postID uint, question string, options []string, allowMultiple bool, expiresAt *time.Time) (*models.Poll, error) {
			poll := &models.Poll{PostID: postID, Question: question, AllowMultiple: allowMultiple, ExpiresAt: expiresAt}
			for i, o := range options {
				poll.Options = append(poll.Options, models.PollOption{Idx: i, Text: o})
			}
			return poll, nil
		},
		voteFn:         func(_ context.Context, _ *models.Poll, _, _ uint) error { return nil },
		deleteByPostFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// appreciationRepoStub is a stub for repository.AppreciationRepository.
type appreciationRepoStub struct {
	createFn  func(context.Context, *models.Appreciation) error
	getByIDFn func(context.Context, uint, uint) (*models.Appreciation, error)
	listFn    func(context.Context, uint, *uint, int, int) ([]*models.Appreciation, error)
}

func (s *appreciationRepoStub) Create(ctx context.Context, appreciation *models.Appreciation) error {
	return s.createFn(ctx, appreciation)
}
func (s *appreciationRepoStub) GetByID(ctx context.Context, tenantID, id uint) (*models.Appreciation, error) {
	return s.getByIDFn(ctx, tenantID, id)
}
func (s *appreciationRepoStub) List(ctx context.Context, tenantID uint, recipientID *uint, limit, offset int) ([]*models.Appreciation, error) {
	return s.listFn(ctx, tenantID, recipientID, limit, offset)
}

func noopAppreciationRepo() *appreciationRepoStub {
	return &appreciationRepoStub{
		createFn: func(_ context.Context, a *models.Appreciation) error {
			a.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, tenantID, id uint) (*models.Appreciation, error) {
			return &models.Appreciation{ID: id, TenantID: tenantID}, nil
		},
		listFn: func(_ context.Context, _ uint, _ *uint, _, _ int) ([]*models.Appreciation, error) {
			return nil, nil
		},
	}
}

// badgeRepoStub is a stub for repository.BadgeRepository.
type badgeRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.Badge, error)
	listFn    func(context.Context) ([]*models.Badge, error)
}

func (s *badgeRepoStub) GetByID(ctx context.Context, id uint) (*models.Badge, error) {
	return s.getByIDFn(ctx, id)
}
func (s *badgeRepoStub) List(ctx context.Context) ([]*models.Badge, error) {
	return s.listFn(ctx)
}

func noopBadgeRepo() *badgeRepoStub {
	return &badgeRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Badge, error) {
			return &models.Badge{ID: id, Title: "Team Player", Icon: "https://cdn.example.com/badges/team-player.png"}, nil
		},
		listFn: func(_ context.Context) ([]*models.Badge, error) { return nil, nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createBatchFn     func(context.Context, []models.Notification) error
	listByRecipientFn func(context.Context, uint, uint, int, int) ([]*models.Notification, error)
}

func (s *notificationRepoStub) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	return s.createBatchFn(ctx, notifications)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, tenantID, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, tenantID, recipientID, limit, offset)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createBatchFn: func(_ context.Context, _ []models.Notification) error { return nil },
		listByRecipientFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.Notification, error) {
			return nil, nil
		},
	}
}

func noopMentions() *MentionNotifier {
	return NewMentionNotifier(noopEmployeeRepo(), noopNotificationRepo())
}

// assertAppErrorCode asserts that err carries the given application error code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertInvalidArgument(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeInvalidArgument)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}
