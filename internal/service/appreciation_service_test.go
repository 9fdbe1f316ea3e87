package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAppreciationService(appreciationRepo *appreciationRepoStub, badgeRepo *badgeRepoStub, postRepo *postRepoStub, employeeRepo *employeeRepoStub) *AppreciationService {
	return NewAppreciationService(appreciationRepo, badgeRepo, postRepo, employeeRepo)
}

func defaultAppreciationService() *AppreciationService {
	return newAppreciationService(noopAppreciationRepo(), noopBadgeRepo(), noopPostRepo(), noopEmployeeRepo())
}

func TestAppreciationService_Create_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("self-appreciation rejected", func(t *testing.T) {
		t.Parallel()
		employeeRepo := noopEmployeeRepo()
		employeeRepo.getByUserIDFn = func(_ context.Context, tenantID, _ uint) (*models.Employee, error) {
			return &models.Employee{ID: 5, TenantID: tenantID}, nil
		}
		employeeRepo.getByIDFn = func(_ context.Context, tenantID, id uint) (*models.Employee, error) {
			return &models.Employee{ID: id, TenantID: tenantID}, nil
		}
		svc := newAppreciationService(noopAppreciationRepo(), noopBadgeRepo(), noopPostRepo(), employeeRepo)
		_, err := svc.Create(ctx, CreateAppreciationInput{UserID: 1, TenantID: 1, RecipientID: 5, BadgeID: 1})
		assertInvalidArgument(t, err)
	})

	t.Run("recipient outside tenant is not found", func(t *testing.T) {
		t.Parallel()
		employeeRepo := noopEmployeeRepo()
		employeeRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := newAppreciationService(noopAppreciationRepo(), noopBadgeRepo(), noopPostRepo(), employeeRepo)
		_, err := svc.Create(ctx, CreateAppreciationInput{UserID: 1, TenantID: 1, RecipientID: 77, BadgeID: 1})
		assertNotFound(t, err)
	})

	t.Run("unknown badge", func(t *testing.T) {
		t.Parallel()
		badgeRepo := noopBadgeRepo()
		badgeRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Badge, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := newAppreciationService(noopAppreciationRepo(), badgeRepo, noopPostRepo(), noopEmployeeRepo())
		_, err := svc.Create(ctx, CreateAppreciationInput{UserID: 1, TenantID: 1, RecipientID: 2, BadgeID: 404})
		assertNotFound(t, err)
	})

	t.Run("message too long", func(t *testing.T) {
		t.Parallel()
		svc := defaultAppreciationService()
		_, err := svc.Create(ctx, CreateAppreciationInput{
			UserID: 1, TenantID: 1, RecipientID: 2, BadgeID: 1,
			Message: strings.Repeat("x", maxAppreciationMessageLen+1),
		})
		assertInvalidArgument(t, err)
	})
}

func TestAppreciationService_Create_SynthesizesFeedPost(t *testing.T) {
	t.Parallel()

	employeeRepo := noopEmployeeRepo()
	employeeRepo.getByUserIDFn = func(_ context.Context, tenantID, _ uint) (*models.Employee, error) {
		return &models.Employee{ID: 1, TenantID: tenantID, FirstName: "Maya", LastName: "Pillai"}, nil
	}
	employeeRepo.getByIDFn = func(_ context.Context, tenantID, id uint) (*models.Employee, error) {
		return &models.Employee{ID: id, TenantID: tenantID, FirstName: "Rahul", LastName: "Menon"}, nil
	}

	var synthesized *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 33
		synthesized = p
		return nil
	}

	svc := newAppreciationService(noopAppreciationRepo(), noopBadgeRepo(), postRepo, employeeRepo)
	appreciation, err := svc.Create(context.Background(), CreateAppreciationInput{
		UserID: 1, TenantID: 1, RecipientID: 2, BadgeID: 1, Message: "Always dependable",
	})
	require.NoError(t, err)
	require.NotNil(t, appreciation)

	require.NotNil(t, synthesized)
	assert.Equal(t, models.PostTypeAppreciation, synthesized.Type)
	assert.Equal(t, models.ScopeCompany, synthesized.Scope)
	assert.Contains(t, synthesized.Content, "Maya Pillai recognized Rahul Menon")
	assert.Contains(t, synthesized.Content, "Team Player")
	assert.Contains(t, synthesized.Content, "Always dependable")
	require.NotNil(t, synthesized.RelatedAppreciationID)
	assert.Equal(t, uint(1), *synthesized.RelatedAppreciationID)
	assert.NotEmpty(t, synthesized.Media)
}

func TestAppreciationService_Create_PostFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, _ *models.Post) error {
		return errors.New("db down")
	}

	svc := newAppreciationService(noopAppreciationRepo(), noopBadgeRepo(), postRepo, noopEmployeeRepo())
	appreciation, err := svc.Create(context.Background(), CreateAppreciationInput{
		UserID: 1, TenantID: 1, RecipientID: 2, BadgeID: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, appreciation)
}

func TestAppreciationService_List_ClampsLimit(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	appreciationRepo := noopAppreciationRepo()
	appreciationRepo.listFn = func(_ context.Context, _ uint, _ *uint, limit, offset int) ([]*models.Appreciation, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	svc := newAppreciationService(appreciationRepo, noopBadgeRepo(), noopPostRepo(), noopEmployeeRepo())
	_, err := svc.List(context.Background(), ListAppreciationsInput{TenantID: 1, Limit: 1000, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, MaxFeedLimit, gotLimit)
	assert.Zero(t, gotOffset)
}
