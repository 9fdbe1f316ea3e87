package service

import (
	"context"
	"testing"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMentions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"no mentions", "just a plain post", nil},
		{"single mention", "thanks @Priya for the help", []string{"Priya"}},
		{"multiple mentions", "@Priya and @Rahul shipped it", []string{"Priya", "Rahul"}},
		{"deduplicates", "@Priya @Priya @Priya", []string{"Priya"}},
		{"case-sensitive dedupe keeps both", "@priya and @Priya", []string{"priya", "Priya"}},
		{"stops at punctuation", "ping @Priya, then @Rahul.", []string{"Priya", "Rahul"}},
		{"email-like text still matches the local part", "mail priya@example.com", []string{"example"}},
		{"bare at sign", "meet @ 5pm", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractMentions(tt.content))
		})
	}
}

func TestMentionNotifier_Scan(t *testing.T) {
	t.Parallel()

	author := &models.Employee{ID: 1, TenantID: 1, FirstName: "Maya", LastName: "Pillai"}

	t.Run("notifies each resolved employee once", func(t *testing.T) {
		t.Parallel()
		employeeRepo := noopEmployeeRepo()
		employeeRepo.findByFirstNameFn = func(_ context.Context, tenantID uint, name string) ([]*models.Employee, error) {
			if name == "Priya" {
				return []*models.Employee{{ID: 2, TenantID: tenantID, FirstName: "Priya"}}, nil
			}
			return nil, nil
		}

		var recorded []models.Notification
		notificationRepo := noopNotificationRepo()
		notificationRepo.createBatchFn = func(_ context.Context, ns []models.Notification) error {
			recorded = ns
			return nil
		}

		n := NewMentionNotifier(employeeRepo, notificationRepo)
		err := n.Scan(context.Background(), 1, author, "great work @Priya and @Priya again", 9, MentionSourcePost)
		require.NoError(t, err)
		require.Len(t, recorded, 1)
		assert.Equal(t, uint(2), recorded[0].RecipientID)
		assert.Equal(t, models.NotificationTypeMention, recorded[0].Type)
		assert.Equal(t, uint(9), recorded[0].RelatedID)
		assert.Contains(t, recorded[0].Message, "Maya Pillai mentioned you in a post")
	})

	t.Run("comment source changes the message", func(t *testing.T) {
		t.Parallel()
		employeeRepo := noopEmployeeRepo()
		employeeRepo.findByFirstNameFn = func(_ context.Context, tenantID uint, name string) ([]*models.Employee, error) {
			return []*models.Employee{{ID: 2, TenantID: tenantID, FirstName: name}}, nil
		}
		var recorded []models.Notification
		notificationRepo := noopNotificationRepo()
		notificationRepo.createBatchFn = func(_ context.Context, ns []models.Notification) error {
			recorded = ns
			return nil
		}

		n := NewMentionNotifier(employeeRepo, notificationRepo)
		err := n.Scan(context.Background(), 1, author, "@Rahul see this", 4, MentionSourceComment)
		require.NoError(t, err)
		require.Len(t, recorded, 1)
		assert.Contains(t, recorded[0].Message, "mentioned you in a comment")
	})

	t.Run("author is never self-notified", func(t *testing.T) {
		t.Parallel()
		employeeRepo := noopEmployeeRepo()
		employeeRepo.findByFirstNameFn = func(_ context.Context, tenantID uint, _ string) ([]*models.Employee, error) {
			return []*models.Employee{{ID: author.ID, TenantID: tenantID, FirstName: "Maya"}}, nil
		}
		called := false
		notificationRepo := noopNotificationRepo()
		notificationRepo.createBatchFn = func(_ context.Context, ns []models.Notification) error {
			called = true
			assert.Empty(t, ns)
			return nil
		}

		n := NewMentionNotifier(employeeRepo, notificationRepo)
		err := n.Scan(context.Background(), 1, author, "note to self @Maya", 9, MentionSourcePost)
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("name collision notifies every match", func(t *testing.T) {
		t.Parallel()
		employeeRepo := noopEmployeeRepo()
		employeeRepo.findByFirstNameFn = func(_ context.Context, tenantID uint, _ string) ([]*models.Employee, error) {
			return []*models.Employee{
				{ID: 2, TenantID: tenantID, FirstName: "Priya"},
				{ID: 3, TenantID: tenantID, FirstName: "Priya"},
			}, nil
		}
		var recorded []models.Notification
		notificationRepo := noopNotificationRepo()
		notificationRepo.createBatchFn = func(_ context.Context, ns []models.Notification) error {
			recorded = ns
			return nil
		}

		n := NewMentionNotifier(employeeRepo, notificationRepo)
		err := n.Scan(context.Background(), 1, author, "@Priya", 9, MentionSourcePost)
		require.NoError(t, err)
		assert.Len(t, recorded, 2)
	})

	t.Run("unresolvable names are skipped silently", func(t *testing.T) {
		t.Parallel()
		var recorded []models.Notification
		notificationRepo := noopNotificationRepo()
		notificationRepo.createBatchFn = func(_ context.Context, ns []models.Notification) error {
			recorded = ns
			return nil
		}

		n := NewMentionNotifier(noopEmployeeRepo(), notificationRepo)
		err := n.Scan(context.Background(), 1, author, "@Nobody here", 9, MentionSourcePost)
		require.NoError(t, err)
		assert.Empty(t, recorded)
	})
}
