package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/middleware"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/repository"
)

// Mention sources, used to phrase the notification message.
const (
	MentionSourcePost    = "post"
	MentionSourceComment = "comment"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

const mentionScanTimeout = 10 * time.Second

// MentionNotifier scans freshly persisted content for @name tokens, resolves
// them to tenant members by exact first name, and records one notification per
// resolved employee. It always runs after the primary write and its failures
// never propagate to the caller.
type MentionNotifier struct {
	employeeRepo     repository.EmployeeRepository
	notificationRepo repository.NotificationRepository
}

// NewMentionNotifier creates a new MentionNotifier.
func NewMentionNotifier(
	employeeRepo repository.EmployeeRepository,
	notificationRepo repository.NotificationRepository,
) *MentionNotifier {
	return &MentionNotifier{
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
	}
}

// ExtractMentions returns the @name tokens in content, deduplicated exactly as
// captured (case-sensitively) in order of first appearance. Resolution against
// the employee directory happens case-insensitively later.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Scan resolves mention tokens and writes notifications. The acting author is
// never notified, even when self-mentioned. Name collisions within a tenant
// notify every matching employee; this is a documented limitation of
// free-text name matching, not a defect.
func (n *MentionNotifier) Scan(ctx context.Context, tenantID uint, author *models.Employee, content string, postID uint, source string) error {
	names := ExtractMentions(content)
	if len(names) == 0 {
		return nil
	}

	message := fmt.Sprintf("%s mentioned you in a post", author.FullName())
	if source == MentionSourceComment {
		message = fmt.Sprintf("%s mentioned you in a comment", author.FullName())
	}

	notified := make(map[uint]struct{})
	var notifications []models.Notification
	for _, name := range names {
		employees, err := n.employeeRepo.FindByFirstName(ctx, tenantID, name)
		if err != nil {
			return fmt.Errorf("resolve mention %q: %w", name, err)
		}
		for _, employee := range employees {
			if employee.ID == author.ID {
				continue
			}
			if _, ok := notified[employee.ID]; ok {
				continue
			}
			notified[employee.ID] = struct{}{}
			notifications = append(notifications, models.Notification{
				TenantID:    tenantID,
				RecipientID: employee.ID,
				Type:        models.NotificationTypeMention,
				Title:       "You were mentioned",
				Message:     message,
				RelatedID:   postID,
			})
		}
	}

	if err := n.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("record mention notifications: %w", err)
	}
	return nil
}

// NotifyAsync runs Scan in a detached goroutine once the primary write is
// durable. Errors are logged and counted for operational follow-up; the
// caller has already received its response.
func (n *MentionNotifier) NotifyAsync(tenantID uint, author *models.Employee, content string, postID uint, source string) {
	if !strings.Contains(content, "@") {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				middleware.Logger.Error("panic in mention scan",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), mentionScanTimeout)
		defer cancel()

		if err := n.Scan(ctx, tenantID, author, content, postID, source); err != nil {
			middleware.ReconciliationFailures.WithLabelValues("mention_scan").Inc()
			middleware.Logger.Error("mention scan failed",
				slog.Any("tenant_id", tenantID),
				slog.Any("post_id", postID),
				slog.String("source", source),
				slog.String("error", err.Error()),
			)
		}
	}()
}
