package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
	"github.com/stackboard/stackboard/pkg/logger"
)

// Notification type values surfaced to clients.
const (
	NotificationTypeInfo       = "info"
	NotificationTypeAssignment = "assignment"
	NotificationTypeInvitation = "invitation"
	NotificationTypeWelcome    = "welcome"
)

// CreateNotificationInput addresses an in-app notification to a user.
type CreateNotificationInput struct {
	UserEmail    string
	Title        string
	Content      string
	Type         string
	ResourceID   string
	ResourceType string
}

// NotificationService manages in-app notifications.
type NotificationService struct {
	store *store.Store
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(st *store.Store) (*NotificationService, error) {
	if st == nil {
		return nil, errors.New("notification service: store is required")
	}
	return &NotificationService{store: st}, nil
}

// SubscribeEvents registers the notification fan-out handlers on the bus.
// Delivery is in-process only; a failed write is logged and dropped rather
// than failing the originating operation.
func (s *NotificationService) SubscribeEvents(bus *events.Bus) {
	if bus == nil {
		return
	}

	bus.Subscribe(events.WorkspaceCreated, func(ctx context.Context, payload any) {
		created, ok := payload.(events.WorkspaceCreatedPayload)
		if !ok || created.OwnerEmail == "" {
			return
		}
		_, err := s.Create(ctx, CreateNotificationInput{
			UserEmail:    created.OwnerEmail,
			Title:        "Workspace created",
			Content:      fmt.Sprintf("Your workspace %q is ready.", created.WorkspaceName),
			Type:         NotificationTypeWelcome,
			ResourceID:   created.WorkspaceID,
			ResourceType: "workspace",
		})
		if err != nil {
			logger.WithModule("notifications").Warn("workspace.created fan-out failed", zap.Error(err))
		}
	})

	bus.Subscribe(events.TaskAssigned, func(ctx context.Context, payload any) {
		assigned, ok := payload.(events.TaskAssignedPayload)
		if !ok || assigned.AssigneeEmail == "" {
			return
		}
		_, err := s.Create(ctx, CreateNotificationInput{
			UserEmail:    assigned.AssigneeEmail,
			Title:        "Task assigned to you",
			Content:      assigned.TaskTitle,
			Type:         NotificationTypeAssignment,
			ResourceID:   assigned.TaskID,
			ResourceType: "task",
		})
		if err != nil {
			logger.WithModule("notifications").Warn("task.assigned fan-out failed", zap.Error(err))
		}
	})

	bus.Subscribe(events.MemberInvited, func(ctx context.Context, payload any) {
		invited, ok := payload.(events.MemberInvitedPayload)
		if !ok || invited.Email == "" {
			return
		}
		_, err := s.Create(ctx, CreateNotificationInput{
			UserEmail:    invited.Email,
			Title:        "Workspace invitation",
			Content:      fmt.Sprintf("You have been invited to %s.", invited.WorkspaceName),
			Type:         NotificationTypeInvitation,
			ResourceID:   invited.InvitationID,
			ResourceType: "invitation",
		})
		if err != nil {
			logger.WithModule("notifications").Warn("member.invited fan-out failed", zap.Error(err))
		}
	})
}

// Create stores a notification for a user.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	email := normalizeEmail(input.UserEmail)
	title := strings.TrimSpace(input.Title)
	if email == "" || title == "" {
		return nil, errors.New("notification service: user email and title are required")
	}

	notification := &models.Notification{
		UserEmail:    email,
		Title:        title,
		Content:      strings.TrimSpace(input.Content),
		Type:         defaultIfEmpty(strings.TrimSpace(input.Type), NotificationTypeInfo),
		ResourceID:   input.ResourceID,
		ResourceType: input.ResourceType,
	}
	if err := s.store.Create(ctx, models.KindNotification, notification); err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}
	return notification, nil
}

// ListForUser returns a user's notifications, newest first. When unreadOnly
// is set, read notifications are filtered out.
func (s *NotificationService) ListForUser(ctx context.Context, userEmail string, unreadOnly bool) ([]models.Notification, error) {
	ctx = ensureContext(ctx)

	query := s.store.DB().WithContext(ctx).
		Where("user_email = ?", normalizeEmail(userEmail)).
		Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many unread notifications a user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userEmail string) (int64, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.store.DB().WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_email = ? AND is_read = ?", normalizeEmail(userEmail), false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("notification service: unread count: %w", err)
	}
	return count, nil
}

// MarkRead flags a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.setRead(ctx, notificationID, true)
}

// MarkUnread flags a single notification as unread.
func (s *NotificationService) MarkUnread(ctx context.Context, notificationID string) error {
	return s.setRead(ctx, notificationID, false)
}

func (s *NotificationService) setRead(ctx context.Context, notificationID string, read bool) error {
	ctx = ensureContext(ctx)

	if err := s.store.Update(ctx, models.KindNotification, notificationID, map[string]any{
		"is_read": read,
	}); err != nil {
		return fmt.Errorf("notification service: mark notification: %w", err)
	}
	return nil
}

// MarkAllRead flags every unread notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userEmail string) error {
	ctx = ensureContext(ctx)

	err := s.store.DB().WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_email = ? AND is_read = ?", normalizeEmail(userEmail), false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("notification service: mark all read: %w", err)
	}
	return nil
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, notificationID string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindNotification, notificationID); err != nil {
		return fmt.Errorf("notification service: delete notification: %w", err)
	}
	return nil
}
