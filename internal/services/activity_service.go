package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// CreateActivityInput records an entry on a task's feed.
type CreateActivityInput struct {
	TaskID    string
	Type      string
	UserEmail string
	Content   string
}

// ActivityService manages the per-task activity feed.
type ActivityService struct {
	store *store.Store
}

// NewActivityService constructs an ActivityService.
func NewActivityService(st *store.Store) (*ActivityService, error) {
	if st == nil {
		return nil, errors.New("activity service: store is required")
	}
	return &ActivityService{store: st}, nil
}

// Create appends an entry to a task's feed.
func (s *ActivityService) Create(ctx context.Context, input CreateActivityInput) (*models.Activity, error) {
	ctx = ensureContext(ctx)

	email := normalizeEmail(input.UserEmail)
	if input.TaskID == "" || email == "" {
		return nil, errors.New("activity service: task id and user email are required")
	}

	activity := &models.Activity{
		TaskID:    input.TaskID,
		Type:      defaultIfEmpty(strings.TrimSpace(input.Type), ActivityCommentAdded),
		UserEmail: email,
		Content:   strings.TrimSpace(input.Content),
	}
	if err := s.store.Create(ctx, models.KindActivity, activity); err != nil {
		return nil, fmt.Errorf("activity service: create activity: %w", err)
	}
	return activity, nil
}

// ListForTask returns a task's feed, oldest first.
func (s *ActivityService) ListForTask(ctx context.Context, taskID string) ([]models.Activity, error) {
	ctx = ensureContext(ctx)

	var activities []models.Activity
	err := s.store.DB().WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("activity service: list activities: %w", err)
	}
	return activities, nil
}

// Update edits the content of an entry, typically a comment.
func (s *ActivityService) Update(ctx context.Context, activityID, content string) (*models.Activity, error) {
	ctx = ensureContext(ctx)

	if err := s.store.Update(ctx, models.KindActivity, activityID, map[string]any{
		"content": strings.TrimSpace(content),
	}); err != nil {
		return nil, fmt.Errorf("activity service: update activity: %w", err)
	}

	var activity models.Activity
	if err := s.store.Get(ctx, models.KindActivity, activityID, &activity); err != nil {
		return nil, fmt.Errorf("activity service: reload activity: %w", err)
	}
	return &activity, nil
}

// Delete removes an entry from a task's feed.
func (s *ActivityService) Delete(ctx context.Context, activityID string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindActivity, activityID); err != nil {
		return fmt.Errorf("activity service: delete activity: %w", err)
	}
	return nil
}
