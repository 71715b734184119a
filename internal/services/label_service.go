package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

const defaultLabelColor = "#6b7280"

// CreateLabelInput attaches a coloured tag to a task.
type CreateLabelInput struct {
	TaskID string
	Name   string
	Color  string
}

// UpdateLabelInput carries a partial label edit.
type UpdateLabelInput struct {
	Name  *string
	Color *string
}

// LabelService manages the tags attached to tasks.
type LabelService struct {
	store *store.Store
}

// NewLabelService constructs a LabelService.
func NewLabelService(st *store.Store) (*LabelService, error) {
	if st == nil {
		return nil, errors.New("label service: store is required")
	}
	return &LabelService{store: st}, nil
}

// Create attaches a label to a task.
func (s *LabelService) Create(ctx context.Context, input CreateLabelInput) (*models.Label, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if input.TaskID == "" || name == "" {
		return nil, errors.New("label service: task id and name are required")
	}

	label := &models.Label{
		TaskID: input.TaskID,
		Name:   name,
		Color:  defaultIfEmpty(strings.TrimSpace(input.Color), defaultLabelColor),
	}
	if err := s.store.Create(ctx, models.KindLabel, label); err != nil {
		return nil, fmt.Errorf("label service: create label: %w", err)
	}
	return label, nil
}

// ListForTask returns a task's labels.
func (s *LabelService) ListForTask(ctx context.Context, taskID string) ([]models.Label, error) {
	ctx = ensureContext(ctx)

	var labels []models.Label
	err := s.store.DB().WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&labels).Error
	if err != nil {
		return nil, fmt.Errorf("label service: list labels: %w", err)
	}
	return labels, nil
}

// Update applies a partial edit to a label.
func (s *LabelService) Update(ctx context.Context, labelID string, input UpdateLabelInput) (*models.Label, error) {
	ctx = ensureContext(ctx)

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("label service: name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Color != nil {
		updates["color"] = defaultIfEmpty(strings.TrimSpace(*input.Color), defaultLabelColor)
	}
	if len(updates) > 0 {
		if err := s.store.Update(ctx, models.KindLabel, labelID, updates); err != nil {
			return nil, fmt.Errorf("label service: update label: %w", err)
		}
	}

	var label models.Label
	if err := s.store.Get(ctx, models.KindLabel, labelID, &label); err != nil {
		return nil, fmt.Errorf("label service: reload label: %w", err)
	}
	return &label, nil
}

// Delete detaches a label from its task.
func (s *LabelService) Delete(ctx context.Context, labelID string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindLabel, labelID); err != nil {
		return fmt.Errorf("label service: delete label: %w", err)
	}
	return nil
}
