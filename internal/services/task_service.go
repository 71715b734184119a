package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// Activity types recorded by the task service.
const (
	ActivityTaskCreated   = "task.created"
	ActivityTaskAssigned  = "task.assigned"
	ActivityStatusChanged = "task.status_changed"
	ActivityCommentAdded  = "comment.added"
)

// CreateTaskInput captures the attributes required to create a task.
type CreateTaskInput struct {
	ProjectID     string
	Title         string
	Description   string
	Status        string
	Priority      string
	AssigneeEmail string
	DueDate       *time.Time
	ActorEmail    string
}

// UpdateTaskInput represents mutable task fields.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	AssigneeEmail *string
	DueDate       *time.Time
	Position      *int
	ActorEmail    string
}

// ListTasksInput filters the task listing.
type ListTasksInput struct {
	ProjectID     string
	Status        string
	AssigneeEmail string
}

// TaskService manages tasks and their activity feed.
type TaskService struct {
	store *store.Store
	bus   *events.Bus
}

// NewTaskService constructs a TaskService.
func NewTaskService(st *store.Store, bus *events.Bus) (*TaskService, error) {
	if st == nil {
		return nil, errors.New("task service: store is required")
	}
	return &TaskService{store: st, bus: bus}, nil
}

// Create inserts a task at the end of its project board. Task numbers are
// sequential per project; position appends to the current column.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	ctx = ensureContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("task service: title is required")
	}
	if input.ProjectID == "" {
		return nil, errors.New("task service: project id is required")
	}

	status := defaultIfEmpty(input.Status, models.TaskStatusToDo)
	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    defaultIfEmpty(input.Priority, models.TaskPriorityLow),
		DueDate:     input.DueDate,
	}

	if email := normalizeEmail(input.AssigneeEmail); email != "" {
		task.AssigneeEmail = &email
	}

	// Number and position derive from MAX over the project's existing
	// tasks, so they are computed and inserted in one transaction to keep
	// concurrent creates from claiming the same number.
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		number, err := nextTaskNumber(tx, input.ProjectID)
		if err != nil {
			return err
		}
		position, err := nextBoardPosition(tx, input.ProjectID, status)
		if err != nil {
			return err
		}

		task.Number = number
		task.Position = position
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, fmt.Errorf("task service: create task: %w", err)
	}

	if actor := normalizeEmail(input.ActorEmail); actor != "" {
		s.record(ctx, task.ID, ActivityTaskCreated, actor, title)
	}
	if task.AssigneeEmail != nil && s.bus != nil {
		s.bus.Publish(ctx, events.TaskAssigned, events.TaskAssignedPayload{
			TaskID:        task.ID,
			TaskTitle:     task.Title,
			ProjectID:     task.ProjectID,
			AssigneeEmail: *task.AssigneeEmail,
			ActorEmail:    normalizeEmail(input.ActorEmail),
		})
	}

	return task, nil
}

// GetByID loads a task with its labels.
func (s *TaskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	ctx = ensureContext(ctx)

	var task models.Task
	err := s.store.DB().WithContext(ctx).Preload("Labels").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("task service: get task: %w", translateGorm(err))
	}
	return &task, nil
}

// List returns tasks for a project ordered by board position.
func (s *TaskService) List(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	ctx = ensureContext(ctx)
	if input.ProjectID == "" {
		return nil, errors.New("task service: project id is required")
	}

	q := s.store.DB().WithContext(ctx).Where("project_id = ?", input.ProjectID)
	if input.Status != "" {
		q = q.Where("status = ?", input.Status)
	}
	if email := normalizeEmail(input.AssigneeEmail); email != "" {
		q = q.Where("assignee_email = ?", email)
	}

	var tasks []models.Task
	if err := q.Order("position, number").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task service: list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update, recording status and assignee changes in
// the activity feed.
func (s *TaskService) Update(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	ctx = ensureContext(ctx)

	before, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("task service: title cannot be empty")
		}
		patch["title"] = title
	}
	if input.Description != nil {
		patch["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		patch["status"] = defaultIfEmpty(*input.Status, models.TaskStatusToDo)
	}
	if input.Priority != nil {
		patch["priority"] = defaultIfEmpty(*input.Priority, models.TaskPriorityLow)
	}
	if input.AssigneeEmail != nil {
		if email := normalizeEmail(*input.AssigneeEmail); email != "" {
			patch["assignee_email"] = email
		} else {
			patch["assignee_email"] = nil
		}
	}
	if input.DueDate != nil {
		patch["due_date"] = *input.DueDate
	}
	if input.Position != nil {
		patch["position"] = *input.Position
	}

	if len(patch) > 0 {
		if err := s.store.Update(ctx, models.KindTask, id, patch); err != nil {
			return nil, fmt.Errorf("task service: update task: %w", err)
		}
	}

	after, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor := normalizeEmail(input.ActorEmail); actor != "" {
		if input.Status != nil && before.Status != after.Status {
			s.record(ctx, id, ActivityStatusChanged, actor, fmt.Sprintf("%s -> %s", before.Status, after.Status))
		}
		if input.AssigneeEmail != nil && !equalPtr(before.AssigneeEmail, after.AssigneeEmail) {
			s.record(ctx, id, ActivityTaskAssigned, actor, valueOr(after.AssigneeEmail, "unassigned"))
			if after.AssigneeEmail != nil && s.bus != nil {
				s.bus.Publish(ctx, events.TaskAssigned, events.TaskAssignedPayload{
					TaskID:        after.ID,
					TaskTitle:     after.Title,
					ProjectID:     after.ProjectID,
					AssigneeEmail: *after.AssigneeEmail,
					ActorEmail:    actor,
				})
			}
		}
	}

	return after, nil
}

// Delete removes the task; time entries, activities, and labels cascade.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindTask, id); err != nil {
		return fmt.Errorf("task service: delete task: %w", err)
	}
	return nil
}

func nextTaskNumber(tx *gorm.DB, projectID string) (int, error) {
	var number int
	err := tx.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(number), 0) + 1").
		Scan(&number).Error
	if err != nil {
		return 0, err
	}
	if number < 1 {
		number = 1
	}
	return number, nil
}

func nextBoardPosition(tx *gorm.DB, projectID, status string) (int, error) {
	var position int
	err := tx.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, status).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&position).Error
	if err != nil {
		return 0, err
	}
	if position < 0 {
		position = 0
	}
	return position, nil
}

func (s *TaskService) record(ctx context.Context, taskID, activityType, actorEmail, content string) {
	activity := &models.Activity{
		TaskID:    taskID,
		Type:      activityType,
		UserEmail: actorEmail,
		Content:   content,
	}
	_ = s.store.Create(ctx, models.KindActivity, activity)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func valueOr(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
