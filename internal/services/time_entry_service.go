package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// ErrTimerAlreadyRunning rejects starting a second open timer on a task for
// the same user.
var ErrTimerAlreadyRunning = errors.New("time entry service: a timer is already running")

// StartTimerInput begins tracking time against a task.
type StartTimerInput struct {
	TaskID      string
	UserEmail   string
	Description string
}

// CreateTimeEntryInput records a manual, already-finished entry.
type CreateTimeEntryInput struct {
	TaskID      string
	UserEmail   string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// TimeEntryService manages time tracked against tasks.
type TimeEntryService struct {
	store *store.Store
	now   func() time.Time
}

// NewTimeEntryService constructs a TimeEntryService.
func NewTimeEntryService(st *store.Store) (*TimeEntryService, error) {
	if st == nil {
		return nil, errors.New("time entry service: store is required")
	}
	return &TimeEntryService{store: st, now: time.Now}, nil
}

// WithClock overrides the clock, primarily for tests.
func (s *TimeEntryService) WithClock(now func() time.Time) *TimeEntryService {
	if now != nil {
		s.now = now
	}
	return s
}

// Start opens a running entry (no end time) for the user on the task.
func (s *TimeEntryService) Start(ctx context.Context, input StartTimerInput) (*models.TimeEntry, error) {
	ctx = ensureContext(ctx)

	email := normalizeEmail(input.UserEmail)
	if input.TaskID == "" || email == "" {
		return nil, errors.New("time entry service: task id and user email are required")
	}

	running, err := s.Running(ctx, input.TaskID, email)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, ErrTimerAlreadyRunning
	}

	entry := &models.TimeEntry{
		TaskID:      input.TaskID,
		UserEmail:   &email,
		Description: strings.TrimSpace(input.Description),
		StartTime:   s.now(),
	}
	if err := s.store.Create(ctx, models.KindTimeEntry, entry); err != nil {
		return nil, fmt.Errorf("time entry service: start timer: %w", err)
	}
	return entry, nil
}

// Stop closes a running entry and computes its duration in seconds.
func (s *TimeEntryService) Stop(ctx context.Context, entryID string) (*models.TimeEntry, error) {
	ctx = ensureContext(ctx)

	var entry models.TimeEntry
	if err := s.store.Get(ctx, models.KindTimeEntry, entryID, &entry); err != nil {
		return nil, fmt.Errorf("time entry service: load entry: %w", err)
	}
	if entry.EndTime != nil {
		return &entry, nil
	}

	end := s.now()
	duration := int(end.Sub(entry.StartTime) / time.Second)
	if duration < 0 {
		duration = 0
	}

	if err := s.store.Update(ctx, models.KindTimeEntry, entryID, map[string]any{
		"end_time": end,
		"duration": duration,
	}); err != nil {
		return nil, fmt.Errorf("time entry service: stop timer: %w", err)
	}

	entry.EndTime = &end
	entry.Duration = duration
	return &entry, nil
}

// Create records a manual entry with explicit start and end times.
func (s *TimeEntryService) Create(ctx context.Context, input CreateTimeEntryInput) (*models.TimeEntry, error) {
	ctx = ensureContext(ctx)

	email := normalizeEmail(input.UserEmail)
	if input.TaskID == "" || email == "" {
		return nil, errors.New("time entry service: task id and user email are required")
	}
	if input.EndTime.Before(input.StartTime) {
		return nil, errors.New("time entry service: end time precedes start time")
	}

	end := input.EndTime
	entry := &models.TimeEntry{
		TaskID:      input.TaskID,
		UserEmail:   &email,
		Description: strings.TrimSpace(input.Description),
		StartTime:   input.StartTime,
		EndTime:     &end,
		Duration:    int(input.EndTime.Sub(input.StartTime) / time.Second),
	}
	if err := s.store.Create(ctx, models.KindTimeEntry, entry); err != nil {
		return nil, fmt.Errorf("time entry service: create entry: %w", err)
	}
	return entry, nil
}

// Running returns the user's open entry on the task, or nil.
func (s *TimeEntryService) Running(ctx context.Context, taskID, userEmail string) (*models.TimeEntry, error) {
	ctx = ensureContext(ctx)

	var entry models.TimeEntry
	err := s.store.DB().WithContext(ctx).
		Where("task_id = ? AND user_email = ? AND end_time IS NULL", taskID, normalizeEmail(userEmail)).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("time entry service: find running entry: %w", err)
	}
	return &entry, nil
}

// ListForTask returns the entries recorded against a task, oldest first.
func (s *TimeEntryService) ListForTask(ctx context.Context, taskID string) ([]models.TimeEntry, error) {
	ctx = ensureContext(ctx)

	var entries []models.TimeEntry
	err := s.store.DB().WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("start_time").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("time entry service: list entries: %w", err)
	}
	return entries, nil
}

// TotalForTask sums tracked seconds across a task's closed entries.
func (s *TimeEntryService) TotalForTask(ctx context.Context, taskID string) (int, error) {
	ctx = ensureContext(ctx)

	var total int
	err := s.store.DB().WithContext(ctx).
		Model(&models.TimeEntry{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("time entry service: total duration: %w", err)
	}
	return total, nil
}

// Delete removes an entry.
func (s *TimeEntryService) Delete(ctx context.Context, entryID string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindTimeEntry, entryID); err != nil {
		return fmt.Errorf("time entry service: delete entry: %w", err)
	}
	return nil
}
