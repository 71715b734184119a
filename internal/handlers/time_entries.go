package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// TimeEntryHandler exposes time tracking endpoints.
type TimeEntryHandler struct {
	timeEntries *services.TimeEntryService
}

// NewTimeEntryHandler constructs a time entry handler.
func NewTimeEntryHandler(timeEntries *services.TimeEntryService) (*TimeEntryHandler, error) {
	if timeEntries == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "time entry service must be provided", http.StatusInternalServerError)
	}
	return &TimeEntryHandler{timeEntries: timeEntries}, nil
}

type startTimerRequest struct {
	TaskID      string `json:"task_id" validate:"required,uuid4"`
	Description string `json:"description" validate:"omitempty,max=4096"`
}

type createTimeEntryRequest struct {
	TaskID      string    `json:"task_id" validate:"required,uuid4"`
	Description string    `json:"description" validate:"omitempty,max=4096"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

// Start opens a running timer for the authenticated user on a task.
func (h *TimeEntryHandler) Start(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req startTimerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.timeEntries.Start(requestContext(c), services.StartTimerInput{
		TaskID:      req.TaskID,
		UserEmail:   user.Email,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// Stop closes a running timer and computes its duration.
func (h *TimeEntryHandler) Stop(c *gin.Context) {
	entry, err := h.timeEntries.Stop(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// Create records a manual entry with explicit start and end times.
func (h *TimeEntryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createTimeEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.timeEntries.Create(requestContext(c), services.CreateTimeEntryInput{
		TaskID:      req.TaskID,
		UserEmail:   user.Email,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// ListForTask returns a task's time entries and their total.
func (h *TimeEntryHandler) ListForTask(c *gin.Context) {
	ctx := requestContext(c)
	taskID := c.Param("id")

	entries, err := h.timeEntries.ListForTask(ctx, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.timeEntries.TotalForTask(ctx, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries":        entries,
		"total_duration": total,
	})
}

// Delete removes a time entry.
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	if err := h.timeEntries.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
