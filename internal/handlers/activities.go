package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// ActivityHandler exposes the per-task activity feed.
type ActivityHandler struct {
	activities *services.ActivityService
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(activities *services.ActivityService) (*ActivityHandler, error) {
	if activities == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "activity service must be provided", http.StatusInternalServerError)
	}
	return &ActivityHandler{activities: activities}, nil
}

type createActivityRequest struct {
	TaskID  string `json:"task_id" validate:"required,uuid4"`
	Type    string `json:"type" validate:"omitempty,max=64"`
	Content string `json:"content" validate:"omitempty,max=16384"`
}

type updateActivityRequest struct {
	Content string `json:"content" validate:"required,max=16384"`
}

// Create appends an entry (typically a comment) to a task's feed.
func (h *ActivityHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}

	activity, err := h.activities.Create(requestContext(c), services.CreateActivityInput{
		TaskID:    req.TaskID,
		Type:      req.Type,
		UserEmail: user.Email,
		Content:   req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, activity)
}

// ListForTask returns a task's feed, oldest first.
func (h *ActivityHandler) ListForTask(c *gin.Context) {
	activities, err := h.activities.ListForTask(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, activities)
}

// Update edits an entry's content.
func (h *ActivityHandler) Update(c *gin.Context) {
	var req updateActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}

	activity, err := h.activities.Update(requestContext(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, activity)
}

// Delete removes an entry from the feed.
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.activities.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
