package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// TaskHandler exposes task board endpoints.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler constructs a task handler.
func NewTaskHandler(tasks *services.TaskService) (*TaskHandler, error) {
	if tasks == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "task service must be provided", http.StatusInternalServerError)
	}
	return &TaskHandler{tasks: tasks}, nil
}

type createTaskRequest struct {
	ProjectID     string     `json:"project_id" validate:"required,uuid4"`
	Title         string     `json:"title" validate:"required,min=1,max=500"`
	Description   string     `json:"description" validate:"omitempty,max=16384"`
	Status        string     `json:"status" validate:"omitempty,max=64"`
	Priority      string     `json:"priority" validate:"omitempty,max=64"`
	AssigneeEmail string     `json:"assignee_email" validate:"omitempty,email"`
	DueDate       *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Description   *string    `json:"description" validate:"omitempty,max=16384"`
	Status        *string    `json:"status" validate:"omitempty,max=64"`
	Priority      *string    `json:"priority" validate:"omitempty,max=64"`
	AssigneeEmail *string    `json:"assignee_email" validate:"omitempty"`
	DueDate       *time.Time `json:"due_date"`
	Position      *int       `json:"position"`
}

// Create inserts a task at the end of its project board.
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createTaskRequest
	if !bindAndValidate(c, &req) {
		return
	}

	task, err := h.tasks.Create(requestContext(c), services.CreateTaskInput{
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		AssigneeEmail: req.AssigneeEmail,
		DueDate:       req.DueDate,
		ActorEmail:    user.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, task)
}

// List returns a project's tasks, optionally filtered by status or assignee.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(requestContext(c), services.ListTasksInput{
		ProjectID:     c.Query("project_id"),
		Status:        c.Query("status"),
		AssigneeEmail: c.Query("assignee_email"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

// Get returns a task with its labels.
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

// Update applies a partial edit, recording status and assignee changes in the
// activity feed.
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateTaskRequest
	if !bindAndValidate(c, &req) {
		return
	}

	task, err := h.tasks.Update(requestContext(c), c.Param("id"), services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		AssigneeEmail: req.AssigneeEmail,
		DueDate:       req.DueDate,
		Position:      req.Position,
		ActorEmail:    user.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

// Delete removes a task; labels, activities, and time entries cascade.
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
