package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// LabelHandler exposes task label endpoints.
type LabelHandler struct {
	labels *services.LabelService
}

// NewLabelHandler constructs a label handler.
func NewLabelHandler(labels *services.LabelService) (*LabelHandler, error) {
	if labels == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "label service must be provided", http.StatusInternalServerError)
	}
	return &LabelHandler{labels: labels}, nil
}

type createLabelRequest struct {
	TaskID string `json:"task_id" validate:"required,uuid4"`
	Name   string `json:"name" validate:"required,min=1,max=120"`
	Color  string `json:"color" validate:"omitempty,max=32"`
}

type updateLabelRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=120"`
	Color *string `json:"color" validate:"omitempty,max=32"`
}

// Create attaches a label to a task.
func (h *LabelHandler) Create(c *gin.Context) {
	var req createLabelRequest
	if !bindAndValidate(c, &req) {
		return
	}

	label, err := h.labels.Create(requestContext(c), services.CreateLabelInput{
		TaskID: req.TaskID,
		Name:   req.Name,
		Color:  req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, label)
}

// ListForTask returns a task's labels.
func (h *LabelHandler) ListForTask(c *gin.Context) {
	labels, err := h.labels.ListForTask(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, labels)
}

// Update applies a partial edit to a label.
func (h *LabelHandler) Update(c *gin.Context) {
	var req updateLabelRequest
	if !bindAndValidate(c, &req) {
		return
	}

	label, err := h.labels.Update(requestContext(c), c.Param("id"), services.UpdateLabelInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, label)
}

// Delete detaches a label.
func (h *LabelHandler) Delete(c *gin.Context) {
	if err := h.labels.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
