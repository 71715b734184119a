package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// ProjectHandler exposes project endpoints, including the unauthenticated
// public share endpoint.
type ProjectHandler struct {
	projects *services.ProjectService
}

// NewProjectHandler constructs a project handler.
func NewProjectHandler(projects *services.ProjectService) (*ProjectHandler, error) {
	if projects == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "project service must be provided", http.StatusInternalServerError)
	}
	return &ProjectHandler{projects: projects}, nil
}

type createProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	Icon        string `json:"icon" validate:"omitempty,max=64"`
	Description string `json:"description" validate:"omitempty,max=4096"`
	IsPublic    bool   `json:"is_public"`
}

type updateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	Icon        *string `json:"icon" validate:"omitempty,max=64"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
	IsPublic    *bool   `json:"is_public"`
}

// Create registers a project in the workspace.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if !bindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Create(requestContext(c), services.CreateProjectInput{
		WorkspaceID: c.Param("workspaceId"),
		Name:        req.Name,
		Slug:        req.Slug,
		Icon:        req.Icon,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, project)
}

// List returns the workspace's projects.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.ListForWorkspace(requestContext(c), c.Param("workspaceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, projects)
}

// Get returns a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// GetPublic returns a project without authentication when it is shared
// publicly. Private projects surface as 404 to avoid leaking existence.
func (h *ProjectHandler) GetPublic(c *gin.Context) {
	project, err := h.projects.GetPublic(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// Update applies a partial edit to a project.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectRequest
	if !bindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Update(requestContext(c), c.Param("id"), services.UpdateProjectInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Icon:        req.Icon,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// Delete removes a project and cascades to its tasks.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
