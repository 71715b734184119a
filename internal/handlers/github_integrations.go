package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// GithubIntegrationHandler exposes the project/repository link endpoints.
type GithubIntegrationHandler struct {
	integrations *services.GithubIntegrationService
}

// NewGithubIntegrationHandler constructs a GitHub integration handler.
func NewGithubIntegrationHandler(integrations *services.GithubIntegrationService) (*GithubIntegrationHandler, error) {
	if integrations == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "github integration service must be provided", http.StatusInternalServerError)
	}
	return &GithubIntegrationHandler{integrations: integrations}, nil
}

type connectRepositoryRequest struct {
	ProjectID       string `json:"project_id" validate:"required,uuid4"`
	RepositoryOwner string `json:"repository_owner" validate:"required,max=120"`
	RepositoryName  string `json:"repository_name" validate:"required,max=200"`
	InstallationID  *int64 `json:"installation_id"`
}

type updateIntegrationRequest struct {
	RepositoryOwner *string `json:"repository_owner" validate:"omitempty,min=1,max=120"`
	RepositoryName  *string `json:"repository_name" validate:"omitempty,min=1,max=200"`
	InstallationID  *int64  `json:"installation_id"`
	IsActive        *bool   `json:"is_active"`
}

// Connect links a repository to a project.
func (h *GithubIntegrationHandler) Connect(c *gin.Context) {
	var req connectRepositoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	integration, err := h.integrations.Connect(requestContext(c), services.ConnectRepositoryInput{
		ProjectID:       req.ProjectID,
		RepositoryOwner: req.RepositoryOwner,
		RepositoryName:  req.RepositoryName,
		InstallationID:  req.InstallationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, integration)
}

// GetForProject returns the integration linked to a project.
func (h *GithubIntegrationHandler) GetForProject(c *gin.Context) {
	integration, err := h.integrations.GetForProject(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, integration)
}

// Update applies a partial edit to an integration.
func (h *GithubIntegrationHandler) Update(c *gin.Context) {
	var req updateIntegrationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	integration, err := h.integrations.Update(requestContext(c), c.Param("id"), services.UpdateIntegrationInput{
		RepositoryOwner: req.RepositoryOwner,
		RepositoryName:  req.RepositoryName,
		InstallationID:  req.InstallationID,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, integration)
}

// Disconnect removes the repository link.
func (h *GithubIntegrationHandler) Disconnect(c *gin.Context) {
	if err := h.integrations.Disconnect(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"disconnected": true})
}
