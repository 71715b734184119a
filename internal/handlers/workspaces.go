package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// WorkspaceHandler exposes workspace lifecycle and membership endpoints.
type WorkspaceHandler struct {
	workspaces *services.WorkspaceService
	provider   identity.Provider
}

// NewWorkspaceHandler constructs a workspace handler.
func NewWorkspaceHandler(workspaces *services.WorkspaceService, provider identity.Provider) (*WorkspaceHandler, error) {
	if workspaces == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "workspace service must be provided", http.StatusInternalServerError)
	}
	if provider == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "identity provider must be provided", http.StatusInternalServerError)
	}
	return &WorkspaceHandler{workspaces: workspaces, provider: provider}, nil
}

type createWorkspaceRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=120"`
	Slug        string         `json:"slug" validate:"omitempty,max=120"`
	Logo        string         `json:"logo" validate:"omitempty,max=2048"`
	Description string         `json:"description" validate:"omitempty,max=4096"`
	Metadata    map[string]any `json:"metadata"`
}

type updateWorkspaceRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	Logo        *string `json:"logo" validate:"omitempty,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
}

// Create opens a workspace owned by the authenticated user.
func (h *WorkspaceHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createWorkspaceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	workspace, err := h.workspaces.Create(requestContext(c), services.CreateWorkspaceInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Logo:        req.Logo,
		Description: req.Description,
		Metadata:    req.Metadata,
		CreatorID:   user.ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, workspace)
}

// List returns the workspaces the authenticated user belongs to.
func (h *WorkspaceHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	workspaces, err := h.workspaces.ListForUser(requestContext(c), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, workspaces)
}

// Get returns a workspace with its members.
func (h *WorkspaceHandler) Get(c *gin.Context) {
	workspace, err := h.workspaces.GetByID(requestContext(c), c.Param("workspaceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, workspace)
}

// Update applies a partial edit to a workspace.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req updateWorkspaceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	workspace, err := h.workspaces.Update(requestContext(c), c.Param("workspaceId"), services.UpdateWorkspaceInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Logo:        req.Logo,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, workspace)
}

// Delete removes a workspace. Projects survive as orphans; members and
// invitations cascade away.
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.workspaces.Delete(requestContext(c), c.Param("workspaceId")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Members lists workspace members.
func (h *WorkspaceHandler) Members(c *gin.Context) {
	members, err := h.workspaces.Members(requestContext(c), c.Param("workspaceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

// RemoveMember revokes another user's membership.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	if err := h.provider.RemoveMembership(requestContext(c), workspaceID, userID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// Leave removes the authenticated user from the workspace.
func (h *WorkspaceHandler) Leave(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.provider.RemoveMembership(requestContext(c), c.Param("workspaceId"), user.ID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"left": true})
}
