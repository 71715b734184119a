package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// InvitationHandler exposes workspace invitation endpoints.
type InvitationHandler struct {
	invitations *services.InvitationService
}

// NewInvitationHandler constructs an invitation handler.
func NewInvitationHandler(invitations *services.InvitationService) (*InvitationHandler, error) {
	if invitations == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "invitation service must be provided", http.StatusInternalServerError)
	}
	return &InvitationHandler{invitations: invitations}, nil
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=owner admin member"`
}

// Invite records a pending invitation for the email address.
func (h *InvitationHandler) Invite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req inviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invitation, err := h.invitations.Invite(requestContext(c), services.InviteInput{
		WorkspaceID: c.Param("workspaceId"),
		Email:       req.Email,
		Role:        req.Role,
		InviterID:   user.ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, invitation)
}

// ListForWorkspace returns a workspace's invitations.
func (h *InvitationHandler) ListForWorkspace(c *gin.Context) {
	invitations, err := h.invitations.ListForWorkspace(requestContext(c), c.Param("workspaceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, invitations)
}

// ListMine returns the authenticated user's pending invitations.
func (h *InvitationHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	invitations, err := h.invitations.ListPendingForEmail(requestContext(c), user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, invitations)
}

// Accept turns a pending invitation into a membership.
func (h *InvitationHandler) Accept(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	member, err := h.invitations.Accept(requestContext(c), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// Decline settles a pending invitation without granting membership.
func (h *InvitationHandler) Decline(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.invitations.Decline(requestContext(c), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"declined": true})
}
