package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// UserHandler exposes profile endpoints for the authenticated user.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(users *services.UserService) (*UserHandler, error) {
	if users == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "user service must be provided", http.StatusInternalServerError)
	}
	return &UserHandler{users: users}, nil
}

type updateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	Image *string `json:"image" validate:"omitempty,max=2048"`
}

// Get returns a user's public profile.
func (h *UserHandler) Get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	user, err := h.users.GetByID(requestContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Update edits the authenticated user's profile. An email change cascades to
// every email-keyed reference atomically.
func (h *UserHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updated, err := h.users.Update(requestContext(c), user.ID, services.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Image: req.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete removes the authenticated user's account and every dependent row.
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.users.Delete(requestContext(c), user.ID); err != nil {
		respondError(c, err)
		return
	}

	clearSessionCookie(c)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
