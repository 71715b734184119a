package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/internal/store"
	appErrors "github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// respondError maps domain errors onto API error responses. Anything not in
// the taxonomy falls through as an internal server error.
func respondError(c *gin.Context, err error) {
	switch {
	case err == nil:
		response.Error(c, appErrors.ErrInternalServer)

	case errors.Is(err, store.ErrNotFound):
		response.Error(c, appErrors.ErrNotFound)
	case errors.Is(err, store.ErrForeignKeyViolation):
		response.Error(c, appErrors.NewBadRequest("referenced resource does not exist"))
	case errors.Is(err, store.ErrConstraintViolation):
		response.Error(c, appErrors.ErrConflict)

	case errors.Is(err, identity.ErrInvalidCredentials):
		response.Error(c, appErrors.ErrInvalidCredentials)
	case errors.Is(err, identity.ErrEmailTaken):
		response.Error(c, appErrors.ErrConflict.WithMessage("Email is already registered"))
	case errors.Is(err, identity.ErrSessionNotFound),
		errors.Is(err, identity.ErrSessionExpired):
		response.Error(c, appErrors.ErrUnauthorized)
	case errors.Is(err, identity.ErrUserNotFound):
		response.Error(c, appErrors.ErrNotFound)
	case errors.Is(err, identity.ErrTokensDisabled):
		response.Error(c, appErrors.ErrNotFound.WithMessage("Access tokens are not enabled"))

	case errors.Is(err, services.ErrProjectNotPublic):
		response.Error(c, appErrors.ErrNotFound)
	case errors.Is(err, services.ErrIntegrationExists):
		response.Error(c, appErrors.ErrConflict.WithMessage("Project already has a GitHub integration"))
	case errors.Is(err, services.ErrTimerAlreadyRunning):
		response.Error(c, appErrors.ErrConflict.WithMessage("A timer is already running for this task"))
	case errors.Is(err, services.ErrInvitationNotPending):
		response.Error(c, appErrors.ErrConflict.WithMessage("Invitation is no longer pending"))
	case errors.Is(err, services.ErrInvitationExpired):
		response.Error(c, appErrors.ErrConflict.WithMessage("Invitation has expired"))
	case errors.Is(err, services.ErrInvitationEmailMismatch):
		response.Error(c, appErrors.ErrForbidden.WithMessage("Invitation is addressed to a different email"))

	default:
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
	}
}
