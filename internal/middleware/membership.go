package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/metrics"
	"github.com/stackboard/stackboard/pkg/response"
)

// RequireWorkspaceMember checks that the authenticated user belongs to the
// workspace named by the route parameter. Must run after Auth.
func RequireWorkspaceMember(workspaces *services.WorkspaceService, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUserIDKey)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		userID, _ := v.(string)

		workspaceID := c.Param(param)
		if workspaceID == "" {
			response.Error(c, errors.NewBadRequest("workspace id is required"))
			c.Abort()
			return
		}

		member, err := workspaces.IsMember(c.Request.Context(), workspaceID, userID)
		if err != nil {
			metrics.MembershipChecks.WithLabelValues("error").Inc()
			response.Error(c, errors.ErrInternalServer.WithInternal(err))
			c.Abort()
			return
		}
		if !member {
			metrics.MembershipChecks.WithLabelValues("denied").Inc()
			response.Error(c, errors.ErrForbidden)
			c.Abort()
			return
		}

		metrics.MembershipChecks.WithLabelValues("allowed").Inc()
		c.Next()
	}
}
