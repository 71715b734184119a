package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/middleware"
	"github.com/stackboard/stackboard/internal/models"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUser pulls the authenticated user placed in the context by the auth
// middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	return middleware.CurrentUser(c)
}
