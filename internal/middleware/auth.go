package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

const (
	CtxUserKey      = "authUser"
	CtxSessionKey   = "authSession"
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"

	// SessionCookieName carries the opaque session token for browser clients.
	SessionCookieName = "stackboard_session"
)

// Auth authenticates requests against the identity provider. The session
// token is read from the Authorization header (Bearer) or, for browser
// clients, from the session cookie.
func Auth(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		session, user, err := provider.ValidateSession(c.Request.Context(), token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxUserKey, user)
		c.Set(CtxSessionKey, session)
		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxUserEmailKey, user.Email)

		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Auth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentSession returns the session stored by Auth.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}

func extractToken(c *gin.Context) string {
	authz := c.GetHeader("Authorization")
	if len(authz) >= 8 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
