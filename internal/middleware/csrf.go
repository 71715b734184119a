package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stackboard/stackboard/pkg/crypto"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/logger"
	"github.com/stackboard/stackboard/pkg/response"
)

const (
	// CSRFCookieName carries the token to browser clients. The cookie is
	// readable by scripts so SPAs can echo it back in the header.
	CSRFCookieName = "stackboard_csrf"
	// CSRFHeaderName must match the cookie on mutating requests.
	CSRFHeaderName = "X-CSRF-Token"

	csrfTokenLength  = 48
	csrfCookieMaxAge = 12 * 60 * 60
)

// CSRF enforces the double-submit-cookie pattern for cookie-authenticated
// clients. Reads hand out the token; writes must echo it in CSRFHeaderName.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, err := csrfToken(c)
		if err != nil {
			c.Abort()
			response.Error(c, errors.ErrInternalServer)
			return
		}

		if !csrfProtected(c.Request.Method) {
			c.Header(CSRFHeaderName, token)
			c.Next()
			return
		}

		presented := strings.TrimSpace(c.GetHeader(CSRFHeaderName))
		if !tokensMatch(token, presented) {
			logger.WithModule("csrf").Warn("csrf validation failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
			c.Abort()
			response.Error(c, errors.ErrCSRFInvalid)
			return
		}

		c.Next()
	}
}

func csrfProtected(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// csrfToken returns the request's CSRF token, minting and setting a new
// cookie when none is present.
func csrfToken(c *gin.Context) (string, error) {
	if existing, err := c.Cookie(CSRFCookieName); err == nil && existing != "" {
		writeCSRFCookie(c, existing)
		return existing, nil
	}

	token, err := crypto.GenerateToken(csrfTokenLength)
	if err != nil {
		return "", err
	}
	writeCSRFCookie(c, token)
	return token, nil
}

func writeCSRFCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   csrfCookieMaxAge,
		Secure:   requestIsSecure(c.Request),
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func tokensMatch(expected, presented string) bool {
	if expected == "" || presented == "" || len(expected) != len(presented) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}
