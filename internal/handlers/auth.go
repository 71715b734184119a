package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/middleware"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/metrics"
	"github.com/stackboard/stackboard/pkg/response"
)

// AuthHandler exposes sign-up, sign-in, and session endpoints.
type AuthHandler struct {
	provider identity.Provider
}

// NewAuthHandler constructs an auth handler over the identity provider.
func NewAuthHandler(provider identity.Provider) (*AuthHandler, error) {
	if provider == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "identity provider must be provided", http.StatusInternalServerError)
	}
	return &AuthHandler{provider: provider}, nil
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type setActiveWorkspaceRequest struct {
	WorkspaceID string `json:"workspace_id" validate:"required,uuid4"`
}

type authPayload struct {
	User    *models.User    `json:"user"`
	Session *models.Session `json:"session"`
	Token   string          `json:"token"`
}

// SignUp registers a local account and opens a session.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.provider.SignUp(requestContext(c), identity.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	}, sessionMetadata(c))
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		respondError(c, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	setSessionCookie(c, result.Token)
	response.Success(c, http.StatusCreated, authPayload{
		User:    result.User,
		Session: result.Session,
		Token:   result.Token,
	})
}

// SignIn authenticates an email/password pair.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.provider.SignIn(requestContext(c), identity.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}, sessionMetadata(c))
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		respondError(c, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	setSessionCookie(c, result.Token)
	response.Success(c, http.StatusOK, authPayload{
		User:    result.User,
		Session: result.Session,
		Token:   result.Token,
	})
}

// SignInAnonymous opens a throwaway demo session.
func (h *AuthHandler) SignInAnonymous(c *gin.Context) {
	result, err := h.provider.SignInAnonymous(requestContext(c), sessionMetadata(c))
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		respondError(c, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	setSessionCookie(c, result.Token)
	response.Success(c, http.StatusCreated, authPayload{
		User:    result.User,
		Session: result.Session,
		Token:   result.Token,
	})
}

// SignOut revokes the current session.
func (h *AuthHandler) SignOut(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.provider.RevokeSession(requestContext(c), session.Token); err != nil {
		respondError(c, err)
		return
	}

	clearSessionCookie(c)
	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

// Me returns the authenticated user and their session.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}
	session, _ := middleware.CurrentSession(c)

	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"session": session,
	})
}

// IssueToken mints a short-lived signed access token for the current session,
// for API clients that cannot carry the session cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	token, err := h.provider.IssueAccessToken(requestContext(c), session, user)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, token)
}

// SetActiveWorkspace records the workspace the session is focused on.
func (h *AuthHandler) SetActiveWorkspace(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req setActiveWorkspaceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.provider.SetActiveWorkspace(requestContext(c), session.Token, req.WorkspaceID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"active_workspace_id": req.WorkspaceID})
}

func sessionMetadata(c *gin.Context) identity.SessionMetadata {
	return identity.SessionMetadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int((7 * 24 * 60 * 60)), "/", "", isSecure(c), true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", isSecure(c), true)
}

func isSecure(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}
