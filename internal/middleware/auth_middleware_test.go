package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/database/testutil"
	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/internal/store"
)

func setupAuthEnv(t *testing.T) (*identity.LocalProvider, *services.WorkspaceService) {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	st, err := store.New(db)
	require.NoError(t, err)

	provider, err := identity.NewLocalProvider(st, identity.Config{})
	require.NoError(t, err)
	workspaces, err := services.NewWorkspaceService(st, provider, events.NewBus())
	require.NoError(t, err)

	return provider, workspaces
}

func TestAuthMiddlewareAcceptsBearerAndCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, _ := setupAuthEnv(t)
	result, err := provider.SignUp(context.Background(), identity.SignUpInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "s3cret-password",
	}, identity.SessionMetadata{})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Auth(provider))
	r.GET("/me", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, user.Email)
	})

	// Bearer token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ada@example.com", w.Body.String())

	// Session cookie
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: result.Token})
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, _ := setupAuthEnv(t)

	r := gin.New()
	r.Use(Auth(provider))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Missing token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-session")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRequireWorkspaceMember(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, workspaces := setupAuthEnv(t)
	ctx := context.Background()

	owner, err := provider.SignUp(ctx, identity.SignUpInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "s3cret-password",
	}, identity.SessionMetadata{})
	require.NoError(t, err)
	outsider, err := provider.SignUp(ctx, identity.SignUpInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "s3cret-password",
	}, identity.SessionMetadata{})
	require.NoError(t, err)

	workspace, err := workspaces.Create(ctx, services.CreateWorkspaceInput{
		Name:      "Guarded",
		CreatorID: owner.User.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/workspaces/:workspaceId/secrets",
		Auth(provider),
		RequireWorkspaceMember(workspaces, "workspaceId"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	get := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspace.ID+"/secrets", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, get(owner.Token))
	require.Equal(t, http.StatusForbidden, get(outsider.Token))
}
