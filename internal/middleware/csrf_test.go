package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func csrfRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRF())
	r.GET("/form", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/form", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCSRFIssuesTokenOnSafeMethods(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := csrfRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(CSRFHeaderName))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CSRFCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
}

func TestCSRFRejectsMutationsWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := csrfRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/form", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFAcceptsEchoedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := csrfRouter()

	// Obtain a token first.
	seed := httptest.NewRecorder()
	r.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/form", nil))
	token := seed.Header().Get(CSRFHeaderName)
	require.NotEmpty(t, token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/form", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	req.Header.Set(CSRFHeaderName, token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
