package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stackboard/stackboard/internal/app"
)

func testConfig() *app.Config {
	return &app.Config{
		Server: app.ServerConfig{
			Port:     0,
			LogLevel: "error",
		},
		Database: app.DatabaseConfig{
			Driver: "sqlite",
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		},
		Auth: app.AuthConfig{
			AllowAnonymous: true,
			SessionTTL:     time.Hour,
			TokenLength:    48,
		},
		Maintenance: app.MaintenanceConfig{Enabled: true},
	}
}

func TestBootstrapRuntime(t *testing.T) {
	cfg := testConfig()
	log := zap.NewNop()

	stack, err := bootstrapRuntime(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), log) })

	require.NotNil(t, stack.Router)
	require.NotNil(t, stack.Provider)
	require.NotNil(t, stack.Cleaner)

	rec := httptest.NewRecorder()
	stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBootstrapRuntimeSignUpFlow(t *testing.T) {
	cfg := testConfig()
	log := zap.NewNop()

	stack, err := bootstrapRuntime(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), log) })

	body := bytes.NewBufferString(`{"name":"Ada","email":"ada@example.com","password":"s3cret-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-up", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	stack.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestConvertDatabaseConfig(t *testing.T) {
	cfg := &app.Config{Database: app.DatabaseConfig{
		Driver: "PostgreSQL",
		Postgres: app.DBAuthConfig{
			Host:     " db.internal ",
			Port:     5432,
			Database: "stackboard",
			Username: "svc",
			Password: "secret",
		},
	}}

	dbCfg := convertDatabaseConfig(cfg)
	require.Equal(t, "postgres", dbCfg.Driver)
	require.Equal(t, "db.internal", dbCfg.Host)
	require.Equal(t, 5432, dbCfg.Port)
	require.Equal(t, "stackboard", dbCfg.Name)
	require.Equal(t, "svc", dbCfg.User)

	empty := convertDatabaseConfig(&app.Config{})
	require.Equal(t, "sqlite", empty.Driver)
}
