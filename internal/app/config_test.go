package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.Server.CORSOrigins)
	require.Equal(t, 120, cfg.Server.RateLimitPerMinute)
	require.True(t, cfg.Server.CSRF.Enabled)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.True(t, cfg.Database.Postgres.Enabled)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.False(t, cfg.Auth.AllowAnonymous)
	require.Equal(t, 72*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, 64, cfg.Auth.TokenLength)
	require.Equal(t, "yaml-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "stackboard-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 5*time.Minute, cfg.Auth.JWT.AccessTokenTTL)

	require.True(t, cfg.Maintenance.Enabled)
	require.Equal(t, "@every 30m", cfg.Maintenance.SessionSchedule)
	require.Equal(t, "@daily", cfg.Maintenance.VerificationSchedule)
	require.Equal(t, "@hourly", cfg.Maintenance.InvitationSchedule)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, 240, cfg.Server.RateLimitPerMinute)
	require.False(t, cfg.Server.CSRF.Enabled)

	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/stackboard.sqlite", cfg.Database.Path)

	require.True(t, cfg.Auth.AllowAnonymous)
	require.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, 48, cfg.Auth.TokenLength)
	require.Empty(t, cfg.Auth.JWT.Secret)
	require.Equal(t, "stackboard", cfg.Auth.JWT.Issuer)
	require.Equal(t, 15*time.Minute, cfg.Auth.JWT.AccessTokenTTL)

	require.Equal(t, "@hourly", cfg.Maintenance.SessionSchedule)
}

func TestAuthConfigProviderConfig(t *testing.T) {
	cfg := AuthConfig{
		AllowAnonymous: true,
		SessionTTL:     time.Hour,
		TokenLength:    32,
		JWT:            JWTConfig{Secret: "s", Issuer: "i", AccessTokenTTL: time.Minute},
	}
	provider := cfg.ProviderConfig()

	require.True(t, provider.AllowAnonymous)
	require.Equal(t, time.Hour, provider.SessionTTL)
	require.Equal(t, 32, provider.TokenLength)
	require.Equal(t, "s", provider.JWT.Secret)
	require.Equal(t, "i", provider.JWT.Issuer)
	require.Equal(t, time.Minute, provider.JWT.AccessTokenTTL)
}
