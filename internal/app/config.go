package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/stackboard/stackboard/internal/identity"
)

// Config represents the runtime configuration for the Stackboard backend.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port               int        `mapstructure:"port"`
	LogLevel           string     `mapstructure:"log_level"`
	CORSOrigins        []string   `mapstructure:"cors_origins"`
	RateLimitPerMinute int        `mapstructure:"rate_limit_per_minute"`
	CSRF               CSRFConfig `mapstructure:"csrf"`
}

// CSRFConfig controls CSRF protection middleware.
type CSRFConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AuthConfig captures session and sign-in settings.
type AuthConfig struct {
	AllowAnonymous bool          `mapstructure:"allow_anonymous"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	TokenLength    int           `mapstructure:"token_length"`
	JWT            JWTConfig     `mapstructure:"jwt"`
}

// JWTConfig enables signed access tokens for API clients when a secret is set.
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// ProviderConfig converts the auth section into identity provider settings.
func (c AuthConfig) ProviderConfig() identity.Config {
	return identity.Config{
		SessionTTL:     c.SessionTTL,
		TokenLength:    c.TokenLength,
		AllowAnonymous: c.AllowAnonymous,
		JWT: identity.JWTConfig{
			Secret:         c.JWT.Secret,
			Issuer:         c.JWT.Issuer,
			AccessTokenTTL: c.JWT.AccessTokenTTL,
		},
	}
}

// MaintenanceConfig controls the background cleanup scheduler.
type MaintenanceConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	SessionSchedule      string `mapstructure:"session_schedule"`
	VerificationSchedule string `mapstructure:"verification_schedule"`
	InvitationSchedule   string `mapstructure:"invitation_schedule"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("STACKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", "")
	v.SetDefault("server.rate_limit_per_minute", 240)
	v.SetDefault("server.csrf.enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/stackboard.sqlite")

	v.SetDefault("auth.allow_anonymous", true)
	v.SetDefault("auth.session_ttl", "168h") // 7 days
	v.SetDefault("auth.token_length", 48)
	v.SetDefault("auth.jwt.issuer", "stackboard")
	v.SetDefault("auth.jwt.access_token_ttl", "15m")

	v.SetDefault("maintenance.enabled", true)
	v.SetDefault("maintenance.session_schedule", "@hourly")
	v.SetDefault("maintenance.verification_schedule", "@daily")
	v.SetDefault("maintenance.invitation_schedule", "@daily")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
