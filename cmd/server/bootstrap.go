package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/api"
	"github.com/stackboard/stackboard/internal/app"
	"github.com/stackboard/stackboard/internal/app/maintenance"
	"github.com/stackboard/stackboard/internal/database"
	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/internal/store"
	"github.com/stackboard/stackboard/pkg/logger"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB       *gorm.DB
	Store    *store.Store
	Provider *identity.LocalProvider
	Bus      *events.Bus
	Services api.Services
	Cleaner  *maintenance.Cleaner
	Router   *gin.Engine
}

// bootstrapRuntime initialises the database, identity provider, service layer,
// maintenance jobs, and the HTTP router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	stack.Store, err = store.New(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise store: %w", err)
	}

	stack.Provider, err = identity.NewLocalProvider(stack.Store, cfg.Auth.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise identity provider: %w", err)
	}

	stack.Bus = events.NewBus()

	if stack.Services, err = buildServices(stack.Store, stack.Provider, stack.Bus); err != nil {
		return nil, err
	}
	stack.Services.Notifications.SubscribeEvents(stack.Bus)

	if cfg.Maintenance.Enabled {
		stack.Cleaner = maintenance.NewCleaner(stack.DB,
			maintenance.WithSessionSchedule(cfg.Maintenance.SessionSchedule),
			maintenance.WithVerificationSchedule(cfg.Maintenance.VerificationSchedule),
			maintenance.WithInvitationSchedule(cfg.Maintenance.InvitationSchedule),
		)
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	stack.Router, err = api.NewRouter(stack.DB, stack.Provider, stack.Services, cfg)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func buildServices(st *store.Store, provider identity.Provider, bus *events.Bus) (api.Services, error) {
	var svc api.Services
	var err error

	if svc.Users, err = services.NewUserService(st); err != nil {
		return svc, fmt.Errorf("initialise user service: %w", err)
	}
	if svc.Workspaces, err = services.NewWorkspaceService(st, provider, bus); err != nil {
		return svc, fmt.Errorf("initialise workspace service: %w", err)
	}
	if svc.Invitations, err = services.NewInvitationService(st, provider, bus); err != nil {
		return svc, fmt.Errorf("initialise invitation service: %w", err)
	}
	if svc.Projects, err = services.NewProjectService(st); err != nil {
		return svc, fmt.Errorf("initialise project service: %w", err)
	}
	if svc.Tasks, err = services.NewTaskService(st, bus); err != nil {
		return svc, fmt.Errorf("initialise task service: %w", err)
	}
	if svc.TimeEntries, err = services.NewTimeEntryService(st); err != nil {
		return svc, fmt.Errorf("initialise time entry service: %w", err)
	}
	if svc.Activities, err = services.NewActivityService(st); err != nil {
		return svc, fmt.Errorf("initialise activity service: %w", err)
	}
	if svc.Labels, err = services.NewLabelService(st); err != nil {
		return svc, fmt.Errorf("initialise label service: %w", err)
	}
	if svc.Notifications, err = services.NewNotificationService(st); err != nil {
		return svc, fmt.Errorf("initialise notification service: %w", err)
	}
	if svc.Integrations, err = services.NewGithubIntegrationService(st); err != nil {
		return svc, fmt.Errorf("initialise github integration service: %w", err)
	}
	if svc.Search, err = services.NewSearchService(st); err != nil {
		return svc, fmt.Errorf("initialise search service: %w", err)
	}

	return svc, nil
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		if stopCtx != nil {
			ctx = stopCtx
		}
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
	}

	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		dbCfg.Host = strings.TrimSpace(cfg.Database.Postgres.Host)
		dbCfg.Port = cfg.Database.Postgres.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.Postgres.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.Postgres.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.Postgres.Password)
	case "mysql":
		dbCfg.Host = strings.TrimSpace(cfg.Database.MySQL.Host)
		dbCfg.Port = cfg.Database.MySQL.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.MySQL.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.MySQL.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.MySQL.Password)
	default:
		// Leave driver as-is to surface unsupported driver error during open.
	}

	return dbCfg
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
