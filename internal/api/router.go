// Package api builds the HTTP router: global middleware, public endpoints,
// and the authenticated REST surface.
package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/app"
	"github.com/stackboard/stackboard/internal/handlers"
	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/middleware"
	"github.com/stackboard/stackboard/internal/services"
)

// Services bundles the constructed service layer handed to the router.
type Services struct {
	Users         *services.UserService
	Workspaces    *services.WorkspaceService
	Invitations   *services.InvitationService
	Projects      *services.ProjectService
	Tasks         *services.TaskService
	TimeEntries   *services.TimeEntryService
	Activities    *services.ActivityService
	Labels        *services.LabelService
	Notifications *services.NotificationService
	Integrations  *services.GithubIntegrationService
	Search        *services.SearchService
}

// NewRouter builds the Gin engine, wires middleware, and registers all routes.
func NewRouter(db *gorm.DB, provider identity.Provider, svc Services, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if provider == nil {
		return nil, fmt.Errorf("identity provider must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins...))
	if cfg.Server.CSRF.Enabled {
		r.Use(middleware.CSRF())
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimitPerMinute, time.Minute))
	}
	r.NoRoute(middleware.NotFoundHandler)

	// Public endpoints
	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler, err := handlers.NewAuthHandler(provider)
	if err != nil {
		return nil, err
	}
	projectHandler, err := handlers.NewProjectHandler(svc.Projects)
	if err != nil {
		return nil, err
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/sign-up", authHandler.SignUp)
		auth.POST("/sign-in", authHandler.SignIn)
		if cfg.Auth.AllowAnonymous {
			auth.POST("/sign-in/anonymous", authHandler.SignInAnonymous)
		}
	}

	// Public project sharing; private projects come back as 404.
	r.GET("/api/public-projects/:id", projectHandler.GetPublic)

	requireAuth := middleware.Auth(provider)
	requireMember := middleware.RequireWorkspaceMember(svc.Workspaces, "workspaceId")

	api := r.Group("/api")
	api.Use(requireAuth)

	// Authenticated auth routes
	api.GET("/me", authHandler.Me)
	api.POST("/auth/sign-out", authHandler.SignOut)
	api.POST("/auth/token", authHandler.IssueToken)
	api.POST("/auth/active-workspace", authHandler.SetActiveWorkspace)

	if err := registerUserRoutes(api, svc); err != nil {
		return nil, err
	}
	if err := registerWorkspaceRoutes(api, svc, provider, requireMember); err != nil {
		return nil, err
	}
	if err := registerInvitationRoutes(api, svc); err != nil {
		return nil, err
	}
	if err := registerProjectRoutes(api, projectHandler, svc); err != nil {
		return nil, err
	}
	if err := registerTaskRoutes(api, svc); err != nil {
		return nil, err
	}
	if err := registerNotificationRoutes(api, svc); err != nil {
		return nil, err
	}

	return r, nil
}
