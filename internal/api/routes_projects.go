package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/handlers"
)

func registerProjectRoutes(api *gin.RouterGroup, projectHandler *handlers.ProjectHandler, svc Services) error {
	integrationHandler, err := handlers.NewGithubIntegrationHandler(svc.Integrations)
	if err != nil {
		return err
	}

	projects := api.Group("/projects")
	{
		projects.GET("/:id", projectHandler.Get)
		projects.PATCH("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)

		projects.GET("/:id/integration", integrationHandler.GetForProject)
	}

	integrations := api.Group("/github-integrations")
	{
		integrations.POST("", integrationHandler.Connect)
		integrations.PATCH("/:id", integrationHandler.Update)
		integrations.DELETE("/:id", integrationHandler.Disconnect)
	}
	return nil
}
