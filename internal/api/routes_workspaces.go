package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/handlers"
	"github.com/stackboard/stackboard/internal/identity"
)

func registerWorkspaceRoutes(api *gin.RouterGroup, svc Services, provider identity.Provider, requireMember gin.HandlerFunc) error {
	workspaceHandler, err := handlers.NewWorkspaceHandler(svc.Workspaces, provider)
	if err != nil {
		return err
	}
	invitationHandler, err := handlers.NewInvitationHandler(svc.Invitations)
	if err != nil {
		return err
	}
	projectHandler, err := handlers.NewProjectHandler(svc.Projects)
	if err != nil {
		return err
	}
	searchHandler, err := handlers.NewSearchHandler(svc.Search)
	if err != nil {
		return err
	}

	workspaces := api.Group("/workspaces")
	{
		workspaces.POST("", workspaceHandler.Create)
		workspaces.GET("", workspaceHandler.List)

		scoped := workspaces.Group("/:workspaceId", requireMember)
		{
			scoped.GET("", workspaceHandler.Get)
			scoped.PATCH("", workspaceHandler.Update)
			scoped.DELETE("", workspaceHandler.Delete)

			scoped.GET("/members", workspaceHandler.Members)
			scoped.DELETE("/members/:userId", workspaceHandler.RemoveMember)
			scoped.POST("/leave", workspaceHandler.Leave)

			scoped.GET("/invitations", invitationHandler.ListForWorkspace)
			scoped.POST("/invitations", invitationHandler.Invite)

			scoped.GET("/projects", projectHandler.List)
			scoped.POST("/projects", projectHandler.Create)

			scoped.GET("/search", searchHandler.Search)
		}
	}
	return nil
}
