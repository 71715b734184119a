package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/handlers"
)

func registerInvitationRoutes(api *gin.RouterGroup, svc Services) error {
	handler, err := handlers.NewInvitationHandler(svc.Invitations)
	if err != nil {
		return err
	}

	invitations := api.Group("/invitations")
	{
		invitations.GET("", handler.ListMine)
		invitations.POST("/:id/accept", handler.Accept)
		invitations.POST("/:id/decline", handler.Decline)
	}
	return nil
}
