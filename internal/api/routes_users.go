package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/handlers"
)

func registerUserRoutes(api *gin.RouterGroup, svc Services) error {
	handler, err := handlers.NewUserHandler(svc.Users)
	if err != nil {
		return err
	}

	api.GET("/users/:id", handler.Get)
	api.PATCH("/me", handler.Update)
	api.DELETE("/me", handler.Delete)
	return nil
}
