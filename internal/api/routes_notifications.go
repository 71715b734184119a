package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/handlers"
)

func registerNotificationRoutes(api *gin.RouterGroup, svc Services) error {
	handler, err := handlers.NewNotificationHandler(svc.Notifications)
	if err != nil {
		return err
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.POST("/read-all", handler.MarkAllRead)

		notifications.POST("/:id/read", handler.MarkRead)
		notifications.POST("/:id/unread", handler.MarkUnread)
		notifications.DELETE("/:id", handler.Delete)
	}
	return nil
}
