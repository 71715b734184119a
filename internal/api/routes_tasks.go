package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/handlers"
)

func registerTaskRoutes(api *gin.RouterGroup, svc Services) error {
	taskHandler, err := handlers.NewTaskHandler(svc.Tasks)
	if err != nil {
		return err
	}
	activityHandler, err := handlers.NewActivityHandler(svc.Activities)
	if err != nil {
		return err
	}
	labelHandler, err := handlers.NewLabelHandler(svc.Labels)
	if err != nil {
		return err
	}
	timeEntryHandler, err := handlers.NewTimeEntryHandler(svc.TimeEntries)
	if err != nil {
		return err
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.Get)
		tasks.PATCH("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)

		tasks.GET("/:id/activities", activityHandler.ListForTask)
		tasks.GET("/:id/labels", labelHandler.ListForTask)
		tasks.GET("/:id/time-entries", timeEntryHandler.ListForTask)
	}

	activities := api.Group("/activities")
	{
		activities.POST("", activityHandler.Create)
		activities.PATCH("/:id", activityHandler.Update)
		activities.DELETE("/:id", activityHandler.Delete)
	}

	labels := api.Group("/labels")
	{
		labels.POST("", labelHandler.Create)
		labels.PATCH("/:id", labelHandler.Update)
		labels.DELETE("/:id", labelHandler.Delete)
	}

	timeEntries := api.Group("/time-entries")
	{
		timeEntries.POST("", timeEntryHandler.Create)
		timeEntries.POST("/start", timeEntryHandler.Start)
		timeEntries.POST("/:id/stop", timeEntryHandler.Stop)
		timeEntries.DELETE("/:id", timeEntryHandler.Delete)
	}
	return nil
}
