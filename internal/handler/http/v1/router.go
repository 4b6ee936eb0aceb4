package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1. Все маршруты, кроме health-check, требуют API-ключ.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, apiKeys []string) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(apiKeys, h.logger), OfficerIdentityMiddleware())

	officers := protected.Group("/officers")
	{
		officers.POST("", h.registerOfficer)
		officers.GET("/:id", h.getOfficer)
		officers.PUT("/:id/location", h.updateLocation)
		officers.PUT("/:id/status", h.setOfficerStatus)
		officers.GET("/:id/tasks", h.listOfficerTasks)
	}

	protected.GET("/match", h.rankOfficers)
	protected.GET("/match/nearest", h.nearestOfficer)

	alerts := protected.Group("/alerts")
	{
		alerts.POST("", h.createAlert)
		alerts.GET("/:id", h.getAlert)
		alerts.POST("/:id/cancel", h.cancelAlert)
		alerts.POST("/:id/dispatch", h.dispatchNearest)
	}

	protected.POST("/dispatch/assign", h.assign)

	tasks := protected.Group("/tasks")
	{
		tasks.GET("/:id", h.getTask)
		tasks.PUT("/:id/status", h.transitionTask)
	}

	// Подписка на события в реальном времени
	protected.GET("/ws", h.subscribe)
}
